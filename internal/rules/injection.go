// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/hierarchy"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// MisusedInjection is reported for direct uses of the service locator.
var MisusedInjection = &report.Descriptor{
	ID:       "DIMA001",
	Title:    "Dependency Injection container is used directly",
	Format:   "The DI container should not be used directly in type '%s' as the requested service can be supplied via a constructor parameter",
	Category: "Usage",
	Severity: report.Warning,
}

const (
	// ServiceLocator is the name of the dependency injection container.
	ServiceLocator = "NitroxServiceLocator"

	// PatchType is the base type of Harmony patches.
	PatchType = "NitroxPatcher.Patches.NitroxPatch"
)

// Injection checks uses of the service locator. Types we don't instantiate ourselves
// may use it.
type Injection struct {
	unit    *host.Unit
	allowed []*symbols.Type
}

// NewInjection returns a checker allowing subtypes of the given types.
// Types that don't resolve in unit are ignored.
func NewInjection(unit *host.Unit, allowed ...string) *Injection {
	in := &Injection{unit: unit}

	for _, name := range allowed {
		if t, ok := hierarchy.Resolve(unit.Universe, name); ok {
			in.allowed = append(in.allowed, t)
		}
	}

	return in
}

// Check reports the member access at c when it accesses the service locator outside of an allowed type.
func (in *Injection) Check(c syntax.Cursor) (report.Diagnostic, bool) {
	x, ok := c.Node().(*syntax.MemberAccessExpr)
	if !ok {
		return report.Diagnostic{}, false
	}

	if id, ok := x.X.(*syntax.Ident); !ok || id.Name != ServiceLocator {
		return report.Diagnostic{}, false
	}

	decl, ok := syntax.EnclosingOf[*syntax.TypeDecl](c.Parent())
	if !ok {
		return report.Diagnostic{}, false
	}

	declared, ok := in.unit.Info.Defs[decl].(*symbols.Type)
	if !ok {
		return report.Diagnostic{}, false
	}

	for _, t := range in.allowed {
		if hierarchy.IsSubtype(declared, t) {
			return report.Diagnostic{}, false
		}
	}

	return report.New(MisusedInjection, x, decl.Name.Name), true
}
