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

// Package lifetime detects null tests on objects of a restricted type that bypass the
// type's custom liveness check.
//
// Three spellings are detected: `x is null` (and the other null-testing patterns),
// `x?.m` and `x ?? y`. Equality comparisons like `x == null` go through the liveness
// check and are not reported. Applying the marker function, as in `x.AliveOrNull()?.m`,
// re-legitimizes the null test.
package lifetime

import (
	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/hierarchy"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

const (
	// DefaultRestricted is the default restricted type.
	DefaultRestricted = "UnityEngine.Object"

	// DefaultMarker is the default marker function.
	DefaultMarker = "AliveOrNull"
)

const (
	title       = "Tests that Unity object lifetime is not ignored"
	description = "Tests that Unity object lifetime checks are not ignored."
	category    = "Usage"
)

var (
	// ConditionalAccess is reported for `x?.m`.
	ConditionalAccess = &report.Descriptor{
		ID:          "NUSL001",
		Title:       title,
		Format:      "'?.' is invalid on type '%s' as it derives from '%s', bypassing the Unity object lifetime check",
		Category:    category,
		Severity:    report.Error,
		Description: description,
	}

	// IsNull is reported for null-testing patterns like `x is null`.
	IsNull = &report.Descriptor{
		ID:          "NUSL002",
		Title:       title,
		Format:      "'is null' is invalid on type '%s' as it derives from '%s', bypassing the Unity object lifetime check",
		Category:    category,
		Severity:    report.Error,
		Description: description,
	}

	// NullCoalesce is reported for `x ?? y`.
	NullCoalesce = &report.Descriptor{
		ID:          "NUSL003",
		Title:       title,
		Format:      "'??' is invalid on type '%s' as it derives from '%s', bypassing the Unity object lifetime check",
		Category:    category,
		Severity:    report.Error,
		Description: description,
	}
)

// Descriptors lists the rules of this package.
func Descriptors() []*report.Descriptor {
	return []*report.Descriptor{ConditionalAccess, IsNull, NullCoalesce}
}

// Detector checks null tests in one compilation unit.
// A nil *Detector is inert.
type Detector struct {
	unit       *host.Unit
	restricted *symbols.Type
	marker     string
}

// New returns a detector for unit, or nil when the restricted type cannot be resolved in unit.
func New(unit *host.Unit, restricted, marker string) *Detector {
	t, ok := hierarchy.Resolve(unit.Universe, restricted)
	if !ok {
		return nil
	}

	return &Detector{unit: unit, restricted: t, marker: marker}
}

// Restricted returns the resolved restricted type.
func (d *Detector) Restricted() *symbols.Type { return d.restricted }

// CheckIsPattern reports `x is P` where P tests for null and x has the restricted type.
// The diagnostic spans the whole `is` expression.
func (d *Detector) CheckIsPattern(x *syntax.IsPatternExpr) (report.Diagnostic, bool) {
	if d == nil || !IsNullTest(x.Pattern) {
		return report.Diagnostic{}, false
	}

	return d.check(IsNull, x, x.X)
}

// CheckConditionalAccess reports `x?.m` where x has the restricted type.
// The diagnostic spans the whole conditional access and carries a fix inserting the marker call.
func (d *Detector) CheckConditionalAccess(x *syntax.ConditionalAccessExpr) (report.Diagnostic, bool) {
	if d == nil {
		return report.Diagnostic{}, false
	}

	diag, ok := d.check(ConditionalAccess, x, x.X)
	if ok {
		diag.Fixes = Fix(x, d.restricted.FullName(), d.marker)
	}

	return diag, ok
}

// CheckCoalesce reports `x ?? y` where x has the restricted type. The fallback y is not checked.
// The diagnostic spans the whole binary expression.
func (d *Detector) CheckCoalesce(x *syntax.BinaryExpr) (report.Diagnostic, bool) {
	if d == nil || x.Op != syntax.OpCoalesce {
		return report.Diagnostic{}, false
	}

	return d.check(NullCoalesce, x, x.X)
}

func (d *Detector) check(desc *report.Descriptor, node syntax.Node, checked syntax.Expr) (report.Diagnostic, bool) {
	if d.isMarkerCall(checked) {
		return report.Diagnostic{}, false
	}

	t := d.unit.TypeOf(checked)
	if !hierarchy.IsSubtype(t, d.restricted) {
		return report.Diagnostic{}, false
	}

	return report.New(desc, node, t.Name(), d.restricted.FullName()), true
}

// isMarkerCall reports whether x, with parentheses removed, is a call to the marker function.
// Unresolved calls are matched by their syntactic callee name.
func (d *Detector) isMarkerCall(x syntax.Expr) bool {
	call, ok := syntax.Unparen(x).(*syntax.InvocationExpr)
	if !ok {
		return false
	}

	if m := d.unit.MethodOf(call); m != nil {
		return m.Name() == d.marker
	}

	return calleeName(call) == d.marker
}

func calleeName(call *syntax.InvocationExpr) string {
	switch fun := call.Fun.(type) {
	case *syntax.Ident:
		return fun.Name
	case *syntax.MemberAccessExpr:
		return fun.Name.Name
	case *syntax.MemberBindingExpr:
		return fun.Name.Name
	default:
		return ""
	}
}

// IsNullTest reports whether a pattern tests for null: `null`, `not null`, `{}` (with or
// without designation) and `not {}`. Type patterns and non-empty property patterns do not.
func IsNullTest(p syntax.Pattern) bool {
	switch p := p.(type) {
	case *syntax.NotPattern:
		switch inner := p.Pattern.(type) {
		case *syntax.ConstantPattern, *syntax.RecursivePattern:
			return IsNullTest(inner)
		default:
			return false
		}

	case *syntax.ConstantPattern:
		lit, ok := syntax.Unparen(p.Value).(*syntax.BasicLit)

		return ok && lit.Kind == syntax.NullLit

	case *syntax.RecursivePattern:
		return len(p.Properties.Subpatterns) == 0

	default:
		return false
	}
}

// CheckNode dispatches n to the matching check.
func (d *Detector) CheckNode(n syntax.Node) (report.Diagnostic, bool) {
	switch n := n.(type) {
	case *syntax.IsPatternExpr:
		return d.CheckIsPattern(n)

	case *syntax.ConditionalAccessExpr:
		return d.CheckConditionalAccess(n)

	case *syntax.BinaryExpr:
		return d.CheckCoalesce(n)

	default:
		return report.Diagnostic{}, false
	}
}
