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
	"strings"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/lookup"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// InvalidLocalizationKey is reported for unknown localization keys.
var InvalidLocalizationKey = &report.Descriptor{
	ID:          "NXLZ001",
	Title:       "Tests localization usages are valid",
	Format:      "Localization key '%s' does not exist in '%s'",
	Category:    "Usage",
	Severity:    report.Warning,
	Description: "Tests that requested localization keys exist in the English localization file",
}

const (
	// LocalizationPrefix marks keys owned by the project.
	LocalizationPrefix = "Nitrox_"

	// LanguageType declares the `Get` lookup method.
	LanguageType = "Language"

	// TextType declares the `SetText` method.
	TextType = "uGUI_Text"

	// ProjectDirKey is the host option naming the project directory.
	ProjectDirKey = "build_property.projectdir"
)

// Localization checks localization keys against a dictionary.
type Localization struct {
	unit  *host.Unit
	get   *symbols.Method
	cache *lookup.Cache
}

// NewLocalization returns a checker backed by the dictionary at path, or nil when
// `Language.Get` does not resolve or the dictionary can't be loaded.
// An empty path selects the default dictionary of the unit's project directory.
func NewLocalization(unit *host.Unit, cache *lookup.Cache, path string) (*Localization, error) {
	language := unit.LookupType(LanguageType)
	if language == nil {
		return nil, nil
	}

	get := language.Method("Get")
	if get == nil {
		return nil, nil
	}

	if path == "" {
		dir := unit.ProjectDir
		if dir == "" {
			dir, _ = unit.Option(ProjectDirKey)
		}

		if path = lookup.DefaultPath(dir); path == "" {
			return nil, nil
		}
	}

	if err := cache.Load(path); err != nil {
		return nil, err
	}

	return &Localization{unit: unit, get: get, cache: cache}, nil
}

// CheckLiteral reports the string literal at c when it is passed to `Language.Get`
// and names an unknown key.
func (l *Localization) CheckLiteral(c syntax.Cursor) (report.Diagnostic, bool) {
	if l == nil {
		return report.Diagnostic{}, false
	}

	lit, ok := c.Node().(*syntax.BasicLit)
	if !ok || lit.Kind != syntax.StringLit {
		return report.Diagnostic{}, false
	}

	call, ok := c.Parent().Node().(*syntax.InvocationExpr)
	if !ok || !isArg(call, lit) || l.unit.MethodOf(call) != l.get {
		return report.Diagnostic{}, false
	}

	return l.checkKey(lit, lit)
}

// CheckSetText reports `SetText(key, translate)` calls on the text type with an unknown key,
// unless translate is the literal `false`.
func (l *Localization) CheckSetText(c syntax.Cursor) (report.Diagnostic, bool) {
	if l == nil {
		return report.Diagnostic{}, false
	}

	call, ok := c.Node().(*syntax.InvocationExpr)
	if !ok || len(call.Args) != 2 {
		return report.Diagnostic{}, false
	}

	fun, ok := call.Fun.(*syntax.MemberAccessExpr)
	if !ok || fun.Name.Name != "SetText" {
		return report.Diagnostic{}, false
	}

	if lit, ok := call.Args[1].(*syntax.BasicLit); ok && lit.Kind == syntax.FalseLit {
		return report.Diagnostic{}, false
	}

	key, ok := call.Args[0].(*syntax.BasicLit)
	if !ok || key.Kind != syntax.StringLit {
		return report.Diagnostic{}, false
	}

	if m := l.unit.MethodOf(call); m == nil || m.Owner == nil || m.Owner.Name() != TextType {
		return report.Diagnostic{}, false
	}

	return l.checkKey(key, call)
}

func (l *Localization) checkKey(key *syntax.BasicLit, rng report.Range) (report.Diagnostic, bool) {
	value, ok := key.StringValue()
	if !ok || !hasPrefixFold(value, LocalizationPrefix) || l.cache.Contains(value) {
		return report.Diagnostic{}, false
	}

	return report.New(InvalidLocalizationKey, rng, value, l.cache.FileName()), true
}

func isArg(call *syntax.InvocationExpr, x syntax.Expr) bool {
	for _, arg := range call.Args {
		if arg == x {
			return true
		}
	}

	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
