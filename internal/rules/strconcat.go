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
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/syntax"
)

// StringConcat is reported for string concatenation chains.
var StringConcat = &report.Descriptor{
	ID:          "NSU001",
	Title:       "Prefer interpolated string over string concat",
	Format:      "String concat can be turned into interpolated string",
	Category:    "Usage",
	Severity:    report.Warning,
	Description: "Prefer interpolated string over concatenating strings.",
}

const stringType = "System.String"

// CheckStringConcat reports the `+` expression at c when it concatenates strings.
// Only the outermost `+` of a chain is reported.
func CheckStringConcat(unit *host.Unit, c syntax.Cursor) (report.Diagnostic, bool) {
	x, ok := c.Node().(*syntax.BinaryExpr)
	if !ok || x.Op != syntax.OpAdd || !outermost(c.Parent()) {
		return report.Diagnostic{}, false
	}

	if !stringish(unit, x.X) && !stringish(unit, x.Y) {
		return report.Diagnostic{}, false
	}

	return report.New(StringConcat, x), true
}

// outermost reports whether a node whose parent is at c is not itself an operand of a binary expression.
func outermost(c syntax.Cursor) bool {
	for ; c.Index() >= 0; c = c.Parent() {
		switch c.Node().(type) {
		case *syntax.BinaryExpr:
			return false

		case *syntax.ParenExpr:
			continue

		default:
			return true
		}
	}

	return true
}

func stringish(unit *host.Unit, x syntax.Expr) bool {
	switch x := syntax.Unparen(x).(type) {
	case *syntax.BasicLit:
		return x.Kind == syntax.StringLit

	case *syntax.InterpolatedString:
		return true

	case *syntax.MemberAccessExpr:
		t := unit.TypeOf(x)

		return t != nil && t.FullName() == stringType

	case *syntax.BinaryExpr:
		return x.Op == syntax.OpAdd && (stringish(unit, x.Y) || stringish(unit, x.X))

	default:
		return false
	}
}
