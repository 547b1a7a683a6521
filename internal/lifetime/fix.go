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

package lifetime

import (
	"errors"
	"fmt"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/syntax"
)

// FixTitle returns the message of the suggested fix, like
// `Insert AliveOrNull() before conditional access of UnityEngine.Object`.
func FixTitle(restricted, marker string) string {
	return fmt.Sprintf("Insert %s() before conditional access of %s", marker, restricted)
}

// ErrNoConditionalAccess is returned when a diagnostic's span contains no conditional access.
var ErrNoConditionalAccess = errors.New("no conditional access at diagnostic location")

// Fix returns a fix rewriting `x?.m` to `x.Marker()?.m`. Receivers that are not primary
// expressions are parenthesized: `(a ?? b)?.m` stays valid, `await t?.m` becomes `(await t).Marker()?.m`.
func Fix(x *syntax.ConditionalAccessExpr, restricted, marker string) []analysis.SuggestedFix {
	call := "." + marker + "()"

	var edits []analysis.TextEdit
	if primary(x.X) {
		edits = []analysis.TextEdit{{Pos: x.X.End(), End: x.X.End(), NewText: []byte(call)}}
	} else {
		edits = []analysis.TextEdit{
			{Pos: x.X.Pos(), End: x.X.Pos(), NewText: []byte("(")},
			{Pos: x.X.End(), End: x.X.End(), NewText: []byte(")" + call)},
		}
	}

	return []analysis.SuggestedFix{{Message: FixTitle(restricted, marker), TextEdits: edits}}
}

// FixAt locates the conditional access enclosing the start of a reported span and returns its fix.
func FixAt(in *syntax.Inspector, diag report.Diagnostic, restricted, marker string) ([]analysis.SuggestedFix, error) {
	c, ok := in.Innermost(diag.Pos, diag.Pos)
	if !ok {
		return nil, fmt.Errorf("%w (pos %d)", ErrNoConditionalAccess, diag.Pos)
	}

	x, ok := syntax.EnclosingOf[*syntax.ConditionalAccessExpr](c)
	if !ok {
		return nil, fmt.Errorf("%w (pos %d)", ErrNoConditionalAccess, diag.Pos)
	}

	return Fix(x, restricted, marker), nil
}

func primary(x syntax.Expr) bool {
	switch x.(type) {
	case *syntax.Ident, *syntax.BasicLit, *syntax.ParenExpr, *syntax.MemberAccessExpr,
		*syntax.MemberBindingExpr, *syntax.InvocationExpr, *syntax.ObjectCreationExpr, *syntax.ThisExpr:
		return true
	default:
		return false
	}
}
