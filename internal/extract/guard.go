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

package extract

import (
	"strconv"
	"strings"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// DefaultGuardFragment selects the calls to guard.
const DefaultGuardFragment = "GetPlatformByGameDir"

// IsGuardCandidate reports whether n is an invocation whose callee name contains fragment,
// ignoring case. Nested invocations like `F()()` are unwrapped.
func IsGuardCandidate(n syntax.Node, fragment string) bool {
	name, ok := calleeName(n)

	return ok && strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}

func calleeName(n syntax.Node) (string, bool) {
	for {
		switch x := n.(type) {
		case *syntax.InvocationExpr:
			if id, ok := x.Fun.(*syntax.Ident); ok {
				return id.Name, true
			}

			n = x.Fun

		case *syntax.MemberAccessExpr:
			return x.Name.Name, true

		default:
			return "", false
		}
	}
}

// locationNode returns the node whose start is reported as the call location:
// the invocation for calls of plain identifiers, otherwise the callee member access.
func locationNode(call *syntax.InvocationExpr) (syntax.Node, bool) {
	var n syntax.Node = call
	for {
		switch x := n.(type) {
		case *syntax.InvocationExpr:
			if _, ok := x.Fun.(*syntax.Ident); ok {
				return x, true
			}

			n = x.Fun

		case *syntax.MemberAccessExpr:
			return x, true

		default:
			return nil, false
		}
	}
}

// ExtractCall describes the invocation n. It returns false when n is not an invocation,
// the target method does not resolve or no location token can be derived.
func ExtractCall(unit *host.Unit, n syntax.Node) (*InterceptableCall, bool) {
	call, ok := n.(*syntax.InvocationExpr)
	if !ok {
		return nil, false
	}

	m := unit.MethodOf(call)
	if m == nil || m.Owner == nil || m.Constructor {
		return nil, false
	}

	token, ok := unit.InterceptableLocation(call)
	if !ok {
		return nil, false
	}

	loc, ok := locationNode(call)
	if !ok {
		return nil, false
	}

	pos := unit.Position(loc.Pos())

	params, static := m.Params, m.Static
	owner := symbols.QualifiedName(m.Owner)

	if m.Extension && len(params) > 0 && reduced(unit, call) {
		owner, params, static = params[0].TypeName, params[1:], false
	}

	ns := m.Owner.Namespace()
	if ns == "" {
		ns = GlobalNamespace
	}

	return &InterceptableCall{
		Location: CallLocation{
			FilePath: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Token:    token,
		},
		OwnerType:      owner,
		Parameters:     parameters(params),
		ReturnType:     m.ResultName,
		Async:          m.Async,
		Static:         static,
		Name:           m.Name(),
		OwnerNamespace: ns,
		Accessibility:  m.Accessibility,
	}, true
}

// reduced reports whether an extension method is called on a receiver value, as in `x.M()`.
func reduced(unit *host.Unit, call *syntax.InvocationExpr) bool {
	fun, ok := call.Fun.(*syntax.MemberAccessExpr)
	if !ok {
		return false
	}

	_, isType := unit.ObjectOf(fun.X).(*symbols.Type)

	return !isType
}

func parameters(params []*symbols.Param) []Parameter {
	if len(params) == 0 {
		return nil
	}

	result := make([]Parameter, len(params))
	for i, p := range params {
		name := p.Name()
		if name == "" {
			name = "p" + strconv.Itoa(i)
		}

		result[i] = Parameter{Name: name, TypeName: p.TypeName}
	}

	return result
}
