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

package symbols

import (
	"maps"
	"slices"
	"strings"

	"fillmore-labs.com/lifeguard/syntax"
)

// Info holds the resolution results for a compilation, like [go/types.Info].
// Missing entries mean "unresolved", which consumers must tolerate.
type Info struct {
	// Types maps expressions to their static type.
	Types map[syntax.Expr]*Type

	// Uses maps identifiers, member accesses, member bindings and invocations to the
	// object they denote. For invocations the entry is the called *Method.
	Uses map[syntax.Expr]Object

	// Defs maps declarations (types, methods, fields, parameters, locals and designations) to their objects.
	Defs map[syntax.Node]Object
}

// NewInfo returns an empty [Info] with all maps allocated.
func NewInfo() *Info {
	return &Info{
		Types: make(map[syntax.Expr]*Type),
		Uses:  make(map[syntax.Expr]Object),
		Defs:  make(map[syntax.Node]Object),
	}
}

// TypeOf returns the static type of an expression, or nil.
func (i *Info) TypeOf(x syntax.Expr) *Type {
	if i == nil {
		return nil
	}

	return i.Types[x]
}

// ObjectOf returns the object denoted by x, or nil.
func (i *Info) ObjectOf(x syntax.Expr) Object {
	if i == nil {
		return nil
	}

	return i.Uses[x]
}

// MethodOf returns the method called by an invocation, or nil.
func (i *Info) MethodOf(call *syntax.InvocationExpr) *Method {
	m, _ := i.ObjectOf(call).(*Method)

	return m
}

// Universe holds all types known to a compilation, indexed by fully qualified name.
type Universe struct {
	types      map[string]*Type
	namespaces map[string]struct{}
}

// NewUniverse creates a universe containing the predefined types.
func NewUniverse() *Universe {
	u := &Universe{
		types:      make(map[string]*Type),
		namespaces: make(map[string]struct{}),
	}

	for _, p := range predefined {
		u.Insert(NewType("System", p.name, p.kind))
	}

	return u
}

// Insert adds a type. It returns the previously inserted type with the same full name, if any;
// in that case the universe is unchanged.
func (u *Universe) Insert(t *Type) *Type {
	full := t.FullName()
	if prev, ok := u.types[full]; ok {
		return prev
	}

	u.types[full] = t

	for ns := t.namespace; ns != ""; {
		u.namespaces[ns] = struct{}{}

		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}

		ns = ns[:i]
	}

	return nil
}

// Lookup returns the type with the given fully qualified name, or nil.
func (u *Universe) Lookup(fullName string) *Type {
	if u == nil {
		return nil
	}

	return u.types[fullName]
}

// IsNamespace reports whether path is a known namespace or namespace prefix.
func (u *Universe) IsNamespace(path string) bool {
	_, ok := u.namespaces[path]

	return ok
}

// Types returns all types, sorted by full name.
func (u *Universe) Types() []*Type {
	return slices.SortedFunc(maps.Values(u.types), func(a, b *Type) int {
		return strings.Compare(a.FullName(), b.FullName())
	})
}

// Predefined returns the predefined type for a keyword like `string`, or nil.
func (u *Universe) Predefined(keyword string) *Type {
	for _, p := range predefined {
		if p.keyword == keyword {
			return u.Lookup("System." + p.name)
		}
	}

	return nil
}

var predefined = [...]struct {
	keyword string
	name    string
	kind    syntax.TypeKind
}{
	{"object", "Object", syntax.ClassKind},
	{"string", "String", syntax.ClassKind},
	{"bool", "Boolean", syntax.StructKind},
	{"int", "Int32", syntax.StructKind},
	{"long", "Int64", syntax.StructKind},
	{"float", "Single", syntax.StructKind},
	{"double", "Double", syntax.StructKind},
	{"char", "Char", syntax.StructKind},
}

// IsPredefinedKeyword reports whether name is a predefined type keyword, including `void`.
func IsPredefinedKeyword(name string) bool {
	if name == "void" {
		return true
	}

	for _, p := range predefined {
		if p.keyword == name {
			return true
		}
	}

	return false
}

// QualifiedName renders t as it should be written in generated code: the keyword for
// predefined types, otherwise `global::` followed by the full name.
func QualifiedName(t *Type) string {
	for _, p := range predefined {
		if t.Namespace() == "System" && t.Name() == p.name {
			return p.keyword
		}
	}

	return "global::" + t.FullName()
}
