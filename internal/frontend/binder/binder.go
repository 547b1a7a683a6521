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

// Package binder declares the types and members of a set of parsed files and resolves
// names, member accesses and invocations in their bodies.
//
// Unresolvable names are not errors: they leave no entry in the resulting [symbols.Info].
package binder

import (
	"strings"

	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// Bind declares all types of files in a new universe and resolves their bodies.
func Bind(files []*syntax.File) (*symbols.Universe, *symbols.Info) {
	b := &binder{
		universe:   symbols.NewUniverse(),
		info:       symbols.NewInfo(),
		extensions: make(map[string][]*symbols.Method),
	}

	for _, f := range files {
		sc := scope{usings: usingNames(f)}
		b.declareAll(f.Decls, sc)
	}

	for _, e := range b.entries {
		b.resolveBases(e)
	}

	for _, e := range b.entries {
		b.declareMembers(e)
	}

	for _, e := range b.entries {
		b.bindBodies(e)
	}

	return b.universe, b.info
}

type binder struct {
	universe   *symbols.Universe
	info       *symbols.Info
	entries    []entry
	extensions map[string][]*symbols.Method
}

// scope is the naming context of a type declaration.
type scope struct {
	namespace string
	usings    []string
	outer     *symbols.Type
}

type entry struct {
	typ   *symbols.Type
	decl  *syntax.TypeDecl
	scope scope
}

func usingNames(f *syntax.File) []string {
	names := make([]string, 0, len(f.Usings))
	for _, u := range f.Usings {
		names = append(names, syntax.ExprString(u.Name))
	}

	return names
}

func (b *binder) declareAll(decls []syntax.Decl, sc scope) {
	for _, d := range decls {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			inner := sc
			inner.namespace = joinName(sc.namespace, syntax.ExprString(d.Name))
			b.declareAll(d.Decls, inner)

		case *syntax.TypeDecl:
			b.declareType(d, sc)
		}
	}
}

func (b *binder) declareType(d *syntax.TypeDecl, sc scope) {
	ns := sc.namespace
	if sc.outer != nil {
		ns = sc.outer.FullName()
	}

	t := symbols.NewType(ns, d.Name.Name, d.Kind)
	if prev := b.universe.Insert(t); prev != nil { // partial declaration
		t = prev
	} else {
		t.Decl = d
	}

	t.Static = t.Static || d.Modifiers.Has(syntax.ModStatic)

	b.info.Defs[d] = t
	b.entries = append(b.entries, entry{typ: t, decl: d, scope: sc})

	inner := sc
	inner.outer = t

	for _, m := range d.Members {
		if nested, ok := m.(*syntax.TypeDecl); ok {
			b.declareType(nested, inner)
		}
	}
}

func (b *binder) resolveBases(e entry) {
	for _, ref := range e.decl.Bases {
		bt := b.resolveTypeRef(e.scope, ref)

		switch {
		case bt == nil, bt == e.typ:
		case bt.Kind() == syntax.InterfaceKind:
			e.typ.Interfaces = append(e.typ.Interfaces, bt)

		case e.typ.Base == nil && !derives(bt, e.typ):
			e.typ.Base = bt
		}
	}
}

// derives reports whether t has ancestor as base, to avoid introducing cycles.
func derives(t, ancestor *symbols.Type) bool {
	for s := t; s != nil; s = s.Base {
		if s == ancestor {
			return true
		}
	}

	return false
}

func (b *binder) declareMembers(e entry) {
	t := e.typ

	def := symbols.Private
	if t.Kind() == syntax.InterfaceKind {
		def = symbols.Public
	}

	for _, member := range e.decl.Members {
		switch d := member.(type) {
		case *syntax.FieldDecl:
			f := symbols.NewField(t, d.Name.Name, b.resolveTypeRef(e.scope, d.Type), b.typeName(e.scope, d.Type))
			f.Static = d.Modifiers.Has(syntax.ModStatic) || d.Modifiers.Has(syntax.ModConst)
			f.Decl = d
			t.Fields = append(t.Fields, f)
			b.info.Defs[d] = f

		case *syntax.MethodDecl:
			m := b.declareMethod(e.scope, t, d, def)
			t.Methods = append(t.Methods, m)
			b.info.Defs[d] = m

			if m.Extension {
				b.extensions[m.Name()] = append(b.extensions[m.Name()], m)
			}
		}
	}
}

func (b *binder) declareMethod(sc scope, owner *symbols.Type, d *syntax.MethodDecl, def symbols.Accessibility) *symbols.Method {
	m := symbols.NewMethod(owner, d.Name.Name)
	m.Decl = d
	m.Static = d.Modifiers.Has(syntax.ModStatic)
	m.Async = d.Modifiers.Has(syntax.ModAsync)
	m.Accessibility = symbols.AccessibilityOf(d.Modifiers, def)

	if d.Constructor() {
		m.Constructor = true
		m.ResultName = "void"
	} else {
		m.ResultName = b.typeName(sc, d.Type)
		if m.ResultName != "void" {
			m.Result = b.resolveTypeRef(sc, d.Type)
		}
	}

	for i, p := range d.Params {
		if i == 0 && p.This && m.Static {
			m.Extension = true
		}

		m.Params = append(m.Params, symbols.NewParam(p.Name.Name, b.resolveTypeRef(sc, p.Type), b.typeName(sc, p.Type)))
	}

	return m
}

// ----------------------------------------------------------------------------
// Type names

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

func parentNamespace(ns string) string {
	if i := strings.LastIndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}

	return ""
}

// lookupTypeName resolves a possibly qualified type name as written in the given scope.
func (b *binder) lookupTypeName(sc scope, name string) *symbols.Type {
	if t := b.universe.Predefined(name); t != nil {
		return t
	}

	if sc.outer != nil {
		if t := b.universe.Lookup(sc.outer.FullName() + "." + name); t != nil {
			return t
		}
	}

	for ns := sc.namespace; ; ns = parentNamespace(ns) {
		if t := b.universe.Lookup(joinName(ns, name)); t != nil {
			return t
		}

		if ns == "" {
			break
		}
	}

	for _, u := range sc.usings {
		if t := b.universe.Lookup(u + "." + name); t != nil {
			return t
		}
	}

	return nil
}

func (b *binder) resolveTypeRef(sc scope, ref *syntax.TypeRef) *symbols.Type {
	if ref == nil || len(ref.Args) > 0 {
		return nil
	}

	t := b.lookupTypeName(sc, syntax.ExprString(ref.Name))
	if t != nil {
		b.info.Uses[ref.Name] = t
	}

	return t
}

// typeName renders a type reference in fully qualified form, like `global::UnityEngine.Object`.
// Predefined keywords and unresolved names are kept as written.
func (b *binder) typeName(sc scope, ref *syntax.TypeRef) string {
	var s strings.Builder

	name := syntax.ExprString(ref.Name)

	switch {
	case symbols.IsPredefinedKeyword(name):
		s.WriteString(name)

	default:
		if t := b.lookupTypeName(sc, name); t != nil {
			s.WriteString("global::")
			s.WriteString(t.FullName())
		} else {
			s.WriteString(name)
		}
	}

	if len(ref.Args) > 0 {
		s.WriteByte('<')

		for i, a := range ref.Args {
			if i > 0 {
				s.WriteString(", ")
			}

			s.WriteString(b.typeName(sc, a))
		}

		s.WriteByte('>')
	}

	if ref.Question.IsValid() {
		s.WriteByte('?')
	}

	return s.String()
}
