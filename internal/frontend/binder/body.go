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

package binder

import (
	"strings"

	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// kind classifies what an expression denotes.
type kind uint8

const (
	valueKind kind = iota
	typeKind
	namespaceKind
)

// env is the binding environment of a single member body.
type env struct {
	*binder
	scope    scope
	self     *symbols.Type
	locals   []map[string]*symbols.Local
	bindings []*symbols.Type // receivers of enclosing conditional accesses
}

func (b *binder) bindBodies(e entry) {
	for _, member := range e.decl.Members {
		v := &env{binder: b, scope: e.scope, self: e.typ}
		v.scope.outer = e.typ

		switch d := member.(type) {
		case *syntax.FieldDecl:
			if d.Value != nil {
				v.bindExpr(d.Value)
			}

		case *syntax.MethodDecl:
			v.push()

			for _, p := range d.Params {
				local := symbols.NewLocal(p.Name.Name, b.resolveTypeRef(v.scope, p.Type))
				v.declare(local)
				b.info.Defs[p] = local
			}

			if d.Body != nil {
				v.bindStmt(d.Body)
			}

			if d.ExprBody != nil {
				v.bindExpr(d.ExprBody)
			}

			v.pop()
		}
	}
}

func (v *env) push() { v.locals = append(v.locals, make(map[string]*symbols.Local)) }
func (v *env) pop()  { v.locals = v.locals[:len(v.locals)-1] }

func (v *env) declare(l *symbols.Local) {
	if len(v.locals) == 0 {
		v.push()
	}

	v.locals[len(v.locals)-1][l.Name()] = l
}

func (v *env) lookupLocal(name string) *symbols.Local {
	for i := len(v.locals) - 1; i >= 0; i-- {
		if l, ok := v.locals[i][name]; ok {
			return l
		}
	}

	return nil
}

// ----------------------------------------------------------------------------
// Statements

func (v *env) bindStmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		v.push()

		for _, st := range s.List {
			v.bindStmt(st)
		}

		v.pop()

	case *syntax.ExprStmt:
		v.bindExpr(s.X)

	case *syntax.LocalDeclStmt:
		var t *symbols.Type
		if s.Value != nil {
			t = v.bindExpr(s.Value)
		}

		if s.Type != nil {
			t = v.resolveTypeRef(v.scope, s.Type)
		}

		local := symbols.NewLocal(s.Name.Name, t)
		v.declare(local)
		v.info.Defs[s.Name] = local

	case *syntax.ReturnStmt:
		if s.Result != nil {
			v.bindExpr(s.Result)
		}

	case *syntax.IfStmt:
		v.bindExpr(s.Cond)
		v.bindStmt(s.Then)

		if s.Else != nil {
			v.bindStmt(s.Else)
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions

// bindExpr binds a value expression and returns its static type, or nil.
func (v *env) bindExpr(x syntax.Expr) *symbols.Type {
	t, k := v.bind(x)
	if k != valueKind {
		return nil
	}

	return t
}

func (v *env) bind(x syntax.Expr) (*symbols.Type, kind) {
	t, k := v.bind0(x)
	if t != nil && k == valueKind {
		v.info.Types[x] = t
	}

	return t, k
}

func (v *env) bind0(x syntax.Expr) (*symbols.Type, kind) {
	switch x := x.(type) {
	case *syntax.Ident:
		return v.bindIdent(x)

	case *syntax.BasicLit:
		return v.literalType(x), valueKind

	case *syntax.InterpolatedString:
		return v.universe.Predefined("string"), valueKind

	case *syntax.ThisExpr:
		return v.self, valueKind

	case *syntax.ParenExpr:
		return v.bindExpr(x.X), valueKind

	case *syntax.MemberAccessExpr:
		return v.bindMemberAccess(x)

	case *syntax.MemberBindingExpr:
		recv := v.bindings[len(v.bindings)-1]
		if recv == nil {
			return nil, valueKind
		}

		return v.member(x, x.Name, recv), valueKind

	case *syntax.ConditionalAccessExpr:
		recv := v.bindExpr(x.X)

		v.bindings = append(v.bindings, recv)
		t := v.bindExpr(x.WhenNotNull)
		v.bindings = v.bindings[:len(v.bindings)-1]

		return t, valueKind

	case *syntax.InvocationExpr:
		return v.bindInvocation(x), valueKind

	case *syntax.ObjectCreationExpr:
		for _, a := range x.Args {
			v.bindExpr(a)
		}

		return v.resolveTypeRef(v.scope, x.Type), valueKind

	case *syntax.UnaryExpr:
		t := v.bindExpr(x.X)
		if x.Op == syntax.OpNot {
			return v.universe.Predefined("bool"), valueKind
		}

		return t, valueKind

	case *syntax.AwaitExpr:
		v.bindExpr(x.X)

		return nil, valueKind

	case *syntax.BinaryExpr:
		return v.bindBinary(x), valueKind

	case *syntax.AssignExpr:
		t := v.bindExpr(x.Lhs)
		v.bindExpr(x.Rhs)

		return t, valueKind

	case *syntax.IsPatternExpr:
		v.bindPattern(x.Pattern, v.bindExpr(x.X))

		return v.universe.Predefined("bool"), valueKind
	}

	return nil, valueKind
}

func (v *env) literalType(x *syntax.BasicLit) *symbols.Type {
	switch x.Kind {
	case syntax.StringLit:
		return v.universe.Predefined("string")
	case syntax.CharLit:
		return v.universe.Predefined("char")
	case syntax.TrueLit, syntax.FalseLit:
		return v.universe.Predefined("bool")
	case syntax.NumberLit:
		switch {
		case strings.HasSuffix(x.Value, "f"), strings.HasSuffix(x.Value, "F"):
			return v.universe.Predefined("float")
		case strings.ContainsAny(x.Value, ".dD"):
			return v.universe.Predefined("double")
		case strings.HasSuffix(x.Value, "L"), strings.HasSuffix(x.Value, "l"):
			return v.universe.Predefined("long")
		default:
			return v.universe.Predefined("int")
		}
	default:
		return nil
	}
}

func (v *env) bindIdent(id *syntax.Ident) (*symbols.Type, kind) {
	if l := v.lookupLocal(id.Name); l != nil {
		v.info.Uses[id] = l

		return l.Type, valueKind
	}

	if v.self != nil {
		if f := v.self.Field(id.Name); f != nil {
			v.info.Uses[id] = f

			return f.Type, valueKind
		}
	}

	if t := v.lookupTypeName(v.scope, id.Name); t != nil {
		v.info.Uses[id] = t

		return t, typeKind
	}

	if v.universe.IsNamespace(id.Name) {
		v.info.Uses[id] = symbols.NewNamespace(id.Name)

		return nil, namespaceKind
	}

	return nil, valueKind
}

func (v *env) bindMemberAccess(x *syntax.MemberAccessExpr) (*symbols.Type, kind) {
	recv, k := v.bind(x.X)

	switch k {
	case namespaceKind:
		ns, _ := v.info.Uses[x.X].(*symbols.Namespace)
		if ns == nil {
			return nil, valueKind
		}

		path := ns.Path() + "." + x.Name.Name
		if t := v.universe.Lookup(path); t != nil {
			v.info.Uses[x] = t
			v.info.Uses[x.Name] = t

			return t, typeKind
		}

		if v.universe.IsNamespace(path) {
			ns := symbols.NewNamespace(path)
			v.info.Uses[x] = ns
			v.info.Uses[x.Name] = ns

			return nil, namespaceKind
		}

		return nil, valueKind

	case typeKind:
		if recv == nil {
			return nil, valueKind
		}

		if t := v.universe.Lookup(recv.FullName() + "." + x.Name.Name); t != nil {
			v.info.Uses[x] = t
			v.info.Uses[x.Name] = t

			return t, typeKind
		}

		return v.member(x, x.Name, recv), valueKind

	default:
		if recv == nil {
			return nil, valueKind
		}

		return v.member(x, x.Name, recv), valueKind
	}
}

// member resolves a field access on recv and returns the field type.
func (v *env) member(x syntax.Expr, name *syntax.Ident, recv *symbols.Type) *symbols.Type {
	f := recv.Field(name.Name)
	if f == nil {
		return nil
	}

	v.info.Uses[x] = f
	v.info.Uses[name] = f

	return f.Type
}

func (v *env) bindInvocation(call *syntax.InvocationExpr) *symbols.Type {
	var (
		m    *symbols.Method
		recv *symbols.Type
	)

	switch fun := call.Fun.(type) {
	case *syntax.Ident:
		if v.self != nil {
			m = v.self.Method(fun.Name)
			recv = v.self
		}

		if m != nil {
			v.info.Uses[fun] = m
		}

	case *syntax.MemberAccessExpr:
		var k kind
		recv, k = v.bind(fun.X)

		switch {
		case recv == nil:
		case k == typeKind:
			m = recv.Method(fun.Name.Name)
		case k == valueKind:
			m = v.lookupMethod(recv, fun.Name.Name)
		}

		if m != nil {
			v.info.Uses[fun] = m
			v.info.Uses[fun.Name] = m
		}

	case *syntax.MemberBindingExpr:
		recv = v.bindings[len(v.bindings)-1]
		if recv != nil {
			m = v.lookupMethod(recv, fun.Name.Name)
		}

		if m != nil {
			v.info.Uses[fun] = m
			v.info.Uses[fun.Name] = m
		}

	default:
		v.bindExpr(call.Fun)
	}

	for _, a := range call.Args {
		v.bindExpr(a)
	}

	if m == nil {
		return nil
	}

	v.info.Uses[call] = m

	return resultType(m, recv)
}

// lookupMethod finds an instance method or an applicable extension method.
func (v *env) lookupMethod(recv *symbols.Type, name string) *symbols.Method {
	if m := recv.Method(name); m != nil {
		return m
	}

	for _, m := range v.extensions[name] {
		if pt := m.Params[0].Type; pt == nil || derives(recv, pt) {
			return m
		}
	}

	return nil
}

// resultType returns the result type of a call. A generic result named like the
// generic receiver parameter of an extension method yields the receiver type.
func resultType(m *symbols.Method, recv *symbols.Type) *symbols.Type {
	if m.Result != nil {
		return m.Result
	}

	if m.Extension && m.Params[0].Type == nil && m.ResultName == m.Params[0].TypeName {
		return recv
	}

	return nil
}

func (v *env) bindBinary(x *syntax.BinaryExpr) *symbols.Type {
	tx := v.bindExpr(x.X)
	ty := v.bindExpr(x.Y)

	switch x.Op {
	case syntax.OpCoalesce:
		if tx != nil {
			return tx
		}

		return ty

	case syntax.OpEql, syntax.OpNeq, syntax.OpLss, syntax.OpGtr, syntax.OpLeq, syntax.OpGeq, syntax.OpLAnd, syntax.OpLOr:
		return v.universe.Predefined("bool")

	case syntax.OpAdd:
		if str := v.universe.Predefined("string"); tx == str || ty == str {
			return str
		}

		return tx

	default:
		return tx
	}
}

// ----------------------------------------------------------------------------
// Patterns

func (v *env) bindPattern(p syntax.Pattern, input *symbols.Type) {
	switch p := p.(type) {
	case *syntax.ConstantPattern:
		v.bindExpr(p.Value)

	case *syntax.NotPattern:
		v.bindPattern(p.Pattern, input)

	case *syntax.TypePattern:
		v.resolveTypeRef(v.scope, p.Type)

	case *syntax.DeclarationPattern:
		local := symbols.NewLocal(p.Designation.Name, v.resolveTypeRef(v.scope, p.Type))
		v.declare(local)
		v.info.Defs[p.Designation] = local

	case *syntax.RecursivePattern:
		t := input
		if p.Type != nil {
			t = v.resolveTypeRef(v.scope, p.Type)
		}

		for _, s := range p.Properties.Subpatterns {
			var ft *symbols.Type

			if t != nil {
				if f := t.Field(s.Name.Name); f != nil {
					v.info.Uses[s.Name] = f
					ft = f.Type
				}
			}

			v.bindPattern(s.Pattern, ft)
		}

		if p.Designation != nil {
			local := symbols.NewLocal(p.Designation.Name, t)
			v.declare(local)
			v.info.Defs[p.Designation] = local
		}
	}
}
