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

// Package symbols declares the semantic model of a compilation: nominal types with a
// single optional base type, their members, and the resolution results recorded for
// syntax nodes.
//
// Symbols are compared by identity. Two distinct *[Type] values with the same name are
// different types.
package symbols

import (
	"strings"

	"fillmore-labs.com/lifeguard/syntax"
)

// Object is implemented by all named entities: *[Type], *[Method], *[Field], *[Local] and *[Namespace].
type Object interface {
	Name() string
	object()
}

// Type is a nominal type.
type Type struct {
	name      string
	namespace string
	kind      syntax.TypeKind

	// Base is the single base class, or nil.
	Base *Type

	// Interfaces lists implemented interfaces. They do not take part in the ancestor walk.
	Interfaces []*Type

	Static  bool
	Fields  []*Field
	Methods []*Method

	// Decl is the declaring syntax, or nil for predefined types.
	Decl *syntax.TypeDecl
}

// NewType creates a new type with the given namespace (empty for the global namespace) and name.
func NewType(namespace, name string, kind syntax.TypeKind) *Type {
	return &Type{name: name, namespace: namespace, kind: kind}
}

func (t *Type) Name() string { return t.name }

// Namespace returns the declaring namespace, empty for the global namespace.
func (t *Type) Namespace() string { return t.namespace }

// Kind returns whether this is a class, struct or interface.
func (t *Type) Kind() syntax.TypeKind { return t.kind }

// FullName returns the fully qualified name of the type, like `UnityEngine.Object`.
func (t *Type) FullName() string {
	if t.namespace == "" {
		return t.name
	}

	return t.namespace + "." + t.name
}

func (t *Type) String() string { return t.FullName() }

// Field returns the field with the given name declared in t or one of its ancestors.
func (t *Type) Field(name string) *Field {
	for s := t; s != nil; s = s.Base {
		for _, f := range s.Fields {
			if f.name == name {
				return f
			}
		}
	}

	return nil
}

// Method returns the first method with the given name declared in t or one of its ancestors.
// Overloads are not distinguished.
func (t *Type) Method(name string) *Method {
	for s := t; s != nil; s = s.Base {
		for _, m := range s.Methods {
			if m.name == name && !m.Constructor {
				return m
			}
		}
	}

	return nil
}

// Accessibility is the declared accessibility of a member.
type Accessibility uint8

const (
	Private Accessibility = iota
	Protected
	Internal
	ProtectedInternal
	Public
)

func (a Accessibility) String() string {
	switch a {
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case ProtectedInternal:
		return "protected internal"
	case Public:
		return "public"
	default:
		return "private"
	}
}

// AccessibilityOf derives the declared accessibility from modifiers, given the default for the declaration context.
func AccessibilityOf(mods syntax.Modifiers, def Accessibility) Accessibility {
	switch {
	case mods.Has(syntax.ModProtected | syntax.ModInternal):
		return ProtectedInternal
	case mods.Has(syntax.ModPublic):
		return Public
	case mods.Has(syntax.ModInternal):
		return Internal
	case mods.Has(syntax.ModProtected):
		return Protected
	case mods.Has(syntax.ModPrivate):
		return Private
	default:
		return def
	}
}

// Method is a method or constructor.
type Method struct {
	name  string
	Owner *Type

	Params []*Param

	// Result is the resolved result type, or nil for void, unresolved or generic results.
	Result *Type

	// ResultName is the result type as written in fully qualified form, "void" for no result.
	ResultName string

	Async         bool
	Static        bool
	Extension     bool
	Constructor   bool
	Accessibility Accessibility

	Decl *syntax.MethodDecl
}

// NewMethod creates a method named name, declared in owner.
func NewMethod(owner *Type, name string) *Method {
	return &Method{name: name, Owner: owner}
}

func (m *Method) Name() string { return m.name }

// Receiver returns the extension receiver parameter type, or the owner for instance methods.
func (m *Method) Receiver() *Type {
	if m.Extension && len(m.Params) > 0 {
		return m.Params[0].Type
	}

	return m.Owner
}

// Param is a method parameter.
type Param struct {
	name string

	// Type is the resolved type, or nil.
	Type *Type

	// TypeName is the parameter type in fully qualified form, as it should be written in generated code.
	TypeName string
}

// NewParam creates a parameter.
func NewParam(name string, typ *Type, typeName string) *Param {
	return &Param{name: name, Type: typ, TypeName: typeName}
}

func (p *Param) Name() string { return p.name }

// Field is a field of a type.
type Field struct {
	name     string
	Owner    *Type
	Type     *Type
	TypeName string
	Static   bool

	Decl *syntax.FieldDecl
}

// NewField creates a field.
func NewField(owner *Type, name string, typ *Type, typeName string) *Field {
	return &Field{name: name, Owner: owner, Type: typ, TypeName: typeName}
}

func (f *Field) Name() string { return f.name }

// Local is a local variable, parameter reference or pattern designation.
type Local struct {
	name string
	Type *Type
}

// NewLocal creates a local variable.
func NewLocal(name string, typ *Type) *Local { return &Local{name: name, Type: typ} }

func (l *Local) Name() string { return l.name }

// Namespace is a (possibly partial) namespace name used as a qualifier, like `UnityEngine`.
type Namespace struct {
	path string
}

// NewNamespace creates a namespace reference.
func NewNamespace(path string) *Namespace { return &Namespace{path: path} }

// Name returns the right-most component.
func (n *Namespace) Name() string {
	if i := strings.LastIndexByte(n.path, '.'); i >= 0 {
		return n.path[i+1:]
	}

	return n.path
}

// Path returns the full dotted namespace path.
func (n *Namespace) Path() string { return n.path }

func (*Type) object()      {}
func (*Method) object()    {}
func (*Field) object()     {}
func (*Local) object()     {}
func (*Namespace) object() {}
