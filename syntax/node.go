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

package syntax

import (
	"go/token"
	"strconv"
	"strings"
)

// Node is implemented by all syntax tree nodes.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is implemented by all pattern nodes (the right-hand side of `is`).
type Pattern interface {
	Node
	patternNode()
}

// Decl is implemented by namespace, type and member declarations.
type Decl interface {
	Node
	declNode()
}

// ----------------------------------------------------------------------------
// Files and declarations

type (
	// File is a single source file.
	File struct {
		Name      string // file path as given by the host
		FileStart token.Pos
		FileEnd   token.Pos
		Usings    []*Using
		Decls     []Decl // *NamespaceDecl or *TypeDecl
		Comments  []*Comment
	}

	// Comment is a single `//` or `/* */` comment, including the comment markers.
	Comment struct {
		Slash token.Pos
		Text  string
	}

	// Using is a `using Name;` directive.
	Using struct {
		Using token.Pos
		Name  Expr // *Ident or *MemberAccessExpr
		Semi  token.Pos
	}

	// NamespaceDecl is a block or file-scoped namespace declaration.
	NamespaceDecl struct {
		Namespace  token.Pos
		Name       Expr // *Ident or *MemberAccessExpr
		FileScoped bool
		Decls      []Decl
		Close      token.Pos // position of '}' or ';'
	}

	// Attribute is a single `[Name(Args)]` attribute.
	Attribute struct {
		Lbrack token.Pos
		Name   Expr
		Args   []Expr
		Rbrack token.Pos
	}

	// TypeDecl is a class, struct or interface declaration.
	TypeDecl struct {
		Start      token.Pos // first attribute, modifier or keyword
		Attributes []*Attribute
		Modifiers  Modifiers
		Keyword    token.Pos
		Kind       TypeKind
		Name       *Ident
		Bases      []*TypeRef
		Members    []Decl // *FieldDecl, *MethodDecl or *TypeDecl
		Lbrace     token.Pos
		Rbrace     token.Pos
	}

	// FieldDecl is a single field declaration.
	FieldDecl struct {
		Start      token.Pos
		Attributes []*Attribute
		Modifiers  Modifiers
		Type       *TypeRef
		Name       *Ident
		Value      Expr // or nil
		Semi       token.Pos
	}

	// MethodDecl is a method or constructor declaration.
	MethodDecl struct {
		Start      token.Pos
		Attributes []*Attribute
		Modifiers  Modifiers
		Type       *TypeRef // result type; nil for constructors
		Name       *Ident
		Params     []*Param
		Rparen     token.Pos
		Body       *BlockStmt // or nil
		ExprBody   Expr       // `=> expr;` body, or nil
		Semi       token.Pos  // terminating ';' for abstract or expression bodied methods
	}

	// Param is a single method parameter.
	Param struct {
		Start token.Pos
		This  bool // extension method receiver
		Type  *TypeRef
		Name  *Ident
	}

	// TypeRef is a reference to a named type, like `UnityEngine.Object` or `List<int>?`.
	TypeRef struct {
		Name     Expr // *Ident or *MemberAccessExpr
		Lt       token.Pos
		Args     []*TypeRef
		Gt       token.Pos
		Question token.Pos // position of a nullable '?', or token.NoPos
	}
)

// TypeKind distinguishes type declarations.
type TypeKind uint8

const (
	ClassKind TypeKind = iota
	StructKind
	InterfaceKind
)

func (k TypeKind) String() string {
	switch k {
	case StructKind:
		return "struct"
	case InterfaceKind:
		return "interface"
	default:
		return "class"
	}
}

func (f *File) Pos() token.Pos          { return f.FileStart }
func (f *File) End() token.Pos          { return f.FileEnd }
func (c *Comment) Pos() token.Pos       { return c.Slash }
func (c *Comment) End() token.Pos       { return c.Slash + token.Pos(len(c.Text)) }
func (u *Using) Pos() token.Pos         { return u.Using }
func (u *Using) End() token.Pos         { return u.Semi + 1 }
func (n *NamespaceDecl) Pos() token.Pos { return n.Namespace }

func (n *NamespaceDecl) End() token.Pos {
	if n.FileScoped && len(n.Decls) > 0 {
		return n.Decls[len(n.Decls)-1].End()
	}

	return n.Close + 1
}
func (a *Attribute) Pos() token.Pos  { return a.Lbrack }
func (a *Attribute) End() token.Pos  { return a.Rbrack + 1 }
func (d *TypeDecl) Pos() token.Pos   { return d.Start }
func (d *TypeDecl) End() token.Pos   { return d.Rbrace + 1 }
func (d *FieldDecl) Pos() token.Pos  { return d.Start }
func (d *FieldDecl) End() token.Pos  { return d.Semi + 1 }
func (d *MethodDecl) Pos() token.Pos { return d.Start }

func (d *MethodDecl) End() token.Pos {
	if d.Body != nil {
		return d.Body.End()
	}

	return d.Semi + 1
}
func (p *Param) Pos() token.Pos   { return p.Start }
func (p *Param) End() token.Pos   { return p.Name.End() }
func (t *TypeRef) Pos() token.Pos { return t.Name.Pos() }

func (t *TypeRef) End() token.Pos {
	switch {
	case t.Question.IsValid():
		return t.Question + 1
	case t.Gt.IsValid():
		return t.Gt + 1
	default:
		return t.Name.End()
	}
}

// Constructor reports whether the method declaration is a constructor.
func (d *MethodDecl) Constructor() bool { return d.Type == nil }

// String returns the source form of the type reference.
func (t *TypeRef) String() string {
	var b strings.Builder
	writeTypeRef(&b, t)

	return b.String()
}

// Simple returns the right-most identifier of the type name.
func (t *TypeRef) Simple() string {
	switch n := t.Name.(type) {
	case *Ident:
		return n.Name
	case *MemberAccessExpr:
		return n.Name.Name
	}

	return ""
}

func (*NamespaceDecl) declNode() {}
func (*TypeDecl) declNode()      {}
func (*FieldDecl) declNode()     {}
func (*MethodDecl) declNode()    {}

// ----------------------------------------------------------------------------
// Statements

type (
	// BlockStmt is a braced statement list.
	BlockStmt struct {
		Lbrace token.Pos
		List   []Stmt
		Rbrace token.Pos
	}

	// ExprStmt is an expression used as a statement.
	ExprStmt struct {
		X    Expr
		Semi token.Pos
	}

	// LocalDeclStmt declares a local variable: `T x = v;` or `var x = v;`.
	LocalDeclStmt struct {
		Start token.Pos
		Type  *TypeRef // nil for `var`
		Name  *Ident
		Value Expr // or nil
		Semi  token.Pos
	}

	// ReturnStmt is a `return` or `yield return` statement.
	ReturnStmt struct {
		Return token.Pos // position of `return`, or of `yield`
		Yield  bool
		Result Expr // or nil
		Semi   token.Pos
	}

	// IfStmt is an if statement with optional else branch.
	IfStmt struct {
		If   token.Pos
		Cond Expr
		Then Stmt
		Else Stmt // or nil
	}
)

func (s *BlockStmt) Pos() token.Pos     { return s.Lbrace }
func (s *BlockStmt) End() token.Pos     { return s.Rbrace + 1 }
func (s *ExprStmt) Pos() token.Pos      { return s.X.Pos() }
func (s *ExprStmt) End() token.Pos      { return s.Semi + 1 }
func (s *LocalDeclStmt) Pos() token.Pos { return s.Start }
func (s *LocalDeclStmt) End() token.Pos { return s.Semi + 1 }
func (s *ReturnStmt) Pos() token.Pos    { return s.Return }
func (s *ReturnStmt) End() token.Pos    { return s.Semi + 1 }
func (s *IfStmt) Pos() token.Pos        { return s.If }

func (s *IfStmt) End() token.Pos {
	if s.Else != nil {
		return s.Else.End()
	}

	return s.Then.End()
}

func (*BlockStmt) stmtNode()     {}
func (*ExprStmt) stmtNode()      {}
func (*LocalDeclStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()    {}
func (*IfStmt) stmtNode()        {}

// ----------------------------------------------------------------------------
// Expressions

type (
	// Ident is an identifier, including predefined type keywords like `string`.
	Ident struct {
		NamePos token.Pos
		Name    string
	}

	// BasicLit is a literal of basic kind.
	BasicLit struct {
		ValuePos token.Pos
		Kind     LitKind
		Value    string // literal source text, e.g. `"abc"` or `null`
	}

	// InterpolatedString is an interpolated string literal `$"..."`, kept as opaque source text.
	InterpolatedString struct {
		Dollar token.Pos
		Value  string
	}

	// ParenExpr is a parenthesized expression.
	ParenExpr struct {
		Lparen token.Pos
		X      Expr
		Rparen token.Pos
	}

	// MemberAccessExpr is a member access `X.Name`.
	MemberAccessExpr struct {
		X    Expr
		Dot  token.Pos
		Name *Ident
	}

	// MemberBindingExpr is the `.Name` member binding inside a conditional access.
	MemberBindingExpr struct {
		Dot  token.Pos
		Name *Ident
	}

	// ConditionalAccessExpr is `X?.WhenNotNull`, where WhenNotNull is rooted in a
	// [MemberBindingExpr].
	ConditionalAccessExpr struct {
		X           Expr
		Question    token.Pos
		WhenNotNull Expr
	}

	// InvocationExpr is a call `Fun(Args)`.
	InvocationExpr struct {
		Fun    Expr
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// ObjectCreationExpr is `new Type(Args)`.
	ObjectCreationExpr struct {
		New    token.Pos
		Type   *TypeRef
		Lparen token.Pos
		Args   []Expr
		Rparen token.Pos
	}

	// UnaryExpr is a prefix unary expression.
	UnaryExpr struct {
		OpPos token.Pos
		Op    Op
		X     Expr
	}

	// AwaitExpr is `await X`.
	AwaitExpr struct {
		Await token.Pos
		X     Expr
	}

	// BinaryExpr is a binary expression, including null coalescing `X ?? Y`.
	BinaryExpr struct {
		X     Expr
		OpPos token.Pos
		Op    Op
		Y     Expr
	}

	// AssignExpr is a simple assignment `Lhs = Rhs`.
	AssignExpr struct {
		Lhs    Expr
		TokPos token.Pos
		Rhs    Expr
	}

	// IsPatternExpr is a pattern match `X is Pattern`.
	IsPatternExpr struct {
		X       Expr
		Is      token.Pos
		Pattern Pattern
	}

	// ThisExpr is the `this` keyword.
	ThisExpr struct {
		This token.Pos
	}
)

// LitKind is the kind of [BasicLit].
type LitKind uint8

const (
	NullLit LitKind = iota
	TrueLit
	FalseLit
	NumberLit
	StringLit
	CharLit
)

func (x *Ident) Pos() token.Pos                 { return x.NamePos }
func (x *Ident) End() token.Pos                 { return x.NamePos + token.Pos(len(x.Name)) }
func (x *BasicLit) Pos() token.Pos              { return x.ValuePos }
func (x *BasicLit) End() token.Pos              { return x.ValuePos + token.Pos(len(x.Value)) }
func (x *InterpolatedString) Pos() token.Pos    { return x.Dollar }
func (x *InterpolatedString) End() token.Pos    { return x.Dollar + token.Pos(len(x.Value)) }
func (x *ParenExpr) Pos() token.Pos             { return x.Lparen }
func (x *ParenExpr) End() token.Pos             { return x.Rparen + 1 }
func (x *MemberAccessExpr) Pos() token.Pos      { return x.X.Pos() }
func (x *MemberAccessExpr) End() token.Pos      { return x.Name.End() }
func (x *MemberBindingExpr) Pos() token.Pos     { return x.Dot }
func (x *MemberBindingExpr) End() token.Pos     { return x.Name.End() }
func (x *ConditionalAccessExpr) Pos() token.Pos { return x.X.Pos() }
func (x *ConditionalAccessExpr) End() token.Pos { return x.WhenNotNull.End() }
func (x *InvocationExpr) Pos() token.Pos        { return x.Fun.Pos() }
func (x *InvocationExpr) End() token.Pos        { return x.Rparen + 1 }
func (x *ObjectCreationExpr) Pos() token.Pos    { return x.New }
func (x *ObjectCreationExpr) End() token.Pos    { return x.Rparen + 1 }
func (x *UnaryExpr) Pos() token.Pos             { return x.OpPos }
func (x *UnaryExpr) End() token.Pos             { return x.X.End() }
func (x *AwaitExpr) Pos() token.Pos             { return x.Await }
func (x *AwaitExpr) End() token.Pos             { return x.X.End() }
func (x *BinaryExpr) Pos() token.Pos            { return x.X.Pos() }
func (x *BinaryExpr) End() token.Pos            { return x.Y.End() }
func (x *AssignExpr) Pos() token.Pos            { return x.Lhs.Pos() }
func (x *AssignExpr) End() token.Pos            { return x.Rhs.End() }
func (x *IsPatternExpr) Pos() token.Pos         { return x.X.Pos() }
func (x *IsPatternExpr) End() token.Pos         { return x.Pattern.End() }
func (x *ThisExpr) Pos() token.Pos              { return x.This }
func (x *ThisExpr) End() token.Pos              { return x.This + 4 }

func (*Ident) exprNode()                 {}
func (*BasicLit) exprNode()              {}
func (*InterpolatedString) exprNode()    {}
func (*ParenExpr) exprNode()             {}
func (*MemberAccessExpr) exprNode()      {}
func (*MemberBindingExpr) exprNode()     {}
func (*ConditionalAccessExpr) exprNode() {}
func (*InvocationExpr) exprNode()        {}
func (*ObjectCreationExpr) exprNode()    {}
func (*UnaryExpr) exprNode()             {}
func (*AwaitExpr) exprNode()             {}
func (*BinaryExpr) exprNode()            {}
func (*AssignExpr) exprNode()            {}
func (*IsPatternExpr) exprNode()         {}
func (*ThisExpr) exprNode()              {}

// StringValue returns the value of a string literal, without quotes and with escapes resolved.
// It returns false if x is not a well-formed string literal.
func (x *BasicLit) StringValue() (string, bool) {
	if x.Kind != StringLit || len(x.Value) < 2 {
		return "", false
	}

	if x.Value[0] == '@' {
		return strings.ReplaceAll(x.Value[2:len(x.Value)-1], `""`, `"`), true
	}

	s, err := strconv.Unquote(x.Value)
	if err != nil {
		return "", false
	}

	return s, true
}

// ----------------------------------------------------------------------------
// Patterns

type (
	// ConstantPattern matches a constant, like `null`.
	ConstantPattern struct {
		Value Expr
	}

	// NotPattern negates a pattern: `not P`.
	NotPattern struct {
		Not     token.Pos
		Pattern Pattern
	}

	// RecursivePattern is a property pattern with optional type and designation, like `{}`,
	// `{} x` or `T { P: 1 } x`.
	RecursivePattern struct {
		Type        *TypeRef // or nil
		Properties  *PropertyPatternClause
		Designation *Ident // or nil
	}

	// PropertyPatternClause is the braced part of a [RecursivePattern].
	PropertyPatternClause struct {
		Lbrace      token.Pos
		Subpatterns []*Subpattern
		Rbrace      token.Pos
	}

	// Subpattern is a single `Name: Pattern` entry of a property pattern.
	Subpattern struct {
		Name    *Ident
		Pattern Pattern
	}

	// TypePattern matches a type without a designation: `is T`.
	TypePattern struct {
		Type *TypeRef
	}

	// DeclarationPattern matches a type and declares a variable: `is T x`.
	DeclarationPattern struct {
		Type        *TypeRef
		Designation *Ident
	}
)

func (p *ConstantPattern) Pos() token.Pos { return p.Value.Pos() }
func (p *ConstantPattern) End() token.Pos { return p.Value.End() }
func (p *NotPattern) Pos() token.Pos      { return p.Not }
func (p *NotPattern) End() token.Pos      { return p.Pattern.End() }

func (p *RecursivePattern) Pos() token.Pos {
	if p.Type != nil {
		return p.Type.Pos()
	}

	return p.Properties.Pos()
}

func (p *RecursivePattern) End() token.Pos {
	if p.Designation != nil {
		return p.Designation.End()
	}

	return p.Properties.End()
}
func (c *PropertyPatternClause) Pos() token.Pos { return c.Lbrace }
func (c *PropertyPatternClause) End() token.Pos { return c.Rbrace + 1 }
func (s *Subpattern) Pos() token.Pos            { return s.Name.Pos() }
func (s *Subpattern) End() token.Pos            { return s.Pattern.End() }
func (p *TypePattern) Pos() token.Pos           { return p.Type.Pos() }
func (p *TypePattern) End() token.Pos           { return p.Type.End() }
func (p *DeclarationPattern) Pos() token.Pos    { return p.Type.Pos() }
func (p *DeclarationPattern) End() token.Pos    { return p.Designation.End() }

func (*ConstantPattern) patternNode()    {}
func (*NotPattern) patternNode()         {}
func (*RecursivePattern) patternNode()   {}
func (*TypePattern) patternNode()        {}
func (*DeclarationPattern) patternNode() {}

// Unparen returns the expression with any enclosing parentheses removed.
func Unparen(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}

		e = p.X
	}
}
