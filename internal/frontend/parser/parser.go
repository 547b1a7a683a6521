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

// Package parser converts tree-sitter C# syntax trees into [syntax] nodes.
//
// Conversion stops at the first syntax error or unsupported construct. Property accessor
// bodies, generic type parameters, `where` clauses and constructor initializers are dropped.
// Enum, delegate, event, indexer and operator declarations and assembly attributes are skipped.
package parser

import (
	"context"
	"fmt"
	goscanner "go/scanner"
	"go/token"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"fillmore-labs.com/lifeguard/syntax"
)

type converter struct {
	file *token.File
	src  []byte
	errs goscanner.ErrorList
}

type bailout struct{}

// ParseFile parses the source of a single file, adding it to fset.
// Syntax errors are of type [go/scanner.ErrorList].
func ParseFile(fset *token.FileSet, filename string, src []byte) (f *syntax.File, err error) {
	c := &converter{file: fset.AddFile(filename, -1, len(src)), src: src}
	c.file.SetLinesForContent(src)

	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("can't parse %s: %w", filename, err)
	}
	defer tree.Close()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}

			f, err = nil, c.errs.Err()
		}
	}()

	root := tree.RootNode()
	if root.HasError() {
		c.syntaxError(root)
	}

	f = c.compilationUnit(filename, root)
	f.FileStart = token.Pos(c.file.Base())
	f.FileEnd = token.Pos(c.file.Base() + c.file.Size())

	return f, nil
}

// ----------------------------------------------------------------------------
// Node handling

func (c *converter) pos(n *sitter.Node) token.Pos {
	return token.Pos(c.file.Base() + int(n.StartByte()))
}

// last returns the position of the final byte of n, like a closing brace or semicolon.
func (c *converter) last(n *sitter.Node) token.Pos {
	return token.Pos(c.file.Base() + int(n.EndByte()) - 1)
}

func (c *converter) text(n *sitter.Node) string { return n.Content(c.src) }

func (c *converter) errorf(n *sitter.Node, format string, args ...any) {
	c.errs.Add(c.file.Position(c.pos(n)), fmt.Sprintf(format, args...))
	panic(bailout{})
}

func (c *converter) unsupported(n *sitter.Node) {
	c.errorf(n, "unsupported %s", strings.ReplaceAll(n.Type(), "_", " "))
}

// syntaxError reports the first error or missing node below n.
func (c *converter) syntaxError(n *sitter.Node) {
	e := firstError(n)
	if e == nil {
		c.errorf(n, "syntax error")
	}

	if e.IsMissing() {
		c.errorf(e, "expected '%s'", e.Type())
	}

	text, _, _ := strings.Cut(c.text(e), "\n")
	if len(text) > 20 {
		text = text[:20]
	}

	c.errorf(e, "syntax error near %q", strings.TrimSpace(text))
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}

	if !n.HasError() {
		return nil
	}

	for i := range int(n.ChildCount()) {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}

	return nil
}

func isDirective(typ string) bool {
	return strings.HasPrefix(typ, "preproc") || strings.HasSuffix(typ, "_directive") && typ != "using_directive"
}

// isConditional reports whether a directive node encloses source lines, like `#if`.
func isConditional(typ string) bool {
	return strings.HasPrefix(typ, "preproc_if") || strings.HasPrefix(typ, "preproc_el")
}

// children returns the named children of n, without comments and directives.
// Lines enclosed by conditional directives are included, regardless of the condition.
func (c *converter) children(n *sitter.Node) []*sitter.Node {
	var (
		nodes []*sitter.Node
		cond  *sitter.Node
	)

	if isConditional(n.Type()) {
		cond = n.ChildByFieldName("condition")
	}

	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)

		switch typ := child.Type(); {
		case typ == "comment":

		case isDirective(typ):
			if isConditional(typ) {
				nodes = append(nodes, c.children(child)...)
			}

		case cond != nil && child.StartByte() == cond.StartByte():

		default:
			nodes = append(nodes, child)
		}
	}

	return nodes
}

// fieldOr returns the child of n in field, or its idx-th child, counting from the end when idx is negative.
func (c *converter) fieldOr(n *sitter.Node, field string, idx int) *sitter.Node {
	if f := n.ChildByFieldName(field); f != nil {
		return f
	}

	nodes := c.children(n)
	if idx < 0 {
		idx += len(nodes)
	}

	if idx < 0 || idx >= len(nodes) {
		c.errorf(n, "malformed %s", strings.ReplaceAll(n.Type(), "_", " "))
	}

	return nodes[idx]
}

// childOfType returns the first named child of n with the given type, or nil.
func (c *converter) childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, child := range c.children(n) {
		if child.Type() == typ {
			return child
		}
	}

	return nil
}

// token returns the first anonymous child of n spelled lit.
func (c *converter) token(n *sitter.Node, lit string) *sitter.Node {
	for i := range int(n.ChildCount()) {
		if child := n.Child(i); !child.IsNamed() && child.Type() == lit {
			return child
		}
	}

	c.errorf(n, "expected '%s'", lit)

	return nil
}

// operator returns the operator token of a binary or assignment expression.
func (c *converter) operator(n *sitter.Node) *sitter.Node {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op
	}

	for i := range int(n.ChildCount()) {
		if child := n.Child(i); !child.IsNamed() || child.Type() == "assignment_operator" {
			return child
		}
	}

	c.errorf(n, "missing operator")

	return nil
}

func (c *converter) comments(n *sitter.Node, list []*syntax.Comment) []*syntax.Comment {
	if n.Type() == "comment" {
		return append(list, &syntax.Comment{Slash: c.pos(n), Text: c.text(n)})
	}

	for i := range int(n.ChildCount()) {
		list = c.comments(n.Child(i), list)
	}

	return list
}

func (c *converter) newIdent(n *sitter.Node) *syntax.Ident {
	return &syntax.Ident{NamePos: c.pos(n), Name: c.text(n)}
}

func (c *converter) ident(n *sitter.Node) *syntax.Ident {
	if n.Type() != "identifier" {
		c.errorf(n, "expected identifier, found %s", strings.ReplaceAll(n.Type(), "_", " "))
	}

	return c.newIdent(n)
}

// simpleName converts an identifier, dropping the type arguments of a generic name.
func (c *converter) simpleName(n *sitter.Node) *syntax.Ident {
	if n.Type() == "generic_name" {
		return c.ident(c.fieldOr(n, "name", 0))
	}

	return c.ident(n)
}

// name converts a possibly qualified name.
func (c *converter) name(n *sitter.Node) syntax.Expr {
	if n.Type() != "qualified_name" {
		return c.ident(n)
	}

	qualifier, name := c.fieldOr(n, "qualifier", 0), c.fieldOr(n, "name", -1)

	return &syntax.MemberAccessExpr{X: c.name(qualifier), Dot: c.pos(c.token(n, ".")), Name: c.ident(name)}
}

// ----------------------------------------------------------------------------
// Declarations

func (c *converter) compilationUnit(filename string, root *sitter.Node) *syntax.File {
	f := &syntax.File{Name: filename, Comments: c.comments(root, nil)}

	nodes := c.children(root)
	for i, n := range nodes {
		switch n.Type() {
		case "using_directive":
			if len(f.Decls) > 0 {
				c.errorf(n, "using directive after declaration")
			}

			if u := c.using(n); u != nil {
				f.Usings = append(f.Usings, u)
			}

		case "file_scoped_namespace_declaration":
			ns := c.namespace(n)
			ns.Decls = append(ns.Decls, c.decls(nodes[i+1:])...)
			f.Decls = append(f.Decls, ns)

			return f

		default:
			f.Decls = append(f.Decls, c.decls(nodes[i:i+1])...)
		}
	}

	return f
}

// using converts a using directive. Alias directives return nil.
func (c *converter) using(n *sitter.Node) *syntax.Using {
	for i := range int(n.ChildCount()) {
		switch child := n.Child(i); child.Type() {
		case "name_equals", "=":
			return nil
		}
	}

	return &syntax.Using{Using: c.pos(c.token(n, "using")), Name: c.name(c.fieldOr(n, "name", -1)), Semi: c.last(n)}
}

func (c *converter) decls(nodes []*sitter.Node) []syntax.Decl {
	var decls []syntax.Decl

	for _, n := range nodes {
		switch n.Type() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			decls = append(decls, c.namespace(n))

		case "enum_declaration", "delegate_declaration", "global_attribute", "global_attribute_list":

		default:
			decls = append(decls, c.typeDecl(n))
		}
	}

	return decls
}

func (c *converter) namespace(n *sitter.Node) *syntax.NamespaceDecl {
	name := c.fieldOr(n, "name", 0)
	ns := &syntax.NamespaceDecl{Namespace: c.pos(n), Name: c.name(name)}

	if body := n.ChildByFieldName("body"); body != nil {
		ns.Decls = c.decls(c.children(body))
		ns.Close = c.last(body)

		return ns
	}

	ns.FileScoped = true
	ns.Close = c.pos(c.token(n, ";"))

	var members []*sitter.Node

	for _, child := range c.children(n) {
		if child.StartByte() >= name.EndByte() {
			members = append(members, child)
		}
	}

	ns.Decls = c.decls(members)

	return ns
}

// header converts the attributes and modifiers of a declaration.
func (c *converter) header(n *sitter.Node) ([]*syntax.Attribute, syntax.Modifiers) {
	var (
		attrs []*syntax.Attribute
		mods  syntax.Modifiers
	)

	for _, child := range c.children(n) {
		switch child.Type() {
		case "attribute_list":
			attrs = append(attrs, c.attributes(child)...)

		case "modifier":
			mods |= syntax.LookupModifier(c.text(child))
		}
	}

	return attrs, mods
}

func (c *converter) attributes(n *sitter.Node) []*syntax.Attribute {
	var list []*sitter.Node

	for _, child := range c.children(n) {
		if child.Type() == "attribute" {
			list = append(list, child)
		}
	}

	attrs := make([]*syntax.Attribute, 0, len(list))

	for _, a := range list {
		attr := &syntax.Attribute{Lbrack: c.pos(a), Name: c.name(c.fieldOr(a, "name", 0)), Rbrack: c.last(a)}
		if len(list) == 1 {
			attr.Lbrack, attr.Rbrack = c.pos(n), c.last(n)
		}

		if args := c.childOfType(a, "attribute_argument_list"); args != nil {
			for _, arg := range c.children(args) {
				attr.Args = append(attr.Args, c.expr(c.fieldOr(arg, "expression", -1)))
			}
		}

		attrs = append(attrs, attr)
	}

	return attrs
}

var typeKeywords = map[string]syntax.TypeKind{
	"class": syntax.ClassKind, "record": syntax.ClassKind, "struct": syntax.StructKind, "interface": syntax.InterfaceKind,
}

func (c *converter) typeDecl(n *sitter.Node) *syntax.TypeDecl {
	switch n.Type() {
	case "class_declaration", "struct_declaration", "interface_declaration",
		"record_declaration", "record_struct_declaration":
	default:
		c.unsupported(n)
	}

	d := &syntax.TypeDecl{Start: c.pos(n)}
	d.Attributes, d.Modifiers = c.header(n)

	for i := range int(n.ChildCount()) { // `record struct` is a struct
		child := n.Child(i)
		if kind, ok := typeKeywords[child.Type()]; ok && !child.IsNamed() {
			if d.Keyword == token.NoPos {
				d.Keyword = c.pos(child)
			}

			if kind != syntax.ClassKind {
				d.Kind = kind
			}
		}
	}

	d.Name = c.ident(c.fieldOr(n, "name", 0))

	if bases := c.childOfType(n, "base_list"); bases != nil {
		for _, b := range c.children(bases) {
			switch b.Type() {
			case "argument_list":
				continue
			case "primary_constructor_base_type":
				b = c.fieldOr(b, "type", 0)
			}

			d.Bases = append(d.Bases, c.typeRef(b))
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		body = c.childOfType(n, "declaration_list")
	}

	if body == nil {
		c.errorf(n, "expected '{'")
	}

	d.Lbrace, d.Rbrace = c.pos(body), c.last(body)
	d.Members = c.members(c.children(body))

	return d
}

func (c *converter) members(nodes []*sitter.Node) []syntax.Decl {
	var members []syntax.Decl

	for _, n := range nodes {
		switch n.Type() {
		case "field_declaration":
			members = append(members, c.fields(n)...)

		case "property_declaration":
			members = append(members, c.property(n))

		case "method_declaration":
			members = append(members, c.method(n, false))

		case "constructor_declaration":
			members = append(members, c.method(n, true))

		case "event_field_declaration", "event_declaration", "indexer_declaration", "operator_declaration",
			"conversion_operator_declaration", "destructor_declaration", "enum_declaration", "delegate_declaration":

		default:
			members = append(members, c.typeDecl(n))
		}
	}

	return members
}

type variable struct {
	start token.Pos
	name  *syntax.Ident
	value syntax.Expr
}

// variables converts a variable declaration. The type is nil for `var`.
func (c *converter) variables(n *sitter.Node) (*syntax.TypeRef, []variable) {
	var typ *syntax.TypeRef
	if t := c.fieldOr(n, "type", 0); t.Type() != "implicit_type" && c.text(t) != "var" {
		typ = c.typeRef(t)
	}

	var vars []variable

	for _, d := range c.children(n) {
		if d.Type() != "variable_declarator" {
			continue
		}

		name := c.fieldOr(d, "name", 0)
		v := variable{start: c.pos(d), name: c.ident(name)}

		for _, child := range c.children(d) {
			if child.StartByte() < name.EndByte() {
				continue
			}

			v.value = c.value(child)
		}

		vars = append(vars, v)
	}

	if len(vars) == 0 {
		c.errorf(n, "expected variable name")
	}

	return typ, vars
}

// value converts an initializer or expression body.
func (c *converter) value(n *sitter.Node) syntax.Expr {
	switch n.Type() {
	case "equals_value_clause", "arrow_expression_clause":
		return c.expr(c.fieldOr(n, "value", -1))

	case "bracketed_argument_list":
		c.unsupported(n)
	}

	return c.expr(n)
}

func (c *converter) fields(n *sitter.Node) []syntax.Decl {
	attrs, mods := c.header(n)

	decl := c.childOfType(n, "variable_declaration")
	if decl == nil {
		c.errorf(n, "expected variable declaration")
	}

	typ, vars := c.variables(decl)

	fields := make([]syntax.Decl, 0, len(vars))
	for i, v := range vars {
		start := v.start
		if i == 0 {
			start = c.pos(n)
		}

		fields = append(fields, &syntax.FieldDecl{
			Start: start, Attributes: attrs, Modifiers: mods, Type: typ, Name: v.name, Value: v.value, Semi: c.last(n),
		})
	}

	return fields
}

// property converts a property to a field with its initializer or expression body as value.
func (c *converter) property(n *sitter.Node) *syntax.FieldDecl {
	d := &syntax.FieldDecl{Start: c.pos(n), Semi: c.last(n)}
	d.Attributes, d.Modifiers = c.header(n)
	d.Type = c.typeRef(c.fieldOr(n, "type", 0))
	d.Name = c.ident(c.fieldOr(n, "name", 1))

	if v := n.ChildByFieldName("value"); v != nil {
		d.Value = c.value(v)
	} else if v := c.childOfType(n, "arrow_expression_clause"); v != nil {
		d.Value = c.value(v)
	}

	return d
}

func (c *converter) method(n *sitter.Node, constructor bool) *syntax.MethodDecl {
	d := &syntax.MethodDecl{Start: c.pos(n)}
	d.Attributes, d.Modifiers = c.header(n)

	if !constructor {
		t := n.ChildByFieldName("returns")
		if t == nil {
			t = c.fieldOr(n, "type", 0)
		}

		d.Type = c.typeRef(t)
	}

	d.Name = c.ident(c.fieldOr(n, "name", 1))

	params := n.ChildByFieldName("parameters")
	if params == nil {
		params = c.childOfType(n, "parameter_list")
	}

	if params == nil {
		c.errorf(n, "expected '('")
	}

	d.Rparen = c.last(params)

	for _, p := range c.children(params) {
		d.Params = append(d.Params, c.param(p))
	}

	for _, child := range c.children(n) {
		switch child.Type() {
		case "block":
			d.Body = c.block(child)

		case "arrow_expression_clause":
			d.ExprBody = c.value(child)
			d.Semi = c.last(n)
		}
	}

	if d.Body == nil && d.ExprBody == nil {
		d.Semi = c.last(n)
	}

	return d
}

func (c *converter) param(n *sitter.Node) *syntax.Param {
	if n.Type() != "parameter" {
		c.unsupported(n)
	}

	typ := c.fieldOr(n, "type", 0)
	p := &syntax.Param{Start: c.pos(n), Type: c.typeRef(typ), Name: c.ident(c.fieldOr(n, "name", 1))}

	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child.StartByte() >= typ.StartByte() {
			break
		}

		if c.text(child) == "this" {
			p.This = true
		}
	}

	return p
}

func (c *converter) typeRef(n *sitter.Node) *syntax.TypeRef {
	switch n.Type() {
	case "identifier":
		return &syntax.TypeRef{Name: c.ident(n)}

	case "predefined_type":
		return &syntax.TypeRef{Name: c.newIdent(n)}

	case "qualified_name":
		name := c.fieldOr(n, "name", -1)
		if name.Type() != "generic_name" {
			return &syntax.TypeRef{Name: c.name(n)}
		}

		t := c.typeRef(name)
		t.Name = &syntax.MemberAccessExpr{
			X:    c.name(c.fieldOr(n, "qualifier", 0)),
			Dot:  c.pos(c.token(n, ".")),
			Name: t.Name.(*syntax.Ident),
		}

		return t

	case "generic_name":
		t := &syntax.TypeRef{Name: c.simpleName(n)}

		args := c.childOfType(n, "type_argument_list")
		if args == nil {
			c.errorf(n, "expected '<'")
		}

		t.Lt, t.Gt = c.pos(args), c.last(args)
		for _, a := range c.children(args) {
			t.Args = append(t.Args, c.typeRef(a))
		}

		return t

	case "nullable_type":
		t := c.typeRef(c.fieldOr(n, "type", 0))
		t.Question = c.last(n)

		return t

	default:
		c.unsupported(n)

		return nil
	}
}
