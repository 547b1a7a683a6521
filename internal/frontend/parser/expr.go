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

package parser

import (
	"go/token"

	sitter "github.com/smacker/go-tree-sitter"

	"fillmore-labs.com/lifeguard/syntax"
)

// ----------------------------------------------------------------------------
// Statements

func (c *converter) block(n *sitter.Node) *syntax.BlockStmt {
	b := &syntax.BlockStmt{Lbrace: c.pos(n), Rbrace: c.last(n)}

	for _, s := range c.children(n) {
		b.List = append(b.List, c.stmts(s)...)
	}

	return b
}

// stmts converts a statement, splitting local declarations with multiple variables.
func (c *converter) stmts(n *sitter.Node) []syntax.Stmt {
	if n.Type() != "local_declaration_statement" {
		return []syntax.Stmt{c.stmt(n)}
	}

	decl := c.childOfType(n, "variable_declaration")
	if decl == nil {
		c.unsupported(n)
	}

	typ, vars := c.variables(decl)

	list := make([]syntax.Stmt, 0, len(vars))
	for i, v := range vars {
		start := v.start
		if i == 0 {
			start = c.pos(n)
		}

		list = append(list, &syntax.LocalDeclStmt{Start: start, Type: typ, Name: v.name, Value: v.value, Semi: c.last(n)})
	}

	return list
}

func (c *converter) stmt(n *sitter.Node) syntax.Stmt {
	switch n.Type() {
	case "block":
		return c.block(n)

	case "expression_statement":
		return &syntax.ExprStmt{X: c.expr(c.fieldOr(n, "expression", 0)), Semi: c.last(n)}

	case "local_declaration_statement":
		if list := c.stmts(n); len(list) == 1 {
			return list[0]
		}

	case "return_statement":
		s := &syntax.ReturnStmt{Return: c.pos(n), Semi: c.last(n)}
		if x := c.children(n); len(x) > 0 {
			s.Result = c.expr(x[0])
		}

		return s

	case "yield_statement":
		s := &syntax.ReturnStmt{Return: c.pos(n), Yield: true, Semi: c.last(n)}
		if x := c.children(n); len(x) > 0 {
			s.Result = c.expr(x[0])
		}

		return s

	case "if_statement":
		s := &syntax.IfStmt{
			If:   c.pos(n),
			Cond: c.expr(c.fieldOr(n, "condition", 0)),
			Then: c.stmt(c.fieldOr(n, "consequence", 1)),
		}

		if alt := n.ChildByFieldName("alternative"); alt != nil {
			s.Else = c.stmt(alt)
		} else if x := c.children(n); len(x) > 2 {
			s.Else = c.stmt(x[2])
		}

		return s
	}

	c.unsupported(n)

	return nil
}

// ----------------------------------------------------------------------------
// Expressions

var binaryOps = map[string]syntax.Op{
	"||": syntax.OpLOr, "&&": syntax.OpLAnd,
	"==": syntax.OpEql, "!=": syntax.OpNeq,
	"<": syntax.OpLss, ">": syntax.OpGtr, "<=": syntax.OpLeq, ">=": syntax.OpGeq,
	"+": syntax.OpAdd, "-": syntax.OpSub,
	"*": syntax.OpMul, "/": syntax.OpQuo, "%": syntax.OpRem,
	"??": syntax.OpCoalesce,
}

func (c *converter) expr(n *sitter.Node) syntax.Expr {
	switch n.Type() {
	case "identifier":
		return c.ident(n)

	case "generic_name":
		return c.simpleName(n)

	case "qualified_name":
		return c.name(n)

	case "predefined_type", "base", "base_expression":
		return c.newIdent(n)

	case "this", "this_expression":
		return &syntax.ThisExpr{This: c.pos(n)}

	case "default", "default_expression", "default_literal_expression":
		if len(c.children(n)) > 0 {
			c.unsupported(n)
		}

		return &syntax.Ident{NamePos: c.pos(n), Name: "default"}

	case "null_literal":
		return &syntax.BasicLit{ValuePos: c.pos(n), Kind: syntax.NullLit, Value: c.text(n)}

	case "boolean_literal":
		kind := syntax.FalseLit
		if c.text(n) == "true" {
			kind = syntax.TrueLit
		}

		return &syntax.BasicLit{ValuePos: c.pos(n), Kind: kind, Value: c.text(n)}

	case "integer_literal", "real_literal":
		return &syntax.BasicLit{ValuePos: c.pos(n), Kind: syntax.NumberLit, Value: c.text(n)}

	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		return &syntax.BasicLit{ValuePos: c.pos(n), Kind: syntax.StringLit, Value: c.text(n)}

	case "character_literal":
		return &syntax.BasicLit{ValuePos: c.pos(n), Kind: syntax.CharLit, Value: c.text(n)}

	case "interpolated_string_expression":
		return &syntax.InterpolatedString{Dollar: c.pos(n), Value: c.text(n)}

	case "parenthesized_expression":
		return &syntax.ParenExpr{Lparen: c.pos(n), X: c.expr(c.fieldOr(n, "expression", 0)), Rparen: c.last(n)}

	case "member_access_expression", "invocation_expression", "conditional_access_expression":
		x, ops := c.flatten(n)

		return c.apply(c.expr(x), ops)

	case "object_creation_expression":
		args := n.ChildByFieldName("arguments")
		if args == nil {
			c.errorf(n, "expected '('")
		}

		lparen, list, rparen := c.arguments(args)

		return &syntax.ObjectCreationExpr{
			New: c.pos(n), Type: c.typeRef(c.fieldOr(n, "type", 0)), Lparen: lparen, Args: list, Rparen: rparen,
		}

	case "prefix_unary_expression":
		op := n.Child(0)
		x := c.expr(c.fieldOr(n, "operand", -1))

		switch c.text(op) {
		case "!":
			return &syntax.UnaryExpr{OpPos: c.pos(op), Op: syntax.OpNot, X: x}

		case "-":
			return &syntax.UnaryExpr{OpPos: c.pos(op), Op: syntax.OpSub, X: x}
		}

	case "await_expression":
		return &syntax.AwaitExpr{Await: c.pos(n), X: c.expr(c.fieldOr(n, "expression", -1))}

	case "binary_expression":
		op := c.operator(n)
		if kind, ok := binaryOps[c.text(op)]; ok {
			return &syntax.BinaryExpr{
				X:     c.expr(c.fieldOr(n, "left", 0)),
				OpPos: c.pos(op),
				Op:    kind,
				Y:     c.expr(c.fieldOr(n, "right", -1)),
			}
		}

		c.errorf(op, "unsupported operator %s", c.text(op))

	case "assignment_expression":
		op := c.operator(n)
		if c.text(op) != "=" {
			c.errorf(op, "unsupported operator %s", c.text(op))
		}

		return &syntax.AssignExpr{
			Lhs:    c.expr(c.fieldOr(n, "left", 0)),
			TokPos: c.pos(op),
			Rhs:    c.expr(c.fieldOr(n, "right", -1)),
		}

	case "is_pattern_expression":
		return &syntax.IsPatternExpr{
			X:       c.expr(c.fieldOr(n, "expression", 0)),
			Is:      c.pos(c.token(n, "is")),
			Pattern: c.pattern(c.fieldOr(n, "pattern", -1)),
		}

	case "is_expression":
		return &syntax.IsPatternExpr{
			X:       c.expr(c.fieldOr(n, "left", 0)),
			Is:      c.pos(c.token(n, "is")),
			Pattern: &syntax.TypePattern{Type: c.typeRef(c.fieldOr(n, "right", -1))},
		}
	}

	c.unsupported(n)

	return nil
}

// postfix is a member access, invocation or conditional access following an expression.
type postfix struct {
	question token.Pos // '?' of a conditional access, or token.NoPos
	dot      token.Pos
	name     *sitter.Node // nil for invocations
	args     *sitter.Node // argument list of an invocation
}

// flatten splits a chain of postfix operations into its leftmost operand and the operations in source order.
func (c *converter) flatten(n *sitter.Node) (*sitter.Node, []postfix) {
	switch n.Type() {
	case "member_access_expression":
		x, ops := c.flatten(c.fieldOr(n, "expression", 0))

		return x, append(ops, postfix{dot: c.pos(c.token(n, ".")), name: c.fieldOr(n, "name", -1)})

	case "invocation_expression":
		x, ops := c.flatten(c.fieldOr(n, "function", 0))

		return x, append(ops, postfix{args: c.fieldOr(n, "arguments", -1)})

	case "conditional_access_expression":
		x, ops := c.flatten(c.fieldOr(n, "condition", 0))

		binding := c.childOfType(n, "member_binding_expression")
		if binding == nil {
			c.unsupported(n)
		}

		return x, append(ops, postfix{
			question: c.pos(c.token(n, "?")),
			dot:      c.pos(c.token(binding, ".")),
			name:     c.fieldOr(binding, "name", -1),
		})

	default:
		return n, nil
	}
}

// apply rebuilds a postfix chain on x. A conditional access holds the rest of the chain,
// rooted at a member binding.
func (c *converter) apply(x syntax.Expr, ops []postfix) syntax.Expr {
	for i, op := range ops {
		switch {
		case op.question.IsValid():
			binding := &syntax.MemberBindingExpr{Dot: op.dot, Name: c.simpleName(op.name)}

			return &syntax.ConditionalAccessExpr{X: x, Question: op.question, WhenNotNull: c.apply(binding, ops[i+1:])}

		case op.args != nil:
			lparen, args, rparen := c.arguments(op.args)
			x = &syntax.InvocationExpr{Fun: x, Lparen: lparen, Args: args, Rparen: rparen}

		default:
			x = &syntax.MemberAccessExpr{X: x, Dot: op.dot, Name: c.simpleName(op.name)}
		}
	}

	return x
}

// arguments converts an argument list. Argument names and ref kinds are dropped.
func (c *converter) arguments(n *sitter.Node) (lparen token.Pos, args []syntax.Expr, rparen token.Pos) {
	if n.Type() != "argument_list" {
		c.unsupported(n)
	}

	for _, arg := range c.children(n) {
		args = append(args, c.expr(c.fieldOr(arg, "expression", -1)))
	}

	return c.pos(n), args, c.last(n)
}

// ----------------------------------------------------------------------------
// Patterns

func (c *converter) pattern(n *sitter.Node) syntax.Pattern {
	switch n.Type() {
	case "constant_pattern", "parenthesized_pattern":
		return c.pattern(c.fieldOr(n, "pattern", 0))

	case "negated_pattern":
		return &syntax.NotPattern{Not: c.pos(n), Pattern: c.pattern(c.fieldOr(n, "pattern", -1))}

	case "identifier", "qualified_name", "generic_name", "predefined_type", "nullable_type":
		return &syntax.TypePattern{Type: c.typeRef(n)}

	case "type_pattern":
		return &syntax.TypePattern{Type: c.typeRef(c.fieldOr(n, "type", 0))}

	case "declaration_pattern":
		return &syntax.DeclarationPattern{
			Type:        c.typeRef(c.fieldOr(n, "type", 0)),
			Designation: c.ident(c.fieldOr(n, "name", -1)),
		}

	case "recursive_pattern":
		return c.recursivePattern(n)
	}

	if n.ChildCount() > 0 && c.text(n.Child(0)) == "not" {
		return &syntax.NotPattern{Not: c.pos(n), Pattern: c.pattern(c.fieldOr(n, "pattern", -1))}
	}

	return &syntax.ConstantPattern{Value: c.expr(n)}
}

func (c *converter) recursivePattern(n *sitter.Node) *syntax.RecursivePattern {
	pat := &syntax.RecursivePattern{}

	for _, child := range c.children(n) {
		switch {
		case child.Type() == "property_pattern_clause":
			pat.Properties = c.propertyClause(child)

		case child.Type() == "positional_pattern_clause":
			c.unsupported(child)

		case pat.Properties == nil:
			pat.Type = c.typeRef(child)

		default:
			pat.Designation = c.ident(child)
		}
	}

	if pat.Properties == nil {
		c.unsupported(n)
	}

	return pat
}

func (c *converter) propertyClause(n *sitter.Node) *syntax.PropertyPatternClause {
	props := &syntax.PropertyPatternClause{Lbrace: c.pos(n), Rbrace: c.last(n)}

	for _, sub := range c.children(n) {
		parts := c.children(sub)
		if sub.Type() != "subpattern" || len(parts) != 2 {
			c.unsupported(sub)
		}

		name := parts[0]
		if name.Type() == "name_colon" || name.Type() == "expression_colon" {
			name = c.fieldOr(name, "name", 0)
		}

		props.Subpatterns = append(props.Subpatterns, &syntax.Subpattern{Name: c.ident(name), Pattern: c.pattern(parts[1])})
	}

	return props
}
