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

import "fmt"

// Inspect traverses a syntax tree in depth-first order, like [go/ast.Inspect]:
// It starts by calling f(node); if f returns true, Inspect invokes f recursively
// for each of the non-nil children of node, followed by a call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	children(node, func(n Node) { Inspect(n, f) })

	f(nil)
}

// children calls visit for each direct, non-nil child of n in source order.
// Comments are not part of the traversal.
func children(n Node, visit func(Node)) {
	switch n := n.(type) {
	case *File:
		for _, u := range n.Usings {
			visit(u)
		}

		for _, d := range n.Decls {
			visit(d)
		}

	case *Using:
		visit(n.Name)

	case *NamespaceDecl:
		visit(n.Name)

		for _, d := range n.Decls {
			visit(d)
		}

	case *Attribute:
		visit(n.Name)
		visitExprs(n.Args, visit)

	case *TypeDecl:
		for _, a := range n.Attributes {
			visit(a)
		}

		visit(n.Name)

		for _, b := range n.Bases {
			visit(b)
		}

		for _, m := range n.Members {
			visit(m)
		}

	case *FieldDecl:
		for _, a := range n.Attributes {
			visit(a)
		}

		visit(n.Type)
		visit(n.Name)

		if n.Value != nil {
			visit(n.Value)
		}

	case *MethodDecl:
		for _, a := range n.Attributes {
			visit(a)
		}

		if n.Type != nil {
			visit(n.Type)
		}

		visit(n.Name)

		for _, p := range n.Params {
			visit(p)
		}

		if n.Body != nil {
			visit(n.Body)
		}

		if n.ExprBody != nil {
			visit(n.ExprBody)
		}

	case *Param:
		visit(n.Type)
		visit(n.Name)

	case *TypeRef:
		visit(n.Name)

		for _, a := range n.Args {
			visit(a)
		}

	case *BlockStmt:
		for _, s := range n.List {
			visit(s)
		}

	case *ExprStmt:
		visit(n.X)

	case *LocalDeclStmt:
		if n.Type != nil {
			visit(n.Type)
		}

		visit(n.Name)

		if n.Value != nil {
			visit(n.Value)
		}

	case *ReturnStmt:
		if n.Result != nil {
			visit(n.Result)
		}

	case *IfStmt:
		visit(n.Cond)
		visit(n.Then)

		if n.Else != nil {
			visit(n.Else)
		}

	case *Ident, *BasicLit, *InterpolatedString, *ThisExpr, *Comment:
		// leaves

	case *ParenExpr:
		visit(n.X)

	case *MemberAccessExpr:
		visit(n.X)
		visit(n.Name)

	case *MemberBindingExpr:
		visit(n.Name)

	case *ConditionalAccessExpr:
		visit(n.X)
		visit(n.WhenNotNull)

	case *InvocationExpr:
		visit(n.Fun)
		visitExprs(n.Args, visit)

	case *ObjectCreationExpr:
		visit(n.Type)
		visitExprs(n.Args, visit)

	case *UnaryExpr:
		visit(n.X)

	case *AwaitExpr:
		visit(n.X)

	case *BinaryExpr:
		visit(n.X)
		visit(n.Y)

	case *AssignExpr:
		visit(n.Lhs)
		visit(n.Rhs)

	case *IsPatternExpr:
		visit(n.X)
		visit(n.Pattern)

	case *ConstantPattern:
		visit(n.Value)

	case *NotPattern:
		visit(n.Pattern)

	case *RecursivePattern:
		if n.Type != nil {
			visit(n.Type)
		}

		visit(n.Properties)

		if n.Designation != nil {
			visit(n.Designation)
		}

	case *PropertyPatternClause:
		for _, s := range n.Subpatterns {
			visit(s)
		}

	case *Subpattern:
		visit(n.Name)
		visit(n.Pattern)

	case *TypePattern:
		visit(n.Type)

	case *DeclarationPattern:
		visit(n.Type)
		visit(n.Designation)

	default:
		panic(fmt.Sprintf("syntax.Inspect: unexpected node type %T", n))
	}
}

func visitExprs(list []Expr, visit func(Node)) {
	for _, x := range list {
		visit(x)
	}
}
