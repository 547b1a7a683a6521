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

import "strings"

// ExprString returns the (possibly shortened) source form of x with normalized spacing.
func ExprString(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)

	return b.String()
}

// PatternString returns the source form of p with normalized spacing.
func PatternString(p Pattern) string {
	var b strings.Builder
	writePattern(&b, p)

	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case *Ident:
		b.WriteString(x.Name)

	case *BasicLit:
		b.WriteString(x.Value)

	case *InterpolatedString:
		b.WriteString(x.Value)

	case *ThisExpr:
		b.WriteString("this")

	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')

	case *MemberAccessExpr:
		writeExpr(b, x.X)
		b.WriteByte('.')
		b.WriteString(x.Name.Name)

	case *MemberBindingExpr:
		b.WriteByte('.')
		b.WriteString(x.Name.Name)

	case *ConditionalAccessExpr:
		writeExpr(b, x.X)
		b.WriteByte('?')
		writeExpr(b, x.WhenNotNull)

	case *InvocationExpr:
		writeExpr(b, x.Fun)
		writeArgs(b, x.Args)

	case *ObjectCreationExpr:
		b.WriteString("new ")
		writeTypeRef(b, x.Type)
		writeArgs(b, x.Args)

	case *UnaryExpr:
		b.WriteString(x.Op.String())
		writeExpr(b, x.X)

	case *AwaitExpr:
		b.WriteString("await ")
		writeExpr(b, x.X)

	case *BinaryExpr:
		writeExpr(b, x.X)
		b.WriteByte(' ')
		b.WriteString(x.Op.String())
		b.WriteByte(' ')
		writeExpr(b, x.Y)

	case *AssignExpr:
		writeExpr(b, x.Lhs)
		b.WriteString(" = ")
		writeExpr(b, x.Rhs)

	case *IsPatternExpr:
		writeExpr(b, x.X)
		b.WriteString(" is ")
		writePattern(b, x.Pattern)

	default:
		b.WriteString("<bad expr>")
	}
}

func writeArgs(b *strings.Builder, args []Expr) {
	b.WriteByte('(')

	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}

		writeExpr(b, a)
	}

	b.WriteByte(')')
}

func writeTypeRef(b *strings.Builder, t *TypeRef) {
	writeExpr(b, t.Name)

	if len(t.Args) > 0 {
		b.WriteByte('<')

		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			writeTypeRef(b, a)
		}

		b.WriteByte('>')
	}

	if t.Question.IsValid() {
		b.WriteByte('?')
	}
}

func writePattern(b *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case *ConstantPattern:
		writeExpr(b, p.Value)

	case *NotPattern:
		b.WriteString("not ")
		writePattern(b, p.Pattern)

	case *TypePattern:
		writeTypeRef(b, p.Type)

	case *DeclarationPattern:
		writeTypeRef(b, p.Type)
		b.WriteByte(' ')
		b.WriteString(p.Designation.Name)

	case *RecursivePattern:
		if p.Type != nil {
			writeTypeRef(b, p.Type)
			b.WriteByte(' ')
		}

		b.WriteByte('{')

		for i, s := range p.Properties.Subpatterns {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteByte(' ')
			b.WriteString(s.Name.Name)
			b.WriteString(": ")
			writePattern(b, s.Pattern)
		}

		if len(p.Properties.Subpatterns) > 0 {
			b.WriteByte(' ')
		}

		b.WriteByte('}')

		if p.Designation != nil {
			b.WriteByte(' ')
			b.WriteString(p.Designation.Name)
		}

	default:
		b.WriteString("<bad pattern>")
	}
}
