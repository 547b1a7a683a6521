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

// Op is a unary or binary operator.
type Op uint8

const (
	OpInvalid Op = iota

	OpAdd      // +
	OpSub      // -
	OpMul      // *
	OpQuo      // /
	OpRem      // %
	OpEql      // ==
	OpNeq      // !=
	OpLss      // <
	OpGtr      // >
	OpLeq      // <=
	OpGeq      // >=
	OpLAnd     // &&
	OpLOr      // ||
	OpCoalesce // ??
	OpNot      // !
)

var opNames = [...]string{
	OpInvalid:  "<invalid>",
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpQuo:      "/",
	OpRem:      "%",
	OpEql:      "==",
	OpNeq:      "!=",
	OpLss:      "<",
	OpGtr:      ">",
	OpLeq:      "<=",
	OpGeq:      ">=",
	OpLAnd:     "&&",
	OpLOr:      "||",
	OpCoalesce: "??",
	OpNot:      "!",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}

	return opNames[OpInvalid]
}

// Len returns the length of the operator's source text.
func (o Op) Len() int { return len(o.String()) }
