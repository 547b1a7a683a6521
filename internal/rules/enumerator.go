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

package rules

import (
	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/hierarchy"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/syntax"
)

// UnusedEnumerator is reported for discarded enumerator results.
var UnusedEnumerator = &report.Descriptor{
	ID:       "NEU001",
	Title:    "IEnumerator is not iterated",
	Format:   "The IEnumerator '%s' must be iterated by calling its MoveNext otherwise it will stop executing at the first 'yield return' expression",
	Category: "Usage",
	Severity: report.Warning,
}

// EnumeratorType is the enumerator interface checked by [CheckEnumerator].
const EnumeratorType = "System.Collections.IEnumerator"

// CheckEnumerator reports the invocation at c when it is an expression statement
// discarding an enumerator.
func CheckEnumerator(unit *host.Unit, c syntax.Cursor) (report.Diagnostic, bool) {
	call, ok := c.Node().(*syntax.InvocationExpr)
	if !ok {
		return report.Diagnostic{}, false
	}

	if _, ok := c.Parent().Node().(*syntax.ExprStmt); !ok {
		return report.Diagnostic{}, false
	}

	m := unit.MethodOf(call)
	if m == nil || !hierarchy.IsSubtypeOf(m.Result, unit.Universe, EnumeratorType) {
		return report.Diagnostic{}, false
	}

	return report.New(UnusedEnumerator, call, m.Name()), true
}
