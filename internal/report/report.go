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

// Package report defines rule descriptors and the diagnostics produced by the analyzer.
package report

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"

	"golang.org/x/tools/go/analysis"
)

// Severity is the default severity of a rule.
type Severity uint8

const (
	Hidden Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "hidden"
	}
}

// Descriptor describes a rule. Descriptors are static and never modified.
type Descriptor struct {
	ID          string
	Title       string
	Format      string // message format, with one verb per argument
	Category    string
	Severity    Severity
	Description string
}

// Message formats the rule message with the given arguments.
func (d *Descriptor) Message(args ...string) string {
	a := make([]any, len(args))
	for i, arg := range args {
		a[i] = arg
	}

	return fmt.Sprintf(d.Format, a...)
}

// Diagnostic is a single rule violation.
type Diagnostic struct {
	Descriptor *Descriptor
	Args       []string
	Pos, End   token.Pos
	Fixes      []analysis.SuggestedFix
}

// Range is implemented by syntax nodes.
type Range interface {
	Pos() token.Pos
	End() token.Pos
}

// New creates a diagnostic spanning rng.
func New(d *Descriptor, rng Range, args ...string) Diagnostic {
	return Diagnostic{Descriptor: d, Args: args, Pos: rng.Pos(), End: rng.End()}
}

// Message returns the formatted diagnostic message.
func (d Diagnostic) Message() string { return d.Descriptor.Message(d.Args...) }

// Severity returns the rule's severity.
func (d Diagnostic) Severity() Severity { return d.Descriptor.Severity }

// Analysis converts the diagnostic for consumers of [golang.org/x/tools/go/analysis].
func (d Diagnostic) Analysis() analysis.Diagnostic {
	return analysis.Diagnostic{
		Pos:            d.Pos,
		End:            d.End,
		Category:       d.Descriptor.ID,
		Message:        d.Message(),
		SuggestedFixes: d.Fixes,
	}
}

// Compare orders diagnostics by position, then rule ID.
func Compare(a, b Diagnostic) int {
	if c := cmp.Compare(a.Pos, b.Pos); c != 0 {
		return c
	}

	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}

	return cmp.Compare(a.Descriptor.ID, b.Descriptor.ID)
}

// Sort sorts diagnostics with [Compare].
func Sort(diags []Diagnostic) { slices.SortStableFunc(diags, Compare) }

// Reporter receives diagnostics.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector is a [Reporter] accumulating diagnostics.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) { c.Diagnostics = append(c.Diagnostics, d) }

// Internal describes diagnostics for internal errors.
var Internal = &Descriptor{
	ID:       "LG0000",
	Title:    "Internal error",
	Format:   "Internal Error: %s",
	Category: "Internal",
	Severity: Error,
}
