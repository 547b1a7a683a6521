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

// Package synth renders generated C# source text. All output is a pure function of
// the input facts and options.
package synth

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Writer builds text with a current indentation level. Indentation is written at the
// start of every non-empty line.
type Writer struct {
	b       strings.Builder
	indent  int
	midLine bool
}

// Indent increases the indentation level.
func (w *Writer) Indent() { w.indent++ }

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Write writes s, which may span multiple lines.
func (w *Writer) Write(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.b.WriteByte('\n')
			w.midLine = false
		}

		if line == "" {
			continue
		}

		if !w.midLine {
			w.b.WriteString(strings.Repeat(indentUnit, w.indent))
			w.midLine = true
		}

		w.b.WriteString(line)
	}
}

// Writef writes a formatted string.
func (w *Writer) Writef(format string, args ...any) { w.Write(fmt.Sprintf(format, args...)) }

// Line writes s and terminates the line.
func (w *Writer) Line(s string) {
	w.Write(s)
	w.b.WriteByte('\n')
	w.midLine = false
}

// Linef writes a formatted line.
func (w *Writer) Linef(format string, args ...any) { w.Line(fmt.Sprintf(format, args...)) }

// Open writes s on its own line, followed by an opening brace, and indents.
func (w *Writer) Open(s string) {
	if s != "" {
		w.Line(s)
	}

	w.Line("{")
	w.Indent()
}

// Close dedents and writes a closing brace.
func (w *Writer) Close() {
	w.Dedent()
	w.Line("}")
}

// Block writes multi-line text, indenting each line. A trailing newline is implied.
func (w *Writer) Block(text string) {
	w.Line(strings.TrimSuffix(text, "\n"))
}

// String returns the text written so far.
func (w *Writer) String() string { return w.b.String() }
