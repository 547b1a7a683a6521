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

// Package lifeguardtest provides utilities for testing the lifeguard analyzer, in the manner
// of golang.org/x/tools/go/analysis/analysistest.
//
// Expected diagnostics are written as comments on the reported line:
//
//	var n = t?.name; // want "NUSL001: .* bypassing"
//
// Each quoted string is a regular expression that must match `<rule ID>: <message>` of
// exactly one diagnostic on that line.
package lifeguardtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"fillmore-labs.com/lifeguard/analyzer"
	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend"
)

// GoldenExt is the extension of files holding the expected result of applying all fixes.
const GoldenExt = ".golden"

// Result is the outcome of analyzing one test directory.
type Result struct {
	Unit        *host.Unit
	Diagnostics []analyzer.Diagnostic
}

// Run loads every source file below dir as one compilation unit, runs the analyzer and
// checks the diagnostics against the `// want` comments of the sources.
func Run(t testing.TB, dir string, a *analyzer.Analyzer) *Result {
	t.Helper()

	unit, err := frontend.LoadPaths(frontend.Config{}, dir)
	if err != nil {
		t.Fatalf("Can't load %s: %v", dir, err)
	}

	want := expectations(t, unit)

	diags := a.Run(unit)
	for _, d := range diags {
		pos := unit.Position(d.Pos)
		k := key{pos.Filename, pos.Line}
		text := d.Descriptor.ID + ": " + d.Message()

		if !want.match(k, text) {
			t.Errorf("%v: unexpected diagnostic: %s", pos, text)
		}
	}

	for k, res := range want {
		for _, re := range res {
			t.Errorf("%s:%d: no diagnostic was reported matching %q", k.file, k.line, re)
		}
	}

	return &Result{Unit: unit, Diagnostics: diags}
}

// RunWithSuggestedFixes behaves like [Run], then applies all suggested fixes and compares
// each changed file with the file of the same name plus [GoldenExt].
func RunWithSuggestedFixes(t testing.TB, dir string, a *analyzer.Analyzer) *Result {
	t.Helper()

	r := Run(t, dir, a)

	fixed, err := a.Fix(r.Unit, r.Diagnostics)
	if err != nil {
		t.Fatalf("Can't apply fixes: %v", err)
	}

	for _, f := range r.Unit.Files {
		golden, err := os.ReadFile(filepath.FromSlash(f.Name) + GoldenExt)
		if os.IsNotExist(err) {
			if _, ok := fixed[f.Name]; ok {
				t.Errorf("%s: fixes applied, but no %s file", f.Name, GoldenExt)
			}

			continue
		}

		if err != nil {
			t.Fatalf("Can't read golden file: %v", err)
		}

		got, ok := fixed[f.Name]
		if !ok {
			got = r.Unit.Sources[f.Name]
		}

		if !bytes.Equal(got, golden) {
			t.Errorf("%s: fixed source differs from %s%s:\n%s", f.Name, f.Name, GoldenExt, got)
		}
	}

	return r
}

type key struct {
	file string
	line int
}

type wants map[key][]*regexp.Regexp

// match consumes the first expectation of k matching text.
func (w wants) match(k key, text string) bool {
	res := w[k]
	for i, re := range res {
		if re.MatchString(text) {
			if len(res) == 1 {
				delete(w, k)
			} else {
				w[k] = append(res[:i:i], res[i+1:]...)
			}

			return true
		}
	}

	return false
}

const wantPrefix = "// want "

func expectations(t testing.TB, unit *host.Unit) wants {
	t.Helper()

	w := make(wants)

	for _, f := range unit.Files {
		for _, c := range f.Comments {
			rest, ok := strings.CutPrefix(c.Text, wantPrefix)
			if !ok {
				continue
			}

			pos := unit.Position(c.Pos())

			res, err := parseWant(rest)
			if err != nil {
				t.Fatalf("%v: %v", pos, err)
			}

			k := key{pos.Filename, pos.Line}
			w[k] = append(w[k], res...)
		}
	}

	return w
}

// parseWant parses a sequence of Go string literals into regular expressions.
func parseWant(s string) ([]*regexp.Regexp, error) {
	var res []*regexp.Regexp

	for s = strings.TrimSpace(s); s != ""; s = strings.TrimSpace(s) {
		lit, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, fmt.Errorf("invalid expectation %q: %w", s, err)
		}

		s = s[len(lit):]

		pattern, err := strconv.Unquote(lit)
		if err != nil {
			return nil, fmt.Errorf("invalid expectation %q: %w", lit, err)
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}

		res = append(res, re)
	}

	return res, nil
}
