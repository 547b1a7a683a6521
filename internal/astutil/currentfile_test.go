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

package astutil_test

import (
	"go/token"
	"testing"

	. "fillmore-labs.com/lifeguard/internal/astutil"
	"fillmore-labs.com/lifeguard/internal/frontend/parser"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/syntax"
)

func parse(t *testing.T, name, src string) (*token.FileSet, *syntax.File) {
	t.Helper()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, name, []byte(src))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	return fset, f
}

func TestGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, file, src string
		want            bool
	}{
		{"plain", "A.cs", "class A { }", false},
		{"marker", "A.cs", "// <auto-generated/>\nclass A { }", true},
		{"marker with using", "A.cs", "// <auto-generated>\nusing System;\nclass A { }", true},
		{"late marker", "A.cs", "class A { }\n// <auto-generated/>\n", false},
		{"suffix", "Game.g.cs", "class A { }", true},
		{"designer", "dir/Form.Designer.cs", "class A { }", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f := parse(t, tt.file, tt.src)

			c := NewCurrentFile(fset, f)
			if !c.Valid() {
				t.Fatal("Expected valid file")
			}

			if got := c.Generated(); got != tt.want {
				t.Errorf("Got generated %t, want %t", got, tt.want)
			}
		})
	}
}

func TestNoLintComment(t *testing.T) {
	t.Parallel()

	const src = `class A
{
    void M()
    {
        var a = 1; // nolint:NUSL001
        var b = 2; // nolint:lifeguard
        var c = 3; // nolint:all
        var d = 4; // nolint:other
        var e = 5;
        // nolint:NUSL001
    }
}
`

	fset, f := parse(t, "A.cs", src)
	c := NewCurrentFile(fset, f)
	tf := fset.File(f.FileStart)

	tests := []struct {
		line int
		rule string
		want bool
	}{
		{5, "NUSL001", true},
		{5, "NUSL002", false},
		{6, "NUSL002", true},
		{7, "DIMA001", true},
		{8, "NUSL001", false},
		{9, "NUSL001", false},
	}

	for _, tt := range tests {
		pos := tf.LineStart(tt.line) + 8 // start of the declaration

		if got := c.NoLintComment(pos, tt.rule); got != tt.want {
			t.Errorf("Line %d, rule %s: got %t, want %t", tt.line, tt.rule, got, tt.want)
		}
	}
}

func TestInternalError(t *testing.T) {
	t.Parallel()

	var r report.Collector

	InternalError(&r, &syntax.Ident{NamePos: 1, Name: "x"}, "unexpected %s", "node")

	if len(r.Diagnostics) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(r.Diagnostics))
	}

	if got, want := r.Diagnostics[0].Message(), "Internal Error: unexpected node"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}
