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

package report_test

import (
	"errors"
	"go/token"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/lifeguard/internal/report"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	const src = "var a = x?.y;"

	fset := token.NewFileSet()
	file := fset.AddFile("a.cs", -1, len(src))
	pos := func(offset int) token.Pos { return file.Pos(offset) }

	tests := []struct {
		name  string
		edits []analysis.TextEdit
		want  string
		err   error
	}{
		{
			name:  "insert",
			edits: []analysis.TextEdit{{Pos: pos(9), End: pos(9), NewText: []byte(".AliveOrNull()")}},
			want:  "var a = x.AliveOrNull()?.y;",
		},
		{
			name: "unsorted",
			edits: []analysis.TextEdit{
				{Pos: pos(12), End: pos(13), NewText: []byte(" ;")},
				{Pos: pos(4), End: pos(5), NewText: []byte("b")},
			},
			want: "var b = x?.y ;",
		},
		{
			name: "duplicate",
			edits: []analysis.TextEdit{
				{Pos: pos(9), End: pos(9), NewText: []byte("!")},
				{Pos: pos(9), End: pos(9), NewText: []byte("!")},
			},
			want: "var a = x!?.y;",
		},
		{
			name: "overlap",
			edits: []analysis.TextEdit{
				{Pos: pos(4), End: pos(9), NewText: []byte("b")},
				{Pos: pos(8), End: pos(10)},
			},
			err: ErrOverlappingEdits,
		},
		{
			name:  "out of range",
			edits: []analysis.TextEdit{{Pos: pos(4), End: pos(4) + 100}},
			err:   ErrEditOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ApplyEdits(file, []byte(src), tt.edits)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Got error %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ApplyEdits failed: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnosticMessage(t *testing.T) {
	t.Parallel()

	d := &Descriptor{ID: "T001", Format: "'%s' derives from '%s'", Severity: Warning}
	diag := Diagnostic{Descriptor: d, Args: []string{"Player", "UnityEngine.Object"}, Pos: 10, End: 20}

	if got, want := diag.Message(), "'Player' derives from 'UnityEngine.Object'"; got != want {
		t.Errorf("Got message %q, want %q", got, want)
	}

	a := diag.Analysis()
	if a.Category != "T001" || a.Pos != 10 || a.End != 20 {
		t.Errorf("Got analysis diagnostic %+v", a)
	}
}
