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

package lifetime_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/internal/testsource"
	"fillmore-labs.com/lifeguard/syntax"
)

func TestFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"field", "var n = t?.name;", "var n = t.AliveOrNull()?.name;"},
		{"member access", "var n = transform?.parent;", "var n = transform.AliveOrNull()?.parent;"},
		{"call", "var n = t?.ToString();", "var n = t.AliveOrNull()?.ToString();"},
		{"parenthesized", "var n = (t ?? transform)?.name;", "var n = (t ?? transform).AliveOrNull()?.name;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			unit, _, body := testsource.Parse(t, tt.src)

			var diag report.Diagnostic

			for _, d := range check(t, unit, body.Node()) {
				if d.Descriptor == ConditionalAccess {
					diag = d

					break
				}
			}

			if diag.Descriptor == nil {
				t.Fatal("Expected a conditional access diagnostic")
			}

			if len(diag.Fixes) != 1 || diag.Fixes[0].Message != FixTitle(DefaultRestricted, DefaultMarker) {
				t.Fatalf("Got fixes %+v", diag.Fixes)
			}

			src, file := unit.Source(diag.Pos)

			fixed, err := report.ApplyEdits(file, src, diag.Fixes[0].TextEdits)
			if err != nil {
				t.Fatalf("ApplyEdits failed: %v", err)
			}

			if want := testsource.Wrap(tt.want); string(fixed) != want {
				t.Errorf("Got %q, want %q", extract(string(fixed)), tt.want)
			}
		})
	}
}

func TestFixAt(t *testing.T) {
	t.Parallel()

	unit, _, body := testsource.Parse(t, "var n = go?.transform?.parent;")

	diags := check(t, unit, body.Node())
	if len(diags) != 2 {
		t.Fatalf("Got %d diagnostics, want 2", len(diags))
	}

	in := syntax.NewInspector(unit.Files)
	src, file := unit.Source(diags[0].Pos)

	for i, want := range []string{
		"var n = go.AliveOrNull()?.transform?.parent;",
		"var n = go?.transform.AliveOrNull()?.parent;",
	} {
		fixes, err := FixAt(in, diags[i], DefaultRestricted, DefaultMarker)
		if err != nil {
			t.Fatalf("FixAt failed: %v", err)
		}

		fixed, err := report.ApplyEdits(file, src, fixes[0].TextEdits)
		if err != nil {
			t.Fatalf("ApplyEdits failed: %v", err)
		}

		if got := extract(string(fixed)); got != want {
			t.Errorf("Got %q, want %q", got, want)
		}
	}
}

func TestFixAtNoConditionalAccess(t *testing.T) {
	t.Parallel()

	unit, _, body := testsource.Parse(t, "if (t is null) { }")

	diags := check(t, unit, body.Node())
	if len(diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(diags))
	}

	in := syntax.NewInspector(unit.Files)
	if _, err := FixAt(in, diags[0], DefaultRestricted, DefaultMarker); !errors.Is(err, ErrNoConditionalAccess) {
		t.Errorf("Got error %v, want %v", err, ErrNoConditionalAccess)
	}
}

func TestFixTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		restricted, marker string
		want               string
	}{
		{DefaultRestricted, DefaultMarker, "Insert AliveOrNull() before conditional access of UnityEngine.Object"},
		{"UnityEngine.Component", "Alive", "Insert Alive() before conditional access of UnityEngine.Component"},
	}

	for _, tt := range tests {
		if got := FixTitle(tt.restricted, tt.marker); got != tt.want {
			t.Errorf("Got %q, want %q", got, tt.want)
		}
	}

	unit, _, body := testsource.Parse(t, "var n = t?.name;")

	d := New(unit, "UnityEngine.Component", "Alive")

	var fixes []string

	syntax.Inspect(body.Node(), func(n syntax.Node) bool {
		if x, ok := n.(*syntax.ConditionalAccessExpr); ok {
			if diag, ok := d.CheckConditionalAccess(x); ok {
				fixes = append(fixes, diag.Fixes[0].Message)
			}
		}

		return true
	})

	if want := []string{"Insert Alive() before conditional access of UnityEngine.Component"}; !slices.Equal(fixes, want) {
		t.Errorf("Got fixes %q, want %q", fixes, want)
	}
}

// extract returns the wrapped fragment of a fixed file.
func extract(src string) string {
	const start = "public void Run()\n    {\n"

	i := strings.Index(src, start)
	if i < 0 {
		return src
	}

	fragment := src[i+len(start):]
	if j := strings.Index(fragment, "\n"); j >= 0 {
		fragment = fragment[:j]
	}

	return fragment
}
