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
	"slices"
	"testing"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend"
	. "fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/internal/testsource"
	"fillmore-labs.com/lifeguard/syntax"
)

func check(tb testing.TB, unit *host.Unit, root syntax.Node) []report.Diagnostic {
	tb.Helper()

	d := New(unit, DefaultRestricted, DefaultMarker)
	if d == nil {
		tb.Fatalf("Can't resolve %s", DefaultRestricted)
	}

	var diags []report.Diagnostic

	syntax.Inspect(root, func(n syntax.Node) bool {
		if diag, ok := d.CheckNode(n); ok {
			diags = append(diags, diag)
		}

		return true
	})

	report.Sort(diags)

	return diags
}

func TestDetector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"is null", "if (t is null) { }", []string{"NUSL002"}},
		{"is not null", "if (t is not null) { }", []string{"NUSL002"}},
		{"empty property pattern", "if (t is { }) { }", []string{"NUSL002"}},
		{"empty property pattern with designation", "if (t is { } p) { }", []string{"NUSL002"}},
		{"not empty property pattern", "if (t is not { }) { }", []string{"NUSL002"}},
		{"type pattern", "if (t is Transform) { }", nil},
		{"property pattern", "if (t is { name: \"x\" }) { }", nil},
		{"conditional access", "var n = t?.name;", []string{"NUSL001"}},
		{"chained conditional access", "var n = t?.parent?.name;", []string{"NUSL001", "NUSL001"}},
		{"coalesce", "Transform r = t ?? transform;", []string{"NUSL003"}},
		{"coalesce fallback", "var r = plain ?? null;", nil},
		{"equality", "if (t == null) { }", nil},
		{"inequality", "if (t != null) { }", nil},
		{"unrelated", "var n = plain?.name; if (plain is null) { }", nil},
		{"game object", "var n = go?.name;", []string{"NUSL001"}},
		{"this", "var n = this?.name;", []string{"NUSL001"}},
		{"marker conditional access", "var n = t.AliveOrNull()?.name;", nil},
		{"marker is null", "if (t.AliveOrNull() is null) { }", nil},
		{"marker coalesce", "Transform r = t.AliveOrNull() ?? transform;", nil},
		{"marker parenthesized", "if ((t.AliveOrNull()) is null) { }", nil},
		{"other call", "var n = t.GetComponent()?.name;", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			unit, _, body := testsource.Parse(t, tt.src)

			var got []string
			for _, d := range check(t, unit, body.Node()) {
				got = append(got, d.Descriptor.ID)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectorMessage(t *testing.T) {
	t.Parallel()

	unit, _, body := testsource.Parse(t, "if (t is null) { }")

	diags := check(t, unit, body.Node())
	if len(diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(diags))
	}

	const want = "'is null' is invalid on type 'Transform' as it derives from 'UnityEngine.Object', bypassing the Unity object lifetime check"
	if got := diags[0].Message(); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}

	if got := diags[0].Severity(); got != report.Error {
		t.Errorf("Got severity %v, want %v", got, report.Error)
	}
}

func TestDetectorSpan(t *testing.T) {
	t.Parallel()

	const src = "Transform r = t ?? transform;"

	unit, _, body := testsource.Parse(t, src)

	diags := check(t, unit, body.Node())
	if len(diags) != 1 {
		t.Fatalf("Got %d diagnostics, want 1", len(diags))
	}

	content, file := unit.Source(diags[0].Pos)
	base := file.Base()

	if got, want := string(content[int(diags[0].Pos)-base:int(diags[0].End)-base]), "t ?? transform"; got != want {
		t.Errorf("Got span %q, want %q", got, want)
	}
}

func TestUnresolvedRestrictedType(t *testing.T) {
	t.Parallel()

	unit, err := frontend.Load(frontend.Config{}, frontend.Source{
		Name:    "Plain.cs",
		Content: []byte("class C { C other; void M() { var x = other?.other; } }"),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d := New(unit, DefaultRestricted, DefaultMarker)
	if d != nil {
		t.Fatal("Expected no detector without UnityEngine.Object")
	}

	syntax.Inspect(unit.Files[0], func(n syntax.Node) bool {
		if _, ok := d.CheckNode(n); ok {
			t.Errorf("Unexpected diagnostic at %v", unit.Position(n.Pos()))
		}

		return true
	})
}

func TestSiblingHierarchy(t *testing.T) {
	t.Parallel()

	const lookalike = `namespace Other
{
    public class Object { }
    public class Thing : Object { }

    public class User
    {
        private Thing thing;

        public void M()
        {
            if (thing is null) { }
            var x = thing?.ToString();
        }
    }
}
`

	unit := testsource.Load(t, frontend.Source{Name: "Other.cs", Content: []byte(lookalike)})

	var file *syntax.File
	for _, f := range unit.Files {
		if f.Name == "Other.cs" {
			file = f
		}
	}

	if diags := check(t, unit, file); len(diags) != 0 {
		t.Errorf("Got %d diagnostics for a look-alike hierarchy, want none", len(diags))
	}
}

func TestIsNullTest(t *testing.T) {
	t.Parallel()

	nullLit := &syntax.ConstantPattern{Value: &syntax.BasicLit{Kind: syntax.NullLit, Value: "null"}}
	oneLit := &syntax.ConstantPattern{Value: &syntax.BasicLit{Kind: syntax.NumberLit, Value: "1"}}
	empty := &syntax.RecursivePattern{Properties: &syntax.PropertyPatternClause{}}
	nonEmpty := &syntax.RecursivePattern{Properties: &syntax.PropertyPatternClause{
		Subpatterns: []*syntax.Subpattern{{Name: &syntax.Ident{Name: "name"}, Pattern: nullLit}},
	}}
	typ := &syntax.TypePattern{Type: &syntax.TypeRef{Name: &syntax.Ident{Name: "Transform"}}}

	tests := []struct {
		name    string
		pattern syntax.Pattern
		want    bool
	}{
		{"null", nullLit, true},
		{"not null", &syntax.NotPattern{Pattern: nullLit}, true},
		{"empty", empty, true},
		{"not empty", &syntax.NotPattern{Pattern: empty}, true},
		{"constant", oneLit, false},
		{"not constant", &syntax.NotPattern{Pattern: oneLit}, false},
		{"property", nonEmpty, false},
		{"type", typ, false},
		{"not type", &syntax.NotPattern{Pattern: typ}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsNullTest(tt.pattern); got != tt.want {
				t.Errorf("Got %t, want %t", got, tt.want)
			}
		})
	}
}
