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

package analyzer_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "fillmore-labs.com/lifeguard/analyzer"
	"fillmore-labs.com/lifeguard/internal/frontend"
	"fillmore-labs.com/lifeguard/lifeguardtest"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		options Option
		fix     bool
	}{
		{
			name: "Lifetime",
			dir:  "lifetime",
			fix:  true,
		},
		{
			name:    "NoFix",
			dir:     "lifetime",
			options: WithSuggestFixes(false),
		},
		{
			name:    "Generated",
			dir:     "generated",
			options: WithGenerated(true),
		},
		{
			name: "Rules",
			dir:  "rules",
			options: Options{
				WithLocalizationFile(filepath.Join("testdata", "rules", "en.json")),
				WithLookupCache(&Cache{}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join("testdata", tt.dir)

			if a := New(tt.options); tt.fix {
				lifeguardtest.RunWithSuggestedFixes(t, dir, a)
			} else {
				lifeguardtest.Run(t, dir, a)
			}
		})
	}
}

func TestAnalyzerNoFixes(t *testing.T) {
	t.Parallel()

	a := New(WithSuggestFixes(false))
	r := lifeguardtest.Run(t, filepath.Join("testdata", "lifetime"), a)

	for _, d := range r.Diagnostics {
		if len(d.Fixes) > 0 {
			t.Errorf("Got fixes for %s with fixes disabled", d.Descriptor.ID)
		}
	}

	fixed, err := a.Fix(r.Unit, r.Diagnostics)
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}

	golden, err := os.ReadFile(filepath.Join("testdata", "lifetime", "Player.cs.golden"))
	if err != nil {
		t.Fatalf("Can't read golden file: %v", err)
	}

	for name, content := range fixed {
		if filepath.Base(name) != "Player.cs" {
			t.Errorf("Unexpected fixed file %s", name)

			continue
		}

		if string(content) != string(golden) {
			t.Errorf("Got fixed Player.cs:\n%s\nwant:\n%s", content, golden)
		}
	}

	if len(fixed) != 1 {
		t.Errorf("Got %d fixed files, want 1", len(fixed))
	}
}

func TestLocalizationDuplicateKey(t *testing.T) {
	t.Parallel()

	dictionary := filepath.Join(t.TempDir(), "en.json")
	if err := os.WriteFile(dictionary, []byte("\"Key_A\": \"hello\"\n\"Key_A\": \"world\"\n"), 0o600); err != nil {
		t.Fatalf("Can't write %s: %v", dictionary, err)
	}

	unit, err := frontend.LoadPaths(frontend.Config{}, filepath.Join("testdata", "rules"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a := New(WithLocalizationFile(dictionary), WithLookupCache(&Cache{}))

	var other int

	for _, d := range a.Run(unit) {
		if d.Descriptor.ID == "NXLZ001" {
			t.Errorf("Got %s with an invalid dictionary", d.Message())
		} else {
			other++
		}
	}

	if other == 0 {
		t.Error("Expected the remaining rules to report")
	}
}

func TestAnalyzerFlags(t *testing.T) {
	t.Parallel()

	unit, err := frontend.LoadPaths(frontend.Config{}, filepath.Join("testdata", "generated"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"default", nil, 0},
		{"generated", []string{"-generated"}, 1},
		{"generated without lifetime", []string{"-generated", "-lifetime=false"}, 0},
		{"generated with other type", []string{"-generated", "-restricted", "UnityEngine.GameObject"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New()
			if err := a.Flags.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if got := len(a.Run(unit)); got != tt.want {
				t.Errorf("Got %d diagnostics, want %d", got, tt.want)
			}
		})
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	want := []string{"NUSL001", "NUSL002", "NUSL003", "NSU001", "NXLZ001", "NEU001", "DIMA001"}

	rules := New().Rules()
	if len(rules) != len(want) {
		t.Fatalf("Got %d rules, want %d", len(rules), len(want))
	}

	for i, r := range rules {
		if r.ID != want[i] {
			t.Errorf("Got rule %s at %d, want %s", r.ID, i, want[i])
		}
	}
}

func TestOptionsLogValue(t *testing.T) {
	t.Parallel()

	opts := Options{WithLifetime(false), nil, Options{WithMarker("Checked")}}

	v := opts.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("Got kind %v, want group", v.Kind())
	}

	attrs := v.Group()
	if len(attrs) != 3 {
		t.Fatalf("Got %d attributes, want 3", len(attrs))
	}

	if attrs[0].Key != "lifetime" || attrs[2].Key != "marker" || attrs[2].Value.String() != "Checked" {
		t.Errorf("Got attributes %v", attrs)
	}
}
