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

package run_test

import (
	"context"
	"slices"
	"strings"
	"testing"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/frontend"
	"fillmore-labs.com/lifeguard/internal/lookup"
	"fillmore-labs.com/lifeguard/internal/report"
	. "fillmore-labs.com/lifeguard/internal/run"
	"fillmore-labs.com/lifeguard/internal/testsource"
)

const (
	subject = `var n = t?.name;
        if (t is null) { } // nolint:NUSL002
        var s = "a" + plain.name;`

	generated = `using UnityEngine;

namespace Test;

public class Gen
{
    private Transform t;

    public void M()
    {
        var n = t?.name;
    }
}
`
)

func load(t *testing.T) *host.Unit {
	t.Helper()

	return testsource.Load(t,
		frontend.Source{Name: testsource.Filename, Content: []byte(testsource.Wrap(subject))},
		frontend.Source{Name: "Gen.g.cs", Content: []byte(generated)},
	)
}

func ids(diags []report.Diagnostic) []string {
	var got []string
	for _, d := range diags {
		got = append(got, d.Descriptor.ID)
	}

	return got
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(o *Options)
		want   []string
	}{
		{"default", func(*Options) {}, []string{"NUSL001", "NSU001"}},
		{"include generated", func(o *Options) { o.Behavior.Enable(config.IncludeGenerated) }, []string{"NUSL001", "NSU001", "NUSL001"}},
		{"lifetime only", func(o *Options) { o.Rules = config.NewBitMask(config.LifetimeRules) }, []string{"NUSL001"}},
		{"concat only", func(o *Options) { o.Rules = config.NewBitMask(config.StringConcatRule) }, []string{"NSU001"}},
		{"unknown restricted type", func(o *Options) { o.Restricted = "UnityEngine.Missing" }, []string{"NSU001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := DefaultOptions()
			o.Cache = &lookup.Cache{}
			tt.modify(o)

			if got := ids(o.Run(context.Background(), load(t))); !slices.Equal(got, tt.want) {
				t.Errorf("Got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunFixes(t *testing.T) {
	t.Parallel()

	unit := load(t)

	o := DefaultOptions()
	o.Cache = &lookup.Cache{}

	diags := o.Run(context.Background(), unit)
	if len(diags) == 0 || len(diags[0].Fixes) != 1 {
		t.Fatalf("Got %+v, want a fix on the first diagnostic", diags)
	}

	fixed, err := o.ApplyFixes(unit, diags)
	if err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	if len(fixed) != 1 {
		t.Fatalf("Got %d fixed files, want 1", len(fixed))
	}

	if got := string(fixed[testsource.Filename]); !strings.Contains(got, "var n = t.AliveOrNull()?.name;") {
		t.Errorf("Got %q, want the marker call inserted", got)
	}

	o.Behavior.Disable(config.SuggestFixes)

	bare := o.Run(context.Background(), unit)
	for _, d := range bare {
		if len(d.Fixes) != 0 {
			t.Errorf("Got fixes for %s with fixes disabled", d.Descriptor.ID)
		}
	}

	located, err := o.ApplyFixes(unit, bare)
	if err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	if got, want := string(located[testsource.Filename]), string(fixed[testsource.Filename]); got != want {
		t.Errorf("Got %q without attached fixes, want %q", got, want)
	}
}
