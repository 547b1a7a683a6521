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

package run

import (
	"fmt"
	"go/token"
	"maps"
	"slices"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/syntax"
)

// ApplyFixes applies the first suggested fix of every diagnostic and returns the content
// of each changed file, keyed by file name. Conditional access diagnostics reported
// without fixes are fixed at their location.
func (r *Options) ApplyFixes(unit *host.Unit, diags []report.Diagnostic) (map[string][]byte, error) {
	edits := make(map[*token.File][]analysis.TextEdit)

	var in *syntax.Inspector

	for _, d := range diags {
		fixes := d.Fixes
		if len(fixes) == 0 && d.Descriptor == lifetime.ConditionalAccess {
			if in == nil {
				in = syntax.NewInspector(unit.Files)
			}

			var err error
			if fixes, err = lifetime.FixAt(in, d, r.Restricted, r.Marker); err != nil {
				return nil, fmt.Errorf("%s: %w", d.Descriptor.ID, err)
			}
		}

		if len(fixes) == 0 {
			continue
		}

		for _, e := range fixes[0].TextEdits {
			file := unit.Fset.File(e.Pos)
			if file == nil {
				return nil, fmt.Errorf("%s: %w", d.Descriptor.ID, report.ErrEditOutOfRange)
			}

			edits[file] = append(edits[file], e)
		}
	}

	fixed := make(map[string][]byte, len(edits))

	files := slices.SortedFunc(maps.Keys(edits), func(a, b *token.File) int { return a.Base() - b.Base() })
	for _, file := range files {
		out, err := report.ApplyEdits(file, unit.Sources[file.Name()], edits[file])
		if err != nil {
			return nil, err
		}

		fixed[file.Name()] = out
	}

	return fixed, nil
}
