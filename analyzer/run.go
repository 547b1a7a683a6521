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

package analyzer

import (
	"context"

	"fillmore-labs.com/lifeguard/host"
)

// Run analyzes unit and returns its diagnostics sorted by position.
func (a *Analyzer) Run(unit *host.Unit) []Diagnostic {
	return a.RunContext(context.Background(), unit)
}

// RunContext is like [Analyzer.Run] and attaches the run to the trace task of ctx.
func (a *Analyzer) RunContext(ctx context.Context, unit *host.Unit) []Diagnostic {
	return a.r.Run(ctx, unit)
}

// Fix applies the suggested fixes of diags and returns the content of every changed file,
// keyed by file name. Conditional access diagnostics without fixes, as reported with
// [WithSuggestFixes](false), are fixed as well.
func (a *Analyzer) Fix(unit *host.Unit, diags []Diagnostic) (map[string][]byte, error) {
	return a.r.ApplyFixes(unit, diags)
}
