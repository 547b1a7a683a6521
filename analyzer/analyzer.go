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
	"flag"

	"fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/lookup"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/internal/rules"
	"fillmore-labs.com/lifeguard/internal/run"
)

// Public API constants for the lifeguard analyzer.
const (
	Name = "lifeguard"
	Doc  = `lifeguard detects null checks that bypass the Unity object lifetime check`
	URL  = "https://pkg.go.dev/fillmore-labs.com/lifeguard"
)

type (
	// Diagnostic is a single rule violation, with optional suggested fixes.
	Diagnostic = report.Diagnostic

	// Descriptor describes a rule.
	Descriptor = report.Descriptor

	// Cache is a localization dictionary shared between analyzer runs.
	Cache = lookup.Cache
)

// Analyzer checks compilation units. It is safe for concurrent use once configured;
// Flags must not be parsed while a run is in progress.
type Analyzer struct {
	// Flags binds the analyzer configuration to command line flags.
	Flags flag.FlagSet

	r *run.Options
}

// New creates a new instance of the lifeguard analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools.
func New(opts ...Option) *Analyzer {
	r := run.DefaultOptions()
	Options(opts).apply(r)

	a := &Analyzer{r: r}
	a.Flags.Init(Name, flag.ContinueOnError)

	registerFlags(&a.Flags, r)

	return a
}

// Rules returns the descriptors of all rules the analyzer can report.
func (a *Analyzer) Rules() []*Descriptor {
	return append(lifetime.Descriptors(),
		rules.StringConcat,
		rules.InvalidLocalizationKey,
		rules.UnusedEnumerator,
		rules.MisusedInjection,
	)
}
