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
	"context"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/astutil"
	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/report"
	"fillmore-labs.com/lifeguard/internal/rules"
	"fillmore-labs.com/lifeguard/syntax"
)

// Run analyzes all files of unit in a single pass and returns the diagnostics sorted by position.
func (r *Options) Run(ctx context.Context, unit *host.Unit) []report.Diagnostic {
	ctx, task := trace.NewTask(ctx, "Lifeguard")
	defer task.End()

	c := r.checkers(ctx, unit)

	in := syntax.NewInspector(unit.Files)

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*syntax.File)

		currentFile := astutil.NewCurrentFile(unit.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(&c.out, file, "File %s without valid info", file.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		region := trace.StartRegion(ctx, "file")
		trace.Log(ctx, "file", file.Name)

		c.file = currentFile
		for n := range f.Preorder() {
			c.visit(n)
		}

		region.End()
	}

	report.Sort(c.out.Diagnostics)

	return c.out.Diagnostics
}

// checkers holds the per-unit state of all enabled rules.
type checkers struct {
	unit         *host.Unit
	rules        config.BitMask[config.RuleFlags]
	suggestFixes bool

	lifetime     *lifetime.Detector
	localization *rules.Localization
	injection    *rules.Injection

	file astutil.CurrentFile
	out  report.Collector
}

func (r *Options) checkers(ctx context.Context, unit *host.Unit) *checkers {
	defer trace.StartRegion(ctx, "setup").End()

	c := &checkers{
		unit:         unit,
		rules:        r.Rules,
		suggestFixes: r.Behavior.Enabled(config.SuggestFixes),
	}

	if r.Rules.Enabled(config.LifetimeRules) {
		c.lifetime = lifetime.New(unit, r.Restricted, r.Marker)
		if c.lifetime == nil {
			r.log(ctx, slog.LevelDebug, "lifetime rules disabled, restricted type not found", slog.String("type", r.Restricted))
		}
	}

	if r.Rules.Enabled(config.LocalizationRule) {
		l, err := rules.NewLocalization(unit, r.cache(), r.LocalizationFile)
		if err != nil {
			r.log(ctx, slog.LevelWarn, "localization rule disabled", slog.Any("error", err))
		}

		c.localization = l
	}

	if r.Rules.Enabled(config.InjectionRule) {
		c.injection = rules.NewInjection(unit, r.InjectionAllowed...)
	}

	return c
}

// visit dispatches a node to the rules interested in its kind.
func (c *checkers) visit(cur syntax.Cursor) {
	switch n := cur.Node().(type) {
	case *syntax.IsPatternExpr:
		c.report(c.lifetime.CheckIsPattern(n))

	case *syntax.ConditionalAccessExpr:
		c.report(c.lifetime.CheckConditionalAccess(n))

	case *syntax.BinaryExpr:
		switch n.Op {
		case syntax.OpCoalesce:
			c.report(c.lifetime.CheckCoalesce(n))

		case syntax.OpAdd:
			if c.rules.Enabled(config.StringConcatRule) {
				c.report(rules.CheckStringConcat(c.unit, cur))
			}
		}

	case *syntax.InvocationExpr:
		if c.rules.Enabled(config.EnumeratorRule) {
			c.report(rules.CheckEnumerator(c.unit, cur))
		}

		c.report(c.localization.CheckSetText(cur))

	case *syntax.BasicLit:
		c.report(c.localization.CheckLiteral(cur))

	case *syntax.MemberAccessExpr:
		if c.injection != nil {
			c.report(c.injection.Check(cur))
		}
	}
}

func (c *checkers) report(d report.Diagnostic, ok bool) {
	if !ok {
		return
	}

	// Skip diagnostics with nolint comment
	if c.file.NoLintComment(d.Pos, d.Descriptor.ID) {
		return
	}

	if !c.suggestFixes {
		d.Fixes = nil
	}

	c.out.Report(d)
}

func (r *Options) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if r.Logger == nil {
		return
	}

	r.Logger.LogAttrs(ctx, level, msg, attrs...)
}
