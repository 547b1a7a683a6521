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

package generator

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/extract"
	"fillmore-labs.com/lifeguard/internal/hierarchy"
	"fillmore-labs.com/lifeguard/internal/pipeline"
	"fillmore-labs.com/lifeguard/internal/synth"
	"fillmore-labs.com/lifeguard/syntax"
)

// LegacyInterceptorAttributeKey is accepted when [config.InterceptorAttributeKey] is not set.
const LegacyInterceptorAttributeKey = "build_property.NitroxAnalyzers_GenerateInterceptorAttribute"

// Artifact is a generated file.
type Artifact = pipeline.Artifact

// Result is the outcome of one generator run.
type Result struct {
	// Artifacts holds all generated files, sorted by file key.
	Artifacts []Artifact

	// Errors holds one error per artifact that could not be generated.
	Errors []error

	// Regenerated and Reused list the file keys rendered in this run and taken from the previous one.
	Regenerated, Reused []string
}

// Err returns the joined errors.
func (r *Result) Err() error { return (&pipeline.Result{Errors: r.Errors}).Err() }

// Generator holds the incremental state of all generators. It is safe for concurrent use;
// runs are serialized.
type Generator struct {
	mu   sync.Mutex
	opts *genOptions

	guards  *pipeline.Pipeline[*extract.InterceptableCall, string]
	patches *pipeline.Pipeline[*extract.PatchTarget, string]

	// synthesis options of the current run
	synth synth.Options

	helper *Artifact
}

// New creates a generator.
func New(opts ...Option) *Generator {
	o := defaultOptions()
	Options(opts).apply(o)

	g := &Generator{opts: o}

	g.guards = &pipeline.Pipeline[*extract.InterceptableCall, string]{
		Name: "guard",
		Filter: func(n syntax.Node) bool {
			return extract.IsGuardCandidate(n, o.guardFragment)
		},
		Extract: func(unit *host.Unit, c syntax.Cursor) (*extract.InterceptableCall, bool) {
			return extract.ExtractCall(unit, c.Node())
		},
		Key:     func(c *extract.InterceptableCall) string { return c.OwnerNamespace },
		Compare: extract.Compare,
		Synthesize: func(key string, calls []*extract.InterceptableCall) (Artifact, error) {
			return synth.Interceptors(key, calls, g.synth)
		},
		Logger: o.logger,
	}

	g.patches = &pipeline.Pipeline[*extract.PatchTarget, string]{
		Name: "patch",
		Filter: func(n syntax.Node) bool {
			return extract.IsPatchCandidate(n, o.patchBase)
		},
		Extract: func(unit *host.Unit, c syntax.Cursor) (*extract.PatchTarget, bool) {
			return extract.ExtractPatch(unit, c)
		},
		Key:     func(p *extract.PatchTarget) string { return p.Key() },
		Compare: extract.ComparePatches,
		Synthesize: func(_ string, targets []*extract.PatchTarget) (Artifact, error) {
			return synth.Registration(merge(targets), g.synth)
		},
		Logger: o.logger,
	}

	return g
}

// Run generates all artifacts for unit. When ctx is cancelled, Run returns ctx.Err()
// and the generator keeps the state of the previous run.
func (g *Generator) Run(ctx context.Context, unit *host.Unit) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s := g.synthOptions(unit); s != g.synth {
		// rendering changed, previous artifacts are stale
		g.guards.Reset()
		g.patches.Reset()
		g.helper = nil
		g.synth = s
	}

	result := &Result{}

	if g.opts.generators.Enabled(config.GuardInterceptors) {
		r, err := g.guards.Run(ctx, unit)
		if err != nil {
			return nil, err
		}

		result.add(r)
	}

	if g.opts.generators.Enabled(config.PatchRegistrations) {
		r, err := g.patches.Run(ctx, unit)
		if err != nil {
			return nil, err
		}

		result.add(r)
	}

	if g.opts.generators.Enabled(config.LifetimeHelper) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.add(g.lifetimeHelper(ctx, unit))
	}

	slices.SortFunc(result.Artifacts, func(a, b Artifact) int { return strings.Compare(a.FileKey, b.FileKey) })

	return result, nil
}

// Reset drops the state of previous runs.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.guards.Reset()
	g.patches.Reset()
	g.helper = nil
}

func (g *Generator) synthOptions(unit *host.Unit) synth.Options {
	attribute := g.opts.generators.Enabled(config.InterceptorAttribute)
	if !g.opts.attributeSet {
		value, ok := unit.Option(config.InterceptorAttributeKey)
		if !ok {
			value, ok = unit.Option(LegacyInterceptorAttributeKey)
		}

		attribute = config.ParseBool(value, ok, attribute)
	}

	return synth.Options{Tool: g.opts.tool, InterceptorAttribute: attribute}
}

func (g *Generator) lifetimeHelper(ctx context.Context, unit *host.Unit) *pipeline.Result {
	r := &pipeline.Result{}

	if _, ok := hierarchy.Resolve(unit.Universe, g.opts.restricted); !ok {
		g.helper = nil

		return r
	}

	artifact, err := synth.LifetimeHelper(g.opts.restricted, g.opts.marker, g.synth)
	if err != nil {
		g.log(ctx, slog.LevelWarn, "synthesis failed", slog.Any("error", err))
		r.Errors = append(r.Errors, err)

		return r
	}

	r.Artifacts = append(r.Artifacts, artifact)

	if g.helper != nil && *g.helper == artifact {
		r.Reused = append(r.Reused, artifact.FileKey)
	} else {
		g.log(ctx, slog.LevelDebug, "regenerated", slog.String("file", artifact.FileKey))
		r.Regenerated = append(r.Regenerated, artifact.FileKey)
	}

	g.helper = &artifact

	return r
}

func (g *Generator) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if g.opts.logger == nil {
		return
	}

	g.opts.logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("pipeline", "helper"))...)
}

func (r *Result) add(p *pipeline.Result) {
	r.Artifacts = append(r.Artifacts, p.Artifacts...)
	r.Errors = append(r.Errors, p.Errors...)
	r.Regenerated = append(r.Regenerated, p.Regenerated...)
	r.Reused = append(r.Reused, p.Reused...)
}

// merge combines the declarations of a partial type, ordered by [extract.ComparePatches].
func merge(targets []*extract.PatchTarget) *extract.PatchTarget {
	if len(targets) == 1 {
		return targets[0]
	}

	merged := &extract.PatchTarget{Namespace: targets[0].Namespace, TypeName: targets[0].TypeName}
	for _, t := range targets {
		merged.Functions = append(merged.Functions, t.Functions...)
		merged.Fields = append(merged.Fields, t.Fields...)
	}

	return merged
}
