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

// Package pipeline turns compilation units into generated artifacts in stages:
// a syntax-only filter, semantic extraction of facts, deduplication, grouping by key
// and synthesis of one artifact per group.
//
// A [Pipeline] keeps the results of its last run. Files whose content and unit
// declarations did not change are not re-extracted, and groups whose facts did not
// change reuse their previous artifact.
package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"runtime/trace"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/syntax"
)

// Fact is a value extracted from a syntax node. Facts must not reference syntax or symbols.
type Fact[F any] interface {
	// Equal reports structural equality.
	Equal(other F) bool

	// Hash is consistent with Equal.
	Hash() uint64
}

// Artifact is a generated file.
type Artifact struct {
	FileKey string
	Text    string
}

// Pipeline describes one generator. The function fields must be set before the first run
// and not changed afterwards.
type Pipeline[F Fact[F], K cmp.Ordered] struct {
	// Name identifies the pipeline in traces and logs.
	Name string

	// Filter is a syntax-only test selecting nodes for extraction.
	Filter func(n syntax.Node) bool

	// Extract derives a fact from a node that passed Filter.
	Extract func(unit *host.Unit, c syntax.Cursor) (F, bool)

	// Key returns the group of a fact.
	Key func(fact F) K

	// Compare orders facts within a group.
	Compare func(a, b F) int

	// Synthesize produces the artifact of a non-empty group.
	Synthesize func(key K, facts []F) (Artifact, error)

	// Logger receives debug output, when set.
	Logger *slog.Logger

	mu     sync.Mutex
	memo   map[memoKey][]F
	groups map[K]generated[F]
}

type memoKey struct {
	file        string
	content     uint64
	fingerprint uint64
}

type generated[F any] struct {
	facts    []F
	artifact Artifact
}

// Result is the outcome of one run.
type Result struct {
	// Artifacts holds the artifacts of all groups that synthesized successfully, sorted by file key.
	Artifacts []Artifact

	// Errors holds one error per failed group.
	Errors []error

	// Regenerated and Reused list the file keys synthesized in this run and taken from the previous one.
	Regenerated, Reused []string
}

// Err returns the joined synthesis errors.
func (r *Result) Err() error { return errors.Join(r.Errors...) }

// Run executes all stages on unit. When ctx is cancelled, Run returns ctx.Err(), no artifacts
// and leaves the pipeline state as it was.
func (p *Pipeline[F, K]) Run(ctx context.Context, unit *host.Unit) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, task := trace.NewTask(ctx, "Pipeline")
	defer task.End()

	trace.Log(ctx, "pipeline", p.Name)

	// Stage 1: filter and extract
	perFile, memo, err := p.extract(ctx, unit)
	if err != nil {
		return nil, err
	}

	// Stage 2: deduplicate and group
	groups := p.group(ctx, perFile)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: synthesize
	result, next, err := p.synthesize(ctx, groups)
	if err != nil {
		return nil, err
	}

	p.memo, p.groups = memo, next

	return result, nil
}

func (p *Pipeline[F, K]) extract(ctx context.Context, unit *host.Unit) ([][]F, map[memoKey][]F, error) {
	defer trace.StartRegion(ctx, "extract").End()

	fingerprint := unit.Fingerprint()
	perFile := make([][]F, len(unit.Files))
	keys := make([]memoKey, len(unit.Files))
	cached := make([]bool, len(unit.Files))

	for i, f := range unit.Files {
		src, ok := unit.Sources[f.Name]
		if !ok {
			continue
		}

		keys[i] = memoKey{file: f.Name, content: xxhash.Sum64(src), fingerprint: fingerprint}
		perFile[i], cached[i] = p.memo[keys[i]]
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range unit.Files {
		if cached[i] {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			perFile[i] = p.extractFile(unit, f)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	memo := make(map[memoKey][]F, len(unit.Files))

	for i, k := range keys {
		if k.file != "" {
			memo[k] = perFile[i]
		}
	}

	return perFile, memo, nil
}

func (p *Pipeline[F, K]) extractFile(unit *host.Unit, f *syntax.File) []F {
	var facts []F

	in := syntax.NewInspector([]*syntax.File{f})
	for c := range in.Root().Preorder() {
		if !p.Filter(c.Node()) {
			continue
		}

		if fact, ok := p.Extract(unit, c); ok {
			facts = append(facts, fact)
		}
	}

	return facts
}

func (p *Pipeline[F, K]) group(ctx context.Context, perFile [][]F) map[K][]F {
	defer trace.StartRegion(ctx, "group").End()

	buckets := make(map[uint64][]F)
	groups := make(map[K][]F)

	for _, facts := range perFile {
	next:
		for _, fact := range facts {
			h := fact.Hash()
			for _, seen := range buckets[h] {
				if seen.Equal(fact) {
					continue next
				}
			}

			buckets[h] = append(buckets[h], fact)

			k := p.Key(fact)
			groups[k] = append(groups[k], fact)
		}
	}

	for _, facts := range groups {
		slices.SortStableFunc(facts, p.Compare)
	}

	return groups
}

func (p *Pipeline[F, K]) synthesize(ctx context.Context, groups map[K][]F) (*Result, map[K]generated[F], error) {
	defer trace.StartRegion(ctx, "synthesize").End()

	result := &Result{}
	next := make(map[K]generated[F], len(groups))

	for _, k := range slices.Sorted(maps.Keys(groups)) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		facts := groups[k]

		if prev, ok := p.groups[k]; ok && equalFacts(prev.facts, facts) {
			next[k] = prev
			result.Artifacts = append(result.Artifacts, prev.artifact)
			result.Reused = append(result.Reused, prev.artifact.FileKey)

			continue
		}

		artifact, err := p.Synthesize(k, facts)
		if err != nil {
			p.log(ctx, slog.LevelWarn, "synthesis failed", slog.Any("key", k), slog.Any("error", err))
			result.Errors = append(result.Errors, fmt.Errorf("%s %v: %w", p.Name, k, err))

			continue
		}

		p.log(ctx, slog.LevelDebug, "regenerated", slog.String("file", artifact.FileKey), slog.Int("facts", len(facts)))

		next[k] = generated[F]{facts: facts, artifact: artifact}
		result.Artifacts = append(result.Artifacts, artifact)
		result.Regenerated = append(result.Regenerated, artifact.FileKey)
	}

	slices.SortFunc(result.Artifacts, func(a, b Artifact) int { return cmp.Compare(a.FileKey, b.FileKey) })

	return result, next, nil
}

func (p *Pipeline[F, K]) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if p.Logger == nil {
		return
	}

	p.Logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("pipeline", p.Name))...)
}

// Reset drops the results of previous runs.
func (p *Pipeline[F, K]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.memo, p.groups = nil, nil
}

func equalFacts[F Fact[F]](a, b []F) bool {
	return slices.EqualFunc(a, b, func(x, y F) bool { return x.Equal(y) })
}
