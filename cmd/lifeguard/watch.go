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

package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"fillmore-labs.com/lifeguard/generator"
	"fillmore-labs.com/lifeguard/internal/frontend"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		g        generatorFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch -o dir [paths]",
		Short: "Regenerate sources on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.newGenerator(cmd.Flags(), &g)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"."}
			}

			w := &watcher{app: a, gen: gen, out: newOutputDir(g.out), paths: args, debounce: debounce}

			return w.run(cmd.Context())
		},
	}

	g.register(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "quiet period before regenerating")

	return cmd
}

// watcher regenerates the output directory whenever a source file changes.
type watcher struct {
	app      *app
	gen      *generator.Generator
	out      *outputDir
	paths    []string
	debounce time.Duration
}

func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, p := range w.paths {
		if err := w.add(fw, p); err != nil {
			return err
		}
	}

	w.regenerate(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if w.ignored(ev.Name) {
				continue
			}

			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.add(fw, ev.Name); err != nil {
						w.app.logger.Warn("can't watch directory", slog.String("dir", ev.Name), slog.Any("error", err))
					}
				}
			}

			if strings.HasSuffix(ev.Name, frontend.Ext) || ev.Has(fsnotify.Remove|fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}

			w.app.logger.Warn("watch error", slog.Any("error", err))

		case <-timer.C:
			w.regenerate(ctx)
		}
	}
}

// add watches path and its subdirectories. Files are watched through their directory.
func (w *watcher) add(fw *fsnotify.Watcher, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !fi.IsDir() {
		path = filepath.Dir(path)
		if slices.Contains(fw.WatchList(), path) {
			return nil
		}

		return fw.Add(path)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}

		if w.ignored(p) || (p != path && (d.Name() == "bin" || d.Name() == "obj" || d.Name() == ".git")) {
			return filepath.SkipDir
		}

		return fw.Add(p)
	})
}

// ignored reports whether path is inside the output directory.
func (w *watcher) ignored(path string) bool {
	out, err := filepath.Abs(w.out.path)
	if err != nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(out, abs)

	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *watcher) regenerate(ctx context.Context) {
	unit, err := w.app.load(w.paths)
	if err != nil {
		w.app.logger.Warn("can't load sources", slog.Any("error", err))

		return
	}

	result, err := w.gen.Run(ctx, unit)
	if err != nil {
		return
	}

	for _, err := range result.Errors {
		w.app.logger.Warn("generation failed", slog.Any("error", err))
	}

	written, removed, err := w.out.sync(result)
	if err != nil {
		w.app.logger.Error("can't write output", slog.Any("error", err))

		return
	}

	w.app.logger.Info("regenerated",
		slog.Any("written", written), slog.Any("removed", removed), slog.Int("reused", len(result.Reused)))
}
