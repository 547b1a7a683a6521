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

// Package frontend builds [host.Unit] values from source text.
package frontend

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend/binder"
	"fillmore-labs.com/lifeguard/internal/frontend/parser"
	"fillmore-labs.com/lifeguard/syntax"
)

// Source is the content of a single source file.
type Source struct {
	Name    string
	Content []byte
}

// Config controls unit construction.
type Config struct {
	// ProjectDir is recorded in the unit, used to locate auxiliary files.
	ProjectDir string

	// Options are host configuration options.
	Options map[string]string
}

// Load parses and binds the given sources into one compilation unit.
// Files with syntax errors are reported together; no unit is returned in that case.
func Load(cfg Config, sources ...Source) (*host.Unit, error) {
	fset := token.NewFileSet()

	files := make([]*syntax.File, 0, len(sources))
	contents := make(map[string][]byte, len(sources))

	var errs []error

	for _, src := range sources {
		f, err := parser.ParseFile(fset, src.Name, src.Content)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		files = append(files, f)
		contents[src.Name] = src.Content
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	universe, info := binder.Bind(files)

	return &host.Unit{
		Fset:       fset,
		Files:      files,
		Info:       info,
		Universe:   universe,
		Options:    cfg.Options,
		ProjectDir: cfg.ProjectDir,
		Sources:    contents,
	}, nil
}

// Ext is the source file extension.
const Ext = ".cs"

var skippedDirs = map[string]struct{}{"bin": {}, "obj": {}, ".git": {}}

// Collect returns the sorted source files named by paths. Directories are searched
// recursively for files ending in [Ext], skipping build output directories.
func Collect(paths ...string) ([]string, error) {
	var names []string

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !fi.IsDir() {
			names = append(names, p)

			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if _, skip := skippedDirs[d.Name()]; skip && path != p {
					return filepath.SkipDir
				}

				return nil
			}

			if strings.HasSuffix(path, Ext) {
				names = append(names, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(names)

	return slices.Compact(names), nil
}

// Read reads the named files.
func Read(names ...string) ([]Source, error) {
	sources := make([]Source, 0, len(names))

	for _, name := range names {
		content, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("can't read source: %w", err)
		}

		sources = append(sources, Source{Name: filepath.ToSlash(name), Content: content})
	}

	return sources, nil
}

// LoadPaths collects, reads and loads the source files named by paths.
func LoadPaths(cfg Config, paths ...string) (*host.Unit, error) {
	names, err := Collect(paths...)
	if err != nil {
		return nil, err
	}

	sources, err := Read(names...)
	if err != nil {
		return nil, err
	}

	return Load(cfg, sources...)
}
