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
	"errors"
	"os"
	"path/filepath"

	"fillmore-labs.com/lifeguard/generator"
)

// outputDir tracks the artifacts written to a directory.
type outputDir struct {
	path    string
	written map[string]struct{}
}

func newOutputDir(path string) *outputDir {
	return &outputDir{path: path, written: make(map[string]struct{})}
}

// sync writes regenerated artifacts and artifacts not written before, and removes
// previously written artifacts missing from result.
func (d *outputDir) sync(result *generator.Result) (written, removed []string, err error) {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return nil, nil, err
	}

	regenerated := make(map[string]struct{}, len(result.Regenerated))
	for _, key := range result.Regenerated {
		regenerated[key] = struct{}{}
	}

	current := make(map[string]struct{}, len(result.Artifacts))

	for _, artifact := range result.Artifacts {
		key := artifact.FileKey
		current[key] = struct{}{}

		_, changed := regenerated[key]
		_, seen := d.written[key]

		if seen && !changed {
			continue
		}

		if err := os.WriteFile(filepath.Join(d.path, key), []byte(artifact.Text), 0o644); err != nil { //nolint:gosec
			return written, removed, err
		}

		d.written[key] = struct{}{}
		written = append(written, key)
	}

	for key := range d.written {
		if _, ok := current[key]; ok {
			continue
		}

		if err := os.Remove(filepath.Join(d.path, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return written, removed, err
		}

		delete(d.written, key)
		removed = append(removed, key)
	}

	return written, removed, nil
}
