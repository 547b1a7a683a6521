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

// Package lookup provides a process-wide key/value dictionary loaded from an auxiliary
// file, shared by concurrent analyses.
package lookup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// ErrDuplicateKey is returned when a dictionary file defines a key twice.
var ErrDuplicateKey = errors.New("duplicate key")

// entryRegexp matches `"key": "value"` lines.
var entryRegexp = regexp.MustCompile(`(?m)^\s*"([^"]+)"\s*:\s*"([^"]+)"`)

// Cache is a key/value dictionary loaded from a file. All methods are safe for concurrent use.
//
// A failed load leaves the cache empty. Readers never observe a partially loaded dictionary.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

var shared Cache

// Shared returns the process-wide cache.
func Shared() *Cache { return &shared }

// Load reads the dictionary at path. Loading the path already loaded is a no-op.
// On error the cache is reset to empty.
func (c *Cache) Load(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries != nil && c.path == path {
		return nil
	}

	c.path, c.entries = path, nil

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("can't load dictionary: %w", err)
	}

	entries, err := Parse(content)
	if err != nil {
		return fmt.Errorf("can't load dictionary %s: %w", path, err)
	}

	c.entries = entries

	return nil
}

// Parse extracts the `"key": "value"` entries of content.
func Parse(content []byte) (map[string]string, error) {
	matches := entryRegexp.FindAllSubmatch(content, -1)

	entries := make(map[string]string, len(matches))
	for _, m := range matches {
		key := string(m[1])
		if _, ok := entries[key]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateKey, key)
		}

		entries[key] = string(m[2])
	}

	return entries, nil
}

// Contains reports whether key is defined.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]

	return ok
}

// Get returns the value for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]

	return v, ok
}

// FileName returns the path of the last load attempt.
func (c *Cache) FileName() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.path
}

// Loaded reports whether the last load succeeded.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries != nil
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache) IsEmpty() bool { return c.Len() == 0 }

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.path, c.entries = "", nil
}

// DefaultPath returns the location of the English language file for a project directory:
// `<solution>/Nitrox.Assets.Subnautica/LanguageFiles/en.json`, where the solution directory
// is the parent of projectDir. It returns "" for an empty projectDir.
func DefaultPath(projectDir string) string {
	if strings.TrimSpace(projectDir) == "" {
		return ""
	}

	solution := filepath.Dir(filepath.Clean(projectDir))

	return filepath.Join(solution, "Nitrox.Assets.Subnautica", "LanguageFiles", "en.json")
}
