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

// Package astutil holds per-file helpers shared by the analyzer passes.
package astutil

import (
	"go/token"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/lifeguard/syntax"
)

// lifeguard is the name of the linter.
const lifeguard = "lifeguard"

// generatedSuffixes are file name endings of generated sources.
var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".generated.cs", ".designer.cs"}

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *syntax.File
	handle    *token.File
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and a *[syntax.File].
func NewCurrentFile(fset *token.FileSet, file *syntax.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	return CurrentFile{file, handle, IsGenerated(file)}
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// File returns the syntax tree.
func (c CurrentFile) File() *syntax.File { return c.file }

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// Lines returns the number of lines a node spans.
func (c CurrentFile) Lines(n syntax.Node) int {
	return c.line(n.End()) - c.line(n.Pos()) + 1
}

func (c CurrentFile) line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// NoLintComment checks if the line of pos carries a `// nolint:` comment naming the rule,
// `lifeguard` or `all`.
func (c CurrentFile) NoLintComment(pos token.Pos, rule string) bool {
	if c.file == nil {
		return false
	}

	// find the first comment starting after pos
	i, _ := slices.BinarySearchFunc(c.file.Comments, pos,
		func(c *syntax.Comment, p token.Pos) int { return int(c.Pos() - p) })
	if i >= len(c.file.Comments) {
		return false
	}

	comment := c.file.Comments[i]

	if c.line(comment.Pos()) != c.line(pos) {
		return false // not on this line
	}

	return CommentHasNoLint(comment, rule)
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment suppresses the rule.
func CommentHasNoLint(comment *syntax.Comment, rule string) bool {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		switch l := strings.TrimSpace(linter); {
		case strings.EqualFold(l, rule), strings.EqualFold(l, lifeguard), strings.EqualFold(l, "all"):
			return true
		}
	}

	return false
}

// IsGenerated reports whether a file is generated, either by name or by an
// `// <auto-generated` comment ahead of the first declaration.
func IsGenerated(file *syntax.File) bool {
	name := strings.ToLower(filepath.Base(file.Name))
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	first := file.FileEnd
	if len(file.Usings) > 0 {
		first = file.Usings[0].Pos()
	} else if len(file.Decls) > 0 {
		first = file.Decls[0].Pos()
	}

	for _, comment := range file.Comments {
		if comment.Pos() >= first {
			break
		}

		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		if strings.HasPrefix(text, "<auto-generated") || strings.HasPrefix(text, "<autogenerated") {
			return true
		}
	}

	return false
}
