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

package report

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"

	"golang.org/x/tools/go/analysis"
)

var (
	// ErrOverlappingEdits is returned when two edits of one file overlap.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrEditOutOfRange is returned when an edit is not within the file.
	ErrEditOutOfRange = errors.New("edit out of range")
)

// ApplyEdits applies text edits to the content of file. Edits are sorted by position;
// identical edits are applied once. Insertions at the same position keep their order.
func ApplyEdits(file *token.File, src []byte, edits []analysis.TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b analysis.TextEdit) int {
		if c := cmp.Compare(a.Pos, b.Pos); c != 0 {
			return c
		}

		return cmp.Compare(a.End, b.End)
	})

	sorted = slices.CompactFunc(sorted, func(a, b analysis.TextEdit) bool {
		return a.Pos == b.Pos && a.End == b.End && bytes.Equal(a.NewText, b.NewText)
	})

	var (
		out  bytes.Buffer
		last int
	)

	out.Grow(len(src))

	for _, e := range sorted {
		start, end, err := offsets(file, len(src), e)
		if err != nil {
			return nil, err
		}

		if start < last {
			return nil, fmt.Errorf("%w at %s", ErrOverlappingEdits, file.Position(e.Pos))
		}

		out.Write(src[last:start]) // ignore error
		out.Write(e.NewText)       // ignore error
		last = end
	}

	out.Write(src[last:]) // ignore error

	return out.Bytes(), nil
}

func offsets(file *token.File, size int, e analysis.TextEdit) (start, end int, err error) {
	base := file.Base()

	start, end = int(e.Pos)-base, int(e.End)-base
	if !e.End.IsValid() {
		end = start
	}

	if start < 0 || end < start || end > size {
		return 0, 0, fmt.Errorf("%w: [%d, %d) in %s", ErrEditOutOfRange, start, end, file.Name())
	}

	return start, end, nil
}
