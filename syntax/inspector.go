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

package syntax

import (
	"go/token"
	"iter"
)

// Inspector is a flattened pre-order index of a set of files that supports
// navigating to parents and enclosing nodes, in the manner of
// golang.org/x/tools/go/ast/inspector.
type Inspector struct {
	entries []entry
}

type entry struct {
	node   Node
	parent int32 // index of parent entry, or -1 for files
	last   int32 // index of the last entry in this subtree
}

// NewInspector indexes the given files.
func NewInspector(files []*File) *Inspector {
	in := &Inspector{}

	for _, f := range files {
		in.index(f, -1)
	}

	return in
}

func (in *Inspector) index(n Node, parent int32) {
	i := int32(len(in.entries))
	in.entries = append(in.entries, entry{node: n, parent: parent})

	children(n, func(c Node) { in.index(c, i) })

	in.entries[i].last = int32(len(in.entries) - 1)
}

// Root returns a cursor for the virtual root above all files.
func (in *Inspector) Root() Cursor { return Cursor{in: in, index: -1} }

// At returns the cursor at the given index.
func (in *Inspector) At(index int32) Cursor { return Cursor{in: in, index: index} }

// Len returns the number of indexed nodes.
func (in *Inspector) Len() int { return len(in.entries) }

// Innermost returns a cursor for the innermost node that encloses the range [pos, end).
// The second result is false if no node encloses the range.
func (in *Inspector) Innermost(pos, end token.Pos) (Cursor, bool) {
	found := int32(-1)

	for i := int32(0); i < int32(len(in.entries)); {
		e := in.entries[i]

		if e.node.Pos() <= pos && end <= e.node.End() {
			found = i
			i++ // descend

			continue
		}

		i = e.last + 1 // skip subtree
	}

	if found < 0 {
		return Cursor{}, false
	}

	return in.At(found), true
}

// Cursor is a position in an [Inspector]'s traversal.
type Cursor struct {
	in    *Inspector
	index int32
}

// Valid reports whether the cursor points to a node or the virtual root.
func (c Cursor) Valid() bool { return c.in != nil }

// Index returns the index of the cursor's node; -1 is the virtual root.
func (c Cursor) Index() int32 { return c.index }

// Inspector returns the inspector the cursor belongs to.
func (c Cursor) Inspector() *Inspector { return c.in }

// Node returns the cursor's node, or nil for the virtual root.
func (c Cursor) Node() Node {
	if c.index < 0 {
		return nil
	}

	return c.in.entries[c.index].node
}

// Parent returns the parent cursor. The parent of a file is the virtual root.
func (c Cursor) Parent() Cursor {
	if c.index < 0 {
		panic("Cursor.Parent called on root")
	}

	return Cursor{in: c.in, index: c.in.entries[c.index].parent}
}

// Preorder yields the cursor's node and all of its descendants in pre-order.
// For the virtual root it yields all indexed nodes.
func (c Cursor) Preorder() iter.Seq[Cursor] {
	first, last := c.index, int32(len(c.in.entries)-1)
	if c.index < 0 {
		first = 0
	} else {
		last = c.in.entries[c.index].last
	}

	return func(yield func(Cursor) bool) {
		for i := first; i <= last; i++ {
			if !yield(Cursor{in: c.in, index: i}) {
				return
			}
		}
	}
}

// Children yields the direct children of the cursor's node. For the virtual root it yields the files.
func (c Cursor) Children() iter.Seq[Cursor] {
	first, last := c.index+1, int32(len(c.in.entries)-1)
	if c.index >= 0 {
		last = c.in.entries[c.index].last
	}

	return func(yield func(Cursor) bool) {
		for i := first; i <= last; i = c.in.entries[i].last + 1 {
			if !yield(Cursor{in: c.in, index: i}) {
				return
			}
		}
	}
}

// Enclosing yields the cursor's node and its ancestors, innermost first.
func (c Cursor) Enclosing() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for i := c.index; i >= 0; i = c.in.entries[i].parent {
			if !yield(Cursor{in: c.in, index: i}) {
				return
			}
		}
	}
}

// EnclosingOf returns the innermost node of type T that encloses the cursor, including the cursor's node itself.
func EnclosingOf[T Node](c Cursor) (T, bool) {
	for e := range c.Enclosing() {
		if n, ok := e.Node().(T); ok {
			return n, true
		}
	}

	var zero T

	return zero, false
}
