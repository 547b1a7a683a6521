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

// Package extract turns syntax nodes into the facts consumed by code generation.
//
// Filters are syntax-only and never query semantic information. Extractors resolve
// symbols and return false for input they can't resolve.
package extract

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/symbols"
)

// CallLocation is the source location of an intercepted call. Line and Column are 1-based.
type CallLocation struct {
	FilePath string
	Line     int
	Column   int
	Token    host.Location
}

// FileName returns the base name of FilePath without its three-character extension,
// or "" when FilePath contains no '/'.
func (l CallLocation) FileName() string {
	i := strings.LastIndexByte(l.FilePath, '/')
	if i < 0 {
		return ""
	}

	name := l.FilePath[i+1:]
	if len(name) < 3 {
		return ""
	}

	return name[:len(name)-3]
}

// Parameter is a parameter of an intercepted method.
type Parameter struct {
	Name     string
	TypeName string // fully qualified
}

// GlobalNamespace groups calls to methods declared outside of any namespace.
const GlobalNamespace = "Global"

// InterceptableCall describes a call site and its target with everything needed
// to declare an interceptor for it.
type InterceptableCall struct {
	Location       CallLocation
	OwnerType      string // fully qualified receiver type
	Parameters     []Parameter
	ReturnType     string // fully qualified, "void" for no result
	Async          bool
	Static         bool
	Name           string
	OwnerNamespace string
	Accessibility  symbols.Accessibility
}

// Equal reports whether two calls are structurally equal.
func (c *InterceptableCall) Equal(o *InterceptableCall) bool {
	if c == o {
		return true
	}

	if c == nil || o == nil {
		return false
	}

	return c.Location == o.Location &&
		c.OwnerType == o.OwnerType &&
		slices.Equal(c.Parameters, o.Parameters) &&
		c.ReturnType == o.ReturnType &&
		c.Async == o.Async &&
		c.Static == o.Static &&
		c.Name == o.Name &&
		c.OwnerNamespace == o.OwnerNamespace &&
		c.Accessibility == o.Accessibility
}

// Hash returns a hash consistent with [InterceptableCall.Equal].
func (c *InterceptableCall) Hash() uint64 {
	var h hasher

	h.string(c.Location.FilePath)
	h.int(c.Location.Line)
	h.int(c.Location.Column)
	h.int(c.Location.Token.Version)
	h.string(c.Location.Token.Data)
	h.string(c.OwnerType)

	h.int(len(c.Parameters))

	for _, p := range c.Parameters {
		h.string(p.Name)
		h.string(p.TypeName)
	}

	h.string(c.ReturnType)
	h.bool(c.Async)
	h.bool(c.Static)
	h.string(c.Name)
	h.string(c.OwnerNamespace)
	h.int(int(c.Accessibility))

	return h.Sum64()
}

// Compare orders calls by file, position and name.
func Compare(a, b *InterceptableCall) int {
	if c := strings.Compare(a.Location.FilePath, b.Location.FilePath); c != 0 {
		return c
	}

	if c := a.Location.Line - b.Location.Line; c != 0 {
		return c
	}

	if c := a.Location.Column - b.Location.Column; c != 0 {
		return c
	}

	return strings.Compare(a.Name, b.Name)
}

// hasher writes length-prefixed fields into an xxhash digest.
type hasher struct {
	d *xxhash.Digest
}

func (h *hasher) digest() *xxhash.Digest {
	if h.d == nil {
		h.d = xxhash.New()
	}

	return h.d
}

func (h *hasher) int(v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v)) //nolint:gosec

	_, _ = h.digest().Write(buf[:])
}

func (h *hasher) bool(v bool) {
	b := byte(0)
	if v {
		b = 1
	}

	_, _ = h.digest().Write([]byte{b})
}

func (h *hasher) string(s string) {
	h.int(len(s))
	_, _ = h.digest().WriteString(s)
}

func (h *hasher) Sum64() uint64 { return h.digest().Sum64() }
