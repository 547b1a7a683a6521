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

// Package host defines the compilation unit handed to analyzers and generators.
//
// A [Unit] bundles parsed syntax trees with their resolution results. It is
// read-only after construction and may be shared between goroutines.
package host

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"go/token"
	"sync"

	"github.com/cespare/xxhash/v2"

	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

// Unit is one compilation unit.
type Unit struct {
	Fset     *token.FileSet
	Files    []*syntax.File
	Info     *symbols.Info
	Universe *symbols.Universe

	// Options holds analyzer configuration options, like `build_property.X`.
	Options map[string]string

	// ProjectDir is the directory of the project being compiled, or empty.
	ProjectDir string

	// Sources maps file names to their content.
	Sources map[string][]byte

	fpOnce      sync.Once
	fingerprint uint64
}

// TypeOf returns the static type of an expression, or nil when unresolved.
func (u *Unit) TypeOf(x syntax.Expr) *symbols.Type { return u.Info.TypeOf(x) }

// ObjectOf returns the object denoted by x, or nil when unresolved.
func (u *Unit) ObjectOf(x syntax.Expr) symbols.Object { return u.Info.ObjectOf(x) }

// MethodOf returns the method called by an invocation, or nil when unresolved.
func (u *Unit) MethodOf(call *syntax.InvocationExpr) *symbols.Method { return u.Info.MethodOf(call) }

// LookupType returns the type with the given fully qualified name, or nil.
func (u *Unit) LookupType(fullName string) *symbols.Type { return u.Universe.Lookup(fullName) }

// Position returns the source position for pos.
func (u *Unit) Position(pos token.Pos) token.Position { return u.Fset.Position(pos) }

// Option returns the configuration option with the given key.
func (u *Unit) Option(key string) (string, bool) {
	v, ok := u.Options[key]

	return v, ok
}

// Source returns the content of the file containing pos.
func (u *Unit) Source(pos token.Pos) ([]byte, *token.File) {
	tf := u.Fset.File(pos)
	if tf == nil {
		return nil, nil
	}

	return u.Sources[tf.Name()], tf
}

// Location is a stable call-site token that identifies exactly one invocation.
type Location struct {
	Version int
	Data    string
}

// Attribute renders the location as an attribute application.
func (l Location) Attribute() string {
	return fmt.Sprintf("[global::System.Runtime.CompilerServices.InterceptsLocation(%d, %q)]", l.Version, l.Data)
}

// InterceptableLocation returns the location token for an invocation whose callee is an
// identifier or member access. It depends only on the file content, the position of the
// callee name and the file name.
func (u *Unit) InterceptableLocation(call *syntax.InvocationExpr) (Location, bool) {
	var name *syntax.Ident

	switch fun := call.Fun.(type) {
	case *syntax.Ident:
		name = fun
	case *syntax.MemberAccessExpr:
		name = fun.Name
	default:
		return Location{}, false
	}

	src, tf := u.Source(name.Pos())
	if tf == nil || src == nil {
		return Location{}, false
	}

	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], xxhash.Sum64(src))
	binary.LittleEndian.PutUint32(buf[8:], uint32(tf.Offset(name.Pos()))) //nolint:gosec

	data := base64.StdEncoding.EncodeToString(append(buf[:], tf.Name()...))

	return Location{Version: 1, Data: data}, true
}

// Fingerprint returns a hash over the declared types and members of the unit.
// Edits that do not change any declaration leave the fingerprint unchanged.
func (u *Unit) Fingerprint() uint64 {
	u.fpOnce.Do(func() { u.fingerprint = computeFingerprint(u.Universe) })

	return u.fingerprint
}

func computeFingerprint(universe *symbols.Universe) uint64 {
	d := xxhash.New()

	for _, t := range universe.Types() {
		_, _ = d.WriteString(t.FullName())
		_, _ = d.WriteString(t.Kind().String())

		if t.Base != nil {
			_, _ = d.WriteString(":" + t.Base.FullName())
		}

		for _, f := range t.Fields {
			_, _ = d.WriteString(";" + f.TypeName + " " + f.Name())
		}

		for _, m := range t.Methods {
			_, _ = fmt.Fprintf(d, ";%s %s %s(", m.Accessibility, m.ResultName, m.Name())

			for _, p := range m.Params {
				_, _ = d.WriteString(p.TypeName + " " + p.Name() + ",")
			}

			_, _ = fmt.Fprintf(d, ")%t%t%t", m.Static, m.Async, m.Extension)
		}

		_, _ = d.WriteString("\n")
	}

	return d.Sum64() | 1
}
