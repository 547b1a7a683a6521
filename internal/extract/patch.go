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

package extract

import (
	"cmp"
	"slices"
	"strings"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/syntax"
)

const (
	// DefaultPatchBase is the base type of patches to register.
	DefaultPatchBase = "NitroxPatch"

	methodInfoType = "MethodInfo"
	registerMethod = "Patch"
)

// Roles are the Harmony patch roles, in registration order.
var Roles = []string{"prefix", "postfix", "transpiler", "finalizer", "manipulator"}

var targetPrefixes = []string{"targetmethod", "target_method"}

// PatchFunction is a static patch method and its role.
type PatchFunction struct {
	Name string
	Role string
}

// PatchField is a static `MethodInfo` field naming a patched method.
type PatchField struct {
	Name   string
	Prefix string // matched target prefix, lower case
}

// PatchTarget is a patch type declaration needing a generated registration.
// A partial type yields one target per declaration.
type PatchTarget struct {
	Namespace string
	TypeName  string
	Functions []PatchFunction
	Fields    []PatchField

	// FilePath and Offset locate the declaration.
	FilePath string
	Offset   int
}

// Key returns `Namespace.TypeName`.
func (p *PatchTarget) Key() string { return p.Namespace + "." + p.TypeName }

// Equal reports whether two patch targets are structurally equal.
func (p *PatchTarget) Equal(o *PatchTarget) bool {
	if p == o {
		return true
	}

	if p == nil || o == nil {
		return false
	}

	return p.Namespace == o.Namespace && p.TypeName == o.TypeName &&
		p.FilePath == o.FilePath && p.Offset == o.Offset &&
		slices.Equal(p.Functions, o.Functions) && slices.Equal(p.Fields, o.Fields)
}

// Hash returns a hash consistent with [PatchTarget.Equal].
func (p *PatchTarget) Hash() uint64 {
	var h hasher

	h.string(p.Namespace)
	h.string(p.TypeName)
	h.string(p.FilePath)
	h.int(p.Offset)
	h.int(len(p.Functions))

	for _, f := range p.Functions {
		h.string(f.Name)
		h.string(f.Role)
	}

	h.int(len(p.Fields))

	for _, f := range p.Fields {
		h.string(f.Name)
		h.string(f.Prefix)
	}

	return h.Sum64()
}

// ComparePatches orders patch targets by key, then by declaring file and offset.
func ComparePatches(a, b *PatchTarget) int {
	if c := strings.Compare(a.Key(), b.Key()); c != 0 {
		return c
	}

	if c := strings.Compare(a.FilePath, b.FilePath); c != 0 {
		return c
	}

	return cmp.Compare(a.Offset, b.Offset)
}

// IsPatchCandidate reports whether n is a partial type listing base among its bases
// that does not already declare `override Patch`.
func IsPatchCandidate(n syntax.Node, base string) bool {
	d, ok := n.(*syntax.TypeDecl)
	if !ok || !d.Modifiers.Has(syntax.ModPartial) {
		return false
	}

	if !slices.ContainsFunc(d.Bases, func(t *syntax.TypeRef) bool { return t.String() == base }) {
		return false
	}

	for _, m := range d.Members {
		if m, ok := m.(*syntax.MethodDecl); ok && m.Modifiers.Has(syntax.ModOverride) && m.Name.Name == registerMethod {
			return false
		}
	}

	return true
}

// ExtractPatch collects the patch methods and target fields of the type at c.
// The type must be declared directly in a namespace.
func ExtractPatch(unit *host.Unit, c syntax.Cursor) (*PatchTarget, bool) {
	d, ok := c.Node().(*syntax.TypeDecl)
	if !ok {
		return nil, false
	}

	ns, ok := c.Parent().Node().(*syntax.NamespaceDecl)
	if !ok {
		return nil, false
	}

	pos := unit.Position(d.Pos())
	p := &PatchTarget{
		Namespace: syntax.ExprString(ns.Name),
		TypeName:  d.Name.Name,
		FilePath:  pos.Filename,
		Offset:    pos.Offset,
	}

	for _, m := range d.Members {
		switch m := m.(type) {
		case *syntax.MethodDecl:
			if !m.Modifiers.Has(syntax.ModStatic) {
				continue
			}

			if role, ok := matchPrefix(m.Name.Name, Roles); ok {
				p.Functions = append(p.Functions, PatchFunction{Name: m.Name.Name, Role: role})
			}

		case *syntax.FieldDecl:
			if !m.Modifiers.Has(syntax.ModStatic) || m.Type.Simple() != methodInfoType {
				continue
			}

			if prefix, ok := matchPrefix(m.Name.Name, targetPrefixes); ok {
				p.Fields = append(p.Fields, PatchField{Name: m.Name.Name, Prefix: prefix})
			}
		}
	}

	return p, true
}

func matchPrefix(name string, prefixes []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix) {
			return prefix, true
		}
	}

	return "", false
}
