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

import "strings"

// Modifiers is the set of declaration modifiers in front of a type or member.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModInternal
	ModProtected
	ModStatic
	ModPartial
	ModAbstract
	ModSealed
	ModOverride
	ModAsync
	ModReadonly
	ModVirtual
	ModConst
)

var modifierNames = [...]struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModInternal, "internal"},
	{ModProtected, "protected"},
	{ModStatic, "static"},
	{ModPartial, "partial"},
	{ModAbstract, "abstract"},
	{ModSealed, "sealed"},
	{ModOverride, "override"},
	{ModAsync, "async"},
	{ModReadonly, "readonly"},
	{ModVirtual, "virtual"},
	{ModConst, "const"},
}

// LookupModifier maps a keyword to its modifier, or returns 0.
func LookupModifier(keyword string) Modifiers {
	for _, m := range modifierNames {
		if m.name == keyword {
			return m.mod
		}
	}

	return 0
}

// Has reports whether all modifiers in m are present.
func (s Modifiers) Has(m Modifiers) bool { return s&m == m }

func (s Modifiers) String() string {
	var b strings.Builder

	for _, m := range modifierNames {
		if s&m.mod == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(m.name)
	}

	return b.String()
}
