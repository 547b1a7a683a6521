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

// Package hierarchy tests nominal subtyping along the single base type chain.
package hierarchy

import "fillmore-labs.com/lifeguard/symbols"

// IsSubtype reports whether symbol is target or has target as an ancestor.
// Types are compared by identity.
func IsSubtype(symbol, target *symbols.Type) bool {
	if symbol == nil || target == nil {
		return false
	}

	if symbol == target {
		return true
	}

	for s := symbol.Base; s != nil; s = s.Base {
		if s == target {
			return true
		}
	}

	return false
}

// IsSubtypeOf reports whether symbol is a subtype of the type with the given fully qualified name.
// It returns false when the name cannot be resolved in universe.
func IsSubtypeOf(symbol *symbols.Type, universe *symbols.Universe, fullName string) bool {
	target, ok := Resolve(universe, fullName)
	if !ok {
		return false
	}

	return IsSubtype(symbol, target)
}

// Resolve looks up a type by its fully qualified name.
// Rules depending on an unresolvable type are inert for the compilation.
func Resolve(universe *symbols.Universe, fullName string) (*symbols.Type, bool) {
	t := universe.Lookup(fullName)

	return t, t != nil
}
