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

package symbols_test

import (
	"testing"

	. "fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

func TestUniverse(t *testing.T) {
	t.Parallel()

	u := NewUniverse()

	obj := NewType("UnityEngine", "Object", syntax.ClassKind)
	if prev := u.Insert(obj); prev != nil {
		t.Fatalf("Got previous type %v", prev)
	}

	if prev := u.Insert(NewType("UnityEngine", "Object", syntax.ClassKind)); prev != obj {
		t.Errorf("Got previous type %v, want %v", prev, obj)
	}

	if got := u.Lookup("UnityEngine.Object"); got != obj {
		t.Errorf("Got %v, want %v", got, obj)
	}

	if !u.IsNamespace("UnityEngine") || u.IsNamespace("Unity") {
		t.Error("Got wrong namespaces")
	}

	global := NewType("", "Plain", syntax.ClassKind)
	u.Insert(global)

	if got := global.FullName(); got != "Plain" {
		t.Errorf("Got %q, want %q", got, "Plain")
	}

	if got := u.Predefined("string"); got == nil || got.FullName() != "System.String" {
		t.Errorf("Got predefined string %v", got)
	}

	var nilUniverse *Universe
	if got := nilUniverse.Lookup("UnityEngine.Object"); got != nil {
		t.Errorf("Got %v from nil universe", got)
	}
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	u := NewUniverse()

	tests := []struct {
		typ  *Type
		want string
	}{
		{u.Predefined("int"), "int"},
		{u.Lookup("System.Object"), "object"},
		{NewType("Game.Platforms", "Platform", syntax.ClassKind), "global::Game.Platforms.Platform"},
		{NewType("", "Plain", syntax.ClassKind), "global::Plain"},
	}

	for _, tt := range tests {
		if got := QualifiedName(tt.typ); got != tt.want {
			t.Errorf("Got %q, want %q", got, tt.want)
		}
	}

	if !IsPredefinedKeyword("void") || IsPredefinedKeyword("Transform") {
		t.Error("Got wrong predefined keywords")
	}
}

func TestMemberLookup(t *testing.T) {
	t.Parallel()

	base := NewType("UnityEngine", "Object", syntax.ClassKind)
	base.Fields = append(base.Fields, NewField(base, "name", nil, "string"))
	base.Methods = append(base.Methods, NewMethod(base, "ToString"))

	derived := NewType("UnityEngine", "Transform", syntax.ClassKind)
	derived.Base = base

	if f := derived.Field("name"); f == nil || f.Owner != base {
		t.Errorf("Got field %v", f)
	}

	if m := derived.Method("ToString"); m == nil || m.Owner != base {
		t.Errorf("Got method %v", m)
	}

	if f := derived.Field("parent"); f != nil {
		t.Errorf("Got unexpected field %v", f)
	}
}

func TestAccessibilityOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mods syntax.Modifiers
		want Accessibility
	}{
		{0, Internal},
		{syntax.ModPublic | syntax.ModStatic, Public},
		{syntax.ModPrivate, Private},
		{syntax.ModProtected, Protected},
		{syntax.ModInternal, Internal},
		{syntax.ModProtected | syntax.ModInternal, ProtectedInternal},
	}

	for _, tt := range tests {
		if got := AccessibilityOf(tt.mods, Internal); got != tt.want {
			t.Errorf("Got %v for %v, want %v", got, tt.mods, tt.want)
		}
	}

	if got := ProtectedInternal.String(); got != "protected internal" {
		t.Errorf("Got %q", got)
	}
}
