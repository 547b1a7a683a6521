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

package frontend_test

import (
	"testing"

	. "fillmore-labs.com/lifeguard/internal/frontend"
	"fillmore-labs.com/lifeguard/symbols"
	"fillmore-labs.com/lifeguard/syntax"
)

const unity = `namespace UnityEngine
{
    public class Object { }
    public class Component : Object
    {
        public Transform transform;
    }
    public class Transform : Component { }
}
`

const game = `using UnityEngine;

namespace Game;

public class Player : Component
{
    private Player other;

    public void Update()
    {
        var t = other?.transform;
        if (other is { } p) { p.Move(); }
        Player q = other ?? this;
    }

    public void Move() { }
}

public static class Extensions
{
    public static T AliveOrNull<T>(this T obj) where T : Object => obj;
}
`

func load(t *testing.T) (*symbols.Universe, *symbols.Info, []*syntax.File) {
	t.Helper()

	unit, err := Load(Config{}, Source{Name: "unity.cs", Content: []byte(unity)}, Source{Name: "game.cs", Content: []byte(game)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	return unit.Universe, unit.Info, unit.Files
}

func TestLoadHierarchy(t *testing.T) {
	t.Parallel()

	universe, _, _ := load(t)

	player := universe.Lookup("Game.Player")
	if player == nil {
		t.Fatal("Game.Player not declared")
	}

	object := universe.Lookup("UnityEngine.Object")

	var chain []string
	for s := player; s != nil; s = s.Base {
		chain = append(chain, s.FullName())
	}

	if got, want := len(chain), 3; got != want {
		t.Fatalf("Got ancestor chain %v, expected %d entries", chain, want)
	}

	if player.Base.Base != object {
		t.Errorf("Expected %s to derive from %s", player, object)
	}
}

func TestLoadResolvesExpressions(t *testing.T) {
	t.Parallel()

	universe, info, files := load(t)
	player := universe.Lookup("Game.Player")
	transform := universe.Lookup("UnityEngine.Transform")

	var (
		condX   syntax.Expr
		condT   *symbols.Type
		coalesc *symbols.Type
		binding *symbols.Type
	)

	for _, f := range files {
		syntax.Inspect(f, func(n syntax.Node) bool {
			switch n := n.(type) {
			case *syntax.ConditionalAccessExpr:
				condX = n.X
				condT = info.TypeOf(n)

			case *syntax.BinaryExpr:
				coalesc = info.TypeOf(n.X)

			case *syntax.RecursivePattern:
				if l, ok := info.Defs[n.Designation].(*symbols.Local); ok {
					binding = l.Type
				}
			}

			return true
		})
	}

	if got := info.TypeOf(condX); got != player {
		t.Errorf("Got conditional access receiver type %v, expected %v", got, player)
	}

	if condT != transform {
		t.Errorf("Got conditional access type %v, expected %v", condT, transform)
	}

	if coalesc != player {
		t.Errorf("Got coalesce operand type %v, expected %v", coalesc, player)
	}

	if binding != player {
		t.Errorf("Got designation type %v, expected %v", binding, player)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := Load(Config{}, Source{Name: "bad.cs", Content: []byte("class C { void M() { x = ; } }")})
	if err == nil {
		t.Fatal("Expected syntax error")
	}
}
