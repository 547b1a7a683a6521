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

// Package testsource provides utilities for loading C# source fragments in tests.
//
// It handles the boilerplate of wrapping statement-level fragments into a class
// deriving from a minimal UnityEngine stub, then parsing and binding the result.
package testsource

import (
	"strings"
	"testing"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend"
	"fillmore-labs.com/lifeguard/syntax"
)

// UnityStub declares the part of the UnityEngine hierarchy used by tests.
const UnityStub = `namespace UnityEngine
{
    public class Object
    {
        public string name;
    }

    public class Component : Object
    {
        public Transform transform;
        public GameObject gameObject;
    }

    public class Behaviour : Component { }
    public class MonoBehaviour : Behaviour { }

    public class Transform : Component
    {
        public Transform parent;
    }

    public class GameObject : Object
    {
        public Transform transform;
    }
}
`

// Extensions declares the marker function.
const Extensions = `namespace Test
{
    public static class LifetimeExtensions
    {
        public static T AliveOrNull<T>(this T obj) where T : UnityEngine.Object => obj;
    }
}
`

const (
	// Filename is the name of the file containing the wrapped fragment.
	Filename = "Subject.cs"

	header = `using UnityEngine;

namespace Test;

public class Plain
{
    public string name;
    public Plain next;
}

public class Subject : MonoBehaviour
{
    private Transform t;
    private GameObject go;
    private Plain plain;

    public void Run()
    {
`
	suffix = `
    }
}
`
)

// Load parses and binds the given files together with [UnityStub] and [Extensions].
func Load(tb testing.TB, sources ...frontend.Source) *host.Unit {
	tb.Helper()

	all := append([]frontend.Source{
		{Name: "UnityEngine.cs", Content: []byte(UnityStub)},
		{Name: "Extensions.cs", Content: []byte(Extensions)},
	}, sources...)

	unit, err := frontend.Load(frontend.Config{}, all...)
	if err != nil {
		tb.Fatalf("Failed to load sources: %v", err)
	}

	return unit
}

// Parse wraps a statement fragment in the body of `Subject.Run` and loads it.
// Within the fragment, `t` is a Transform, `go` a GameObject and `plain` an unrelated class.
//
// Returns:
//   - *host.Unit: The bound compilation unit.
//   - *syntax.MethodDecl: The wrapper method.
//   - syntax.Cursor: A cursor positioned at the wrapper method's body.
func Parse(tb testing.TB, src string) (unit *host.Unit, fn *syntax.MethodDecl, body syntax.Cursor) {
	tb.Helper()

	unit = Load(tb, frontend.Source{Name: Filename, Content: []byte(Wrap(src))})

	fn, body = findMethod(unit.Files, "Run")
	if fn == nil {
		tb.Fatal("Can't find method")
	}

	return unit, fn, body
}

// Wrap returns the complete file for a statement fragment.
func Wrap(src string) string {
	var b strings.Builder
	b.Grow(len(header) + len(src) + len(suffix))

	b.WriteString(header) // ignore error
	b.WriteString(src)    // ignore error
	b.WriteString(suffix) // ignore error

	return b.String()
}

func findMethod(files []*syntax.File, name string) (fn *syntax.MethodDecl, body syntax.Cursor) {
	root := syntax.NewInspector(files).Root()
	for c := range root.Preorder() {
		if m, ok := c.Node().(*syntax.MethodDecl); ok && m.Name.Name == name && m.Body != nil {
			for b := range c.Preorder() {
				if b.Node() == m.Body {
					return m, b
				}
			}
		}
	}

	return nil, root
}
