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

package synth_test

import (
	"errors"
	"strings"
	"testing"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/extract"
	. "fillmore-labs.com/lifeguard/internal/synth"
	"fillmore-labs.com/lifeguard/symbols"
)

func applyCall(line, column int) *extract.InterceptableCall {
	return &extract.InterceptableCall{
		Location: extract.CallLocation{
			FilePath: "/src/Program.cs",
			Line:     line,
			Column:   column,
			Token:    host.Location{Version: 1, Data: "abc"},
		},
		OwnerType:      "global::NitroxEntryPatch",
		Parameters:     []extract.Parameter{{Name: "gamePath", TypeName: "string"}},
		ReturnType:     "void",
		Static:         true,
		Name:           "Apply",
		OwnerNamespace: extract.GlobalNamespace,
		Accessibility:  symbols.Public,
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	var w Writer

	w.Open("class C")
	w.Line("int a;")
	w.Line("")
	w.Write("int ")
	w.Write("b;\nint c;")
	w.Line("")
	w.Close()
	w.Dedent()

	const want = "class C\n{\n    int a;\n\n    int b;\n    int c;\n}\n"
	if got := w.String(); got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestInterceptors(t *testing.T) {
	t.Parallel()

	got, err := Interceptors("Global", []*extract.InterceptableCall{applyCall(6, 9)}, Options{})
	if err != nil {
		t.Fatalf("Interceptors failed: %v", err)
	}

	if got.FileKey != "Global.g.cs" {
		t.Errorf("Got file key %q, want %q", got.FileKey, "Global.g.cs")
	}

	const wrapper = `namespace Nitrox.Analyzers.Interceptors
{
    [global::System.CodeDom.Compiler.GeneratedCodeAttribute("Lifeguard", "1.0.0.0")]
    file static class Global_Interceptors
    {
        [global::System.ComponentModel.EditorBrowsableAttribute(global::System.ComponentModel.EditorBrowsableState.Never)]
        [global::System.Runtime.CompilerServices.InterceptsLocation(1, "abc")]
        public static void Program_Apply_6_9(string gamePath)
        {
            if (!Guardian.IsTrustedDirectory(gamePath))
            {
                Environment.Exit(0);
            }
            global::NitroxEntryPatch.Apply(gamePath);
        }
    }
}
`

	if !strings.HasPrefix(got.Text, FileHeader) {
		t.Errorf("Missing file header in %q", got.Text)
	}

	if !strings.HasSuffix(got.Text, wrapper) {
		t.Errorf("Got %q, want suffix %q", got.Text, wrapper)
	}

	if n := strings.Count(got.Text, "class Guardian"); n != 1 {
		t.Errorf("Got %d Guardian declarations, want 1", n)
	}

	if strings.Contains(got.Text, "InterceptsLocationAttribute : Attribute") {
		t.Error("Unexpected attribute declaration")
	}
}

func TestInterceptorsAttribute(t *testing.T) {
	t.Parallel()

	got, err := Interceptors("Global", []*extract.InterceptableCall{applyCall(6, 9)}, Options{InterceptorAttribute: true})
	if err != nil {
		t.Fatalf("Interceptors failed: %v", err)
	}

	const attribute = `namespace System.Runtime.CompilerServices
{
    [global::System.CodeDom.Compiler.GeneratedCodeAttribute("Lifeguard", "1.0.0.0")]
    [global::System.ComponentModel.EditorBrowsableAttribute(global::System.ComponentModel.EditorBrowsableState.Never)]
    [AttributeUsage(AttributeTargets.Method, AllowMultiple = true)]
    file sealed class InterceptsLocationAttribute : Attribute
    {
        public InterceptsLocationAttribute(int version, string data) { }
    }
}
`

	if !strings.Contains(got.Text, attribute) {
		t.Errorf("Missing attribute declaration in %q", got.Text)
	}
}

func TestInterceptorForwarding(t *testing.T) {
	t.Parallel()

	instance := applyCall(3, 5)
	instance.Static = false
	instance.OwnerType = "global::Game.Launcher"
	instance.Parameters = append(instance.Parameters, extract.Parameter{Name: "retries", TypeName: "int"})

	tests := []struct {
		name   string
		modify func(c *extract.InterceptableCall)
		want   []string
		absent []string
	}{
		{
			"instance void", func(*extract.InterceptableCall) {},
			[]string{"public static void Program_Apply_3_5(this global::Game.Launcher @this, string gamePath, int retries)", "@this.Apply(gamePath, retries);"},
			nil,
		},
		{
			"result", func(c *extract.InterceptableCall) { c.ReturnType = "bool" },
			[]string{"public static bool Program_Apply_3_5(", "return @this.Apply(gamePath, retries);"},
			nil,
		},
		{
			"async", func(c *extract.InterceptableCall) {
				c.Async, c.ReturnType = true, "global::System.Threading.Tasks.Task"
			},
			[]string{"public static async global::System.Threading.Tasks.Task Program_Apply_3_5(", "await @this.Apply(gamePath, retries);"},
			[]string{"return await"},
		},
		{
			"async result", func(c *extract.InterceptableCall) {
				c.Async, c.ReturnType = true, "global::System.Threading.Tasks.Task<bool>"
			},
			[]string{"return await @this.Apply(gamePath, retries);"},
			nil,
		},
		{
			"private", func(c *extract.InterceptableCall) { c.Accessibility = symbols.Private },
			[]string{"Environment.Exit(0);"},
			[]string{".Apply("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := *instance
			tt.modify(&c)

			got, err := Interceptors("Game", []*extract.InterceptableCall{&c}, Options{})
			if err != nil {
				t.Fatalf("Interceptors failed: %v", err)
			}

			for _, s := range tt.want {
				if !strings.Contains(got.Text, s) {
					t.Errorf("Missing %q", s)
				}
			}

			for _, s := range tt.absent {
				if strings.Contains(got.Text, s) {
					t.Errorf("Unexpected %q", s)
				}
			}
		})
	}
}

func TestInterceptorNames(t *testing.T) {
	t.Parallel()

	other := applyCall(6, 9)
	other.Location.FilePath = "/other/Program.cs"

	dashed := applyCall(7, 1)
	dashed.Location.FilePath = "/src/My-Program.cs"

	got, err := Interceptors("Global", []*extract.InterceptableCall{applyCall(6, 9), applyCall(6, 30), other, dashed}, Options{})
	if err != nil {
		t.Fatalf("Interceptors failed: %v", err)
	}

	for _, name := range []string{"Program_Apply_6_9(", "Program_Apply_6_30(", "Program_Apply_6_9_2(", "My_Program_Apply_7_1("} {
		if n := strings.Count(got.Text, " "+name); n != 1 {
			t.Errorf("Got %d wrappers named %s, want 1", n, name)
		}
	}
}

func TestInterceptorsNoPathParameter(t *testing.T) {
	t.Parallel()

	c := applyCall(6, 9)
	c.Parameters = []extract.Parameter{{Name: "directory", TypeName: "string"}}

	if _, err := Interceptors("Global", []*extract.InterceptableCall{c}, Options{}); !errors.Is(err, ErrNoPathParameter) {
		t.Errorf("Got error %v, want %v", err, ErrNoPathParameter)
	}
}

func TestInterceptorsDeterministic(t *testing.T) {
	t.Parallel()

	calls := []*extract.InterceptableCall{applyCall(6, 9), applyCall(8, 9)}

	a, err1 := Interceptors("Global", calls, Options{InterceptorAttribute: true})
	b, err2 := Interceptors("Global", calls, Options{InterceptorAttribute: true})

	if err1 != nil || err2 != nil || a != b {
		t.Error("Expected identical output for identical input")
	}
}

func TestPathParameter(t *testing.T) {
	t.Parallel()

	params := []extract.Parameter{{Name: "name"}, {Name: "GamePATH"}, {Name: "pathB"}}
	if got, ok := PathParameter(params); !ok || got != "GamePATH" {
		t.Errorf("Got %q, %t, want %q", got, ok, "GamePATH")
	}
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	target := &extract.PatchTarget{
		Namespace: "NitroxPatcher.Patches.Dynamic",
		TypeName:  "Builder_Patch",
		Functions: []extract.PatchFunction{{Name: "Prefix", Role: "prefix"}, {Name: "PostfixLate", Role: "postfix"}},
		Fields:    []extract.PatchField{{Name: "TARGET_METHOD", Prefix: "target_method"}, {Name: "TargetMethodB", Prefix: "targetmethod"}},
	}

	got, err := Registration(target, Options{})
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	const want = `#pragma warning disable
using System;
using HarmonyLib;

namespace NitroxPatcher.Patches.Dynamic;

partial class Builder_Patch
{
    [global::System.CodeDom.Compiler.GeneratedCodeAttribute("Lifeguard", "1.0.0.0")]
    public override void Patch(Harmony harmony)
    {
        PatchMultiple(harmony, TARGET_METHOD, prefix: ((Delegate)Prefix).Method, postfix: ((Delegate)PostfixLate).Method);
        PatchMultiple(harmony, TargetMethodB, prefix: ((Delegate)Prefix).Method, postfix: ((Delegate)PostfixLate).Method);
    }
}
`

	if got.FileKey != "NitroxPatcher.Patches.Dynamic.Builder_Patch.g.cs" {
		t.Errorf("Got file key %q", got.FileKey)
	}

	if got.Text != want {
		t.Errorf("Got %q, want %q", got.Text, want)
	}
}

func TestRegistrationWithoutFunctions(t *testing.T) {
	t.Parallel()

	target := &extract.PatchTarget{
		Namespace: "P",
		TypeName:  "T",
		Fields:    []extract.PatchField{{Name: "TARGET_METHOD"}},
	}

	got, err := Registration(target, Options{Tool: Tool{Name: "X", Version: "2"}})
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	for _, s := range []string{"PatchMultiple(harmony, TARGET_METHOD);", `GeneratedCodeAttribute("X", "2")`} {
		if !strings.Contains(got.Text, s) {
			t.Errorf("Missing %q in %q", s, got.Text)
		}
	}
}

func TestRegistrationInvalid(t *testing.T) {
	t.Parallel()

	if _, err := Registration(&extract.PatchTarget{TypeName: "T"}, Options{}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Got error %v, want %v", err, ErrInvalidTarget)
	}
}

func TestLifetimeHelper(t *testing.T) {
	t.Parallel()

	got, err := LifetimeHelper("UnityEngine.Object", "AliveOrNull", Options{})
	if err != nil {
		t.Fatalf("LifetimeHelper failed: %v", err)
	}

	const want = FileHeader + `
internal static class AliveOrNullExtension
{
    /// <summary>
    ///     Returns null if Unity has marked this object as dead.
    /// </summary>
    /// <param name="obj">Unity <see cref="UnityEngine.Object" /> to check if alive.</param>
    /// <typeparam name="TObject">Type of Unity object that can be marked as either alive or dead.</typeparam>
    /// <returns>The <see cref="UnityEngine.Object" /> if alive or null if dead.</returns>
    [global::System.CodeDom.Compiler.GeneratedCodeAttribute("Lifeguard", "1.0.0.0")]
    public static TObject AliveOrNull<TObject>(this TObject obj) where TObject : global::UnityEngine.Object
    {
        if (obj)
        {
            return obj;
        }

        return null;
    }
}
`

	if got.FileKey != "AliveOrNullExtension.g.cs" {
		t.Errorf("Got file key %q", got.FileKey)
	}

	if got.Text != want {
		t.Errorf("Got %q, want %q", got.Text, want)
	}
}

func TestLifetimeHelperInvalidMarker(t *testing.T) {
	t.Parallel()

	for _, marker := range []string{"", "Alive.OrNull", "Alive OrNull"} {
		if _, err := LifetimeHelper("UnityEngine.Object", marker, Options{}); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("Got error %v for %q, want %v", err, marker, ErrInvalidIdentifier)
		}
	}
}
