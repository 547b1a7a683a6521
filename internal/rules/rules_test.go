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

package rules_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend"
	"fillmore-labs.com/lifeguard/internal/lookup"
	"fillmore-labs.com/lifeguard/internal/report"
	. "fillmore-labs.com/lifeguard/internal/rules"
	"fillmore-labs.com/lifeguard/internal/testsource"
	"fillmore-labs.com/lifeguard/syntax"
)

type checkFunc func(unit *host.Unit, c syntax.Cursor) (report.Diagnostic, bool)

func run(tb testing.TB, unit *host.Unit, check checkFunc) []report.Diagnostic {
	tb.Helper()

	var diags []report.Diagnostic

	in := syntax.NewInspector(unit.Files)
	for c := range in.Root().Preorder() {
		if d, ok := check(unit, c); ok {
			diags = append(diags, d)
		}
	}

	report.Sort(diags)

	return diags
}

func messages(diags []report.Diagnostic) []string {
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.Message())
	}

	return msgs
}

func TestStringConcat(t *testing.T) {
	t.Parallel()

	const concat = "String concat can be turned into interpolated string"

	tests := []struct {
		name string
		src  string
		want int
	}{
		{"literal", `var s = "a" + plain.name;`, 1},
		{"chain", `var s = "a" + plain.name + "b" + plain.name;`, 1},
		{"member", `var s = plain.name + plain.name;`, 1},
		{"interpolated", `var s = $"a{1}" + plain.name;`, 1},
		{"parenthesized", `var s = ("a" + plain.name) + "b";`, 1},
		{"numbers", `var n = 1 + 2;`, 0},
		{"comparison", `var b = "a" + plain.name == "b";`, 0},
		{"two statements", `var s = "a" + plain.name; var u = "b" + plain.name;`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			unit, _, _ := testsource.Parse(t, tt.src)

			got := messages(run(t, unit, CheckStringConcat))
			if len(got) != tt.want {
				t.Fatalf("Got %d diagnostics %v, want %d", len(got), got, tt.want)
			}

			for _, msg := range got {
				if msg != concat {
					t.Errorf("Got message %q, want %q", msg, concat)
				}
			}
		})
	}
}

const enumerators = `using System.Collections;

namespace System.Collections
{
    public interface IEnumerator { }
}

namespace Game
{
    public class Loader
    {
        public IEnumerator Routine() { yield break; }
        public void Plain() { }

        public void Start()
        {
            Routine();
            Plain();
            var e = Routine();
            Consume(Routine());
        }

        public void Consume(IEnumerator e) { }
    }
}
`

func TestEnumerator(t *testing.T) {
	t.Parallel()

	unit, err := frontend.Load(frontend.Config{}, frontend.Source{Name: "Loader.cs", Content: []byte(enumerators)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"The IEnumerator 'Routine' must be iterated by calling its MoveNext otherwise it will stop executing at the first 'yield return' expression"}
	if got := messages(run(t, unit, CheckEnumerator)); !slices.Equal(got, want) {
		t.Errorf("Got %q, want %q", got, want)
	}
}

const injection = `using NitroxPatcher.Patches;
using UnityEngine;

namespace NitroxPatcher.Patches
{
    public abstract class NitroxPatch { }
}

namespace Game
{
    public class Service
    {
        public void M() { var x = NitroxServiceLocator.LocateService(); }
    }

    public class Player : MonoBehaviour
    {
        public void M() { var x = NitroxServiceLocator.LocateService(); }
    }

    public class Patch : NitroxPatch
    {
        public void M() { var x = NitroxServiceLocator.LocateService(); }
    }
}
`

func TestInjection(t *testing.T) {
	t.Parallel()

	unit := testsource.Load(t, frontend.Source{Name: "Injection.cs", Content: []byte(injection)})
	checker := NewInjection(unit, "UnityEngine.Object", PatchType)

	check := func(_ *host.Unit, c syntax.Cursor) (report.Diagnostic, bool) { return checker.Check(c) }

	want := []string{"The DI container should not be used directly in type 'Service' as the requested service can be supplied via a constructor parameter"}
	if got := messages(run(t, unit, check)); !slices.Equal(got, want) {
		t.Errorf("Got %q, want %q", got, want)
	}
}

const localization = `public class Language
{
    public static Language main;
    public string Get(string key) { return key; }
}

public class uGUI_Text
{
    public void SetText(string key, bool translate) { }
}

public class Menu
{
    private uGUI_Text text;

    public void Show()
    {
        var a = Language.main.Get("Nitrox_Known");
        var b = Language.main.Get("Nitrox_Unknown");
        var c = Language.main.Get("Other_Unknown");
        text.SetText("Nitrox_Missing", true);
        text.SetText("Nitrox_Untranslated", false);
        text.SetText("Nitrox_Known", true);
    }
}
`

func TestLocalization(t *testing.T) {
	t.Parallel()

	const known = "{\n  \"Nitrox_Known\": \"Known\",\n  \"Nitrox_Other\": \"Other\"\n}\n"

	unit, err := frontend.Load(frontend.Config{}, frontend.Source{Name: "Menu.cs", Content: []byte(localization)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path := writeDictionary(t, known)

	var cache lookup.Cache

	checker, err := NewLocalization(unit, &cache, path)
	if err != nil || checker == nil {
		t.Fatalf("Got checker %v, error %v", checker, err)
	}

	want := []string{
		"Localization key 'Nitrox_Unknown' does not exist in '" + path + "'",
		"Localization key 'Nitrox_Missing' does not exist in '" + path + "'",
	}
	if got := messages(run(t, unit, localizationCheck(checker))); !slices.Equal(got, want) {
		t.Errorf("Got %q, want %q", got, want)
	}
}

func TestLocalizationDuplicateKey(t *testing.T) {
	t.Parallel()

	const duplicate = "{\n  \"Key_A\": \"hello\",\n  \"Key_A\": \"world\"\n}\n"

	unit, err := frontend.Load(frontend.Config{}, frontend.Source{Name: "Menu.cs", Content: []byte(localization)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var cache lookup.Cache

	checker, err := NewLocalization(unit, &cache, writeDictionary(t, duplicate))
	if !errors.Is(err, lookup.ErrDuplicateKey) {
		t.Errorf("Got error %v, want %v", err, lookup.ErrDuplicateKey)
	}

	if checker != nil {
		t.Fatalf("Got checker %v, want none", checker)
	}

	if got := run(t, unit, localizationCheck(checker)); len(got) != 0 {
		t.Errorf("Got %d diagnostics, want none", len(got))
	}

	if !cache.IsEmpty() {
		t.Errorf("Got %d cached entries, want none", cache.Len())
	}
}

func writeDictionary(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "en.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Can't write %s: %v", path, err)
	}

	return path
}

func localizationCheck(checker *Localization) checkFunc {
	return func(_ *host.Unit, c syntax.Cursor) (report.Diagnostic, bool) {
		if d, ok := checker.CheckLiteral(c); ok {
			return d, ok
		}

		return checker.CheckSetText(c)
	}
}

func TestLocalizationInert(t *testing.T) {
	t.Parallel()

	unit, _, _ := testsource.Parse(t, `var s = "Nitrox_Unknown";`)

	var cache lookup.Cache

	checker, err := NewLocalization(unit, &cache, "")
	if err != nil || checker != nil {
		t.Errorf("Got checker %v, error %v, want inert", checker, err)
	}

	if _, ok := checker.CheckSetText(syntax.NewInspector(unit.Files).Root()); ok {
		t.Error("Expected inert checker")
	}
}
