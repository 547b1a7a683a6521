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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

const bypass = "src/Player.cs:11:26: NUSL001: '?.' is invalid on type 'Transform' as it derives from 'UnityEngine.Object'"

// project extracts the named archive into a temporary directory.
func project(t *testing.T, name string) string {
	t.Helper()

	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), err
}

func requireExit(t *testing.T, err error, code int) {
	t.Helper()

	var e exitError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, code, e.code)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	out, err := run(t, "check", dir)
	requireExit(t, err, diagnosticsFound)
	assert.Contains(t, out, bypass)
}

func TestCheckJSON(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	out, err := run(t, "check", "--format", "json", dir)
	requireExit(t, err, diagnosticsFound)

	var diags []jsonDiagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &diags))
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "NUSL001", d.ID)
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, 11, d.Line)
	assert.Equal(t, 26, d.Column)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "src", "Player.cs")), d.File)
}

func TestCheckFlags(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	out, err := run(t, "check", "--lifetime=false", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "check", "--restricted", "UnityEngine.Missing", dir)
	require.NoError(t, err)

	_, err = run(t, "check", "--format", "xml", dir)
	require.ErrorContains(t, err, "unsupported format")
}

func TestCheckSettings(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	config := filepath.Join(dir, "lifeguard.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rules:\n  lifetime: false\n"), 0o600))

	_, err := run(t, "check", "--config", config, dir)
	require.NoError(t, err)

	_, err = run(t, "check", "--config", config, "--lifetime", dir)
	requireExit(t, err, diagnosticsFound)
}

func TestSettingsErrors(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	config := filepath.Join(dir, "lifeguard.yaml")
	require.NoError(t, os.WriteFile(config, []byte("rulez:\n  lifetime: false\n"), 0o600))

	_, err := run(t, "check", "--config", config, dir)
	require.ErrorContains(t, err, "invalid settings")

	_, err = run(t, "check", "--config", filepath.Join(dir, "missing.yaml"), dir)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "check", "--log-level", "loud", dir)
	require.ErrorContains(t, err, "invalid log level")
}

func TestFixDiff(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")
	player := filepath.Join(dir, "src", "Player.cs")

	before, err := os.ReadFile(player)
	require.NoError(t, err)

	out, err := run(t, "fix", "--diff", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "-        var targetName = target?.name;")
	assert.Contains(t, out, "+        var targetName = target.AliveOrNull()?.name;")

	after, err := os.ReadFile(player)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFix(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")

	_, err := run(t, "fix", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "src", "Player.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "var targetName = target.AliveOrNull()?.name;")
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")
	out := filepath.Join(dir, "generated")

	_, err := run(t, "generate", "-o", out, filepath.Join(dir, "src"))
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Equal(t, []string{"AliveOrNullExtension.g.cs", "Game.Platforms.g.cs"}, names)

	content, err := os.ReadFile(filepath.Join(out, "Game.Platforms.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "public static void Platforms_GetPlatformByGameDir_10_39(string gamePath)")
}

func TestGenerateOptions(t *testing.T) {
	t.Parallel()

	dir := project(t, "project.txtar")
	out := filepath.Join(dir, "generated")

	config := filepath.Join(dir, "lifeguard.yaml")
	require.NoError(t, os.WriteFile(config, []byte("generator:\n  interceptor-attribute: false\n"), 0o600))

	_, err := run(t, "generate", "--config", config, "--helper=false", "-o", out, filepath.Join(dir, "src"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "AliveOrNullExtension.g.cs"))
	require.ErrorIs(t, err, os.ErrNotExist)

	content, err := os.ReadFile(filepath.Join(out, "Game.Platforms.g.cs"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "class InterceptsLocationAttribute")
}

func TestGenerateNoOutput(t *testing.T) {
	t.Parallel()

	_, err := run(t, "generate", project(t, "project.txtar"))
	require.ErrorIs(t, err, errNoOutput)
}
