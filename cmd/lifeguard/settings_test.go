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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullSettings = `rules:
  lifetime: true
  string-concat: false
generated: true
restricted: UnityEngine.Component
marker: Alive
localization-file: lang/en.json
project-dir: src/NitroxClient
generator:
  guards: false
  guard-fragment: GetPlatform
options:
  build_property.LifeguardGenerator_GenerateInterceptorAttribute: disabled
`

func TestParseSettings(t *testing.T) {
	t.Parallel()

	s, err := parseSettings([]byte(fullSettings))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"lifetime":          "true",
		"string-concat":     "false",
		"generated":         "true",
		"restricted":        "UnityEngine.Component",
		"marker":            "Alive",
		"localization-file": "lang/en.json",
	}, s.analyzerFlags())

	require.NotNil(t, s.ProjectDir)
	assert.Equal(t, "src/NitroxClient", *s.ProjectDir)
	assert.Equal(t, "disabled", s.Options["build_property.LifeguardGenerator_GenerateInterceptorAttribute"])

	assert.Equal(t, "[guards=false guard-fragment=GetPlatform restricted=UnityEngine.Component marker=Alive]",
		s.generatorOptions().LogValue().String())
}

func TestParseSettingsEmpty(t *testing.T) {
	t.Parallel()

	s, err := parseSettings(nil)
	require.NoError(t, err)
	assert.Empty(t, s.analyzerFlags())
	assert.Empty(t, s.generatorOptions())
}

func TestParseSettingsUnknownField(t *testing.T) {
	t.Parallel()

	_, err := parseSettings([]byte("rules:\n  unknown: true\n"))
	require.Error(t, err)
}

func TestLoadSettingsDefault(t *testing.T) {
	t.Parallel()

	s, err := loadSettings("")
	require.NoError(t, err)
	assert.Empty(t, s.path)
}
