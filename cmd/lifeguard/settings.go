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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"fillmore-labs.com/lifeguard/generator"
)

const defaultSettingsFile = ".lifeguard.yaml"

// settings is the content of a settings file. Unset values keep their defaults.
type settings struct {
	Rules struct {
		Lifetime     *bool `yaml:"lifetime"`
		StringConcat *bool `yaml:"string-concat"`
		Localization *bool `yaml:"localization"`
		Enumerator   *bool `yaml:"enumerator"`
		Injection    *bool `yaml:"injection"`
	} `yaml:"rules"`

	Generated        *bool   `yaml:"generated"`
	Restricted       *string `yaml:"restricted"`
	Marker           *string `yaml:"marker"`
	LocalizationFile *string `yaml:"localization-file"`
	ProjectDir       *string `yaml:"project-dir"`

	Generator struct {
		Guards               *bool   `yaml:"guards"`
		Patches              *bool   `yaml:"patches"`
		Helper               *bool   `yaml:"helper"`
		InterceptorAttribute *bool   `yaml:"interceptor-attribute"`
		GuardFragment        *string `yaml:"guard-fragment"`
		PatchBase            *string `yaml:"patch-base"`
	} `yaml:"generator"`

	// Options are passed to the analyzed unit as host options.
	Options map[string]string `yaml:"options"`

	path string
}

// loadSettings reads the settings file at path. An empty path reads [defaultSettingsFile]
// when it exists.
func loadSettings(path string) (*settings, error) {
	explicit := path != ""
	if !explicit {
		path = defaultSettingsFile
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:

	case !explicit && errors.Is(err, os.ErrNotExist):
		return &settings{}, nil

	default:
		return nil, fmt.Errorf("can't read settings: %w", err)
	}

	s, err := parseSettings(content)
	if err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	s.path = path

	return s, nil
}

func parseSettings(content []byte) (*settings, error) {
	s := &settings{}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return s, nil
}

// analyzerFlags returns the analyzer flag values of all settings present.
func (s *settings) analyzerFlags() map[string]string {
	values := make(map[string]string)

	setBool := func(name string, b *bool) {
		if b != nil {
			values[name] = strconv.FormatBool(*b)
		}
	}

	setString := func(name string, v *string) {
		if v != nil {
			values[name] = *v
		}
	}

	setBool("lifetime", s.Rules.Lifetime)
	setBool("string-concat", s.Rules.StringConcat)
	setBool("localization", s.Rules.Localization)
	setBool("enumerator", s.Rules.Enumerator)
	setBool("injection", s.Rules.Injection)
	setBool("generated", s.Generated)
	setString("restricted", s.Restricted)
	setString("marker", s.Marker)
	setString("localization-file", s.LocalizationFile)

	return values
}

// applyAnalyzerFlags sets the analyzer flags not given on the command line.
func (s *settings) applyAnalyzerFlags(flags *flag.FlagSet, changed func(name string) bool) error {
	for name, value := range s.analyzerFlags() {
		if changed(name) {
			continue
		}

		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid setting %s: %w", name, err)
		}
	}

	return nil
}

// generatorOptions returns the generator options of all settings present.
func (s *settings) generatorOptions() generator.Options {
	var opts generator.Options

	g := &s.Generator

	if g.Guards != nil {
		opts = append(opts, generator.WithGuards(*g.Guards))
	}

	if g.Patches != nil {
		opts = append(opts, generator.WithPatches(*g.Patches))
	}

	if g.Helper != nil {
		opts = append(opts, generator.WithHelper(*g.Helper))
	}

	if g.InterceptorAttribute != nil {
		opts = append(opts, generator.WithInterceptorAttribute(*g.InterceptorAttribute))
	}

	if g.GuardFragment != nil {
		opts = append(opts, generator.WithGuardFragment(*g.GuardFragment))
	}

	if g.PatchBase != nil {
		opts = append(opts, generator.WithPatchBase(*g.PatchBase))
	}

	if s.Restricted != nil {
		opts = append(opts, generator.WithRestrictedType(*s.Restricted))
	}

	if s.Marker != nil {
		opts = append(opts, generator.WithMarker(*s.Marker))
	}

	return opts
}
