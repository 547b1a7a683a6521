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
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"fillmore-labs.com/lifeguard/host"
	"fillmore-labs.com/lifeguard/internal/frontend"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	stdout, stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	projectDir string

	settings *settings
	logger   *slog.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:           "lifeguard",
		Short:         "Check Unity C# sources for lifetime check bypasses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (default "+defaultSettingsFile+" when present)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")
	flags.StringVar(&a.projectDir, "project-dir", "", "project directory used to locate the localization dictionary")

	cmd.AddCommand(
		newCheckCommand(a),
		newFixCommand(a),
		newGenerateCommand(a),
		newWatchCommand(a),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	logger, err := newLogger(a.stderr, a.logLevel, a.logFormat)
	if err != nil {
		return err
	}

	a.logger = logger

	s, err := loadSettings(a.configPath)
	if err != nil {
		return err
	}

	a.settings = s

	if !cmd.Flags().Changed("project-dir") && s.ProjectDir != nil {
		a.projectDir = *s.ProjectDir
	}

	logger.Debug("initialized", slog.String("config", s.path), slog.String("project-dir", a.projectDir))

	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: l}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil

	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil

	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// load reads the sources named by paths, the current directory by default.
func (a *app) load(paths []string) (*host.Unit, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	unit, err := frontend.LoadPaths(frontend.Config{ProjectDir: a.projectDir, Options: a.settings.Options}, paths...)
	if err != nil {
		return nil, err
	}

	a.logger.Info("loaded", slog.Int("files", len(unit.Files)))

	return unit, nil
}
