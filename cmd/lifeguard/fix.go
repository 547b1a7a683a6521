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
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func newFixCommand(a *app) *cobra.Command {
	var diff bool

	cmd := &cobra.Command{
		Use:   "fix [paths]",
		Short: "Apply suggested fixes",
		RunE: func(cmd *cobra.Command, args []string) error {
			an, err := a.newAnalyzer(cmd)
			if err != nil {
				return err
			}

			unit, err := a.load(args)
			if err != nil {
				return err
			}

			diags := an.RunContext(cmd.Context(), unit)

			fixed, err := an.Fix(unit, diags)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(fixed)) {
				if diff {
					ud := difflib.UnifiedDiff{
						A:        difflib.SplitLines(string(unit.Sources[name])),
						B:        difflib.SplitLines(string(fixed[name])),
						FromFile: name,
						ToFile:   name,
						Context:  3,
					}

					if err := difflib.WriteUnifiedDiff(a.stdout, ud); err != nil {
						return err
					}

					continue
				}

				if err := writeFile(filepath.FromSlash(name), fixed[name]); err != nil {
					return err
				}

				a.logger.Info("fixed", slog.String("file", name))
			}

			return nil
		},
	}

	addAnalyzerFlags(cmd.Flags())
	cmd.Flags().BoolVar(&diff, "diff", false, "print a diff instead of rewriting files")

	return cmd
}

// writeFile replaces the content of an existing file, keeping its permissions.
func writeFile(name string, content []byte) error {
	fi, err := os.Stat(name)
	if err != nil {
		return err
	}

	return os.WriteFile(name, content, fi.Mode().Perm())
}
