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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fillmore-labs.com/lifeguard/analyzer"
	"fillmore-labs.com/lifeguard/host"
)

// diagnosticsFound is the exit status of check when diagnostics were reported.
const diagnosticsFound = 3

func newCheckCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "check [paths]",
		Short: "Report diagnostics",
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

			if err := printDiagnostics(a.stdout, format, unit, diags); err != nil {
				return err
			}

			if len(diags) > 0 {
				return exitError{code: diagnosticsFound}
			}

			return nil
		},
	}

	addAnalyzerFlags(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")

	return cmd
}

// addAnalyzerFlags registers the analyzer flags for help output and parsing.
func addAnalyzerFlags(flags *pflag.FlagSet) {
	flags.AddGoFlagSet(&analyzer.New().Flags)
}

// newAnalyzer creates an analyzer configured by the settings file and the command line.
func (a *app) newAnalyzer(cmd *cobra.Command) (*analyzer.Analyzer, error) {
	an := analyzer.New(analyzer.WithLogger(a.logger))

	flags := cmd.Flags()
	if err := a.settings.applyAnalyzerFlags(&an.Flags, flags.Changed); err != nil {
		return nil, err
	}

	var err error

	flags.Visit(func(f *pflag.Flag) {
		if err != nil || an.Flags.Lookup(f.Name) == nil {
			return
		}

		err = an.Flags.Set(f.Name, f.Value.String())
	})

	return an, err
}

type jsonDiagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func printDiagnostics(w io.Writer, format string, unit *host.Unit, diags []analyzer.Diagnostic) error {
	switch format {
	case "text":
		for _, d := range diags {
			p := unit.Position(d.Pos)
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", p.Filename, p.Line, p.Column, d.Descriptor.ID, d.Message()); err != nil {
				return err
			}
		}

		return nil

	case "json":
		out := make([]jsonDiagnostic, 0, len(diags))
		for _, d := range diags {
			p := unit.Position(d.Pos)
			out = append(out, jsonDiagnostic{
				File:     p.Filename,
				Line:     p.Line,
				Column:   p.Column,
				ID:       d.Descriptor.ID,
				Severity: d.Severity().String(),
				Message:  d.Message(),
			})
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(out)

	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
