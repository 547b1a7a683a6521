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
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fillmore-labs.com/lifeguard/generator"
)

// errNoOutput is returned when no output directory is given.
var errNoOutput = errors.New("missing output directory")

// generatorFlags are the generator settings available on the command line.
type generatorFlags struct {
	out       string
	guards    bool
	patches   bool
	helper    bool
	attribute bool
}

func (g *generatorFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&g.out, "output", "o", "", "output directory")
	flags.BoolVar(&g.guards, "guards", true, "generate guard interceptors")
	flags.BoolVar(&g.patches, "patches", true, "generate patch registrations")
	flags.BoolVar(&g.helper, "helper", true, "generate the lifetime helper")
	flags.BoolVar(&g.attribute, "interceptor-attribute", true, "declare the interceptor attribute")
}

// newGenerator creates a generator configured by the settings file and the command line.
func (a *app) newGenerator(flags *pflag.FlagSet, g *generatorFlags) (*generator.Generator, error) {
	if g.out == "" {
		return nil, errNoOutput
	}

	opts := append(generator.Options{generator.WithLogger(a.logger)}, a.settings.generatorOptions()...)

	if flags.Changed("guards") {
		opts = append(opts, generator.WithGuards(g.guards))
	}

	if flags.Changed("patches") {
		opts = append(opts, generator.WithPatches(g.patches))
	}

	if flags.Changed("helper") {
		opts = append(opts, generator.WithHelper(g.helper))
	}

	if flags.Changed("interceptor-attribute") {
		opts = append(opts, generator.WithInterceptorAttribute(g.attribute))
	}

	a.logger.Debug("generator", opts.LogAttr())

	return generator.New(opts...), nil
}

func newGenerateCommand(a *app) *cobra.Command {
	var g generatorFlags

	cmd := &cobra.Command{
		Use:   "generate -o dir [paths]",
		Short: "Write generated sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := a.newGenerator(cmd.Flags(), &g)
			if err != nil {
				return err
			}

			unit, err := a.load(args)
			if err != nil {
				return err
			}

			result, err := gen.Run(cmd.Context(), unit)
			if err != nil {
				return err
			}

			out := newOutputDir(g.out)

			written, _, err := out.sync(result)
			if err != nil {
				return err
			}

			a.logger.Info("generated", slog.Int("files", len(written)))

			return result.Err()
		},
	}

	g.register(cmd.Flags())

	return cmd
}
