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

package analyzer

import (
	"flag"

	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(newBoolValue(&r.Rules, config.LifetimeRules), "lifetime", "check for null tests bypassing the object lifetime check")
	flags.Var(newBoolValue(&r.Rules, config.StringConcatRule), "string-concat", "check for string concatenation")
	flags.Var(newBoolValue(&r.Rules, config.LocalizationRule), "localization", "check localization keys")
	flags.Var(newBoolValue(&r.Rules, config.EnumeratorRule), "enumerator", "check for discarded enumerators")
	flags.Var(newBoolValue(&r.Rules, config.InjectionRule), "injection", "check for direct use of the DI container")

	flags.Var(newBoolValue(&r.Behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(newBoolValue(&r.Behavior, config.SuggestFixes), "fix", "suggest fixes")

	flags.StringVar(&r.Restricted, "restricted", r.Restricted, "fully qualified name of the lifetime-managed base type")
	flags.StringVar(&r.Marker, "marker", r.Marker, "name of the function marking a lifetime check")
	flags.StringVar(&r.LocalizationFile, "localization-file", r.LocalizationFile, "localization dictionary (default derived from the project directory)")
}
