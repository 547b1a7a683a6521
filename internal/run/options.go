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

package run

import (
	"log/slog"

	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/lookup"
	"fillmore-labs.com/lifeguard/internal/rules"
)

// Options represent configuration runOptions for the lifeguard analyzer.
type Options struct {
	// Rules represent the rule families to be enabled.
	Rules config.BitMask[config.RuleFlags]

	// Behavior holds behavioral options.
	Behavior config.BitMask[config.Config]

	// Restricted is the fully qualified name of the lifetime-managed base type.
	Restricted string

	// Marker is the name of the escape hatch function.
	Marker string

	// LocalizationFile overrides the dictionary location derived from the project directory.
	LocalizationFile string

	// Cache holds the localization dictionary. Nil selects the process-wide cache.
	Cache *lookup.Cache

	// InjectionAllowed lists the types allowed to use the service locator directly.
	InjectionAllowed []string

	// Logger receives warnings about disabled rules, when set.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Rules:            config.NewBitMask(config.AllRules),
		Behavior:         config.NewBitMask(config.SuggestFixes),
		Restricted:       lifetime.DefaultRestricted,
		Marker:           lifetime.DefaultMarker,
		InjectionAllowed: []string{lifetime.DefaultRestricted, rules.PatchType},
	}
}

func (r *Options) cache() *lookup.Cache {
	if r.Cache == nil {
		return lookup.Shared()
	}

	return r.Cache
}
