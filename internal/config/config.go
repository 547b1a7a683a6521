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

package config

import (
	"strconv"
	"strings"
)

// RuleFlags selects rule families.
type RuleFlags uint8

const (
	// LifetimeRules enables the lifetime-bypass rules NUSL001 to NUSL003.
	LifetimeRules RuleFlags = 1 << iota

	// StringConcatRule enables NSU001.
	StringConcatRule

	// LocalizationRule enables NXLZ001.
	LocalizationRule

	// EnumeratorRule enables NEU001.
	EnumeratorRule

	// InjectionRule enables DIMA001.
	InjectionRule

	// AllRules enables every rule family.
	AllRules = LifetimeRules | StringConcatRule | LocalizationRule | EnumeratorRule | InjectionRule
)

// Config represents behavior options for the analyzer.
type Config uint8

const (
	// IncludeGenerated specifies whether to analyze generated files.
	IncludeGenerated Config = 1 << iota

	// SuggestFixes attaches suggested fixes to diagnostics that have one.
	SuggestFixes
)

// GeneratorFlags represents behavior options for the generator.
type GeneratorFlags uint8

const (
	// GuardInterceptors enables interceptor generation for guarded calls.
	GuardInterceptors GeneratorFlags = 1 << iota

	// PatchRegistrations enables Harmony registration generation.
	PatchRegistrations

	// LifetimeHelper enables the marker function helper.
	LifetimeHelper

	// InterceptorAttribute emits the InterceptsLocationAttribute declaration.
	InterceptorAttribute
)

// InterceptorAttributeKey is the host option controlling [InterceptorAttribute].
const InterceptorAttributeKey = "build_property.LifeguardGenerator_GenerateInterceptorAttribute"

// ParseBool interprets a host option value. `true`, `enable` and `enabled` (case-insensitive)
// are true, anything [strconv.ParseBool] accepts is used as is, and other values or absent
// options yield def.
func ParseBool(value string, ok, def bool) bool {
	if !ok {
		return def
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "enable", "enabled":
		return true
	}

	if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
		return b
	}

	return def
}
