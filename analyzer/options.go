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
	"log/slog"

	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/run"
)

// Option configures specific behavior of a [New] lifeguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// ruleOption toggles one rule family.
type ruleOption struct {
	name    string
	rule    config.RuleFlags
	enabled bool
}

func (o ruleOption) apply(r *run.Options) {
	r.Rules.Set(o.rule, o.enabled)
}

func (o ruleOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.enabled)
}

// WithLifetime is an [Option] to configure whether the lifetime-bypass rules NUSL001 to NUSL003 are enabled.
func WithLifetime(lifetime bool) Option {
	return ruleOption{name: "lifetime", rule: config.LifetimeRules, enabled: lifetime}
}

// WithStringConcat is an [Option] to configure whether NSU001 is enabled.
func WithStringConcat(concat bool) Option {
	return ruleOption{name: "string-concat", rule: config.StringConcatRule, enabled: concat}
}

// WithLocalization is an [Option] to configure whether NXLZ001 is enabled.
func WithLocalization(localization bool) Option {
	return ruleOption{name: "localization", rule: config.LocalizationRule, enabled: localization}
}

// WithEnumerator is an [Option] to configure whether NEU001 is enabled.
func WithEnumerator(enumerator bool) Option {
	return ruleOption{name: "enumerator", rule: config.EnumeratorRule, enabled: enumerator}
}

// WithInjection is an [Option] to configure whether DIMA001 is enabled.
func WithInjection(injection bool) Option {
	return ruleOption{name: "injection", rule: config.InjectionRule, enabled: injection}
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithSuggestFixes is an [Option] to configure whether diagnostics carry suggested fixes.
func WithSuggestFixes(fix bool) Option { return suggestFixesOption{fix: fix} }

type suggestFixesOption struct{ fix bool }

func (o suggestFixesOption) apply(r *run.Options) {
	r.Behavior.Set(config.SuggestFixes, o.fix)
}

func (o suggestFixesOption) LogAttr() slog.Attr {
	return slog.Bool("fix", o.fix)
}

// WithRestrictedType is an [Option] to configure the fully qualified name of the
// lifetime-managed base type, `UnityEngine.Object` by default.
func WithRestrictedType(name string) Option { return restrictedOption{name: name} }

type restrictedOption struct{ name string }

func (o restrictedOption) apply(r *run.Options) {
	r.Restricted = o.name
}

func (o restrictedOption) LogAttr() slog.Attr {
	return slog.String("restricted", o.name)
}

// WithMarker is an [Option] to configure the name of the function that marks a checked
// expression as handled, `AliveOrNull` by default.
func WithMarker(marker string) Option { return markerOption{marker: marker} }

type markerOption struct{ marker string }

func (o markerOption) apply(r *run.Options) {
	r.Marker = o.marker
}

func (o markerOption) LogAttr() slog.Attr {
	return slog.String("marker", o.marker)
}

// WithLocalizationFile is an [Option] to configure the localization dictionary.
// By default it is located relative to the project directory.
func WithLocalizationFile(path string) Option { return localizationFileOption{path: path} }

type localizationFileOption struct{ path string }

func (o localizationFileOption) apply(r *run.Options) {
	r.LocalizationFile = o.path
}

func (o localizationFileOption) LogAttr() slog.Attr {
	return slog.String("localization-file", o.path)
}

// WithLookupCache is an [Option] to configure the cache holding the localization dictionary.
// By default a process-wide cache is used.
func WithLookupCache(cache *Cache) Option { return cacheOption{cache: cache} }

type cacheOption struct{ cache *Cache }

func (o cacheOption) apply(r *run.Options) {
	r.Cache = o.cache
}

func (o cacheOption) LogAttr() slog.Attr {
	return slog.Bool("shared-cache", o.cache == nil)
}

// WithLogger is an [Option] to configure where warnings about disabled rules are logged.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
