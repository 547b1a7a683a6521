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

package generator

import (
	"log/slog"

	"fillmore-labs.com/lifeguard/internal/config"
	"fillmore-labs.com/lifeguard/internal/extract"
	"fillmore-labs.com/lifeguard/internal/lifetime"
	"fillmore-labs.com/lifeguard/internal/synth"
)

// Tool identifies the generator in `GeneratedCode` attributes.
type Tool = synth.Tool

// DefaultTool is the tool name and version used when none is configured.
var DefaultTool = synth.DefaultTool

type genOptions struct {
	generators   config.BitMask[config.GeneratorFlags]
	attributeSet bool

	guardFragment string
	patchBase     string
	restricted    string
	marker        string
	tool          Tool
	logger        *slog.Logger
}

func defaultOptions() *genOptions {
	return &genOptions{
		generators: config.NewBitMask(
			config.GuardInterceptors, config.PatchRegistrations, config.LifetimeHelper, config.InterceptorAttribute,
		),
		guardFragment: extract.DefaultGuardFragment,
		patchBase:     extract.DefaultPatchBase,
		restricted:    lifetime.DefaultRestricted,
		marker:        lifetime.DefaultMarker,
		tool:          DefaultTool,
	}
}

// Option configures specific behavior of a [New] generator.
type Option interface {
	apply(o *genOptions)
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

func (o Options) apply(g *genOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(g)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

type generatorOption struct {
	name      string
	generator config.GeneratorFlags
	enabled   bool
}

func (o generatorOption) apply(g *genOptions) {
	g.generators.Set(o.generator, o.enabled)
}

func (o generatorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.enabled)
}

// WithGuards is an [Option] to configure whether guard interceptors are generated.
func WithGuards(guards bool) Option {
	return generatorOption{name: "guards", generator: config.GuardInterceptors, enabled: guards}
}

// WithPatches is an [Option] to configure whether Harmony patch registrations are generated.
func WithPatches(patches bool) Option {
	return generatorOption{name: "patches", generator: config.PatchRegistrations, enabled: patches}
}

// WithHelper is an [Option] to configure whether the lifetime helper is generated.
func WithHelper(helper bool) Option {
	return generatorOption{name: "helper", generator: config.LifetimeHelper, enabled: helper}
}

// WithInterceptorAttribute is an [Option] to configure whether the interceptor attribute
// declaration is emitted. It takes precedence over the host option
// `build_property.LifeguardGenerator_GenerateInterceptorAttribute`.
func WithInterceptorAttribute(attribute bool) Option { return attributeOption{attribute: attribute} }

type attributeOption struct{ attribute bool }

func (o attributeOption) apply(g *genOptions) {
	g.generators.Set(config.InterceptorAttribute, o.attribute)
	g.attributeSet = true
}

func (o attributeOption) LogAttr() slog.Attr {
	return slog.Bool("interceptor-attribute", o.attribute)
}

// WithGuardFragment is an [Option] to configure the callee name fragment selecting guarded calls.
func WithGuardFragment(fragment string) Option { return stringOption{"guard-fragment", fragment} }

// WithPatchBase is an [Option] to configure the base type name of patch types.
func WithPatchBase(base string) Option { return stringOption{"patch-base", base} }

// WithRestrictedType is an [Option] to configure the constraint of the lifetime helper.
func WithRestrictedType(name string) Option { return stringOption{"restricted", name} }

// WithMarker is an [Option] to configure the name of the lifetime helper.
func WithMarker(marker string) Option { return stringOption{"marker", marker} }

type stringOption struct{ name, value string }

func (o stringOption) apply(g *genOptions) {
	switch o.name {
	case "guard-fragment":
		g.guardFragment = o.value

	case "patch-base":
		g.patchBase = o.value

	case "restricted":
		g.restricted = o.value

	case "marker":
		g.marker = o.value
	}
}

func (o stringOption) LogAttr() slog.Attr {
	return slog.String(o.name, o.value)
}

// WithTool is an [Option] to configure the tool named in `GeneratedCode` attributes.
func WithTool(tool Tool) Option { return toolOption{tool: tool} }

type toolOption struct{ tool Tool }

func (o toolOption) apply(g *genOptions) {
	g.tool = o.tool
}

func (o toolOption) LogAttr() slog.Attr {
	return slog.String("tool", o.tool.Name+" "+o.tool.Version)
}

// WithLogger is an [Option] to configure where pipeline debug output is logged.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(g *genOptions) {
	g.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
