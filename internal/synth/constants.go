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

package synth

import (
	"errors"
	"fmt"
)

// Tool identifies the generator in `GeneratedCode` attributes.
type Tool struct {
	Name    string
	Version string
}

// DefaultTool is used when [Options.Tool] is empty.
var DefaultTool = Tool{Name: "Lifeguard", Version: "1.0.0.0"}

// Options control rendering.
type Options struct {
	Tool Tool

	// InterceptorAttribute emits a file-local InterceptsLocationAttribute declaration.
	InterceptorAttribute bool
}

func (o Options) tool() Tool {
	if o.Tool.Name == "" {
		return DefaultTool
	}

	return o.Tool
}

const (
	// FileHeader starts every generated file with a complete header.
	FileHeader = `// <auto-generated/>
#pragma warning disable
#nullable enable annotations

using System;
`

	// EditorNotBrowsable hides generated members from code completion.
	EditorNotBrowsable = "[global::System.ComponentModel.EditorBrowsableAttribute(global::System.ComponentModel.EditorBrowsableState.Never)]"

	// InterceptorNamespace contains the generated interceptor classes.
	InterceptorNamespace = "Nitrox.Analyzers.Interceptors"

	guardNamespace = "Nitrox.Analyzers"
)

var (
	// ErrNoPathParameter is returned when a guarded call has no path-like parameter.
	ErrNoPathParameter = errors.New("no path parameter")

	// ErrInvalidTarget is returned for a patch target without namespace or type name.
	ErrInvalidTarget = errors.New("invalid patch target")
)

// GeneratedCode returns the `GeneratedCodeAttribute` application for tool.
func GeneratedCode(tool Tool) string {
	return fmt.Sprintf("[global::System.CodeDom.Compiler.GeneratedCodeAttribute(%q, %q)]", tool.Name, tool.Version)
}

func writeInterceptorAttribute(w *Writer, tool Tool) {
	w.Open("namespace System.Runtime.CompilerServices")
	w.Line(GeneratedCode(tool))
	w.Line(EditorNotBrowsable)
	w.Line("[AttributeUsage(AttributeTargets.Method, AllowMultiple = true)]")
	w.Open("file sealed class InterceptsLocationAttribute : Attribute")
	w.Line("public InterceptsLocationAttribute(int version, string data) { }")
	w.Close()
	w.Close()
}
