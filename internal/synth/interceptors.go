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
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"fillmore-labs.com/lifeguard/internal/extract"
	"fillmore-labs.com/lifeguard/internal/pipeline"
	"fillmore-labs.com/lifeguard/symbols"
)

const pathFragment = "path"

// Interceptors renders the interceptor file for the calls grouped under key, in the given order.
//
// Every call needs a parameter whose name contains "path", otherwise the artifact fails with
// [ErrNoPathParameter].
func Interceptors(key string, calls []*extract.InterceptableCall, opts Options) (pipeline.Artifact, error) {
	paths := make([]string, len(calls))

	for i, c := range calls {
		p, ok := PathParameter(c.Parameters)
		if !ok {
			return pipeline.Artifact{}, fmt.Errorf("%w: %s.%s at %s:%d:%d",
				ErrNoPathParameter, c.OwnerType, c.Name, c.Location.FilePath, c.Location.Line, c.Location.Column)
		}

		paths[i] = p
	}

	tool := opts.tool()

	var w Writer

	w.Block(FileHeader)
	w.Line("")

	if opts.InterceptorAttribute {
		writeInterceptorAttribute(&w, tool)
		w.Line("")
	}

	w.Block(guardian)
	w.Line("")

	w.Open("namespace " + InterceptorNamespace)
	w.Line(GeneratedCode(tool))
	w.Open("file static class " + strings.ReplaceAll(key, ".", "_") + "_Interceptors")

	names := make(map[string]struct{}, len(calls))

	for i, c := range calls {
		if i > 0 {
			w.Line("")
		}

		writeInterceptor(&w, c, uniqueName(names, WrapperName(c)), paths[i])
	}

	w.Close()
	w.Close()

	return pipeline.Artifact{FileKey: key + ".g.cs", Text: w.String()}, nil
}

func writeInterceptor(w *Writer, c *extract.InterceptableCall, name, path string) {
	w.Line(EditorNotBrowsable)
	w.Line(c.Location.Token.Attribute())

	w.Write("public static ")

	if c.Async {
		w.Write("async ")
	}

	w.Writef("%s %s(", c.ReturnType, name)

	params := make([]string, 0, len(c.Parameters)+1)
	if !c.Static {
		params = append(params, "this "+c.OwnerType+" @this")
	}

	for _, p := range c.Parameters {
		params = append(params, p.TypeName+" "+p.Name)
	}

	w.Line(strings.Join(params, ", ") + ")")

	w.Open("")
	w.Open("if (!Guardian.IsTrustedDirectory(" + path + "))")
	w.Line("Environment.Exit(0);")
	w.Close()

	if c.Accessibility == symbols.Public || c.Accessibility == symbols.Internal {
		receiver := "@this"
		if c.Static {
			receiver = c.OwnerType
		}

		args := make([]string, len(c.Parameters))
		for i, p := range c.Parameters {
			args[i] = p.Name
		}

		w.Linef("%s%s.%s(%s);", forwardPrefix(c), receiver, c.Name, strings.Join(args, ", "))
	}

	w.Close()
}

// forwardPrefix returns the keyword preceding the forwarded call.
func forwardPrefix(c *extract.InterceptableCall) string {
	switch {
	case c.ReturnType == "void":
		return ""

	case c.Async && strings.HasSuffix(c.ReturnType, ">"):
		return "return await "

	case c.Async:
		return "await "

	default:
		return "return "
	}
}

// PathParameter returns the name of the first parameter containing "path", case-insensitive.
func PathParameter(params []extract.Parameter) (string, bool) {
	for _, p := range params {
		if strings.Contains(strings.ToLower(p.Name), pathFragment) {
			return p.Name, true
		}
	}

	return "", false
}

// WrapperName returns `<FileName>_<Member>_<Line>_<Column>` with characters not valid in
// identifiers replaced by underscores.
func WrapperName(c *extract.InterceptableCall) string {
	return Identifier(fmt.Sprintf("%s_%s_%d_%d", c.Location.FileName(), c.Name, c.Location.Line, c.Location.Column))
}

// Identifier replaces every rune that can't appear in a C# identifier with '_'.
func Identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, s)
}

// uniqueName returns name, or name with the smallest numeric suffix not yet used.
func uniqueName(used map[string]struct{}, name string) string {
	unique := name
	for i := 2; ; i++ {
		if _, ok := used[unique]; !ok {
			break
		}

		unique = name + "_" + strconv.Itoa(i)
	}

	used[unique] = struct{}{}

	return unique
}
