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
	"strings"

	"fillmore-labs.com/lifeguard/internal/extract"
	"fillmore-labs.com/lifeguard/internal/pipeline"
)

// Registration renders the Harmony `Patch` override of a patch type. Each target field is
// registered with every patch function in a single `PatchMultiple` call.
func Registration(target *extract.PatchTarget, opts Options) (pipeline.Artifact, error) {
	if target.Namespace == "" || target.TypeName == "" {
		return pipeline.Artifact{}, fmt.Errorf("%w: %q", ErrInvalidTarget, target.Key())
	}

	var w Writer

	w.Line("#pragma warning disable")
	w.Line("using System;")
	w.Line("using HarmonyLib;")
	w.Line("")
	w.Linef("namespace %s;", target.Namespace)
	w.Line("")
	w.Open("partial class " + target.TypeName)
	w.Line(GeneratedCode(opts.tool()))
	w.Open("public override void Patch(Harmony harmony)")

	for _, f := range target.Fields {
		args := make([]string, 0, len(target.Functions)+2)
		args = append(args, "harmony", f.Name)

		for _, fn := range target.Functions {
			args = append(args, fmt.Sprintf("%s: ((Delegate)%s).Method", fn.Role, fn.Name))
		}

		w.Linef("PatchMultiple(%s);", strings.Join(args, ", "))
	}

	w.Close()
	w.Close()

	return pipeline.Artifact{FileKey: target.Key() + ".g.cs", Text: w.String()}, nil
}
