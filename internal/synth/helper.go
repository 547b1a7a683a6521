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

	"fillmore-labs.com/lifeguard/internal/pipeline"
)

// ErrInvalidIdentifier is returned when a generated member name is not an identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// LifetimeHelper renders the `<marker>Extension` class declaring the marker function, which
// returns its argument when the restricted object is alive and null otherwise.
func LifetimeHelper(restricted, marker string, opts Options) (pipeline.Artifact, error) {
	if marker == "" || Identifier(marker) != marker {
		return pipeline.Artifact{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, marker)
	}

	class := marker + "Extension"

	var w Writer

	w.Block(FileHeader)
	w.Line("")
	w.Open("internal static class " + class)
	w.Line("/// <summary>")
	w.Line("///     Returns null if Unity has marked this object as dead.")
	w.Line("/// </summary>")
	w.Linef("/// <param name=\"obj\">Unity <see cref=\"%s\" /> to check if alive.</param>", restricted)
	w.Line("/// <typeparam name=\"TObject\">Type of Unity object that can be marked as either alive or dead.</typeparam>")
	w.Linef("/// <returns>The <see cref=\"%s\" /> if alive or null if dead.</returns>", restricted)
	w.Line(GeneratedCode(opts.tool()))
	w.Open(fmt.Sprintf("public static TObject %s<TObject>(this TObject obj) where TObject : global::%s", marker, restricted))
	w.Open("if (obj)")
	w.Line("return obj;")
	w.Close()
	w.Line("")
	w.Line("return null;")
	w.Close()
	w.Close()

	return pipeline.Artifact{FileKey: class + ".g.cs", Text: w.String()}, nil
}
