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

// Package syntax declares the types used to represent syntax trees of the analyzed
// object-oriented source language.
//
// Trees are produced by a host (see [fillmore-labs.com/lifeguard/host]) and are
// read-only for analyzers and generators. Positions are [go/token.Pos] values
// relative to the host's [go/token.FileSet], so the usual position machinery
// (line and column mapping, file lookup) applies unchanged.
//
// The node set is closed: every node is one of the concrete types in this package,
// and consumers dispatch with a type switch.
package syntax
