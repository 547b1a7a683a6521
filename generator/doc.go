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

// Package generator produces the generated sources accompanying the lifeguard analyzer.
//
// Three generators run over a compilation unit:
//
//   - Guard interceptors: calls whose callee name contains `GetPlatformByGameDir` are
//     intercepted by wrappers that verify the game directory before forwarding the call.
//     One file is generated per namespace declaring the called methods.
//   - Patch registrations: partial `NitroxPatch` types without a `Patch` override get one
//     that registers every target method field with all Harmony patch methods.
//   - Lifetime helper: the `AliveOrNull` extension method used by the analyzer's fixes,
//     generated when `UnityEngine.Object` resolves.
//
// A [Generator] remembers the previous run. Unchanged files are not re-extracted, and
// unchanged groups reuse their previous output.
package generator
