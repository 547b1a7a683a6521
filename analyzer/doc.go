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

// Package analyzer implements the lifeguard static analysis pass.
//
// # Overview
//
// Unity objects have two lifetimes: the managed C# object and the native engine object
// behind it. A destroyed object compares equal to null through Unity's overloaded `==`
// operator, while the null-testing language constructs `?.`, `??` and `is null` only see
// the managed reference and silently treat a destroyed object as alive.
//
// Lifeguard reports these constructs on expressions whose static type derives from
// `UnityEngine.Object`:
//
//   - NUSL001: conditional access `x?.m`
//   - NUSL002: null-testing patterns `x is null`, `x is not null`, `x is {}`
//   - NUSL003: null coalescing `x ?? y`
//
// # Example
//
// Before:
//
//	var name = target?.name;
//
// After applying lifeguard's suggested fix:
//
//	var name = target.AliveOrNull()?.name;
//
// Expressions wrapped in the marker call `AliveOrNull()` are not reported.
//
// # Further Rules
//
//   - NSU001: string concatenation that can be an interpolated string
//   - NXLZ001: unknown localization keys
//   - NEU001: discarded enumerators
//   - DIMA001: direct use of the dependency injection container
//
// A `// nolint:<rule>` comment on the reported line suppresses a diagnostic.
package analyzer
