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

// Lifeguard checks C# sources of Unity projects for null tests that bypass the Unity object
// lifetime check and generates the supporting sources.
//
// Usage:
//
//	lifeguard check [flags] [paths]
//	lifeguard fix [flags] [paths]
//	lifeguard generate [flags] -o dir [paths]
//	lifeguard watch [flags] -o dir [paths]
//
// Settings are read from `.lifeguard.yaml` in the current directory, or the file named by
// `--config`. Command line flags take precedence.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := execute(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string) int {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var e exitError
	if errors.As(err, &e) {
		return e.code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)

	return 1
}

// exitError ends the program with a status code without printing a message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
