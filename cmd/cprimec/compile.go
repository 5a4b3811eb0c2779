// Copyright 2026 The CPrime Authors
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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/driver"
)

func newCompileCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file> [file...]",
		Short: "run Layers 0-2D over one or more .cp/.cprime files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			res, err := driver.Compile(cmd.Context(), fileSources(args), cfg)
			if err != nil {
				return fmt.Errorf("cprimec: %w", err)
			}

			if res.Errors.HasErrors() {
				cerrors.Print(cmd.ErrOrStderr(), res.Errors.Err(), nil)
				return &compilationError{err: fmt.Errorf("compilation failed for %d file(s)", len(args))}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "compiled %d file(s), %d scope(s) total\n", len(res.Units), totalScopes(res))
			return nil
		},
	}
}

func totalScopes(res *driver.Result) int {
	n := 0
	for _, u := range res.Units {
		n += len(u.Graph.Scopes)
	}
	return n
}
