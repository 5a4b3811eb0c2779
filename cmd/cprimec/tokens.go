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

	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/source"
	"cprime.dev/compiler/internal/strtbl"
)

func newTokensCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "dump Layer 1's RawToken stream for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _, err := source.Load(source.FileSource{Path: args[0]})
			if err != nil {
				return fmt.Errorf("cprimec: %w", err)
			}
			strings_ := strtbl.New()
			raw := scanner.Scan(content, strings_, execalias.New())

			out := cmd.OutOrStdout()
			for i, rt := range raw {
				fmt.Fprintf(out, "%4d  %-28s line=%d col=%d\n", i, rt.Kind, rt.Line, rt.Column)
			}
			return nil
		},
	}
}
