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
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/driver"
	"cprime.dev/compiler/internal/scopegraph"
)

func newScopesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes <file> [file...]",
		Short: "dump the Layer 2A/2D scope tree after contextualisation",
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

			out := cmd.OutOrStdout()
			for _, u := range res.Units {
				fmt.Fprintf(out, "%s:\n", u.Name)
				dumpScope(out, u.Graph, scopegraph.Root, 1)
			}

			if res.Errors.HasErrors() {
				cerrors.Print(cmd.ErrOrStderr(), res.Errors.Err(), nil)
				return &compilationError{err: fmt.Errorf("compilation failed for %d file(s)", len(args))}
			}
			return nil
		},
	}
}

func dumpScope(w io.Writer, g *scopegraph.Graph, idx uint32, depth int) {
	scope := g.Scope(idx)
	indent := strings.Repeat("  ", depth)
	tag := ""
	if scope.IsExec {
		tag = " [exec]"
	}
	fmt.Fprintf(w, "%sscope %d%s (%d instructions, ns=%v)\n", indent, idx, tag, len(scope.Instructions), scope.NamespaceContext)
	for _, el := range scope.Instructions {
		if el.IsScopeRef {
			dumpScope(w, g, el.ScopeIndex, depth+1)
		}
	}
}
