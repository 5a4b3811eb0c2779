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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cprime.dev/compiler/internal/clog"
	"cprime.dev/compiler/internal/config"
	"cprime.dev/compiler/internal/source"
)

// rootFlags holds the persistent flags every subcommand reads.
type rootFlags struct {
	configPath string
	verbose    bool
}

// compilationError marks an error as a recorded pipeline diagnostic
// rather than an operational failure (bad flags, missing files, a
// fatal internal error), so Main can pick the right exit code.
type compilationError struct{ err error }

func (e *compilationError) Error() string { return e.err.Error() }
func (e *compilationError) Unwrap() error { return e.err }

func isCompilationError(err error) bool {
	_, ok := err.(*compilationError)
	return ok
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "cprimec",
		Short: "cprimec compiles CPrime source through its contextualisation front end",

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			clog.SetOutput(os.Stderr, level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "cprime.yaml", "path to a cprime.yaml configuration document")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newCompileCmd(flags))
	root.AddCommand(newTokensCmd(flags))
	root.AddCommand(newScopesCmd(flags))

	return root
}

func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("cprimec: %w", err)
	}
	return cfg, nil
}

func fileSources(paths []string) []source.Source {
	out := make([]source.Source, len(paths))
	for i, p := range paths {
		out[i] = source.FileSource{Path: p}
	}
	return out
}
