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

// Package driver wires Layers 0 through 2D across every file in a
// compilation (spec.md §5): Layers 0-2B run one goroutine per file over
// shared, mutex-protected stores; once every file has finished 2B, Layer
// 2C and then Layer 2D run once per file, in file order, on the calling
// goroutine, since alias re-resolution, anti-shadowing registration
// and exec expansion share registries whose result depends on visit
// order.
package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/chunkresolve"
	"cprime.dev/compiler/internal/clog"
	"cprime.dev/compiler/internal/config"
	"cprime.dev/compiler/internal/contextualize"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/execcompile"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/source"
	"cprime.dev/compiler/internal/streamset"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// Unit is one file's structural graph after Layers 0-2B, still awaiting
// Layers 2C and 2D.
type Unit struct {
	Name   string
	Stream token.StreamID
	Graph  *scopegraph.Graph
}

// Result is a whole compilation's output: every file's final graph, the
// registries Layer 2D populated, and whatever Layer 2D collected.
type Result struct {
	Units   []*Unit
	Store   *streamset.Store
	Strings *strtbl.Table
	Types   *registry.TypeRegistry
	Funcs   *registry.FunctionRegistry
	Aliases *execalias.Registry
	Errors  *cerrors.Collector
}

// Compile runs the whole pipeline over sources under cfg. The first
// per-file error from Layers 0-2B aborts the compilation (source I/O
// failures are the only thing that can fail there); anything Layer 2D
// finds is recorded in Result.Errors instead, since §7 treats
// contextualization problems as diagnostics, not compile failures.
func Compile(ctx context.Context, sources []source.Source, cfg config.Config) (*Result, error) {
	strings_ := strtbl.New()
	aliases := execalias.New()
	store := streamset.New()
	coll := cerrors.NewCollector(cfg.Policy)

	units := make([]*Unit, len(sources))

	g, _ := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			content, file, err := source.Load(src)
			if err != nil {
				return err
			}
			raw := scanner.Scan(content, strings_, aliases)
			stream := store.Add(raw, file)
			graph := scopegraph.Build(stream, raw, aliases)
			execcompile.Compile(graph, raw, strings_, aliases)
			units[i] = &Unit{Name: file.Name(), Stream: stream, Graph: graph}
			clog.Debug("layers 0-2B complete", "file", file.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}

	for _, u := range units {
		chunkresolve.Resolve(u.Graph, store.Raw(u.Stream), strings_, aliases)
	}

	types := registry.NewTypeRegistry()
	funcs := registry.NewFunctionRegistry()
	for _, u := range units {
		contextualize.Process(u.Graph, store, u.Stream, strings_, types, funcs, aliases, coll, cfg.MaxExecSteps)
	}

	coll.Resolve(store.Raws(), store.Files())

	return &Result{
		Units:   units,
		Store:   store,
		Strings: strings_,
		Types:   types,
		Funcs:   funcs,
		Aliases: aliases,
		Errors:  coll,
	}, nil
}
