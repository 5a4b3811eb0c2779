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

package contextualize

import (
	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/streamset"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// Process runs the whole of Layer 2D over g, whose tokens live in
// store's stream streamID: classify every instruction's tokens, register
// declarations and call sites into types/funcs, then expand every
// exec-alias call site and specialisation scope, folding any exec-side
// errors into coll.
//
// Exec expansion allocates further streams in store for generated
// fragments and classifies/registers each one the same way before
// splicing it into g, so types and funcs end up populated for both the
// original source and everything exec generated from it.
//
// maxExecSteps bounds how many blocks a single exec call site's script
// may enter (internal/config.Config.MaxExecSteps); 0 means unlimited,
// which is what every existing caller not yet wired to config uses.
func Process(g *scopegraph.Graph, store *streamset.Store, streamID token.StreamID, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, maxExecSteps int) {
	raw := store.Raw(streamID)
	processGraph(g, raw, strings_, types, funcs, coll, streamID)
	expandExecAliases(g, store, strings_, types, funcs, aliases, coll, streamID, maxExecSteps)
}

// processGraph runs classification followed by declaration/call-site
// registration over every scope of g. It is shared between the
// top-level source graph and every exec-generated fragment graph, since
// both need identical treatment before being merged into the whole.
func processGraph(g *scopegraph.Graph, raw []token.RawToken, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, coll *cerrors.Collector, streamID token.StreamID) {
	classifyGraph(g, raw)
	registerDeclarations(g, raw, strings_, types, funcs, coll, streamID)
}

// classifyGraph assigns instr.Contextual for every Instruction (header,
// body, footer) of every scope in g.
func classifyGraph(g *scopegraph.Graph, raw []token.RawToken) {
	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		walkInstructions(scope, func(instr *scopegraph.Instruction) {
			instr.Contextual = classifyTokens(raw, instr.Tokens)
		})
	}
}
