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
	"strings"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/detoken"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/luavm"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/streamset"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// expandExecAliases implements spec.md §4.8(c): every EXEC_ALIAS call-form
// instruction and every specialisation scope is run through luavm and
// integrated per its declared integration type. Expansion runs once per
// Process call; generated code that itself calls an exec alias is not
// re-expanded (a literal `exec` in generated output is already a fatal
// error under step 5, and nothing in SPEC_FULL.md asks for unbounded
// recomposition).
func expandExecAliases(g *scopegraph.Graph, store *streamset.Store, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, streamID token.StreamID, maxExecSteps int) {
	// Specialisations first: spec.md §4.6 already required parents to
	// compile before specialisations: their expansion must also follow
	// the parent lambda's definition, and a specialisation call consumes
	// no per-instruction call site of its own, so it cannot be discovered
	// by the instruction walk below.
	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		if !scope.IsExec {
			continue
		}
		lambda, ok := aliases.Lambda(uint32(idx))
		if !ok || !lambda.IsSpecialization() {
			continue
		}
		expandSpecialization(g, uint32(idx), store, strings_, types, funcs, aliases, coll, streamID, maxExecSteps)
	}

	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		if scope.IsExec {
			continue
		}
		expandCallSitesInScope(g, uint32(idx), store, strings_, types, funcs, aliases, coll, streamID, maxExecSteps)
	}
}

func expandSpecialization(g *scopegraph.Graph, idx uint32, store *streamset.Store, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, streamID token.StreamID, maxExecSteps int) {
	scope := &g.Scopes[idx]
	lambda, _ := aliases.Lambda(idx)
	parentName, _ := aliases.ParentOfSpecialization(idx)
	parentGlobalIdx, ok := aliases.GlobalIndex(parentName)
	if !ok {
		coll.Add(cerrors.UnresolvedIdentifier, streamID, scope.Header.Tokens[0].Index, "specialisation refers to unknown exec template %q", parentName)
		return
	}
	parentScopeIdx, ok := aliases.ScopeForAlias(parentGlobalIdx)
	if !ok {
		coll.Add(cerrors.UnresolvedIdentifier, streamID, scope.Header.Tokens[0].Index, "exec template %q has no compiled body", parentName)
		return
	}
	parentLambda, ok := aliases.Lambda(parentScopeIdx)
	if !ok {
		coll.Add(cerrors.UnresolvedIdentifier, streamID, scope.Header.Tokens[0].Index, "exec template %q has no compiled body", parentName)
		return
	}

	result, err := luavm.ExecuteWithBudget(parentLambda.Script, []luavm.Value{lambda.SpecializationBody()}, maxExecSteps)
	if err != nil {
		coll.Add(cerrors.InvalidFunctionCall, streamID, scope.Header.Tokens[0].Index, "exec template %q failed: %s", parentName, err.Error())
		return
	}

	newInstructions, err := integrate(g, idx, result, store, strings_, types, funcs, aliases, coll, streamID, scope.Header.Tokens[0].Index)
	if err != nil {
		coll.Add(cerrors.UnsupportedTokenPattern, streamID, scope.Header.Tokens[0].Index, "%s", err.Error())
		return
	}
	scope.Instructions = newInstructions
	scope.IsExec = false
}

func expandCallSitesInScope(g *scopegraph.Graph, idx uint32, store *streamset.Store, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, streamID token.StreamID, maxExecSteps int) {
	scope := &g.Scopes[idx]
	var rebuilt []scopegraph.BodyElement
	// precedingExec tracks the nearest exec-block sibling seen so far in
	// this scope's Instructions, for a noname exec (spec.md §4.8(c) step
	// 1's "<params> alone"): it always refers back to the exec block
	// immediately preceding it, not to any exec block anywhere in the file.
	var precedingExec execalias.ExecutableLambda
	var havePrecedingExec bool
	for _, el := range scope.Instructions {
		if el.IsScopeRef {
			if lambda, ok := aliases.Lambda(el.ScopeIndex); ok {
				precedingExec, havePrecedingExec = lambda, true
			}
			rebuilt = append(rebuilt, el)
			continue
		}
		replacement, expanded := expandInstruction(g, idx, &el.Instr, store, strings_, types, funcs, aliases, coll, streamID, maxExecSteps, precedingExec, havePrecedingExec)
		if expanded {
			rebuilt = append(rebuilt, replacement...)
		} else {
			rebuilt = append(rebuilt, el)
		}
	}
	scope.Instructions = rebuilt
}

// expandInstruction looks for one of spec.md §4.8(c) step 1's two
// non-specialisation call forms occupying instr in full:
//   - `EXEC_ALIAS(arg, arg, ...);` — a named call.
//   - `<arg, arg, ...>;` — a noname exec, the footer of a preceding exec
//     block; its lambda is precedingExec, the nearest exec-block sibling
//     before instr in the same scope (step 2).
//
// Anything else passes through unmodified.
func expandInstruction(g *scopegraph.Graph, ownerScope uint32, instr *scopegraph.Instruction, store *streamset.Store, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, streamID token.StreamID, maxExecSteps int, precedingExec execalias.ExecutableLambda, havePrecedingExec bool) ([]scopegraph.BodyElement, bool) {
	raw := store.Raw(streamID)

	if aliasPos, argRanges, ok := findCallSite(raw, instr.Tokens); ok {
		aliasTok := instr.Tokens[aliasPos]
		execIdx := raw[aliasTok.Index].Value.ExecAliasIndex()
		name := aliases.Name(execIdx)
		scopeIdx, ok := aliases.ScopeForAlias(execIdx)
		if !ok {
			coll.Add(cerrors.UnresolvedIdentifier, streamID, aliasTok.Index, "exec template %q has no compiled body", name)
			return nil, true
		}
		lambda, ok := aliases.Lambda(scopeIdx)
		if !ok {
			coll.Add(cerrors.UnresolvedIdentifier, streamID, aliasTok.Index, "exec template %q has no compiled body", name)
			return nil, true
		}
		return runExecCall(g, ownerScope, lambda, name, argRanges, raw, strings_, types, funcs, aliases, coll, store, streamID, aliasTok.Index, maxExecSteps)
	}

	if argRanges, ok := findNonameCallSite(raw, instr.Tokens); ok {
		errTok := instr.Tokens[0].Index
		lambda, ok := nonameLambda(aliases, ownerScope, precedingExec, havePrecedingExec)
		if !ok {
			coll.Add(cerrors.UnresolvedIdentifier, streamID, errTok, "noname exec has no preceding exec block in scope")
			return nil, true
		}
		return runExecCall(g, ownerScope, lambda, "<noname>", argRanges, raw, strings_, types, funcs, aliases, coll, store, streamID, errTok, maxExecSteps)
	}

	return nil, false
}

// runExecCall detokenises argRanges into Lua params, runs lambda, and
// integrates the result at errTok, shared by the named and noname call
// forms in expandInstruction.
func runExecCall(g *scopegraph.Graph, ownerScope uint32, lambda execalias.ExecutableLambda, name string, argRanges [][]token.Token, raw []token.RawToken, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, store *streamset.Store, streamID token.StreamID, errTok uint32, maxExecSteps int) ([]scopegraph.BodyElement, bool) {
	params := make([]luavm.Value, 0, len(argRanges))
	for _, r := range argRanges {
		text := strings.TrimSpace(detoken.Detokenize(raw, tokenIndices(r), strings_))
		params = append(params, luavm.Value(text))
	}

	result, err := luavm.ExecuteWithBudget(lambda.Script, params, maxExecSteps)
	if err != nil {
		coll.Add(cerrors.InvalidFunctionCall, streamID, errTok, "exec template %q failed: %s", name, err.Error())
		return nil, true
	}

	out, err := integrate(g, ownerScope, result, store, strings_, types, funcs, aliases, coll, streamID, errTok)
	if err != nil {
		coll.Add(cerrors.UnsupportedTokenPattern, streamID, errTok, "%s", err.Error())
		return nil, true
	}
	return out, true
}

// nonameLambda implements spec.md §4.8(c) step 2 for a noname exec: the
// nearest preceding exec-block sibling in the same scope, tracked by
// expandCallSitesInScope as precedingExec while it walks instructions in
// declaration order; falls back to ownerScope's own lambda for a noname
// exec written directly inside an exec template's own body.
func nonameLambda(aliases *execalias.Registry, ownerScope uint32, precedingExec execalias.ExecutableLambda, havePrecedingExec bool) (execalias.ExecutableLambda, bool) {
	if havePrecedingExec {
		return precedingExec, true
	}
	return aliases.Lambda(ownerScope)
}

func tokenIndices(toks []token.Token) []uint32 {
	out := make([]uint32, len(toks))
	for i, t := range toks {
		out[i] = t.Index
	}
	return out
}

// findCallSite recognises `EXEC_ALIAS ( arg, arg, ... ) ;` occupying the
// whole of toks (ignoring surrounding whitespace), returning the alias
// token's position in toks and each argument's token sub-slice.
func findCallSite(raw []token.RawToken, toks []token.Token) (aliasPos int, args [][]token.Token, ok bool) {
	i := 0
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i >= len(toks) || raw[toks[i].Index].Kind != token.EXEC_ALIAS {
		return 0, nil, false
	}
	aliasPos = i
	i++
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i >= len(toks) || raw[toks[i].Index].Kind != token.LEFT_PAREN {
		return 0, nil, false
	}
	i++ // past '('

	depth := 1
	start := i
	for i < len(toks) {
		k := raw[toks[i].Index].Kind
		switch k {
		case token.LEFT_PAREN:
			depth++
		case token.RIGHT_PAREN:
			depth--
			if depth == 0 {
				if i > start {
					args = append(args, toks[start:i])
				}
				i++
				goto afterArgs
			}
		case token.COMMA:
			if depth == 1 {
				args = append(args, toks[start:i])
				start = i + 1
			}
		}
		i++
	}
	return 0, nil, false // unterminated

afterArgs:
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i < len(toks) && raw[toks[i].Index].Kind == token.SEMICOLON {
		i++
	}
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i != len(toks) {
		return 0, nil, false
	}
	return aliasPos, args, true
}

// findNonameCallSite recognises `< arg, arg, ... > ;` occupying the whole
// of toks (ignoring surrounding whitespace): spec.md §4.8(c) step 1's
// noname exec, the footer form that refers back to a preceding exec
// block rather than naming one.
func findNonameCallSite(raw []token.RawToken, toks []token.Token) (args [][]token.Token, ok bool) {
	i := 0
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i >= len(toks) || raw[toks[i].Index].Kind != token.LESS_THAN {
		return nil, false
	}
	i++ // past '<'

	start := i
	for i < len(toks) {
		k := raw[toks[i].Index].Kind
		switch k {
		case token.GREATER_THAN:
			if i > start {
				args = append(args, toks[start:i])
			}
			i++
			goto afterArgs
		case token.COMMA:
			args = append(args, toks[start:i])
			start = i + 1
		}
		i++
	}
	return nil, false // unterminated

afterArgs:
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i < len(toks) && raw[toks[i].Index].Kind == token.SEMICOLON {
		i++
	}
	for i < len(toks) && whitespaceKinds[raw[toks[i].Index].Kind] {
		i++
	}
	if i != len(toks) {
		return nil, false
	}
	return args, true
}

// integrate splices result's generated code into the graph at the call
// site, per its integration type (spec.md §4.8(c) step 6):
//
//   - IntegrationToken: the generated code becomes a single inline
//     Instruction of new tokens.
//   - IntegrationScopeInsert: the generated code's top-level statements
//     are spliced as new sibling Instructions/Scopes of the call site.
//   - IntegrationScopeCreate: the generated code is wrapped in a fresh
//     scope (braces synthesised around it) inserted as one nested scope.
//
// A literal `exec` keyword anywhere in the generated code is a fatal
// error (step 5): exec is not allowed to emit further exec blocks as raw
// text.
func integrate(g *scopegraph.Graph, ownerScope uint32, result luavm.Result, store *streamset.Store, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, aliases *execalias.Registry, coll *cerrors.Collector, callerStream token.StreamID, callerTok uint32) ([]scopegraph.BodyElement, error) {
	code := result.GeneratedCode
	if result.IntegrationType == luavm.IntegrationScopeCreate {
		code = "{" + code + "}"
	}

	raw := scanner.Scan([]byte(code), strings_, aliases)
	for _, rt := range raw {
		if rt.Kind == token.EXEC {
			return nil, fatalExecInOutput{}
		}
	}
	fragStream := store.Add(raw, nil)
	frag := scopegraph.Build(fragStream, raw, aliases)
	processGraph(frag, raw, strings_, types, funcs, coll, fragStream)

	switch result.IntegrationType {
	case luavm.IntegrationToken:
		toks := make([]token.Token, 0, len(raw))
		for i, rt := range raw {
			if rt.Kind == token.EOF_TOKEN {
				continue
			}
			toks = append(toks, token.Token{Stream: fragStream, Index: uint32(i), Kind: rt.Kind})
		}
		instr := scopegraph.Instruction{Tokens: toks}
		classified := classifyTokens(raw, toks)
		instr.Contextual = classified
		return []scopegraph.BodyElement{{Instr: instr}}, nil

	default: // IntegrationScopeInsert, IntegrationScopeCreate
		return mergeFragment(g, frag, ownerScope), nil
	}
}

type fatalExecInOutput struct{}

func (fatalExecInOutput) Error() string {
	return "exec-generated code contains a literal 'exec' keyword"
}

// mergeFragment appends frag's non-root scopes into g, reparenting them
// under newParent (frag's own root's direct children) or by offset
// (deeper descendants), and returns frag's root-level BodyElements with
// their ScopeIndex fields remapped the same way.
func mergeFragment(g *scopegraph.Graph, frag *scopegraph.Graph, newParent uint32) []scopegraph.BodyElement {
	offset := uint32(len(g.Scopes))
	remap := func(old uint32) uint32 {
		if old == scopegraph.Root {
			return newParent
		}
		return offset + (old - 1)
	}

	for i := 1; i < len(frag.Scopes); i++ {
		sc := frag.Scopes[i]
		sc.ParentIndex = remap(sc.ParentIndex)
		for k := range sc.Instructions {
			if sc.Instructions[k].IsScopeRef {
				sc.Instructions[k].ScopeIndex = remap(sc.Instructions[k].ScopeIndex)
			}
		}
		if sc.Footer.Kind == scopegraph.FooterScopeIndex {
			sc.Footer.ScopeIndex = remap(sc.Footer.ScopeIndex)
		}
		g.Scopes = append(g.Scopes, sc)
	}

	root := append([]scopegraph.BodyElement(nil), frag.Scopes[scopegraph.Root].Instructions...)
	for k := range root {
		if root[k].IsScopeRef {
			root[k].ScopeIndex = remap(root[k].ScopeIndex)
		}
	}
	return root
}
