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

// Package execcompile implements Layer 2B (spec.md §4.6): it walks every
// scope Layer 2A marked exec, classifies each as a parent or a
// specialisation, and stores the compiled ExecutableLambda back into the
// shared ExecAliasRegistry. It depends on both scopegraph and execalias,
// which is why it lives apart from either (execalias.Registry already
// flows the other way into scopegraph.Build, which registers scope
// indices as the builder discovers exec headers).
package execcompile

import (
	"cprime.dev/compiler/internal/detoken"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// headerInfo is the result of classifying an exec scope's header
// (spec.md §4.6): the identifier tokens seen after EXEC, outside any
// `< >` template-parameter bracket, plus the template parameter text
// itself.
type headerInfo struct {
	identifiers []string // one -> parent, two+ -> specialisation
	params      []string // identifiers found between < and >
}

// Compile runs Layer 2B over every scope in g marked exec by Layer 2A:
// parents first, then specialisations (spec.md §4.6 — a specialisation's
// execution delegates to its parent's script, so the parent's lambda
// must already be stored).
func Compile(g *scopegraph.Graph, raw []token.RawToken, strings_ *strtbl.Table, reg *execalias.Registry) {
	var specialisationScopes []uint32

	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		if !scope.IsExec {
			continue
		}
		info := classifyHeader(raw, scope.Header.Tokens, strings_, reg)
		if len(info.identifiers) <= 1 {
			compileParent(uint32(idx), scope, info, raw, strings_, reg)
		} else {
			specialisationScopes = append(specialisationScopes, uint32(idx))
		}
	}

	for _, idx := range specialisationScopes {
		scope := &g.Scopes[idx]
		info := classifyHeader(raw, scope.Header.Tokens, strings_, reg)
		compileSpecialisation(idx, scope, info, raw, strings_, reg)
	}
}

// classifyHeader counts identifier tokens after the EXEC keyword, outside
// any `< >` bracket, and collects whatever sits inside those brackets as
// template parameters (spec.md §4.6's classification step).
func classifyHeader(raw []token.RawToken, header []token.Token, strings_ *strtbl.Table, reg *execalias.Registry) headerInfo {
	var info headerInfo
	seenExec := false
	depth := 0
	for _, t := range header {
		rt := raw[t.Index]
		if !seenExec {
			if rt.Kind == token.EXEC {
				seenExec = true
			}
			continue
		}
		switch rt.Kind {
		case token.LESS_THAN:
			depth++
			continue
		case token.GREATER_THAN:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			if rt.Kind == token.IDENTIFIER || rt.Kind == token.CHUNK {
				info.params = append(info.params, strings_.Get(rt.Value.StringIndex()))
			}
			continue
		}
		if rt.Kind == token.IDENTIFIER || rt.Kind == token.CHUNK {
			info.identifiers = append(info.identifiers, strings_.Get(rt.Value.StringIndex()))
		} else if rt.Kind == token.EXEC_ALIAS {
			info.identifiers = append(info.identifiers, reg.Name(rt.Value.ExecAliasIndex()))
		}
	}
	return info
}

func bodyTokenIndices(scope *scopegraph.Scope) []uint32 {
	var out []uint32
	for _, el := range scope.Instructions {
		if el.IsScopeRef {
			continue
		}
		for _, t := range el.Instr.Tokens {
			out = append(out, t.Index)
		}
	}
	if scope.Footer.Kind == scopegraph.FooterInstruction {
		for _, t := range scope.Footer.Instr.Tokens {
			out = append(out, t.Index)
		}
	}
	return out
}

// stripStructural drops the exec scope's own delimiting braces and any
// statement-separating semicolons (Lua treats semicolons as optional, so
// dropping them is harmless). Only the first/last token can be the
// scope's own brace — bodyTokenIndices never includes the opening brace
// at all (it lives in scope.Header) and the builder always appends the
// scope's own closing brace as the final body token — so a brace
// appearing anywhere else is body text, most commonly a Lua table
// constructor in a `return { ... }` statement, and must be preserved.
func stripStructural(raw []token.RawToken, indices []uint32) []uint32 {
	out := make([]uint32, 0, len(indices))
	for i, idx := range indices {
		k := raw[idx].Kind
		if k == token.SEMICOLON {
			continue
		}
		if k == token.RIGHT_BRACE_KIND && i == len(indices)-1 {
			continue
		}
		if k == token.LEFT_BRACE_KIND && i == 0 {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func compileParent(scopeIdx uint32, scope *scopegraph.Scope, info headerInfo, raw []token.RawToken, strings_ *strtbl.Table, reg *execalias.Registry) {
	if len(info.identifiers) == 1 {
		name := info.identifiers[0]
		idx, ok := reg.GlobalIndex(name)
		if !ok {
			idx, _ = reg.RegisterAlias(name)
			idx, ok = reg.GlobalIndex(name)
		}
		if ok {
			reg.LinkAliasToScope(idx, scopeIdx)
		}
	}

	body := stripStructural(raw, bodyTokenIndices(scope))
	script := detoken.NormalizeIndent(detoken.Detokenize(raw, body, strings_))
	reg.UpdateExecutableLambda(scopeIdx, execalias.ExecutableLambda{Script: script})
}

func compileSpecialisation(scopeIdx uint32, scope *scopegraph.Scope, info headerInfo, raw []token.RawToken, strings_ *strtbl.Table, reg *execalias.Registry) {
	if len(info.identifiers) == 0 {
		return
	}
	parentName := info.identifiers[0]
	reg.LinkSpecializationToParent(scopeIdx, parentName)

	body := stripStructural(raw, bodyTokenIndices(scope))
	cprimeBody := detoken.NormalizeIndent(detoken.Detokenize(raw, body, strings_))
	reg.UpdateExecutableLambda(scopeIdx, execalias.NewSpecializationLambda(cprimeBody))
}
