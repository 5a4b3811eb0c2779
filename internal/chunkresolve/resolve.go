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

// Package chunkresolve implements Layer 2C (spec.md §4.7): it walks every
// token in every scope and re-examines fine kind CHUNK, resolving it to
// EXEC_ALIAS or promoting it to IDENTIFIER now that every exec declaration
// in the file has been registered.
package chunkresolve

import (
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// namespaceIntroducers are the header keywords that push a name onto the
// namespace chain for their scope's subtree (spec.md §4.3's "namespace
// chain" derives from module/class/struct/interface/union introducers).
var namespaceIntroducers = map[token.Kind]bool{
	token.MODULE:    true,
	token.CLASS:     true,
	token.STRUCT:    true,
	token.INTERFACE: true,
	token.UNION:     true,
}

// Resolve runs Layer 2C over every scope in g. It first derives each
// scope's namespace context (parents are always resolved before children,
// since scope indices are assigned in descent order) and stores it on
// Scope.NamespaceContext for Layer 2D to reuse, then resolves every CHUNK
// token against reg using that context.
func Resolve(g *scopegraph.Graph, raw []token.RawToken, strings_ *strtbl.Table, reg *execalias.Registry) {
	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		scope.NamespaceContext = namespaceContext(g, uint32(idx), raw, strings_)
	}

	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		resolveInstruction(&scope.Header, raw, strings_, reg, scope.NamespaceContext)
		for i := range scope.Instructions {
			el := &scope.Instructions[i]
			if el.IsScopeRef {
				continue
			}
			resolveInstruction(&el.Instr, raw, strings_, reg, scope.NamespaceContext)
		}
		if scope.Footer.Kind == scopegraph.FooterInstruction {
			resolveInstruction(&scope.Footer.Instr, raw, strings_, reg, scope.NamespaceContext)
		}
	}
}

func namespaceContext(g *scopegraph.Graph, idx uint32, raw []token.RawToken, strings_ *strtbl.Table) []string {
	if idx == scopegraph.Root {
		return nil
	}
	scope := &g.Scopes[idx]
	parentNS := g.Scopes[scope.ParentIndex].NamespaceContext

	name, ok := namespaceName(scope.Header.Tokens, raw, strings_)
	if !ok || scope.IsExec {
		return append([]string(nil), parentNS...)
	}
	ns := make([]string, 0, len(parentNS)+1)
	ns = append(ns, parentNS...)
	ns = append(ns, name)
	return ns
}

// namespaceName looks for a module/class/struct/interface/union keyword in
// header and returns the identifier text immediately following it.
func namespaceName(header []token.Token, raw []token.RawToken, strings_ *strtbl.Table) (string, bool) {
	introduced := false
	for _, t := range header {
		rt := raw[t.Index]
		if !introduced {
			if namespaceIntroducers[rt.Kind] {
				introduced = true
			}
			continue
		}
		switch rt.Kind {
		case token.IDENTIFIER, token.CHUNK:
			return strings_.Get(rt.Value.StringIndex()), true
		}
	}
	return "", false
}

func resolveInstruction(instr *scopegraph.Instruction, raw []token.RawToken, strings_ *strtbl.Table, reg *execalias.Registry, ns []string) {
	for i := range instr.Tokens {
		t := &instr.Tokens[i]
		rt := &raw[t.Index]
		if rt.Kind != token.CHUNK {
			continue
		}
		name := strings_.Get(rt.Value.StringIndex())
		if idx, ok := reg.Lookup(name, ns); ok {
			rt.Kind = token.EXEC_ALIAS
			rt.Value = token.Alias(idx)
		} else {
			rt.Kind = token.IDENTIFIER
		}
		t.Kind = rt.Kind
	}
}
