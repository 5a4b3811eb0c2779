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
	"cprime.dev/compiler/internal/detoken"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

var namespaceIntroducers = map[token.Kind]bool{
	token.MODULE:    true,
	token.CLASS:     true,
	token.STRUCT:    true,
	token.INTERFACE: true,
	token.UNION:     true,
}

// introducedName returns the identifier following a namespace-introducing
// keyword in header, mirroring chunkresolve's own header scan (duplicated
// rather than shared, since the two packages reach the same shape from
// different directions: chunkresolve needs it before any registry exists,
// this package needs it while one is being populated).
func introducedName(header []token.Token, raw []token.RawToken, strings_ *strtbl.Table) (string, bool) {
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

// isFunctionHeader reports whether header declares a function (the
// FUNCTION/FUNC keyword appears before the opening brace) and returns its
// name plus the raw-token indices of its parameter list, if found. The
// first IDENTIFIER/CHUNK token after FUNCTION/FUNC and outside the
// parameter list is taken as the function name; a return type spelled as
// a type keyword is passed over, but one spelled as an identifier is
// taken as the name.
func isFunctionHeader(header []token.Token, raw []token.RawToken, strings_ *strtbl.Table) (name string, paramIndices []uint32, ok bool) {
	sawFn := false
	sawName := false
	depth := 0
	collecting := false
	for _, t := range header {
		rt := raw[t.Index]
		if !sawFn {
			if rt.Kind == token.FUNCTION || rt.Kind == token.FUNC {
				sawFn = true
			}
			continue
		}
		switch rt.Kind {
		case token.LEFT_PAREN:
			depth++
			collecting = depth == 1
			continue
		case token.RIGHT_PAREN:
			depth--
			if depth == 0 {
				collecting = false
			}
			continue
		}
		if collecting {
			if rt.Kind == token.IDENTIFIER || rt.Kind == token.CHUNK || typeKeywordKinds[rt.Kind] {
				paramIndices = append(paramIndices, t.Index)
			}
			continue
		}
		if !sawName && (rt.Kind == token.IDENTIFIER || rt.Kind == token.CHUNK) {
			name = strings_.Get(rt.Value.StringIndex())
			sawName = true
		}
	}
	return name, paramIndices, sawFn && sawName
}

// registerDeclarations implements spec.md §4.8(b)'s registration pass:
// namespace-introducing scopes register a type in their parent's
// namespace; FUNCTION/FUNC headers register an overload; plain
// declaration-role identifiers mark the referenced type instantiated;
// function-call-role identifiers resolve and mark an overload called.
func registerDeclarations(g *scopegraph.Graph, raw []token.RawToken, strings_ *strtbl.Table, types *registry.TypeRegistry, funcs *registry.FunctionRegistry, coll *cerrors.Collector, streamID token.StreamID) {
	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		parentNS := namespaceOf(g, scope.ParentIndex)

		if ownNS := namespaceJoin(scope.NamespaceContext); ownNS != parentNS {
			types.RegisterNamespace(ownNS, parentNS)
			funcs.RegisterNamespace(ownNS, parentNS)
		}

		if !scope.IsExec {
			if fname, params, isFn := isFunctionHeader(scope.Header.Tokens, raw, strings_); isFn {
				paramTypes := make([]string, len(params))
				for i, pidx := range params {
					paramTypes[i] = detoken.Detokenize(raw, []uint32{pidx}, strings_)
				}
				if _, err := funcs.Register(parentNS, fname, paramTypes, uint32(idx)); err != nil {
					coll.Add(cerrors.UnresolvedIdentifier, streamID, scope.Header.Tokens[0].Index, "%s", err.Error())
				}
			} else if name, ok := introducedName(scope.Header.Tokens, raw, strings_); ok {
				if _, err := types.Register(parentNS, name, uint32(idx)); err != nil {
					coll.Add(cerrors.UnresolvedIdentifier, streamID, scope.Header.Tokens[0].Index, "%s", err.Error())
				}
			}
		}
	}

	// Calls are resolved only after every scope's declarations are
	// registered, so a call may precede its function's declaration.
	for idx := range g.Scopes {
		scope := &g.Scopes[idx]
		ns := scope.NamespaceContext
		walkInstructions(scope, func(instr *scopegraph.Instruction) {
			for i, t := range instr.Tokens {
				if i >= len(instr.Contextual) {
					continue
				}
				rt := raw[t.Index]
				name := identifierName(rt, strings_)
				if name == "" {
					continue
				}
				switch instr.Contextual[i].Role {
				case scopegraph.RoleVariableDeclaration:
					typeName := prevIdentifierText(raw, instr.Tokens, i, strings_)
					if typeName != "" {
						types.MarkInstantiated(namespaceJoin(ns), typeName)
					}
				case scopegraph.RoleFunctionCall:
					if rt.Kind == token.EXEC_ALIAS {
						continue // handled by exec expansion, not the call graph
					}
					if fn, err := funcs.Resolve(namespaceJoin(ns), name, nil); err == nil {
						funcs.MarkCalled(fn, ns, int(t.Index))
					} else {
						coll.Add(cerrors.UnresolvedIdentifier, streamID, t.Index, "call to undeclared function %q: %s", name, err.Error())
					}
				}
			}
		})
	}
}

func identifierName(rt token.RawToken, strings_ *strtbl.Table) string {
	if rt.Kind != token.IDENTIFIER && rt.Kind != token.CHUNK {
		return ""
	}
	return strings_.Get(rt.Value.StringIndex())
}

func prevIdentifierText(raw []token.RawToken, toks []token.Token, i int, strings_ *strtbl.Table) string {
	for j := i - 1; j >= 0; j-- {
		rt := raw[toks[j].Index]
		if whitespaceKinds[rt.Kind] {
			continue
		}
		if rt.Kind == token.IDENTIFIER || rt.Kind == token.CHUNK {
			return strings_.Get(rt.Value.StringIndex())
		}
		return ""
	}
	return ""
}

func namespaceOf(g *scopegraph.Graph, idx uint32) string {
	return namespaceJoin(g.Scopes[idx].NamespaceContext)
}

func namespaceJoin(ns []string) string {
	if len(ns) == 0 {
		return registry.GlobalNamespace
	}
	out := ns[0]
	for _, n := range ns[1:] {
		out += "." + n
	}
	return out
}

// walkInstructions applies fn to every inline Instruction of scope,
// including its header and footer.
func walkInstructions(scope *scopegraph.Scope, fn func(*scopegraph.Instruction)) {
	fn(&scope.Header)
	for i := range scope.Instructions {
		el := &scope.Instructions[i]
		if el.IsScopeRef {
			continue
		}
		fn(&el.Instr)
	}
	if scope.Footer.Kind == scopegraph.FooterInstruction {
		fn(&scope.Footer.Instr)
	}
}
