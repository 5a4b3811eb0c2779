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

package scopegraph

import (
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/token"
)

// Build implements spec.md §4.5's cache-and-semicolon algorithm: it walks
// a single file's RawToken stream and produces a Graph rooted at index 0.
// aliases, when non-nil, receives scope registrations for headers carrying
// an EXEC or EXEC_ALIAS fine kind.
func Build(stream token.StreamID, raw []token.RawToken, aliases *execalias.Registry) *Graph {
	b := &builder{stream: stream, raw: raw, aliases: aliases, g: New()}
	b.run()
	return b.g
}

type builder struct {
	stream  token.StreamID
	raw     []token.RawToken
	aliases *execalias.Registry
	g       *Graph

	current uint32 // current scope index
	cache   []token.Token
	execDepth int // >0 while inside an exec scope's body ';' is not a boundary

	// execBraceDepth counts unmatched '{'/'}' pairs seen inside an
	// already-open exec scope's body (e.g. a Lua table constructor in a
	// `return { ... }` statement). While it is nonzero, brace tokens are
	// plain body text, not new scope boundaries — only the brace that
	// rebalances it to zero can be the exec scope's own closing brace.
	execBraceDepth int
}

func (b *builder) run() {
	for i, rt := range b.raw {
		tok := token.Token{Stream: b.stream, Index: uint32(i), Kind: rt.Kind}

		switch rt.Kind {
		case token.SEMICOLON:
			b.cache = append(b.cache, tok)
			if b.execDepth > 0 {
				continue // not a boundary inside an exec scope's body
			}
			b.flushInstruction()

		case token.LEFT_BRACE_KIND:
			if b.execDepth > 0 && b.g.Scope(b.current).IsExec {
				b.cache = append(b.cache, tok)
				b.execBraceDepth++
				continue
			}
			b.cache = append(b.cache, tok)
			header := b.takeCache()
			parent := b.current
			newIdx := b.g.AddScope(parent)
			scope := b.g.Scope(newIdx)
			scope.Header = Instruction{Tokens: header}

			if headerHasExec(b.raw, header) {
				scope.IsExec = true
				if b.aliases != nil {
					b.aliases.RegisterScopeIndex(newIdx)
				}
				b.execDepth++
				if idx, ok := headerExecAliasIndex(b.raw, header); ok && b.aliases != nil {
					b.aliases.LinkAliasToScope(idx, newIdx)
				}
			}

			b.g.Scope(parent).Instructions = append(b.g.Scope(parent).Instructions, BodyElement{IsScopeRef: true, ScopeIndex: newIdx})
			b.current = newIdx

		case token.RIGHT_BRACE_KIND:
			if b.execBraceDepth > 0 {
				b.cache = append(b.cache, tok)
				b.execBraceDepth--
				continue
			}
			b.cache = append(b.cache, tok)
			content := b.takeCache()
			scope := b.g.Scope(b.current)
			if scope.IsExec {
				scope.Instructions = append(scope.Instructions, BodyElement{Instr: Instruction{Tokens: content}})
				scope.Footer = Footer{Kind: FooterInstruction}
				b.execDepth--
			} else {
				scope.Footer = Footer{Kind: FooterInstruction, Instr: Instruction{Tokens: content}}
			}
			b.current = b.g.Scope(b.current).ParentIndex

		case token.EOF_TOKEN:
			// EOF never opens an instruction of its own: it joins the open
			// scope's last inline instruction, and is dropped when there is
			// none (an empty file, or one ending in a nested scope).
			if len(b.cache) == 0 {
				scope := b.g.Scope(b.current)
				if n := len(scope.Instructions); n > 0 && !scope.Instructions[n-1].IsScopeRef {
					scope.Instructions[n-1].Instr.Tokens = append(scope.Instructions[n-1].Instr.Tokens, tok)
				}
				continue
			}
			b.cache = append(b.cache, tok)

		default:
			b.cache = append(b.cache, tok)
		}
	}

	// Terminal state: trailing cache flushes as a final instruction of
	// whichever scope is still open (normally the root).
	if len(b.cache) > 0 {
		b.flushInstruction()
	}
}

func (b *builder) takeCache() []token.Token {
	c := b.cache
	b.cache = nil
	return c
}

func (b *builder) flushInstruction() {
	toks := b.takeCache()
	if len(toks) == 0 {
		return
	}
	scope := b.g.Scope(b.current)
	scope.Instructions = append(scope.Instructions, BodyElement{Instr: Instruction{Tokens: toks}})
}

// headerHasExec reports whether header contains the EXEC keyword or an
// EXEC_ALIAS (for specialisations), per spec.md §4.5.
func headerHasExec(raw []token.RawToken, header []token.Token) bool {
	for _, t := range header {
		k := raw[t.Index].Kind
		if k == token.EXEC || k == token.EXEC_ALIAS {
			return true
		}
	}
	return false
}

func headerExecAliasIndex(raw []token.RawToken, header []token.Token) (token.ExecAliasIndex, bool) {
	for _, t := range header {
		rt := raw[t.Index]
		if rt.Kind == token.EXEC_ALIAS {
			return rt.Value.ExecAliasIndex(), true
		}
	}
	return 0, false
}
