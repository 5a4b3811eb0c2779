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

package scanner

import (
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// pass1E implements spec.md §4.4's 1E: it scans each remaining plain-text
// chunk for identifier runs, classifies them against the fixed keyword
// table, and attempts exec-alias recognition against whatever aliases are
// registered so far in the file's global namespace. An identifier that
// cannot yet be resolved as an alias is left as a CHUNK token, re-resolved
// by chunkresolve once every exec declaration in the file has been seen
// (spec.md §4.4, §4.7).
func pass1E(chunks []chunk, strings_ *strtbl.Table, aliases *execalias.Registry) []token.RawToken {
	out := make([]token.RawToken, 0, len(chunks))
	for _, c := range chunks {
		if c.kind == chunkToken {
			out = append(out, c.tok)
			continue
		}
		out = append(out, splitIdentifiers(c, strings_, aliases)...)
	}
	return out
}

func splitIdentifiers(c chunk, strings_ *strtbl.Table, aliases *execalias.Registry) []token.RawToken {
	text := c.text
	n := len(text)
	var out []token.RawToken
	i := 0
	col := c.col

	for i < n {
		if !isIdentStartByte(text[i]) {
			out = append(out, token.RawToken{
				Class: token.INVALID_CLASS, Kind: token.INVALID, Line: c.line, Column: col, Position: c.pos + i,
			})
			i++
			col++
			continue
		}
		start := i
		startCol := col
		for i < n && isIdentByte(text[i]) {
			i++
			col++
		}
		word := text[start:i]

		if kind, ok := token.Keywords[word]; ok {
			rt := token.RawToken{Class: token.KEYWORD_CLASS, Kind: kind, Line: c.line, Column: startCol, Position: c.pos + start}
			switch kind {
			case token.TRUE_LITERAL:
				rt.Value = token.Bool(true)
			case token.FALSE_LITERAL:
				rt.Value = token.Bool(false)
			}
			out = append(out, rt)
			continue
		}

		if aliases != nil {
			if idx, ok := aliases.Lookup(word, nil); ok {
				out = append(out, token.RawToken{
					Class: token.IDENTIFIER_CLASS, Kind: token.EXEC_ALIAS, Line: c.line, Column: startCol, Position: c.pos + start,
					Value: token.Alias(idx),
				})
				continue
			}
		}

		// Not yet resolvable as an alias: keep it as a CHUNK carrying its
		// own text so chunkresolve (Layer 2C) can try again once the
		// alias registry is complete, falling back to IDENTIFIER.
		out = append(out, token.RawToken{
			Class: token.IDENTIFIER_CLASS, Kind: token.CHUNK, Line: c.line, Column: startCol, Position: c.pos + start,
			Value: token.Str(strings_.Intern(word)),
		})
	}
	return out
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
