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

import "cprime.dev/compiler/internal/token"

// twoCharOps is tried before one-char ops (longest match wins, spec.md
// §4.4, 1C).
var twoCharOps = map[string]token.Kind{
	"==": token.EQUALS,
	"!=": token.NOT_EQUALS,
	"<=": token.LESS_EQUAL,
	">=": token.GREATER_EQUAL,
	"&&": token.LOGICAL_AND,
	"||": token.LOGICAL_OR,
	"->": token.ARROW,
	"::": token.SCOPE_RESOLUTION,
	"<-": token.FIELD_LINK,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.MULTIPLY,
	'/': token.DIVIDE,
	'%': token.MODULO,
	'=': token.ASSIGN,
	'<': token.LESS_THAN,
	'>': token.GREATER_THAN,
	'!': token.LOGICAL_NOT,
	'&': token.BITWISE_AND,
	'|': token.BITWISE_OR,
	'^': token.BITWISE_XOR,
	'~': token.BITWISE_NOT,
	'.': token.DOT,
	':': token.COLON,
}

// pass1C implements spec.md §4.4's 1C: it walks each remaining unhinted
// plain-text chunk and peels off operator tokens greedily, leaving
// identifier/number runs as narrower plain chunks for 1D/1E.
func pass1C(chunks []chunk) []chunk {
	out := make([]chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.kind != chunkString || c.hint != hintNone {
			out = append(out, c)
			continue
		}
		out = append(out, splitOperators(c)...)
	}
	return out
}

func splitOperators(c chunk) []chunk {
	text := c.text
	var out []chunk
	runStart := 0
	col := c.col
	i := 0
	n := len(text)

	flushRun := func(end int) {
		if end > runStart {
			out = append(out, stringChunk(text[runStart:end], hintNone, c.line, col-(end-runStart), c.pos+runStart))
		}
	}

	for i < n {
		ch := text[i]

		if i+1 < n {
			two := text[i : i+2]
			if kind, ok := twoCharOps[two]; ok {
				flushRun(i)
				out = append(out, tokenChunk(token.RawToken{
					Class: token.IDENTIFIER_CLASS, Kind: kind, Line: c.line, Column: col, Position: c.pos + i,
				}))
				i += 2
				col += 2
				runStart = i
				continue
			}
		}

		if kind, ok := oneCharOps[ch]; ok {
			// A standalone '.' immediately followed by a digit belongs to
			// the numeric pass, not here.
			if ch == '.' && i+1 < n && isDigitByte(text[i+1]) {
				i++
				col++
				continue
			}
			flushRun(i)
			out = append(out, tokenChunk(token.RawToken{
				Class: token.IDENTIFIER_CLASS, Kind: kind, Line: c.line, Column: col, Position: c.pos + i,
			}))
			i++
			col++
			runStart = i
			continue
		}

		i++
		col++
	}
	flushRun(n)
	return out
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }
