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
	"strings"

	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// literalPrefixes is tried longest-first so "u8R" is not mistaken for "u".
var literalPrefixes = []string{"u8R", "LR", "uR", "UR", "u8", "L", "u", "U", "R"}

// pass1B implements spec.md §4.4's 1B: it resolves the hinted string/char
// literal chunks pass1A produced into concrete tokens, picking up any
// prefix letters left dangling at the end of the preceding plain-text
// chunk, and promotes comment chunks to COMMENT tokens.
func pass1B(chunks []chunk, strings_ *strtbl.Table) []chunk {
	out := make([]chunk, 0, len(chunks))

	for idx := 0; idx < len(chunks); idx++ {
		c := chunks[idx]
		if c.kind != chunkString {
			out = append(out, c)
			continue
		}

		switch c.hint {
		case hintLineComment, hintBlockComment:
			out = append(out, tokenChunk(token.RawToken{
				Class: token.COMMENT_CLASS, Kind: token.COMMENT,
				Line: c.line, Column: c.col, Position: c.pos,
				Value: token.Str(strings_.Intern(c.text)),
			}))

		case hintStringLiteral, hintCharLiteral:
			prefix := ""
			if len(out) > 0 && out[len(out)-1].kind == chunkString && out[len(out)-1].hint == hintNone {
				prev := &out[len(out)-1]
				for _, p := range literalPrefixes {
					if strings.HasSuffix(prev.text, p) && prefixBoundaryOK(prev.text, p) {
						prefix = p
						prev.text = prev.text[:len(prev.text)-len(p)]
						break
					}
				}
				if prev.text == "" {
					out = out[:len(out)-1]
				}
			}

			full := prefix + c.text
			kind := literalKind(c.hint, prefix)
			out = append(out, tokenChunk(token.RawToken{
				Class: token.LITERAL_CLASS, Kind: kind,
				Line: c.line, Column: c.col, Position: c.pos,
				Value: token.Str(strings_.Intern(full)),
			}))

		default:
			out = append(out, c)
		}
	}
	return out
}

// prefixBoundaryOK ensures the matched prefix is a standalone identifier
// run, not the tail of a longer one (e.g. "valueR" must not match "R").
func prefixBoundaryOK(text, prefix string) bool {
	head := text[:len(text)-len(prefix)]
	if head == "" {
		return true
	}
	last := head[len(head)-1]
	return !isIdentByte(last)
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func literalKind(h hint, prefix string) token.Kind {
	if h == hintCharLiteral {
		switch prefix {
		case "L":
			return token.WCHAR_LITERAL
		case "u":
			return token.CHAR16_LITERAL
		case "U":
			return token.CHAR32_LITERAL
		default:
			return token.CHAR_LITERAL
		}
	}
	switch prefix {
	case "L":
		return token.WSTRING_LITERAL
	case "u":
		return token.STRING16_LITERAL
	case "U":
		return token.STRING32_LITERAL
	case "u8":
		return token.STRING8_LITERAL
	case "R", "LR", "uR", "UR", "u8R":
		return token.RAW_STRING_LITERAL
	default:
		return token.STRING_LITERAL
	}
}
