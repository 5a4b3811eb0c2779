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

// Package scanner implements CPrime's Layer 1 tokeniser: five discrete
// passes over a vector of ProcessingChunks, each pass narrowing the
// remaining unprocessed text until only RawTokens are left (spec.md §4.4).
package scanner

import "cprime.dev/compiler/internal/token"

// chunkKind distinguishes an already-emitted token from a still-unprocessed
// run of source text.
type chunkKind int

const (
	chunkToken chunkKind = iota
	chunkString
)

// hint records what pass 1A believes an unprocessed chunkString run to be,
// sparing later passes from re-discovering a comment or literal boundary
// they have already walked once.
type hint int

const (
	hintNone hint = iota
	hintLineComment
	hintBlockComment
	hintStringLiteral
	hintCharLiteral
)

// chunk is one element of the ProcessingChunk vector (spec.md §4.4): either
// a fully formed RawToken, or an unprocessed Text run with its hint and
// starting position.
type chunk struct {
	kind  chunkKind
	tok   token.RawToken
	text  string
	hint  hint
	line  int
	col   int
	pos   int // byte offset of text[0] in the source, for 1D/1E positioning
}

func tokenChunk(tok token.RawToken) chunk {
	return chunk{kind: chunkToken, tok: tok}
}

func stringChunk(text string, h hint, line, col, pos int) chunk {
	return chunk{kind: chunkString, text: text, hint: h, line: line, col: col, pos: pos}
}
