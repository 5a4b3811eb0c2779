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

// Package luavm is a small, hand-written interpreter for the Lua subset
// spec.md §4.9's exec ABI requires: variables, table/array literals,
// string/number literals and concatenation, if/for/while, function calls,
// and a single `return`. It is not a general Lua 5.3 implementation.
package luavm

// TokenKind classifies a lexical token.
type TokenKind int

const (
	ErrorToken TokenKind = iota
	EOFToken

	NameToken
	NumberToken
	StringToken

	// keywords
	KwAnd
	KwBreak
	KwDo
	KwElse
	KwElseif
	KwEnd
	KwFalse
	KwFor
	KwFunction
	KwIf
	KwIn
	KwLocal
	KwNil
	KwNot
	KwOr
	KwReturn
	KwThen
	KwTrue
	KwWhile

	// symbols
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Hash
	Eq
	NotEq
	LessEq
	GreaterEq
	Less
	Greater
	Assign
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Colon
	Comma
	Dot
	Concat // ..
	Ellipsis
)

var keywords = map[string]TokenKind{
	"and": KwAnd, "break": KwBreak, "do": KwDo, "else": KwElse,
	"elseif": KwElseif, "end": KwEnd, "false": KwFalse, "for": KwFor,
	"function": KwFunction, "if": KwIf, "in": KwIn, "local": KwLocal,
	"nil": KwNil, "not": KwNot, "or": KwOr, "return": KwReturn,
	"then": KwThen, "true": KwTrue, "while": KwWhile,
}

// Token is one lexical unit plus its source line, for error messages.
type Token struct {
	Kind TokenKind
	Text string
	Num  float64
	Line int
}
