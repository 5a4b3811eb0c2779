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

// Package contextualize implements Layer 2D (spec.md §4.8): per-token
// Role classification, TypeRegistry/FunctionRegistry population, and
// exec-alias expansion over a scope graph already disambiguated by
// chunkresolve.
package contextualize

import (
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/token"
)

var controlFlowKinds = map[token.Kind]bool{
	token.IF: true, token.ELSE: true, token.WHILE: true, token.FOR: true,
	token.RETURN: true, token.BREAK: true, token.CONTINUE: true,
	token.SIGNAL: true, token.EXCEPT: true, token.RAISE: true,
}

var resourceManagementKinds = map[token.Kind]bool{
	token.TRY: true, token.CATCH: true, token.FINALLY: true,
	token.RECOVER: true, token.DEFER: true,
}

var typeKeywordKinds = map[token.Kind]bool{
	token.INT8_T: true, token.INT16_T: true, token.INT32_T: true, token.INT64_T: true,
	token.UINT8_T: true, token.UINT16_T: true, token.UINT32_T: true, token.UINT64_T: true,
	token.SIZE_T: true, token.FLOAT_KW: true, token.DOUBLE_KW: true,
	token.BOOL_KW: true, token.CHAR_KW: true, token.VOID_KW: true,
	token.CLASS: true, token.STRUCT: true, token.INTERFACE: true, token.UNION: true,
	token.FUNCTION: true, token.FUNCTIONAL: true, token.DATA: true, token.PLEX: true,
	token.AUTO: true,
}

var operatorKinds = map[token.Kind]bool{
	token.PLUS: true, token.MINUS: true, token.MULTIPLY: true, token.DIVIDE: true,
	token.MODULO: true, token.EQUALS: true, token.NOT_EQUALS: true,
	token.LESS_THAN: true, token.GREATER_THAN: true, token.LESS_EQUAL: true,
	token.GREATER_EQUAL: true, token.LOGICAL_AND: true, token.LOGICAL_OR: true,
	token.LOGICAL_NOT: true, token.FIELD_LINK: true, token.BITWISE_AND: true,
	token.BITWISE_OR: true, token.BITWISE_XOR: true, token.BITWISE_NOT: true,
	token.DEREFERENCE: true, token.SCOPE_RESOLUTION: true,
	token.CAST: true, token.STATIC_CAST: true, token.DYNAMIC_CAST: true, token.SELECT: true,
}

var formattingKinds = map[token.Kind]bool{
	token.LEFT_PAREN: true, token.RIGHT_PAREN: true,
	token.LEFT_BRACE_KIND: true, token.RIGHT_BRACE_KIND: true,
	token.LEFT_BRACKET: true, token.RIGHT_BRACKET: true,
	token.SEMICOLON: true, token.COMMA: true, token.DOT: true, token.COLON: true,
	token.ARROW: true, token.SINGLE_QUOTE: true, token.HASH: true,
}

var whitespaceKinds = map[token.Kind]bool{
	token.SPACE: true, token.TAB: true, token.CARRIAGE_RETURN: true,
	token.VERTICAL_TAB: true, token.FORM_FEED: true, token.NEWLINE: true,
	token.COMMENT: true,
}

var literalKinds = map[token.Kind]bool{
	token.INT_LITERAL: true, token.UINT_LITERAL: true, token.LONG_LITERAL: true,
	token.ULONG_LITERAL: true, token.LONG_LONG_LITERAL: true, token.ULONG_LONG_LITERAL: true,
	token.FLOAT_LITERAL: true, token.DOUBLE_LITERAL: true, token.LONG_DOUBLE_LITERAL: true,
	token.CHAR_LITERAL: true, token.WCHAR_LITERAL: true, token.CHAR16_LITERAL: true,
	token.CHAR32_LITERAL: true, token.STRING_LITERAL: true, token.WSTRING_LITERAL: true,
	token.STRING8_LITERAL: true, token.STRING16_LITERAL: true, token.STRING32_LITERAL: true,
	token.RAW_STRING_LITERAL: true, token.TRUE_LITERAL: true, token.FALSE_LITERAL: true,
	token.NULLPTR_LITERAL: true,
}

// nextSignificant returns the kind of the first non-whitespace token
// after i in toks, or token.INVALID if none remains.
func nextSignificant(raw []token.RawToken, toks []token.Token, i int) token.Kind {
	for j := i + 1; j < len(toks); j++ {
		k := raw[toks[j].Index].Kind
		if whitespaceKinds[k] {
			continue
		}
		return k
	}
	return token.INVALID
}

// prevSignificant returns the kind of the first non-whitespace token
// before i in toks, or token.INVALID if none precedes it.
func prevSignificant(raw []token.RawToken, toks []token.Token, i int) token.Kind {
	for j := i - 1; j >= 0; j-- {
		k := raw[toks[j].Index].Kind
		if whitespaceKinds[k] {
			continue
		}
		return k
	}
	return token.INVALID
}

// classifyTokens assigns a Role to every token in toks using fixed
// fine-kind windows (spec.md §4.8(a)): the one-token lookahead/lookbehind
// mirrors cue/parser's p.tok/p.lit single-token-lookahead style, applied
// here to fine-kind pattern windows instead of full grammar productions.
func classifyTokens(raw []token.RawToken, toks []token.Token) []scopegraph.ContextualToken {
	out := make([]scopegraph.ContextualToken, len(toks))
	for i, t := range toks {
		k := raw[t.Index].Kind
		switch {
		case whitespaceKinds[k]:
			out[i].Role = scopegraph.RoleWhitespace
		case formattingKinds[k]:
			out[i].Role = scopegraph.RoleFormatting
		case literalKinds[k]:
			out[i].Role = scopegraph.RoleLiteralValue
		case resourceManagementKinds[k]:
			out[i].Role = scopegraph.RoleResourceManagement
		case controlFlowKinds[k]:
			out[i].Role = scopegraph.RoleControlFlow
		case typeKeywordKinds[k]:
			out[i].Role = scopegraph.RoleTypeReference
		case operatorKinds[k]:
			out[i].Role = scopegraph.RoleOperator
		case k == token.ASSIGN:
			out[i].Role = scopegraph.RoleOperator
		case k == token.EXEC_ALIAS:
			out[i].Role = scopegraph.RoleFunctionCall
		case k == token.IDENTIFIER || k == token.CHUNK:
			out[i].Role = classifyIdentifier(raw, toks, i)
		default:
			out[i].Role = scopegraph.RoleExpression
		}
	}
	return out
}

// classifyIdentifier disambiguates an IDENTIFIER/CHUNK token by its
// immediate neighbours: `Type name` -> declaration, `name(` -> call,
// `name =` -> assignment target, otherwise a plain reference.
func classifyIdentifier(raw []token.RawToken, toks []token.Token, i int) scopegraph.Role {
	next := nextSignificant(raw, toks, i)
	prev := prevSignificant(raw, toks, i)
	switch {
	case next == token.LEFT_PAREN:
		return scopegraph.RoleFunctionCall
	case next == token.ASSIGN:
		return scopegraph.RoleAssignment
	case prev == token.IDENTIFIER || prev == token.CHUNK || typeKeywordKinds[prev]:
		return scopegraph.RoleVariableDeclaration
	default:
		return scopegraph.RoleVariableReference
	}
}
