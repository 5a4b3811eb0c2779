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

// Package detoken reconstructs source text from a token sequence
// (spec.md §4.10). Used by Layer 2B to recover exec-block bodies and by
// Layer 2D to pass the current scope as a script argument in
// header-exec mode.
package detoken

import (
	"strconv"
	"strings"

	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

var lexemes = map[token.Kind]string{
	token.LEFT_PAREN:       "(",
	token.RIGHT_PAREN:      ")",
	token.LEFT_BRACE_KIND:  "{",
	token.RIGHT_BRACE_KIND: "}",
	token.LEFT_BRACKET:     "[",
	token.RIGHT_BRACKET:    "]",
	token.SEMICOLON:        ";",
	token.COMMA:            ",",
	token.DOT:              ".",
	token.COLON:            ":",
	token.ARROW:            "->",
	token.HASH:             "#",

	token.PLUS:             "+",
	token.MINUS:            "-",
	token.MULTIPLY:         "*",
	token.DIVIDE:           "/",
	token.MODULO:           "%",
	token.ASSIGN:           "=",
	token.EQUALS:           "==",
	token.NOT_EQUALS:       "!=",
	token.LESS_THAN:        "<",
	token.GREATER_THAN:     ">",
	token.LESS_EQUAL:       "<=",
	token.GREATER_EQUAL:    ">=",
	token.LOGICAL_AND:      "&&",
	token.LOGICAL_OR:       "||",
	token.LOGICAL_NOT:      "!",
	token.FIELD_LINK:       "<-",
	token.BITWISE_AND:      "&",
	token.BITWISE_OR:       "|",
	token.BITWISE_XOR:      "^",
	token.BITWISE_NOT:      "~",
	token.SCOPE_RESOLUTION: "::",

	token.SPACE:           " ",
	token.TAB:             "\t",
	token.CARRIAGE_RETURN: "\r",
	token.VERTICAL_TAB:    "\v",
	token.FORM_FEED:       "\f",
	token.NEWLINE:         "\n",

	token.CLASS: "class", token.STRUCT: "struct", token.INTERFACE: "interface",
	token.UNION: "union", token.FUNCTION: "function", token.FUNCTIONAL: "functional",
	token.DATA: "data", token.PLEX: "plex",

	token.RUNTIME: "runtime", token.COMPTIME: "comptime", token.CONSTEXPR: "constexpr",
	token.DEFER: "defer", token.AUTO: "auto", token.CONST: "const",
	token.SEMCONST: "semconst", token.STATIC: "static", token.INLINE: "inline",
	token.VOLATILE: "volatile", token.DANGER: "danger", token.IMPLEMENTS: "implements",
	token.EXTERN: "extern", token.MODULE: "module", token.DEFAULT: "default",
	token.OPEN: "open", token.CLOSED: "closed", token.FUNC: "func",

	token.IF: "if", token.ELSE: "else", token.WHILE: "while", token.FOR: "for",
	token.RETURN: "return", token.BREAK: "break", token.CONTINUE: "continue",
	token.TRY: "try", token.CATCH: "catch", token.RECOVER: "recover",
	token.FINALLY: "finally", token.SIGNAL: "signal", token.EXCEPT: "except",
	token.RAISE: "raise",

	token.CAST: "cast", token.STATIC_CAST: "static_cast", token.DYNAMIC_CAST: "dynamic_cast",
	token.SELECT: "select", token.EXEC: "exec",

	token.INT8_T: "int8_t", token.INT16_T: "int16_t", token.INT32_T: "int32_t", token.INT64_T: "int64_t",
	token.UINT8_T: "uint8_t", token.UINT16_T: "uint16_t", token.UINT32_T: "uint32_t", token.UINT64_T: "uint64_t",
	token.SIZE_T: "size_t", token.FLOAT_KW: "float", token.DOUBLE_KW: "double",
	token.BOOL_KW: "bool", token.CHAR_KW: "char", token.VOID_KW: "void",

	token.TRUE_LITERAL: "true", token.FALSE_LITERAL: "false", token.NULLPTR_LITERAL: "nullptr",
}

// Detokenize reconstructs source text for the raw tokens at indices,
// reading literal payloads from strtbl as needed. For tokens Layer 1
// produced from the same source (spec.md §4.10), round-trip is exact
// except that numeric literals are rendered from their parsed value (in
// decimal, without their suffix) and INVALID tokens render as empty text;
// it is not guaranteed bit-exact for arbitrary hand-built token streams.
func Detokenize(raw []token.RawToken, indices []uint32, strings_ *strtbl.Table) string {
	var b strings.Builder
	for _, idx := range indices {
		rt := raw[idx]
		b.WriteString(tokenText(rt, strings_))
	}
	return b.String()
}

// NormalizeIndent removes the common leading whitespace of all non-empty
// lines of body, per spec.md §4.6 step 4.
func NormalizeIndent(body string) string {
	lines := strings.Split(body, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common == -1 || indent < common {
			common = indent
		}
	}
	if common <= 0 {
		return body
	}
	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func tokenText(rt token.RawToken, strings_ *strtbl.Table) string {
	if lex, ok := lexemes[rt.Kind]; ok {
		return lex
	}

	switch rt.Kind {
	case token.IDENTIFIER, token.CHUNK, token.COMMENT:
		return strings_.Get(rt.Value.StringIndex())
	case token.STRING_LITERAL, token.WSTRING_LITERAL, token.STRING8_LITERAL,
		token.STRING16_LITERAL, token.STRING32_LITERAL, token.RAW_STRING_LITERAL,
		token.CHAR_LITERAL, token.WCHAR_LITERAL, token.CHAR16_LITERAL, token.CHAR32_LITERAL:
		return strings_.Get(rt.Value.StringIndex())
	case token.INT_LITERAL, token.LONG_LITERAL, token.LONG_LONG_LITERAL:
		return strconv.FormatInt(rt.Value.Int64(), 10)
	case token.UINT_LITERAL, token.ULONG_LITERAL, token.ULONG_LONG_LITERAL:
		return strconv.FormatUint(rt.Value.Uint64(), 10)
	case token.FLOAT_LITERAL, token.DOUBLE_LITERAL, token.LONG_DOUBLE_LITERAL:
		return strconv.FormatFloat(rt.Value.Float64(), 'g', -1, 64)
	case token.EOF_TOKEN:
		return ""
	}
	return ""
}
