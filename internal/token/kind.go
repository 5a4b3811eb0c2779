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

package token

// RawClass is the coarse token class RawToken carries alongside its
// fine-grained Kind (spec.md §3).
type RawClass int

const (
	LEFT_BRACE RawClass = iota
	RIGHT_BRACE
	SEMICOLON_CLASS
	IDENTIFIER_CLASS
	LITERAL_CLASS
	KEYWORD_CLASS
	COMMENT_CLASS
	WHITESPACE_CLASS
	NEWLINE_CLASS
	EOF_CLASS
	INVALID_CLASS
)

// Kind is the fine-grained token kind (~150 values; spec.md §6).
type Kind int

const (
	INVALID Kind = iota

	// literal family
	INT_LITERAL
	UINT_LITERAL
	LONG_LITERAL
	ULONG_LITERAL
	LONG_LONG_LITERAL
	ULONG_LONG_LITERAL
	FLOAT_LITERAL
	DOUBLE_LITERAL
	LONG_DOUBLE_LITERAL
	CHAR_LITERAL
	WCHAR_LITERAL
	CHAR16_LITERAL
	CHAR32_LITERAL
	STRING_LITERAL
	WSTRING_LITERAL
	STRING8_LITERAL
	STRING16_LITERAL
	STRING32_LITERAL
	RAW_STRING_LITERAL
	TRUE_LITERAL
	FALSE_LITERAL
	NULLPTR_LITERAL

	// primitive-type keywords
	INT8_T
	INT16_T
	INT32_T
	INT64_T
	UINT8_T
	UINT16_T
	UINT32_T
	UINT64_T
	SIZE_T
	FLOAT_KW
	DOUBLE_KW
	BOOL_KW
	CHAR_KW
	VOID_KW

	// structural keywords
	CLASS
	STRUCT
	INTERFACE
	UNION
	FUNCTION
	FUNCTIONAL
	DATA
	PLEX

	// modifiers
	RUNTIME
	COMPTIME
	CONSTEXPR
	DEFER
	AUTO
	CONST
	SEMCONST
	STATIC
	INLINE
	VOLATILE
	DANGER
	IMPLEMENTS
	EXTERN
	MODULE
	DEFAULT
	OPEN
	CLOSED
	FUNC

	// control flow
	IF
	ELSE
	WHILE
	FOR
	RETURN
	BREAK
	CONTINUE
	TRY
	CATCH
	RECOVER
	FINALLY
	SIGNAL
	EXCEPT
	RAISE

	// casting / metaprogramming
	CAST
	STATIC_CAST
	DYNAMIC_CAST
	SELECT
	EXEC
	EXEC_ALIAS

	// operators
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	MODULO
	ASSIGN
	EQUALS
	NOT_EQUALS
	LESS_THAN
	GREATER_THAN
	LESS_EQUAL
	GREATER_EQUAL
	LOGICAL_AND
	LOGICAL_OR
	LOGICAL_NOT
	FIELD_LINK // <-
	BITWISE_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_NOT
	DEREFERENCE
	SCOPE_RESOLUTION // ::

	// punctuation
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE_KIND
	RIGHT_BRACE_KIND
	LEFT_BRACKET
	RIGHT_BRACKET
	SEMICOLON
	COMMA
	DOT
	COLON
	ARROW
	SINGLE_QUOTE
	HASH

	// whitespace
	SPACE
	TAB
	CARRIAGE_RETURN
	VERTICAL_TAB
	FORM_FEED
	NEWLINE

	// special
	IDENTIFIER
	CHUNK
	COMMENT
	EOF_TOKEN
)

var kindNames = map[Kind]string{
	INVALID: "INVALID",

	INT_LITERAL:         "INT_LITERAL",
	UINT_LITERAL:        "UINT_LITERAL",
	LONG_LITERAL:        "LONG_LITERAL",
	ULONG_LITERAL:       "ULONG_LITERAL",
	LONG_LONG_LITERAL:   "LONG_LONG_LITERAL",
	ULONG_LONG_LITERAL:  "ULONG_LONG_LITERAL",
	FLOAT_LITERAL:       "FLOAT_LITERAL",
	DOUBLE_LITERAL:      "DOUBLE_LITERAL",
	LONG_DOUBLE_LITERAL: "LONG_DOUBLE_LITERAL",
	CHAR_LITERAL:        "CHAR_LITERAL",
	WCHAR_LITERAL:       "WCHAR_LITERAL",
	CHAR16_LITERAL:      "CHAR16_LITERAL",
	CHAR32_LITERAL:      "CHAR32_LITERAL",
	STRING_LITERAL:      "STRING_LITERAL",
	WSTRING_LITERAL:     "WSTRING_LITERAL",
	STRING8_LITERAL:     "STRING8_LITERAL",
	STRING16_LITERAL:    "STRING16_LITERAL",
	STRING32_LITERAL:    "STRING32_LITERAL",
	RAW_STRING_LITERAL:  "RAW_STRING_LITERAL",
	TRUE_LITERAL:        "TRUE_LITERAL",
	FALSE_LITERAL:       "FALSE_LITERAL",
	NULLPTR_LITERAL:     "NULLPTR_LITERAL",

	IDENTIFIER: "IDENTIFIER",
	CHUNK:      "CHUNK",
	COMMENT:    "COMMENT",
	EOF_TOKEN:  "EOF_TOKEN",

	EXEC:       "EXEC",
	EXEC_ALIAS: "EXEC_ALIAS",

	LEFT_PAREN:       "LEFT_PAREN",
	RIGHT_PAREN:      "RIGHT_PAREN",
	LEFT_BRACE_KIND:  "LEFT_BRACE",
	RIGHT_BRACE_KIND: "RIGHT_BRACE",
	LEFT_BRACKET:     "LEFT_BRACKET",
	RIGHT_BRACKET:    "RIGHT_BRACKET",
	SEMICOLON:        "SEMICOLON",
	COMMA:            "COMMA",
	DOT:              "DOT",
	COLON:            "COLON",
	ARROW:            "ARROW",
	SINGLE_QUOTE:     "SINGLE_QUOTE",
	HASH:             "HASH",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "KIND"
}

// Keywords maps the fixed 62-entry keyword table (spec.md §4.4, 1E) to
// fine kinds. Identifiers not present here are scanned as EXEC_ALIAS or
// CHUNK; Layer 2C turns a remaining CHUNK into IDENTIFIER.
var Keywords = map[string]Kind{
	"int8_t": INT8_T, "int16_t": INT16_T, "int32_t": INT32_T, "int64_t": INT64_T,
	"uint8_t": UINT8_T, "uint16_t": UINT16_T, "uint32_t": UINT32_T, "uint64_t": UINT64_T,
	"size_t": SIZE_T, "float": FLOAT_KW, "double": DOUBLE_KW, "bool": BOOL_KW,
	"char": CHAR_KW, "void": VOID_KW,

	"class": CLASS, "struct": STRUCT, "interface": INTERFACE, "union": UNION,
	"function": FUNCTION, "functional": FUNCTIONAL, "data": DATA, "plex": PLEX,

	"runtime": RUNTIME, "comptime": COMPTIME, "constexpr": CONSTEXPR, "defer": DEFER,
	"auto": AUTO, "const": CONST, "semconst": SEMCONST, "static": STATIC,
	"inline": INLINE, "volatile": VOLATILE, "danger": DANGER, "implements": IMPLEMENTS,
	"extern": EXTERN, "module": MODULE, "default": DEFAULT, "open": OPEN,
	"closed": CLOSED, "func": FUNC,

	"if": IF, "else": ELSE, "while": WHILE, "for": FOR, "return": RETURN,
	"break": BREAK, "continue": CONTINUE, "try": TRY, "catch": CATCH,
	"recover": RECOVER, "finally": FINALLY, "signal": SIGNAL, "except": EXCEPT,
	"raise": RAISE,

	"cast": CAST, "static_cast": STATIC_CAST, "dynamic_cast": DYNAMIC_CAST,
	"select": SELECT, "exec": EXEC,

	"true": TRUE_LITERAL, "false": FALSE_LITERAL, "nullptr": NULLPTR_LITERAL,
}

// NumericSuffixKind resolves a number literal's base kind plus a
// case-folded suffix (spec.md §4.4, 1D) into the concrete fine kind.
func NumericSuffixKind(isFloat bool, suffix string) Kind {
	switch suffix {
	case "":
		if isFloat {
			return DOUBLE_LITERAL
		}
		return INT_LITERAL
	case "u":
		return UINT_LITERAL
	case "l":
		if isFloat {
			return LONG_DOUBLE_LITERAL
		}
		return LONG_LITERAL
	case "ll":
		return LONG_LONG_LITERAL
	case "f":
		return FLOAT_LITERAL
	case "ul", "lu":
		return ULONG_LITERAL
	case "ull", "llu":
		return ULONG_LONG_LITERAL
	}
	if isFloat {
		return DOUBLE_LITERAL
	}
	return INT_LITERAL
}
