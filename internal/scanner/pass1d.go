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
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"cprime.dev/compiler/internal/token"
)

// pass1D implements spec.md §4.4's 1D: it finds number literals (a digit,
// or a '.' followed by a digit, left over after 1C peeled off the '.'
// operator case) inside each remaining plain-text chunk, except that a
// digit continuing an identifier run (as in "int32_t" or "x1") is left to
// 1E, parses the body
// with apd.Decimal so large/precise literals survive intact, and resolves
// the case-insensitive suffix into a concrete numeric Kind. Hex literals
// bypass apd.Decimal entirely (apd only parses base-10 mantissas) and are
// parsed with math/big instead, including the 'p'/'P' binary exponent of
// hex floats.
func pass1D(chunks []chunk) []chunk {
	out := make([]chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.kind != chunkString || c.hint != hintNone {
			out = append(out, c)
			continue
		}
		out = append(out, splitNumbers(c)...)
	}
	return out
}

func splitNumbers(c chunk) []chunk {
	text := c.text
	n := len(text)
	var out []chunk
	i := 0
	runStart := 0
	col := c.col

	flushRun := func(end int) {
		if end > runStart {
			out = append(out, stringChunk(text[runStart:end], hintNone, c.line, col-(end-runStart), c.pos+runStart))
		}
	}

	for i < n {
		if !startsNumber(text, i) || (i > 0 && isIdentByte(text[i-1])) {
			i++
			col++
			continue
		}
		flushRun(i)
		start := i
		startCol := col
		isHex := false
		if i+1 < n && text[i] == '0' && (text[i+1] == 'x' || text[i+1] == 'X') {
			isHex = true
			i += 2
			col += 2
		}
		isFloat := false
		for i < n && isNumberBodyByte(text[i], isHex) {
			if text[i] == '.' {
				isFloat = true
			}
			i++
			col++
		}
		expMarkers := "eE"
		if isHex {
			expMarkers = "pP"
		}
		if i < n && strings.IndexByte(expMarkers, text[i]) >= 0 {
			isFloat = true
			i++
			col++
			if i < n && (text[i] == '+' || text[i] == '-') {
				i++
				col++
			}
			for i < n && isDigitByte(text[i]) {
				i++
				col++
			}
		}
		body := text[start:i]

		suffixStart := i
		for i < n && isSuffixByte(text[i]) {
			i++
			col++
		}
		suffix := strings.ToLower(text[suffixStart:i])

		kind := token.NumericSuffixKind(isFloat, suffix)
		out = append(out, tokenChunk(token.RawToken{
			Class: token.LITERAL_CLASS, Kind: kind, Line: c.line, Column: startCol, Position: c.pos + start,
			Value: parseNumericValue(body, isHex, isFloat, kind),
		}))
		runStart = i
	}
	flushRun(n)
	return out
}

func startsNumber(text string, i int) bool {
	if isDigitByte(text[i]) {
		return true
	}
	return text[i] == '.' && i+1 < len(text) && isDigitByte(text[i+1])
}

func isNumberBodyByte(b byte, isHex bool) bool {
	if isDigitByte(b) || b == '.' {
		return true
	}
	if isHex {
		return (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
	}
	return false
}

func isSuffixByte(b byte) bool {
	switch b {
	case 'u', 'U', 'l', 'L', 'f', 'F':
		return true
	}
	return false
}

// parseNumericValue narrows a literal body into the concrete typed
// LiteralValue the suffix/kind demands. Decimal bodies go through
// apd.Decimal so large/precise literals survive intact; hex bodies (body
// still carries its "0x"/"0X" prefix) go through parseHexNumericValue
// instead, since apd.NewFromString only accepts a base-10 mantissa and
// errors on any hex digit or 'x'.
func parseNumericValue(body string, isHex, isFloat bool, kind token.Kind) token.LiteralValue {
	if isHex {
		return parseHexNumericValue(body[2:], isFloat, kind)
	}

	d, _, err := apd.NewFromString(body)
	if err != nil {
		return token.NoLiteralValue()
	}

	if isFloat || kind == token.FLOAT_LITERAL || kind == token.DOUBLE_LITERAL || kind == token.LONG_DOUBLE_LITERAL {
		f, err := d.Float64()
		if err != nil {
			return token.NoLiteralValue()
		}
		if kind == token.FLOAT_LITERAL {
			return token.F32(float32(f))
		}
		return token.F64(f)
	}

	return intLiteralFromBig(d.Coeff, d.Negative, kind)
}

// parseHexNumericValue parses digits, the literal body with its "0x"/"0X"
// prefix already stripped, as a C99-style hex integer or hex float
// ("1A", "1.8p3", "FFp-2"): the mantissa is split on '.', each half read
// as base-16 via math/big, and a trailing 'p'/'P' exponent is a power of
// two applied with big.Float.SetMantExp, not a power of ten.
func parseHexNumericValue(digits string, isFloat bool, kind token.Kind) token.LiteralValue {
	mantissa := digits
	exp := 0
	hasExp := false
	if idx := strings.IndexAny(digits, "pP"); idx >= 0 {
		mantissa = digits[:idx]
		e, err := strconv.ParseInt(digits[idx+1:], 10, 32)
		if err != nil {
			return token.NoLiteralValue()
		}
		exp = int(e)
		hasExp = true
	}

	intPart, fracPart := mantissa, ""
	if dot := strings.IndexByte(mantissa, '.'); dot >= 0 {
		intPart, fracPart = mantissa[:dot], mantissa[dot+1:]
	}

	intBig := new(big.Int)
	if intPart != "" {
		if _, ok := intBig.SetString(intPart, 16); !ok {
			return token.NoLiteralValue()
		}
	}

	asFloat := isFloat || hasExp || fracPart != "" ||
		kind == token.FLOAT_LITERAL || kind == token.DOUBLE_LITERAL || kind == token.LONG_DOUBLE_LITERAL
	if !asFloat {
		return intLiteralFromBig(intBig, false, kind)
	}

	mant := new(big.Float).SetPrec(200).SetInt(intBig)
	if fracPart != "" {
		fracBig := new(big.Int)
		if _, ok := fracBig.SetString(fracPart, 16); !ok {
			return token.NoLiteralValue()
		}
		scale := new(big.Int).Exp(big.NewInt(16), big.NewInt(int64(len(fracPart))), nil)
		frac := new(big.Float).SetPrec(200).Quo(
			new(big.Float).SetPrec(200).SetInt(fracBig),
			new(big.Float).SetPrec(200).SetInt(scale),
		)
		mant.Add(mant, frac)
	}
	result := new(big.Float).SetPrec(200).SetMantExp(mant, exp)
	f, _ := result.Float64()
	if kind == token.FLOAT_LITERAL {
		return token.F32(float32(f))
	}
	return token.F64(f)
}

// intLiteralFromBig narrows an arbitrary-precision integer magnitude into
// the concrete typed LiteralValue an unsigned or signed integer kind
// demands, shared by the decimal and hex literal paths.
func intLiteralFromBig(v *big.Int, negative bool, kind token.Kind) token.LiteralValue {
	switch kind {
	case token.UINT_LITERAL, token.ULONG_LITERAL, token.ULONG_LONG_LITERAL:
		if v.IsInt64() && !negative {
			return token.U64(uint64(v.Int64()))
		}
		u, err := strconv.ParseUint(v.String(), 10, 64)
		if err != nil {
			return token.NoLiteralValue()
		}
		return token.U64(u)
	default:
		if v.IsInt64() {
			n := v.Int64()
			if negative {
				n = -n
			}
			return token.I64(n)
		}
		return token.NoLiteralValue()
	}
}
