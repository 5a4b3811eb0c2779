package scanner_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

func kinds(toks []token.RawToken) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanStructuralAndKeywords(t *testing.T) {
	src := []byte("class Foo { int32_t x = 1; }")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	got := kinds(toks)
	qt.Assert(t, qt.Equals(got[0], token.CLASS))
	qt.Assert(t, qt.Equals(got[1], token.SPACE))
	qt.Assert(t, qt.Equals(got[len(got)-1], token.EOF_TOKEN))

	var sawLeftBrace, sawSemicolon bool
	for _, k := range got {
		if k == token.LEFT_BRACE_KIND {
			sawLeftBrace = true
		}
		if k == token.SEMICOLON {
			sawSemicolon = true
		}
	}
	qt.Assert(t, qt.IsTrue(sawLeftBrace))
	qt.Assert(t, qt.IsTrue(sawSemicolon))
}

func TestScanStringLiteralWithPrefix(t *testing.T) {
	src := []byte(`u8"hello"`)
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	var found bool
	for _, tok := range toks {
		if tok.Kind == token.STRING8_LITERAL {
			found = true
			qt.Assert(t, qt.Equals(st.Get(tok.Value.StringIndex()), `u8"hello"`))
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

func TestScanNumericSuffixes(t *testing.T) {
	src := []byte("42ull 3.14f 7")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	var got []token.Kind
	for _, tok := range toks {
		if tok.Class == token.LITERAL_CLASS {
			got = append(got, tok.Kind)
		}
	}
	qt.Assert(t, qt.DeepEquals(got, []token.Kind{token.ULONG_LONG_LITERAL, token.FLOAT_LITERAL, token.INT_LITERAL}))
}

func TestScanOperatorsLongestMatch(t *testing.T) {
	src := []byte("a == b && c->d")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	var ops []token.Kind
	for _, tok := range toks {
		switch tok.Kind {
		case token.EQUALS, token.LOGICAL_AND, token.ARROW:
			ops = append(ops, tok.Kind)
		}
	}
	qt.Assert(t, qt.DeepEquals(ops, []token.Kind{token.EQUALS, token.LOGICAL_AND, token.ARROW}))
}

func TestScanDotBeforeDigitIsNotAnOperator(t *testing.T) {
	src := []byte(".5")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	for _, tok := range toks {
		qt.Assert(t, qt.Not(qt.Equals(tok.Kind, token.DOT)))
	}
}

func TestScanHexIntegerLiteralHasParsedValue(t *testing.T) {
	src := []byte("0x1A")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	qt.Assert(t, qt.Equals(toks[0].Kind, token.INT_LITERAL))
	qt.Assert(t, qt.Equals(toks[0].Value.Tag, token.I64Value))
	qt.Assert(t, qt.Equals(toks[0].Value.Int64(), int64(26)))
}

func TestScanHexUnsignedLiteralHasParsedValue(t *testing.T) {
	src := []byte("0xFFu")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	qt.Assert(t, qt.Equals(toks[0].Kind, token.UINT_LITERAL))
	qt.Assert(t, qt.Equals(toks[0].Value.Tag, token.U64Value))
	qt.Assert(t, qt.Equals(toks[0].Value.Uint64(), uint64(255)))
}

func TestScanHexFloatLiteralHasParsedValue(t *testing.T) {
	src := []byte("0x1.8p3")
	st := strtbl.New()
	toks := scanner.Scan(src, st, nil)

	qt.Assert(t, qt.Equals(toks[0].Kind, token.DOUBLE_LITERAL))
	qt.Assert(t, qt.Equals(toks[0].Value.Tag, token.F64Value))
	// 0x1.8p3 == 1.5 * 2^3 == 12.
	qt.Assert(t, qt.Equals(toks[0].Value.Float64(), 12.0))
}

func TestScanExecAliasResolvedInline(t *testing.T) {
	reg := execalias.New()
	_, err := reg.RegisterAlias("make_getter")
	qt.Assert(t, qt.IsNil(err))

	src := []byte("make_getter")
	st := strtbl.New()
	toks := scanner.Scan(src, st, reg)

	qt.Assert(t, qt.Equals(toks[0].Kind, token.EXEC_ALIAS))
}

func TestScanUnknownIdentifierBecomesChunk(t *testing.T) {
	src := []byte("widget")
	st := strtbl.New()
	toks := scanner.Scan(src, st, execalias.New())

	qt.Assert(t, qt.Equals(toks[0].Kind, token.CHUNK))
	qt.Assert(t, qt.Equals(st.Get(toks[0].Value.StringIndex()), "widget"))
}
