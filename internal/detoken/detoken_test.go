package detoken_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/detoken"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/strtbl"
)

func TestDetokenizeRoundTripsLayer1Output(t *testing.T) {
	src := "int32_t x = 1;"
	st := strtbl.New()
	raw := scanner.Scan([]byte(src), st, nil)

	indices := make([]uint32, len(raw)-1) // drop trailing EOF
	for i := range indices {
		indices[i] = uint32(i)
	}
	got := detoken.Detokenize(raw, indices, st)
	qt.Assert(t, qt.Equals(got, src))
}

func TestNormalizeIndentRemovesCommonPrefix(t *testing.T) {
	body := "  local a = 1\n  local b = 2\n"
	got := detoken.NormalizeIndent(body)
	qt.Assert(t, qt.Equals(got, "local a = 1\nlocal b = 2\n"))
}

func TestNormalizeIndentIgnoresBlankLines(t *testing.T) {
	body := "    x = 1\n\n    y = 2\n"
	got := detoken.NormalizeIndent(body)
	qt.Assert(t, qt.Equals(got, "x = 1\n\ny = 2\n"))
}
