package strtbl_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/strtbl"
)

func TestInternRoundTrip(t *testing.T) {
	tbl := strtbl.New()
	a := tbl.Intern("hello")
	b := tbl.Intern("world")
	c := tbl.Intern("hello")

	qt.Assert(t, qt.Equals(a, c))
	qt.Assert(t, qt.Not(qt.Equals(a, b)))
	qt.Assert(t, qt.Equals(tbl.Get(a), "hello"))
	qt.Assert(t, qt.Equals(tbl.Get(b), "world"))
}

func TestInsertionOrder(t *testing.T) {
	tbl := strtbl.New()
	first := tbl.Intern("alpha")
	second := tbl.Intern("beta")
	qt.Assert(t, qt.Equals(int(first), 0))
	qt.Assert(t, qt.Equals(int(second), 1))
}

func TestStats(t *testing.T) {
	tbl := strtbl.New()
	tbl.Intern("ab")
	tbl.Intern("abcd")
	tbl.Intern("ab") // duplicate, no-op

	s := tbl.Stats()
	qt.Assert(t, qt.Equals(s.UniqueCount, 2))
	qt.Assert(t, qt.Equals(s.TotalChars, 6))
	qt.Assert(t, qt.Equals(s.LongestChars, 4))
	qt.Assert(t, qt.Equals(s.AverageChars(), 3.0))
}

func TestIsValid(t *testing.T) {
	tbl := strtbl.New()
	idx := tbl.Intern("x")
	qt.Assert(t, qt.IsTrue(tbl.IsValid(idx)))
	qt.Assert(t, qt.IsFalse(tbl.IsValid(idx+100)))
}
