package cerrors_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/token"
)

func TestAddSuppressesPolicySeverity(t *testing.T) {
	policy := cerrors.DefaultPolicy()
	policy[cerrors.AmbiguousOperatorContext] = cerrors.SeveritySuppress
	c := cerrors.NewCollector(policy)

	c.Add(cerrors.AmbiguousOperatorContext, 0, 0, "ambiguous operator")
	c.Add(cerrors.UnresolvedIdentifier, 0, 1, "unresolved %q", "foo")

	records := c.Records()
	qt.Assert(t, qt.HasLen(records, 1))
	qt.Assert(t, qt.Equals(records[0].Kind, cerrors.UnresolvedIdentifier))
}

func TestResolvePopulatesPosition(t *testing.T) {
	c := cerrors.NewCollector(nil)
	c.Add(cerrors.UndeclaredVariable, 0, 2, "undeclared variable %q", "x")

	raw := []token.RawToken{
		{Position: 0}, {Position: 2}, {Position: 5},
	}
	f := token.NewFile("a.cp", 20)
	f.SetLinesForContent([]byte("abc\nxy\nzzzzzzzzzzzzz"))

	c.Resolve([][]token.RawToken{raw}, []*token.File{f})

	records := c.Records()
	qt.Assert(t, qt.HasLen(records, 1))
	qt.Assert(t, qt.IsTrue(records[0].Position().IsValid()))
}

func TestErrReturnsNilWhenEmpty(t *testing.T) {
	c := cerrors.NewCollector(nil)
	qt.Assert(t, qt.IsNil(c.Err()))
}

func TestPrintFormatsEachRecord(t *testing.T) {
	c := cerrors.NewCollector(nil)
	c.Add(cerrors.IncompleteStatement, 0, 0, "missing semicolon")
	c.Add(cerrors.InvalidFunctionCall, 0, 1, "malformed call to %q", "foo")

	var b strings.Builder
	cerrors.Print(&b, c.Err(), nil)
	out := b.String()
	qt.Assert(t, qt.StringContains(out, "missing semicolon"))
	qt.Assert(t, qt.StringContains(out, `malformed call to "foo"`))
}

func TestHasErrorsReflectsSeverity(t *testing.T) {
	policy := cerrors.DefaultPolicy()
	policy[cerrors.AmbiguousOperatorContext] = cerrors.SeverityWarning
	c := cerrors.NewCollector(policy)
	c.Add(cerrors.AmbiguousOperatorContext, 0, 0, "ambiguous")
	qt.Assert(t, qt.IsFalse(c.HasErrors()))

	c.Add(cerrors.UndeclaredVariable, 0, 1, "undeclared")
	qt.Assert(t, qt.IsTrue(c.HasErrors()))
}
