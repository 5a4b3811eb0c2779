package execalias_test

import (
	"errors"
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/token"
)

func TestRegisterAliasDuplicateGlobal(t *testing.T) {
	r := execalias.New()
	_, err := r.RegisterAlias("make_getter")
	qt.Assert(t, qt.IsNil(err))

	_, err = r.RegisterAlias("make_getter")
	var dup *execalias.DuplicateAliasError
	qt.Assert(t, qt.IsTrue(errors.As(err, &dup)))
}

func TestRegisterNamespacedAliasAfterGlobalConflicts(t *testing.T) {
	r := execalias.New()
	_, err := r.RegisterAlias("make_getter")
	qt.Assert(t, qt.IsNil(err))

	_, err = r.RegisterNamespacedAlias([]string{"net", "make_getter"})
	var conflict *execalias.GlobalConflictError
	qt.Assert(t, qt.IsTrue(errors.As(err, &conflict)))
}

func TestLookupGlobalAlwaysWins(t *testing.T) {
	r := execalias.New()
	global, err := r.RegisterAlias("trace")
	qt.Assert(t, qt.IsNil(err))

	idx, ok := r.Lookup("trace", []string{"net", "tcp"})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(idx, global))
}

func TestLookupLongestNamespacePrefixWins(t *testing.T) {
	r := execalias.New()
	rootIdx, err := r.RegisterNamespacedAlias([]string{"net", "make_getter"})
	qt.Assert(t, qt.IsNil(err))
	tcpIdx, err := r.RegisterNamespacedAlias([]string{"net", "tcp", "make_getter"})
	qt.Assert(t, qt.IsNil(err))

	idx, ok := r.Lookup("make_getter", []string{"net", "tcp", "conn"})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(idx, tcpIdx))

	idx, ok = r.Lookup("make_getter", []string{"net", "udp"})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(idx, rootIdx))

	_, ok = r.Lookup("make_getter", []string{"gfx"})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestScopeLambdaRoundTrip(t *testing.T) {
	r := execalias.New()
	idx, err := r.RegisterAlias("make_getter")
	qt.Assert(t, qt.IsNil(err))
	r.RegisterScopeIndex(7)
	r.LinkAliasToScope(idx, 7)

	lambda := execalias.ExecutableLambda{Script: "return 'x'"}
	r.UpdateExecutableLambda(7, lambda)

	got, ok := r.Lambda(7)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got.Script, lambda.Script))
	qt.Assert(t, qt.IsFalse(got.IsSpecialization()))

	scope, ok := r.ScopeForAlias(idx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(scope, uint32(7)))
}

func TestSpecializationPayload(t *testing.T) {
	lambda := execalias.NewSpecializationLambda("int x = 1;")
	qt.Assert(t, qt.IsTrue(lambda.IsSpecialization()))
	qt.Assert(t, qt.Equals(lambda.SpecializationBody(), "int x = 1;"))
}

func TestLinkSpecializationToParent(t *testing.T) {
	r := execalias.New()
	r.LinkSpecializationToParent(3, "make_getter")
	parent, ok := r.ParentOfSpecialization(3)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(parent, "make_getter"))
}

func TestUnregisteredAliases(t *testing.T) {
	r := execalias.New()
	used, err := r.RegisterAlias("trace")
	qt.Assert(t, qt.IsNil(err))
	_, err = r.RegisterAlias("unused_one")
	qt.Assert(t, qt.IsNil(err))

	called := map[token.ExecAliasIndex]bool{used: true}
	unused := r.UnregisteredAliases(called)
	qt.Assert(t, qt.DeepEquals(unused, []string{"unused_one"}))
}
