package execcompile_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/execcompile"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
)

func TestCompileParentStoresLuaScript(t *testing.T) {
	st := strtbl.New()
	reg := execalias.New()
	src := []byte("exec make_thing { return 1 }")
	raw := scanner.Scan(src, st, reg)
	g := scopegraph.Build(0, raw, reg)

	execcompile.Compile(g, raw, st, reg)

	root := g.Scope(scopegraph.Root)
	execScopeIdx := root.Instructions[0].ScopeIndex
	lambda, ok := reg.Lambda(execScopeIdx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsFalse(lambda.IsSpecialization()))
	qt.Assert(t, qt.Not(qt.Equals(lambda.Script, "")))

	idx, ok := reg.Lookup("make_thing", nil)
	qt.Assert(t, qt.IsTrue(ok))
	scopeIdx, ok := reg.ScopeForAlias(idx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(scopeIdx, execScopeIdx))
}

func TestCompileSpecialisationPrefixesPayload(t *testing.T) {
	st := strtbl.New()
	reg := execalias.New()
	parentIdx, err := reg.RegisterAlias("make_thing")
	qt.Assert(t, qt.IsNil(err))
	reg.RegisterScopeIndex(0)
	reg.LinkAliasToScope(parentIdx, 0)
	reg.UpdateExecutableLambda(0, execalias.ExecutableLambda{Script: "return 'parent'"})

	src := []byte("exec make_thing custom_one { int32_t y = 2; }")
	raw := scanner.Scan(src, st, reg)
	g := scopegraph.Build(0, raw, reg)

	execcompile.Compile(g, raw, st, reg)

	root := g.Scope(scopegraph.Root)
	specIdx := root.Instructions[0].ScopeIndex
	lambda, ok := reg.Lambda(specIdx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(lambda.IsSpecialization()))

	parent, ok := reg.ParentOfSpecialization(specIdx)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(parent, "make_thing"))
}
