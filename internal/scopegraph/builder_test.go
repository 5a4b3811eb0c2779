package scopegraph_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

func TestBuildNestedScopes(t *testing.T) {
	src := []byte("class Foo { int32_t x = 1; }")
	st := strtbl.New()
	raw := scanner.Scan(src, st, nil)

	g := scopegraph.Build(0, raw, nil)

	qt.Assert(t, qt.Equals(len(g.Scopes), 2))
	root := g.Scope(scopegraph.Root)
	qt.Assert(t, qt.Equals(len(root.Instructions), 1))
	qt.Assert(t, qt.IsTrue(root.Instructions[0].IsScopeRef))

	child := g.Scope(root.Instructions[0].ScopeIndex)
	qt.Assert(t, qt.Equals(child.ParentIndex, scopegraph.Root))
	qt.Assert(t, qt.IsFalse(child.IsExec))
	qt.Assert(t, qt.Equals(len(child.Instructions), 1))
	qt.Assert(t, qt.Equals(child.Footer.Kind, scopegraph.FooterInstruction))
}

func TestBuildExecScopeSemicolonIsNotBoundary(t *testing.T) {
	src := []byte(`exec make_thing { local a = 1; local b = 2; }`)
	st := strtbl.New()
	reg := execalias.New()
	_, err := reg.RegisterAlias("make_thing")
	qt.Assert(t, qt.IsNil(err))
	raw := scanner.Scan(src, st, reg)

	g := scopegraph.Build(0, raw, reg)
	root := g.Scope(scopegraph.Root)
	qt.Assert(t, qt.Equals(len(root.Instructions), 1))

	exec := g.Scope(root.Instructions[0].ScopeIndex)
	qt.Assert(t, qt.IsTrue(exec.IsExec))
	// Both semicolons inside the exec body are accumulated into the
	// single body instruction, not treated as instruction boundaries.
	qt.Assert(t, qt.Equals(len(exec.Instructions), 1))

	lambda, ok := reg.Lambda(root.Instructions[0].ScopeIndex)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(lambda.Script, ""))
}

func TestBuildTrailingCacheFlushesToRoot(t *testing.T) {
	src := []byte("int32_t x = 1")
	st := strtbl.New()
	raw := scanner.Scan(src, st, nil)

	g := scopegraph.Build(0, raw, nil)
	root := g.Scope(scopegraph.Root)
	qt.Assert(t, qt.Equals(len(root.Instructions), 1))
	qt.Assert(t, qt.IsFalse(root.Instructions[0].IsScopeRef))
}

func TestBuildUsesStreamIDOnEveryToken(t *testing.T) {
	src := []byte("x;")
	st := strtbl.New()
	raw := scanner.Scan(src, st, nil)

	g := scopegraph.Build(token.StreamID(3), raw, nil)
	root := g.Scope(scopegraph.Root)
	for _, tok := range root.Instructions[0].Instr.Tokens {
		qt.Assert(t, qt.Equals(tok.Stream, token.StreamID(3)))
	}
}
