package chunkresolve_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/chunkresolve"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/execcompile"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

func TestResolveRewritesChunkToExecAlias(t *testing.T) {
	st := strtbl.New()
	reg := execalias.New()

	// make_thing is declared as an exec block further down the file, so the
	// call site above it is still a CHUNK after Layer 1. Layer 2B must run
	// before Layer 2C registers it.
	src := []byte("make_thing(); exec make_thing { return 1 }")
	raw := scanner.Scan(src, st, reg)
	g := scopegraph.Build(0, raw, reg)
	execcompile.Compile(g, raw, st, reg)

	root := g.Scope(scopegraph.Root)
	callTok := root.Instructions[0].Instr.Tokens[0]
	qt.Assert(t, qt.Equals(raw[callTok.Index].Kind, token.CHUNK))

	chunkresolve.Resolve(g, raw, st, reg)

	qt.Assert(t, qt.Equals(raw[callTok.Index].Kind, token.EXEC_ALIAS))
	idx, ok := reg.Lookup("make_thing", nil)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(raw[callTok.Index].Value.ExecAliasIndex(), idx))
}

func TestResolvePromotesUnknownChunkToIdentifier(t *testing.T) {
	st := strtbl.New()
	reg := execalias.New()

	src := []byte("some_unknown_thing;")
	raw := scanner.Scan(src, st, reg)
	g := scopegraph.Build(0, raw, reg)

	root := g.Scope(scopegraph.Root)
	tok := root.Instructions[0].Instr.Tokens[0]
	qt.Assert(t, qt.Equals(raw[tok.Index].Kind, token.CHUNK))

	chunkresolve.Resolve(g, raw, st, reg)

	qt.Assert(t, qt.Equals(raw[tok.Index].Kind, token.IDENTIFIER))
}

func TestResolveHonoursNamespacedAlias(t *testing.T) {
	st := strtbl.New()
	reg := execalias.New()
	_, err := reg.RegisterNamespacedAlias([]string{"widgets", "make_thing"})
	qt.Assert(t, qt.IsNil(err))

	src := []byte("class widgets { make_thing(); }")
	raw := scanner.Scan(src, st, reg)
	g := scopegraph.Build(0, raw, reg)

	chunkresolve.Resolve(g, raw, st, reg)

	classScope := g.Scope(1)
	qt.Assert(t, qt.DeepEquals(classScope.NamespaceContext, []string{"widgets"}))
	// Tokens[0] is the SPACE after '{'; the call name follows it.
	callTok := classScope.Instructions[0].Instr.Tokens[1]
	qt.Assert(t, qt.Equals(raw[callTok.Index].Kind, token.EXEC_ALIAS))
}
