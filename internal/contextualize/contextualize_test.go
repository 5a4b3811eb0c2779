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

package contextualize_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/cerrors"
	"cprime.dev/compiler/internal/chunkresolve"
	"cprime.dev/compiler/internal/contextualize"
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/execcompile"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/scanner"
	"cprime.dev/compiler/internal/scopegraph"
	"cprime.dev/compiler/internal/streamset"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

type fixture struct {
	store  *streamset.Store
	st     *strtbl.Table
	reg    *execalias.Registry
	types  *registry.TypeRegistry
	funcs  *registry.FunctionRegistry
	coll   *cerrors.Collector
	g      *scopegraph.Graph
	stream token.StreamID
}

func build(t *testing.T, src string) *fixture {
	t.Helper()
	st := strtbl.New()
	reg := execalias.New()
	store := streamset.New()

	raw := scanner.Scan([]byte(src), st, reg)
	stream := store.Add(raw, nil)
	g := scopegraph.Build(stream, raw, reg)
	execcompile.Compile(g, raw, st, reg)
	chunkresolve.Resolve(g, raw, st, reg)

	return &fixture{
		store:  store,
		st:     st,
		reg:    reg,
		types:  registry.NewTypeRegistry(),
		funcs:  registry.NewFunctionRegistry(),
		coll:   cerrors.NewCollector(cerrors.DefaultPolicy()),
		g:      g,
		stream: stream,
	}
}

func (f *fixture) process() {
	f.processWithBudget(100_000)
}

func (f *fixture) processWithBudget(maxExecSteps int) {
	contextualize.Process(f.g, f.store, f.stream, f.st, f.types, f.funcs, f.reg, f.coll, maxExecSteps)
}

func TestProcessClassifiesFunctionCall(t *testing.T) {
	f := build(t, "function make(int a) { return a; } make(1);")
	f.process()

	root := f.g.Scope(scopegraph.Root)
	var found bool
	for _, el := range root.Instructions {
		if el.IsScopeRef {
			continue
		}
		for i, tok := range el.Instr.Tokens {
			raw := f.store.Raw(f.stream)
			if raw[tok.Index].Kind == token.IDENTIFIER {
				found = true
				qt.Assert(t, qt.Equals(el.Instr.Contextual[i].Role, scopegraph.RoleFunctionCall))
			}
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

func TestProcessRegistersFunctionOverload(t *testing.T) {
	f := build(t, "function make(int a) { return a; }")
	f.process()

	_, ok := f.funcs.Resolve(registry.GlobalNamespace, "make", nil)
	qt.Assert(t, qt.IsNil(ok))
}

func TestProcessRegistersNamespaceHierarchy(t *testing.T) {
	f := build(t, "class widgets { function make(int a) { return a; } }")
	f.process()

	_, err := f.funcs.Resolve("widgets", "make", nil)
	qt.Assert(t, qt.IsNil(err))
}

func TestProcessExpandsTokenExecCall(t *testing.T) {
	f := build(t, `exec greet { return "int hi;" } greet();`)
	f.process()

	qt.Assert(t, qt.IsFalse(f.coll.HasErrors()))
	qt.Assert(t, qt.IsTrue(f.store.Len() > 1))

	root := f.g.Scope(scopegraph.Root)
	var sawGenerated bool
	for _, el := range root.Instructions {
		if el.IsScopeRef {
			continue
		}
		for _, tok := range el.Instr.Tokens {
			if tok.Stream != f.stream {
				sawGenerated = true
			}
		}
	}
	qt.Assert(t, qt.IsTrue(sawGenerated))
}

func TestProcessExpandsNonameExecCall(t *testing.T) {
	f := build(t, `exec greet { return "int hi;" } <>;`)
	f.process()

	qt.Assert(t, qt.IsFalse(f.coll.HasErrors()))
	qt.Assert(t, qt.IsTrue(f.store.Len() > 1))

	root := f.g.Scope(scopegraph.Root)
	var sawGenerated bool
	for _, el := range root.Instructions {
		if el.IsScopeRef {
			continue
		}
		for _, tok := range el.Instr.Tokens {
			if tok.Stream != f.stream {
				sawGenerated = true
			}
		}
	}
	qt.Assert(t, qt.IsTrue(sawGenerated))
}

func TestProcessNonameExecWithNoPrecedingExecBlockErrors(t *testing.T) {
	f := build(t, `<>;`)
	f.process()

	qt.Assert(t, qt.IsTrue(f.coll.HasErrors()))
}

func TestProcessExpandsScopeCreateExecCall(t *testing.T) {
	f := build(t, `exec make_struct { return { generated_code = "struct Point { }", integration_type = "scope_create" } } make_struct();`)
	f.process()

	qt.Assert(t, qt.IsFalse(f.coll.HasErrors()))
	qt.Assert(t, qt.IsTrue(len(f.g.Scopes) > 1))
}

func TestProcessFlagsLiteralExecInGeneratedOutput(t *testing.T) {
	f := build(t, `exec bad { return "exec nested { }" } bad();`)
	f.process()

	qt.Assert(t, qt.IsTrue(f.coll.HasErrors()))
}

func TestProcessReportsExecStepBudgetExceeded(t *testing.T) {
	f := build(t, `exec runaway { local i = 0 while true do i = i + 1 end return "x" } runaway();`)
	f.processWithBudget(100)

	qt.Assert(t, qt.IsTrue(f.coll.HasErrors()))
}

func TestProcessExpandsSpecialization(t *testing.T) {
	f := build(t, `exec tmpl { return params[1] .. ";" }
exec tmpl spec_one { int y }`)
	f.process()

	qt.Assert(t, qt.IsFalse(f.coll.HasErrors()))
}
