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

package driver_test

import (
	"context"
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/config"
	"cprime.dev/compiler/internal/driver"
	"cprime.dev/compiler/internal/registry"
	"cprime.dev/compiler/internal/source"
)

func TestCompileSingleFileRegistersFunction(t *testing.T) {
	res, err := driver.Compile(context.Background(), []source.Source{
		source.StringSource{Name: "a.cp", Src: "function make(int a) { return a; } make(1);"},
	}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(res.Errors.HasErrors()))

	_, rerr := res.Funcs.Resolve(registry.GlobalNamespace, "make", nil)
	qt.Assert(t, qt.IsNil(rerr))
}

func TestCompileSharesRegistriesAcrossFiles(t *testing.T) {
	res, err := driver.Compile(context.Background(), []source.Source{
		source.StringSource{Name: "decl.cp", Src: "function make(int a) { return a; }"},
		source.StringSource{Name: "use.cp", Src: "make(1);"},
	}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(res.Errors.HasErrors()))
	qt.Assert(t, qt.Equals(len(res.Units), 2))
}

func TestCompileResolvesErrorPositions(t *testing.T) {
	res, err := driver.Compile(context.Background(), []source.Source{
		source.StringSource{Name: "bad.cp", Src: "undeclared_thing(1);"},
	}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(res.Errors.HasErrors()))

	for _, rec := range res.Errors.Records() {
		qt.Assert(t, qt.IsTrue(rec.Position().IsValid()))
	}
}
