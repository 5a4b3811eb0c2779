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

package luavm_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cprime.dev/compiler/internal/luavm"
)

func TestExecutePlainStringReturn(t *testing.T) {
	res, err := luavm.Execute(`
cprime.emit("int ")
cprime.emit_line(params[1])
return "// generated"`, []luavm.Value{"x"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.GeneratedCode, "int x\n// generated"))
	qt.Assert(t, qt.Equals(res.IntegrationType, luavm.IntegrationToken))
	qt.Assert(t, qt.IsTrue(res.IsValid))
}

func TestExecuteStructuredTableReturn(t *testing.T) {
	res, err := luavm.Execute(`
return {
  generated_code = "struct Foo {}",
  integration_type = "scope_create",
  identifier = "Foo",
  is_valid = true,
}`, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.GeneratedCode, "struct Foo {}"))
	qt.Assert(t, qt.Equals(res.IntegrationType, luavm.IntegrationScopeCreate))
	qt.Assert(t, qt.Equals(res.Identifier, "Foo"))
	qt.Assert(t, qt.IsTrue(res.IsValid))
}

func TestExecuteNoReturnUsesBufferOnly(t *testing.T) {
	res, err := luavm.Execute(`cprime.emit("just buffered")`, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.GeneratedCode, "just buffered"))
}

func TestExecuteRejectsStatementsAfterReturn(t *testing.T) {
	res, err := luavm.Execute(`
local sum = 0
for i = 1, params[1] do
  if i % 2 == 0 then
    sum = sum + i
  end
end
return tostring_sum(sum)
function tostring_sum(n)
  return n
end`, []luavm.Value{float64(6)})
	// A return must end its block, and this subset has no function
	// definitions, so the function statement after the return is a syntax
	// error and nothing runs.
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	_ = res
}

func TestExecuteWhileAndConcat(t *testing.T) {
	res, err := luavm.Execute(`
local i = 0
local out = ""
while i < 3 do
  out = out .. "a"
  i = i + 1
end
return out`, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res.GeneratedCode, "aaa"))
}

func TestExecuteRejectsCallOfUndefinedGlobal(t *testing.T) {
	_, err := luavm.Execute(`undefined_fn()`, nil)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestExecuteWithBudgetStopsRunawayLoop(t *testing.T) {
	_, err := luavm.ExecuteWithBudget(`
local i = 0
while true do
  i = i + 1
end`, nil, 1000)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestExecuteWithBudgetAllowsBoundedLoop(t *testing.T) {
	res, err := luavm.ExecuteWithBudget(`
local i = 0
while i < 3 do
  i = i + 1
end
return "done"`, nil, 1000)
	qt.Assert(t, qt.IsNil(err))
	_ = res
}
