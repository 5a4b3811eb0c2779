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

func TestParseLocalAndReturn(t *testing.T) {
	block, err := luavm.Parse(`local x = 1
return x`)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(block.Stats, 2))
}

func TestParseIfElseifElse(t *testing.T) {
	_, err := luavm.Parse(`
if x == 1 then
  return "a"
elseif x == 2 then
  return "b"
else
  return "c"
end`)
	qt.Assert(t, qt.IsNil(err))
}

func TestParseRejectsUnterminatedBlock(t *testing.T) {
	_, err := luavm.Parse(`if true then return 1`)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
}

func TestParseTableConstructor(t *testing.T) {
	_, err := luavm.Parse(`local t = { 1, 2, name = "x", [10] = "y" }
return t`)
	qt.Assert(t, qt.IsNil(err))
}

func TestParseForAndWhile(t *testing.T) {
	_, err := luavm.Parse(`
local sum = 0
for i = 1, 10 do
  sum = sum + i
end
local n = 0
while n < 3 do
  n = n + 1
end
return sum`)
	qt.Assert(t, qt.IsNil(err))
}
