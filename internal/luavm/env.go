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

package luavm

// budget bounds how many blocks a single Execute call may enter, catching
// runaway `while`/`for` loops in a generated script. It is shared by
// pointer across every Env descended from the same global scope.
type budget struct {
	max   int
	spent int
}

// Env is a lexical scope: a variable map with a link to its parent. The
// outermost Env (parent == nil) holds globals.
type Env struct {
	vars   map[string]Value
	parent *Env
	budget *budget
}

// NewGlobalEnv returns a fresh, parentless Env for use as script globals,
// with no step budget.
func NewGlobalEnv() *Env {
	return &Env{vars: map[string]Value{}}
}

// NewBudgetedGlobalEnv is NewGlobalEnv with a cap on the number of blocks
// (the top-level chunk, loop bodies, if-branches, do-blocks) the script may
// enter.
func NewBudgetedGlobalEnv(maxSteps int) *Env {
	e := NewGlobalEnv()
	if maxSteps > 0 {
		e.budget = &budget{max: maxSteps}
	}
	return e
}

// step charges one block entry against e's budget, if any.
func (e *Env) step() error {
	if e.budget == nil {
		return nil
	}
	e.budget.spent++
	if e.budget.spent > e.budget.max {
		return &RuntimeError{Msg: "exec script exceeded its step budget"}
	}
	return nil
}

// child returns a new Env nested under e, for a block's local scope.
func (e *Env) child() *Env {
	return &Env{vars: map[string]Value{}, parent: e, budget: e.budget}
}

// lookup searches e and its ancestors for name.
func (e *Env) lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// defineLocal binds name in e's own scope, shadowing any outer binding.
func (e *Env) defineLocal(name string, v Value) {
	e.vars[name] = v
}

// assign sets an existing binding for name, searching outward from e; if
// name is bound nowhere, it is created as a global (Lua's implicit-global
// assignment semantics).
func (e *Env) assign(name string, v Value) {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return
		}
		if s.parent == nil {
			s.vars[name] = v
			return
		}
	}
}
