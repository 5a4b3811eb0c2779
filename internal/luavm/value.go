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

import "fmt"

// Value is any runtime value this subset knows about: nil, bool, float64,
// string, *Table, or Builtin.
type Value any

// Builtin is a host function exposed to scripts, e.g. cprime.emit.
type Builtin func(args []Value) ([]Value, error)

// Table is a Lua table restricted to this subset's needs: a string/number
// keyed map, with Len defined as the length of the 1-based integer run
// rooted at key 1 (Lua's "border" semantics for the common array case).
type Table struct {
	hash map[any]Value
}

// NewTable returns an empty table.
func NewTable() *Table { return &Table{hash: map[any]Value{}} }

func normalizeKey(key Value) any {
	if f, ok := key.(float64); ok {
		return f
	}
	return key
}

// Get returns the value stored at key, or nil if absent.
func (t *Table) Get(key Value) Value {
	return t.hash[normalizeKey(key)]
}

// Set stores v at key, or removes the entry when v is nil.
func (t *Table) Set(key Value, v Value) {
	k := normalizeKey(key)
	if v == nil {
		delete(t.hash, k)
		return
	}
	t.hash[k] = v
}

// Len reports the length of the contiguous integer-keyed run starting at 1.
func (t *Table) Len() int {
	n := 0
	for {
		if _, ok := t.hash[float64(n+1)]; !ok {
			break
		}
		n++
	}
	return n
}

// Append sets the next integer index past Len to v.
func (t *Table) Append(v Value) {
	t.Set(float64(t.Len()+1), v)
}

// RuntimeError reports a failure during script execution.
type RuntimeError struct {
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("lua runtime error at line %d: %s", e.Line, e.Msg) }

func truthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Table:
		return "table"
	case Builtin:
		return "function"
	default:
		return "userdata"
	}
}

func toNumber(v Value) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(x, "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// toDisplayString renders v the way Lua's tostring/concat coercion would
// for the value kinds this subset supports.
func toDisplayString(v Value) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x)), true
		}
		return fmt.Sprintf("%g", x), true
	case bool:
		if x {
			return "true", true
		}
		return "false", true
	case nil:
		return "nil", true
	}
	return "", false
}
