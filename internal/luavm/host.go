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

import "strings"

// IntegrationType names how a Result's generated code re-enters the
// compiler, per the exec ABI's integration-type switch.
type IntegrationType string

const (
	IntegrationToken       IntegrationType = "token"
	IntegrationScopeInsert IntegrationType = "scope_insert"
	IntegrationScopeCreate IntegrationType = "scope_create"
)

// Result is the outcome of running one exec script. A script that returns
// a plain string produces GeneratedCode with IntegrationType defaulted to
// "token" and IsValid true. A script that returns a table with a
// generated_code field produces a Result populated from that table's
// generated_code/integration_type/identifier/is_valid fields, superseding
// anything written via cprime.emit. Both are valid script contracts; a
// script picks whichever shape fits what it is generating.
type Result struct {
	GeneratedCode   string
	IntegrationType IntegrationType
	Identifier      string
	IsValid         bool
}

// Execute parses and runs script as one Lua chunk. params[i] is exposed
// to the script as the 1-indexed table `params`; cprime.emit and
// cprime.emit_line append to an internal buffer that backs the plain
// string-return contract.
func Execute(script string, params []Value) (Result, error) {
	return ExecuteWithBudget(script, params, 0)
}

// ExecuteWithBudget is Execute with a cap on the number of blocks the
// script may enter (0 means unlimited), for bounding a misbehaving
// generator's while/for loops.
func ExecuteWithBudget(script string, params []Value, maxSteps int) (Result, error) {
	block, err := Parse(script)
	if err != nil {
		return Result{}, err
	}

	var buf strings.Builder
	globals := NewBudgetedGlobalEnv(maxSteps)
	globals.defineLocal("params", paramsTable(params))
	globals.defineLocal("cprime", cprimeTable(&buf))

	rets, err := Run(block, globals)
	if err != nil {
		return Result{}, err
	}

	return resultFromReturn(rets, buf.String()), nil
}

func paramsTable(params []Value) *Table {
	t := NewTable()
	for _, p := range params {
		t.Append(p)
	}
	return t
}

func cprimeTable(buf *strings.Builder) *Table {
	t := NewTable()
	t.Set("emit", Builtin(func(args []Value) ([]Value, error) {
		for _, a := range args {
			s, ok := toDisplayString(a)
			if !ok {
				return nil, &RuntimeError{Msg: "cprime.emit: argument is not convertible to a string"}
			}
			buf.WriteString(s)
		}
		return nil, nil
	}))
	t.Set("emit_line", Builtin(func(args []Value) ([]Value, error) {
		for _, a := range args {
			s, ok := toDisplayString(a)
			if !ok {
				return nil, &RuntimeError{Msg: "cprime.emit_line: argument is not convertible to a string"}
			}
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		return nil, nil
	}))
	return t
}

func resultFromReturn(rets []Value, buffered string) Result {
	if len(rets) == 0 {
		return Result{GeneratedCode: buffered, IntegrationType: IntegrationToken, IsValid: true}
	}

	if tbl, ok := rets[0].(*Table); ok {
		code, hasCode := tbl.Get("generated_code").(string)
		if !hasCode {
			code = buffered
		}
		itype := IntegrationToken
		if s, ok := tbl.Get("integration_type").(string); ok && s != "" {
			itype = IntegrationType(s)
		}
		id, _ := tbl.Get("identifier").(string)
		valid := true
		if b, ok := tbl.Get("is_valid").(bool); ok {
			valid = b
		}
		return Result{GeneratedCode: code, IntegrationType: itype, Identifier: id, IsValid: valid}
	}

	if s, ok := toDisplayString(rets[0]); ok {
		return Result{GeneratedCode: buffered + s, IntegrationType: IntegrationToken, IsValid: true}
	}

	return Result{GeneratedCode: buffered, IntegrationType: IntegrationToken, IsValid: true}
}
