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

// signal reports why execBlock returned early.
type signal int

const (
	signalNone signal = iota
	signalBreak
	signalReturn
)

// Run executes block under env and returns the values of its `return`
// statement, or nil if the block fell off the end without one.
func Run(block Block, env *Env) ([]Value, error) {
	sig, vals, err := execBlock(block, env)
	if err != nil {
		return nil, err
	}
	if sig == signalReturn {
		return vals, nil
	}
	return nil, nil
}

func execBlock(block Block, env *Env) (signal, []Value, error) {
	if err := env.step(); err != nil {
		return signalNone, nil, err
	}
	scope := env.child()
	for _, st := range block.Stats {
		sig, vals, err := execStat(st, scope)
		if err != nil || sig != signalNone {
			return sig, vals, err
		}
	}
	return signalNone, nil, nil
}

func execStat(st Stat, env *Env) (signal, []Value, error) {
	switch s := st.(type) {
	case *LocalStat:
		vals, err := evalExprList(s.Exprs, env)
		if err != nil {
			return signalNone, nil, err
		}
		for i, name := range s.Names {
			var v Value
			if i < len(vals) {
				v = vals[i]
			}
			env.defineLocal(name, v)
		}
		return signalNone, nil, nil

	case *AssignStat:
		vals, err := evalExprList(s.Exprs, env)
		if err != nil {
			return signalNone, nil, err
		}
		for i, target := range s.Targets {
			var v Value
			if i < len(vals) {
				v = vals[i]
			}
			if err := assignTo(target, v, env); err != nil {
				return signalNone, nil, err
			}
		}
		return signalNone, nil, nil

	case *CallStat:
		_, err := evalCall(s.Call, env)
		return signalNone, nil, err

	case *IfStat:
		for i, cond := range s.Conds {
			v, err := eval(cond, env)
			if err != nil {
				return signalNone, nil, err
			}
			if truthy(v) {
				return execBlock(s.Blocks[i], env)
			}
		}
		if s.Else != nil {
			return execBlock(*s.Else, env)
		}
		return signalNone, nil, nil

	case *WhileStat:
		for {
			v, err := eval(s.Cond, env)
			if err != nil {
				return signalNone, nil, err
			}
			if !truthy(v) {
				return signalNone, nil, nil
			}
			sig, vals, err := execBlock(s.Body, env)
			if err != nil {
				return signalNone, nil, err
			}
			switch sig {
			case signalBreak:
				return signalNone, nil, nil
			case signalReturn:
				return sig, vals, nil
			}
		}

	case *NumericForStat:
		start, err := evalNumber(s.Start, env)
		if err != nil {
			return signalNone, nil, err
		}
		stop, err := evalNumber(s.Stop, env)
		if err != nil {
			return signalNone, nil, err
		}
		step := 1.0
		if s.Step != nil {
			step, err = evalNumber(s.Step, env)
			if err != nil {
				return signalNone, nil, err
			}
		}
		if step == 0 {
			return signalNone, nil, &RuntimeError{Msg: "'for' step is zero"}
		}
		for i := start; (step > 0 && i <= stop) || (step < 0 && i >= stop); i += step {
			loopEnv := env.child()
			loopEnv.defineLocal(s.Name, i)
			sig, vals, err := execBlock(s.Body, loopEnv)
			if err != nil {
				return signalNone, nil, err
			}
			switch sig {
			case signalBreak:
				return signalNone, nil, nil
			case signalReturn:
				return sig, vals, nil
			}
		}
		return signalNone, nil, nil

	case *ReturnStat:
		vals, err := evalExprList(s.Exprs, env)
		if err != nil {
			return signalNone, nil, err
		}
		return signalReturn, vals, nil

	case *BreakStat:
		return signalBreak, nil, nil

	case *DoStat:
		return execBlock(s.Body, env)
	}
	return signalNone, nil, fmt.Errorf("luavm: unhandled statement %T", st)
}

func assignTo(target Expr, v Value, env *Env) error {
	switch t := target.(type) {
	case *NameExpr:
		env.assign(t.Name, v)
		return nil
	case *IndexExpr:
		tv, err := eval(t.Target, env)
		if err != nil {
			return err
		}
		tbl, ok := tv.(*Table)
		if !ok {
			return &RuntimeError{Msg: fmt.Sprintf("attempt to index a %s value", typeName(tv))}
		}
		key, err := eval(t.Key, env)
		if err != nil {
			return err
		}
		tbl.Set(key, v)
		return nil
	}
	return &RuntimeError{Msg: "invalid assignment target"}
}

func evalExprList(exprs []Expr, env *Env) ([]Value, error) {
	out := make([]Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := eval(e, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func evalNumber(e Expr, env *Env) (float64, error) {
	v, err := eval(e, env)
	if err != nil {
		return 0, err
	}
	n, ok := toNumber(v)
	if !ok {
		return 0, &RuntimeError{Msg: fmt.Sprintf("attempt to perform arithmetic on a %s value", typeName(v))}
	}
	return n, nil
}

func evalCall(c *CallExpr, env *Env) ([]Value, error) {
	callee, err := eval(c.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(Builtin)
	if !ok {
		return nil, &RuntimeError{Msg: fmt.Sprintf("attempt to call a %s value", typeName(callee))}
	}
	args, err := evalExprList(c.Args, env)
	if err != nil {
		return nil, err
	}
	return fn(args)
}

func eval(e Expr, env *Env) (Value, error) {
	switch x := e.(type) {
	case *NilExpr:
		return nil, nil
	case *TrueExpr:
		return true, nil
	case *FalseExpr:
		return false, nil
	case *NumberExpr:
		return x.Value, nil
	case *StringExpr:
		return x.Value, nil
	case *NameExpr:
		v, _ := env.lookup(x.Name)
		return v, nil
	case *IndexExpr:
		tv, err := eval(x.Target, env)
		if err != nil {
			return nil, err
		}
		tbl, ok := tv.(*Table)
		if !ok {
			return nil, &RuntimeError{Msg: fmt.Sprintf("attempt to index a %s value", typeName(tv))}
		}
		key, err := eval(x.Key, env)
		if err != nil {
			return nil, err
		}
		return tbl.Get(key), nil
	case *CallExpr:
		vals, err := evalCall(x, env)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, nil
		}
		return vals[0], nil
	case *UnaryExpr:
		return evalUnary(x, env)
	case *BinaryExpr:
		return evalBinary(x, env)
	case *TableExpr:
		return evalTable(x, env)
	}
	return nil, fmt.Errorf("luavm: unhandled expression %T", e)
}

func evalUnary(x *UnaryExpr, env *Env) (Value, error) {
	switch x.Op {
	case KwNot:
		v, err := eval(x.Rhs, env)
		if err != nil {
			return nil, err
		}
		return !truthy(v), nil
	case Minus:
		n, err := evalNumber(x.Rhs, env)
		if err != nil {
			return nil, err
		}
		return -n, nil
	case Hash:
		v, err := eval(x.Rhs, env)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case string:
			return float64(len(t)), nil
		case *Table:
			return float64(t.Len()), nil
		}
		return nil, &RuntimeError{Msg: fmt.Sprintf("attempt to get length of a %s value", typeName(v))}
	}
	return nil, fmt.Errorf("luavm: unhandled unary operator %v", x.Op)
}

func evalBinary(x *BinaryExpr, env *Env) (Value, error) {
	switch x.Op {
	case KwAnd:
		lv, err := eval(x.Lhs, env)
		if err != nil {
			return nil, err
		}
		if !truthy(lv) {
			return lv, nil
		}
		return eval(x.Rhs, env)
	case KwOr:
		lv, err := eval(x.Lhs, env)
		if err != nil {
			return nil, err
		}
		if truthy(lv) {
			return lv, nil
		}
		return eval(x.Rhs, env)
	}

	lv, err := eval(x.Lhs, env)
	if err != nil {
		return nil, err
	}
	rv, err := eval(x.Rhs, env)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case Concat:
		ls, ok1 := toDisplayString(lv)
		rs, ok2 := toDisplayString(rv)
		if !ok1 || !ok2 {
			return nil, &RuntimeError{Msg: "attempt to concatenate a non-concatenable value"}
		}
		return ls + rs, nil
	case Eq:
		return luaEquals(lv, rv), nil
	case NotEq:
		return !luaEquals(lv, rv), nil
	}

	if ls, ok := lv.(string); ok {
		if rs, ok := rv.(string); ok {
			switch x.Op {
			case Less:
				return ls < rs, nil
			case LessEq:
				return ls <= rs, nil
			case Greater:
				return ls > rs, nil
			case GreaterEq:
				return ls >= rs, nil
			}
		}
	}

	ln, ok1 := toNumber(lv)
	rn, ok2 := toNumber(rv)
	if !ok1 || !ok2 {
		return nil, &RuntimeError{Msg: fmt.Sprintf("attempt to compare or operate on %s and %s", typeName(lv), typeName(rv))}
	}
	switch x.Op {
	case Plus:
		return ln + rn, nil
	case Minus:
		return ln - rn, nil
	case Star:
		return ln * rn, nil
	case Slash:
		return ln / rn, nil
	case Percent:
		return ln - floorDiv(ln, rn)*rn, nil
	case Caret:
		return powFloat(ln, rn), nil
	case Less:
		return ln < rn, nil
	case LessEq:
		return ln <= rn, nil
	case Greater:
		return ln > rn, nil
	case GreaterEq:
		return ln >= rn, nil
	}
	return nil, fmt.Errorf("luavm: unhandled binary operator %v", x.Op)
}

func luaEquals(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

func floorDiv(a, b float64) float64 {
	q := a / b
	return floorFloat(q)
}

func floorFloat(f float64) float64 {
	i := float64(int64(f))
	if f < i {
		return i - 1
	}
	return i
}

func powFloat(base, exp float64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for ; exp >= 1; exp-- {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func evalTable(x *TableExpr, env *Env) (Value, error) {
	t := NewTable()
	for _, f := range x.Fields {
		v, err := eval(f.Value, env)
		if err != nil {
			return nil, err
		}
		if f.Key == nil {
			t.Append(v)
			continue
		}
		k, err := eval(f.Key, env)
		if err != nil {
			return nil, err
		}
		t.Set(k, v)
	}
	return t, nil
}
