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

// Block is a sequence of statements.
type Block struct {
	Stats []Stat
}

// Stat is any Lua statement this subset supports.
type Stat interface{ stat() }

type LocalStat struct {
	Names []string
	Exprs []Expr
}

type AssignStat struct {
	Targets []Expr // Name or Index
	Exprs   []Expr
}

type CallStat struct {
	Call *CallExpr
}

type IfStat struct {
	Conds  []Expr
	Blocks []Block
	Else   *Block
}

type WhileStat struct {
	Cond Expr
	Body Block
}

// NumericForStat implements `for name = start, stop[, step] do ... end`.
type NumericForStat struct {
	Name  string
	Start Expr
	Stop  Expr
	Step  Expr
	Body  Block
}

type ReturnStat struct {
	Exprs []Expr
}

type BreakStat struct{}

type DoStat struct {
	Body Block
}

func (*LocalStat) stat()      {}
func (*AssignStat) stat()     {}
func (*CallStat) stat()       {}
func (*IfStat) stat()         {}
func (*WhileStat) stat()      {}
func (*NumericForStat) stat() {}
func (*ReturnStat) stat()     {}
func (*BreakStat) stat()      {}
func (*DoStat) stat()         {}

// Expr is any Lua expression this subset supports.
type Expr interface{ expr() }

type NilExpr struct{}
type TrueExpr struct{}
type FalseExpr struct{}
type NumberExpr struct{ Value float64 }
type StringExpr struct{ Value string }
type NameExpr struct{ Name string }

// IndexExpr covers both `t.field` and `t[expr]`.
type IndexExpr struct {
	Target Expr
	Key    Expr
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
}

type UnaryExpr struct {
	Op  TokenKind
	Rhs Expr
}

type BinaryExpr struct {
	Op       TokenKind
	Lhs, Rhs Expr
}

// TableField is one entry of a table constructor: either positional
// (Key == nil), named (`name = expr`), or computed (`[expr] = expr`).
type TableField struct {
	Key   Expr
	Value Expr
}

type TableExpr struct {
	Fields []TableField
}

func (*NilExpr) expr()    {}
func (*TrueExpr) expr()   {}
func (*FalseExpr) expr()  {}
func (*NumberExpr) expr() {}
func (*StringExpr) expr() {}
func (*NameExpr) expr()   {}
func (*IndexExpr) expr()  {}
func (*CallExpr) expr()   {}
func (*UnaryExpr) expr()  {}
func (*BinaryExpr) expr() {}
func (*TableExpr) expr()  {}
