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

package token

// ValueTag discriminates the LiteralValue tagged union (spec.md §3,
// §9's guidance to use a discriminated union native to the target).
type ValueTag int

const (
	NoValue ValueTag = iota
	I32Value
	U32Value
	I64Value
	U64Value
	F32Value
	F64Value
	BoolValue
	StringValue
	ExecAliasValue
)

// LiteralValue is the sum type carried by RawToken.LiteralValue. Accessors
// assert the tag matches the expected payload (spec.md §9).
type LiteralValue struct {
	Tag    ValueTag
	i64    int64
	u64    uint64
	f64    float64
	b      bool
	str    StringIndex
	alias  ExecAliasIndex
}

func NoLiteralValue() LiteralValue { return LiteralValue{Tag: NoValue} }

func I32(v int32) LiteralValue  { return LiteralValue{Tag: I32Value, i64: int64(v)} }
func U32(v uint32) LiteralValue { return LiteralValue{Tag: U32Value, u64: uint64(v)} }
func I64(v int64) LiteralValue  { return LiteralValue{Tag: I64Value, i64: v} }
func U64(v uint64) LiteralValue { return LiteralValue{Tag: U64Value, u64: v} }
func F32(v float32) LiteralValue { return LiteralValue{Tag: F32Value, f64: float64(v)} }
func F64(v float64) LiteralValue { return LiteralValue{Tag: F64Value, f64: v} }
func Bool(v bool) LiteralValue  { return LiteralValue{Tag: BoolValue, b: v} }
func Str(v StringIndex) LiteralValue {
	return LiteralValue{Tag: StringValue, str: v}
}
func Alias(v ExecAliasIndex) LiteralValue {
	return LiteralValue{Tag: ExecAliasValue, alias: v}
}

func (v LiteralValue) Int64() int64 {
	if v.Tag != I32Value && v.Tag != I64Value {
		panic("token: Int64 on non-integer LiteralValue")
	}
	return v.i64
}

func (v LiteralValue) Uint64() uint64 {
	if v.Tag != U32Value && v.Tag != U64Value {
		panic("token: Uint64 on non-unsigned LiteralValue")
	}
	return v.u64
}

func (v LiteralValue) Float64() float64 {
	if v.Tag != F32Value && v.Tag != F64Value {
		panic("token: Float64 on non-float LiteralValue")
	}
	return v.f64
}

func (v LiteralValue) Bool() bool {
	if v.Tag != BoolValue {
		panic("token: Bool on non-bool LiteralValue")
	}
	return v.b
}

func (v LiteralValue) StringIndex() StringIndex {
	if v.Tag != StringValue {
		panic("token: StringIndex on non-string LiteralValue")
	}
	return v.str
}

func (v LiteralValue) ExecAliasIndex() ExecAliasIndex {
	if v.Tag != ExecAliasValue {
		panic("token: ExecAliasIndex on non-alias LiteralValue")
	}
	return v.alias
}

// StringIndex is an opaque 32-bit handle into a StringTable. The sentinel
// InvalidStringIndex means "no string" (spec.md §3).
type StringIndex uint32

const InvalidStringIndex StringIndex = 1<<32 - 1

func (i StringIndex) Valid() bool { return i != InvalidStringIndex }

// ExecAliasIndex is an opaque 32-bit handle into an ExecAliasRegistry,
// with the same sentinel convention as StringIndex.
type ExecAliasIndex uint32

const InvalidExecAliasIndex ExecAliasIndex = 1<<32 - 1

func (i ExecAliasIndex) Valid() bool { return i != InvalidExecAliasIndex }
