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

// Package scopegraph holds the arena-of-indices scope tree Layer 2A
// builds and every later layer walks (spec.md §3, §4.5).
package scopegraph

import "cprime.dev/compiler/internal/token"

// Role is the contextual classification Layer 2D assigns to a token
// (spec.md §3's ContextualToken.role).
type Role int

const (
	RoleInvalid Role = iota
	RoleVariableDeclaration
	RoleVariableReference
	RoleAssignment
	RoleFunctionCall
	RoleControlFlow
	RoleExpression
	RoleTypeReference
	RoleOperator
	RoleLiteralValue
	RoleScopeReference
	RoleWhitespace
	RoleFormatting
	RoleResourceManagement
)

// ContextualToken annotates one Token with its Layer 2D role (spec.md §3).
type ContextualToken struct {
	Role               Role
	ParentTokenIndices []uint32
}

// Context is an opaque, layer-extensible annotation attached to a scope
// (spec.md §3: "opaque by design; layers extend behaviour without
// modifying this shape").
type Context map[string]any

// Instruction is an ordered token sequence plus its Layer 2D contextual
// tokens and attached contexts (spec.md §3).
type Instruction struct {
	Tokens     []token.Token
	Contextual []ContextualToken
	Contexts   []Context
}

// BodyElement is either an inline Instruction or a reference to a nested
// scope by index (spec.md §3's `Instruction | u32` union for
// Scope.instructions).
type BodyElement struct {
	IsScopeRef bool
	Instr      Instruction
	ScopeIndex uint32
}

// FooterKind distinguishes Scope.Footer's two flavours.
type FooterKind int

const (
	FooterInstruction FooterKind = iota
	FooterScopeIndex
)

// Footer is either a trailing Instruction or, for exec-expanded scopes, a
// reference to a synthesised footer scope (spec.md §3).
type Footer struct {
	Kind       FooterKind
	Instr      Instruction
	ScopeIndex uint32
}

// Scope is the core structural entity (spec.md §3). Scopes live in a flat
// vector; Parent is an index, never a pointer.
type Scope struct {
	Header           Instruction
	Footer           Footer
	ParentIndex      uint32
	Instructions     []BodyElement
	NamespaceContext []string
	Contexts         []Context

	IsExec bool
}

// Graph is the flat, monotonically growing scope vector (spec.md §3).
// Index 0 is always the root scope, which is its own parent.
type Graph struct {
	Scopes []Scope
}

// New returns a Graph containing only the root scope.
func New() *Graph {
	return &Graph{Scopes: []Scope{{ParentIndex: 0}}}
}

// Root is scope index 0.
const Root uint32 = 0

// AddScope appends a new scope parented at parentIndex and returns its
// index.
func (g *Graph) AddScope(parentIndex uint32) uint32 {
	idx := uint32(len(g.Scopes))
	g.Scopes = append(g.Scopes, Scope{ParentIndex: parentIndex})
	return idx
}

// Scope returns a pointer to the scope at idx for in-place mutation.
func (g *Graph) Scope(idx uint32) *Scope {
	return &g.Scopes[idx]
}
