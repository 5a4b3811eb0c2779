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

// RawToken is the Layer 1 output unit (spec.md §3): a coarse class, a
// fine-grained kind, source position, and an optional literal value.
type RawToken struct {
	Class    RawClass
	Kind     Kind
	Line     int
	Column   int
	Position int // byte offset
	Value    LiteralValue
}

// StreamID identifies which file's RawToken slice a Token references.
type StreamID uint32

// Token is a lightweight Layer 2 reference into a RawToken stream.
// Multiple Tokens may reference the same RawToken (spec.md §3).
type Token struct {
	Stream StreamID
	Index  uint32
	Kind   Kind
}
