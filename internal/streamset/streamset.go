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

// Package streamset is the compilation-wide registry of RawToken streams:
// one per source file plus one per exec-expanded fragment (spec.md §4.8(c)
// step 6's generated code re-enters Layer 1/2A as its own stream, since a
// Token's Stream field already lets Instructions mix tokens from more than
// one stream). There is no single teacher file this adapts — it is plain
// index bookkeeping with no parsing, formatting, or I/O surface a
// third-party library would meaningfully serve, so it stays on
// sync.Mutex + slices rather than reaching for a dependency that has
// nothing to do here.
package streamset

import (
	"sync"

	"cprime.dev/compiler/internal/token"
)

// Store holds every stream's RawToken slice and source File, indexed by
// StreamID in allocation order.
type Store struct {
	mu    sync.Mutex
	raws  [][]token.RawToken
	files []*token.File
}

// New returns an empty Store.
func New() *Store { return &Store{} }

// Add appends a new stream and returns its StreamID.
func (s *Store) Add(raw []token.RawToken, file *token.File) token.StreamID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := token.StreamID(len(s.raws))
	s.raws = append(s.raws, raw)
	s.files = append(s.files, file)
	return id
}

// Raw returns the RawToken slice for id.
func (s *Store) Raw(id token.StreamID) []token.RawToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raws[id]
}

// File returns the source File for id (may be nil for a synthetic
// exec-expanded fragment with no on-disk origin).
func (s *Store) File(id token.StreamID) *token.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[id]
}

// Len reports the number of streams currently registered.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.raws)
}

// Raws returns a snapshot of every stream's RawToken slice, indexed by
// StreamID, for cerrors.Collector.Resolve.
func (s *Store) Raws() [][]token.RawToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]token.RawToken, len(s.raws))
	copy(out, s.raws)
	return out
}

// Files returns a snapshot of every stream's File, indexed by StreamID,
// for cerrors.Collector.Resolve.
func (s *Store) Files() []*token.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*token.File, len(s.files))
	copy(out, s.files)
	return out
}
