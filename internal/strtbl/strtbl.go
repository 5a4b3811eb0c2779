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

// Package strtbl implements the compiler's append-only string interning
// table (spec.md §4.1). Strings are never freed; equal StringIndex values
// always denote equal strings and vice versa, since interning is
// deterministic.
package strtbl

import (
	"sync"

	"cprime.dev/compiler/internal/token"
)

// Table interns complete strings to stable 32-bit indices. The zero value
// is ready to use.
type Table struct {
	mu      sync.RWMutex
	strings []string
	index   map[string]token.StringIndex
}

// New returns an empty, ready-to-use Table.
func New() *Table {
	return &Table{index: make(map[string]token.StringIndex)}
}

// Intern returns the existing index for s, or appends s and returns its new
// index. Insertion order defines indices.
func (t *Table) Intern(s string) token.StringIndex {
	t.mu.RLock()
	if i, ok := t.index[s]; ok {
		t.mu.RUnlock()
		return i
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.index[s]; ok {
		return i
	}
	if t.index == nil {
		t.index = make(map[string]token.StringIndex)
	}
	i := token.StringIndex(len(t.strings))
	t.strings = append(t.strings, s)
	t.index[s] = i
	return i
}

// Get returns the string for a valid index. It panics if the index is
// invalid or out of range, since every token carrying a StringIndex is
// required to have interned it first (spec.md §3 invariant).
func (t *Table) Get(i token.StringIndex) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !i.Valid() || int(i) >= len(t.strings) {
		panic("strtbl: invalid StringIndex")
	}
	return t.strings[i]
}

// IsValid reports whether i currently resolves to a string in this table.
func (t *Table) IsValid(i token.StringIndex) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return i.Valid() && int(i) < len(t.strings)
}

// Stats summarises the table without requiring the caller to iterate it.
type Stats struct {
	UniqueCount  int
	TotalChars   int
	LongestChars int
}

// Stats computes live statistics over the interned strings.
func (t *Table) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var s Stats
	s.UniqueCount = len(t.strings)
	for _, str := range t.strings {
		n := len(str)
		s.TotalChars += n
		if n > s.LongestChars {
			s.LongestChars = n
		}
	}
	return s
}

// AverageChars returns the mean string length, or 0 for an empty table.
func (s Stats) AverageChars() float64 {
	if s.UniqueCount == 0 {
		return 0
	}
	return float64(s.TotalChars) / float64(s.UniqueCount)
}
