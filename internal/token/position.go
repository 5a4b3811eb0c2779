// Copyright 2018 The CUE Authors
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

// Package token defines the token kinds, source positions and literal
// values produced by the Layer 1 tokeniser and consumed by every later
// layer of the CPrime front end.
package token

import (
	"fmt"
	"sort"
	"sync"

	"github.com/opencontainers/go-digest"
)

// Position describes a printable source position: filename, byte offset,
// and 1-based line/column. Tabs count as a single column (spec.md §6).
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position is valid.
func (pos Position) IsValid() bool { return pos.Line > 0 }

func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Pos is a compact, comparable encoding of a source position within a
// particular File.
type Pos struct {
	file   *File
	offset int
}

// NoPos is the zero value for Pos; it carries no file or line information.
var NoPos = Pos{}

// IsValid reports whether p refers to a real file position.
func (p Pos) IsValid() bool { return p.file != nil }

// File returns the file p belongs to, or nil for NoPos.
func (p Pos) File() *File { return p.file }

// Offset reports the byte offset of p within its file.
func (p Pos) Offset() int { return p.offset }

// Position unpacks p into a human-printable Position.
func (p Pos) Position() Position {
	if p.file == nil {
		return Position{}
	}
	return p.file.position(p.offset)
}

func (p Pos) String() string { return p.Position().String() }

// Compare returns -1, 0, or +1 as p is before, equal to, or after q.
// NoPos sorts after every valid position.
func (p Pos) Compare(q Pos) int {
	switch {
	case p == q:
		return 0
	case p == NoPos:
		return +1
	case q == NoPos:
		return -1
	case p.file != q.file:
		if p.file.name != q.file.name {
			if p.file.name < q.file.name {
				return -1
			}
			return +1
		}
	}
	switch {
	case p.offset < q.offset:
		return -1
	case p.offset > q.offset:
		return +1
	default:
		return 0
	}
}

// A File tracks a single source file's content, its line-offset table, and
// a content digest, so Pos values can be resolved to line/column pairs and
// compilations of identical content can be recognised without caching any
// compiled state (see SPEC_FULL.md's Layer 0 note).
type File struct {
	mu      sync.RWMutex
	name    string
	size    int
	lines   []int // offset of first byte of each line; lines[0] == 0
	digest  digest.Digest
}

// NewFile creates a File for name holding size bytes. Call AddLine for
// every line break encountered while scanning, or SetLinesForContent to
// compute the whole table up front.
func NewFile(name string, size int) *File {
	return &File{name: name, size: size, lines: []int{0}}
}

// Name returns the file's name as passed to NewFile.
func (f *File) Name() string { return f.name }

// Size returns the file's byte size as passed to NewFile.
func (f *File) Size() int { return f.size }

// SetDigest attaches a content digest computed by internal/source.
func (f *File) SetDigest(d digest.Digest) {
	f.mu.Lock()
	f.digest = d
	f.mu.Unlock()
}

// Digest returns the content digest attached via SetDigest, or the empty
// digest if none was set.
func (f *File) Digest() digest.Digest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.digest
}

// AddLine records that a new line begins at the given byte offset. Offsets
// must be added in increasing order; out-of-order or out-of-range offsets
// are ignored.
func (f *File) AddLine(offset int) {
	f.mu.Lock()
	if n := len(f.lines); (n == 0 || f.lines[n-1] < offset) && offset < f.size {
		f.lines = append(f.lines, offset)
	}
	f.mu.Unlock()
}

// SetLinesForContent computes the line-offset table directly from file
// content, ignoring any incremental AddLine calls made so far.
func (f *File) SetLinesForContent(content []byte) {
	lines := []int{0}
	for offset, b := range content {
		if b == '\n' && offset+1 < len(content) {
			lines = append(lines, offset+1)
		}
	}
	f.mu.Lock()
	f.lines = lines
	f.mu.Unlock()
}

// Pos returns the Pos value for the given byte offset in f.
func (f *File) Pos(offset int) Pos {
	if offset < 0 {
		offset = 0
	} else if offset > f.size {
		offset = f.size
	}
	return Pos{file: f, offset: offset}
}

func (f *File) position(offset int) Position {
	f.mu.RLock()
	defer f.mu.RUnlock()
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - f.lines[line] + 1,
	}
}

// LineCount reports the number of lines recorded so far.
func (f *File) LineCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.lines)
}
