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

// Package source standardizes reading CPrime source bytes, whether from
// disk, an in-memory string, or an arbitrary io.Reader, into the
// (content, *token.File) pair Layer 1 scanning needs.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	digest "github.com/opencontainers/go-digest"

	"cprime.dev/compiler/internal/token"
)

// Source loads a single compilation unit's bytes.
type Source interface {
	// Read returns the source bytes for this unit and a name suitable for
	// diagnostics (a path for on-disk sources, a synthetic label otherwise).
	Read() ([]byte, string, error)
}

// Load reads src and wraps the result in a token.File stamped with a
// content digest, ready for scanner.Scan. The digest is a fingerprint
// readable through File.Digest, not an incremental-build cache; the
// driver does not read it.
func Load(src Source) ([]byte, *token.File, error) {
	content, name, err := src.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("source: %w", err)
	}
	file := token.NewFile(name, len(content))
	file.SetLinesForContent(content)
	file.SetDigest(digest.FromBytes(content))
	return content, file, nil
}

// StringSource reads from an in-memory string, labelled name for
// diagnostics (tests and exec-expansion fragments use this).
type StringSource struct {
	Name string
	Src  string
}

func (s StringSource) Read() ([]byte, string, error) {
	return []byte(s.Src), s.Name, nil
}

// BytesSource reads from an in-memory byte slice.
type BytesSource struct {
	Name string
	Src  []byte
}

func (s BytesSource) Read() ([]byte, string, error) {
	return s.Src, s.Name, nil
}

// ReaderSource drains an arbitrary io.Reader.
type ReaderSource struct {
	Name string
	Src  io.Reader
}

func (s ReaderSource) Read() ([]byte, string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, s.Src); err != nil {
		return nil, s.Name, err
	}
	return buf.Bytes(), s.Name, nil
}

// FileSource reads a named file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Read() ([]byte, string, error) {
	b, err := os.ReadFile(s.Path)
	return b, s.Path, err
}
