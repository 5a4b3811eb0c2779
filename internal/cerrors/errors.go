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

// Package cerrors defines the ContextualizationError type and the
// two-phase collector described in spec.md §7, plus the shared
// list/Append/Sanitize/Print machinery for reporting them.
package cerrors

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"cprime.dev/compiler/internal/token"
)

// Error is the common interface satisfied by ContextualizationError and by
// list, so collections of errors can be printed and sorted uniformly.
type Error interface {
	error
	Position() token.Pos
	Msg() (format string, args []any)
}

// Append combines two errors, flattening lists as necessary.
func Append(a, b Error) Error {
	switch x := a.(type) {
	case nil:
		return b
	case list:
		return appendToList(x, b)
	}
	return appendToList(list{a}, b)
}

func appendToList(a list, err Error) list {
	switch x := err.(type) {
	case nil:
		return a
	case list:
		for _, e := range x {
			a = appendToList(a, e)
		}
		return a
	default:
		for _, e := range a {
			if e == err {
				return a
			}
		}
		return append(a, err)
	}
}

// list is a list of Errors; the zero value is an empty list ready to use.
type list []Error

func (p list) Error() string {
	format, args := p.Msg()
	return fmt.Sprintf(format, args...)
}

func (p list) Msg() (format string, args []any) {
	switch len(p) {
	case 0:
		return "no errors", nil
	case 1:
		return p[0].Msg()
	}
	return "%s (and %d more errors)", []any{p[0], len(p) - 1}
}

func (p list) Position() token.Pos {
	if len(p) == 0 {
		return token.NoPos
	}
	return p[0].Position()
}

func (p list) Is(target error) bool {
	for _, e := range p {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

// Sort orders a list by position, with no-position errors sorting first
// (matching cue/errors' convention), falling back to message text.
func (p list) Sort() {
	slices.SortFunc(p, func(a, b Error) int {
		if c := comparePosWithNoPosFirst(a.Position(), b.Position()); c != 0 {
			return c
		}
		return cmp.Compare(a.Error(), b.Error())
	})
}

func (p list) sanitize() list {
	if p == nil {
		return p
	}
	a := slices.Clone(p)
	a.Sort()
	a = slices.CompactFunc(a, func(x, y Error) bool {
		xp, yp := x.Position(), y.Position()
		if xp == token.NoPos || yp == token.NoPos {
			return x.Error() == y.Error()
		}
		return comparePosWithNoPosFirst(xp, yp) == 0
	})
	return a
}

func comparePosWithNoPosFirst(a, b token.Pos) int {
	if a == b {
		return 0
	} else if a == token.NoPos {
		return -1
	} else if b == token.NoPos {
		return +1
	}
	return a.Compare(b)
}

// Sanitize sorts multiple errors and removes duplicates on a best-effort
// basis. A single or nil error is returned as-is.
func Sanitize(err Error) Error {
	if err == nil {
		return nil
	}
	if l, ok := err.(list); ok {
		a := l.sanitize()
		if len(a) == 1 {
			return a[0]
		}
		return a
	}
	return err
}

// Errors flattens err into its individual Error values, promoting a plain
// error to a single-element slice.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var l list
	var e Error
	switch {
	case errors.As(err, &l):
		return l
	case errors.As(err, &e):
		return []Error{e}
	default:
		return nil
	}
}

// Config controls how Print formats positions.
type Config struct {
	// Format formats the given string and arguments and writes it to w. It
	// is used for all printing; nil selects fmt.Fprintf.
	Format func(w io.Writer, format string, args ...any)
}

var zeroConfig = &Config{}

// Print writes one line per error in err (after Sanitize) to w, each
// followed by its resolved source location if Collector.Resolve has run.
func Print(w io.Writer, err Error, cfg *Config) {
	if cfg == nil {
		cfg = zeroConfig
	}
	fprintf := cfg.Format
	if fprintf == nil {
		fprintf = func(w io.Writer, format string, args ...any) { fmt.Fprintf(w, format, args...) }
	}
	var items []Error
	if l, ok := err.(list); ok {
		items = l.sanitize()
	} else if err != nil {
		items = []Error{err}
	}
	for _, e := range items {
		printOne(w, e, fprintf)
	}
}

func printOne(w io.Writer, e Error, fprintf func(io.Writer, string, ...any)) {
	format, args := e.Msg()
	fprintf(w, format, args...)
	if pos := e.Position(); pos.IsValid() {
		fprintf(w, ":\n    %s\n", pos.Position())
	} else {
		fprintf(w, "\n")
	}
}

// String renders a single Error's message without position information,
// mirroring cue/errors.String.
func String(e Error) string {
	var b strings.Builder
	format, args := e.Msg()
	fmt.Fprintf(&b, format, args...)
	return b.String()
}
