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

package cerrors

import (
	"fmt"
	"sync"

	"cprime.dev/compiler/internal/token"
)

// Kind enumerates spec.md §7's error kinds. Severity is policy-assigned,
// not intrinsic to the kind.
type Kind int

const (
	UnsupportedTokenPattern Kind = iota
	AmbiguousOperatorContext
	UnresolvedIdentifier
	InvalidExpressionStructure
	MissingTypeInformation
	IncompleteStatement
	InvalidFunctionCall
	TypeMismatch
	UndeclaredVariable
)

func (k Kind) String() string {
	switch k {
	case UnsupportedTokenPattern:
		return "UNSUPPORTED_TOKEN_PATTERN"
	case AmbiguousOperatorContext:
		return "AMBIGUOUS_OPERATOR_CONTEXT"
	case UnresolvedIdentifier:
		return "UNRESOLVED_IDENTIFIER"
	case InvalidExpressionStructure:
		return "INVALID_EXPRESSION_STRUCTURE"
	case MissingTypeInformation:
		return "MISSING_TYPE_INFORMATION"
	case IncompleteStatement:
		return "INCOMPLETE_STATEMENT"
	case InvalidFunctionCall:
		return "INVALID_FUNCTION_CALL"
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case UndeclaredVariable:
		return "UNDECLARED_VARIABLE"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Severity is the policy-assigned disposition of a Kind.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuppress
)

// Policy maps each Kind to a Severity. Suppressed kinds are never stored
// by Collector.Add (spec.md §7: "Suppressed records are not stored").
type Policy map[Kind]Severity

// DefaultPolicy returns spec.md §7's suggested defaults: errors for
// structural problems, warnings for ambiguity.
func DefaultPolicy() Policy {
	return Policy{
		UnsupportedTokenPattern:    SeverityError,
		AmbiguousOperatorContext:   SeverityWarning,
		UnresolvedIdentifier:      SeverityError,
		InvalidExpressionStructure: SeverityError,
		MissingTypeInformation:     SeverityWarning,
		IncompleteStatement:        SeverityError,
		InvalidFunctionCall:        SeverityError,
		TypeMismatch:               SeverityWarning,
		UndeclaredVariable:         SeverityError,
	}
}

// Severity returns the policy's disposition for k, defaulting to
// SeverityError for a kind the policy doesn't mention.
func (p Policy) Severity(k Kind) Severity {
	if s, ok := p[k]; ok {
		return s
	}
	return SeverityError
}

// ContextualizationError is spec.md §7's per-record error shape. Its
// position is left unresolved (token.NoPos) until Collector.Resolve runs,
// per the original's two-phase design (SPEC_FULL.md Supplemented Features).
type ContextualizationError struct {
	Kind     Kind
	Severity Severity
	Stream   token.StreamID
	TokenIndex uint32

	format string
	args   []any

	pos token.Pos
}

func (e *ContextualizationError) Error() string {
	return fmt.Sprintf(e.format, e.args...)
}

func (e *ContextualizationError) Msg() (string, []any) { return e.format, e.args }

func (e *ContextualizationError) Position() token.Pos { return e.pos }

// Collector accumulates ContextualizationErrors during 2D with only a raw
// token index (spec.md §7's resolve_source_locations is a separate batch
// pass, mirrored here by Resolve).
type Collector struct {
	mu      sync.Mutex
	policy  Policy
	records []*ContextualizationError
}

// NewCollector returns a Collector governed by policy. A nil policy uses
// DefaultPolicy.
func NewCollector(policy Policy) *Collector {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Collector{policy: policy}
}

// Add records an error of kind at (stream, tokenIndex), unless policy
// suppresses kind. format/args follow fmt.Sprintf conventions.
func (c *Collector) Add(kind Kind, stream token.StreamID, tokenIndex uint32, format string, args ...any) {
	sev := c.policy.Severity(kind)
	if sev == SeveritySuppress {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, &ContextualizationError{
		Kind: kind, Severity: sev, Stream: stream, TokenIndex: tokenIndex,
		format: format, args: args,
	})
}

// Resolve populates each collected record's source position by looking up
// its token index's byte offset in the matching RawToken stream and
// converting that offset through the matching token.File. raws and files
// are indexed by token.StreamID; a record whose stream or index falls
// outside either slice is left at token.NoPos.
func (c *Collector) Resolve(raws [][]token.RawToken, files []*token.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		i := int(r.Stream)
		if i < 0 || i >= len(raws) || i >= len(files) || files[i] == nil {
			continue
		}
		stream := raws[i]
		if int(r.TokenIndex) >= len(stream) {
			continue
		}
		r.pos = files[i].Pos(stream[r.TokenIndex].Position)
	}
}

// HasErrors reports whether any collected record has SeverityError.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns the collected records as a single Error, or nil if empty.
func (c *Collector) Err() Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.records) == 0 {
		return nil
	}
	l := make(list, len(c.records))
	for i, r := range c.records {
		l[i] = r
	}
	return l
}

// Records returns a snapshot of the collected records.
func (c *Collector) Records() []*ContextualizationError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*ContextualizationError(nil), c.records...)
}
