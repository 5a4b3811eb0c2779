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

package scanner

import (
	"cprime.dev/compiler/internal/execalias"
	"cprime.dev/compiler/internal/strtbl"
	"cprime.dev/compiler/internal/token"
)

// Scan runs the five Layer 1 sublayers over src in order, producing the
// final RawToken stream (spec.md §4.4). aliases may be nil for a
// standalone scan (e.g. unit tests); the driver always supplies the
// shared ExecAliasRegistry so far-seen global aliases resolve inline.
func Scan(src []byte, strings_ *strtbl.Table, aliases *execalias.Registry) []token.RawToken {
	chunks := pass1A(src)
	chunks = pass1B(chunks, strings_)
	chunks = pass1C(chunks)
	chunks = pass1D(chunks)
	return pass1E(chunks, strings_, aliases)
}
