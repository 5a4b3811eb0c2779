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

// Package execalias implements the ExecAliasRegistry (spec.md §4.2): exec
// block aliases, their namespace paths, and the scope/lambda/specialisation
// bookkeeping Layer 2B populates and Layer 2D consults.
package execalias

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mpvl/unique"

	"cprime.dev/compiler/internal/token"
)

// specializationPrefix marks an ExecutableLambda.Script as a
// specialisation payload rather than a raw Lua script (spec.md §3).
const specializationPrefix = "SPECIALIZATION:"

// ExecutableLambda is the compiled body of an exec block: either a raw Lua
// script (a parent), or, when Script starts with specializationPrefix, a
// literal CPrime body to be forwarded to the parent alias.
type ExecutableLambda struct {
	Script string
}

// IsSpecialization reports whether l holds a specialisation payload.
func (l ExecutableLambda) IsSpecialization() bool {
	return strings.HasPrefix(l.Script, specializationPrefix)
}

// SpecializationBody extracts the embedded CPrime body from a
// specialisation payload. It panics if l is not a specialisation.
func (l ExecutableLambda) SpecializationBody() string {
	if !l.IsSpecialization() {
		panic("execalias: SpecializationBody on a non-specialization lambda")
	}
	return l.Script[len(specializationPrefix):]
}

// NewSpecializationLambda wraps a CPrime body as a specialisation payload.
func NewSpecializationLambda(cprimeBody string) ExecutableLambda {
	return ExecutableLambda{Script: specializationPrefix + cprimeBody}
}

// DuplicateAliasError reports an attempt to register an alias name that
// already exists (spec.md §4.2: "a hard error").
type DuplicateAliasError struct {
	Name string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("duplicate exec template name %q", e.Name)
}

// GlobalConflictError reports a namespaced registration attempted after a
// global registration of the same name already exists.
type GlobalConflictError struct {
	Name string
}

func (e *GlobalConflictError) Error() string {
	return fmt.Sprintf("exec alias %q already has a global registration", e.Name)
}

// Registry is the ExecAliasRegistry of spec.md §3/§4.2.
type Registry struct {
	mu sync.Mutex

	aliases        []string
	aliasToIndex   map[string]token.ExecAliasIndex
	namespacePaths [][]string
	reverseMap     map[string][]token.ExecAliasIndex // name -> indices, any path length

	globalNames map[string]token.ExecAliasIndex // name -> index, only for single-element registrations

	scopeToLambda          map[uint32]ExecutableLambda
	aliasToScope           map[token.ExecAliasIndex]uint32
	specializationToParent map[uint32]string
}

// New returns an empty, ready-to-use Registry.
func New() *Registry {
	return &Registry{
		aliasToIndex:           map[string]token.ExecAliasIndex{},
		reverseMap:             map[string][]token.ExecAliasIndex{},
		globalNames:            map[string]token.ExecAliasIndex{},
		scopeToLambda:          map[uint32]ExecutableLambda{},
		aliasToScope:           map[token.ExecAliasIndex]uint32{},
		specializationToParent: map[uint32]string{},
	}
}

// RegisterAlias registers a simple (unqualified) alias. Duplicates are a
// hard error.
func (r *Registry) RegisterAlias(name string) (token.ExecAliasIndex, error) {
	return r.RegisterNamespacedAlias([]string{name})
}

// RegisterNamespacedAlias registers path, whose last element is the alias
// name and whose preceding elements are the namespace chain. A
// single-element path is a global registration (spec.md §4.2).
func (r *Registry) RegisterNamespacedAlias(path []string) (token.ExecAliasIndex, error) {
	if len(path) == 0 {
		panic("execalias: empty alias path")
	}
	name := path[len(path)-1]
	nsPrefix := append([]string(nil), path[:len(path)-1]...)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(path) == 1 {
		if _, dup := r.globalNames[name]; dup {
			return 0, &DuplicateAliasError{Name: name}
		}
	} else if _, hasGlobal := r.globalNames[name]; hasGlobal {
		return 0, &GlobalConflictError{Name: name}
	}

	idx := token.ExecAliasIndex(len(r.aliases))
	r.aliases = append(r.aliases, name)
	r.namespacePaths = append(r.namespacePaths, nsPrefix)
	key := aliasKey(path)
	r.aliasToIndex[key] = idx
	r.reverseMap[name] = append(r.reverseMap[name], idx)
	if len(path) == 1 {
		r.globalNames[name] = idx
	}
	return idx, nil
}

func aliasKey(path []string) string { return strings.Join(path, "\x1f") }

// Lookup resolves name for a call site in namespace context ns (spec.md
// §4.2's anti-shadowing rule): a global registration always wins; failing
// that, the longest registered namespace-prefix match wins.
func (r *Registry) Lookup(name string, ns []string) (token.ExecAliasIndex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.globalNames[name]; ok {
		return idx, true
	}

	candidates := r.reverseMap[name]
	if len(candidates) == 0 {
		return 0, false
	}

	prefixToIdx := map[string]token.ExecAliasIndex{}
	for _, idx := range candidates {
		prefixToIdx[aliasKey(r.namespacePaths[idx])] = idx
	}

	// Longest namespace-prefix match wins: try the full ns path first, then
	// each successively shorter prefix down to the empty (global) path.
	for j := len(ns); j >= 0; j-- {
		want := aliasKey(ns[:j])
		if idx, ok := prefixToIdx[want]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Name returns the alias name for idx.
func (r *Registry) Name(idx token.ExecAliasIndex) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aliases[idx]
}

// GlobalIndex returns the index of name's global registration, if any.
// Used by Layer 2B to implement "register it if not already present."
func (r *Registry) GlobalIndex(name string) (token.ExecAliasIndex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.globalNames[name]
	return idx, ok
}

// RegisterScopeIndex associates scopeIdx with an empty lambda, ready for
// Layer 2B to fill in via UpdateExecutableLambda.
func (r *Registry) RegisterScopeIndex(scopeIdx uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scopeToLambda[scopeIdx]; !ok {
		r.scopeToLambda[scopeIdx] = ExecutableLambda{}
	}
}

// UpdateExecutableLambda lets Layer 2B write back compiled content for a
// scope registered via RegisterScopeIndex.
func (r *Registry) UpdateExecutableLambda(scopeIdx uint32, lambda ExecutableLambda) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopeToLambda[scopeIdx] = lambda
}

// Lambda returns the lambda for scopeIdx.
func (r *Registry) Lambda(scopeIdx uint32) (ExecutableLambda, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.scopeToLambda[scopeIdx]
	return l, ok
}

// LinkAliasToScope records that idx is defined by scopeIdx.
func (r *Registry) LinkAliasToScope(idx token.ExecAliasIndex, scopeIdx uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliasToScope[idx] = scopeIdx
}

// ScopeForAlias returns the defining scope for idx.
func (r *Registry) ScopeForAlias(idx token.ExecAliasIndex) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.aliasToScope[idx]
	return s, ok
}

// LinkSpecializationToParent records that the exec scope at scopeIdx is a
// specialisation of parentAliasName.
func (r *Registry) LinkSpecializationToParent(scopeIdx uint32, parentAliasName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specializationToParent[scopeIdx] = parentAliasName
}

// ParentOfSpecialization returns the parent alias name for a specialisation
// scope.
func (r *Registry) ParentOfSpecialization(scopeIdx uint32) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.specializationToParent[scopeIdx]
	return name, ok
}

// UnregisteredAliases returns alias names that were registered but never
// looked up successfully from a call site — the "unused alias" lint the
// original implementation's alias_reverse_map bookkeeping supports (see
// SPEC_FULL.md's Supplemented Features section). called is the set of
// alias indices Lookup has returned during this compilation.
func (r *Registry) UnregisteredAliases(called map[token.ExecAliasIndex]bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for i, name := range r.aliases {
		if !called[token.ExecAliasIndex(i)] {
			out = append(out, name)
		}
	}
	return dedupSorted(out)
}

func dedupSorted(ss []string) []string {
	s := stringSlice(ss)
	unique.Sort(&s)
	return []string(s)
}

type stringSlice []string

func (s stringSlice) Len() int           { return len(s) }
func (s stringSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *stringSlice) Cut(i, j int)      { *s = append((*s)[:i], (*s)[j:]...) }
