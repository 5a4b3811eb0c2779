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

package registry

import "sync"

// TypeDescriptor describes one declared type (spec.md §3's
// TypeRegistry/FunctionRegistry state, §4.3).
type TypeDescriptor struct {
	Name          string
	Namespace     string
	Instantiated  bool
	ScopeIndex    uint32
}

// TypeRegistry maps namespace -> identifier -> TypeDescriptor. Unlike
// FunctionRegistry, types never overload: a second registration of the
// same identifier in the same namespace is itself a shadowing conflict.
type TypeRegistry struct {
	mu    sync.Mutex
	chain chain
	types map[string]map[string]*TypeDescriptor
}

// NewTypeRegistry returns an empty, ready-to-use TypeRegistry rooted at
// GlobalNamespace.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		chain: newChain(),
		types: map[string]map[string]*TypeDescriptor{},
	}
}

// RegisterNamespace ensures ns is present in the namespace chain, parented
// under parent (GlobalNamespace if empty).
func (r *TypeRegistry) RegisterNamespace(ns, parent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain.ensureNamespace(ns, parent)
}

// shadowCheck implements spec.md §4.3's three-step shadowing check for
// identifier id being registered into ns, given the "does id exist here"
// probe.
func shadowCheck(c *chain, ns, id string, exists func(namespace string) bool) error {
	for _, ancestor := range c.ancestors(ns) {
		if exists(ancestor) {
			return &ShadowingError{Identifier: id, Namespace: ns, Conflict: ancestor}
		}
	}
	for _, d := range c.descendants(ns) {
		if exists(d) {
			return &ShadowingError{Identifier: id, Namespace: ns, Conflict: d}
		}
	}
	chainHasGlobal := false
	for _, n := range c.Chain(ns) {
		if n == GlobalNamespace {
			chainHasGlobal = true
			break
		}
	}
	if !chainHasGlobal && exists(GlobalNamespace) {
		return &ShadowingError{Identifier: id, Namespace: ns, Conflict: GlobalNamespace}
	}
	return nil
}

// Register declares id as a type in ns. It fails with a *ShadowingError if
// id already exists on ns's ancestor/descendant chain, including a direct
// re-declaration within ns itself.
func (r *TypeRegistry) Register(ns, id string, scopeIndex uint32) (*TypeDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ns == "" {
		ns = GlobalNamespace
	}
	r.chain.ensureNamespace(ns, "")

	exists := func(namespace string) bool {
		m, ok := r.types[namespace]
		if !ok {
			return false
		}
		_, ok = m[id]
		return ok
	}
	if exists(ns) {
		return nil, &ShadowingError{Identifier: id, Namespace: ns, Conflict: ns}
	}
	if err := shadowCheck(&r.chain, ns, id, exists); err != nil {
		return nil, err
	}

	if r.types[ns] == nil {
		r.types[ns] = map[string]*TypeDescriptor{}
	}
	d := &TypeDescriptor{Name: id, Namespace: ns, ScopeIndex: scopeIndex}
	r.types[ns][id] = d
	return d, nil
}

// Resolve walks ns's namespace chain and returns the first matching type
// declaration, per spec.md §4.3's "first match up the chain wins."
func (r *TypeRegistry) Resolve(ns, id string) (*TypeDescriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.chain.Chain(ns) {
		if m, ok := r.types[n]; ok {
			if d, ok := m[id]; ok {
				return d, true
			}
		}
	}
	return nil, false
}

// MarkInstantiated records that a VARIABLE_DECLARATION or TYPE_REFERENCE
// contextual token instantiated the type resolved from ns/id (spec.md
// §4.8(b)).
func (r *TypeRegistry) MarkInstantiated(ns, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.chain.Chain(ns) {
		if m, ok := r.types[n]; ok {
			if d, ok := m[id]; ok {
				d.Instantiated = true
				return true
			}
		}
	}
	return false
}
