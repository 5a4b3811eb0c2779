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

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FunctionDescriptor describes one overload of a declared function.
type FunctionDescriptor struct {
	Name       string
	Namespace  string
	ParamTypes []string
	ScopeIndex uint32
	Called     bool
	CallSites  []CallSite
}

// CallSite records one resolved call to an overload (spec.md §4.3's
// mark_function_called). Each site is stamped with a distinct uuid so that
// repeated calls to the same overload from different source locations
// remain individually addressable in diagnostics.
type CallSite struct {
	ID        uuid.UUID
	Namespace []string
	Offset    int
}

// QualifiedName returns "ns.Name" for diagnostics and call-graph dumps.
func (d *FunctionDescriptor) QualifiedName() string {
	return fmt.Sprintf("%s.%s", d.Namespace, d.Name)
}

// FunctionRegistry maps namespace -> identifier -> overload set. Overload
// resolution follows spec.md §4.3.
type FunctionRegistry struct {
	mu    sync.Mutex
	chain chain
	funcs map[string]map[string][]*FunctionDescriptor
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		chain: newChain(),
		funcs: map[string]map[string][]*FunctionDescriptor{},
	}
}

func (r *FunctionRegistry) RegisterNamespace(ns, parent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chain.ensureNamespace(ns, parent)
}

// Register declares a new overload of id in ns. Overloads of the same
// identifier within ns are not themselves shadowing (arity/type
// distinguishes them); the shadowing check instead asks whether id has
// ever been declared as a *different kind* of identifier in an
// ancestor/descendant namespace is out of this registry's scope (spec.md
// only shadows within one registry's namespace chain at a time) — but a
// function identifier already declared on the ancestor/descendant chain in
// a *different* namespace than ns is still rejected.
func (r *FunctionRegistry) Register(ns, id string, paramTypes []string, scopeIndex uint32) (*FunctionDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ns == "" {
		ns = GlobalNamespace
	}
	r.chain.ensureNamespace(ns, "")

	exists := func(namespace string) bool {
		if namespace == ns {
			return false // overloads within ns are allowed
		}
		m, ok := r.funcs[namespace]
		if !ok {
			return false
		}
		_, ok = m[id]
		return ok
	}
	if err := shadowCheck(&r.chain, ns, id, exists); err != nil {
		return nil, err
	}

	if r.funcs[ns] == nil {
		r.funcs[ns] = map[string][]*FunctionDescriptor{}
	}
	d := &FunctionDescriptor{Name: id, Namespace: ns, ParamTypes: paramTypes, ScopeIndex: scopeIndex}
	r.funcs[ns][id] = append(r.funcs[ns][id], d)
	return d, nil
}

// ResolutionError reports an overload-resolution failure (spec.md §4.3
// point 4: "no viable" or a tie).
type ResolutionError struct {
	Name   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("overload resolution failed for %q: %s", e.Name, e.Reason)
}

// Resolve performs spec.md §4.3's overload resolution: find the overload
// set via the namespace chain (first non-empty namespace wins, no union
// across ancestors), filter to matching arity, score by exact-match
// conversion cost, and pick the unique minimum.
func (r *FunctionRegistry) Resolve(ns, id string, argTypes []string) (*FunctionDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var overloads []*FunctionDescriptor
	for _, n := range r.chain.Chain(ns) {
		if m, ok := r.funcs[n]; ok {
			if set, ok := m[id]; ok && len(set) > 0 {
				overloads = set
				break
			}
		}
	}
	if len(overloads) == 0 {
		return nil, &ResolutionError{Name: id, Reason: "no declaration reachable from namespace " + ns}
	}

	// argTypes being unresolved (spec.md §9's stub note) skips the arity
	// filter entirely: there is nothing to check arity against. A unique
	// overload can still be returned; more than one is unresolvable.
	if argTypes == nil {
		if len(overloads) == 1 {
			return overloads[0], nil
		}
		return nil, &ResolutionError{Name: id, Reason: "argument types unavailable; cannot disambiguate overloads"}
	}

	var candidates []*FunctionDescriptor
	for _, o := range overloads {
		if len(o.ParamTypes) == len(argTypes) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil, &ResolutionError{Name: id, Reason: "no overload with matching arity"}
	}

	type scored struct {
		fn   *FunctionDescriptor
		cost int
	}
	var best []scored
	bestCost := -1
	for _, c := range candidates {
		cost, ok := conversionCost(c.ParamTypes, argTypes)
		if !ok {
			continue
		}
		switch {
		case bestCost < 0 || cost < bestCost:
			bestCost = cost
			best = []scored{{c, cost}}
		case cost == bestCost:
			best = append(best, scored{c, cost})
		}
	}
	switch len(best) {
	case 0:
		return nil, &ResolutionError{Name: id, Reason: "no viable conversion for any candidate"}
	case 1:
		return best[0].fn, nil
	default:
		return nil, &ResolutionError{Name: id, Reason: "ambiguous call: multiple candidates with identical conversion cost"}
	}
}

// conversionCost implements spec.md §4.3 point 3: exact match costs 0; any
// other difference makes the candidate non-viable, since no other
// conversions are defined in this spec.
func conversionCost(params, args []string) (int, bool) {
	cost := 0
	for i := range params {
		if params[i] != args[i] {
			return 0, false
		}
	}
	return cost, true
}

// MarkCalled records a call site against the resolved overload, per
// spec.md §4.3's mark_function_called.
func (r *FunctionRegistry) MarkCalled(fn *FunctionDescriptor, namespacePath []string, offset int) CallSite {
	r.mu.Lock()
	defer r.mu.Unlock()
	site := CallSite{ID: uuid.New(), Namespace: append([]string(nil), namespacePath...), Offset: offset}
	fn.Called = true
	fn.CallSites = append(fn.CallSites, site)
	return site
}
