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

// Package registry implements the "namespace chain with no shadowing"
// pattern shared by TypeRegistry and FunctionRegistry (spec.md §4.3).
package registry

import "fmt"

// GlobalNamespace is the sentinel namespace rooting every namespace
// hierarchy.
const GlobalNamespace = "__global__"

// ShadowingError reports that identifier could not be registered in ns
// because it already exists in a namespace on the same ancestor/descendant
// chain (spec.md §4.3).
type ShadowingError struct {
	Identifier string
	Namespace  string
	Conflict   string
}

func (e *ShadowingError) Error() string {
	return fmt.Sprintf("shadowing violation: %q already declared in namespace %q, conflicts with namespace %q", e.Identifier, e.Conflict, e.Namespace)
}

// chain holds the namespace parent map shared by both registries. It is
// not exported: TypeRegistry and FunctionRegistry each embed one and add
// their own identifier -> descriptor maps on top, since the descriptor
// shapes differ (types never overload, functions do).
type chain struct {
	parents  map[string]string   // namespace -> parent namespace
	children map[string][]string // namespace -> direct children
}

func newChain() chain {
	c := chain{
		parents:  map[string]string{GlobalNamespace: GlobalNamespace},
		children: map[string][]string{},
	}
	return c
}

// ensureNamespace registers ns under parent, defaulting to GlobalNamespace
// when parent is empty. A dotted ns is not split: its ancestors are known
// only once they have been registered themselves.
func (c *chain) ensureNamespace(ns, parent string) {
	if ns == "" {
		ns = GlobalNamespace
	}
	if parent == "" {
		parent = GlobalNamespace
	}
	if _, ok := c.parents[ns]; ok {
		return
	}
	c.parents[ns] = parent
	c.children[parent] = append(c.children[parent], ns)
}

// Chain returns [ns, parent(ns), ..., __global__]. An unregistered ns is
// treated as a direct child of __global__.
func (c *chain) Chain(ns string) []string {
	if ns == "" {
		ns = GlobalNamespace
	}
	var out []string
	seen := map[string]bool{}
	cur := ns
	for {
		out = append(out, cur)
		seen[cur] = true
		if cur == GlobalNamespace {
			break
		}
		parent, ok := c.parents[cur]
		if !ok {
			parent = GlobalNamespace
		}
		if seen[parent] {
			break
		}
		cur = parent
	}
	return out
}

// ancestors returns Chain(ns) excluding ns itself.
func (c *chain) ancestors(ns string) []string {
	full := c.Chain(ns)
	if len(full) == 0 {
		return nil
	}
	return full[1:]
}

// descendants returns the transitive set of namespaces rooted at (but
// excluding) ns.
func (c *chain) descendants(ns string) []string {
	var out []string
	var walk func(string)
	walk = func(n string) {
		for _, child := range c.children[n] {
			out = append(out, child)
			walk(child)
		}
	}
	walk(ns)
	return dedupSorted(out)
}
