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

import "github.com/mpvl/unique"

// stringSlice adapts []string to mpvl/unique's Interface (sort.Interface
// plus Cut) so the transitive-descendants list built during anti-shadowing
// checks can be deduplicated in place, the way
// cuelang.org/go carries this dependency for its own set-cleanup needs.
type stringSlice []string

func (s stringSlice) Len() int           { return len(s) }
func (s stringSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s stringSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *stringSlice) Cut(i, j int)      { *s = append((*s)[:i], (*s)[j:]...) }

// dedupSorted sorts ns and removes duplicate namespace paths in place,
// returning the deduplicated slice.
func dedupSorted(ns []string) []string {
	s := stringSlice(ns)
	unique.Sort(&s)
	return []string(s)
}
