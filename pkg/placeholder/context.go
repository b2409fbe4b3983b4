// Copyright 2025 walteh LLC
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

package placeholder

import (
	"maps"
	"slices"
)

// 🔒 Context is the resolved set of placeholder values for one run
//
// A Context has no setters. NewContext copies its input, and Map returns a
// copy, so a Context cannot change once built.
type Context struct {
	values map[string]string
}

// NewContext builds a Context from a copy of values.
func NewContext(values map[string]string) Context {
	return Context{values: maps.Clone(values)}
}

// Lookup returns the value for name and whether it is set.
func (c Context) Lookup(name string) (string, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Get returns the value for name, or the empty string.
func (c Context) Get(name string) string {
	return c.values[name]
}

// Len returns the number of values.
func (c Context) Len() int {
	return len(c.values)
}

// Keys returns the set names in sorted order.
func (c Context) Keys() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Map returns a copy of the values.
func (c Context) Map() map[string]string {
	out := maps.Clone(c.values)
	if out == nil {
		out = map[string]string{}
	}
	return out
}
