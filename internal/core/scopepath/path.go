// Copyright 2020 CUE Authors
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

// Package scopepath tracks the location of the node currently being
// resolved, purely for error messages (spec.md §3 "Path": "carried through
// recursion solely for error reporting; it does not influence evaluation").
package scopepath

import (
	"strconv"
	"strings"
)

// A Selector is one step of a Path: either a string (mapping key) or an int
// (sequence index).
type Selector struct {
	key   string
	index int
	isKey bool
}

// Key returns a string selector.
func Key(k string) Selector { return Selector{key: k, isKey: true} }

// Index returns an integer selector.
func Index(i int) Selector { return Selector{index: i} }

func (s Selector) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

// RootKey is the distinguished synthetic key the resolver wraps a template
// under before walking it (see the transform package), so the top-level
// template has a stable, elidable path segment. It is exported so the
// transformer can use the exact same string when building the wrapper
// mapping, which is what makes every occurrence of it collapse out of
// rendered paths via the Selector equality check in String, not just the
// one at position zero.
const RootKey = "\x00root"

// rootSelector is the distinguished token prefixing every Path, giving the
// top-level template a stable address even though it is not itself inside a
// mapping key (spec.md §3).
var rootSelector = Selector{key: RootKey, isKey: true}

// Path is a stack of selectors from the synthetic root to the node in
// question.
type Path []Selector

// Root is the Path of the top-level template.
func Root() Path { return Path{rootSelector} }

// Append returns a new Path with sel appended; it never mutates p's backing
// array, so two branches that both append from the same parent Path do not
// interfere (mirrors the Context scope-isolation rule for the same
// underlying reason: shared read-only prefixes, private extensions).
func (p Path) Append(sel Selector) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, sel)
}

// String renders p joined by '.', eliding the root token, per spec.md §6.4.
func (p Path) String() string {
	var parts []string
	for _, sel := range p {
		if sel == rootSelector {
			continue
		}
		parts = append(parts, sel.String())
	}
	return strings.Join(parts, ".")
}
