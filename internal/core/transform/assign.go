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

package transform

import (
	"github.com/fpml-lang/fpml-go/errors"
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// binding is one "name: template" pair out of an assign block, in
// declaration order.
type binding struct {
	name string
	tmpl value.Value
}

// applyAssign implements spec.md §4.4.1. It always runs (it is not one of
// the mutually-exclusive matchers) and never short-circuits: every
// binding is evaluated in turn, each seeing the context produced by the
// ones before it.
func applyAssign(g *Gateway, path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (*value.Map, *value.Context, error) {
	assignKey := findKey(node, labelAssign)
	if assignKey == "" {
		return node, ctx, nil
	}

	raw, _ := node.Get(assignKey)
	bindings, err := assignBindings(path, raw)
	if err != nil {
		return nil, nil, err
	}

	cur := ctx
	for _, b := range bindings {
		childPath := path.Append(scopepath.Key(b.name))
		resolved, err := g.Resolve(childPath, resource, b.tmpl, cur)
		if err != nil {
			return nil, nil, err
		}
		if value.IsUndefined(resolved) {
			// "If the resolved value is Undefined, the context binds the
			// name to null so later expressions can reference it without
			// raising" (spec.md §4.4.1).
			resolved = value.Null{}
		}
		cur = cur.Child(b.name, resolved)
	}

	out := node.Clone()
	out.Delete(assignKey)
	return out, cur, nil
}

// assignBindings validates and flattens the assign value into an ordered
// list of single bindings. The error messages match the two distinct
// shape violations spec.md §7.1 calls out: a malformed item inside a
// sequence gets "only one key per object"; anything that is neither a
// single-key mapping nor a sequence of them gets "array or object".
func assignBindings(path scopepath.Path, v value.Value) ([]binding, error) {
	switch x := v.(type) {
	case value.List:
		out := make([]binding, 0, len(x))
		for _, item := range x {
			m, ok := item.(*value.Map)
			if !ok || m.Len() != 1 {
				return nil, errors.Newf(path, "Assign block must accept only one key per object")
			}
			k := m.Keys[0]
			tv, _ := m.Get(k)
			out = append(out, binding{name: k, tmpl: tv})
		}
		return out, nil
	case *value.Map:
		if x.Len() != 1 {
			return nil, errors.Newf(path, "Assign block must accept array or object")
		}
		k := x.Keys[0]
		tv, _ := x.Get(k)
		return []binding{{name: k, tmpl: tv}}, nil
	default:
		return nil, errors.Newf(path, "Assign block must accept array or object")
	}
}

// findKey returns the first key of node classified as want, or "" if none
// matches.
func findKey(node *value.Map, want label) string {
	for _, k := range node.Keys {
		if classify(k).label == want {
			return k
		}
	}
	return ""
}

// findAllKeys returns every key of node classified as want, in order.
func findAllKeys(node *value.Map, want label) []string {
	var out []string
	for _, k := range node.Keys {
		if classify(k).label == want {
			out = append(out, k)
		}
	}
	return out
}
