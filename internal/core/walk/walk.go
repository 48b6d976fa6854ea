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

// Package walk implements the post-order tree walker (spec.md §4.1): it
// applies a caller-supplied transform to every value it encounters, then
// recurses into whatever the transform returned, flattening arrays one
// level and pruning Undefined at every container boundary. The walker
// never interprets directive keys itself — that is the transformer's job
// (internal/core/transform); the walker only knows about containers,
// Undefined, and flattening.
package walk

import (
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// Transform is applied to a single node before the walker recurses into
// whatever it returns. It may also extend the context for the subtree
// rooted at node (e.g. an "assign" or "for" block binding new variables).
type Transform func(path scopepath.Path, node value.Value, ctx *value.Context) (value.Value, *value.Context, error)

// Walk recurses over node in post-order, per spec.md §4.1:
//
//  1. Sequence: each element is transformed, then walked; Undefined
//     results are dropped, sequence results (already flattened by their
//     own walk) are spliced in one level, and an all-empty result
//     collapses to Undefined.
//  2. Mapping: each value is transformed (with the context produced by
//     transforming any earlier sibling NOT affecting later siblings —
//     only transform's own extended context for that one value is used),
//     then walked; surviving keys preserve insertion order; an all-pruned
//     result collapses to Undefined.
//  3. Anything else (a node already reduced to a scalar or string by a
//     sibling's transform) is transformed once more and returned verbatim
//     — this is the walker's base case, not a place for further
//     recursion, matching the teacher's tree-rewrite convention of
//     returning leaves untouched once transformed.
//
// Walk itself never calls transform on a List or Map it is handed
// directly — only on their elements/values — because the caller (the
// public Resolve entry point) supplies the top-level template already
// wrapped in a synthetic single-key mapping (scopepath.Root's sibling,
// see the transform package), which is what gives the top-level template
// a transform pass at all.
func Walk(path scopepath.Path, node value.Value, ctx *value.Context, transform Transform) (value.Value, error) {
	switch n := node.(type) {
	case value.List:
		return walkList(path, n, ctx, transform)
	case *value.Map:
		return walkMap(path, n, ctx, transform)
	default:
		tv, _, err := transform(path, node, ctx)
		if err != nil {
			return nil, err
		}
		return tv, nil
	}
}

func walkList(path scopepath.Path, n value.List, ctx *value.Context, transform Transform) (value.Value, error) {
	var out value.List
	for i, elem := range n {
		childPath := path.Append(scopepath.Index(i))
		tv, tctx, err := transform(childPath, elem, ctx)
		if err != nil {
			return nil, err
		}
		result, err := Walk(childPath, tv, tctx, transform)
		if err != nil {
			return nil, err
		}
		if value.IsUndefined(result) {
			continue
		}
		if nested, ok := result.(value.List); ok {
			// Splice one level: this is the mechanism that lets a block
			// (context/for) expand to a sequence and be concatenated into
			// the enclosing array. Because Walk has already flattened
			// nested's own elements the same way, arrays nested several
			// levels deep collapse fully as well.
			out = append(out, nested...)
		} else {
			out = append(out, result)
		}
	}
	if len(out) == 0 {
		return value.Undefined, nil
	}
	return out, nil
}

func walkMap(path scopepath.Path, n *value.Map, ctx *value.Context, transform Transform) (value.Value, error) {
	out := value.NewMap()
	for _, key := range n.Keys {
		v, _ := n.Get(key)
		childPath := path.Append(scopepath.Key(key))
		tv, tctx, err := transform(childPath, v, ctx)
		if err != nil {
			return nil, err
		}
		result, err := Walk(childPath, tv, tctx, transform)
		if err != nil {
			return nil, err
		}
		if value.IsUndefined(result) {
			continue
		}
		out.Set(key, result)
	}
	if out.Len() == 0 {
		return value.Undefined, nil
	}
	return out, nil
}
