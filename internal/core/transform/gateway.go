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

// Package transform implements the block dispatcher (spec.md §4.2, §4.4)
// and the expression gateway (spec.md §4.5): it recognises directive keys
// inside mapping nodes, runs them in fixed priority, and wraps every
// failure from the external path evaluator into a validation error naming
// the expression text and the current path.
package transform

import (
	"github.com/fpml-lang/fpml-go/eval"
	"github.com/fpml-lang/fpml-go/errors"
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
	"github.com/fpml-lang/fpml-go/internal/core/value"
	"github.com/fpml-lang/fpml-go/internal/core/walk"
	"github.com/fpml-lang/fpml-go/internal/core/interp"
)

// Gateway owns the one external collaborator (the path evaluator) for a
// single top-level Resolve call, plus the options forwarded to it
// untouched (spec.md §4.5, §6.1).
type Gateway struct {
	Eval eval.Evaluator
	Opts eval.Options
}

// Evaluate runs expr against resource and the flattened context, wrapping
// any evaluator failure as a validation error (spec.md §4.5, §7.2).
func (g *Gateway) Evaluate(path scopepath.Path, resource value.Value, expr string, ctx *value.Context) ([]value.Value, error) {
	results, err := g.Eval.Evaluate(resource, expr, ctx.Snapshot(), g.Opts)
	if err != nil {
		return nil, errors.Newf(path, "Cannot evaluate '%s': %s", expr, err)
	}
	return results, nil
}

// Resolve performs one complete resolve pass of template against resource,
// per spec.md §2: it wraps template under the synthetic root key so the
// top-level node gets a transform pass and a stable path, walks it, and
// unwraps the result. This is also what every block handler calls to
// resolve a sub-template (an assign binding, a merge item, a for/if
// branch, or a context block's repeated body) — resource only ever
// changes across these nested calls for the context block, which supplies
// a new resource per iterated answer (spec.md §4.4.2).
func (g *Gateway) Resolve(path scopepath.Path, resource value.Value, template value.Value, ctx *value.Context) (value.Value, error) {
	wrapper := value.NewMap()
	wrapper.Set(scopepath.RootKey, template)

	transformFn := func(p scopepath.Path, node value.Value, c *value.Context) (value.Value, *value.Context, error) {
		return g.node(p, resource, node, c)
	}

	result, err := walk.Walk(path, wrapper, ctx, transformFn)
	if err != nil {
		return nil, err
	}
	if value.IsUndefined(result) {
		return value.Undefined, nil
	}
	m, ok := result.(*value.Map)
	if !ok {
		// The wrapper is always a single-key mapping, so only the walker's
		// own Undefined/Map outcomes are reachable here; this branch only
		// guards against a future walk.Walk change that widens its result
		// shape.
		return result, nil
	}
	if v, ok := m.Get(scopepath.RootKey); ok {
		return v, nil
	}
	return value.Undefined, nil
}

// node is the Transform callback (spec.md §4.2): for a mapping it runs the
// block dispatcher, for a string it runs the interpolator, for anything
// else it is the identity.
func (g *Gateway) node(path scopepath.Path, resource value.Value, node value.Value, ctx *value.Context) (value.Value, *value.Context, error) {
	switch n := node.(type) {
	case *value.Map:
		return g.transformMap(path, resource, n, ctx)
	case value.String:
		out, err := g.interpolate(path, resource, string(n), ctx)
		if err != nil {
			return nil, nil, err
		}
		return out, ctx, nil
	default:
		return node, ctx, nil
	}
}

func (g *Gateway) interpolate(path scopepath.Path, resource value.Value, s string, ctx *value.Context) (value.Value, error) {
	return interp.String(s, func(expr string) ([]value.Value, error) {
		return g.Evaluate(path, resource, expr, ctx)
	})
}

// transformMap composes the block handlers in fixed priority (spec.md
// §4.2): assign always runs first and is orthogonal; then context, merge,
// for, if/else are tried in order and the first match wins.
func (g *Gateway) transformMap(path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (value.Value, *value.Context, error) {
	node, ctx, err := applyAssign(g, path, resource, node, ctx)
	if err != nil {
		return nil, nil, err
	}

	type matcher func(*Gateway, scopepath.Path, value.Value, *value.Map, *value.Context) (*matchResult, error)
	matchers := []matcher{applyContext, applyMerge, applyFor, applyIf}

	for _, m := range matchers {
		result, err := m(g, path, resource, node, ctx)
		if err != nil {
			return nil, nil, err
		}
		if result != nil {
			return result.node, ctx, nil
		}
	}
	return node, ctx, nil
}

// matchResult is the Go shape of the original's MatcherResult: a matched
// block yields a replacement node; ctx is reported separately by
// transformMap since only assign extends it.
type matchResult struct {
	node value.Value
}
