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

// applyFor implements "{% for [index,] item in expr %}" (spec.md §4.4.4).
// The body is resolved once per element against the unchanged resource,
// with the child context extended by the loop item and, if named, the
// 0-based index.
func applyFor(g *Gateway, path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (*matchResult, error) {
	forKey := findKey(node, labelFor)
	if forKey == "" {
		return nil, nil
	}
	if node.Len() > 1 {
		return nil, errors.Newf(path, "For block must be presented as single key")
	}

	c := classify(forKey)
	answers, err := g.Evaluate(path, resource, c.forExpr, ctx)
	if err != nil {
		return nil, err
	}

	sub, _ := node.Get(forKey)
	out := make(value.List, len(answers))
	for i, answer := range answers {
		vars := map[string]value.Value{c.itemVar: answer}
		if c.indexVar != "" {
			vars[c.indexVar] = value.Int(i)
		}
		childCtx := ctx.ChildMap(vars)

		r, err := g.Resolve(path, resource, sub, childCtx)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return &matchResult{node: out}, nil
}
