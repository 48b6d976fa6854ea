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

// applyContext implements the "{{ expr }}" context block (spec.md §4.4.2):
// its sole key's expression is evaluated against the current resource and
// context, and the sub-template is resolved once per resulting value with
// that value standing in as the new resource.
func applyContext(g *Gateway, path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (*matchResult, error) {
	contextKey := findKey(node, labelContext)
	if contextKey == "" {
		return nil, nil
	}
	if node.Len() > 1 {
		return nil, errors.Newf(path, "Context block must be presented as single key")
	}

	expr := classify(contextKey).contextExpr
	answers, err := g.Evaluate(path, resource, expr, ctx)
	if err != nil {
		return nil, err
	}

	sub, _ := node.Get(contextKey)
	out := make(value.List, len(answers))
	for i, answer := range answers {
		r, err := g.Resolve(path, answer, sub, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return &matchResult{node: out}, nil
}
