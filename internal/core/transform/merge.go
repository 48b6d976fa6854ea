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

// applyMerge implements spec.md §4.4.3: each resolved item is merged into
// a copy of the surrounding node, later items overriding earlier ones on
// key collisions. Null and Undefined items are skipped; anything else
// that is not a mapping is a shape error.
func applyMerge(g *Gateway, path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (*matchResult, error) {
	mergeKey := findKey(node, labelMerge)
	if mergeKey == "" {
		return nil, nil
	}

	raw, _ := node.Get(mergeKey)
	var items []value.Value
	if lst, ok := raw.(value.List); ok {
		items = []value.Value(lst)
	} else {
		items = []value.Value{raw}
	}

	merged := node.Clone()
	merged.Delete(mergeKey)

	for _, item := range items {
		result, err := g.Resolve(path, resource, item, ctx)
		if err != nil {
			return nil, err
		}
		if value.IsUndefined(result) {
			continue
		}
		if _, isNull := result.(value.Null); isNull {
			continue
		}
		m, ok := result.(*value.Map)
		if !ok {
			return nil, errors.Newf(path, "Merge block must contain object")
		}
		for _, k := range m.Keys {
			v, _ := m.Get(k)
			merged.Set(k, v)
		}
	}
	return &matchResult{node: merged}, nil
}
