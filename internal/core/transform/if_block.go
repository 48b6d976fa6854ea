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
	"fmt"

	"github.com/fpml-lang/fpml-go/errors"
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// applyIf implements "{% if cond %}" / "{% else %}" (spec.md §4.4.5),
// including implicit-merge mode when the node carries keys beyond if/else.
func applyIf(g *Gateway, path scopepath.Path, resource value.Value, node *value.Map, ctx *value.Context) (*matchResult, error) {
	ifKeys := findAllKeys(node, labelIf)
	if len(ifKeys) > 1 {
		return nil, errors.Newf(path, "If block must be presented once")
	}
	elseKeys := findAllKeys(node, labelElse)
	if len(elseKeys) > 1 {
		return nil, errors.Newf(path, "Else block must be presented once")
	}

	var ifKey, elseKey string
	if len(ifKeys) == 1 {
		ifKey = ifKeys[0]
	}
	if len(elseKeys) == 1 {
		elseKey = elseKeys[0]
	}

	if elseKey != "" && ifKey == "" {
		return nil, errors.Newf(path, "Else block must be presented only when if block is presented")
	}
	if ifKey == "" {
		return nil, nil
	}

	cond := classify(ifKey).ifExpr
	guard := fmt.Sprintf("iif(%s, true, false)", cond)
	answers, err := g.Evaluate(path, resource, guard, ctx)
	if err != nil {
		return nil, err
	}
	truthy := len(answers) > 0 && isTrue(answers[0])

	var branch value.Value
	switch {
	case truthy:
		branch, _ = node.Get(ifKey)
	case elseKey != "":
		branch, _ = node.Get(elseKey)
	default:
		branch = nil
	}

	var newNode value.Value = value.Undefined
	if branch != nil {
		newNode, err = g.Resolve(path, resource, branch, ctx)
		if err != nil {
			return nil, err
		}
	}

	expectedKeys := 1
	if elseKey != "" {
		expectedKeys = 2
	}
	implicitMerge := node.Len() != expectedKeys
	if !implicitMerge {
		return &matchResult{node: newNode}, nil
	}

	m, isMap := newNode.(*value.Map)
	_, isNull := newNode.(value.Null)
	if !isMap && !isNull && !value.IsUndefined(newNode) {
		return nil, errors.Newf(path, "If/else block must return object for implicit merge into existing node")
	}

	merged := node.Clone()
	merged.Delete(ifKey)
	merged.Delete(elseKey)
	if isMap {
		for _, k := range m.Keys {
			v, _ := m.Get(k)
			merged.Set(k, v)
		}
	}
	return &matchResult{node: merged}, nil
}

func isTrue(v value.Value) bool {
	if b, ok := v.(value.Bool); ok {
		return bool(b)
	}
	return true
}
