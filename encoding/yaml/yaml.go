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

// Package yaml converts between YAML bytes and the resolver's value.Value
// tree, built on gopkg.in/yaml.v3's own order-preserving yaml.Node API
// rather than its map[string]any decode target, since the latter loses the
// source document's key order (spec.md §8: "Key ordering in results equals
// insertion order of surviving keys in the template").
package yaml

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// Decode parses b as YAML and converts it to a Value.
func Decode(b []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return value.Null{}, nil
	}
	return fromNode(doc.Content[0])
}

func fromNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null{}, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		out := make(value.List, len(n.Content))
		for i, e := range n.Content {
			v, err := fromNode(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case yaml.MappingNode:
		m := value.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: unsupported non-scalar map key at line %d", keyNode.Line)
			}
			v, err := fromNode(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("yaml: unsupported node kind %v", n.Kind)
	}
}

func fromScalar(n *yaml.Node) (value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Null{}, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return value.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, err
		}
		return value.Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, err
		}
		return value.Float(f), nil
	default:
		return value.String(n.Value), nil
	}
}

// Encode renders v as YAML, building a yaml.Node tree directly so a *Map's
// keys are emitted in Map.Keys order instead of going through
// value.ToGo's map[string]any (whose key order yaml.v3 would otherwise
// re-sort on marshal, the same ordering hazard as plain map iteration).
func Encode(v value.Value) ([]byte, error) {
	n, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

func toNode(v value.Value) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil, value.Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(x))}, nil
	case value.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(x), 10)}, nil
	case value.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(float64(x), 'g', -1, 64)}, nil
	case value.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(x)}, nil
	case value.List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			child, err := toNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case *value.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.Keys {
			fv, _ := x.Get(k)
			child, err := toNode(fv)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				child,
			)
		}
		return n, nil
	default:
		if value.IsUndefined(v) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		return nil, fmt.Errorf("yaml: unsupported value type %T", v)
	}
}
