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

package value

import "fmt"

// FromGo converts an arbitrary Go value produced by a decoder (encoding/json,
// gopkg.in/yaml.v3, or a hand-built literal in a test) into the resolver's
// Value model. Maps are read in an arbitrary order and then sorted by
// nothing in particular beyond Go map iteration — callers that need a
// deterministic Keys order (e.g. a template literal) should build *Map
// directly instead of round-tripping through FromGo.
func FromGo(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int64:
		return Int(x)
	case float64:
		// encoding/json and yaml.v3 both decode numbers as float64 by
		// default; keep integral-looking floats as Int so templates that
		// compare against literal ints behave as expected.
		if x == float64(int64(x)) {
			return Int(int64(x))
		}
		return Float(x)
	case string:
		return String(x)
	case []any:
		out := make(List, len(x))
		for i, e := range x {
			out[i] = FromGo(e)
		}
		return out
	case map[string]any:
		m := NewMap()
		for k, e := range x {
			m.Set(k, FromGo(e))
		}
		return m
	case map[any]any:
		m := NewMap()
		for k, e := range x {
			m.Set(fmt.Sprint(k), FromGo(e))
		}
		return m
	default:
		panic(fmt.Sprintf("value: FromGo: unsupported Go type %T", v))
	}
}

// ToGo converts v back to a plain Go value (bool, int64, float64, string,
// nil, []any, map[string]any) suitable for handing to an external
// expression evaluator or a JSON/YAML encoder. Undefined converts to nil,
// matching the API boundary rule in spec.md §6.1. A Map never holds it
// (Set drops Undefined writes); a List can, unless the walker has already
// compacted it, and such an element also converts to nil.
func ToGo(v Value) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Null:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case List:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = ToGo(e)
		}
		return out
	case *Map:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys {
			out[k] = ToGo(x.Fields[k])
		}
		return out
	case undefinedValue:
		return nil
	default:
		panic(fmt.Sprintf("value: ToGo: unsupported Value type %T", v))
	}
}
