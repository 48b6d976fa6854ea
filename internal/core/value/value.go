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

// Package value defines the dynamic value model the resolver rewrites:
// null, bool, int, float, string, ordered sequences, keyed mappings, and the
// Undefined sentinel. Undefined is distinct from Null and is never produced
// by a template author — only the engine emits it, to mark "absent" in a
// way that survives composition and is pruned at container boundaries.
package value

import "fmt"

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ListKind
	MapKind
	UndefinedKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	case UndefinedKind:
		return "undefined"
	default:
		return "invalid"
	}
}

// A Value is any node flowing through the resolver.
type Value interface {
	Kind() Kind
}

// Null is the literal null value. It is always preserved verbatim in
// outputs; never pruned.
type Null struct{}

func (Null) Kind() Kind { return NullKind }

type Bool bool

func (Bool) Kind() Kind { return BoolKind }

type Int int64

func (Int) Kind() Kind { return IntKind }

type Float float64

func (Float) Kind() Kind { return FloatKind }

type String string

func (String) Kind() Kind { return StringKind }

// List is an ordered sequence of values.
type List []Value

func (List) Kind() Kind { return ListKind }

// Map is an insertion-ordered keyed mapping. Keys is the surviving
// insertion order; Fields holds the values. Map never stores Undefined
// values directly — callers use Set, which drops Undefined writes, so the
// invariant "no key maps to Undefined" holds by construction.
type Map struct {
	Keys   []string
	Fields map[string]Value
}

func (*Map) Kind() Kind { return MapKind }

// NewMap returns an empty, ready-to-use Map.
func NewMap() *Map {
	return &Map{Fields: map[string]Value{}}
}

// Get reports the value bound to key and whether key is present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.Fields[key]
	return v, ok
}

// Set writes key -> v, appending key to Keys the first time it is seen and
// preserving its existing position on overwrite. A write of Undefined
// deletes the key instead, matching the walker's pruning rule for the
// common case where callers build a Map incrementally rather than through
// the walker.
func (m *Map) Set(key string, v Value) {
	if v == Undefined {
		m.Delete(key)
		return
	}
	if _, ok := m.Fields[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.Fields[key] = v
}

// Delete removes key, if present.
func (m *Map) Delete(key string) {
	if _, ok := m.Fields[key]; !ok {
		return
	}
	delete(m.Fields, key)
	for i, k := range m.Keys {
		if k == key {
			m.Keys = append(m.Keys[:i], m.Keys[i+1:]...)
			break
		}
	}
}

// Len reports the number of surviving keys.
func (m *Map) Len() int { return len(m.Keys) }

// Clone returns a shallow copy sharing no backing arrays with m, safe to
// mutate independently (§5: the engine never mutates a parent's container).
func (m *Map) Clone() *Map {
	out := NewMap()
	out.Keys = append([]string(nil), m.Keys...)
	for k, v := range m.Fields {
		out.Fields[k] = v
	}
	return out
}

// undefinedValue is the unexported type behind the Undefined sentinel, so
// no caller can construct a second instance that would compare unequal by
// interface identity but equal by reflection.
type undefinedValue struct{}

func (undefinedValue) Kind() Kind { return UndefinedKind }

// Undefined is the process-wide sentinel marking "absent". It is reference-
// comparable: Undefined == v is the only correct way to test for it.
var Undefined Value = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v Value) bool { return v == Undefined }

// GoString renders v for diagnostics; it is not used on any resolver
// success path.
func (m *Map) GoString() string { return fmt.Sprintf("Map(%d keys)", len(m.Keys)) }
