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

package yaml_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go/encoding/yaml"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

func TestDecodePreservesKeyOrder(t *testing.T) {
	out, err := yaml.Decode([]byte("zebra: 1\napple: 2\nmango: 3\n"))
	qt.Assert(t, qt.IsNil(err))

	m, ok := out.(*value.Map)
	qt.Assert(t, qt.Equals(ok, true))
	qt.Assert(t, qt.DeepEquals(m.Keys, []string{"zebra", "apple", "mango"}))
}

func TestDecodePreservesNestedKeyOrder(t *testing.T) {
	out, err := yaml.Decode([]byte("outer:\n  z: 1\n  a: 2\nlist:\n  - b: 1\n    a: 2\n"))
	qt.Assert(t, qt.IsNil(err))

	m := out.(*value.Map)
	qt.Assert(t, qt.DeepEquals(m.Keys, []string{"outer", "list"}))

	outer, _ := m.Get("outer")
	qt.Assert(t, qt.DeepEquals(outer.(*value.Map).Keys, []string{"z", "a"}))

	list, _ := m.Get("list")
	item := list.(value.List)[0].(*value.Map)
	qt.Assert(t, qt.DeepEquals(item.Keys, []string{"b", "a"}))
}

func TestDecodeScalarTypes(t *testing.T) {
	out, err := yaml.Decode([]byte("i: 42\nf: 1.5\nb: true\nn: null\ns: hello\n"))
	qt.Assert(t, qt.IsNil(err))

	want := value.NewMap()
	want.Set("i", value.Int(42))
	want.Set("f", value.Float(1.5))
	want.Set("b", value.Bool(true))
	want.Set("n", value.Null{})
	want.Set("s", value.String("hello"))
	qt.Assert(t, qt.DeepEquals(out, value.Value(want)))
}

func TestEncodePreservesKeyOrder(t *testing.T) {
	m := value.NewMap()
	m.Set("zebra", value.Int(1))
	m.Set("apple", value.Int(2))
	m.Set("mango", value.Int(3))

	out, err := yaml.Encode(m)
	qt.Assert(t, qt.IsNil(err))

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	qt.Assert(t, qt.DeepEquals(lines, []string{"zebra: 1", "apple: 2", "mango: 3"}))
}

func TestEncodeDecodeRoundTripsKeyOrder(t *testing.T) {
	src := []byte("c: 1\nb:\n  y: 1\n  x: 2\na:\n  - 1\n  - 2\n  - 3\n")
	v, err := yaml.Decode(src)
	qt.Assert(t, qt.IsNil(err))

	out, err := yaml.Encode(v)
	qt.Assert(t, qt.IsNil(err))

	v2, err := yaml.Decode(out)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(v2, v))
	qt.Assert(t, qt.DeepEquals(v2.(*value.Map).Keys, []string{"c", "b", "a"}))
}
