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

package value_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go/internal/core/value"
)

func TestFromGoIntegralFloatBecomesInt(t *testing.T) {
	qt.Assert(t, qt.Equals(value.FromGo(float64(3)), value.Value(value.Int(3))))
	qt.Assert(t, qt.Equals(value.FromGo(3.5), value.Value(value.Float(3.5))))
}

func TestFromGoNilBecomesNull(t *testing.T) {
	qt.Assert(t, qt.Equals(value.FromGo(nil), value.Value(value.Null{})))
}

func TestToGoRoundTripsContainers(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))
	m.Set("b", value.List{value.String("x"), value.Bool(true)})

	got := value.ToGo(m)
	want := map[string]any{"a": int64(1), "b": []any{"x", true}}
	qt.Assert(t, qt.DeepEquals(got, want))
}

func TestToGoUndefinedBecomesNil(t *testing.T) {
	qt.Assert(t, qt.IsNil(value.ToGo(value.Undefined)))
}
