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

func TestUndefinedIsASingleton(t *testing.T) {
	qt.Assert(t, qt.Equals(value.IsUndefined(value.Undefined), true))
	qt.Assert(t, qt.Equals(value.IsUndefined(value.Null{}), false))
	qt.Assert(t, qt.Equals(value.IsUndefined(value.String("")), false))
}

func TestMapSetDropsUndefined(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))
	m.Set("b", value.Undefined)
	qt.Assert(t, qt.Equals(m.Len(), 1))
	_, ok := m.Get("b")
	qt.Assert(t, qt.Equals(ok, false))
}

func TestMapSetPreservesInsertionOrderAcrossOverwrite(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))
	m.Set("b", value.Int(2))
	m.Set("a", value.Int(3))
	qt.Assert(t, qt.DeepEquals(m.Keys, []string{"a", "b"}))
	v, _ := m.Get("a")
	qt.Assert(t, qt.Equals(v, value.Value(value.Int(3))))
}

func TestMapDeleteIsANoopForMissingKey(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))
	m.Delete("missing")
	qt.Assert(t, qt.Equals(m.Len(), 1))
}

func TestMapCloneIsIndependent(t *testing.T) {
	m := value.NewMap()
	m.Set("a", value.Int(1))
	clone := m.Clone()
	clone.Set("b", value.Int(2))
	qt.Assert(t, qt.Equals(m.Len(), 1))
	qt.Assert(t, qt.Equals(clone.Len(), 2))
}
