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

package errors_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go/errors"
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
)

func TestErrorMessageShape(t *testing.T) {
	p := scopepath.Root().Append(scopepath.Key("a")).Append(scopepath.Index(1))
	err := errors.Newf(p, "Merge block must contain object")
	qt.Assert(t, qt.Equals(err.Error(), `Merge block must contain object. Path 'a.1'`))
	qt.Assert(t, qt.Equals(err.Path(), "a.1"))
	qt.Assert(t, qt.Equals(err.Message(), "Merge block must contain object"))
}

func TestErrorOnRootHasEmptyPath(t *testing.T) {
	err := errors.New(scopepath.Root(), "boom")
	qt.Assert(t, qt.Equals(err.Path(), ""))
	qt.Assert(t, qt.Equals(err.Error(), "boom. Path ''"))
}
