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

package scopepath_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
)

func TestRootElidesFromRenderedPath(t *testing.T) {
	p := scopepath.Root().Append(scopepath.Key("a")).Append(scopepath.Index(2)).Append(scopepath.Key("b"))
	qt.Assert(t, qt.Equals(p.String(), "a.2.b"))
}

func TestRootElidesEvenWhenReappearingAfterNestedResolve(t *testing.T) {
	// A nested Resolve call (assign/merge/for/if) starts its own
	// scopepath.Root() and appends onto the caller's path, so the root
	// token can appear more than once in a chain; every occurrence must
	// still collapse out.
	outer := scopepath.Root().Append(scopepath.Key("assign")).Append(scopepath.Key("x"))
	nested := append(outer, scopepath.Root()...)
	nested = nested.Append(scopepath.Key("y"))
	qt.Assert(t, qt.Equals(nested.String(), "assign.x.y"))
}

func TestAppendDoesNotMutateSharedPrefix(t *testing.T) {
	base := scopepath.Root().Append(scopepath.Key("a"))
	left := base.Append(scopepath.Key("left"))
	right := base.Append(scopepath.Key("right"))
	qt.Assert(t, qt.Equals(left.String(), "a.left"))
	qt.Assert(t, qt.Equals(right.String(), "a.right"))
}
