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

package interp_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go/internal/core/interp"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// fixedEval returns results keyed by the trimmed expression text, so each
// test can script exactly what the (stubbed) path evaluator would answer.
func fixedEval(answers map[string][]value.Value) interp.Evaluate {
	return func(expr string) ([]value.Value, error) {
		v, ok := answers[expr]
		if !ok {
			return nil, fmt.Errorf("unscripted expression %q", expr)
		}
		return v, nil
	}
}

func TestArrayFormReturnsRawSequence(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"items": {value.Int(1), value.Int(2)},
	})
	out, err := interp.String("{[ items ]}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(out, value.Value(value.List{value.Int(1), value.Int(2)})))
}

func TestArrayFormOnlyMatchesWholeString(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"items": {value.Int(1)},
	})
	out, err := interp.String("prefix {[ items ]}", eval)
	qt.Assert(t, qt.IsNil(err))
	// Not a whole-string match, so it is not the array form; with no
	// "{{ }}" present either, the string passes through unchanged.
	qt.Assert(t, qt.Equals(out, value.Value(value.String("prefix {[ items ]}"))))
}

func TestPlainSingleWholeStringReturnsTypedValue(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"age": {value.Int(42)},
	})
	out, err := interp.String("{{ age }}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.Int(42))))
}

func TestPlainSingleEmptyBecomesUndefined(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"missing": {},
	})
	out, err := interp.String("{{ missing }}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(value.IsUndefined(out), true))
}

func TestNullableSingleEmptyBecomesNull(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"missing": {},
	})
	out, err := interp.String("{{+ missing +}}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.Null{})))
}

func TestMixedSubstitutionStringifiesAndSplices(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"given": {value.String("Ada")},
		"age":   {value.Int(36)},
	})
	out, err := interp.String("Hello {{ given }}, age {{ age }}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.String("Hello Ada, age 36"))))
}

func TestMixedSubstitutionAbortsToUndefinedOnEmptyMatch(t *testing.T) {
	eval := fixedEval(map[string][]value.Value{
		"given":   {value.String("Ada")},
		"missing": {},
	})
	out, err := interp.String("Hello {{ given }}, {{ missing }}", eval)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(value.IsUndefined(out), true))
}

func TestNoTemplateFormsPassesThrough(t *testing.T) {
	out, err := interp.String("plain string", fixedEval(nil))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.String("plain string"))))
}
