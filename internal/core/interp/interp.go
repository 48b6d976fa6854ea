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

// Package interp implements the string interpolator (spec.md §4.3): the
// three path-expression forms that can appear inside a string leaf, and
// the precedence rules between them.
package interp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// arrayForm matches "{[ expr ]}" only when it spans the entire string
// (spec.md §4.3: "matching the whole string").
var arrayForm = regexp.MustCompile(`^\{\[\s*([\s\S]+?)\s*\]\}$`)

// singleForm matches both "{{ expr }}" and "{{+ expr +}}" anywhere in the
// string; the leading "{{+" on the matched text distinguishes nullable
// from plain.
var singleForm = regexp.MustCompile(`\{\{\+?\s*([\s\S]+?)\s*\+?\}\}`)

// Evaluate runs a trimmed expression against whatever resource/context the
// caller has in scope and returns the raw sequence of results. It is
// supplied by the transformer, which binds it to the current path and
// resource so this package stays free of any dependency on the expression
// gateway or the external evaluator.
type Evaluate func(expr string) ([]value.Value, error)

// String processes one string leaf per the precedence rules in spec.md
// §4.3:
//
//   - A whole-string array-template match short-circuits: the result is
//     the raw sequence (never stringified).
//   - A whole-string single-template match returns its typed value as-is.
//   - Otherwise every single-template match is stringified and spliced
//     into the result; an empty-sequence match aborts the whole string to
//     Undefined (plain) or Null (nullable), even under mixed substitution.
//   - A string with no matches at all passes through unchanged.
func String(s string, eval Evaluate) (value.Value, error) {
	if m := arrayForm.FindStringSubmatch(s); m != nil {
		expr := strings.TrimSpace(m[1])
		results, err := eval(expr)
		if err != nil {
			return nil, err
		}
		out := make(value.List, len(results))
		copy(out, results)
		return out, nil
	}

	locs := singleForm.FindAllStringSubmatchIndex(s, -1)
	if locs == nil {
		return value.String(s), nil
	}

	result := s
	for _, loc := range locs {
		whole := s[loc[0]:loc[1]]
		expr := strings.TrimSpace(s[loc[2]:loc[3]])
		nullable := strings.HasPrefix(whole, "{{+")

		results, err := eval(expr)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			if nullable {
				return value.Null{}, nil
			}
			return value.Undefined, nil
		}

		replacement := results[0]
		if whole == s {
			// The single template is the entire string: return the
			// typed value unmodified (number stays number, mapping
			// stays mapping).
			return replacement, nil
		}
		result = strings.ReplaceAll(result, whole, stringify(replacement))
	}
	return value.String(result), nil
}

// stringify renders a scalar substitution for mixed-template strings.
// Containers should not normally reach here (a mapping or list result
// inside a mixed string is unusual but not forbidden by the spec); they
// are rendered with their Kind name rather than panicking, since this is
// a display fallback, not a validated contract.
func stringify(v value.Value) string {
	switch x := v.(type) {
	case value.Null:
		return "null"
	case value.Bool:
		if x {
			return "true"
		}
		return "false"
	case value.Int:
		return strconv.FormatInt(int64(x), 10)
	case value.Float:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case value.String:
		return string(x)
	default:
		return v.Kind().String()
	}
}
