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

package fpml_test

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/fpml-lang/fpml-go"
	"github.com/fpml-lang/fpml-go/eval"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

// fieldEvaluator treats every expression as a dotted path, resolved
// against either the current resource (bare name) or the flattened
// context (a "%"-prefixed name), deep enough to drive the end-to-end
// scenarios below without depending on any particular path grammar.
type fieldEvaluator struct{}

func (fieldEvaluator) Evaluate(resource value.Value, expression string, ctx map[string]value.Value, opts eval.Options) ([]value.Value, error) {
	if strings.HasPrefix(expression, "%") {
		parts := strings.Split(expression[1:], ".")
		v, ok := ctx[parts[0]]
		if !ok {
			return nil, nil
		}
		return lookup(v, parts[1:])
	}
	return lookup(resource, strings.Split(expression, "."))
}

func lookup(v value.Value, parts []string) ([]value.Value, error) {
	for _, p := range parts {
		m, ok := v.(*value.Map)
		if !ok {
			if getter, ok := v.(interface {
				Get(string) (value.Value, error)
			}); ok {
				got, err := getter.Get(p)
				if err != nil {
					return nil, err
				}
				v = got
				continue
			}
			return nil, nil
		}
		next, ok := m.Get(p)
		if !ok {
			return nil, nil
		}
		v = next
	}
	return []value.Value{v}, nil
}

func patient() *value.Map {
	name := value.NewMap()
	name.Set("given", value.String("Ada"))
	p := value.NewMap()
	p.Set("resourceType", value.String("Patient"))
	p.Set("name", name)
	return p
}

func TestResolveInterpolatesFromResource(t *testing.T) {
	tmpl := value.NewMap()
	tmpl.Set("greeting", value.String("Hello {{ name.given }}"))

	out, err := fpml.Resolve(patient(), tmpl, nil, fpml.Options{}, false, fieldEvaluator{})
	qt.Assert(t, qt.IsNil(err))
	m := out.(*value.Map)
	v, _ := m.Get("greeting")
	qt.Assert(t, qt.Equals(v, value.Value(value.String("Hello Ada"))))
}

func TestResolveTopLevelUndefinedBecomesNull(t *testing.T) {
	tmpl := value.String("{{ missing }}")
	out, err := fpml.Resolve(patient(), tmpl, nil, fpml.Options{}, false, fieldEvaluator{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.Null{})))
}

func TestResolveContextAlwaysNamesOriginalResource(t *testing.T) {
	tmpl := value.NewMap()
	tmpl.Set("again", value.String("{{ %context.resourceType }}"))

	out, err := fpml.Resolve(patient(), tmpl, nil, fpml.Options{}, false, fieldEvaluator{})
	qt.Assert(t, qt.IsNil(err))
	m := out.(*value.Map)
	v, _ := m.Get("again")
	qt.Assert(t, qt.Equals(v, value.Value(value.String("Patient"))))
}

func TestResolveCallerContextOverridesExceptReservedName(t *testing.T) {
	tmpl := value.String("{{ %extra }}-{{ %context.resourceType }}")
	ctx := map[string]value.Value{
		"extra":          value.String("provided"),
		value.ContextKey: value.String("must not leak through"),
	}
	out, err := fpml.Resolve(patient(), tmpl, ctx, fpml.Options{}, false, fieldEvaluator{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.String("provided-Patient"))))
}

func TestResolveStrictModeForbidsDirectResourceAccess(t *testing.T) {
	// The gateway flattens every evaluator failure into a validation error
	// carrying the path (spec.md §7.2), so strict mode's ForbiddenAccess
	// surfaces as text here, not as a typed error.
	tmpl := value.String("{{ name.given }}")
	_, err := fpml.Resolve(patient(), tmpl, nil, fpml.Options{}, true, fieldEvaluator{})
	qt.Assert(t, qt.ErrorMatches(err, ".*forbidden access to resource property 'name'.*"))
}

func TestResolveStrictModeStillReachesResourceThroughContext(t *testing.T) {
	tmpl := value.String("{{ %context.name.given }}")
	out, err := fpml.Resolve(patient(), tmpl, nil, fpml.Options{}, true, fieldEvaluator{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(out, value.Value(value.String("Ada"))))
}

func TestMustResolvePanicsOnError(t *testing.T) {
	tmpl := value.NewMap()
	tmpl.Set("{% assign %}", value.Int(1)) // not array-or-object: invalid shape
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	fpml.MustResolve(patient(), tmpl, nil, fpml.Options{}, false, fieldEvaluator{})
	t.Fatal("expected panic")
}
