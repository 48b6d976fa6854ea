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

// Package fpml resolves a template value tree against a resource, per
// spec.md. It is the single public entry point; everything under
// internal/ is plumbing this package wires together.
package fpml

import (
	"github.com/fpml-lang/fpml-go/eval"
	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
	"github.com/fpml-lang/fpml-go/internal/core/transform"
	"github.com/fpml-lang/fpml-go/internal/core/value"
	"github.com/fpml-lang/fpml-go/internal/guard"
)

// Value re-exports the resolver's value model so callers never have to
// import internal/core/value directly.
type Value = value.Value

var (
	Null      = value.Null{}
	Undefined = value.Undefined
)

func Bool(b bool) Value     { return value.Bool(b) }
func Int(n int64) Value     { return value.Int(n) }
func Float(f float64) Value { return value.Float(f) }
func String(s string) Value { return value.String(s) }
func NewList() value.List   { return value.List{} }
func NewMap() *value.Map    { return value.NewMap() }

// FromGo and ToGo convert between Value and plain Go data (map[string]any,
// []any, string, float64/int64, bool, nil), the shape encoding/json and
// gopkg.in/yaml.v3 unmarshal into.
func FromGo(v any) Value { return value.FromGo(v) }
func ToGo(v Value) any   { return value.ToGo(v) }

// Options carries the two opaque passthrough fields spec.md §6.1 reserves
// for the path evaluator: a caller-supplied model object and a table of
// caller-registered functions. fpml never inspects either; they travel
// unchanged to eval.Evaluator.Evaluate.
type Options struct {
	Model               any
	UserInvocationTable map[string]any
}

// Resolve performs one complete resolve pass of template against resource
// (spec.md §2-§6). ctx seeds the initial variable scope; the reserved
// "context" name is always (re)bound to resource here, overriding any
// caller-supplied entry of that name, so "%context" reliably names the
// original document regardless of strict mode (spec.md §3, §4.6).
//
// When strict is true, the resource actually walked by the template is
// replaced by the guarded facade (spec.md §4.6): field interpolation and
// block conditions see only resourceType and the evaluator's own
// bookkeeping key, raising a validation error on anything else. The real
// resource is still reachable through "%context", matching the Python
// original's own comment that resource is passed as context because the
// original is overridden by strict mode.
//
// A nil ev is not valid; every expression in template that is actually
// evaluated requires a working eval.Evaluator (eval/exprlang.New is the
// reference implementation this module ships).
func Resolve(resource, template Value, ctx map[string]Value, opts Options, strict bool, ev eval.Evaluator) (Value, error) {
	vars := make(map[string]Value, len(ctx)+1)
	for k, v := range ctx {
		vars[k] = v
	}
	vars[value.ContextKey] = resource

	walked := resource
	if strict {
		walked = guard.New()
	}

	g := &transform.Gateway{
		Eval: ev,
		Opts: eval.Options{Model: opts.Model, UserInvocationTable: opts.UserInvocationTable},
	}

	result, err := g.Resolve(scopepath.Root(), walked, template, value.NewContext(vars))
	if err != nil {
		return nil, err
	}
	if value.IsUndefined(result) {
		return value.Null{}, nil
	}
	return result, nil
}

// MustResolve is Resolve for callers who already know template is valid
// (e.g. a value baked in at build time) and would rather panic than plumb
// an error return. It is never used internally; this module's own callers
// (the CLI included) all use Resolve.
func MustResolve(resource, template Value, ctx map[string]Value, opts Options, strict bool, ev eval.Evaluator) Value {
	v, err := Resolve(resource, template, ctx, opts, strict, ev)
	if err != nil {
		panic(err)
	}
	return v
}
