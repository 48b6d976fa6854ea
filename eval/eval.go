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

// Package eval declares the path-evaluator collaborator interface
// (spec.md §6.2). The resolver treats it as an opaque black box: it must
// accept string expressions in whatever path language the caller chose,
// return a sequence of results, and raise on parse/runtime failure. The
// engine never inspects expression text itself.
package eval

import "github.com/fpml-lang/fpml-go/internal/core/value"

// Options carries the two recognised option keys from spec.md §6.1:
// Model (opaque, forwarded to the evaluator) and UserInvocationTable
// (opaque, forwarded). Both are passed through untouched; the engine does
// not interpret either.
type Options struct {
	Model               any
	UserInvocationTable map[string]any
}

// Evaluator evaluates a single path expression against a resource and a
// flattened variable context, returning the raw sequence of results. Any
// internal failure (parse error, type error, missing function) should be
// returned as a plain error; the expression gateway (internal/core/
// transform.Gateway) wraps it with the expression text and the current
// path before it becomes a validation error.
type Evaluator interface {
	Evaluate(resource value.Value, expression string, ctx map[string]value.Value, opts Options) ([]value.Value, error)
}
