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

// Package exprlang is a reference implementation of the eval.Evaluator
// collaborator (spec.md §6.2), built on github.com/expr-lang/expr. It is
// explicitly outside the resolver's "sole scope" (spec.md §1 calls the
// path evaluator an external collaborator) but it is what makes this
// module runnable end to end and gives the CLI a real evaluator to ship
// with — the same seam the Python original fills with the sibling
// `fhirpathpy` package while still treating it as swappable.
//
// To stay a thin, honest adapter rather than a second FHIRPath
// implementation, this package supports a deliberately reduced expression
// surface, documented in DESIGN.md:
//
//   - "%name" and "%name.field.sub" reference the flattened context map.
//   - bare "a.b[0].c" paths reference the resource: every identifier chain
//     not already naming "Resource", "Vars", a reserved keyword, or a
//     function call is rewritten to "Resource.a.b[0].c" before compiling,
//     so spec.md's own worked examples (which never spell "Resource."
//     explicitly) run unmodified.
//   - "iif(cond, a, b)" is registered as an expr function.
//   - "list.where(pred)" is rewritten to expr's builtin pipe filter,
//     "list | filter(pred)", with "$this" rewritten to expr's "#" current-
//     element placeholder and a lone "=" rewritten to "==".
package exprlang

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/fpml-lang/fpml-go/eval"
	"github.com/fpml-lang/fpml-go/internal/core/value"
	"github.com/fpml-lang/fpml-go/internal/guard"
)

// Evaluator implements eval.Evaluator on top of expr-lang/expr.
type Evaluator struct{}

// New returns a ready-to-use Evaluator. It carries no state: expr programs
// are compiled fresh per call, trading a little throughput for not having
// to reason about cache invalidation across distinct resource shapes.
func New() *Evaluator { return &Evaluator{} }

// env is the expr environment: unqualified identifiers resolve against
// Resource, and context variables are reached through Vars (the "%name"
// sugar below rewrites "%name" to "Vars[\"name\"]").
type env struct {
	Resource any
	Vars     map[string]any
}

var varRe = regexp.MustCompile(`%([A-Za-z_]\w*)`)

// resourceAccessRe finds simple "Resource.ident" / "Resource[\"ident\"]"
// references after the "%name" rewrite, so strict mode can enforce the
// guarded-resource whitelist before ever compiling the expression.
var resourceAccessRe = regexp.MustCompile(`Resource(?:\.([A-Za-z_]\w*)|\[\s*"([A-Za-z_]\w*)"\s*\])`)

func (e *Evaluator) Evaluate(resource value.Value, expression string, ctx map[string]value.Value, opts eval.Options) ([]value.Value, error) {
	processed := preprocess(expression)

	var resourceGo any
	if guarded, ok := resource.(*guard.Resource); ok {
		// Populate only the keys the expression actually references (and
		// only once each has cleared the whitelist), so the environment
		// Resource sees is never richer than what guard.Resource itself
		// would answer.
		allowed := map[string]any{}
		for _, m := range resourceAccessRe.FindAllStringSubmatch(processed, -1) {
			key := m[1]
			if key == "" {
				key = m[2]
			}
			v, err := guarded.Get(key)
			if err != nil {
				return nil, err
			}
			allowed[key] = value.ToGo(v)
		}
		resourceGo = allowed
	} else {
		resourceGo = value.ToGo(resource)
	}

	vars := make(map[string]any, len(ctx))
	for k, v := range ctx {
		vars[k] = value.ToGo(v)
	}

	program, err := expr.Compile(processed, expr.Env(env{}), expr.Function("iif", iif))
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(program, env{Resource: resourceGo, Vars: vars})
	if err != nil {
		return nil, err
	}
	return toSequence(out), nil
}

func iif(params ...any) (any, error) {
	if len(params) != 3 {
		return nil, fmt.Errorf("iif: want 3 arguments, got %d", len(params))
	}
	if truthy(params[0]) {
		return params[1], nil
	}
	return params[2], nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case []any:
		return len(x) > 0
	default:
		return true
	}
}

// toSequence normalises an expr result into the sequence contract every
// path expression produces (spec.md §6.2): a nil/missing result is an
// empty sequence (what makes plain "{{ }}" yield Undefined), a slice
// spreads, and anything else is a one-element sequence.
func toSequence(out any) []value.Value {
	if out == nil {
		return nil
	}
	if lst, ok := out.([]any); ok {
		seq := make([]value.Value, len(lst))
		for i, v := range lst {
			seq[i] = value.FromGo(v)
		}
		return seq
	}
	return []value.Value{value.FromGo(out)}
}

var lonelyEqualsRe = regexp.MustCompile(`([^=!<>])=([^=])`)

// preprocess rewrites the reduced FHIRPath-flavoured surface this
// reference evaluator accepts into plain expr syntax. See the package
// doc comment for the exact surface supported.
func preprocess(s string) string {
	s = rewriteWhere(s)
	s = varRe.ReplaceAllString(s, `Vars["$1"]`)
	s = rewriteBarePaths(s)
	s = strings.ReplaceAll(s, "$this", "#")
	// Catch any "=" that survived rewriteWhere's own substitution (a bare
	// "a=b" guard outside a .where(...) predicate, e.g. an "if" key).
	for {
		next := lonelyEqualsRe.ReplaceAllString(s, "$1==$2")
		if next == s {
			break
		}
		s = next
	}
	return s
}

// identsNotRewritten are the names rewriteBarePaths leaves untouched: the
// two env fields, the function names this package registers or expr
// itself supplies, literal keywords, and "$this" (which the caller
// rewrites to "#" after this pass runs).
var identsNotRewritten = map[string]bool{
	"Resource": true,
	"Vars":     true,
	"iif":      true,
	"filter":   true,
	"true":     true,
	"false":    true,
	"nil":      true,
	"null":     true,
	"and":      true,
	"or":       true,
	"not":      true,
	"in":       true,
	"$this":    true,
}

// rewriteBarePaths turns every identifier chain in s that isn't already
// qualified, a reserved keyword, or the name of a function call into
// "Resource.<chain>" — the step that makes a bare "list", "list[0].key",
// or "key" (inside "key='value'") resolve against the resource the way
// spec.md's own worked examples expect, without also mangling the
// identifiers making up a quoted string literal or a chain that merely
// continues a previous expression (e.g. the ".resourceType" in
// `Vars["context"].resourceType`, which is a plain field access on that
// map, not a second bare resource path).
func rewriteBarePaths(s string) string {
	var out strings.Builder
	var last byte
	i := 0
	for i < len(s) {
		c := s[i]

		if c == '\'' || c == '"' {
			j := i + 1
			for j < len(s) && s[j] != c {
				if s[j] == '\\' && j+1 < len(s) {
					j++
				}
				j++
			}
			if j < len(s) {
				j++
			}
			out.WriteString(s[i:j])
			last = s[j-1]
			i = j
			continue
		}

		if c == '.' && (last == ']' || last == ')') {
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			out.WriteString(s[i:j])
			last = s[j-1]
			i = j
			continue
		}

		if isIdentStart(c) {
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			end := j
			for {
				if end < len(s) && s[end] == '.' && end+1 < len(s) && isIdentStart(s[end+1]) {
					k := end + 1
					for k < len(s) && isIdentChar(s[k]) {
						k++
					}
					end = k
					continue
				}
				if end < len(s) && s[end] == '[' {
					k := end + 1
					for k < len(s) && s[k] >= '0' && s[k] <= '9' {
						k++
					}
					if k < len(s) && s[k] == ']' && k > end+1 {
						end = k + 1
						continue
					}
				}
				break
			}

			ident := s[i:j]
			full := s[i:end]
			next := end
			for next < len(s) && (s[next] == ' ' || s[next] == '\t') {
				next++
			}
			isCall := next < len(s) && s[next] == '('

			if isCall || identsNotRewritten[ident] {
				out.WriteString(full)
			} else {
				out.WriteString("Resource.")
				out.WriteString(full)
			}
			last = s[end-1]
			i = end
			continue
		}

		out.WriteByte(c)
		last = c
		i++
	}
	return out.String()
}

func isIdentStart(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b == '_' || b == '$':
		return true
	}
	return false
}

func isIdentChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	}
	return false
}

// rewriteWhere turns every "<receiver>.where(<predicate>)" into
// "(<receiver> | filter(<predicate>))", which is what expr's builtin
// pipe/filter actually supports; expr has no notion of a ".where" method
// on an arbitrary list. Equality inside the predicate is normalised from
// FHIRPath's "=" to expr's "==" before the rewrite, since scanning for the
// receiver/predicate boundary is easiest on the untouched text.
func rewriteWhere(s string) string {
	for {
		idx := strings.Index(s, ".where(")
		if idx < 0 {
			return s
		}

		recvStart := idx
		for recvStart > 0 && isPathChar(s[recvStart-1]) {
			recvStart--
		}
		receiver := s[recvStart:idx]

		predStart := idx + len(".where(")
		depth := 1
		predEnd := predStart
		for predEnd < len(s) && depth > 0 {
			switch s[predEnd] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				break
			}
			predEnd++
		}
		predicate := s[predStart:predEnd]
		predicate = lonelyEqualsRe.ReplaceAllString(predicate, "$1==$2")
		for {
			next := lonelyEqualsRe.ReplaceAllString(predicate, "$1==$2")
			if next == predicate {
				break
			}
			predicate = next
		}

		replacement := "(" + receiver + " | filter(" + predicate + "))"
		s = s[:recvStart] + replacement + s[predEnd+1:]
	}
}

func isPathChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_' || b == '.' || b == '[' || b == ']' || b == '"' || b == '\'' || b == '%':
		return true
	}
	return false
}
