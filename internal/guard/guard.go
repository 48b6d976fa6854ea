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

// Package guard implements the guarded resource installed as the resource
// in strict mode (spec.md §4.6): a mapping-like facade that allows only two
// whitelisted keys through, returning Null, and raises a ForbiddenAccess
// error on every other key — forcing templates to reach the real document
// through the caller-supplied context instead.
package guard

import "github.com/fpml-lang/fpml-go/internal/core/value"

// PathKey is the reserved implementation key the external path evaluator
// may probe while tracking its own position; it is whitelisted alongside
// resourceType so the evaluator's own bookkeeping never trips strict mode.
const PathKey = "__fpml_path__"

// ResourceTypeKey is the other whitelisted key.
const ResourceTypeKey = "resourceType"

// ForbiddenAccess is the error Get returns for any key outside the
// whitelist. Transformers wrap it into a validation error with path
// information before it reaches a caller (spec.md §7.3).
type ForbiddenAccess struct {
	Key string
}

func (e *ForbiddenAccess) Error() string {
	return "forbidden access to resource property '" + e.Key + "' in strict mode. Use context instead"
}

// Resource is the guarded facade. It implements no interface of its own;
// the reference evaluator checks for it by type (see eval/exprlang's
// Evaluator.Evaluate)
// the way the teacher distinguishes concrete value kinds by type switch
// rather than by marker interface.
type Resource struct{}

// New returns the singleton-shaped guarded resource. A fresh value is
// returned each call (it carries no state), but every instance behaves
// identically, so callers may treat it as if it were a singleton.
func New() *Resource { return &Resource{} }

func (*Resource) Kind() value.Kind { return value.MapKind }

// Get returns (Null, nil) for a whitelisted key, or (nil, *ForbiddenAccess)
// otherwise.
func (*Resource) Get(key string) (value.Value, error) {
	if key == ResourceTypeKey || key == PathKey {
		return value.Null{}, nil
	}
	return nil, &ForbiddenAccess{Key: key}
}
