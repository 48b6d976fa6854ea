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

// Command fpml resolves a JSON or YAML template against a resource.
package main

import (
	"fmt"
	"os"

	"github.com/fpml-lang/fpml-go/cmd/fpml/cmd"
)

func main() {
	os.Exit(run())
}

// run is split out from main so testscript can re-exec this binary in
// process (TestMain) without os.Exit tearing down the test harness.
func run() int {
	if err := cmd.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fpml:", err)
		return 1
	}
	return 0
}
