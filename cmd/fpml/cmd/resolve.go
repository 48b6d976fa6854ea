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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fpml-lang/fpml-go"
	fpmljson "github.com/fpml-lang/fpml-go/encoding/json"
	fpmlyaml "github.com/fpml-lang/fpml-go/encoding/yaml"
	"github.com/fpml-lang/fpml-go/eval/exprlang"
	"github.com/fpml-lang/fpml-go/internal/core/value"
)

func newResolveCmd(logger *log.Logger) *cobra.Command {
	var resourcePath, templatePath, contextPath, outFormat string
	var strict bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "resolve a template against a resource",
		Long: `resolve reads a resource and a template (JSON or YAML, chosen by file
extension) and prints the resolved document.

Example:

	fpml resolve --resource patient.json --template observation.tmpl.yaml
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resourcePath == "" || templatePath == "" {
				return fmt.Errorf("--resource and --template are required")
			}

			resource, err := decodeFile(resourcePath)
			if err != nil {
				return fmt.Errorf("reading resource: %w", err)
			}
			template, err := decodeFile(templatePath)
			if err != nil {
				return fmt.Errorf("reading template: %w", err)
			}

			ctx := map[string]value.Value{}
			if contextPath != "" {
				ctxVal, err := decodeFile(contextPath)
				if err != nil {
					return fmt.Errorf("reading context: %w", err)
				}
				m, ok := ctxVal.(*value.Map)
				if !ok {
					return fmt.Errorf("--context must decode to an object, got %s", ctxVal.Kind())
				}
				for _, k := range m.Keys {
					v, _ := m.Get(k)
					ctx[k] = v
				}
			}

			logger.Debug("resolving", "resource", resourcePath, "template", templatePath, "strict", strict)

			result, err := fpml.Resolve(resource, template, ctx, fpml.Options{}, strict, exprlang.New())
			if err != nil {
				return err
			}

			out, err := encode(result, outFormat)
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&resourcePath, "resource", "", "path to the resource document (JSON or YAML)")
	cmd.Flags().StringVar(&templatePath, "template", "", "path to the template document (JSON or YAML)")
	cmd.Flags().StringVar(&contextPath, "context", "", "path to an optional context document (must decode to an object)")
	cmd.Flags().BoolVar(&strict, "strict", false, "resolve in strict mode, guarding direct resource access")
	cmd.Flags().StringVar(&outFormat, "format", "json", "output format: json or yaml")

	return cmd
}

func decodeFile(path string) (value.Value, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return fpmlyaml.Decode(b)
	}
	return fpmljson.Decode(b)
}

func encode(v value.Value, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return fpmlyaml.Encode(v)
	case "json", "":
		return fpmljson.Encode(v)
	default:
		return nil, fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
