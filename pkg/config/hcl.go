// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
// Environment variables are available as env.NAME:
//
//	placeholder "author" {
//	  default = env.USER
//	}
type HCLParser struct {
	// Environ overrides os.Environ, mostly for tests.
	Environ func() []string
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasSuffixFold(filename, ".hcl")
}

// 📝 Parse parses the manifest from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Manifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "scaffold.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	environ := os.Environ
	if p.Environ != nil {
		environ = p.Environ
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(environ()),
		},
	}

	// Define HCL schema
	type hclPlaceholder struct {
		Name    string   `hcl:"name,label"`
		Type    string   `hcl:"type,optional"`
		Message string   `hcl:"message,optional"`
		Default string   `hcl:"default,optional"`
		Choices []string `hcl:"choices,optional"`
	}
	type hclManifest struct {
		Template     string           `hcl:"template,optional"`
		Overwrite    bool             `hcl:"overwrite,optional"`
		Symlinks     string           `hcl:"symlinks,optional"`
		Concurrency  int              `hcl:"concurrency,optional"`
		Ignore       []string         `hcl:"ignore,optional"`
		Placeholders []hclPlaceholder `hcl:"placeholder,block"`
	}

	var hm hclManifest
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hm)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to manifest
	m := &Manifest{
		Template:    hm.Template,
		Overwrite:   hm.Overwrite,
		Symlinks:    hm.Symlinks,
		Concurrency: hm.Concurrency,
		Ignore:      hm.Ignore,
	}
	for _, ph := range hm.Placeholders {
		m.Placeholders = append(m.Placeholders, Placeholder{
			Name:    ph.Name,
			Type:    ph.Type,
			Message: ph.Message,
			Default: ph.Default,
			Choices: ph.Choices,
		})
	}

	return m, nil
}

func envObject(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
