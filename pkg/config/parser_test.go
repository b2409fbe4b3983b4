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
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🔧 stubParser parses nothing and accepts one file name
type stubParser struct {
	name string
}

func (p *stubParser) CanParse(filename string) bool { return filename == p.name }

func (p *stubParser) Parse(context.Context, []byte) (*Manifest, error) { return &Manifest{}, nil }

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	stub := &stubParser{name: "custom.manifest"}
	Register(stub)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, Parser(stub), GetParser("custom.manifest"))
	assert.Nil(t, GetParser("scaffold.yaml"), "built-in parsers were reset")
}

// 🧪 TestGetParser tests that each manifest name has a parser
func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{filename: "scaffold.yaml", want: &YAMLParser{}},
		{filename: "scaffold.YML", want: &YAMLParser{}},
		{filename: "scaffold.hcl", want: &HCLParser{}},
		{filename: "scaffold.json", want: &JSONParser{}},
		{filename: "scaffold.jsonc", want: &JSONParser{}},
		{filename: "scaffold.toml", want: &TOMLParser{}},
		{filename: ".scaffoldrc", want: &rcParser{}},
		{filename: "scaffold.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}

	for _, name := range ManifestNames {
		assert.NotNil(t, GetParser(name), "manifest name %s has no parser", name)
	}
}
