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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/fsys"
	"github.com/walteh/scaffoldrc/pkg/operation"
	"github.com/walteh/scaffoldrc/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for manifest parsers
type Parser interface {
	// 📝 Parse parses the manifest from bytes
	Parse(ctx context.Context, data []byte) (*Manifest, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🏷️ Placeholder is a placeholder as written in a manifest
type Placeholder struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty"`
}

// Spec converts p to a placeholder.Spec.
func (p Placeholder) Spec() placeholder.Spec {
	return placeholder.Spec{
		Name:    p.Name,
		Type:    placeholder.Type(p.Type),
		Message: p.Message,
		Default: p.Default,
		Choices: p.Choices,
	}
}

// 📚 Manifest is the optional file at the top of a template directory
type Manifest struct {
	Template     string        `json:"template,omitempty" yaml:"template,omitempty" toml:"template,omitempty"`             // Directory to copy, relative to the manifest
	Placeholders []Placeholder `json:"placeholders,omitempty" yaml:"placeholders,omitempty" toml:"placeholders,omitempty"` // Values the template needs
	Overwrite    bool          `json:"overwrite,omitempty" yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`          // Replace existing files
	Symlinks     string        `json:"symlinks,omitempty" yaml:"symlinks,omitempty" toml:"symlinks,omitempty"`             // preserve or follow
	Concurrency  int           `json:"concurrency,omitempty" yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`    // Entries copied at once
	Ignore       []string      `json:"ignore,omitempty" yaml:"ignore,omitempty" toml:"ignore,omitempty"`                   // Globs that are never copied

	location string
}

// Specs returns the manifest's placeholders as specs.
func (m *Manifest) Specs() []placeholder.Spec {
	out := make([]placeholder.Spec, len(m.Placeholders))
	for i, p := range m.Placeholders {
		out[i] = p.Spec()
	}
	return out
}

// SymlinkMode parses Symlinks. An empty value returns the zero mode.
func (m *Manifest) SymlinkMode() (operation.SymlinkMode, error) {
	if m.Symlinks == "" {
		return 0, nil
	}
	return operation.ParseSymlinkMode(m.Symlinks)
}

// Location returns the file the manifest was loaded from.
func (m *Manifest) Location() string {
	return m.location
}

// 🔍 Validate checks if the manifest is valid
func (m *Manifest) Validate() error {
	if err := placeholder.ValidateAll(m.Specs()); err != nil {
		return err
	}
	if _, err := m.SymlinkMode(); err != nil {
		return err
	}
	if m.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", m.Concurrency)
	}
	if _, err := fsys.NewGlobFilter(m.Ignore...); err != nil {
		return err
	}
	if filepath.IsAbs(m.Template) {
		return errors.Errorf("template must be relative to the manifest, got %s", m.Template)
	}
	return nil
}

// 📝 String returns a string representation of the manifest
func (m *Manifest) String() string {
	return fmt.Sprintf("%s (%d placeholders, symlinks=%s)", m.location, len(m.Placeholders), m.Symlinks)
}

// 🎯 Load loads the manifest from a file
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading manifest")

	// Read manifest file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading manifest file: %w", err)
	}

	// Get parser
	p := GetParser(filepath.Base(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse manifest
	m, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing manifest %s: %w", path, err)
	}
	m.location = path

	// Validate
	if err := m.Validate(); err != nil {
		return nil, errors.Errorf("validating manifest %s: %w", path, err)
	}

	return m, nil
}

func hasSuffixFold(filename string, suffixes ...string) bool {
	lower := strings.ToLower(filename)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}
