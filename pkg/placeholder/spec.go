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

package placeholder

import (
	"slices"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Type is how a placeholder value is collected interactively
type Type string

const (
	TypeInput    Type = "input"    // free text
	TypeConfirm  Type = "confirm"  // yes/no, stored as "true" or "false"
	TypeSelect   Type = "select"   // one of Choices
	TypePassword Type = "password" // free text, masked while typing
)

// Valid reports whether t is a known type. The empty type means input.
func (t Type) Valid() bool {
	switch t {
	case "", TypeInput, TypeConfirm, TypeSelect, TypePassword:
		return true
	}
	return false
}

// 📝 Spec describes one placeholder and how to ask for it
type Spec struct {
	Name    string   // Placeholder name as referenced in <%= name %>
	Type    Type     // Prompt type, input when empty
	Message string   // Prompt text, the name when empty
	Default string   // Value offered by default
	Choices []string // Options for TypeSelect
}

// Kind returns the spec's type with the input default applied.
func (s Spec) Kind() Type {
	if s.Type == "" {
		return TypeInput
	}
	return s.Type
}

// Prompt returns the text to show the user.
func (s Spec) Prompt() string {
	if s.Message == "" {
		return s.Name
	}
	return s.Message
}

// 🔍 Validate checks that the spec can be prompted for
func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.Errorf("placeholder name is required")
	}
	if !s.Type.Valid() {
		return errors.Errorf("placeholder %s: unknown type %q", s.Name, s.Type)
	}
	switch s.Kind() {
	case TypeSelect:
		if len(s.Choices) == 0 {
			return errors.Errorf("placeholder %s: select requires choices", s.Name)
		}
		if s.Default != "" && !slices.Contains(s.Choices, s.Default) {
			return errors.Errorf("placeholder %s: default %q is not one of the choices", s.Name, s.Default)
		}
	case TypeConfirm:
		if s.Default != "" {
			if _, err := strconv.ParseBool(s.Default); err != nil {
				return errors.Errorf("placeholder %s: confirm default must be a boolean: %w", s.Name, err)
			}
		}
	}
	return nil
}

// ValidateAll validates every spec and rejects duplicate names.
func ValidateAll(specs []Spec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return errors.Errorf("placeholder %s is declared more than once", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Names returns the names of specs, in order.
func Names(specs []Spec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}
