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

package prompt

import (
	"context"
	"strings"

	"github.com/walteh/scaffoldrc/pkg/placeholder"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// Static answers from a fixed map, falling back to each spec's default.
// It never touches the terminal.
type Static map[string]string

// Defaults answers every placeholder with its declared default.
var Defaults = Static(nil)

// Prompt returns an answer for every spec or fails listing the names that
// have neither an answer nor a default.
func (s Static) Prompt(_ context.Context, specs []placeholder.Spec) (map[string]string, error) {
	answers := make(map[string]string, len(specs))
	var unanswered []string
	for _, spec := range specs {
		if v, ok := s[spec.Name]; ok {
			answers[spec.Name] = v
			continue
		}
		switch {
		case spec.Default != "":
			answers[spec.Name] = spec.Default
		case spec.Kind() == placeholder.TypeConfirm:
			answers[spec.Name] = "false"
		default:
			unanswered = append(unanswered, spec.Name)
		}
	}

	if len(unanswered) > 0 {
		return nil, errors.Errorf("%w: no value or default for %s", tmpl.ErrUndefinedPlaceholder, strings.Join(unanswered, ", "))
	}
	return answers, nil
}
