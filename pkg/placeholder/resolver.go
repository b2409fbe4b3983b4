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
	"context"
	"maps"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// 💬 Prompter collects values for placeholders that were not provided
//
// Prompt is called at most once per resolution and never with an empty
// list. Answers for names that were not asked for are ignored.
type Prompter interface {
	Prompt(ctx context.Context, specs []Spec) (map[string]string, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, specs []Spec) (map[string]string, error)

func (f PrompterFunc) Prompt(ctx context.Context, specs []Spec) (map[string]string, error) {
	return f(ctx, specs)
}

// TransformFunc derives the final Context from the merged one.
type TransformFunc func(ctx context.Context, c Context) (Context, error)

// 🧩 Resolver merges provided values with prompted ones
type Resolver struct {
	Prompter  Prompter      // Source of missing values; may be nil when nothing is missing
	Transform TransformFunc // Optional last step before the context is used
}

// Missing returns the specs whose names are absent from provided, keeping
// the first spec for a repeated name.
func Missing(provided map[string]string, specs []Spec) []Spec {
	var out []Spec
	seen := map[string]bool{}
	for _, s := range specs {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		if _, ok := provided[s.Name]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

// 🎯 Resolve builds the Context for a run
//
// Provided values always win. When some specs are missing, the prompter is
// asked once for all of them.
func (r *Resolver) Resolve(ctx context.Context, provided map[string]string, specs []Spec) (Context, error) {
	logger := zerolog.Ctx(ctx)

	values := maps.Clone(provided)
	if values == nil {
		values = map[string]string{}
	}

	missing := Missing(provided, specs)
	if len(missing) > 0 {
		names := Names(missing)
		if r.Prompter == nil {
			return Context{}, errors.Errorf("%w: no prompter to ask for %s", tmpl.ErrUndefinedPlaceholder, strings.Join(names, ", "))
		}

		logger.Debug().Strs("placeholders", names).Msg("prompting for missing placeholders")

		answers, err := r.Prompter.Prompt(ctx, missing)
		if err != nil {
			return Context{}, errors.Errorf("prompting for placeholders: %w", err)
		}

		for _, s := range missing {
			if v, ok := answers[s.Name]; ok {
				values[s.Name] = v
			}
		}
	} else {
		logger.Debug().Int("provided", len(values)).Msg("all placeholders provided, skipping prompt")
	}

	resolved := NewContext(values)
	if r.Transform != nil {
		out, err := r.Transform(ctx, resolved)
		if err != nil {
			return Context{}, errors.Errorf("transforming context: %w", err)
		}
		resolved = NewContext(out.values)
	}

	return resolved, nil
}
