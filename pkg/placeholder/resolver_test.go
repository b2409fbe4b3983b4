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
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// 🔧 MockPrompter is a mock implementation of Prompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) Prompt(ctx context.Context, specs []Spec) (map[string]string, error) {
	result := m.Called(ctx, specs)
	answers, _ := result.Get(0).(map[string]string)
	return answers, result.Error(1)
}

func echoAnswers(specs []Spec) map[string]string {
	out := map[string]string{}
	for _, s := range specs {
		out[s.Name] = s.Name
	}
	return out
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestResolve(t *testing.T) {
	specs := []Spec{
		{Name: "first", Message: "First"},
		{Name: "second", Message: "Second"},
		{Name: "third", Message: "Third"},
	}

	tests := []struct {
		name        string
		provided    map[string]string
		wantAsked   []string
		wantContext map[string]string
	}{
		{
			name:     "all_provided_skips_prompt",
			provided: map[string]string{"first": "a", "second": "b", "third": "c"},
			wantContext: map[string]string{
				"first": "a", "second": "b", "third": "c",
			},
		},
		{
			name:      "some_missing_prompts_once_for_subset",
			provided:  map[string]string{"second": "b"},
			wantAsked: []string{"first", "third"},
			wantContext: map[string]string{
				"first": "first", "second": "b", "third": "third",
			},
		},
		{
			name:      "none_provided_prompts_for_all",
			provided:  nil,
			wantAsked: []string{"first", "second", "third"},
			wantContext: map[string]string{
				"first": "first", "second": "second", "third": "third",
			},
		},
		{
			name:      "extra_provided_values_kept",
			provided:  map[string]string{"first": "a", "second": "b", "extra": "x"},
			wantAsked: []string{"third"},
			wantContext: map[string]string{
				"first": "a", "second": "b", "third": "third", "extra": "x",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			var asked [][]string
			r := &Resolver{Prompter: PrompterFunc(func(_ context.Context, specs []Spec) (map[string]string, error) {
				asked = append(asked, Names(specs))
				return echoAnswers(specs), nil
			})}

			got, err := r.Resolve(ctx, tt.provided, specs)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContext, got.Map())

			if tt.wantAsked == nil {
				assert.Empty(t, asked, "prompter should not be called")
			} else {
				assert.Equal(t, [][]string{tt.wantAsked}, asked, "prompter should be called exactly once with the missing subset")
			}
		})
	}
}

func TestResolveNeverOverwritesProvided(t *testing.T) {
	ctx := testContext(t)
	p := &MockPrompter{}
	p.On("Prompt", mock.Anything, mock.Anything).Return(map[string]string{
		"first":  "prompted",
		"second": "prompted",
	}, nil).Once()

	r := &Resolver{Prompter: p}
	got, err := r.Resolve(ctx, map[string]string{"first": "given"}, []Spec{{Name: "first"}, {Name: "second"}})
	require.NoError(t, err)

	assert.Equal(t, "given", got.Get("first"), "provided value must win")
	assert.Equal(t, "prompted", got.Get("second"))
	p.AssertExpectations(t)
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	ctx := testContext(t)
	provided := map[string]string{"first": "a"}
	r := &Resolver{Prompter: PrompterFunc(func(_ context.Context, specs []Spec) (map[string]string, error) {
		return echoAnswers(specs), nil
	})}

	got, err := r.Resolve(ctx, provided, []Spec{{Name: "first"}, {Name: "second"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"first": "a"}, provided)

	m := got.Map()
	m["first"] = "changed"
	assert.Equal(t, "a", got.Get("first"), "context must not change through Map")
}

func TestResolveDuplicateSpecs(t *testing.T) {
	ctx := testContext(t)
	var asked [][]string
	r := &Resolver{Prompter: PrompterFunc(func(_ context.Context, specs []Spec) (map[string]string, error) {
		asked = append(asked, Names(specs))
		return echoAnswers(specs), nil
	})}

	_, err := r.Resolve(ctx, nil, []Spec{{Name: "a"}, {Name: "a", Message: "again"}, {Name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, asked)
}

func TestResolveErrors(t *testing.T) {
	ctx := testContext(t)

	t.Run("no_prompter_with_missing", func(t *testing.T) {
		r := &Resolver{}
		_, err := r.Resolve(ctx, nil, []Spec{{Name: "a"}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, tmpl.ErrUndefinedPlaceholder))
		assert.Contains(t, err.Error(), "a")
	})

	t.Run("no_prompter_nothing_missing", func(t *testing.T) {
		r := &Resolver{}
		got, err := r.Resolve(ctx, map[string]string{"a": "1"}, []Spec{{Name: "a"}})
		require.NoError(t, err)
		assert.Equal(t, "1", got.Get("a"))
	})

	t.Run("prompter_error", func(t *testing.T) {
		boom := errors.New("boom")
		r := &Resolver{Prompter: PrompterFunc(func(context.Context, []Spec) (map[string]string, error) {
			return nil, boom
		})}
		_, err := r.Resolve(ctx, nil, []Spec{{Name: "a"}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
	})
}

func TestResolveTransform(t *testing.T) {
	ctx := testContext(t)
	r := &Resolver{
		Transform: func(_ context.Context, c Context) (Context, error) {
			m := c.Map()
			m["upper"] = "NAME=" + c.Get("name")
			return NewContext(m), nil
		},
	}

	got, err := r.Resolve(ctx, map[string]string{"name": "demo"}, []Spec{{Name: "name"}})
	require.NoError(t, err)
	assert.Equal(t, "NAME=demo", got.Get("upper"))
	assert.Equal(t, []string{"name", "upper"}, got.Keys())
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name        string
		spec        Spec
		errContains string
	}{
		{name: "input_ok", spec: Spec{Name: "a"}},
		{name: "missing_name", spec: Spec{}, errContains: "name is required"},
		{name: "unknown_type", spec: Spec{Name: "a", Type: "slider"}, errContains: "unknown type"},
		{name: "select_without_choices", spec: Spec{Name: "a", Type: TypeSelect}, errContains: "requires choices"},
		{name: "select_bad_default", spec: Spec{Name: "a", Type: TypeSelect, Choices: []string{"x"}, Default: "y"}, errContains: "not one of the choices"},
		{name: "confirm_bad_default", spec: Spec{Name: "a", Type: TypeConfirm, Default: "maybe"}, errContains: "must be a boolean"},
		{name: "confirm_ok", spec: Spec{Name: "a", Type: TypeConfirm, Default: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	err := ValidateAll([]Spec{{Name: "a"}, {Name: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}
