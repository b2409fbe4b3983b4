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

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
	"github.com/walteh/scaffoldrc/pkg/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// 🧪 run executes one command with its output captured
func run(t *testing.T, newCmd func(*opts.RootOpts) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	buf := &bytes.Buffer{}
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	rootOpts := &opts.RootOpts{Console: buf, Logger: log.New(buf, zlog)}

	cmd := newCmd(rootOpts)
	cmd.SetArgs(args)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(zlog.WithContext(context.Background()))
	return buf.String(), err
}

// 🧪 goService writes a small template with a manifest
func goService(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scaffold.yaml"), `
symlinks: preserve
placeholders:
  - name: name
    message: Service name
  - name: license
    type: select
    choices: [mit, apache]
    default: mit
`)
	writeFile(t, filepath.Join(dir, "template", "<%= name %>", "README.md"), "# <%= name %> (<%= license %>)\n")
	return dir
}

func TestParseSet(t *testing.T) {
	tests := []struct {
		name        string
		sets        []string
		want        map[string]string
		errContains string
	}{
		{name: "empty", sets: nil, want: map[string]string{}},
		{name: "simple", sets: []string{"name=billing"}, want: map[string]string{"name": "billing"}},
		{name: "value_with_equals", sets: []string{"dsn=a=b"}, want: map[string]string{"dsn": "a=b"}},
		{name: "empty_value", sets: []string{"name="}, want: map[string]string{"name": ""}},
		{name: "later_wins", sets: []string{"a=1", "a=2"}, want: map[string]string{"a": "2"}},
		{name: "missing_equals", sets: []string{"name"}, errContains: "want name=value"},
		{name: "missing_name", sets: []string{"=x"}, errContains: "want name=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSet(tt.sets)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCmd(t *testing.T) {
	tpl := goService(t)
	dest := filepath.Join(t.TempDir(), "out")

	out, err := run(t, NewNewCmd, tpl, dest, "--no-prompt", "--set", "name=billing")
	require.NoError(t, err, out)

	got, err := os.ReadFile(filepath.Join(dest, "billing", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# billing (mit)\n", string(got))
	assert.Contains(t, out, "created 3 entries")
	assert.NoFileExists(t, filepath.Join(dest, "scaffold.yaml"))

	t.Run("conflict", func(t *testing.T) {
		_, err := run(t, NewNewCmd, tpl, dest, "--no-prompt", "--set", "name=billing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AlreadyExists")
	})

	t.Run("overwrite", func(t *testing.T) {
		_, err := run(t, NewNewCmd, tpl, dest, "--no-prompt", "--overwrite", "--set", "name=billing", "--set", "license=apache")
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dest, "billing", "README.md"))
		require.NoError(t, err)
		assert.Equal(t, "# billing (apache)\n", string(got))
	})
}

func TestNewCmdErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        func(tpl, dest string) []string
		errContains string
	}{
		{
			name:        "missing_value_without_prompt",
			args:        func(tpl, dest string) []string { return []string{tpl, dest, "--no-prompt"} },
			errContains: "UndefinedPlaceholder",
		},
		{
			name:        "bad_set",
			args:        func(tpl, dest string) []string { return []string{tpl, dest, "--set", "oops"} },
			errContains: "want name=value",
		},
		{
			name:        "bad_symlinks",
			args:        func(tpl, dest string) []string { return []string{tpl, dest, "--symlinks", "copy"} },
			errContains: "unknown symlink mode",
		},
		{
			name:        "bad_concurrency",
			args:        func(tpl, dest string) []string { return []string{tpl, dest, "-j", "0"} },
			errContains: "at least 1",
		},
		{
			name:        "unknown_template",
			args:        func(tpl, dest string) []string { return []string{"no-such-template-here", dest} },
			errContains: "template not found",
		},
		{
			name:        "wrong_arg_count",
			args:        func(tpl, dest string) []string { return []string{tpl} },
			errContains: "accepts 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "out")

			_, err := run(t, NewNewCmd, tt.args(goService(t), dest)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.NoDirExists(t, dest)
		})
	}
}

func TestNewCmdRejectsEvaluateBlocks(t *testing.T) {
	tpl := t.TempDir()
	writeFile(t, filepath.Join(tpl, "view.ejs"), "<% if (x) { %>hi<% } %>\n")

	_, err := run(t, NewNewCmd, tpl, filepath.Join(t.TempDir(), "out"), "--no-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidSource")
	assert.Contains(t, err.Error(), "evaluate blocks are not supported")

	help := NewNewCmd(&opts.RootOpts{}).Long
	assert.Contains(t, help, "EJS or ERB logic, fails the run as an\ninvalid template")
}

func TestInspectCmd(t *testing.T) {
	tpl := goService(t)

	out, err := run(t, NewInspectCmd, tpl)
	require.NoError(t, err)

	assert.Contains(t, out, "manifest:  "+filepath.Join(tpl, "scaffold.yaml"))
	assert.Contains(t, out, "root:      "+filepath.Join(tpl, "template"))
	assert.Contains(t, out, "Service name")
	assert.Contains(t, out, "mit [mit|apache]")

	t.Run("without_manifest", func(t *testing.T) {
		out, err := run(t, NewInspectCmd, t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, out, "manifest:  none")
	})
}
