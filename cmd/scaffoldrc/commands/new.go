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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
	"github.com/walteh/scaffoldrc/pkg/config"
	"github.com/walteh/scaffoldrc/pkg/operation"
	"github.com/walteh/scaffoldrc/pkg/placeholder"
	"github.com/walteh/scaffoldrc/pkg/prompt"
	"github.com/walteh/scaffoldrc/pkg/scaffold"
	"gitlab.com/tozd/go/errors"
)

// NewNewCmd creates the command that copies a template
func NewNewCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		sets        []string
		overwrite   bool
		symlinks    string
		concurrency int
		noPrompt    bool
	)

	cmd := &cobra.Command{
		Use:   "new <template> <destination>",
		Short: "Create a project from a template",
		Long: `New copies a template to destination.

The template is a directory path or the name of a directory under one of
the template search paths (see "scaffoldrc list"). Placeholder values come
from --set first; anything left is asked for in a single prompt, or taken
from the declared defaults with --no-prompt.

Existing files are never replaced unless --overwrite is given or the
template manifest turns it on.

Only <%= name %> and <%- name %> (HTML-escaped) tags are expanded. Any
other <% ... %> block, such as EJS or ERB logic, fails the run as an
invalid template; list such files under "ignore" in the manifest to
leave them out.`,
		Example: `  scaffoldrc new go-service ./billing --set name=billing
  scaffoldrc new ./templates/lib ./out --no-prompt --overwrite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "new").Logger().WithContext(cmd.Context())

			values, err := ParseSet(sets)
			if err != nil {
				return err
			}

			tpl, err := config.LoadTemplate(ctx, args[0])
			if err != nil {
				return errors.Errorf("loading template: %w", err)
			}

			cfg, err := tpl.Config()
			if err != nil {
				return errors.Errorf("loading template: %w", err)
			}

			if cmd.Flags().Changed("symlinks") || !cfg.Options.Symlinks.Valid() {
				mode, err := operation.ParseSymlinkMode(symlinks)
				if err != nil {
					return err
				}
				cfg.Options.Symlinks = mode
			}
			if cmd.Flags().Changed("concurrency") {
				if concurrency < 1 {
					return errors.Errorf("concurrency must be at least 1, got %d", concurrency)
				}
				cfg.Options.Concurrency = concurrency
			}

			var prompter placeholder.Prompter = prompt.NewInteractive()
			if noPrompt {
				prompter = prompt.Defaults
			}

			s, err := scaffold.New(cfg, scaffold.WithPrompter(prompter))
			if err != nil {
				return errors.Errorf("loading template: %w", err)
			}
			s.OnAny(opts.Logger.Listen)

			dest, err := filepath.Abs(args[1])
			if err != nil {
				return errors.Errorf("resolving destination: %w", err)
			}

			req := scaffold.Request{Destination: dest, Context: values}
			if cmd.Flags().Changed("overwrite") {
				req.Overwrite = &overwrite
			}

			opts.Logger.Header(args[0], dest)

			result, err := s.Copy(ctx, req)
			if err != nil {
				return errors.Errorf("%s: %w", scaffold.KindOf(err), err)
			}

			opts.Logger.LogNewline()
			opts.Logger.Successf("created %d entries in %s", len(result), dest)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "placeholder value as name=value (repeatable)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace files that already exist")
	cmd.Flags().StringVar(&symlinks, "symlinks", operation.SymlinkPreserve.String(), "symlink handling: preserve or follow")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", operation.DefaultConcurrency, "entries copied at once")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "never prompt; use declared defaults for missing values")

	return cmd
}
