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
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
	"github.com/walteh/scaffoldrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewInspectCmd creates the command that describes a template
func NewInspectCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <template>",
		Short: "Show a template's manifest and placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := config.LoadTemplate(cmd.Context(), args[0])
			if err != nil {
				return errors.Errorf("loading template: %w", err)
			}

			out := opts.Console
			fmt.Fprintf(out, "template:  %s\n", tpl.Dir)
			fmt.Fprintf(out, "root:      %s\n", tpl.Root)

			if tpl.Manifest == nil {
				fmt.Fprintln(out, "manifest:  none")
				return nil
			}

			m := tpl.Manifest
			fmt.Fprintf(out, "manifest:  %s\n", m.Location())
			fmt.Fprintf(out, "overwrite: %t\n", m.Overwrite)
			if m.Symlinks != "" {
				fmt.Fprintf(out, "symlinks:  %s\n", m.Symlinks)
			}
			if len(m.Ignore) > 0 {
				fmt.Fprintf(out, "ignore:    %s\n", strings.Join(m.Ignore, ", "))
			}

			if len(m.Placeholders) == 0 {
				return nil
			}

			data := pterm.TableData{{"NAME", "TYPE", "DEFAULT", "MESSAGE"}}
			for _, spec := range m.Specs() {
				def := spec.Default
				if len(spec.Choices) > 0 {
					def = fmt.Sprintf("%s [%s]", def, strings.Join(spec.Choices, "|"))
				}
				data = append(data, []string{spec.Name, string(spec.Kind()), strings.TrimSpace(def), spec.Prompt()})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering placeholders: %w", err)
			}
			fmt.Fprintf(out, "\n%s\n", table)
			return nil
		},
	}

	return cmd
}
