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
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
	"github.com/walteh/scaffoldrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates the command that lists named templates
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates available by name",
		Long: `List prints every template directory found in the template search
paths. The first path that holds a name wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := map[string]bool{}
			for _, dir := range config.SearchDirs() {
				entries, err := os.ReadDir(dir)
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				if err != nil {
					return errors.Errorf("reading %s: %w", dir, err)
				}
				for _, e := range entries {
					if !e.IsDir() || seen[e.Name()] {
						continue
					}
					seen[e.Name()] = true
					fmt.Fprintf(opts.Console, "%-24s %s\n", e.Name(), dir)
				}
			}

			if len(seen) == 0 {
				opts.Logger.Infof("no templates found; searched %v", config.SearchDirs())
			}
			return nil
		},
	}

	return cmd
}
