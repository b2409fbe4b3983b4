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

package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/commands"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err.Error())
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "scaffoldrc",
		Short: "Create projects from template directories",
		Long: `scaffoldrc copies a template directory to a new location, filling in
<%= name %> placeholders in file names and file contents as it goes.

Values that are not passed with --set are asked for once, before anything
is written.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(cmd.ErrOrStderr())
			cmd.SetContext(logger.WithContext(cmd.Context()))
			*rootOpts = *newRootOpts(cmd.OutOrStdout(), logger)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewNewCmd(rootOpts),
		commands.NewInspectCmd(rootOpts),
		commands.NewListCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// setupLogging builds the diagnostic logger from the root flags
func setupLogging(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case trace:
		level = zerolog.TraceLevel
	case debug:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
