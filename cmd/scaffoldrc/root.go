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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/scaffoldrc/cmd/scaffoldrc/opts"
	"github.com/walteh/scaffoldrc/pkg/log"
)

var (
	// Flags
	debug   bool
	trace   bool
	verbose bool
	quiet   bool
)

// newRootOpts creates the options shared by every command
func newRootOpts(console io.Writer, logger zerolog.Logger) *opts.RootOpts {
	if quiet {
		console = io.Discard
	}
	return &opts.RootOpts{
		Console: console,
		Logger:  log.New(console, logger).Verbose(verbose),
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&trace, "trace", false, "enable trace logging")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every entry as it starts")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print nothing on success")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}
