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

package operation

import (
	"strings"

	"github.com/walteh/scaffoldrc/pkg/event"
	"github.com/walteh/scaffoldrc/pkg/fsys"
	"github.com/walteh/scaffoldrc/pkg/model"
	"gitlab.com/tozd/go/errors"
)

// DefaultConcurrency bounds how many entries are copied at once.
const DefaultConcurrency = 8

type (
	Entry  = model.Entry
	Result = model.Result
)

// 🔗 SymlinkMode says what to do with symbolic links in a template
//
// The zero value is not a valid mode; callers must pick one.
type SymlinkMode int

const (
	// SymlinkPreserve recreates each link with the same target.
	SymlinkPreserve SymlinkMode = iota + 1
	// SymlinkFollow copies whatever the link points at.
	SymlinkFollow
)

func (m SymlinkMode) String() string {
	switch m {
	case SymlinkPreserve:
		return "preserve"
	case SymlinkFollow:
		return "follow"
	default:
		return "unset"
	}
}

// Valid reports whether m is one of the defined modes.
func (m SymlinkMode) Valid() bool {
	return m == SymlinkPreserve || m == SymlinkFollow
}

// ParseSymlinkMode parses "preserve" or "follow".
func ParseSymlinkMode(s string) (SymlinkMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preserve":
		return SymlinkPreserve, nil
	case "follow":
		return SymlinkFollow, nil
	default:
		return 0, errors.Errorf("unknown symlink mode %q (want preserve or follow)", s)
	}
}

// 🔧 Options configures a Copier
type Options struct {
	// FS is read from and written to. Defaults to the OS filesystem.
	FS fsys.FS
	// Classifier decides text or binary. Defaults to fsys.NewClassifier.
	Classifier fsys.Classifier
	// Junk filters entries by base name. Nil copies everything.
	Junk fsys.JunkFilter
	// Ignore filters entries by slash-separated path relative to the source.
	Ignore *fsys.GlobFilter
	// Events receives per-entry lifecycle events. Defaults to event.Discard.
	Events event.Emitter

	Overwrite   bool
	Symlinks    SymlinkMode
	Concurrency int
	ChunkSize   int
}

// 📦 Copier copies a template tree to a destination
type Copier struct {
	fs          fsys.FS
	junk        fsys.JunkFilter
	ignore      *fsys.GlobFilter
	events      event.Emitter
	policy      Policy
	transformer *Transformer
	symlinks    SymlinkMode
	concurrency int
}

// 🏭 NewCopier creates a copier with the given options
func NewCopier(opts Options) (*Copier, error) {
	if !opts.Symlinks.Valid() {
		return nil, errors.Errorf("symlink mode is required (preserve or follow)")
	}
	if opts.FS == nil {
		opts.FS = fsys.NewOS()
	}
	if opts.Events == nil {
		opts.Events = event.Discard
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	return &Copier{
		fs:          opts.FS,
		junk:        opts.Junk,
		ignore:      opts.Ignore,
		events:      opts.Events,
		policy:      Policy{FS: opts.FS, Overwrite: opts.Overwrite},
		transformer: NewTransformer(opts.Classifier, opts.ChunkSize),
		symlinks:    opts.Symlinks,
		concurrency: opts.Concurrency,
	}, nil
}
