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

package scaffold

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/event"
	"github.com/walteh/scaffoldrc/pkg/fsys"
	"github.com/walteh/scaffoldrc/pkg/operation"
	"github.com/walteh/scaffoldrc/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

type (
	Result      = operation.Result
	Entry       = operation.Entry
	SymlinkMode = operation.SymlinkMode
)

const (
	SymlinkPreserve = operation.SymlinkPreserve
	SymlinkFollow   = operation.SymlinkFollow
)

// 🔧 Options tune how a template is copied
type Options struct {
	Overwrite   bool        // Replace existing files
	Symlinks    SymlinkMode // Required; there is no default
	Concurrency int         // Entries copied at once, 0 means operation.DefaultConcurrency
	ChunkSize   int         // Read size for file content, 0 means operation.DefaultChunkSize
	Ignore      []string    // doublestar globs matched against template-relative paths
}

// 📝 Config describes one template
type Config struct {
	TemplateRoot string
	Placeholders []placeholder.Spec
	Options      Options
}

// 📨 Request is a single run of a template
type Request struct {
	Destination string
	// Overwrite replaces Options.Overwrite for this run when set.
	Overwrite *bool
	// Context holds values that are never prompted for.
	Context map[string]string
}

// Option customises a Scaffolder.
type Option func(*Scaffolder)

// WithPrompter sets where missing placeholder values come from.
func WithPrompter(p placeholder.Prompter) Option {
	return func(s *Scaffolder) { s.resolver.Prompter = p }
}

// WithFS replaces the OS filesystem.
func WithFS(f fsys.FS) Option {
	return func(s *Scaffolder) { s.fs = f }
}

// WithClassifier replaces the text/binary classifier.
func WithClassifier(c fsys.Classifier) Option {
	return func(s *Scaffolder) { s.classifier = c }
}

// WithJunkFilter replaces the default junk filter. Nil disables filtering.
func WithJunkFilter(j fsys.JunkFilter) Option {
	return func(s *Scaffolder) { s.junk = j }
}

// WithContextTransform runs fn on the resolved values before copying.
func WithContextTransform(fn placeholder.TransformFunc) Option {
	return func(s *Scaffolder) { s.resolver.Transform = fn }
}

// 🏗️ Scaffolder copies one template to any number of destinations
type Scaffolder struct {
	cfg        Config
	fs         fsys.FS
	classifier fsys.Classifier
	junk       fsys.JunkFilter
	ignore     *fsys.GlobFilter
	resolver   *placeholder.Resolver
	bus        *event.Bus
}

// 🏭 New validates cfg and creates a Scaffolder
func New(cfg Config, opts ...Option) (*Scaffolder, error) {
	if cfg.TemplateRoot == "" {
		return nil, errors.Errorf("%w: template root is required", operation.ErrInvalidSource)
	}
	if !cfg.Options.Symlinks.Valid() {
		return nil, errors.Errorf("symlink mode is required (preserve or follow)")
	}
	if err := placeholder.ValidateAll(cfg.Placeholders); err != nil {
		return nil, errors.Errorf("validating placeholders: %w", err)
	}

	ignore, err := fsys.NewGlobFilter(cfg.Options.Ignore...)
	if err != nil {
		return nil, errors.Errorf("parsing ignore patterns: %w", err)
	}

	s := &Scaffolder{
		cfg:        cfg,
		fs:         fsys.NewOS(),
		classifier: fsys.NewClassifier(),
		junk:       fsys.NewJunkFilter(),
		ignore:     ignore,
		resolver:   &placeholder.Resolver{},
		bus:        event.NewBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// On registers fn for one event kind.
func (s *Scaffolder) On(k event.Kind, fn event.Listener) *Scaffolder {
	s.bus.On(k, fn)
	return s
}

// OnAny registers fn for every event.
func (s *Scaffolder) OnAny(fn event.Listener) *Scaffolder {
	s.bus.OnAny(fn)
	return s
}

// Config returns the configuration the Scaffolder was built with.
func (s *Scaffolder) Config() Config {
	return s.cfg
}

// 🎯 Copy resolves placeholder values and copies the template
//
// Exactly one terminal event is emitted: event.Complete with the result, or
// event.Error with the returned error.
func (s *Scaffolder) Copy(ctx context.Context, req Request) (Result, error) {
	result, err := s.copy(ctx, req)
	if err != nil {
		s.bus.Emit(event.Event{Kind: event.Error, Err: err})
		return nil, err
	}
	s.bus.Emit(event.Event{Kind: event.Complete, Result: result})
	return result, nil
}

func (s *Scaffolder) copy(ctx context.Context, req Request) (Result, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("template", s.cfg.TemplateRoot).
		Str("destination", req.Destination).
		Logger()
	ctx = logger.WithContext(ctx)

	// a bad destination is reported before anyone is prompted
	if err := operation.ValidateDestination(req.Destination); err != nil {
		return nil, err
	}

	values, err := s.resolver.Resolve(ctx, req.Context, s.cfg.Placeholders)
	if err != nil {
		return nil, errors.Errorf("resolving placeholders: %w", err)
	}

	overwrite := s.cfg.Options.Overwrite
	if req.Overwrite != nil {
		overwrite = *req.Overwrite
	}

	copier, err := operation.NewCopier(operation.Options{
		FS:          s.fs,
		Classifier:  s.classifier,
		Junk:        s.junk,
		Ignore:      s.ignore,
		Events:      s.bus,
		Overwrite:   overwrite,
		Symlinks:    s.cfg.Options.Symlinks,
		Concurrency: s.cfg.Options.Concurrency,
		ChunkSize:   s.cfg.Options.ChunkSize,
	})
	if err != nil {
		return nil, errors.Errorf("creating copier: %w", err)
	}

	logger.Debug().Strs("placeholders", values.Keys()).Bool("overwrite", overwrite).Msg("starting scaffold")

	return copier.Copy(ctx, s.cfg.TemplateRoot, req.Destination, values)
}
