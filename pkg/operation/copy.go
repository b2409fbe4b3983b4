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
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/event"
	"github.com/walteh/scaffoldrc/pkg/model"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// node is one source object scheduled for copying
type node struct {
	index  int
	parent int    // index of the parent directory, -1 for the root
	name   string // base name in the template
	rel    string // slash path relative to the template root
	source string
	info   fs.FileInfo
	kind   model.Kind

	// set by the directory's own goroutine before ready is closed
	dest  string
	ready chan struct{}
}

// 📋 Copy copies the tree at source to destination
//
// Entries are visited in pre-order. Directories are created before anything
// inside them, and up to the configured number of entries are copied at
// once. The first failure cancels everything still pending and is returned;
// nothing already written is removed.
func (c *Copier) Copy(ctx context.Context, source, destination string, data tmpl.Lookup) (Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidateDestination(destination); err != nil {
		return nil, err
	}

	nodes, err := c.enumerate(ctx, filepath.Clean(source))
	if err != nil {
		return nil, err
	}
	nodes[0].dest = filepath.Clean(destination)

	logger.Debug().
		Str("source", source).
		Str("destination", destination).
		Int("entries", len(nodes)).
		Int("concurrency", c.concurrency).
		Msg("copying template")

	entries := make(Result, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, n := range nodes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			entry, err := c.visit(gctx, nodes, n, data)
			if err != nil {
				return err
			}
			entries[n.index] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("copy cancelled: %w", err)
	}

	logger.Debug().Int("entries", len(entries)).Msg("template copied")
	return entries, nil
}

// enumerate lists every entry under source in pre-order. Junk and ignored
// entries are dropped together with everything below them.
func (c *Copier) enumerate(ctx context.Context, source string) ([]*node, error) {
	logger := zerolog.Ctx(ctx)

	info, err := c.fs.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s does not exist", ErrInvalidSource, source)
		}
		return nil, errors.Errorf("reading source %s: %w", source, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%w: %s is not a directory", ErrInvalidSource, source)
	}

	root := &node{
		index:  0,
		parent: -1,
		name:   filepath.Base(source),
		source: source,
		info:   info,
		kind:   model.KindDirectory,
		ready:  make(chan struct{}),
	}
	nodes := []*node{root}

	var walk func(parent *node, ancestors []fs.FileInfo) error
	walk = func(parent *node, ancestors []fs.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("enumerating template: %w", err)
		}

		children, err := c.fs.ReadDir(parent.source)
		if err != nil {
			return errors.Errorf("reading directory %s: %w", parent.source, err)
		}

		for _, child := range children {
			name := child.Name()
			rel := path.Join(parent.rel, name)

			if c.junk != nil && c.junk.IsJunk(name) {
				logger.Trace().Str("path", rel).Msg("skipping junk")
				continue
			}
			if c.ignore.Match(rel) {
				logger.Trace().Str("path", rel).Msg("skipping ignored path")
				continue
			}

			src := filepath.Join(parent.source, name)
			info, err := c.stat(src)
			if err != nil {
				return err
			}

			n := &node{
				index:  len(nodes),
				parent: parent.index,
				name:   name,
				rel:    rel,
				source: src,
				info:   info,
				kind:   model.KindOf(info),
			}
			nodes = append(nodes, n)

			if n.kind != model.KindDirectory {
				continue
			}

			for _, a := range ancestors {
				if os.SameFile(a, info) {
					return errors.Errorf("%w: %s", ErrSymlinkLoop, src)
				}
			}
			n.ready = make(chan struct{})
			if err := walk(n, append(ancestors[:len(ancestors):len(ancestors)], info)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, []fs.FileInfo{info}); err != nil {
		return nil, err
	}
	return nodes, nil
}

// stat reads the source info the way the symlink mode asks for.
func (c *Copier) stat(src string) (fs.FileInfo, error) {
	info, err := c.fs.Lstat(src)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", src, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 || c.symlinks != SymlinkFollow {
		return info, nil
	}

	target, err := c.fs.Stat(src)
	if err != nil {
		return nil, errors.Errorf("following symlink %s: %w", src, err)
	}
	return target, nil
}

// visit waits for the parent directory, then copies one node.
func (c *Copier) visit(ctx context.Context, nodes []*node, n *node, data tmpl.Lookup) (Entry, error) {
	if n.parent >= 0 {
		parent := nodes[n.parent]
		select {
		case <-parent.ready:
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		}

		segment, err := ExpandSegment(n.name, data)
		if err != nil {
			return Entry{}, errors.Errorf("resolving destination of %s: %w", n.rel, err)
		}
		n.dest = filepath.Join(parent.dest, segment)
	}

	entry := Entry{
		Source:      n.source,
		Destination: n.dest,
		Kind:        n.kind,
		Info:        n.info,
	}

	switch n.kind {
	case model.KindDirectory:
		err := c.run(event.CreateDirectory, entry, func() error {
			return c.createDirectory(entry, n.parent < 0)
		})
		if err != nil {
			return entry, err
		}
		close(n.ready)
	case model.KindSymlink:
		if err := c.run(event.CreateSymlink, entry, func() error {
			return c.createSymlink(entry)
		}); err != nil {
			return entry, err
		}
	default:
		if err := c.run(event.CopyFile, entry, func() error {
			return c.copyFile(ctx, entry, data)
		}); err != nil {
			return entry, err
		}
	}

	zerolog.Ctx(ctx).Trace().
		Str("kind", n.kind.String()).
		Str("source", entry.Source).
		Str("destination", entry.Destination).
		Msg("entry copied")

	return entry, nil
}

// run wraps an action in its start event and exactly one of its error or
// complete events.
func (c *Copier) run(action event.Action, entry Entry, fn func() error) error {
	c.events.Emit(event.Event{Kind: action.Start, Entry: entry})
	if err := fn(); err != nil {
		c.events.Emit(event.Event{Kind: action.Error, Entry: entry, Err: err})
		return err
	}
	c.events.Emit(event.Event{Kind: action.Complete, Entry: entry})
	return nil
}

func (c *Copier) createDirectory(entry Entry, root bool) error {
	if err := c.policy.Check(entry.Info, entry.Destination); err != nil {
		return err
	}

	perm := entry.Info.Mode().Perm() | 0o700
	mkdir := c.fs.Mkdir
	if root {
		mkdir = c.fs.MkdirAll
	}

	if err := mkdir(entry.Destination, perm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			if info, serr := c.fs.Stat(entry.Destination); serr == nil && info.IsDir() {
				return nil
			}
		}
		return errors.Errorf("creating directory %s: %w", entry.Destination, err)
	}
	return nil
}

func (c *Copier) createSymlink(entry Entry) error {
	if err := c.policy.Check(entry.Info, entry.Destination); err != nil {
		return err
	}

	target, err := c.fs.Readlink(entry.Source)
	if err != nil {
		return errors.Errorf("reading symlink %s: %w", entry.Source, err)
	}

	if c.policy.Overwrite {
		if _, err := c.fs.Lstat(entry.Destination); err == nil {
			if err := c.fs.Remove(entry.Destination); err != nil {
				return errors.Errorf("replacing %s: %w", entry.Destination, err)
			}
		}
	}

	if err := c.fs.Symlink(target, entry.Destination); err != nil {
		return errors.Errorf("creating symlink %s: %w", entry.Destination, err)
	}
	return nil
}

func (c *Copier) copyFile(ctx context.Context, entry Entry, data tmpl.Lookup) (err error) {
	if err := c.policy.Check(entry.Info, entry.Destination); err != nil {
		return err
	}

	// an existing symlink is replaced, never written through
	if c.policy.Overwrite {
		if info, err := c.fs.Lstat(entry.Destination); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			if err := c.fs.Remove(entry.Destination); err != nil {
				return errors.Errorf("replacing %s: %w", entry.Destination, err)
			}
		}
	}

	in, err := c.fs.Open(entry.Source)
	if err != nil {
		return errors.Errorf("opening %s: %w", entry.Source, err)
	}
	defer in.Close()

	out, err := c.fs.Create(entry.Destination, entry.Info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating %s: %w", entry.Destination, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing %s: %w", entry.Destination, cerr)
		}
	}()

	n, err := c.transformer.Transform(out, in, entry.Source, data)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Trace().Str("file", entry.Destination).Int64("bytes", n).Msg("file written")
	return nil
}
