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

package config

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/scaffold"
	"gitlab.com/tozd/go/errors"
)

// RCName is the extension-less manifest name. It may hold YAML or HCL.
const RCName = ".scaffoldrc"

// ManifestNames are the manifest file names looked for, in order.
var ManifestNames = []string{
	"scaffold.yaml",
	"scaffold.yml",
	"scaffold.hcl",
	"scaffold.json",
	"scaffold.toml",
	RCName,
}

// DefaultTemplateDir is copied instead of the manifest directory when it
// exists and the manifest does not name one.
const DefaultTemplateDir = "template"

var (
	// ErrNoManifest is returned by Find when a directory has no manifest.
	ErrNoManifest = errors.Base("no manifest found")
	// ErrTemplateNotFound is returned by Locate when nothing matches.
	ErrTemplateNotFound = errors.Base("template not found")
)

func init() {
	Register(&rcParser{})
}

// rcParser tries YAML first, then HCL
type rcParser struct{}

func (p *rcParser) CanParse(filename string) bool {
	return filepath.Base(filename) == RCName
}

func (p *rcParser) Parse(ctx context.Context, data []byte) (*Manifest, error) {
	m, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr == nil {
		return m, nil
	}

	m, hclErr := (&HCLParser{}).Parse(ctx, data)
	if hclErr == nil {
		return m, nil
	}

	return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", RCName, yamlErr, hclErr)
}

// 🔍 Find returns the manifest in dir
func Find(dir string) (string, error) {
	for _, name := range ManifestNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", errors.Errorf("checking %s: %w", p, err)
		}
	}
	return "", errors.Errorf("%w in %s", ErrNoManifest, dir)
}

// SearchDirs returns the directories named templates are looked up in.
func SearchDirs() []string {
	dirs := []string{filepath.Join(xdg.DataHome, "scaffoldrc", "templates")}
	for _, d := range xdg.DataDirs {
		dirs = append(dirs, filepath.Join(d, "scaffoldrc", "templates"))
	}
	return dirs
}

// 🧭 Locate resolves a template reference to a directory
//
// An existing directory path is used as is. Anything else is treated as a
// name and searched for in SearchDirs.
func Locate(ref string) (string, error) {
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return filepath.Abs(ref)
	}

	if ref == "" || strings.ContainsRune(ref, filepath.Separator) || strings.ContainsRune(ref, '/') {
		return "", errors.Errorf("%w: %s", ErrTemplateNotFound, ref)
	}

	for _, dir := range SearchDirs() {
		p := filepath.Join(dir, ref)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}
	}
	return "", errors.Errorf("%w: %s (searched %s)", ErrTemplateNotFound, ref, strings.Join(SearchDirs(), ", "))
}

// 📦 Template is a located template and its manifest, if any
type Template struct {
	Dir      string    // where the template was found
	Root     string    // the directory that is copied
	Manifest *Manifest // nil when Dir has no manifest
}

// 🎯 LoadTemplate locates ref and loads its manifest
func LoadTemplate(ctx context.Context, ref string) (*Template, error) {
	logger := zerolog.Ctx(ctx)

	dir, err := Locate(ref)
	if err != nil {
		return nil, err
	}

	t := &Template{Dir: dir, Root: dir}

	path, err := Find(dir)
	switch {
	case err == nil:
		m, err := Load(ctx, path)
		if err != nil {
			return nil, err
		}
		t.Manifest = m
	case errors.Is(err, ErrNoManifest):
		logger.Debug().Str("dir", dir).Msg("template has no manifest")
	default:
		return nil, err
	}

	switch {
	case t.Manifest != nil && t.Manifest.Template != "":
		t.Root = filepath.Join(dir, t.Manifest.Template)
	default:
		if info, err := os.Stat(filepath.Join(dir, DefaultTemplateDir)); err == nil && info.IsDir() {
			t.Root = filepath.Join(dir, DefaultTemplateDir)
		}
	}

	logger.Debug().Str("dir", t.Dir).Str("root", t.Root).Bool("manifest", t.Manifest != nil).Msg("template loaded")
	return t, nil
}

// 🔧 Config builds the scaffold configuration for the template
//
// The symlink mode is left unset when the manifest does not choose one.
// The manifest file is ignored when it lives inside Root.
func (t *Template) Config() (scaffold.Config, error) {
	cfg := scaffold.Config{TemplateRoot: t.Root}
	if t.Manifest == nil {
		return cfg, nil
	}

	mode, err := t.Manifest.SymlinkMode()
	if err != nil {
		return scaffold.Config{}, err
	}

	cfg.Placeholders = t.Manifest.Specs()
	cfg.Options = scaffold.Options{
		Overwrite:   t.Manifest.Overwrite,
		Symlinks:    mode,
		Concurrency: t.Manifest.Concurrency,
		Ignore:      append([]string(nil), t.Manifest.Ignore...),
	}

	if rel, err := filepath.Rel(t.Root, t.Manifest.Location()); err == nil && !strings.HasPrefix(rel, "..") {
		cfg.Options.Ignore = append(cfg.Options.Ignore, filepath.ToSlash(rel))
	}

	return cfg, nil
}
