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

package fsys

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🗑️ JunkFilter marks OS and editor artifacts that are never copied
type JunkFilter interface {
	IsJunk(name string) bool
}

// DefaultJunkPatterns are base-name globs for files that operating systems
// and editors leave behind.
var DefaultJunkPatterns = []string{
	"npm-debug.log",
	".*.swp",
	".DS_Store",
	".AppleDouble",
	".LSOverride",
	"Icon\r",
	"._*",
	".Spotlight-V100",
	".Trashes",
	"__MACOSX",
	"*~",
	"Thumbs.db",
	"ehthumbs.db",
	"Desktop.ini",
	"*@eaDir",
}

// GlobFilter matches names or slash-separated relative paths against
// doublestar patterns.
type GlobFilter struct {
	patterns []string
}

// NewJunkFilter returns a filter for DefaultJunkPatterns.
func NewJunkFilter() *GlobFilter {
	return &GlobFilter{patterns: DefaultJunkPatterns}
}

// 🏭 NewGlobFilter validates patterns and builds a filter from them
func NewGlobFilter(patterns ...string) (*GlobFilter, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid glob pattern %q", p)
		}
	}
	return &GlobFilter{patterns: append([]string(nil), patterns...)}, nil
}

// Match reports whether path matches any pattern. Path separators are
// normalised to slashes first.
func (f *GlobFilter) Match(path string) bool {
	if f == nil {
		return false
	}
	path = filepath.ToSlash(path)
	for _, p := range f.patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}

// IsJunk makes GlobFilter a JunkFilter.
func (f *GlobFilter) IsJunk(name string) bool {
	return f.Match(name)
}

// Patterns returns the filter's patterns.
func (f *GlobFilter) Patterns() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.patterns...)
}
