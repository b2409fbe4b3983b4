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

// Package tmpl implements the placeholder micro-template used in template
// paths and file contents.
//
// Two tag forms are understood:
//
//	<%= name %>   interpolate the value of name
//	<%- name %>   interpolate the HTML-escaped value of name
//
// Anything else between <% and %> is rejected. A <% without a closing %>
// is kept as literal text.
package tmpl

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Delimiter opens every tag. Text without it never needs compiling.
const Delimiter = "<%"

const closer = "%>"

var (
	// ErrUndefinedPlaceholder is returned when a tag names a value missing from the lookup.
	ErrUndefinedPlaceholder = errors.Base("undefined placeholder")
	// ErrSyntax is returned for tags that cannot be compiled.
	ErrSyntax = errors.Base("template syntax error")
)

// Lookup resolves placeholder names to values.
type Lookup interface {
	Lookup(name string) (string, bool)
}

// Map is a Lookup backed by a plain map.
type Map map[string]string

func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

type segment struct {
	text   string
	name   string
	escape bool
}

func (s segment) isTag() bool {
	return s.name != ""
}

// 📝 Template is a compiled micro-template
type Template struct {
	src      string
	segments []segment
}

// HasDelimiter reports whether s contains anything that could be a tag.
func HasDelimiter(s string) bool {
	return strings.Contains(s, Delimiter)
}

// 🏗️ Compile parses src into a Template
func Compile(src string) (*Template, error) {
	t := &Template{src: src}

	rest := src
	offset := 0
	for {
		start := strings.Index(rest, Delimiter)
		if start < 0 {
			t.appendText(rest)
			break
		}

		end := strings.Index(rest[start+len(Delimiter):], closer)
		if end < 0 {
			// unterminated tags stay literal
			t.appendText(rest)
			break
		}

		t.appendText(rest[:start])

		body := rest[start+len(Delimiter) : start+len(Delimiter)+end]
		seg, err := parseTag(body)
		if err != nil {
			return nil, errors.Errorf("compiling tag at offset %d: %w", offset+start, err)
		}
		t.segments = append(t.segments, seg)

		consumed := start + len(Delimiter) + end + len(closer)
		offset += consumed
		rest = rest[consumed:]
	}

	return t, nil
}

func (t *Template) appendText(s string) {
	if s == "" {
		return
	}
	if n := len(t.segments); n > 0 && !t.segments[n-1].isTag() {
		t.segments[n-1].text += s
		return
	}
	t.segments = append(t.segments, segment{text: s})
}

func parseTag(body string) (segment, error) {
	if body == "" {
		return segment{}, errors.Errorf("%w: empty tag", ErrSyntax)
	}

	var seg segment
	switch body[0] {
	case '=':
	case '-':
		seg.escape = true
	default:
		return segment{}, errors.Errorf("%w: evaluate blocks are not supported: <%%%s%%>", ErrSyntax, body)
	}

	name := strings.TrimSpace(body[1:])
	if !isIdentifier(name) {
		return segment{}, errors.Errorf("%w: invalid placeholder name %q", ErrSyntax, name)
	}
	seg.name = name
	return seg, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Names returns the placeholder names referenced by the template, in order
// of first appearance.
func (t *Template) Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, seg := range t.segments {
		if !seg.isTag() || seen[seg.name] {
			continue
		}
		seen[seg.name] = true
		names = append(names, seg.name)
	}
	return names
}

// 🎯 Execute renders the template against data
func (t *Template) Execute(data Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(t.src))
	for _, seg := range t.segments {
		if !seg.isTag() {
			b.WriteString(seg.text)
			continue
		}

		var (
			value string
			ok    bool
		)
		if data != nil {
			value, ok = data.Lookup(seg.name)
		}
		if !ok {
			return "", errors.Errorf("%w: %s", ErrUndefinedPlaceholder, seg.name)
		}
		if seg.escape {
			value = escaper.Replace(value)
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Render compiles and executes src in one step. Strings without the
// delimiter are returned unchanged without compiling.
func Render(src string, data Lookup) (string, error) {
	if !HasDelimiter(src) {
		return src, nil
	}
	t, err := Compile(src)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
