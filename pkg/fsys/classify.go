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
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// 🔍 Classifier decides whether file content is text
type Classifier interface {
	IsText(name string, sample []byte) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(name string, sample []byte) bool

func (f ClassifierFunc) IsText(name string, sample []byte) bool {
	return f(name, sample)
}

var textExtensions = setOf(
	"txt", "md", "markdown", "rst", "adoc",
	"go", "mod", "sum", "js", "mjs", "cjs", "jsx", "ts", "tsx", "json", "jsonc",
	"yaml", "yml", "toml", "ini", "cfg", "conf", "env", "properties", "hcl", "tf",
	"html", "htm", "xml", "svg", "css", "scss", "less",
	"sh", "bash", "zsh", "fish", "ps1", "bat", "cmd",
	"py", "rb", "pl", "php", "java", "kt", "scala", "swift", "rs", "c", "h",
	"cc", "cpp", "hpp", "cs", "lua", "sql", "graphql", "proto",
	"csv", "tsv", "log", "lock", "gitignore", "gitattributes", "editorconfig",
	"dockerfile", "makefile", "tmpl", "tpl", "ejs",
)

var binaryExtensions = setOf(
	"png", "jpg", "jpeg", "gif", "bmp", "ico", "webp", "tif", "tiff", "psd",
	"pdf", "zip", "gz", "tgz", "bz2", "xz", "7z", "rar", "tar", "jar", "war",
	"exe", "dll", "so", "dylib", "a", "o", "obj", "class", "wasm", "bin", "dat",
	"woff", "woff2", "ttf", "otf", "eot",
	"mp3", "mp4", "m4a", "mov", "avi", "mkv", "wav", "flac", "ogg", "webm",
	"sqlite", "db",
)

func setOf(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// DefaultClassifier combines extension lists with content sniffing.
//
// A sample containing a NUL byte is always binary. Otherwise a known
// extension decides, and unknown extensions fall back to UTF-8 validity and
// http.DetectContentType.
type DefaultClassifier struct{}

// NewClassifier returns the default text/binary classifier.
func NewClassifier() Classifier {
	return DefaultClassifier{}
}

func (DefaultClassifier) IsText(name string, sample []byte) bool {
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}

	switch ext := extension(name); {
	case textExtensions[ext]:
		return true
	case binaryExtensions[ext]:
		return false
	}

	if len(sample) == 0 {
		return true
	}
	if utf8.Valid(trimPartialRune(sample)) {
		return true
	}
	return strings.HasPrefix(http.DetectContentType(sample), "text/")
}

func extension(name string) string {
	base := strings.ToLower(filepath.Base(name))
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		// extensionless names like Makefile or Dockerfile
		return base
	}
	return ext
}

// trimPartialRune drops an incomplete UTF-8 sequence at the end of a sample
// that was cut at an arbitrary byte.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			return b
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}
