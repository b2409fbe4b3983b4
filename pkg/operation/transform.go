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
	"bytes"
	"io"

	"github.com/walteh/scaffoldrc/pkg/fsys"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 64 * 1024

var delimiter = []byte(tmpl.Delimiter)

// 🔄 Transformer streams file content, expanding placeholders in text
//
// The first chunk decides whether the file is text. Every later chunk is
// treated the same way. Each chunk is rendered on its own, so a tag that
// straddles two chunks is written out literally.
type Transformer struct {
	classifier fsys.Classifier
	chunkSize  int
}

// 🏭 NewTransformer creates a transformer. A nil classifier uses the default
// and a non-positive chunk size uses DefaultChunkSize.
func NewTransformer(classifier fsys.Classifier, chunkSize int) *Transformer {
	if classifier == nil {
		classifier = fsys.NewClassifier()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Transformer{classifier: classifier, chunkSize: chunkSize}
}

// Transform copies src to dst and returns the number of bytes written.
// name is only used for classification and error messages.
func (t *Transformer) Transform(dst io.Writer, src io.Reader, name string, data tmpl.Lookup) (int64, error) {
	var (
		written int64
		decided bool
		text    bool
		buf     = make([]byte, t.chunkSize)
	)

	for {
		n, readErr := io.ReadFull(src, buf)
		if n > 0 {
			chunk := buf[:n]
			if !decided {
				text = t.classifier.IsText(name, chunk)
				decided = true
			}

			out := chunk
			if text && bytes.Contains(chunk, delimiter) {
				rendered, err := tmpl.Render(string(chunk), data)
				if err != nil {
					return written, errors.Errorf("rendering %s: %w", name, err)
				}
				out = []byte(rendered)
			}

			w, err := dst.Write(out)
			written += int64(w)
			if err != nil {
				return written, errors.Errorf("writing %s: %w", name, err)
			}
		}

		switch {
		case readErr == nil:
			continue
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			return written, nil
		default:
			return written, errors.Errorf("reading %s: %w", name, readErr)
		}
	}
}
