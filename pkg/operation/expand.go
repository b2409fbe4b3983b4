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
	"path/filepath"
	"strings"

	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// 🔤 ExpandSegment expands placeholders in a single path segment
//
// A segment without a delimiter is returned unchanged. The expanded value
// must still be one path element.
func ExpandSegment(segment string, data tmpl.Lookup) (string, error) {
	if !tmpl.HasDelimiter(segment) {
		return segment, nil
	}

	out, err := tmpl.Render(segment, data)
	if err != nil {
		return "", errors.Errorf("expanding path segment %q: %w", segment, err)
	}

	switch {
	case out == "", out == ".", out == "..":
		return "", errors.Errorf("%w: segment %q expands to %q", ErrInvalidDestination, segment, out)
	case strings.ContainsRune(out, '/'), strings.ContainsRune(out, filepath.Separator):
		return "", errors.Errorf("%w: segment %q expands to %q which contains a path separator", ErrInvalidDestination, segment, out)
	case strings.ContainsRune(out, 0):
		return "", errors.Errorf("%w: segment %q expands to a value with a NUL byte", ErrInvalidDestination, segment)
	}
	return out, nil
}
