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
	"io/fs"

	"github.com/walteh/scaffoldrc/pkg/fsys"
	"gitlab.com/tozd/go/errors"
)

// 🛡️ Policy decides whether an entry may be written to its destination
type Policy struct {
	FS        fsys.FS
	Overwrite bool
}

// Check returns nil when src may be written to dest.
//
// A missing destination is always allowed. An existing one is allowed when
// overwriting is on, or when both sides are directories. Any other stat
// failure is returned wrapped.
func (p Policy) Check(src fs.FileInfo, dest string) error {
	existing, err := p.FS.Lstat(dest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Errorf("checking destination %s: %w", dest, err)
	}

	if p.Overwrite {
		return nil
	}

	if src != nil && src.IsDir() {
		if existing.Mode()&fs.ModeSymlink != 0 {
			// a link to a directory can still be written into
			if target, err := p.FS.Stat(dest); err == nil {
				existing = target
			}
		}
		if existing.IsDir() {
			return nil
		}
	}

	return errors.Errorf("%w: %s", ErrAlreadyExists, dest)
}
