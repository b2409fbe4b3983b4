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

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidSource means the template root is missing or not a directory.
	ErrInvalidSource = errors.Base("invalid source")
	// ErrInvalidDestination means a destination path is empty, malformed,
	// or a placeholder expanded into something that is not a single name.
	ErrInvalidDestination = errors.Base("invalid destination")
	// ErrAlreadyExists means the destination exists and overwriting is off.
	ErrAlreadyExists = errors.Base("destination already exists")
	// ErrSymlinkLoop means following symlinks led back to an ancestor.
	ErrSymlinkLoop = errors.Base("symlink loop")
)

// ValidateDestination checks that dest can name a path at all.
func ValidateDestination(dest string) error {
	if strings.TrimSpace(dest) == "" {
		return errors.Errorf("%w: empty path", ErrInvalidDestination)
	}
	if strings.ContainsRune(dest, 0) {
		return errors.Errorf("%w: %q contains a NUL byte", ErrInvalidDestination, dest)
	}
	return nil
}
