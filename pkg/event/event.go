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

// Package event defines the lifecycle notifications emitted while a template
// is copied and the bus that delivers them.
package event

import (
	"github.com/walteh/scaffoldrc/pkg/model"
)

// 🏷️ Kind identifies a lifecycle event. The set is closed.
type Kind int

const (
	Error Kind = iota + 1
	Complete
	CreateDirectoryStart
	CreateDirectoryError
	CreateDirectoryComplete
	CreateSymlinkStart
	CreateSymlinkError
	CreateSymlinkComplete
	CopyFileStart
	CopyFileError
	CopyFileComplete
)

var names = map[Kind]string{
	Error:                   "error",
	Complete:                "complete",
	CreateDirectoryStart:    "createDirectoryStart",
	CreateDirectoryError:    "createDirectoryError",
	CreateDirectoryComplete: "createDirectoryComplete",
	CreateSymlinkStart:      "createSymlinkStart",
	CreateSymlinkError:      "createSymlinkError",
	CreateSymlinkComplete:   "createSymlinkComplete",
	CopyFileStart:           "copyFileStart",
	CopyFileError:           "copyFileError",
	CopyFileComplete:        "copyFileComplete",
}

// String returns the event name.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every event kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(names))
	for k := Error; k <= CopyFileComplete; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind looks up a kind by its event name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range names {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// IsTerminal reports whether k ends a run.
func (k Kind) IsTerminal() bool {
	return k == Error || k == Complete
}

// Phase is the position of a per-entry event within its action.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseStart
	PhaseError
	PhaseComplete
)

// Phase returns the phase of a per-entry kind, or PhaseNone for terminal kinds.
func (k Kind) Phase() Phase {
	switch k {
	case CreateDirectoryStart, CreateSymlinkStart, CopyFileStart:
		return PhaseStart
	case CreateDirectoryError, CreateSymlinkError, CopyFileError:
		return PhaseError
	case CreateDirectoryComplete, CreateSymlinkComplete, CopyFileComplete:
		return PhaseComplete
	default:
		return PhaseNone
	}
}

// Action is a filesystem action that has start, error and complete kinds.
type Action struct {
	Start, Error, Complete Kind
}

var (
	CreateDirectory = Action{CreateDirectoryStart, CreateDirectoryError, CreateDirectoryComplete}
	CreateSymlink   = Action{CreateSymlinkStart, CreateSymlinkError, CreateSymlinkComplete}
	CopyFile        = Action{CopyFileStart, CopyFileError, CopyFileComplete}
)

// 📣 Event is a single lifecycle notification
type Event struct {
	Kind   Kind
	Entry  model.Entry  // set for per-entry kinds
	Err    error        // set for error kinds
	Result model.Result // set for Complete
}
