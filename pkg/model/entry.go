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

package model

import (
	"io/fs"
)

// 📦 Kind is the type of filesystem object a template entry is
type Kind int

const (
	KindUnknown   Kind = iota
	KindDirectory      // a directory, created at the destination
	KindFile           // a regular file, streamed through the content transformer
	KindSymlink        // a symbolic link, recreated at the destination
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// KindOf classifies info. Anything that is not a directory or a symlink is
// treated as a file.
func KindOf(info fs.FileInfo) Kind {
	switch {
	case info == nil:
		return KindUnknown
	case info.Mode()&fs.ModeSymlink != 0:
		return KindSymlink
	case info.IsDir():
		return KindDirectory
	default:
		return KindFile
	}
}

// 📄 Entry is one source object together with its resolved destination
type Entry struct {
	Source      string      // Path in the template tree
	Destination string      // Path the object was written to
	Kind        Kind        // Object type
	Info        fs.FileInfo // Source stat info
}

// IsDir reports whether the source object is a directory.
func (e Entry) IsDir() bool {
	return e.Info != nil && e.Info.IsDir()
}

// 📋 Result lists every copied entry in pre-order traversal order
type Result []Entry

// Sources returns the source path of each entry, in order.
func (r Result) Sources() []string {
	out := make([]string, len(r))
	for i, e := range r {
		out[i] = e.Source
	}
	return out
}

// Destinations returns the destination path of each entry, in order.
func (r Result) Destinations() []string {
	out := make([]string, len(r))
	for i, e := range r {
		out[i] = e.Destination
	}
	return out
}

// Count returns how many entries are of kind k.
func (r Result) Count(k Kind) int {
	n := 0
	for _, e := range r {
		if e.Kind == k {
			n++
		}
	}
	return n
}
