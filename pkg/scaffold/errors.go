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

package scaffold

import (
	"github.com/walteh/scaffoldrc/pkg/operation"
	"github.com/walteh/scaffoldrc/pkg/tmpl"
	"gitlab.com/tozd/go/errors"
)

// ErrorKind groups the errors a run can fail with.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	InvalidSource
	InvalidDestination
	AlreadyExists
	UndefinedPlaceholder
	UnderlyingIOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidSource:
		return "InvalidSource"
	case InvalidDestination:
		return "InvalidDestination"
	case AlreadyExists:
		return "AlreadyExists"
	case UndefinedPlaceholder:
		return "UndefinedPlaceholder"
	case UnderlyingIOFailure:
		return "UnderlyingIOFailure"
	default:
		return "None"
	}
}

// 🏷️ KindOf classifies err
//
// A malformed template or a symlink loop counts as an invalid source.
// Anything unrecognised is an underlying failure, including cancellation.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, operation.ErrInvalidSource),
		errors.Is(err, operation.ErrSymlinkLoop),
		errors.Is(err, tmpl.ErrSyntax):
		return InvalidSource
	case errors.Is(err, operation.ErrInvalidDestination):
		return InvalidDestination
	case errors.Is(err, operation.ErrAlreadyExists):
		return AlreadyExists
	case errors.Is(err, tmpl.ErrUndefinedPlaceholder):
		return UndefinedPlaceholder
	default:
		return UnderlyingIOFailure
	}
}
