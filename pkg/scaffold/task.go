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
	"context"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// ⏳ Task is a copy running in the background
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu        sync.Mutex
	finished  bool
	result    Result
	err       error
	callbacks []func(Result, error)
}

// ⚡ Start runs Copy in a new goroutine
func (s *Scaffolder) Start(ctx context.Context, req Request) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		result, err := s.Copy(ctx, req)
		t.finish(result, err)
	}()

	return t
}

func (t *Task) finish(result Result, err error) {
	t.mu.Lock()
	t.finished = true
	t.result = result
	t.err = err
	callbacks := t.callbacks
	t.callbacks = nil
	close(t.done)
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn(result, err)
	}
}

// Done is closed once the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel stops the copy. Wait then returns the cancellation error.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return nil, errors.Errorf("waiting for scaffold: %w", ctx.Err())
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.result, t.err
	}
}

// OnDone registers fn to run once with the outcome. If the task already
// finished, fn runs right away on the calling goroutine.
func (t *Task) OnDone(fn func(Result, error)) *Task {
	t.mu.Lock()
	if !t.finished {
		t.callbacks = append(t.callbacks, fn)
		t.mu.Unlock()
		return t
	}
	result, err := t.result, t.err
	t.mu.Unlock()

	fn(result, err)
	return t
}
