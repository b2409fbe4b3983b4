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

package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	want := []string{
		"error",
		"complete",
		"createDirectoryStart",
		"createDirectoryError",
		"createDirectoryComplete",
		"createSymlinkStart",
		"createSymlinkError",
		"createSymlinkComplete",
		"copyFileStart",
		"copyFileError",
		"copyFileComplete",
	}

	kinds := Kinds()
	require.Len(t, kinds, len(want))
	for i, k := range kinds {
		assert.Equal(t, want[i], k.String())
		parsed, ok := ParseKind(want[i])
		assert.True(t, ok, "kind %s should parse", want[i])
		assert.Equal(t, k, parsed)
	}

	_, ok := ParseKind("nope")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindPhase(t *testing.T) {
	tests := []struct {
		kind     Kind
		phase    Phase
		terminal bool
	}{
		{Error, PhaseNone, true},
		{Complete, PhaseNone, true},
		{CreateDirectoryStart, PhaseStart, false},
		{CreateSymlinkError, PhaseError, false},
		{CopyFileComplete, PhaseComplete, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.phase, tt.kind.Phase())
			assert.Equal(t, tt.terminal, tt.kind.IsTerminal())
		})
	}
}

func TestBus(t *testing.T) {
	var got []string
	bus := NewBus().
		On(CopyFileStart, func(e Event) { got = append(got, "start:"+e.Entry.Source) }).
		On(CopyFileComplete, func(e Event) { got = append(got, "complete:"+e.Entry.Source) }).
		OnAny(func(e Event) { got = append(got, "any:"+e.Kind.String()) })

	bus.Emit(Event{Kind: CopyFileStart})
	bus.Emit(Event{Kind: Complete})

	assert.Equal(t, []string{
		"start:",
		"any:copyFileStart",
		"any:complete",
	}, got)
}

func TestBusSerializesListeners(t *testing.T) {
	var (
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	bus := NewBus().OnAny(func(Event) {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()

		mu.Lock()
		active--
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Emit(Event{Kind: CopyFileStart})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen, "listeners should never overlap")
}

func TestBusListenerMayEmit(t *testing.T) {
	bus := NewBus()
	rec := &Recorder{}
	bus.On(CopyFileComplete, func(e Event) {
		bus.Emit(Event{Kind: Complete})
	}).OnAny(rec.Listen)

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Emit(Event{Kind: CopyFileComplete})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("emitting from a listener blocked")
	}
	assert.Equal(t, []Kind{CopyFileComplete, Complete}, rec.Kinds(), "the relayed event follows the one that caused it")
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	bus := NewBus().OnAny(rec.Listen)

	bus.Emit(Event{Kind: CreateDirectoryStart})
	bus.Emit(Event{Kind: CreateDirectoryComplete})
	bus.Emit(Event{Kind: Complete})

	assert.Equal(t, []Kind{CreateDirectoryStart, CreateDirectoryComplete, Complete}, rec.Kinds())
	assert.Equal(t, 1, rec.Count(Complete))
	assert.Len(t, rec.Events(), 3)
}
