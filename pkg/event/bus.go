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
)

// Listener receives events.
type Listener func(Event)

// Emitter is anything events can be sent to.
type Emitter interface {
	Emit(Event)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard drops every event.
var Discard Emitter = discard{}

// 🚌 Bus fans events out to registered listeners
//
// Listeners run one at a time, in registration order. Events are delivered
// in the order they were emitted. A listener may register further listeners
// or emit; an event emitted from a listener is delivered once the current
// event has reached every listener.
type Bus struct {
	mu       sync.RWMutex
	byKind   map[Kind][]Listener
	wildcard []Listener

	qmu      sync.Mutex
	queue    []Event
	draining bool
}

// 🏭 NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		byKind: map[Kind][]Listener{},
	}
}

// On registers fn for events of kind k and returns the bus for chaining.
func (b *Bus) On(k Kind, fn Listener) *Bus {
	if fn == nil {
		return b
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byKind[k] = append(b.byKind[k], fn)
	return b
}

// OnAny registers fn for every event and returns the bus for chaining.
func (b *Bus) OnAny(fn Listener) *Bus {
	if fn == nil {
		return b
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wildcard = append(b.wildcard, fn)
	return b
}

func (b *Bus) listeners(k Kind) []Listener {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Listener, 0, len(b.byKind[k])+len(b.wildcard))
	out = append(out, b.byKind[k]...)
	out = append(out, b.wildcard...)
	return out
}

// Emit delivers e to every listener registered for its kind, then to the
// wildcard listeners. If another Emit is already delivering, e is queued
// and delivered by that call.
func (b *Bus) Emit(e Event) {
	b.qmu.Lock()
	b.queue = append(b.queue, e)
	if b.draining {
		b.qmu.Unlock()
		return
	}
	b.draining = true
	defer func() {
		b.draining = false
		b.qmu.Unlock()
	}()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.qmu.Unlock()
		b.deliver(next)
		b.qmu.Lock()
	}
}

func (b *Bus) deliver(e Event) {
	for _, fn := range b.listeners(e.Kind) {
		fn(e)
	}
}

// 📼 Recorder keeps every event it receives
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Listen is a Listener that records e.
func (r *Recorder) Listen(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Emit makes Recorder an Emitter.
func (r *Recorder) Emit(e Event) {
	r.Listen(e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
