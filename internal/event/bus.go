// ============================================================================
// UnnamedEngine Event Bus
// ============================================================================
//
// Package: internal/event
// File: bus.go
// Purpose: Single-consumer, multi-dispatcher event queue that decouples
//          event producers (window system, workers, the engine itself)
//          from the engine's drain loop.
//
// Design:
//   CreateHandler returns a (Dispatcher, Consumer) pair backed by one
//   shared, mutex-guarded FIFO queue. Dispatcher.send is non-blocking and
//   never fails visibly to the caller — matching the semantics of an
//   unbounded channel (the original design's std::sync::mpsc). Consumer.Poll
//   never blocks: it returns the next queued event, or ok=false if none is
//   queued.
//
//   Any number of Dispatcher values may be cloned (Dispatcher is a small
//   struct holding only a pointer to the shared queue, so copying it is
//   cheap and safe to hand across goroutines). Exactly one Consumer should
//   ever drain a given bus — that contract is not enforced by the type
//   system, mirroring the original design.
//
// ============================================================================

package event

import (
	"log/slog"
	"sync"
)

var log = slog.Default()

// bus is the shared state behind a Dispatcher/Consumer pair.
type bus struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
}

// CreateHandler creates a linked Dispatcher/Consumer pair. Any number of
// Dispatcher values may be used concurrently; there is exactly one
// Consumer.
func CreateHandler() (Dispatcher, Consumer) {
	b := &bus{}
	return Dispatcher{b: b}, Consumer{b: b}
}

// Dispatcher sends events into the bus. The zero value is not usable;
// obtain one from CreateHandler. Dispatcher is cheap to copy and safe to
// share across goroutines.
type Dispatcher struct {
	b *bus
}

// Send enqueues event for the consumer. Send never blocks and never
// returns an error to the caller: if the bus has been closed (the
// consumer side has been torn down), the event is discarded and logged at
// error level instead.
func (d Dispatcher) Send(e Event) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()

	if d.b.closed {
		log.Error("discarding event: consumer has been dropped", "event", e.String())
		return
	}

	d.b.queue = append(d.b.queue, e)
}

// Consumer drains events from the bus. There should be exactly one
// Consumer per bus.
type Consumer struct {
	b *bus
}

// Poll returns the next queued event, if any. It never blocks.
func (c Consumer) Poll() (Event, bool) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()

	if len(c.b.queue) == 0 {
		return nil, false
	}

	e := c.b.queue[0]
	c.b.queue = c.b.queue[1:]
	return e, true
}

// Close marks the bus as torn down. Subsequent Dispatcher.Send calls are
// discarded and logged rather than silently queued forever. Close is
// idempotent.
func (c Consumer) Close() {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.b.closed = true
}
