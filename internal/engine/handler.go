// ============================================================================
// UnnamedEngine External Event Handler Hook
// ============================================================================
//
// Package: internal/engine
// File: handler.go
// Purpose: A thin, optional callback bound to the engine, invoked once per
//          event during Step, right after that event is appended to the
//          ready-event queue (the event stays queued for RequireEvent).
//          Lets an outer driver (a CLI loop, a window loop) react to
//          drained events with mutable access to the engine itself.
//
// ============================================================================

package engine

import "github.com/ZotyDev/UnnamedEngine-Code/internal/event"

// Callback is invoked once per ready event, with mutable access to t.
type Callback[T any] func(t *T, e event.Event)

// Handler wraps an optional Callback. The zero value has no callback
// installed and Handler.invoke is then a no-op.
type Handler[T any] struct {
	callback Callback[T]
}

// NewHandler builds a Handler wrapping callback.
func NewHandler[T any](callback Callback[T]) *Handler[T] {
	return &Handler[T]{callback: callback}
}

// invoke calls the wrapped callback, if any.
func (h *Handler[T]) invoke(t *T, e event.Event) {
	if h == nil || h.callback == nil {
		return
	}
	h.callback(t, e)
}
