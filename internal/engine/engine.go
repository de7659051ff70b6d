// ============================================================================
// UnnamedEngine Engine - Lifecycle State Machine & Event Drain Loop
// ============================================================================
//
// Package: internal/engine
// File: engine.go
// Purpose: Owns the lifecycle state, the event consumer, and the worker
//          pool. Exposes Run/Shutdown/Step and a ready-event queue for
//          external observers (e.g. a CLI or UI driver loop).
//
// State machine:
//   Stopped -> Starting -> Running -> Stopping -> Stopped
//   Only Run and Shutdown may initiate a transition; the transient states
//   forbid concurrent re-entry of the transitioning operation.
//
// Drain algorithm (Step):
//   Repeatedly poll the bus; for each event, perform the engine's internal
//   reaction, then append the event to the ready queue; stop when poll
//   returns nothing. Producers may enqueue during draining, but Step does
//   not wait for quiescence beyond the natural drain — callers invoke Step
//   again on the next tick.
//
// Internal reactions:
//   - Engine(Started): log start.
//   - Engine(Shutdown): log preparing-shutdown.
//   - Engine(Stopped): log stopped.
//   - Mouse(*): no reaction (suppressed from logs to avoid spam).
//   - anything else: log a warning that internal handling is not
//     implemented.
//
// Metrics:
//   SetCollector installs an optional internal/metrics.Collector. Dispatch
//   records RecordEventDispatched; Step and RequireEvent record
//   SetReadyQueueDepth against the current length of the ready queue. A nil
//   collector (the default) disables recording entirely.
//
// ============================================================================

package engine

import (
	"log/slog"
	"sync"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/event"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/metrics"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/worker"
	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
)

var log = slog.Default()

// Engine holds the lifecycle state, the sole event consumer, and the
// worker pool.
type Engine struct {
	mu    sync.Mutex
	state types.EngineState

	dispatcher event.Dispatcher
	consumer   event.Consumer

	pool *worker.Pool

	ready []event.Event

	handler *Handler[Engine]

	collector *metrics.Collector
}

// New builds an Engine around a freshly created event bus and the
// provided worker pool.
func New(pool *worker.Pool) *Engine {
	dispatcher, consumer := event.CreateHandler()

	return &Engine{
		state:      types.Stopped,
		dispatcher: dispatcher,
		consumer:   consumer,
		pool:       pool,
	}
}

// Default builds an Engine backed by worker.DefaultPool().
func Default() *Engine {
	return New(worker.DefaultPool())
}

// SetCollector installs a metrics collector that observes dispatched events
// and ready-queue depth. Passing nil disables metrics recording. Safe to
// call concurrently with Dispatch and Step.
func (e *Engine) SetCollector(c *metrics.Collector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.collector = c
}

// State returns a copy of the current lifecycle state.
func (e *Engine) State() types.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Run transitions Stopped -> Starting -> Running. Fails with
// InvalidStateError if the engine is not currently Stopped.
func (e *Engine) Run() error {
	e.mu.Lock()
	if e.state != types.Stopped {
		actual := e.state
		e.mu.Unlock()
		return &types.InvalidStateError{Expected: types.Stopped, Actual: actual}
	}
	e.state = types.Starting
	e.mu.Unlock()

	e.dispatcher.Send(event.EngineEvent{Kind: event.EngineStarted})

	e.mu.Lock()
	e.state = types.Running
	e.mu.Unlock()

	log.Info("successfully started engine")

	return nil
}

// Shutdown transitions Running -> Stopping -> Stopped. Fails with
// InvalidStateError if the engine is not currently Running.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	if e.state != types.Running {
		actual := e.state
		e.mu.Unlock()
		return &types.InvalidStateError{Expected: types.Running, Actual: actual}
	}
	e.state = types.Stopping
	e.mu.Unlock()

	e.dispatcher.Send(event.EngineEvent{Kind: event.EngineShutdown})

	e.mu.Lock()
	e.state = types.Stopped
	e.mu.Unlock()

	e.dispatcher.Send(event.EngineEvent{Kind: event.EngineStopped})

	log.Info("successfully stopped engine")

	return nil
}

// Dispatch forwards event into the bus. Safe to call from any state and
// any goroutine.
func (e *Engine) Dispatch(evt event.Event) {
	e.dispatcher.Send(evt)

	e.mu.Lock()
	collector := e.collector
	e.mu.Unlock()
	if collector != nil {
		collector.RecordEventDispatched()
	}
}

// Instruct forwards instruction to the worker pool, surfacing any
// admission or transport error to the caller (spec.md section 9's open
// question is decided in favor of surfacing, not swallowing).
func (e *Engine) Instruct(instruction worker.Instruction) error {
	if err := e.pool.Send(instruction); err != nil {
		log.Error("failed to send instruction to worker", "error", err)
		return err
	}
	return nil
}

// Step drains every currently pending event once: for each, it performs
// the engine's internal reaction, then appends it to the ready queue.
// Step never blocks and terminates as soon as the bus reports empty.
func (e *Engine) Step() {
	for {
		evt, ok := e.consumer.Poll()
		if !ok {
			return
		}

		e.react(evt)

		e.mu.Lock()
		e.ready = append(e.ready, evt)
		depth := len(e.ready)
		collector := e.collector
		e.mu.Unlock()

		if collector != nil {
			collector.SetReadyQueueDepth(depth)
		}

		if e.handler != nil {
			e.handler.invoke(e, evt)
		}
	}
}

// react performs the engine's internal handling of evt, strictly before
// evt is appended to the ready queue.
func (e *Engine) react(evt event.Event) {
	switch ev := evt.(type) {
	case event.EngineEvent:
		switch ev.Kind {
		case event.EngineStarted:
			log.Info("successfully started engine!")
		case event.EngineShutdown:
			log.Info("engine preparing for graceful shutdown!")
		case event.EngineStopped:
			log.Info("engine gracefully stopped!")
		}
	case event.MouseEvent:
		// Suppressed from logs to avoid spam.
	default:
		log.Warn("internal event handling not implemented", "event", evt.String())
	}
}

// RequireEvent returns the next ready event forwarded to external
// observers, if any.
func (e *Engine) RequireEvent() (event.Event, bool) {
	e.mu.Lock()

	if len(e.ready) == 0 {
		e.mu.Unlock()
		return nil, false
	}

	evt := e.ready[0]
	e.ready = e.ready[1:]
	depth := len(e.ready)
	collector := e.collector
	e.mu.Unlock()

	if collector != nil {
		collector.SetReadyQueueDepth(depth)
	}

	return evt, true
}

// SetEventHandler installs a callback invoked once per event dequeued
// from the bus during Step, with access to the engine itself. Passing nil
// clears any previously installed handler.
func (e *Engine) SetEventHandler(h *Handler[Engine]) {
	e.handler = h
}
