package engine

// ============================================================================
// Engine Test File
// Purpose: Verify lifecycle transitions, illegal re-entry, drain ordering
//          and instruction forwarding (spec.md section 8 scenarios 1, 2, 7).
// ============================================================================

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/event"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/metrics"
	"github.com/ZotyDev/UnnamedEngine-Code/internal/worker"
	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New(worker.NewPool(1))
}

// TestEngineRunCorrect verifies the happy path: Stopped -> Running
// (spec.md section 8 scenario 1).
func TestEngineRunCorrect(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, types.Stopped, e.State())

	require.NoError(t, e.Run())
	assert.Equal(t, types.Running, e.State())
}

// TestEngineIllegalRestart verifies a second Run fails with
// InvalidStateError(Stopped, Running) (spec.md section 8 scenario 2).
func TestEngineIllegalRestart(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Run())

	err := e.Run()
	var invalidState *types.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, types.Stopped, invalidState.Expected)
	assert.Equal(t, types.Running, invalidState.Actual)
}

// TestEngineShutdownRoundTrip verifies Run then Shutdown returns the
// engine to Stopped, and a second Shutdown fails.
func TestEngineShutdownRoundTrip(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Run())
	require.NoError(t, e.Shutdown())
	assert.Equal(t, types.Stopped, e.State())

	err := e.Shutdown()
	var invalidState *types.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, types.Running, invalidState.Expected)
	assert.Equal(t, types.Stopped, invalidState.Actual)
}

// TestEngineShutdownRequiresRunning verifies Shutdown from Stopped fails.
func TestEngineShutdownRequiresRunning(t *testing.T) {
	e := newTestEngine()

	err := e.Shutdown()
	var invalidState *types.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, types.Running, invalidState.Expected)
	assert.Equal(t, types.Stopped, invalidState.Actual)
}

// TestEngineDrainOrdering verifies a single dispatcher's events arrive at
// RequireEvent in the same order after Step (spec.md section 8
// scenario 7).
func TestEngineDrainOrdering(t *testing.T) {
	e := newTestEngine()

	e.Dispatch(event.KeyboardEvent{Action: event.KeyPressed, Key: "K1"})
	e.Dispatch(event.KeyboardEvent{Action: event.KeyReleased, Key: "K1"})
	e.Dispatch(event.MouseEvent{Action: event.MouseMoved, X: 10, Y: 20})

	e.Step()

	first, ok := e.RequireEvent()
	require.True(t, ok)
	assert.Equal(t, event.KeyboardEvent{Action: event.KeyPressed, Key: "K1"}, first)

	second, ok := e.RequireEvent()
	require.True(t, ok)
	assert.Equal(t, event.KeyboardEvent{Action: event.KeyReleased, Key: "K1"}, second)

	third, ok := e.RequireEvent()
	require.True(t, ok)
	assert.Equal(t, event.MouseEvent{Action: event.MouseMoved, X: 10, Y: 20}, third)

	_, ok = e.RequireEvent()
	assert.False(t, ok)
}

// TestEngineStepIsIdempotentWhenEmpty verifies Step returns immediately
// when there is nothing to drain.
func TestEngineStepIsIdempotentWhenEmpty(t *testing.T) {
	e := newTestEngine()
	e.Step()

	_, ok := e.RequireEvent()
	assert.False(t, ok)
}

// TestEngineInstructForwardsToPool verifies Instruct forwards to the
// worker pool and surfaces admission errors to the caller.
func TestEngineInstructForwardsToPool(t *testing.T) {
	e := newTestEngine()

	err := e.Instruct(worker.SpecializeInstruction(types.GenericKind(1), func() {}))
	assert.ErrorIs(t, err, types.ErrCannotSpecializeIntoGeneric)
}

// TestEngineEventHandlerInvokedPerReadyEvent verifies an installed
// handler is invoked once per event drained during Step.
func TestEngineEventHandlerInvokedPerReadyEvent(t *testing.T) {
	e := newTestEngine()

	var seen []event.Event
	e.SetEventHandler(NewHandler(func(eng *Engine, evt event.Event) {
		seen = append(seen, evt)
	}))

	e.Dispatch(event.WindowEvent{Signal: "close"})
	e.Dispatch(event.WindowEvent{Signal: "resize"})

	e.Step()

	assert.Len(t, seen, 2)
}

// TestEngineRecordsMetricsWhenCollectorSet verifies Dispatch, Step and
// RequireEvent report to an installed collector without panicking or
// blocking, and that both drained events still reach RequireEvent.
func TestEngineRecordsMetricsWhenCollectorSet(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := metrics.NewCollector()

	e := newTestEngine()
	e.SetCollector(collector)

	e.Dispatch(event.WindowEvent{Signal: "close"})
	e.Dispatch(event.WindowEvent{Signal: "resize"})

	e.Step()

	_, ok := e.RequireEvent()
	require.True(t, ok)
	_, ok = e.RequireEvent()
	require.True(t, ok)
}
