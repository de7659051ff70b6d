package worker

// ============================================================================
// Worker Pool Test File
// Purpose: Verify pool sizing, growth, dispatch fairness, and
//          specialization admission (spec.md section 8 scenarios 3-6).
// ============================================================================

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/metrics"
	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewPoolSize verifies NewPool spawns exactly the requested number of
// workers.
func TestNewPoolSize(t *testing.T) {
	pool := NewPool(4)
	assert.Equal(t, 4, pool.Len())
	assert.False(t, pool.IsEmpty())
}

// TestNewPoolZeroIsPermitted verifies an empty pool is legal: Send
// succeeds, but nothing will ever service the instruction (spec.md
// section 8 boundary behavior).
func TestNewPoolZeroIsPermitted(t *testing.T) {
	pool := NewPool(0)
	assert.True(t, pool.IsEmpty())

	err := pool.Send(ExecuteInstruction(func() {}))
	assert.NoError(t, err)
}

// TestNewPoolBelowDedicatedKindCountStillConstructs verifies a pool sized
// below types.DedicatedKindCount still constructs successfully (only a
// warning is logged, construction never fails).
func TestNewPoolBelowDedicatedKindCountStillConstructs(t *testing.T) {
	pool := NewPool(0)
	assert.Equal(t, 0, pool.Len())
}

// TestPoolSendFailsAfterTerminateAll verifies Send reports
// ErrInstructionSendFail once the pool's queues have been closed by
// TerminateAll (spec.md's "channel broken" taxonomy).
func TestPoolSendFailsAfterTerminateAll(t *testing.T) {
	pool := NewPool(1)
	pool.TerminateAll()

	err := pool.Send(ExecuteInstruction(func() {}))
	assert.ErrorIs(t, err, types.ErrInstructionSendFail)
}

// TestPoolGrow verifies Grow appends workers and returns the new length.
func TestPoolGrow(t *testing.T) {
	pool := NewPool(2)

	newLen := pool.Grow(3)
	assert.Equal(t, 5, newLen)
	assert.Equal(t, 5, pool.Len())
}

// TestPoolSingleExecute verifies a single Execute instruction runs on the
// one worker, which then returns to Idle (spec.md section 8 scenario 3).
func TestPoolSingleExecute(t *testing.T) {
	pool := NewPool(1)

	done := make(chan struct{})
	err := pool.Send(ExecuteInstruction(func() {
		time.Sleep(50 * time.Millisecond)
		close(done)
	}))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run within timeout")
	}

	// Give the worker a moment to transition back to Idle after the
	// job body returns.
	require.Eventually(t, func() bool {
		return pool.workers[0].State() == types.Idle
	}, time.Second, 10*time.Millisecond)
}

// TestPoolOverSubscription verifies 8 jobs sent to 4 workers all complete
// (spec.md section 8 scenario 4).
func TestPoolOverSubscription(t *testing.T) {
	pool := NewPool(4)

	var completed int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(8)

	for i := 0; i < 8; i++ {
		err := pool.Send(ExecuteInstruction(func() {
			time.Sleep(100 * time.Millisecond)
			mu.Lock()
			completed++
			mu.Unlock()
			wg.Done()
		}))
		require.NoError(t, err)
	}

	waitWithTimeout(t, &wg, 3*time.Second)

	mu.Lock()
	defer mu.Unlock()
	assert.EqualValues(t, 8, completed)
}

// TestPoolSpecializationAdmission verifies the admission/rejection/release
// cycle described in spec.md section 8 scenario 5.
func TestPoolSpecializationAdmission(t *testing.T) {
	pool := NewPool(2)

	err := pool.Send(SpecializeInstruction(types.NetworkingKind, func() {
		time.Sleep(110 * time.Millisecond)
	}))
	require.NoError(t, err)

	err = pool.Send(SpecializeInstruction(types.NetworkingKind, func() {}))
	var specErr *types.SpecializationAlreadyExistsError
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, types.NetworkingKind, specErr.Kind)

	time.Sleep(130 * time.Millisecond)

	// Any send drains notifications at its head, releasing the
	// reservation before this call's own admission check runs.
	err = pool.Send(SpecializeInstruction(types.NetworkingKind, func() {}))
	assert.NoError(t, err)
}

// TestPoolCannotSpecializeIntoGeneric verifies rejecting
// Specialize(Generic(_), ...) (spec.md section 8 scenario 6).
func TestPoolCannotSpecializeIntoGeneric(t *testing.T) {
	pool := NewPool(2)

	err := pool.Send(SpecializeInstruction(types.GenericKind(7), func() {}))
	assert.ErrorIs(t, err, types.ErrCannotSpecializeIntoGeneric)
}

// TestPoolTerminateAllJoinsWithoutShrinking verifies len() is unchanged
// across TerminateAll even though every worker goroutine has exited
// (spec.md section 8 invariant).
func TestPoolTerminateAllJoinsWithoutShrinking(t *testing.T) {
	pool := NewPool(3)
	before := pool.Len()

	done := make(chan struct{})
	go func() {
		pool.TerminateAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("TerminateAll did not return within timeout")
	}

	assert.Equal(t, before, pool.Len())
}

// TestPoolRecordsMetricsWhenCollectorSet verifies an Execute job's
// lifecycle notifications reach an installed collector without panicking
// or blocking the pool.
func TestPoolRecordsMetricsWhenCollectorSet(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := metrics.NewCollector()

	pool := NewPool(1)
	pool.SetCollector(collector)

	err := pool.Send(ExecuteInstruction(func() {
		time.Sleep(20 * time.Millisecond)
	}))
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	// Any Send drains pending notifications at its head; this second
	// Send forces the drain that records the prior job's metrics.
	err = pool.Send(ExecuteInstruction(func() {}))
	require.NoError(t, err)
}

func waitWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for jobs to complete")
	}
}
