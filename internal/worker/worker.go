// ============================================================================
// UnnamedEngine Worker - Task Execution Unit
// ============================================================================
//
// Package: internal/worker
// File: worker.go
// Purpose: A Worker is an independent goroutine that executes instructions
//          pulled from the pool's shared instruction queue.
//
// Main loop:
//   Block on the instruction queue. On each instruction:
//     - Wait: log a warning (unexpected) and break out of the loop.
//     - Execute(job): transition to Executing, notify JobStarted, run the
//       job, transition to Idle, notify JobCompleted.
//     - Terminate: break out of the loop.
//     - Specialize(role, job): if the worker is not currently Generic, log
//       an error and drop the job (no specialization-of-specialization).
//       Otherwise adopt role, notify SpecializedJobStarted, run the job,
//       notify SpecializedJobCompleted BEFORE reverting to Generic, then
//       revert and go Idle. The notify-before-revert ordering is load
//       bearing: the pool uses the notification to release the
//       dedicated-tag reservation.
//
// Observable side effects:
//   Each kind/state transition is a single atomic change protected by a
//   mutex; callers reading Kind()/State() never observe a partial state.
//
// ============================================================================

package worker

import (
	"log/slog"
	"sync"

	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
)

var log = slog.Default()

// Worker executes instructions pulled from the pool's shared instruction
// channel on its own goroutine.
type Worker struct {
	mu    sync.RWMutex
	kind  types.WorkerKind
	state types.WorkerState

	instructions  *queue[Instruction]
	notifications *queue[Notification]
	done          chan struct{}
}

// newWorker creates and starts a Worker with home identity Generic(id).
func newWorker(id uint64, instructions *queue[Instruction], notifications *queue[Notification]) *Worker {
	w := &Worker{
		kind:          types.GenericKind(id),
		state:         types.Idle,
		instructions:  instructions,
		notifications: notifications,
		done:          make(chan struct{}),
	}

	go w.run()

	return w
}

// Kind returns a copy of the worker's current kind.
func (w *Worker) Kind() types.WorkerKind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.kind
}

// State returns a copy of the worker's current state.
func (w *Worker) State() types.WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// setState updates the worker's state under lock.
func (w *Worker) setState(s types.WorkerState) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Join blocks until the worker's goroutine has exited.
func (w *Worker) Join() {
	<-w.done
}

// run is the worker's main loop.
func (w *Worker) run() {
	defer close(w.done)

	for {
		instruction, ok := w.instructions.Pop()
		if !ok {
			return
		}

		switch instruction.Kind {
		case Wait:
			log.Warn("worker instructed to wait: this is not normal behavior", "worker", w.Kind())
			return

		case Execute:
			w.executeJob(instruction.Job)

		case Terminate:
			log.Info("worker instructed to terminate", "worker", w.Kind())
			return

		case Specialize:
			w.specialize(instruction.Role, instruction.Job)
		}
	}
}

// executeJob runs a plain Execute instruction to completion.
func (w *Worker) executeJob(job Job) {
	kind := w.Kind()
	log.Info("worker instructed to execute a task", "worker", kind)

	w.setState(types.Executing)
	w.notify(Notification{Kind: JobStarted, Role: kind})

	job()

	w.setState(types.Idle)
	w.notify(Notification{Kind: JobCompleted, Role: kind})

	log.Info("worker finished the required job and is now idle", "worker", kind)
}

// specialize runs a Specialize instruction. Only a worker currently in
// its Generic kind may be specialized; a worker already running a
// dedicated role logs an error and drops the job instead of nesting
// specializations.
func (w *Worker) specialize(role types.WorkerKind, job Job) {
	w.mu.Lock()
	current := w.kind
	if !current.IsGeneric() {
		w.mu.Unlock()
		log.Error("failed to specialize: only a generic worker can be specialized", "worker", current)
		return
	}

	homeID := current.ID()
	w.kind = role
	w.state = types.Executing
	w.mu.Unlock()

	log.Info("worker instructed to specialize", "worker", current, "role", role)
	w.notify(Notification{Kind: SpecializedJobStarted, Role: role})

	job()

	// Notify BEFORE reverting the kind: the pool's admission set is
	// released by this notification, keyed on Role.
	w.notify(Notification{Kind: SpecializedJobCompleted, Role: role})

	w.mu.Lock()
	w.kind = types.GenericKind(homeID)
	w.state = types.Idle
	w.mu.Unlock()

	log.Info("worker finished the specialized job, reverted to generic and is now idle", "worker", w.Kind())
}

// notify reports a notification to the pool. The notification queue is
// unbounded and never closed while workers are running (the pool only
// closes it after every worker has joined via TerminateAll), so this call
// always succeeds until teardown.
func (w *Worker) notify(n Notification) {
	w.notifications.Push(n)
}
