// ============================================================================
// UnnamedEngine Worker Pool - Concurrent Instruction Executor
// ============================================================================
//
// Package: internal/worker
// File: pool.go
// Function: Manages the lifecycle and instruction distribution of multiple
//           Worker goroutines, including on-demand role specialization.
//
// Design Pattern:
//   Fixed-then-growable set of Worker goroutines pulling from one shared
//   instruction queue (multi-producer/multi-consumer by construction: any
//   goroutine holding a reference to the pool may call Send, and any idle
//   worker may pick up any instruction).
//
// Architecture:
//   ┌─────────────┐
//   │   caller    │ --Send(instruction)--> instructionQueue
//   └─────────────┘
//                              ↑
//                    ┌─────────┴─────────┐
//                    │ Worker 1 Worker 2 │ -- notificationQueue --> processNotifications (head of next Send)
//                    └───────────────────┘
//
// Queues:
//   instructionQueue and notificationQueue are the unbounded, mutex-guarded
//   queue type in queue.go (modeled on internal/event/bus.go's bus), not
//   buffered channels: Send and notify never fail on a "queue full"
//   condition, matching the original design's unbounded std::sync::mpsc
//   channel. ErrInstructionSendFail is reserved for the queue having been
//   closed by TerminateAll — ordinary backpressure never produces it.
//
// Specialization admission:
//   Send(Specialize(role, job)) is rejected with
//   CannotSpecializeIntoGeneric if role is Generic, and with
//   SpecializationAlreadyExistsError if role is already claimed. The
//   dedicated-tag set is released lazily: the pool drains pending
//   notifications at the head of every Send call and removes role from the
//   set upon observing SpecializedJobCompleted(role).
//
// REDESIGN: worker ids come from a monotonic atomic counter, not from
// len(workers), so a future shrink operation cannot produce colliding
// Generic(id) values (see spec.md section 9).
//
// ============================================================================

package worker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ZotyDev/UnnamedEngine-Code/internal/metrics"
	"github.com/ZotyDev/UnnamedEngine-Code/pkg/types"
)

// Pool owns a set of Worker goroutines and distributes instructions over a
// shared queue.
type Pool struct {
	mu        sync.Mutex
	workers   []*Worker
	dedicated map[types.WorkerKind]struct{}

	instructionQueue  *queue[Instruction]
	notificationQueue *queue[Notification]

	nextWorkerID atomic.Uint64

	collector *metrics.Collector
}

// SetCollector installs a metrics collector that observes notifications
// drained from workers. Passing nil disables metrics recording. Safe to
// call concurrently with Send.
func (p *Pool) SetCollector(c *metrics.Collector) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.collector = c
}

// NewPool creates a pool with size workers, each initially Generic(0..size).
// If size is below types.DedicatedKindCount, a warning is logged (but the
// pool is still created) — the pool will simply be unable to admit every
// dedicated specialization concurrently, since each specialization ties up
// one generic worker for its duration.
func NewPool(size int) *Pool {
	if size < types.DedicatedKindCount {
		log.Warn("worker pool smaller than the number of dedicated kinds",
			"size", size, "dedicated_kinds", types.DedicatedKindCount)
	}

	p := &Pool{
		dedicated:         make(map[types.WorkerKind]struct{}),
		instructionQueue:  newQueue[Instruction](),
		notificationQueue: newQueue[Notification](),
	}

	p.workers = make([]*Worker, 0, size)
	for i := 0; i < size; i++ {
		p.workers = append(p.workers, p.spawnWorker())
	}

	log.Info("initialized worker pool", "workers", len(p.workers))

	return p
}

// DefaultPool creates a pool sized to reported hardware parallelism minus
// one, reserving the caller's own thread. If the reported parallelism is
// 1 (or querying it somehow yields less), the pool still has at least one
// worker.
func DefaultPool() *Pool {
	available := runtime.NumCPU()
	size := available - 1
	if size < 1 {
		size = 1
	}
	return NewPool(size)
}

// spawnWorker builds one worker with the next monotonic id. Caller must
// hold mu if mutating p.workers concurrently with other pool operations;
// this method itself only touches the atomic counter and channels.
func (p *Pool) spawnWorker() *Worker {
	id := p.nextWorkerID.Add(1) - 1
	return newWorker(id, p.instructionQueue, p.notificationQueue)
}

// Grow spawns n more generic workers, with ids continuing from the
// monotonic counter. Returns the pool's new length.
func (p *Pool) Grow(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < n; i++ {
		p.workers = append(p.workers, p.spawnWorker())
	}

	return len(p.workers)
}

// Len returns the number of workers in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// IsEmpty reports whether the pool has no workers.
func (p *Pool) IsEmpty() bool {
	return p.Len() == 0
}

// Send enqueues instruction for pickup by the first idle worker. Before
// admission checks, Send drains any pending worker notifications so a
// just-completed specialization's tag is released before a new admission
// decision is made.
func (p *Pool) Send(instruction Instruction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processNotifications()

	if instruction.Kind == Specialize {
		if instruction.Role.IsGeneric() {
			return types.ErrCannotSpecializeIntoGeneric
		}
		if _, exists := p.dedicated[instruction.Role]; exists {
			return &types.SpecializationAlreadyExistsError{Kind: instruction.Role}
		}
		p.dedicated[instruction.Role] = struct{}{}
	}

	if !p.instructionQueue.Push(instruction) {
		return types.ErrInstructionSendFail
	}
	return nil
}

// processNotifications drains every currently-pending notification. Each
// one is recorded on the installed collector, if any; only
// SpecializedJobCompleted notifications change pool state: they release
// the matching dedicated-tag reservation.
func (p *Pool) processNotifications() {
	for {
		n, ok := p.notificationQueue.TryPop()
		if !ok {
			return
		}

		switch n.Kind {
		case JobStarted:
			if p.collector != nil {
				p.collector.RecordJobStarted()
			}
		case JobCompleted:
			if p.collector != nil {
				p.collector.RecordJobCompleted()
			}
		case SpecializedJobStarted:
			if p.collector != nil {
				p.collector.RecordSpecializedJobStarted()
			}
		case SpecializedJobCompleted:
			delete(p.dedicated, n.Role)
			log.Info("specialized worker completed its job", "role", n.Role)
			if p.collector != nil {
				p.collector.RecordSpecializedJobCompleted()
			}
		}
	}
}

// TerminateAll sends a Terminate instruction to every worker, waits for
// every worker's goroutine to join, then closes the instruction and
// notification queues. A Pool is not reusable after TerminateAll: any
// later Send returns types.ErrInstructionSendFail.
func (p *Pool) TerminateAll() {
	p.mu.Lock()
	workers := p.workers
	n := len(workers)
	p.mu.Unlock()

	for i := 0; i < n; i++ {
		_ = p.Send(TerminateInstruction())
	}

	for _, w := range workers {
		w.Join()
	}

	p.instructionQueue.Close()
	p.notificationQueue.Close()
}
