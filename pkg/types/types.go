// ============================================================================
// UnnamedEngine Core Type Definitions
// ============================================================================
//
// Package: pkg/types
// Purpose: Core domain models shared across the engine, event bus and
//          worker pool
//
// Design Principles:
//   1. Closed vocabularies (engine/worker states) are int-backed named
//      types with a String() method, not raw strings.
//   2. WorkerKind carries an identity payload (the Generic slot id) so it
//      is modeled as a small comparable struct, usable directly as a map
//      key for the pool's dedicated-tag set.
//
// Core Types:
//   - EngineState: Stopped/Starting/Running/Stopping lifecycle
//   - WorkerKind: Generic(id) or a dedicated specialization tag
//   - WorkerState: Idle/Executing
//
// Usage:
//   - internal/engine: EngineState lifecycle
//   - internal/worker: WorkerKind/WorkerState for workers and the pool
//
// ============================================================================

// Package types defines core domain models shared across the engine.
package types

import "fmt"

// EngineState represents the lifecycle state of the Engine.
type EngineState int

// Engine lifecycle states. The only legal transitions are
// Stopped -> Starting -> Running -> Stopping -> Stopped.
const (
	Stopped EngineState = iota
	Starting
	Running
	Stopping
)

// String implements fmt.Stringer.
func (s EngineState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	default:
		return fmt.Sprintf("EngineState(%d)", int(s))
	}
}

// workerKindTag discriminates WorkerKind's payload-bearing variants.
type workerKindTag int

const (
	workerKindGeneric workerKindTag = iota
	workerKindNetworking
)

// WorkerKind identifies a worker's current role. A worker is either
// Generic(id) — its stable home identity — or a dedicated kind it has
// temporarily adopted while running a Specialize job. WorkerKind is a
// small comparable struct so two values can be compared with == and used
// as a map key.
type WorkerKind struct {
	tag workerKindTag
	id  uint64
}

// GenericKind builds the WorkerKind for a generic worker slot.
func GenericKind(id uint64) WorkerKind {
	return WorkerKind{tag: workerKindGeneric, id: id}
}

// NetworkingKind is the dedicated tag used for network-bound jobs (for
// example, the gRPC health-check job in internal/network).
var NetworkingKind = WorkerKind{tag: workerKindNetworking}

// DedicatedKindCount is the number of distinct dedicated (non-Generic)
// WorkerKind values the system currently defines. A pool sized below this
// count cannot admit every dedicated specialization at once, since each
// specialization ties up one generic worker for its duration. Bump this
// alongside adding a new dedicated kind constant.
const DedicatedKindCount = 1

// IsGeneric reports whether this kind is a Generic(id) slot.
func (k WorkerKind) IsGeneric() bool {
	return k.tag == workerKindGeneric
}

// ID returns the slot id for a Generic kind. Meaningless for dedicated
// kinds; callers should check IsGeneric first.
func (k WorkerKind) ID() uint64 {
	return k.id
}

// String implements fmt.Stringer.
func (k WorkerKind) String() string {
	switch k.tag {
	case workerKindGeneric:
		return fmt.Sprintf("Generic(%d)", k.id)
	case workerKindNetworking:
		return "Networking"
	default:
		return "Unknown"
	}
}

// WorkerState represents whether a worker is currently running a job.
type WorkerState int

const (
	// Idle means the worker is waiting for its next instruction.
	Idle WorkerState = iota
	// Executing means a job body is currently running on the worker.
	Executing
)

// String implements fmt.Stringer.
func (s WorkerState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Executing:
		return "Executing"
	default:
		return fmt.Sprintf("WorkerState(%d)", int(s))
	}
}
