// ============================================================================
// UnnamedEngine Error Definitions
// Purpose: Define all engine/pool/worker error types
// ============================================================================

package types

import (
	"errors"
	"fmt"
)

// Predefined sentinel errors.
var (
	// ErrInstructionSendFail indicates the instruction channel is broken
	// (the pool has been torn down).
	ErrInstructionSendFail = errors.New("failed to send instruction")

	// ErrCannotSpecializeIntoGeneric indicates a caller tried to
	// Specialize a worker into a Generic kind, which is never allowed —
	// Generic is a worker's home identity, not a dedicated role.
	ErrCannotSpecializeIntoGeneric = errors.New("cannot specialize generic worker into another generic worker")

	// ErrCannotShrinkToZeroOrLess is reserved for a future shrink
	// operation; no shrink operation exists yet.
	ErrCannotShrinkToZeroOrLess = errors.New("cannot shrink number of workers to zero or less")

	// ErrThreadAlreadyJoined is kept for API parity. Worker.Join does not
	// return it: Join returns nothing, and a second Join returns at once.
	ErrThreadAlreadyJoined = errors.New("thread already joined")
)

// InvalidStateError indicates an Engine lifecycle operation was attempted
// from a state that does not permit it.
type InvalidStateError struct {
	Expected EngineState
	Actual   EngineState
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: expected %s got %s", e.Expected, e.Actual)
}

// SpecializationAlreadyExistsError indicates the pool already has a
// dedicated worker claiming this kind.
type SpecializationAlreadyExistsError struct {
	Kind WorkerKind
}

// Error implements the error interface.
func (e *SpecializationAlreadyExistsError) Error() string {
	return fmt.Sprintf("specialized worker already exists for '%s'", e.Kind)
}

// ThreadJoinFailureError is kept for API parity. No function in this
// module returns it; a panic inside a job is not recovered.
type ThreadJoinFailureError struct {
	Message string
}

// Error implements the error interface.
func (e *ThreadJoinFailureError) Error() string {
	return fmt.Sprintf("failed to join worker thread: %s", e.Message)
}
