// ============================================================================
// UnnamedEngine Worker Instruction & Notification Vocabulary
// ============================================================================
//
// Package: internal/worker
// File: instruction.go
// Purpose: Defines the instructions a Worker can receive and the
//          notifications it reports back to the Pool.
//
// ============================================================================

package worker

import "github.com/ZotyDev/UnnamedEngine-Code/pkg/types"

// Job is an owned, move-once callable invoked exactly once on a worker
// goroutine.
type Job func()

// InstructionKind discriminates Instruction's variants.
type InstructionKind int

const (
	// Wait is reserved and never emitted by the engine; a worker that
	// receives it logs a warning and breaks its loop (spec.md section
	// 9's "dead code path" note).
	Wait InstructionKind = iota
	// Execute runs Job on the first available worker.
	Execute
	// Terminate breaks the worker's main loop once the worker picks it
	// up; a job already running is not interrupted.
	Terminate
	// Specialize temporarily converts a generic worker into Kind for
	// the duration of Job.
	Specialize
)

// Instruction is sent to the pool's shared queue for pickup by whichever
// worker receives it first.
type Instruction struct {
	Kind InstructionKind
	Role types.WorkerKind // meaningful only for Specialize
	Job  Job               // meaningful for Execute and Specialize
}

// WaitInstruction builds a reserved Wait instruction. Not normally emitted.
func WaitInstruction() Instruction {
	return Instruction{Kind: Wait}
}

// ExecuteInstruction builds an instruction to run job on any idle worker.
func ExecuteInstruction(job Job) Instruction {
	return Instruction{Kind: Execute, Job: job}
}

// TerminateInstruction builds an instruction that ends a worker's loop.
func TerminateInstruction() Instruction {
	return Instruction{Kind: Terminate}
}

// SpecializeInstruction builds an instruction that temporarily converts
// whichever generic worker picks it up into role for the duration of job.
func SpecializeInstruction(role types.WorkerKind, job Job) Instruction {
	return Instruction{Kind: Specialize, Role: role, Job: job}
}

// NotificationKind discriminates Notification's variants.
type NotificationKind int

const (
	// JobStarted is emitted right before a plain Execute job body runs.
	JobStarted NotificationKind = iota
	// JobCompleted is emitted right after a plain Execute job body
	// returns.
	JobCompleted
	// SpecializedJobStarted is emitted right after a worker adopts its
	// dedicated kind and before the job body runs.
	SpecializedJobStarted
	// SpecializedJobCompleted is emitted right after the job body
	// returns and strictly before the worker reverts to its Generic
	// kind — the pool relies on this ordering to release the
	// dedicated-tag reservation.
	SpecializedJobCompleted
)

// Notification is reported by a worker to the pool's notification
// channel.
type Notification struct {
	Kind NotificationKind
	Role types.WorkerKind
}
