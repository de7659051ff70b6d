// ============================================================================
// UnnamedEngine Event Vocabulary
// ============================================================================
//
// Package: internal/event
// File: event.go
// Purpose: Defines the tagged Event vocabulary dispatched through the bus
//          and drained by the engine.
//
// Naming convention (carried over from the original engine design):
//   - past-sentence names refer to events that already occurred
//     (e.g. EngineEvent's Started/Stopped).
//   - other events are yet to occur and reacting to them can influence the
//     outcome (e.g. KeyboardEvent's Pressed/Released).
//
// Events carry only value-typed data — no references, no owned resources —
// so every concrete Event is freely copyable across goroutines.
//
// ============================================================================

package event

import "fmt"

// Event is the sealed vocabulary of values that flow through the bus. The
// unexported isEvent method closes the set to the four variants declared
// in this file.
type Event interface {
	isEvent()
	// String returns a short human-readable description, used for logging.
	String() string
}

// EngineEventKind discriminates EngineEvent's variants.
type EngineEventKind int

const (
	// EngineStarted is published once the engine has finished starting.
	EngineStarted EngineEventKind = iota
	// EngineShutdown is published when the engine begins a graceful
	// shutdown.
	EngineShutdown
	// EngineStopped is published once the engine has finished stopping.
	EngineStopped
)

func (k EngineEventKind) String() string {
	switch k {
	case EngineStarted:
		return "Started"
	case EngineShutdown:
		return "Shutdown"
	case EngineStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// EngineEvent is produced by the engine itself to announce lifecycle
// transitions.
type EngineEvent struct {
	Kind EngineEventKind
}

func (EngineEvent) isEvent() {}

// String implements Event.
func (e EngineEvent) String() string {
	return "Engine(" + e.Kind.String() + ")"
}

// WindowEvent carries opaque window lifecycle signals (close requests,
// resize, focus, etc). The window system itself is an external
// collaborator out of this module's scope; only the signal name is kept.
type WindowEvent struct {
	Signal string
}

func (WindowEvent) isEvent() {}

// String implements Event.
func (e WindowEvent) String() string {
	return "Window(" + e.Signal + ")"
}

// KeyAction discriminates KeyboardEvent's variants.
type KeyAction int

const (
	// KeyPressed means the attached key was pressed.
	KeyPressed KeyAction = iota
	// KeyReleased means the attached key was released.
	KeyReleased
)

func (a KeyAction) String() string {
	if a == KeyPressed {
		return "Pressed"
	}
	return "Released"
}

// KeyboardEvent is produced by the keyboard.
type KeyboardEvent struct {
	Action KeyAction
	Key    string
}

func (KeyboardEvent) isEvent() {}

// String implements Event.
func (e KeyboardEvent) String() string {
	return "Keyboard(" + e.Action.String() + "(" + e.Key + "))"
}

// MouseAction discriminates MouseEvent's variants.
type MouseAction int

const (
	// MousePressed means the attached button was pressed.
	MousePressed MouseAction = iota
	// MouseReleased means the attached button was released.
	MouseReleased
	// MouseMoved means the pointer moved to (X, Y).
	MouseMoved
)

func (a MouseAction) String() string {
	switch a {
	case MousePressed:
		return "Pressed"
	case MouseReleased:
		return "Released"
	case MouseMoved:
		return "Moved"
	default:
		return "Unknown"
	}
}

// MouseEvent is produced by the pointer.
type MouseEvent struct {
	Action MouseAction
	Button string // meaningful for Pressed/Released, empty for Moved
	X, Y   uint32 // meaningful for Moved
}

func (MouseEvent) isEvent() {}

// String implements Event.
func (e MouseEvent) String() string {
	switch e.Action {
	case MouseMoved:
		return fmt.Sprintf("Mouse(Moved(%d, %d))", e.X, e.Y)
	default:
		return "Mouse(" + e.Action.String() + "(" + e.Button + "))"
	}
}
