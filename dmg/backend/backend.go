// Package backend defines the platform abstraction emulator frontends
// implement: rendering the framebuffer and collecting input events.
package backend

import "github.com/mpalmer/dmgo/dmg/video"

// Action is a logical input, independent of which physical key produced it.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionA
	ActionB
	ActionSelect
	ActionStart
	ActionQuit
)

// EventType distinguishes a key going down from a key going up.
type EventType int

const (
	EventPress EventType = iota
	EventRelease
)

// InputEvent is a single logical input transition reported by a backend.
type InputEvent struct {
	Action Action
	Type   EventType
}

// Config configures a backend at Init time.
type Config struct {
	Title string
	Scale int
}

// Backend is a complete rendering + input platform: a terminal, an SDL2
// window, or any other presentation surface.
type Backend interface {
	// Init prepares the backend for Update calls.
	Init(config Config) error

	// Update polls for input and renders frame, returning the input
	// events collected since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup releases any platform resources.
	Cleanup() error
}
