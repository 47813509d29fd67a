// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

// ID identifies a window. Hosts assign one per window they create and stamp
// it on every event so the Dispatcher can compare it against the window it owns.
type ID uint64

// Kind is the type of a window event.
type Kind int

const (
	// CloseRequested is sent when the user asks to close the window.
	CloseRequested Kind = iota

	// Resized carries the new inner size of the window.
	Resized

	// ScaleFactorChanged carries the new inner size after a DPI change.
	ScaleFactorChanged

	// KeyboardInput carries a key press or release.
	KeyboardInput

	// RedrawRequested asks for one update and render.
	RedrawRequested

	// MainEventsCleared is sent once all pending input has been delivered.
	MainEventsCleared
)

var kindNames = [...]string{
	CloseRequested:     "CloseRequested",
	Resized:            "Resized",
	ScaleFactorChanged: "ScaleFactorChanged",
	KeyboardInput:      "KeyboardInput",
	RedrawRequested:    "RedrawRequested",
	MainEventsCleared:  "MainEventsCleared",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Key is a virtual key code. Only the keys the demo reacts to are named.
type Key int

const (
	// KeyUnknown is any key without a name here.
	KeyUnknown Key = iota
	// KeyEscape terminates the demo.
	KeyEscape
	// KeySpace is reserved for interactive features.
	KeySpace
)

// Event is a single event delivered by the host.
type Event struct {
	// Window is the window the event belongs to.
	Window ID

	// Kind is the event type.
	Kind Kind

	// Size is set for Resized and ScaleFactorChanged.
	Size Size

	// Key and Pressed are set for KeyboardInput.
	Key     Key
	Pressed bool
}

// IsWindowEvent reports whether the event is a per-window event that a
// Handler may consume through Input. Redraw and loop events are not.
func (e Event) IsWindowEvent() bool {
	switch e.Kind {
	case CloseRequested, Resized, ScaleFactorChanged, KeyboardInput:
		return true
	default:
		return false
	}
}
