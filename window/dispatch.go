// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import "github.com/gogpu/polydemo"

// Handler reacts to the events routed by a Dispatcher.
// The renderer implements Handler.
type Handler interface {
	// Input offers a window event to the handler. It returns true if the
	// event was consumed and must not be processed further.
	Input(ev Event) bool

	// Resize is called with the new inner size.
	Resize(size Size)

	// Update advances per-frame state.
	Update()

	// Render draws one frame.
	Render() error
}

// ControlFlow tells the host whether to keep its event loop running.
type ControlFlow int

const (
	// Continue keeps the loop running.
	Continue ControlFlow = iota
	// Exit terminates the loop.
	Exit
)

// String returns the control flow name.
func (c ControlFlow) String() string {
	if c == Exit {
		return "Exit"
	}
	return "Continue"
}

// Dispatcher routes events for one owned window to a Handler.
//
// Dispatcher is NOT safe for concurrent use. Hosts call it from the thread
// that runs the event loop.
type Dispatcher struct {
	window        ID
	handler       Handler
	requestRedraw func()
	exited        bool
}

// NewDispatcher creates a Dispatcher for the window id. requestRedraw is
// called on MainEventsCleared so the host schedules the next
// RedrawRequested; it may be nil.
func NewDispatcher(id ID, h Handler, requestRedraw func()) *Dispatcher {
	return &Dispatcher{
		window:        id,
		handler:       h,
		requestRedraw: requestRedraw,
	}
}

// Window returns the ID of the owned window.
func (d *Dispatcher) Window() ID {
	return d.window
}

// Exited reports whether Dispatch has returned Exit.
func (d *Dispatcher) Exited() bool {
	return d.exited
}

// Dispatch processes one event and returns the resulting control flow.
// Once Exit has been returned every later event is ignored.
func (d *Dispatcher) Dispatch(ev Event) ControlFlow {
	if d.exited {
		return Exit
	}
	if ev.Window != d.window {
		return Continue
	}

	if ev.IsWindowEvent() && d.handler.Input(ev) {
		return Continue
	}

	switch ev.Kind {
	case CloseRequested:
		d.exited = true
	case KeyboardInput:
		if ev.Pressed && ev.Key == KeyEscape {
			d.exited = true
		}
	case Resized, ScaleFactorChanged:
		d.handler.Resize(ev.Size)
	case RedrawRequested:
		d.handler.Update()
		if err := d.handler.Render(); err != nil {
			polydemo.Logger().Warn("window: render failed", "window", d.window, "err", err)
		}
	case MainEventsCleared:
		if d.requestRedraw != nil {
			d.requestRedraw()
		}
	}

	if d.exited {
		polydemo.Logger().Info("window: exit requested", "window", d.window, "event", ev.Kind.String())
		return Exit
	}
	return Continue
}
