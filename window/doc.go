// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window defines the contract between a window host and the
// renderer: physical sizes, window events and the Dispatcher that routes
// events for one owned window to a Handler.
//
// The host owns the OS event loop. It translates native callbacks into
// Event values and calls Dispatcher.Dispatch for each one; the returned
// ControlFlow tells it whether to keep running.
//
//	d := window.NewDispatcher(id, renderer, requestRedraw)
//	if d.Dispatch(ev) == window.Exit {
//	    app.Quit()
//	}
package window
