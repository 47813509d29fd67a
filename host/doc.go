// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host runs a renderer.Renderer inside a gogpu window.
//
// gogpu owns the OS window, the surface and presentation. Each draw
// callback is translated into window events (Resized when the size changed,
// then RedrawRequested and MainEventsCleared) and fed through a
// window.Dispatcher; key presses become KeyboardInput events and closing the
// window becomes CloseRequested.
package host
