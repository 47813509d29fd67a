// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/polydemo/renderer"
	"github.com/gogpu/polydemo/window"
	"github.com/gogpu/wgpu/hal"
)

// mainWindow is the only window the host opens.
const mainWindow window.ID = 1

// driver turns gogpu callbacks into dispatcher events.
type driver struct {
	dispatcher *window.Dispatcher
	swapchain  *renderer.SurfaceSwapchain
	size       window.Size
	quit       func()
}

func newDriver(h window.Handler, sc *renderer.SurfaceSwapchain, requestRedraw, quit func()) *driver {
	return &driver{
		dispatcher: window.NewDispatcher(mainWindow, h, requestRedraw),
		swapchain:  sc,
		quit:       quit,
	}
}

// frameEvents returns the events one draw callback produces.
func frameEvents(prev, cur window.Size) []window.Event {
	events := make([]window.Event, 0, 3)
	if cur != prev {
		events = append(events, window.Event{Window: mainWindow, Kind: window.Resized, Size: cur})
	}
	return append(events,
		window.Event{Window: mainWindow, Kind: window.RedrawRequested},
		window.Event{Window: mainWindow, Kind: window.MainEventsCleared},
	)
}

// translateKey maps the keys the demo reacts to.
func translateKey(key gpucontext.Key) window.Key {
	switch key {
	case gpucontext.KeyEscape:
		return window.KeyEscape
	case gpucontext.KeySpace:
		return window.KeySpace
	default:
		return window.KeyUnknown
	}
}

// draw hands the surface view to the swapchain and runs one frame.
func (d *driver) draw(size window.Size, view hal.TextureView, surfaceWidth, surfaceHeight uint32) {
	d.swapchain.SetFrame(view, surfaceWidth, surfaceHeight)
	for _, ev := range frameEvents(d.size, size) {
		if ev.Kind == window.Resized {
			d.size = size
		}
		if d.dispatch(ev) == window.Exit {
			return
		}
	}
}

func (d *driver) key(key gpucontext.Key) {
	d.dispatch(window.Event{
		Window:  mainWindow,
		Kind:    window.KeyboardInput,
		Key:     translateKey(key),
		Pressed: true,
	})
}

// close reports the window closing. The app is already shutting down.
func (d *driver) close() {
	d.quit = nil
	d.dispatch(window.Event{Window: mainWindow, Kind: window.CloseRequested})
}

func (d *driver) dispatch(ev window.Event) window.ControlFlow {
	flow := d.dispatcher.Dispatch(ev)
	if flow == window.Exit && d.quit != nil {
		quit := d.quit
		d.quit = nil
		quit()
	}
	return flow
}

func (d *driver) exited() bool { return d.dispatcher.Exited() }
