// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/polydemo/renderer"
	"github.com/gogpu/polydemo/window"
)

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) Input(ev window.Event) bool {
	h.calls = append(h.calls, "input:"+ev.Kind.String())
	return false
}

func (h *recordingHandler) Resize(size window.Size) {
	h.calls = append(h.calls, "resize:"+size.String())
}

func (h *recordingHandler) Update() { h.calls = append(h.calls, "update") }

func (h *recordingHandler) Render() error {
	h.calls = append(h.calls, "render")
	return nil
}

func newTestDriver() (*driver, *recordingHandler, *int, *int) {
	h := &recordingHandler{}
	redraws, quits := 0, 0
	d := newDriver(h, renderer.NewSurfaceSwapchain(),
		func() { redraws++ },
		func() { quits++ })
	return d, h, &redraws, &quits
}

func TestFrameEvents(t *testing.T) {
	same := window.Size{Width: 800, Height: 600}
	events := frameEvents(same, same)
	if len(events) != 2 || events[0].Kind != window.RedrawRequested || events[1].Kind != window.MainEventsCleared {
		t.Errorf("unchanged size events = %+v", events)
	}

	events = frameEvents(same, window.Size{Width: 1024, Height: 768})
	if len(events) != 3 || events[0].Kind != window.Resized {
		t.Fatalf("resized events = %+v", events)
	}
	if events[0].Size != (window.Size{Width: 1024, Height: 768}) {
		t.Errorf("resize size = %v", events[0].Size)
	}
	for _, ev := range events {
		if ev.Window != mainWindow {
			t.Errorf("event %v for window %d", ev.Kind, ev.Window)
		}
	}
}

func TestDriverDraw(t *testing.T) {
	d, h, redraws, _ := newTestDriver()

	d.draw(window.Size{Width: 800, Height: 600}, nil, 800, 600)
	d.draw(window.Size{Width: 800, Height: 600}, nil, 800, 600)

	got := strings.Join(h.calls, ",")
	want := "input:Resized,resize:800x600,update,render,update,render"
	if got != want {
		t.Errorf("calls = %s\nwant   %s", got, want)
	}
	if *redraws != 2 {
		t.Errorf("redraws = %d, want 2", *redraws)
	}
}

func TestDriverEscapeQuits(t *testing.T) {
	d, h, _, quits := newTestDriver()

	d.key(gpucontext.KeySpace)
	if d.exited() || *quits != 0 {
		t.Fatal("space should not exit")
	}
	d.key(gpucontext.KeyEscape)
	if !d.exited() || *quits != 1 {
		t.Fatalf("escape: exited=%v quits=%d", d.exited(), *quits)
	}

	// Nothing reaches the handler after exit.
	n := len(h.calls)
	d.draw(window.Size{Width: 10, Height: 10}, nil, 10, 10)
	d.key(gpucontext.KeyEscape)
	if len(h.calls) != n || *quits != 1 {
		t.Errorf("events after exit: calls=%v quits=%d", h.calls[n:], *quits)
	}
}

func TestDriverCloseDoesNotQuit(t *testing.T) {
	d, _, _, quits := newTestDriver()
	d.close()
	if !d.exited() {
		t.Error("close should exit the dispatcher")
	}
	if *quits != 0 {
		t.Errorf("quits = %d, want 0", *quits)
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   gpucontext.Key
		want window.Key
	}{
		{gpucontext.KeyEscape, window.KeyEscape},
		{gpucontext.KeySpace, window.KeySpace},
	}
	for _, tt := range tests {
		if got := translateKey(tt.in); got != tt.want {
			t.Errorf("translateKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
