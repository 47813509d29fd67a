// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"context"
	"fmt"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/polydemo"
	"github.com/gogpu/polydemo/renderer"
	"github.com/gogpu/polydemo/window"
	"github.com/gogpu/wgpu/hal"
)

type host struct {
	cfg     polydemo.Config
	variant renderer.Variant
	app     *gogpu.App

	renderer  *renderer.Renderer
	driver    *driver
	animToken *gogpu.AnimationToken
	err       error
}

// Run opens a window and renders cfg's variant until the window is closed
// or Escape is pressed. Setup failures inside the event loop stop the app
// and are returned.
func Run(ctx context.Context, cfg polydemo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	variant, err := renderer.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}

	h := &host{cfg: cfg, variant: variant}
	h.app = gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(cfg.ContinuousRender))

	h.app.OnDraw(func(dc *gogpu.Context) {
		if h.driver == nil {
			if err := h.init(ctx, dc); err != nil {
				h.err = err
				polydemo.Logger().Error("host: setup failed", "err", err)
				h.app.Quit()
				return
			}
		}
		if h.driver.exited() {
			return
		}

		var sv any = dc.SurfaceView()
		view, _ := sv.(hal.TextureView)
		size := surfaceSize(dc)
		h.driver.draw(size, view, size.Width, size.Height)
	})

	h.app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if h.driver != nil {
			h.driver.key(key)
		}
	})

	h.app.OnClose(func() {
		if h.animToken != nil {
			h.animToken.Stop()
			h.animToken = nil
		}
		if h.driver != nil && !h.driver.exited() {
			h.driver.close()
		}
		// Release renderer resources while the shared device is alive.
		if h.renderer != nil {
			h.renderer.Destroy()
		}
	})

	if err := h.app.Run(); err != nil {
		return fmt.Errorf("host: run: %w", err)
	}
	return h.err
}

// init builds the renderer on the app's device the first time a frame is
// drawn, when the GPU context provider is available.
func (h *host) init(ctx context.Context, dc *gogpu.Context) error {
	provider := h.app.GPUContextProvider()
	if provider == nil {
		return fmt.Errorf("host: no GPU context provider")
	}
	gpu, err := renderer.SharedGPU(provider)
	if err != nil {
		return err
	}

	size := surfaceSize(dc)
	sc := renderer.NewSurfaceSwapchain()
	r, err := renderer.New(ctx, gpu, sc, size,
		renderer.WithVariant(h.variant),
		renderer.WithShaderDir(h.cfg.ShaderDir),
		renderer.WithTraceDir(h.cfg.TraceDir),
	)
	if err != nil {
		return err
	}
	h.renderer = r
	h.driver = newDriver(r, sc, h.requestRedraw, h.app.Quit)
	h.driver.size = size

	polydemo.Logger().Info("host: window ready",
		"backend", fmt.Sprint(dc.Backend()),
		"size", size.String(),
		"variant", h.variant.Name,
		"continuous", h.cfg.ContinuousRender)
	return nil
}

// requestRedraw keeps frames coming in event-driven mode.
func (h *host) requestRedraw() {
	if h.cfg.ContinuousRender || h.animToken != nil {
		return
	}
	h.animToken = h.app.StartAnimation()
}

// surfaceSize returns the surface size in pixels, falling back to the
// window size before the surface exists.
func surfaceSize(dc *gogpu.Context) window.Size {
	sw, sh := dc.SurfaceSize()
	if sw > 0 && sh > 0 {
		return window.Size{Width: uint32(sw), Height: uint32(sh)}
	}
	return window.NewSize(dc.Width(), dc.Height())
}
