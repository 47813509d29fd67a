package renderer

import (
	"context"
	"errors"
	"image"

	"github.com/gogpu/polydemo/window"
)

// ErrNotOffscreen is returned by Renderer.Snapshot for window renderers.
var ErrNotOffscreen = errors.New("renderer: snapshot needs an offscreen swapchain")

// NewHeadless acquires a GPU from factory and builds a Renderer over an
// offscreen swapchain of the given size.
func NewHeadless(ctx context.Context, factory InstanceFactory, size window.Size, opts ...Option) (*Renderer, error) {
	gpu, err := RequestGPU(ctx, factory, AdapterOptions{PowerPreference: PowerHigh})
	if err != nil {
		return nil, err
	}
	return New(ctx, gpu, NewOffscreenSwapchain(), size, opts...)
}

// Snapshot reads back the last presented frame of an offscreen renderer.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	sc, ok := r.swapchain.(*OffscreenSwapchain)
	if !ok {
		return nil, ErrNotOffscreen
	}
	return sc.Snapshot(r.gpu.Queue())
}
