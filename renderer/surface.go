package renderer

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// SurfaceSwapchain presents into a window surface owned by the host.
// The host acquires the surface texture itself and hands its view over
// with SetFrame before each Render; presentation happens after the host's
// draw callback returns.
type SurfaceSwapchain struct {
	config     SwapchainConfig
	configured bool

	view          hal.TextureView
	width, height uint32
	acquired      bool
}

// NewSurfaceSwapchain returns an unconfigured surface swapchain.
func NewSurfaceSwapchain() *SurfaceSwapchain {
	return &SurfaceSwapchain{}
}

// SetFrame provides the surface view for the next Acquire. A nil view
// means the host has no image this frame.
func (s *SurfaceSwapchain) SetFrame(view hal.TextureView, width, height uint32) {
	s.view = view
	s.width = width
	s.height = height
}

// Configure records cfg. The host reconfigures the surface on resize.
func (s *SurfaceSwapchain) Configure(_ hal.Device, cfg SwapchainConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("renderer: configure surface swapchain with size %dx%d", cfg.Width, cfg.Height)
	}
	s.config = cfg
	s.configured = true
	s.acquired = false
	return nil
}

// Unconfigure forgets the configuration and any pending view.
func (s *SurfaceSwapchain) Unconfigure(_ hal.Device) {
	s.configured = false
	s.acquired = false
	s.view = nil
}

// Acquire returns the view set by SetFrame. Each view is handed out once.
func (s *SurfaceSwapchain) Acquire() (*Frame, error) {
	if !s.configured {
		return nil, ErrSwapchainUnconfigured
	}
	if s.view == nil {
		return nil, ErrSurfaceLost
	}
	if s.width != s.config.Width || s.height != s.config.Height {
		return nil, fmt.Errorf("%w: surface %dx%d, swapchain %dx%d",
			ErrSurfaceOutdated, s.width, s.height, s.config.Width, s.config.Height)
	}
	frame := &Frame{View: s.view, Width: s.width, Height: s.height}
	s.view = nil
	s.acquired = true
	return frame, nil
}

// Present releases the frame. The host presents the surface.
func (s *SurfaceSwapchain) Present(frame *Frame) error {
	if !s.acquired || frame == nil {
		return fmt.Errorf("renderer: present without acquire")
	}
	s.acquired = false
	return nil
}
