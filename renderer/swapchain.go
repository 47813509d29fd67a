package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo/window"
	"github.com/gogpu/wgpu/hal"
)

// PresentMode selects how frames are queued for display.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota
	// PresentModeMailbox replaces the queued frame.
	PresentModeMailbox
	// PresentModeImmediate presents without waiting.
	PresentModeImmediate
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "Fifo"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeImmediate:
		return "Immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", int(m))
	}
}

// SwapchainConfig describes the presentable images.
type SwapchainConfig struct {
	Usage       gputypes.TextureUsage
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// NewSwapchainConfig returns the fixed swapchain configuration for size.
func NewSwapchainConfig(size window.Size) SwapchainConfig {
	return SwapchainConfig{
		Usage:       gputypes.TextureUsageRenderAttachment,
		Format:      SwapchainFormat,
		Width:       size.Width,
		Height:      size.Height,
		PresentMode: PresentModeFifo,
	}
}

// Size returns the configured pixel size.
func (c SwapchainConfig) Size() window.Size {
	return window.Size{Width: c.Width, Height: c.Height}
}

// Frame is one acquired presentable image.
type Frame struct {
	View   hal.TextureView
	Width  uint32
	Height uint32

	index int
}

// Swapchain hands out presentable images.
//
// Configure destroys any previous images and creates new ones for cfg.
// Acquire fails with ErrSwapchainUnconfigured, ErrSurfaceOutdated or
// ErrSurfaceLost when no frame can be rendered this time round.
type Swapchain interface {
	Configure(device hal.Device, cfg SwapchainConfig) error
	Unconfigure(device hal.Device)
	Acquire() (*Frame, error)
	Present(frame *Frame) error
}
