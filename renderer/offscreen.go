package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// offscreenImageCount mirrors a double-buffered Fifo swapchain.
const offscreenImageCount = 2

// copyPitchAlignment is the required BytesPerRow alignment for texture copies.
const copyPitchAlignment = 256

type offscreenImage struct {
	tex  hal.Texture
	view hal.TextureView
}

// OffscreenSwapchain renders into device textures instead of a window
// surface. It backs headless runs and tests. The last presented image can be
// read back with Snapshot.
type OffscreenSwapchain struct {
	device     hal.Device
	config     SwapchainConfig
	images     []offscreenImage
	next       int
	current    int
	presented  int
	acquired   bool
	configured bool
	presents   uint64
}

// NewOffscreenSwapchain returns an unconfigured offscreen swapchain.
func NewOffscreenSwapchain() *OffscreenSwapchain {
	return &OffscreenSwapchain{presented: -1}
}

// Configure recreates the images for cfg. CopySrc is added to the usage so
// frames can be read back.
func (s *OffscreenSwapchain) Configure(device hal.Device, cfg SwapchainConfig) error {
	s.Unconfigure(device)
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("renderer: configure offscreen swapchain with size %dx%d", cfg.Width, cfg.Height)
	}

	size := hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1}
	for i := 0; i < offscreenImageCount; i++ {
		tex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         fmt.Sprintf("polydemo_offscreen_%d", i),
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        cfg.Format,
			Usage:         cfg.Usage | gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			s.Unconfigure(device)
			return fmt.Errorf("renderer: create offscreen texture: %w", err)
		}
		view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label: fmt.Sprintf("polydemo_offscreen_%d_view", i),
		})
		if err != nil {
			device.DestroyTexture(tex)
			s.Unconfigure(device)
			return fmt.Errorf("renderer: create offscreen view: %w", err)
		}
		s.images = append(s.images, offscreenImage{tex: tex, view: view})
	}

	s.device = device
	s.config = cfg
	s.configured = true
	return nil
}

// Unconfigure destroys the images. Safe to call when not configured.
func (s *OffscreenSwapchain) Unconfigure(device hal.Device) {
	for i := range s.images {
		if s.images[i].view != nil {
			device.DestroyTextureView(s.images[i].view)
		}
		if s.images[i].tex != nil {
			device.DestroyTexture(s.images[i].tex)
		}
	}
	s.images = nil
	s.next = 0
	s.current = 0
	s.presented = -1
	s.acquired = false
	s.configured = false
}

// Acquire returns the next image in the ring. If the previous frame was
// never presented its image is handed out again.
func (s *OffscreenSwapchain) Acquire() (*Frame, error) {
	if !s.configured {
		return nil, ErrSwapchainUnconfigured
	}
	if !s.acquired {
		s.current = s.next
		s.next = (s.next + 1) % len(s.images)
		s.acquired = true
	}
	return &Frame{
		View:   s.images[s.current].view,
		Width:  s.config.Width,
		Height: s.config.Height,
		index:  s.current,
	}, nil
}

// Present marks frame as the latest displayed image.
func (s *OffscreenSwapchain) Present(frame *Frame) error {
	if !s.configured {
		return ErrSwapchainUnconfigured
	}
	if frame == nil || !s.acquired {
		return fmt.Errorf("renderer: present without acquire")
	}
	s.acquired = false
	s.presented = frame.index
	s.presents++
	return nil
}

// Config returns the current configuration.
func (s *OffscreenSwapchain) Config() SwapchainConfig { return s.config }

// Configured reports whether images exist.
func (s *OffscreenSwapchain) Configured() bool { return s.configured }

// Presents returns the number of presented frames since creation.
func (s *OffscreenSwapchain) Presents() uint64 { return s.presents }

// Snapshot copies the last presented image back to the CPU as RGBA.
func (s *OffscreenSwapchain) Snapshot(queue hal.Queue) (*image.RGBA, error) {
	if !s.configured {
		return nil, ErrSwapchainUnconfigured
	}
	if s.presented < 0 {
		return nil, fmt.Errorf("renderer: snapshot before first present")
	}
	device := s.device
	tex := s.images[s.presented].tex
	w, h := s.config.Width, s.config.Height

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "polydemo_snapshot_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("polydemo_snapshot"); err != nil {
		return nil, fmt.Errorf("renderer: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "polydemo_snapshot_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("renderer: create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("renderer: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if err := submitAndWait(device, queue, cmdBuf, 5*time.Second); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("renderer: readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := 0; row < int(h); row++ {
		src := readback[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		bgraToRGBA(dst, src)
	}
	return img, nil
}

// bgraToRGBA swaps the red and blue channels of one row.
func bgraToRGBA(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

// ScaleImage resamples src to width x height with Catmull-Rom filtering.
// A non-positive dimension returns src unchanged.
func ScaleImage(src *image.RGBA, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 || src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// submitAndWait submits one command buffer and blocks on a fresh fence.
func submitAndWait(device hal.Device, queue hal.Queue, cmdBuf hal.CommandBuffer, timeout time.Duration) error {
	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("renderer: create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("renderer: submit: %w", err)
	}
	ok, err := device.Wait(fence, 1, timeout)
	if err != nil {
		return fmt.Errorf("renderer: wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("renderer: wait for GPU: timed out after %v", timeout)
	}
	return nil
}
