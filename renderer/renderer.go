package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo"
	"github.com/gogpu/polydemo/shader"
	"github.com/gogpu/polydemo/window"
	"github.com/gogpu/wgpu/hal"
)

// FrameStats counts what the renderer has done so far.
type FrameStats struct {
	// Submitted is the number of frames submitted and presented.
	Submitted uint64
	// Skipped is the number of frames dropped because no image was available.
	Skipped uint64
	// Configures is the number of successful swapchain configurations.
	Configures uint64

	LastVertexCount uint32
	LastIndexCount  uint32
	LastClear       gputypes.Color
}

// Renderer draws one variant into a Swapchain every frame.
//
// Renderer is not safe for concurrent use. It implements window.Handler.
type Renderer struct {
	gpu       *GPU
	swapchain Swapchain

	config     SwapchainConfig
	configured bool
	size       window.Size

	variant  Variant
	shader   hal.ShaderModule
	pipeline *Pipeline
	geometry *VertexIndexBuffer

	frameTimeout time.Duration
	stats        FrameStats
	trace        *tracer
	destroyed    bool
}

var _ window.Handler = (*Renderer)(nil)

// New builds the renderer: configures sc for size, compiles or loads the
// variant's shader, builds the pipeline and uploads the geometry.
//
// The renderer takes ownership of gpu and sc; Destroy releases both, and
// so does a failed New. A zero size is allowed and leaves the swapchain unconfigured until the
// first non-zero Resize.
func New(ctx context.Context, gpu *GPU, sc Swapchain, size window.Size, opts ...Option) (*Renderer, error) {
	if gpu == nil || gpu.Device() == nil || gpu.Queue() == nil {
		return nil, ErrNilDevice
	}
	if sc == nil {
		gpu.Destroy()
		return nil, ErrSwapchainUnconfigured
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		gpu.Destroy()
		return nil, err
	}

	r := &Renderer{
		gpu:          gpu,
		swapchain:    sc,
		config:       NewSwapchainConfig(size),
		size:         size,
		variant:      o.variant,
		frameTimeout: o.frameTimeout,
	}

	if o.traceDir != "" {
		t, err := openTrace(o.traceDir)
		if err != nil {
			gpu.Destroy()
			return nil, err
		}
		r.trace = t
	}

	if err := r.init(o.shaderDir); err != nil {
		r.Destroy()
		return nil, err
	}

	polydemo.Logger().Info("renderer: ready",
		"variant", r.variant.Name,
		"gpu", gpu.Info().String(),
		"size", size.String(),
		"format", r.config.Format,
		"present_mode", r.config.PresentMode.String())
	r.trace.record("new", "variant", r.variant.Name, "width", size.Width, "height", size.Height)
	return r, nil
}

func (r *Renderer) init(shaderDir string) error {
	device := r.gpu.Device()

	if !r.size.IsZero() {
		if err := r.swapchain.Configure(device, r.config); err != nil {
			return fmt.Errorf("renderer: configure swapchain: %w", err)
		}
		r.configured = true
		r.stats.Configures++
	}

	words, err := shader.Resolve(r.variant.Shader, shaderDir)
	if err != nil {
		return err
	}
	module, err := shader.CreateModule(device, "polydemo_"+r.variant.Shader.Name, words)
	if err != nil {
		return err
	}
	r.shader = module

	cfg := r.variant.Pipeline
	cfg.ColorFormat = r.config.Format
	pipeline, err := buildPipeline(device, module, cfg)
	if err != nil {
		return err
	}
	r.pipeline = pipeline

	if r.variant.Indexed() {
		geom, err := uploadGeometry(device, r.gpu.Queue(), r.variant.Geometry)
		if err != nil {
			return err
		}
		r.geometry = geom
	}
	return nil
}

// Size returns the last size passed to New or Resize.
func (r *Renderer) Size() window.Size { return r.size }

// SwapchainConfig returns the current swapchain configuration.
func (r *Renderer) SwapchainConfig() SwapchainConfig { return r.config }

// Configured reports whether the swapchain currently has images.
func (r *Renderer) Configured() bool { return r.configured }

// Variant returns the variant being drawn.
func (r *Renderer) Variant() Variant { return r.variant }

// Stats returns frame counters.
func (r *Renderer) Stats() FrameStats { return r.stats }

// Resize reconfigures the swapchain for size. A zero width or height
// unconfigures the swapchain; frames are skipped until a non-zero Resize.
// Resizing to the current configured size does nothing.
func (r *Renderer) Resize(size window.Size) {
	if r.destroyed {
		return
	}
	r.size = size
	device := r.gpu.Device()

	if size.IsZero() {
		if r.configured {
			r.swapchain.Unconfigure(device)
			r.configured = false
		}
		polydemo.Logger().Debug("renderer: zero-size resize, swapchain unconfigured", "size", size.String())
		r.trace.record("resize", "width", size.Width, "height", size.Height, "configured", false)
		return
	}

	if r.configured && r.config.Width == size.Width && r.config.Height == size.Height {
		return
	}

	cfg := r.config
	cfg.Width = size.Width
	cfg.Height = size.Height
	if err := r.swapchain.Configure(device, cfg); err != nil {
		r.configured = false
		polydemo.Logger().Error("renderer: configure swapchain", "size", size.String(), "err", err)
		return
	}
	r.config = cfg
	r.configured = true
	r.stats.Configures++
	polydemo.Logger().Debug("renderer: swapchain configured", "size", size.String())
	r.trace.record("resize", "width", size.Width, "height", size.Height, "configured", true)
}

// Input never consumes events.
func (r *Renderer) Input(window.Event) bool { return false }

// Update is called once per frame before Render. The scene is static.
func (r *Renderer) Update() {}

// Render draws one frame. When no swapchain image is available the frame is
// logged and skipped and Render returns nil. Recording and submission errors
// are returned.
func (r *Renderer) Render() error {
	if r.destroyed {
		return ErrDestroyed
	}

	frame, err := r.swapchain.Acquire()
	if err != nil {
		if !isFrameSkippable(err) {
			return fmt.Errorf("renderer: acquire frame: %w", err)
		}
		r.stats.Skipped++
		polydemo.Logger().Warn("renderer: skipping frame", "err", err)
		r.trace.record("skip", "err", err.Error())
		return nil
	}

	if err := r.encodeSubmit(frame); err != nil {
		return err
	}

	if err := r.swapchain.Present(frame); err != nil {
		return fmt.Errorf("renderer: present: %w", err)
	}
	r.stats.Submitted++
	r.trace.record("frame", "n", r.stats.Submitted, "indices", r.stats.LastIndexCount, "vertices", r.stats.LastVertexCount)
	return nil
}

// encodeSubmit records the clear+draw pass into frame and waits for it.
func (r *Renderer) encodeSubmit(frame *Frame) error {
	device := r.gpu.Device()

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "polydemo_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("renderer: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("polydemo_frame"); err != nil {
		return fmt.Errorf("renderer: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "polydemo_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       frame.View,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.variant.ClearColor,
		}},
	})

	vertices, indices := r.recordDraws(rp)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("renderer: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if err := submitAndWait(device, r.gpu.Queue(), cmdBuf, r.frameTimeout); err != nil {
		return err
	}

	r.stats.LastVertexCount = vertices
	r.stats.LastIndexCount = indices
	r.stats.LastClear = r.variant.ClearColor
	return nil
}

// recordDraws binds the pipeline and geometry and issues the variant's single
// draw call. It returns the vertex and index counts drawn.
func (r *Renderer) recordDraws(rp hal.RenderPassEncoder) (vertices, indices uint32) {
	rp.SetPipeline(r.pipeline.pipeline)
	if r.geometry == nil {
		rp.Draw(r.variant.DrawCount, 1, 0, 0)
		return r.variant.DrawCount, 0
	}
	rp.SetVertexBuffer(0, r.geometry.vertexBuf, 0)
	rp.SetIndexBuffer(r.geometry.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(r.geometry.numIndices, 1, 0, 0, 0)
	return r.geometry.numVertices, r.geometry.numIndices
}

// Destroy releases GPU resources in reverse creation order. The device and
// instance are released only if the GPU owns them. Safe to call multiple
// times.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true

	if device := r.gpu.Device(); device != nil {
		if r.geometry != nil {
			r.geometry.destroy(device)
			r.geometry = nil
		}
		if r.pipeline != nil {
			r.pipeline.destroy(device)
			r.pipeline = nil
		}
		if r.shader != nil {
			device.DestroyShaderModule(r.shader)
			r.shader = nil
		}
		r.swapchain.Unconfigure(device)
		r.configured = false
	}
	r.gpu.Destroy()

	r.trace.record("destroy", "submitted", r.stats.Submitted, "skipped", r.stats.Skipped)
	r.trace.close()
	polydemo.Logger().Debug("renderer: destroyed", "submitted", r.stats.Submitted, "skipped", r.stats.Skipped)
}
