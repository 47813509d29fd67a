package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo/shader"
	"github.com/gogpu/wgpu/hal"
)

// SwapchainFormat is the color format of every swapchain and pipeline target.
const SwapchainFormat = gputypes.TextureFormatBGRA8Unorm

// PipelineConfig names the fixed-function state of the render pipeline.
// A nil Blend replaces the target instead of blending.
type PipelineConfig struct {
	Label string

	Topology  gputypes.PrimitiveTopology
	FrontFace gputypes.FrontFace
	CullMode  gputypes.CullMode

	Blend       *gputypes.BlendState
	ColorFormat gputypes.TextureFormat
	WriteMask   gputypes.ColorWriteMask

	// VertexLayout binds one vertex buffer laid out as Vertex.
	VertexLayout bool

	VertexEntry   string
	FragmentEntry string
	SampleCount   uint32
}

// FlatPipeline draws a shader-generated triangle: no vertex buffers, no
// culling, no blending.
func FlatPipeline() PipelineConfig {
	return PipelineConfig{
		Label:         "polydemo_flat",
		Topology:      gputypes.PrimitiveTopologyTriangleList,
		FrontFace:     gputypes.FrontFaceCW,
		CullMode:      gputypes.CullModeNone,
		ColorFormat:   SwapchainFormat,
		WriteMask:     gputypes.ColorWriteMaskAll,
		VertexEntry:   shader.VertexEntry,
		FragmentEntry: shader.FragmentEntry,
		SampleCount:   1,
	}
}

// VertexColorPipeline draws indexed position+color vertices with alpha
// blending and back-face culling.
func VertexColorPipeline() PipelineConfig {
	blend := alphaBlending()
	return PipelineConfig{
		Label:         "polydemo_vertex_color",
		Topology:      gputypes.PrimitiveTopologyTriangleList,
		FrontFace:     gputypes.FrontFaceCCW,
		CullMode:      gputypes.CullModeBack,
		Blend:         &blend,
		ColorFormat:   SwapchainFormat,
		WriteMask:     gputypes.ColorWriteMaskAll,
		VertexLayout:  true,
		VertexEntry:   shader.VertexEntry,
		FragmentEntry: shader.FragmentEntry,
		SampleCount:   1,
	}
}

// alphaBlending is straight (non-premultiplied) source-over.
func alphaBlending() gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// Validate reports the first problem with c.
func (c PipelineConfig) Validate() error {
	switch {
	case c.SampleCount == 0:
		return fmt.Errorf("%w: sample count is zero", ErrInvalidPipelineConfig)
	case c.VertexEntry == "":
		return fmt.Errorf("%w: missing vertex entry point", ErrInvalidPipelineConfig)
	case c.FragmentEntry == "":
		return fmt.Errorf("%w: missing fragment entry point", ErrInvalidPipelineConfig)
	case c.ColorFormat == gputypes.TextureFormatUndefined:
		return fmt.Errorf("%w: undefined color format", ErrInvalidPipelineConfig)
	}
	return nil
}

// Pipeline is a built render pipeline and the layout it was built with.
type Pipeline struct {
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
	config   PipelineConfig
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() PipelineConfig { return p.config }

// buildPipeline creates an empty pipeline layout and a render pipeline using
// module for both stages.
func buildPipeline(device hal.Device, module hal.ShaderModule, cfg PipelineConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: cfg.Label + "_layout",
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create pipeline layout: %w", err)
	}

	var buffers []gputypes.VertexBufferLayout
	if cfg.VertexLayout {
		buffers = vertexBufferLayouts()
	}

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  cfg.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: cfg.VertexEntry,
			Buffers:    buffers,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  cfg.Topology,
			FrontFace: cfg.FrontFace,
			CullMode:  cfg.CullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: cfg.SampleCount,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: cfg.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    cfg.ColorFormat,
					Blend:     cfg.Blend,
					WriteMask: cfg.WriteMask,
				},
			},
		},
	})
	if err != nil {
		device.DestroyPipelineLayout(layout)
		return nil, fmt.Errorf("renderer: create render pipeline: %w", err)
	}

	return &Pipeline{layout: layout, pipeline: pipeline, config: cfg}, nil
}

func (p *Pipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
}
