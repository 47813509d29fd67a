package renderer

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo/shader"
)

func TestPipelinePresets(t *testing.T) {
	flat := FlatPipeline()
	if flat.VertexLayout {
		t.Error("flat pipeline should not bind vertex buffers")
	}
	if flat.Blend != nil {
		t.Error("flat pipeline should replace, not blend")
	}
	if flat.CullMode != gputypes.CullModeNone {
		t.Errorf("flat cull mode = %v, want none", flat.CullMode)
	}

	vc := VertexColorPipeline()
	if !vc.VertexLayout {
		t.Error("vertex-color pipeline should bind vertex buffers")
	}
	if vc.Blend == nil {
		t.Error("vertex-color pipeline should blend")
	}
	if vc.CullMode != gputypes.CullModeBack || vc.FrontFace != gputypes.FrontFaceCCW {
		t.Errorf("vertex-color culling = %v/%v, want back/ccw", vc.CullMode, vc.FrontFace)
	}

	for _, cfg := range []PipelineConfig{flat, vc} {
		if cfg.ColorFormat != SwapchainFormat {
			t.Errorf("%s format = %v, want %v", cfg.Label, cfg.ColorFormat, SwapchainFormat)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", cfg.Label, err)
		}
	}
}

func TestPipelineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineConfig)
	}{
		{"zero samples", func(c *PipelineConfig) { c.SampleCount = 0 }},
		{"no vertex entry", func(c *PipelineConfig) { c.VertexEntry = "" }},
		{"no fragment entry", func(c *PipelineConfig) { c.FragmentEntry = "" }},
		{"undefined format", func(c *PipelineConfig) { c.ColorFormat = gputypes.TextureFormatUndefined }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := VertexColorPipeline()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidPipelineConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidPipelineConfig", err)
			}
		})
	}
}

func TestBuildPipeline(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		src shader.Source
		cfg PipelineConfig
	}{
		{shader.Flat, FlatPipeline()},
		{shader.Polygon, VertexColorPipeline()},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Label, func(t *testing.T) {
			words, err := shader.Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			module, err := shader.CreateModule(device, tt.src.Name, words)
			if err != nil {
				t.Fatalf("CreateModule: %v", err)
			}
			defer device.DestroyShaderModule(module)

			p, err := buildPipeline(device, module, tt.cfg)
			if err != nil {
				t.Fatalf("buildPipeline: %v", err)
			}
			if p.pipeline == nil || p.layout == nil {
				t.Error("expected pipeline and layout")
			}
			if p.Config().Label != tt.cfg.Label {
				t.Errorf("Config().Label = %q", p.Config().Label)
			}
			p.destroy(device)
			p.destroy(device)
		})
	}
}

func TestBuildPipelineRejectsInvalidConfig(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	cfg := FlatPipeline()
	cfg.SampleCount = 0
	if _, err := buildPipeline(device, nil, cfg); !errors.Is(err, ErrInvalidPipelineConfig) {
		t.Errorf("err = %v, want ErrInvalidPipelineConfig", err)
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	layouts := vertexBufferLayouts()
	if len(layouts) != 1 {
		t.Fatalf("layouts = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != VertexStride {
		t.Errorf("stride = %d, want %d", l.ArrayStride, VertexStride)
	}
	if len(l.Attributes) != 2 || l.Attributes[1].Offset != 12 || l.Attributes[1].ShaderLocation != 1 {
		t.Errorf("attributes = %+v", l.Attributes)
	}
}
