package polydemo

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("default size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Variant != "vertex-color" {
		t.Errorf("default variant = %q, want vertex-color", cfg.Variant)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigWithCopies(t *testing.T) {
	base := DefaultConfig()
	cfg := base.WithTitle("t").WithSize(1024, 768).WithVariant("flat").
		WithShaderDir("spv").WithTraceDir("trace").WithContinuousRender(false)

	if base.Title != "polydemo" || base.Width != 800 {
		t.Error("With methods modified the receiver")
	}
	if cfg.Title != "t" || cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("unexpected window fields: %+v", cfg)
	}
	if cfg.Variant != "flat" || cfg.ShaderDir != "spv" || cfg.TraceDir != "trace" || cfg.ContinuousRender {
		t.Errorf("unexpected renderer fields: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", DefaultConfig().WithSize(0, 600)},
		{"negative height", DefaultConfig().WithSize(800, -1)},
		{"empty variant", DefaultConfig().WithVariant("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
