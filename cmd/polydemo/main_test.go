package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/polydemo/shader"
)

func TestHeadlessNoop(t *testing.T) {
	tests := []struct {
		name    string
		variant string
	}{
		{"flat", "flat"},
		{"vertex-color", "vertex-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := filepath.Join(dir, "frame.png")
			args := []string{"polydemo", "headless",
				"--backend", "noop",
				"--variant", tt.variant,
				"--width", "64", "--height", "48",
				"--frames", "2",
				"--png", out,
				"--png-width", "32", "--png-height", "24",
				"--trace-dir", filepath.Join(dir, "trace"),
			}
			if err := newApp().Run(args); err != nil {
				t.Fatalf("Run: %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatalf("open png: %v", err)
			}
			defer f.Close()
			cfg, err := png.DecodeConfig(f)
			if err != nil {
				t.Fatalf("decode png: %v", err)
			}
			if cfg.Width != 32 || cfg.Height != 24 {
				t.Errorf("png = %dx%d, want 32x24", cfg.Width, cfg.Height)
			}
			if _, err := os.Stat(filepath.Join(dir, "trace", "trace.jsonl")); err != nil {
				t.Errorf("trace not written: %v", err)
			}
		})
	}
}

func TestSpirvCommand(t *testing.T) {
	dir := t.TempDir()
	if err := newApp().Run([]string{"polydemo", "spirv", "--out", dir}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, src := range shader.Sources() {
		if _, err := shader.Load(dir, src); err != nil {
			t.Errorf("Load(%s): %v", src.Name, err)
		}
	}
}

func TestAdaptersNoop(t *testing.T) {
	if err := newApp().Run([]string{"polydemo", "adapters", "--backend", "noop"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestBackendFactory(t *testing.T) {
	for _, name := range []string{"noop", "NOOP", "vulkan"} {
		if _, err := backendFactory(name); err != nil {
			t.Errorf("backendFactory(%q): %v", name, err)
		}
	}
	if _, err := backendFactory("metal"); err == nil {
		t.Error("unknown backend should fail")
	}
}
