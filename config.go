package polydemo

import (
	"errors"
	"fmt"
)

// Environment variables understood by the polydemo command.
const (
	// TraceDirEnv names a directory that receives the renderer's
	// lifecycle trace. Empty disables tracing.
	TraceDirEnv = "WGPU_TRACE"

	// VariantEnv selects the renderer variant when no flag is given.
	VariantEnv = "POLYDEMO_VARIANT"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("polydemo: invalid config")

// Config describes one run of the demo: the window, the renderer variant
// and optional file locations. Build it with DefaultConfig and the With
// methods; every With method returns a modified copy.
//
//	cfg := polydemo.DefaultConfig().
//	    WithTitle("polygon").
//	    WithSize(1024, 768).
//	    WithVariant("flat")
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial window size in physical pixels.
	Width  int
	Height int

	// Variant is the renderer variant name ("vertex-color" or "flat").
	Variant string

	// ShaderDir, when set, is a directory of precompiled .spv files used
	// instead of compiling the embedded WGSL at startup.
	ShaderDir string

	// TraceDir, when set, receives trace.jsonl with renderer lifecycle records.
	TraceDir string

	// ContinuousRender redraws at display rate. When false the host only
	// redraws on demand.
	ContinuousRender bool
}

// DefaultConfig returns the configuration used when no flags are given:
// an 800x600 window drawing the vertex-colored pentagon.
func DefaultConfig() Config {
	return Config{
		Title:            "polydemo",
		Width:            800,
		Height:           600,
		Variant:          "vertex-color",
		ContinuousRender: true,
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the initial window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithVariant returns a copy of c with the renderer variant set.
func (c Config) WithVariant(name string) Config {
	c.Variant = name
	return c
}

// WithShaderDir returns a copy of c that loads precompiled shaders from dir.
func (c Config) WithShaderDir(dir string) Config {
	c.ShaderDir = dir
	return c
}

// WithTraceDir returns a copy of c that writes a lifecycle trace to dir.
func (c Config) WithTraceDir(dir string) Config {
	c.TraceDir = dir
	return c
}

// WithContinuousRender returns a copy of c with continuous redraw toggled.
func (c Config) WithContinuousRender(on bool) Config {
	c.ContinuousRender = on
	return c
}

// Validate reports whether c can be used to open a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Variant == "" {
		return fmt.Errorf("%w: empty variant", ErrInvalidConfig)
	}
	return nil
}
