package renderer

import "time"

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := renderer.New(ctx, gpu, sc, size,
//		renderer.WithVariant(renderer.VariantFlat()),
//		renderer.WithTraceDir(os.Getenv("WGPU_TRACE")),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	variant      Variant
	shaderDir    string
	traceDir     string
	frameTimeout time.Duration
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		variant:      VariantVertexColor(),
		frameTimeout: 5 * time.Second,
	}
}

// WithVariant selects what the renderer draws.
func WithVariant(v Variant) Option {
	return func(o *options) {
		o.variant = v
	}
}

// WithShaderDir loads precompiled SPIR-V from dir instead of compiling the
// embedded WGSL. An empty dir keeps the default.
func WithShaderDir(dir string) Option {
	return func(o *options) {
		o.shaderDir = dir
	}
}

// WithTraceDir writes a JSON lifecycle trace into dir.
// An empty dir disables tracing.
func WithTraceDir(dir string) Option {
	return func(o *options) {
		o.traceDir = dir
	}
}

// WithFrameTimeout bounds the per-frame fence wait.
func WithFrameTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.frameTimeout = d
		}
	}
}
