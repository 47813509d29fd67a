package renderer

import "errors"

// Setup errors. These are unrecoverable: without a device there is no
// degraded mode.
var (
	// ErrNoAdapter is returned when no GPU adapter is available.
	ErrNoAdapter = errors.New("renderer: no compatible GPU adapter")

	// ErrNoBackend is returned when the requested HAL backend is not registered.
	ErrNoBackend = errors.New("renderer: GPU backend not available")

	// ErrNilDevice is returned when a GPU is built without device or queue.
	ErrNilDevice = errors.New("renderer: nil device or queue")

	// ErrInvalidPipelineConfig is returned by PipelineConfig.Validate.
	ErrInvalidPipelineConfig = errors.New("renderer: invalid pipeline config")

	// ErrInvalidGeometry is returned by Geometry.Validate.
	ErrInvalidGeometry = errors.New("renderer: invalid geometry")

	// ErrUnknownVariant is returned by ParseVariant.
	ErrUnknownVariant = errors.New("renderer: unknown variant")
)

// Frame errors. Render logs these and skips the frame.
var (
	// ErrSurfaceOutdated means the swapchain no longer matches the surface,
	// usually because the window was resized. The next Resize fixes it.
	ErrSurfaceOutdated = errors.New("renderer: surface outdated")

	// ErrSurfaceLost means no presentable image is available this frame.
	ErrSurfaceLost = errors.New("renderer: surface lost")

	// ErrSwapchainUnconfigured means Configure has not succeeded yet.
	ErrSwapchainUnconfigured = errors.New("renderer: swapchain not configured")
)

// ErrDestroyed is returned when a destroyed Renderer is used.
var ErrDestroyed = errors.New("renderer: renderer destroyed")

// isFrameSkippable reports whether err is a frame acquisition failure that
// Render recovers from by skipping the frame.
func isFrameSkippable(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) ||
		errors.Is(err, ErrSurfaceLost) ||
		errors.Is(err, ErrSwapchainUnconfigured)
}
