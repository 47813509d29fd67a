// Package polydemo is a minimal real-time rendering demo built on the
// Pure Go GoGPU stack.
//
// # Overview
//
// polydemo opens a window, acquires a GPU device and queue, configures a
// swapchain, compiles a fixed vertex/fragment shader pair and redraws a
// colored polygon every frame in response to the window's event loop.
//
// # Architecture
//
// The module is organized into:
//   - polydemo: shared logger and run configuration
//   - window: window events and the event dispatcher
//   - renderer: GPU lifecycle, swapchains, pipeline and static geometry
//   - shader: embedded WGSL sources and SPIR-V compilation via naga
//   - host: the gogpu window host that drives the renderer
//   - cmd/polydemo: command line entry point
//
// # Quick Start
//
//	polydemo.SetLogger(slog.Default())
//	if err := host.Run(context.Background(), polydemo.DefaultConfig()); err != nil {
//	    log.Fatal(err)
//	}
package polydemo

// Version is the current version of polydemo.
const Version = "0.1.0"
