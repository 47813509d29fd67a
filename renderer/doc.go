// Package renderer draws a fixed polygon with gogpu/wgpu every frame.
//
// A Renderer owns a GPU (device and queue), a Swapchain, one render pipeline
// and, for indexed variants, a static vertex and index buffer. It is driven
// through window.Handler: Resize reconfigures the swapchain, Render acquires
// a frame, clears it, draws and presents.
//
// Two swapchains are provided. OffscreenSwapchain renders into device
// textures and supports Snapshot readback; SurfaceSwapchain presents into a
// surface view handed over by the window host each frame.
//
// Basic usage:
//
//	gpu, err := renderer.RequestGPU(ctx, factory, renderer.AdapterOptions{})
//	if err != nil {
//		return err
//	}
//	r, err := renderer.New(ctx, gpu, renderer.NewOffscreenSwapchain(), size)
//	if err != nil {
//		return err
//	}
//	defer r.Destroy()
//	err = r.Render()
package renderer
