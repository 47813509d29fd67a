package renderer

import (
	"context"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polydemo"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// GPUInfo contains information about the selected GPU.
type GPUInfo struct {
	// Name is the adapter name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Shared is true when the device belongs to the window host.
	Shared bool
}

// String returns a human-readable description of the GPU.
func (g GPUInfo) String() string {
	if g.Shared {
		return "shared host device"
	}
	return fmt.Sprintf("%s (%v)", g.Name, g.DeviceType)
}

// PowerPreference steers adapter selection.
type PowerPreference int

const (
	// PowerDefault takes the first discrete or integrated adapter.
	PowerDefault PowerPreference = iota
	// PowerLow prefers integrated adapters.
	PowerLow
	// PowerHigh prefers discrete adapters.
	PowerHigh
)

// AdapterOptions controls RequestGPU.
type AdapterOptions struct {
	PowerPreference PowerPreference
}

// InstanceFactory creates HAL instances. Registered HAL backends
// (see BackendFactory) and noop.API satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// BackendFactory returns the registered HAL backend for b.
func BackendFactory(b gputypes.Backend) (InstanceFactory, error) {
	backend, ok := hal.GetBackend(b)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoBackend, b)
	}
	return backend, nil
}

// GPU bundles the device and queue the renderer draws with.
// A GPU created by RequestGPU owns its instance and device; a GPU wrapped
// with SharedGPU belongs to the host and Destroy leaves it alone.
type GPU struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     GPUInfo
	owned    bool
}

// RequestGPU creates an instance, selects an adapter and opens a device
// with default limits and no optional features.
//
// The adapter and device requests are the only blocking steps; ctx is
// checked before each of them.
func RequestGPU(ctx context.Context, factory InstanceFactory, opts AdapterOptions) (*GPU, error) {
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("renderer: create instance: %w", err)
	}

	if err := ctx.Err(); err != nil {
		instance.Destroy()
		return nil, err
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	deviceTypes := make([]gputypes.DeviceType, len(adapters))
	for i := range adapters {
		deviceTypes[i] = adapters[i].Info.DeviceType
	}
	selected := &adapters[pickAdapter(deviceTypes, opts.PowerPreference)]

	if err := ctx.Err(); err != nil {
		instance.Destroy()
		return nil, err
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("renderer: open device: %w", err)
	}

	g := &GPU{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info: GPUInfo{
			Name:       selected.Info.Name,
			DeviceType: selected.Info.DeviceType,
		},
		owned: true,
	}
	polydemo.Logger().Info("renderer: GPU selected", "gpu", g.info.String(), "adapters", len(adapters))
	return g, nil
}

// SharedGPU wraps a device provider from the window host. The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func SharedGPU(provider any) (*GPU, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("renderer: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("renderer: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("renderer: provider HalQueue is not hal.Queue")
	}
	return &GPU{
		device: device,
		queue:  queue,
		info:   GPUInfo{Shared: true},
	}, nil
}

// NewGPU wraps an existing device and queue without taking ownership.
func NewGPU(device hal.Device, queue hal.Queue) (*GPU, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &GPU{device: device, queue: queue, info: GPUInfo{Shared: true}}, nil
}

// Device returns the HAL device.
func (g *GPU) Device() hal.Device { return g.device }

// Queue returns the HAL queue.
func (g *GPU) Queue() hal.Queue { return g.queue }

// Info returns information about the selected adapter.
func (g *GPU) Info() GPUInfo { return g.info }

// Owned reports whether Destroy releases the device.
func (g *GPU) Owned() bool { return g.owned }

// Destroy releases the device and instance if the GPU owns them.
// Safe to call multiple times.
func (g *GPU) Destroy() {
	if g.owned {
		if g.device != nil {
			g.device.Destroy()
		}
		if g.instance != nil {
			g.instance.Destroy()
		}
	}
	g.device = nil
	g.queue = nil
	g.instance = nil
}

// pickAdapter returns the index of the adapter to use for the given
// preference. Discrete and integrated GPUs win over anything else; among
// them the preference decides. Falls back to the first adapter.
func pickAdapter(types []gputypes.DeviceType, pref PowerPreference) int {
	want := gputypes.DeviceTypeDiscreteGPU
	if pref == PowerLow {
		want = gputypes.DeviceTypeIntegratedGPU
	}
	if pref != PowerDefault {
		for i, t := range types {
			if t == want {
				return i
			}
		}
	}
	for i, t := range types {
		if t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU {
			return i
		}
	}
	return 0
}

// ListAdapters enumerates the adapters factory exposes.
func ListAdapters(factory InstanceFactory) ([]GPUInfo, error) {
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("renderer: create instance: %w", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	infos := make([]GPUInfo, 0, len(adapters))
	for i := range adapters {
		infos = append(infos, GPUInfo{
			Name:       adapters[i].Info.Name,
			DeviceType: adapters[i].Info.DeviceType,
		})
	}
	return infos, nil
}
