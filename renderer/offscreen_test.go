package renderer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/polydemo/window"
)

func TestOffscreenSwapchainLifecycle(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	sc := NewOffscreenSwapchain()
	if _, err := sc.Acquire(); !errors.Is(err, ErrSwapchainUnconfigured) {
		t.Fatalf("Acquire before Configure = %v, want ErrSwapchainUnconfigured", err)
	}

	cfg := NewSwapchainConfig(window.Size{Width: 64, Height: 32})
	if err := sc.Configure(device, cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer sc.Unconfigure(device)

	seen := map[int]bool{}
	for i := 0; i < 4; i++ {
		f, err := sc.Acquire()
		if err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
		if f.Width != 64 || f.Height != 32 || f.View == nil {
			t.Errorf("frame %d = %dx%d view=%v", i, f.Width, f.Height, f.View)
		}
		seen[f.index] = true
		if err := sc.Present(f); err != nil {
			t.Fatalf("Present %d: %v", i, err)
		}
	}
	if len(seen) != offscreenImageCount {
		t.Errorf("cycled through %d images, want %d", len(seen), offscreenImageCount)
	}
	if sc.Presents() != 4 {
		t.Errorf("Presents = %d, want 4", sc.Presents())
	}
}

func TestOffscreenSwapchainReacquire(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	sc := NewOffscreenSwapchain()
	if err := sc.Configure(device, NewSwapchainConfig(window.Size{Width: 8, Height: 8})); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer sc.Unconfigure(device)

	first, err := sc.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	again, err := sc.Acquire()
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if again.index != first.index {
		t.Errorf("unpresented image not reused: %d then %d", first.index, again.index)
	}
	if err := sc.Present(again); err != nil {
		t.Fatalf("Present: %v", err)
	}
	next, err := sc.Acquire()
	if err != nil {
		t.Fatalf("Acquire after present: %v", err)
	}
	if next.index == first.index {
		t.Error("ring did not advance after present")
	}
}

func TestOffscreenSwapchainRejectsZeroSize(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	sc := NewOffscreenSwapchain()
	if err := sc.Configure(device, NewSwapchainConfig(window.Size{Width: 0, Height: 8})); err == nil {
		t.Error("Configure with zero width should fail")
	}
	if sc.Configured() {
		t.Error("swapchain should stay unconfigured")
	}
}

func TestOffscreenSnapshot(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	sc := NewOffscreenSwapchain()
	if err := sc.Configure(device, NewSwapchainConfig(window.Size{Width: 100, Height: 50})); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer sc.Unconfigure(device)

	if _, err := sc.Snapshot(queue); err == nil {
		t.Error("Snapshot before present should fail")
	}

	f, err := sc.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := sc.Present(f); err != nil {
		t.Fatalf("Present: %v", err)
	}
	img, err := sc.Snapshot(queue)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("snapshot bounds = %v, want 100x50", b)
	}
}

func TestBGRAToRGBA(t *testing.T) {
	src := []byte{10, 20, 30, 40, 1, 2, 3, 4}
	dst := make([]byte, len(src))
	bgraToRGBA(dst, src)
	want := []byte{30, 20, 10, 40, 3, 2, 1, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestScaleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	if got := ScaleImage(src, 0, 10); got != src {
		t.Error("non-positive size should return src")
	}
	if got := ScaleImage(src, 4, 4); got != src {
		t.Error("same size should return src")
	}

	dst := ScaleImage(src, 8, 2)
	if b := dst.Bounds(); b.Dx() != 8 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 8x2", b)
	}
	if c := dst.RGBAAt(4, 1); c.R < 195 || c.R > 205 || c.A < 250 {
		t.Errorf("scaled pixel = %+v, want about solid red 200", c)
	}
}
