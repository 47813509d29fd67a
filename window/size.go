// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import "fmt"

// Size is a window size in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// NewSize converts host dimensions to a Size. Negative values clamp to zero.
func NewSize(width, height int) Size {
	return Size{Width: clampDim(width), Height: clampDim(height)}
}

// IsZero reports whether the size has no area, as when a window is minimized.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func clampDim(v int) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(v) //nolint:gosec // window dimensions fit uint32
}
