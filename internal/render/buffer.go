package render

import "math"

// FrameBuffer holds a render target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	Depth  []float64 // view-space depth per pixel, len = W*H, +inf = empty
}

// NewFrameBuffer allocates a zeroed color buffer and +inf depth buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		Depth:  depth,
	}
}

// Clear fills the color buffer with one color and resets the depth buffer.
func (fb *FrameBuffer) Clear(r, g, b, a uint8) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = r
		fb.Color[i+1] = g
		fb.Color[i+2] = b
		fb.Color[i+3] = a
	}
	for i := range fb.Depth {
		fb.Depth[i] = math.Inf(1)
	}
}

// At returns the RGBA value at (x, y), row 0 at the top. Out-of-bounds
// reads return transparent black.
func (fb *FrameBuffer) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, 0, 0, 0
	}
	i := (y*fb.Width + x) * 4
	return fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]
}

func (fb *FrameBuffer) set(x, y int, depth float64, r, g, b uint8) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if depth >= fb.Depth[i] {
		return
	}
	fb.Depth[i] = depth
	ci := i * 4
	fb.Color[ci] = r
	fb.Color[ci+1] = g
	fb.Color[ci+2] = b
	fb.Color[ci+3] = 255
}
