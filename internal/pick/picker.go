// Package pick implements GPU-style color-coded picking against a
// software off-screen target. Instance indices are encoded into the
// pickable batch's colors; picking renders that batch alone and decodes
// one read-back pixel.
package pick

import (
	"fmt"
	"image"
	"io"

	"colorcloud/internal/mathutil"
	"colorcloud/internal/render"

	"github.com/ftrvxmtrx/tga"
)

// Occluder is transient overlay geometry that must not shadow the
// pickable batch during a pick render.
type Occluder interface {
	Hide()
	Show()
}

// Picker owns the off-screen pick target. It is a read-only probe: a pick
// never mutates persistent instance state and is safe to call every frame.
type Picker struct {
	fb *render.FrameBuffer
}

func NewPicker() *Picker {
	return &Picker{}
}

// Pick renders the pickable batch into the off-screen target and decodes
// the instance index under screen coordinate (x, y), given in the usual
// top-left origin. The target stores rows bottom-up, so the read-back row
// is flipped. Returns NoHit for background pixels, coordinates outside
// the viewport, or decoded values beyond count.
func (p *Picker) Pick(x, y, w, h int, view render.View, pointSize float64,
	transforms []mathutil.Mat4, idColors []uint8, count int, occ Occluder) int {

	if w <= 0 || h <= 0 || x < 0 || x >= w || y < 0 || y >= h {
		return NoHit
	}

	// Resize the target only when the viewport changed.
	if p.fb == nil || p.fb.Width != w || p.fb.Height != h {
		p.fb = render.NewFrameBuffer(w, h)
	}

	if occ != nil {
		occ.Hide()
		defer occ.Show()
	}

	// No background fill: uncovered pixels stay (0,0,0) and decode as
	// no-hit.
	p.fb.Clear(0, 0, 0, 0)
	render.DrawPoints(render.Pass{
		FB:        p.fb,
		View:      view,
		PointSize: pointSize,
		FlipY:     true,
	}, transforms, idColors)

	// Top-left screen space to the target's bottom-up row convention.
	r, g, b, _ := p.fb.At(x, h-1-y)
	idx := Decode(r, g, b)
	if idx < 0 || idx >= count {
		return NoHit
	}
	return idx
}

// DumpTGA writes the last pick target as a TGA image, rows restored to
// top-down order. Useful for debugging decode mismatches.
func (p *Picker) DumpTGA(w io.Writer) error {
	if p.fb == nil {
		return fmt.Errorf("pick: no pick buffer rendered yet")
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.fb.Width, p.fb.Height))
	for y := 0; y < p.fb.Height; y++ {
		src := (p.fb.Height - 1 - y) * p.fb.Width * 4
		dst := y * img.Stride
		copy(img.Pix[dst:dst+p.fb.Width*4], p.fb.Color[src:src+p.fb.Width*4])
	}
	// Alpha is unused by the pick pass; force opaque for inspection.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	if err := tga.Encode(w, img); err != nil {
		return fmt.Errorf("pick: tga encode: %w", err)
	}
	return nil
}
