package render

import (
	"math"

	"colorcloud/internal/mathutil"
)

// FOVDeg is the vertical field of view used by every pass. The picker's
// off-screen pass must match the visible pass exactly or readback
// coordinates drift.
const FOVDeg = 60.0

const nearClip = 0.05

// View describes the camera for one pass.
type View struct {
	Eye   mathutil.Vec3
	Basis mathutil.Mat3 // rows (right, up, forward); maps world deltas to view space
}

// Pass bundles a target and projection settings for one render pass.
type Pass struct {
	FB        *FrameBuffer
	View      View
	PointSize float64 // world-space splat diameter at scale 1
	// FlipY stores rows bottom-up, matching GPU render-target readback
	// conventions. Used only by the picking pass.
	FlipY bool
}

// focal returns the projection factor for a target height.
func focal(h int) float64 {
	return float64(h) / 2 / math.Tan(mathutil.Deg2Rad(FOVDeg)/2)
}

// DrawPoints splats every instance of a batch into the pass target.
// Transforms and colors are parallel: colors holds RGB triples, one per
// instance. Instances with (near-)zero scale are skipped entirely.
func DrawPoints(p Pass, transforms []mathutil.Mat4, colors []uint8) {
	fb := p.FB
	f := focal(fb.Height)
	halfW := float64(fb.Width) / 2
	halfH := float64(fb.Height) / 2

	for i := range transforms {
		scale := transforms[i].UniformScale()
		if scale < 1e-6 {
			continue
		}
		pos := transforms[i].Translation()

		v := p.View.Basis.MulVec3(pos.Sub(p.View.Eye))
		if v[2] <= nearClip {
			continue
		}

		sx := halfW + f*v[0]/v[2]
		sy := halfH - f*v[1]/v[2]
		if p.FlipY {
			sy = float64(fb.Height) - 1 - sy
		}

		radius := p.PointSize * scale * f / v[2] / 2
		if radius < 0.75 {
			radius = 0.75
		}

		splat(fb, sx, sy, radius, v[2], colors[i*3], colors[i*3+1], colors[i*3+2])
	}
}

// splat draws a filled disc with depth testing.
func splat(fb *FrameBuffer, cx, cy, radius, depth float64, r, g, b uint8) {
	x0 := int(math.Floor(cx - radius))
	x1 := int(math.Ceil(cx + radius))
	y0 := int(math.Floor(cy - radius))
	y1 := int(math.Ceil(cy + radius))
	r2 := radius * radius

	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy > r2 {
				continue
			}
			fb.set(x, y, depth, r, g, b)
		}
	}
}

// DrawAxes draws the three coordinate axis lines through the origin,
// sampled as 1px depth-tested points. X is red, Y is green, Z is blue.
func DrawAxes(p Pass, length float64) {
	axes := [3]struct {
		dir     mathutil.Vec3
		r, g, b uint8
	}{
		{mathutil.Vec3{1, 0, 0}, 220, 80, 80},
		{mathutil.Vec3{0, 1, 0}, 80, 220, 80},
		{mathutil.Vec3{0, 0, 1}, 80, 80, 220},
	}

	fb := p.FB
	f := focal(fb.Height)
	halfW := float64(fb.Width) / 2
	halfH := float64(fb.Height) / 2

	const steps = 800
	for _, ax := range axes {
		for s := 0; s <= steps; s++ {
			t := (float64(s)/steps)*2 - 1
			pt := ax.dir.Scale(t * length)
			v := p.View.Basis.MulVec3(pt.Sub(p.View.Eye))
			if v[2] <= nearClip {
				continue
			}
			sx := halfW + f*v[0]/v[2]
			sy := halfH - f*v[1]/v[2]
			if p.FlipY {
				sy = float64(fb.Height) - 1 - sy
			}
			fb.set(int(sx), int(sy), v[2], ax.r, ax.g, ax.b)
		}
	}
}
