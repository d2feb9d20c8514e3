package render

import (
	"testing"

	"colorcloud/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centerView() View {
	eye := mathutil.Vec3{0, 0, -4}
	return View{
		Eye:   eye,
		Basis: mathutil.LookBasis(eye, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0}),
	}
}

func singlePoint(r, g, b uint8) ([]mathutil.Mat4, []uint8) {
	return []mathutil.Mat4{mathutil.ComposeTRS(mathutil.Vec3{}, mathutil.QuatIdentity(), 1)},
		[]uint8{r, g, b}
}

func TestDrawPointsCenter(t *testing.T) {
	fb := NewFrameBuffer(64, 64)
	transforms, colors := singlePoint(10, 20, 30)

	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1}, transforms, colors)

	r, g, b, a := fb.At(32, 32)
	assert.Equal(t, [4]uint8{10, 20, 30, 255}, [4]uint8{r, g, b, a})
}

func TestDrawPointsFlipY(t *testing.T) {
	fb := NewFrameBuffer(64, 64)
	transforms, colors := singlePoint(200, 0, 0)

	// Off-center point: above the view center in screen space.
	transforms[0] = mathutil.ComposeTRS(mathutil.Vec3{0, 1, 0}, mathutil.QuatIdentity(), 1)

	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1, FlipY: true}, transforms, colors)

	// With bottom-up rows the point lands in the lower half.
	found := false
	for y := 33; y < 64 && !found; y++ {
		for x := 0; x < 64; x++ {
			if r, _, _, _ := fb.At(x, y); r == 200 {
				found = true
				break
			}
		}
	}
	assert.True(t, found)
}

func TestZeroScaleSkipped(t *testing.T) {
	fb := NewFrameBuffer(32, 32)
	transforms, colors := singlePoint(255, 255, 255)
	transforms[0] = mathutil.ComposeTRS(mathutil.Vec3{}, mathutil.QuatIdentity(), 0)

	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1}, transforms, colors)

	_, _, _, a := fb.At(16, 16)
	assert.Equal(t, uint8(0), a)
}

func TestDepthTest(t *testing.T) {
	fb := NewFrameBuffer(64, 64)
	transforms := []mathutil.Mat4{
		mathutil.ComposeTRS(mathutil.Vec3{0, 0, 1}, mathutil.QuatIdentity(), 1), // far
		mathutil.ComposeTRS(mathutil.Vec3{}, mathutil.QuatIdentity(), 1),        // near
	}
	colors := []uint8{100, 0, 0, 0, 100, 0}

	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1}, transforms, colors)

	// The nearer (green) instance wins the center pixel.
	_, g, _, _ := fb.At(32, 32)
	require.Equal(t, uint8(100), g)
}

func TestClearResetsDepth(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	transforms, colors := singlePoint(50, 60, 70)
	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1}, transforms, colors)

	fb.Clear(1, 2, 3, 255)
	r, g, b, _ := fb.At(8, 8)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})

	// A redraw after Clear must land again.
	DrawPoints(Pass{FB: fb, View: centerView(), PointSize: 0.1}, transforms, colors)
	r, _, _, _ = fb.At(8, 8)
	assert.Equal(t, uint8(50), r)
}

func TestHSVToRGB(t *testing.T) {
	r, g, b := HSVToRGB(0, 1, 1)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})

	r, g, b = HSVToRGB(1.0/3, 1, 1)
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})

	r, g, b = HSVToRGB(0.5, 0, 0.5)
	assert.Equal(t, [3]uint8{128, 128, 128}, [3]uint8{r, g, b})
}
