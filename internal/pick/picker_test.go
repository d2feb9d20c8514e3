package pick

import (
	"bytes"
	"testing"

	"colorcloud/internal/mathutil"
	"colorcloud/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testView looks at the origin from 4 units out on -Z.
func testView() render.View {
	eye := mathutil.Vec3{0, 0, -4}
	return render.View{
		Eye:   eye,
		Basis: mathutil.LookBasis(eye, mathutil.Vec3{}, mathutil.Vec3{0, 1, 0}),
	}
}

func testBatch(positions []mathutil.Vec3) ([]mathutil.Mat4, []uint8) {
	transforms := make([]mathutil.Mat4, len(positions))
	colors := make([]uint8, len(positions)*3)
	for i, p := range positions {
		transforms[i] = mathutil.ComposeTRS(p, mathutil.QuatIdentity(), 1)
		r, g, b := Encode(i)
		colors[i*3] = r
		colors[i*3+1] = g
		colors[i*3+2] = b
	}
	return transforms, colors
}

func TestPickHitsCenteredInstance(t *testing.T) {
	// Index 0 projects to the viewport center; the others are off screen
	// and behind the camera.
	transforms, colors := testBatch([]mathutil.Vec3{
		{0, 0, 0},
		{10, 10, 10},
		{0, 0, -10},
	})

	p := NewPicker()
	const w, h = 64, 64
	got := p.Pick(w/2, h/2, w, h, testView(), 0.1, transforms, colors, len(transforms), nil)
	assert.Equal(t, 0, got)
}

func TestPickBackground(t *testing.T) {
	transforms, colors := testBatch([]mathutil.Vec3{{0, 0, 0}})

	p := NewPicker()
	const w, h = 64, 64
	// Nothing projects to the corner; the uncovered pixel decodes as no hit.
	assert.Equal(t, NoHit, p.Pick(0, 0, w, h, testView(), 0.1, transforms, colors, 1, nil))
}

func TestPickOutsideViewport(t *testing.T) {
	transforms, colors := testBatch([]mathutil.Vec3{{0, 0, 0}})

	p := NewPicker()
	assert.Equal(t, NoHit, p.Pick(-1, 10, 64, 64, testView(), 0.1, transforms, colors, 1, nil))
	assert.Equal(t, NoHit, p.Pick(10, 64, 64, 64, testView(), 0.1, transforms, colors, 1, nil))
	assert.Equal(t, NoHit, p.Pick(10, 10, 0, 0, testView(), 0.1, transforms, colors, 1, nil))
}

func TestPickRestoresOccluder(t *testing.T) {
	transforms, colors := testBatch([]mathutil.Vec3{{0, 0, 0}})

	occ := &fakeOccluder{visible: true}
	p := NewPicker()
	p.Pick(32, 32, 64, 64, testView(), 0.1, transforms, colors, 1, occ)

	assert.True(t, occ.visible, "occluder must be restored after every pick")
	assert.True(t, occ.wasHidden, "occluder must be hidden during the pick render")
}

type fakeOccluder struct {
	visible   bool
	wasHidden bool
}

func (o *fakeOccluder) Hide() { o.visible = false; o.wasHidden = true }
func (o *fakeOccluder) Show() { o.visible = true }

func TestDumpTGA(t *testing.T) {
	p := NewPicker()

	var buf bytes.Buffer
	require.Error(t, p.DumpTGA(&buf), "dump before any pick must fail")

	transforms, colors := testBatch([]mathutil.Vec3{{0, 0, 0}})
	p.Pick(32, 32, 64, 64, testView(), 0.1, transforms, colors, 1, nil)

	require.NoError(t, p.DumpTGA(&buf))
	assert.NotZero(t, buf.Len())
}
