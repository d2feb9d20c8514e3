package engine

import (
	"fmt"
	"testing"

	"colorcloud/internal/camera"
	"colorcloud/internal/colorspace"
	"colorcloud/internal/dataset"
	"colorcloud/internal/pick"
	"colorcloud/internal/render"
	"colorcloud/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60

func testRecords(n int) []dataset.Record {
	recs := make([]dataset.Record, n)
	for i := range recs {
		recs[i] = dataset.Record{
			Name: fmt.Sprintf("color-%d", i),
			Hex:  fmt.Sprintf("%06x", i+1),
			L:    0.5,
			A:    float64(i) * 0.1,
			B:    0,
			Flag: i%2 == 0,
		}
	}
	return recs
}

func drain(e *Engine) {
	for e.RemapActive() {
		e.Step(dt, camera.Move{})
	}
}

func TestInitialRemapRunsChunked(t *testing.T) {
	e := New(testRecords(2500), colorspace.Lab{}, Notifier{})

	require.True(t, e.RemapActive())
	e.Step(dt, camera.Move{})
	assert.True(t, e.RemapActive(), "2500 records need more than one chunk")
	e.Step(dt, camera.Move{})
	e.Step(dt, camera.Move{})
	assert.False(t, e.RemapActive())
}

func TestSearchDebounce(t *testing.T) {
	var got [][]search.Match
	e := New(testRecords(10), colorspace.Lab{}, Notifier{
		SearchResults: func(m []search.Match) { got = append(got, m) },
	})
	drain(e)

	e.SubmitQuery("color-3")
	e.Step(0.05, camera.Move{})
	e.Step(0.05, camera.Move{})
	assert.Empty(t, got, "no ranking inside the quiescence window")

	e.Step(0.06, camera.Move{})
	require.Len(t, got, 1)
	require.NotEmpty(t, got[0])
	assert.Equal(t, 3, got[0][0].Index)
}

func TestSearchSupersededQueryRestartsWindow(t *testing.T) {
	var got [][]search.Match
	e := New(testRecords(10), colorspace.Lab{}, Notifier{
		SearchResults: func(m []search.Match) { got = append(got, m) },
	})
	drain(e)

	e.SubmitQuery("color-3")
	e.Step(0.1, camera.Move{})
	e.SubmitQuery("color-4")
	e.Step(0.1, camera.Move{})
	assert.Empty(t, got, "the newer keystroke cancels the pending ranking")

	e.Step(0.06, camera.Move{})
	require.Len(t, got, 1, "only the superseding query is ranked")
	assert.Equal(t, 4, got[0][0].Index)
}

func TestSelectNotifies(t *testing.T) {
	var events []int
	e := New(testRecords(10), colorspace.Lab{}, Notifier{
		SelectionChanged: func(i int) { events = append(events, i) },
	})
	drain(e)

	e.Select(4)
	e.Select(99) // out of range: no-op, no event
	e.Select(-1)
	assert.Equal(t, []int{4, -1}, events)
}

func TestSetSpaceResetsSelectionAndCamera(t *testing.T) {
	e := New(testRecords(10), colorspace.Lab{}, Notifier{})
	drain(e)

	e.Select(5)
	e.Rig.Zoom(3)
	e.Rig.Drag(500, 200)

	require.True(t, e.SetSpace("rgb"))
	drain(e)

	assert.Equal(t, -1, e.Cloud.Selected())
	assert.Equal(t, 4.0, e.Rig.Distance)
	assert.Equal(t, "rgb", e.Cloud.Space().Name())

	assert.False(t, e.SetSpace("cmyk"))
}

func TestFlyToIndex(t *testing.T) {
	e := New(testRecords(10), colorspace.Lab{}, Notifier{})
	drain(e)

	e.FlyToIndex(7)
	assert.Equal(t, 7, e.Cloud.Selected())
	orbit, dist := e.Rig.Animating()
	require.True(t, orbit)
	require.True(t, dist)

	for i := 0; i < 600; i++ {
		e.Step(dt, camera.Move{})
	}
	want, _ := e.Cloud.Position(7)
	assert.Less(t, e.Rig.OrbitPoint.Dist(want), 1e-3)

	// Out of range leaves the camera alone.
	before := e.Rig.OrbitPoint
	e.FlyToIndex(99)
	assert.Equal(t, before, e.Rig.OrbitPoint)
}

func TestPickAtFindsRecordUnderCursor(t *testing.T) {
	// Record 0 sits at the orbit point, so it projects to the viewport
	// center under the default camera.
	recs := testRecords(10)
	recs[0].A = 0
	e := New(recs, colorspace.Lab{}, Notifier{})
	drain(e)

	const w, h = 128, 128
	got := e.PickAt(w/2, h/2, w, h)
	assert.Equal(t, 0, got)

	assert.Equal(t, pick.NoHit, e.PickAt(0, 0, w, h))
}

func TestPickIsReadOnly(t *testing.T) {
	e := New(testRecords(10), colorspace.Lab{}, Notifier{})
	drain(e)
	e.Select(2)

	before := append([]uint8(nil), visColorsSnapshot(e)...)

	e.PickAt(10, 10, 64, 64)

	assert.Equal(t, before, visColorsSnapshot(e))
	assert.Equal(t, 2, e.Cloud.Selected())
}

func visColorsSnapshot(e *Engine) []uint8 {
	_, colors := e.Cloud.VisibleBatch()
	return colors
}

func TestRenderFillsBackground(t *testing.T) {
	e := New(testRecords(5), colorspace.Lab{}, Notifier{})
	drain(e)
	e.SetBackground(0, 0, 0.5)
	e.SetAxesVisible(false)

	fb := render.NewFrameBuffer(32, 32)
	e.Render(fb)

	r, g, b, a := fb.At(0, 0)
	assert.Equal(t, uint8(128), r)
	assert.Equal(t, uint8(128), g)
	assert.Equal(t, uint8(128), b)
	assert.Equal(t, uint8(255), a)
}
