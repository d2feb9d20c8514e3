// Package engine ties the point cloud, camera rig, picker and search
// ranker behind a command interface. External UI issues discrete commands
// and observes state changes through callbacks; there is one logical
// thread of control, advanced by Step once per frame.
package engine

import (
	"colorcloud/internal/camera"
	"colorcloud/internal/cloud"
	"colorcloud/internal/colorspace"
	"colorcloud/internal/dataset"
	"colorcloud/internal/pick"
	"colorcloud/internal/render"
	"colorcloud/internal/search"
)

// searchDebounce is the quiescence window before a submitted query is
// ranked. A superseding keystroke restarts the window.
const searchDebounce = 0.150

// DefaultPointSize is the world-space splat diameter at instance scale 1.
const DefaultPointSize = 0.045

// Notifier carries the engine's observable state-change callbacks. Any
// field may be nil.
type Notifier struct {
	SelectionChanged func(index int)
	Progress         func(pct float64, msg string)
	SearchResults    func(matches []search.Match)
}

// Engine owns all interaction state for one loaded dataset.
type Engine struct {
	Cloud *cloud.Cloud
	Rig   *camera.Rig

	records      []dataset.Record
	picker       *pick.Picker
	notify       Notifier
	sliderFactor float64
	pointSize    float64

	axesVisible   bool
	bgH, bgS, bgV float64

	remap *cloud.RemapTask

	pendingQuery string
	debounce     float64
	havePending  bool
}

// New builds an engine over loaded records and kicks off the initial
// placement remap; drive it with Step.
func New(records []dataset.Record, space colorspace.Space, notify Notifier) *Engine {
	e := &Engine{
		Cloud:        cloud.New(records, space),
		Rig:          camera.New(),
		records:      records,
		picker:       pick.NewPicker(),
		notify:       notify,
		sliderFactor: 1,
		pointSize:    DefaultPointSize,
		axesVisible:  true,
		bgH:          0.6,
		bgS:          0.25,
		bgV:          0.12,
	}
	e.startRemap()
	return e
}

func (e *Engine) startRemap() {
	e.remap = e.Cloud.Remap(e.Cloud.Space(), e.sliderFactor, func(pct float64, msg string) {
		if e.notify.Progress != nil {
			e.notify.Progress(pct, msg)
		}
	})
}

// RemapActive reports whether a chunked placement rewrite is in flight.
func (e *Engine) RemapActive() bool {
	return e.remap != nil
}

// Step advances one scheduler turn: at most one remap chunk, the search
// debounce window, then the camera integration with the true frame delta.
func (e *Engine) Step(dt float64, mv camera.Move) {
	if e.remap != nil && e.remap.Step() {
		e.remap = nil
	}

	if e.havePending {
		e.debounce -= dt
		if e.debounce <= 0 {
			e.havePending = false
			matches := search.Rank(e.pendingQuery, e.records, e.Cloud.HideUnflagged())
			if e.notify.SearchResults != nil {
				e.notify.SearchResults(matches)
			}
		}
	}

	e.Rig.Update(dt, mv)
}

// Select highlights an instance; −1 deselects. Out-of-range indices are
// no-ops and emit no notification.
func (e *Engine) Select(index int) {
	before := e.Cloud.Selected()
	e.Cloud.Select(index)
	after := e.Cloud.Selected()
	if after != before && e.notify.SelectionChanged != nil {
		e.notify.SelectionChanged(after)
	}
}

// FlyToIndex selects an instance and starts a camera fly-in to it.
func (e *Engine) FlyToIndex(index int) {
	pos, ok := e.Cloud.Position(index)
	if !ok {
		return
	}
	e.Select(index)
	e.Rig.FlyTo(pos)
}

// SetHideUnflagged toggles the visibility filter.
func (e *Engine) SetHideUnflagged(hide bool) {
	e.Cloud.UpdateVisibility(hide)
}

// SetScaleFactor applies the scale slider and rewrites all placements.
func (e *Engine) SetScaleFactor(f float64) {
	e.sliderFactor = f
	e.startRemap()
}

// SetSpace switches color spaces at runtime. The dataset is not reloaded;
// placements are rewritten, and selection and camera return to defaults.
// Unknown names are ignored.
func (e *Engine) SetSpace(name string) bool {
	sp, ok := colorspace.ByName(name)
	if !ok {
		return false
	}
	e.Select(-1)
	e.Rig.Reset()
	e.remap = e.Cloud.Remap(sp, e.sliderFactor, func(pct float64, msg string) {
		if e.notify.Progress != nil {
			e.notify.Progress(pct, msg)
		}
	})
	return true
}

// SetBackground stores the clear color as HSV, forwarded untouched to the
// render pass.
func (e *Engine) SetBackground(h, s, v float64) {
	e.bgH, e.bgS, e.bgV = h, s, v
}

// SetAxesVisible toggles the axis overlay.
func (e *Engine) SetAxesVisible(visible bool) {
	e.axesVisible = visible
}

// SubmitQuery schedules a ranking pass after the debounce window; a newer
// query cancels the pending one.
func (e *Engine) SubmitQuery(query string) {
	e.pendingQuery = query
	e.debounce = searchDebounce
	e.havePending = true
}

// PickAt probes the instance under a screen coordinate for a w×h
// viewport. Read-only; returns pick.NoHit when nothing is there.
func (e *Engine) PickAt(x, y, w, h int) int {
	eye, basis := e.Rig.Pose()
	transforms, idColors := e.Cloud.PickableBatch()
	return e.picker.Pick(x, y, w, h,
		render.View{Eye: eye, Basis: basis},
		e.pointSize, transforms, idColors, e.Cloud.Len(), nil)
}

// Render draws the visible batch (plus background and axes) into fb.
func (e *Engine) Render(fb *render.FrameBuffer) {
	r, g, b := render.HSVToRGB(e.bgH, e.bgS, e.bgV)
	fb.Clear(r, g, b, 255)

	eye, basis := e.Rig.Pose()
	pass := render.Pass{
		FB:        fb,
		View:      render.View{Eye: eye, Basis: basis},
		PointSize: e.pointSize,
	}
	if e.axesVisible {
		render.DrawAxes(pass, 2.5)
	}
	transforms, colors := e.Cloud.VisibleBatch()
	render.DrawPoints(pass, transforms, colors)
}

// Picker exposes the underlying picker for debug dumps.
func (e *Engine) Picker() *pick.Picker { return e.picker }
