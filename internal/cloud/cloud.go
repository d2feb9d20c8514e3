// Package cloud owns the per-instance transform and color buffers for the
// point cloud. It maintains two parallel batches: the visible batch carries
// each record's true color, the pickable batch carries an identity color
// derived from the record index. Both batches always share position and
// scale; only the color payload differs.
package cloud

import (
	"colorcloud/internal/colorspace"
	"colorcloud/internal/dataset"
	"colorcloud/internal/mathutil"
	"colorcloud/internal/pick"
)

const (
	// HighlightScale is applied to the selected instance regardless of
	// visibility filtering.
	HighlightScale = 2.4

	// scaleTol is the comparison tolerance for "scale already correct".
	scaleTol = 1e-3
)

// Cloud holds instance state for every loaded record.
type Cloud struct {
	records []dataset.Record

	visTransforms  []mathutil.Mat4
	visColors      []uint8 // RGB triples
	pickTransforms []mathutil.Mat4
	pickColors     []uint8 // identity colors, set once at New

	selected      int
	hideUnflagged bool

	space        colorspace.Space
	sliderFactor float64
}

// New allocates both batches for the given records. The pickable batch's
// color channel is set from the record index here and never changes again.
func New(records []dataset.Record, space colorspace.Space) *Cloud {
	n := len(records)
	c := &Cloud{
		records:        records,
		visTransforms:  make([]mathutil.Mat4, n),
		visColors:      make([]uint8, n*3),
		pickTransforms: make([]mathutil.Mat4, n),
		pickColors:     make([]uint8, n*3),
		selected:       -1,
		space:          space,
		sliderFactor:   1,
	}
	for i := 0; i < n; i++ {
		c.visTransforms[i] = mathutil.Mat4Identity()
		c.pickTransforms[i] = mathutil.Mat4Identity()
		r, g, b := pick.Encode(i)
		c.pickColors[i*3] = r
		c.pickColors[i*3+1] = g
		c.pickColors[i*3+2] = b
	}
	return c
}

func (c *Cloud) Len() int                  { return len(c.records) }
func (c *Cloud) Records() []dataset.Record { return c.records }
func (c *Cloud) Selected() int             { return c.selected }
func (c *Cloud) HideUnflagged() bool       { return c.hideUnflagged }
func (c *Cloud) Space() colorspace.Space   { return c.space }
func (c *Cloud) SliderFactor() float64     { return c.sliderFactor }

// VisibleBatch returns the visible batch's buffers for the main render pass.
func (c *Cloud) VisibleBatch() ([]mathutil.Mat4, []uint8) {
	return c.visTransforms, c.visColors
}

// PickableBatch returns the identity-colored batch for the picking pass.
func (c *Cloud) PickableBatch() ([]mathutil.Mat4, []uint8) {
	return c.pickTransforms, c.pickColors
}

// ScaleFor is the single source of truth for an instance's scale:
// selected wins, then the visibility filter, then 1.
func (c *Cloud) ScaleFor(index int) float64 {
	if index == c.selected {
		return HighlightScale
	}
	if c.hideUnflagged && !c.records[index].Flag {
		return 0
	}
	return 1
}

// Position recomputes the canonical coordinate for an index from the
// record and current color space. It deliberately does not read the
// transform buffer, which may lag during a chunked remap.
func (c *Cloud) Position(index int) (mathutil.Vec3, bool) {
	if index < 0 || index >= len(c.records) {
		return mathutil.Vec3{}, false
	}
	return c.space.Position(c.records[index], c.sliderFactor), true
}

// UpdateVisibility rescans every instance and rewrites only those whose
// target scale differs from the current one. The selected index is left
// untouched; Select owns its scale.
func (c *Cloud) UpdateVisibility(hideUnflagged bool) {
	c.hideUnflagged = hideUnflagged
	for i := range c.records {
		if i == c.selected {
			continue
		}
		target := c.ScaleFor(i)
		cur := c.visTransforms[i].UniformScale()
		if cur-target < scaleTol && target-cur < scaleTol {
			continue
		}
		c.setScale(i, target)
	}
}

// Select highlights one instance, restoring the previous selection's
// visibility-derived scale first. Index −1 deselects only; any other
// out-of-range index is a no-op.
func (c *Cloud) Select(index int) {
	if index != -1 && (index < 0 || index >= len(c.records)) {
		return
	}
	prev := c.selected
	c.selected = -1
	if prev >= 0 {
		c.setScale(prev, c.ScaleFor(prev))
	}
	if index >= 0 {
		c.selected = index
		c.setScale(index, HighlightScale)
	}
}

// setScale rewrites one instance's scale in both batches, preserving its
// position. A zero-scale transform has an underdetermined rotation when
// decomposed, so the orientation is reset to identity when an instance
// comes back from scale 0.
func (c *Cloud) setScale(i int, scale float64) {
	pos, rot, cur := mathutil.DecomposeTRS(c.visTransforms[i])
	if cur < scaleTol && scale > 0 {
		rot = mathutil.QuatIdentity()
	}
	t := mathutil.ComposeTRS(pos, rot, scale)
	c.visTransforms[i] = t
	c.pickTransforms[i] = t
}
