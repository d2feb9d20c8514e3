package cloud

import (
	"fmt"

	"colorcloud/internal/colorspace"
	"colorcloud/internal/mathutil"
)

// ChunkSize is the number of instances rewritten per Step call. The host
// scheduler regains control between chunks, so interactive input is never
// blocked for longer than one chunk's processing time.
const ChunkSize = 1000

// ProgressFunc receives remap progress as a percentage in [0,100].
type ProgressFunc func(pct float64, msg string)

// RemapTask is a resumable bulk rewrite of every instance's position and
// scale for a new color space or slider factor. Starting a new task while
// one is in flight is safe: both write the same buffers in the same order,
// so the newer task's writes supersede the stale ones.
type RemapTask struct {
	c        *Cloud
	next     int
	progress ProgressFunc
}

// Remap switches the cloud to a color space and slider factor and returns
// the task that rewrites the buffers. The caller drives it with Step, one
// call per scheduler turn, or drains it with Run.
func (c *Cloud) Remap(space colorspace.Space, sliderFactor float64, progress ProgressFunc) *RemapTask {
	c.space = space
	c.sliderFactor = sliderFactor
	return &RemapTask{c: c, progress: progress}
}

// Step processes one chunk and reports progress. Returns true once every
// instance has been rewritten. The rewrite is idempotent: running a task
// twice with identical inputs produces identical buffers.
func (t *RemapTask) Step() bool {
	c := t.c
	n := len(c.records)
	if t.next >= n {
		return true
	}

	end := t.next + ChunkSize
	if end > n {
		end = n
	}

	for i := t.next; i < end; i++ {
		pos := c.space.Position(c.records[i], c.sliderFactor)
		tr := mathutil.ComposeTRS(pos, mathutil.QuatIdentity(), c.ScaleFor(i))
		c.visTransforms[i] = tr
		c.pickTransforms[i] = tr

		rec := c.records[i]
		c.visColors[i*3] = rec.R
		c.visColors[i*3+1] = rec.G
		c.visColors[i*3+2] = rec.Bl
	}
	t.next = end

	if t.progress != nil {
		pct := float64(t.next) / float64(n) * 100
		t.progress(pct, fmt.Sprintf("placed %d/%d points", t.next, n))
	}
	return t.next >= n
}

// Run drains the task in one call, for headless use.
func (t *RemapTask) Run() {
	for !t.Step() {
	}
}

// Done reports whether every chunk has been processed.
func (t *RemapTask) Done() bool {
	return t.next >= len(t.c.records)
}
