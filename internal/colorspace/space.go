// Package colorspace maps color records to 3D positions. Each space is a
// pure function of the record plus a caller-supplied scale factor; the
// effective scale is always baseScale × sliderValue, applied exactly once
// here and nowhere else.
package colorspace

import (
	"colorcloud/internal/dataset"
	"colorcloud/internal/mathutil"
)

// Space converts a record's channel values into a world position.
type Space interface {
	Name() string
	AxisLabels() [3]string
	// Position returns the record's coordinate scaled by the space's own
	// base scale times the user slider factor.
	Position(rec dataset.Record, sliderFactor float64) mathutil.Vec3
}

// Lab lays records out by perceptual coordinates: A on X, lightness on Y,
// B on Z.
type Lab struct{}

func (Lab) Name() string { return "lab" }

func (Lab) AxisLabels() [3]string { return [3]string{"a", "L", "b"} }

func (Lab) Position(rec dataset.Record, sliderFactor float64) mathutil.Vec3 {
	s := labBaseScale * sliderFactor
	return mathutil.Vec3{rec.A * s, (rec.L - 0.5) * s, rec.B * s}
}

// RGBCube lays records out by raw channel values, centered on the origin.
type RGBCube struct{}

func (RGBCube) Name() string { return "rgb" }

func (RGBCube) AxisLabels() [3]string { return [3]string{"R", "G", "B"} }

func (RGBCube) Position(rec dataset.Record, sliderFactor float64) mathutil.Vec3 {
	s := rgbBaseScale * sliderFactor
	return mathutil.Vec3{
		(float64(rec.R)/255 - 0.5) * s,
		(float64(rec.G)/255 - 0.5) * s,
		(float64(rec.Bl)/255 - 0.5) * s,
	}
}

const (
	labBaseScale = 4.0
	rgbBaseScale = 4.0
)

// ByName resolves a registered space. Returns (nil, false) for unknown
// names so callers can keep the current space.
func ByName(name string) (Space, bool) {
	switch name {
	case "lab":
		return Lab{}, true
	case "rgb":
		return RGBCube{}, true
	}
	return nil, false
}

// Names lists the registered spaces in menu order.
func Names() []string {
	return []string{"lab", "rgb"}
}
