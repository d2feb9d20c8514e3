// Package camera implements the orbit camera rig: physically damped free
// movement around an orbit point, drag-driven rotation, and blended
// fly-to transitions toward a target point and distance.
package camera

import (
	"math"

	"colorcloud/internal/mathutil"
)

const (
	MinDistance = 0.1
	MaxDistance = 20.0

	// phiEps keeps the polar angle strictly inside (0, π) so the look
	// vector never flips through a pole.
	phiEps = 0.01

	friction        = 5.0
	animBlend       = 0.1
	settleTol       = 1e-3
	flyToDistance   = 0.75
	dragSensitivity = 0.005
)

// Move holds the held movement keys for one frame.
type Move struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
}

// Rig integrates camera state. All mutation happens in Update, which must
// run exactly once per rendered frame with the true elapsed delta.
type Rig struct {
	OrbitPoint mathutil.Vec3
	Distance   float64
	Theta      float64 // azimuth around the up axis
	Phi        float64 // polar angle from +Y, in (0, π)
	Velocity   mathutil.Vec3

	targetOrbit       mathutil.Vec3
	targetDistance    float64
	animatingOrbit    bool
	animatingDistance bool
}

// New returns a rig at the session defaults: origin orbit point, distance
// 4, looking slightly down from the front.
func New() *Rig {
	r := &Rig{}
	r.Reset()
	return r
}

// Reset restores the default pose and cancels any animation or motion.
func (r *Rig) Reset() {
	r.OrbitPoint = mathutil.Vec3{}
	r.Distance = 4
	r.Theta = math.Pi / 2
	r.Phi = math.Pi / 3
	r.Velocity = mathutil.Vec3{}
	r.animatingOrbit = false
	r.animatingDistance = false
}

// Update advances the rig by dt seconds with the given held keys.
func (r *Rig) Update(dt float64, mv Move) {
	// Panning speed scales with zoom: far views pan fast, close views slow.
	accel := math.Max(0.5, r.Distance*2)

	forward := mathutil.SphericalDir(r.Theta, r.Phi).Scale(-1)
	right := forward.Cross(mathutil.Vec3{0, 1, 0}).Normalize()

	var dir mathutil.Vec3
	if mv.Forward {
		dir = dir.Add(forward)
	}
	if mv.Back {
		dir = dir.Sub(forward)
	}
	if mv.Right {
		dir = dir.Add(right)
	}
	if mv.Left {
		dir = dir.Sub(right)
	}
	// Vertical movement ignores camera tilt.
	if mv.Up {
		dir = dir.Add(mathutil.Vec3{0, 1, 0})
	}
	if mv.Down {
		dir = dir.Sub(mathutil.Vec3{0, 1, 0})
	}
	if dir.Len() > 0 {
		r.Velocity = r.Velocity.Add(dir.Normalize().Scale(accel * dt))
	}

	// Friction rescales the velocity vector; speed never goes negative.
	speed := r.Velocity.Len()
	if speed > 0 {
		damped := speed - speed*friction*dt
		if damped < 0 {
			damped = 0
		}
		r.Velocity = r.Velocity.Scale(damped / speed)
	}

	r.OrbitPoint = r.OrbitPoint.Add(r.Velocity.Scale(dt))

	if r.animatingOrbit {
		r.OrbitPoint = r.OrbitPoint.Lerp(r.targetOrbit, animBlend)
		if r.OrbitPoint.Dist(r.targetOrbit) < settleTol {
			r.animatingOrbit = false
		}
	}
	if r.animatingDistance {
		r.Distance = mathutil.Clamp(
			mathutil.Lerp(r.Distance, r.targetDistance, animBlend),
			MinDistance, MaxDistance)
		if math.Abs(r.Distance-r.targetDistance) < settleTol {
			r.animatingDistance = false
		}
	}
}

// FlyTo starts a damped transition of the orbit point toward target and
// the distance toward a fixed close-up value.
func (r *Rig) FlyTo(target mathutil.Vec3) {
	r.targetOrbit = target
	r.targetDistance = flyToDistance
	r.Velocity = mathutil.Vec3{}
	r.animatingOrbit = true
	r.animatingDistance = true
}

// Zoom applies wheel input. Manual zoom pre-empts an active fly-in, so the
// distance animation flag is cleared immediately.
func (r *Rig) Zoom(delta float64) {
	r.Distance = mathutil.Clamp(r.Distance+delta, MinDistance, MaxDistance)
	r.animatingDistance = false
}

// Drag accumulates a screen-space delta into the orbit angles.
func (r *Rig) Drag(dx, dy float64) {
	r.Theta += dx * dragSensitivity
	r.Phi = mathutil.Clamp(r.Phi+dy*dragSensitivity, phiEps, math.Pi-phiEps)
}

// Animating reports the two independent animation flags.
func (r *Rig) Animating() (orbit, distance bool) {
	return r.animatingOrbit, r.animatingDistance
}

// Eye returns the camera world position on the orbit sphere.
func (r *Rig) Eye() mathutil.Vec3 {
	return r.OrbitPoint.Add(mathutil.SphericalDir(r.Theta, r.Phi).Scale(r.Distance))
}

// Pose returns the camera position and orientation; the camera always
// looks at the orbit point.
func (r *Rig) Pose() (mathutil.Vec3, mathutil.Mat3) {
	eye := r.Eye()
	return eye, mathutil.LookBasis(eye, r.OrbitPoint, mathutil.Vec3{0, 1, 0})
}
