package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeDecomposeTRS(t *testing.T) {
	pos := Vec3{1.5, -2, 0.25}
	rot := Mat3ToQuat(RotY(0.7))
	scale := 2.4

	m := ComposeTRS(pos, rot, scale)
	gotPos, gotRot, gotScale := DecomposeTRS(m)

	assert.InDelta(t, pos[0], gotPos[0], 1e-9)
	assert.InDelta(t, pos[1], gotPos[1], 1e-9)
	assert.InDelta(t, pos[2], gotPos[2], 1e-9)
	assert.InDelta(t, scale, gotScale, 1e-9)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, rot[i], gotRot[i], 1e-9)
	}
}

func TestDecomposeZeroScale(t *testing.T) {
	m := ComposeTRS(Vec3{3, 4, 5}, Mat3ToQuat(RotX(1.1)), 0)

	pos, rot, scale := DecomposeTRS(m)

	// The rotation of a zero-scale transform is underdetermined; the
	// decomposition must fall back to identity, not garbage.
	assert.Equal(t, QuatIdentity(), rot)
	assert.Equal(t, 0.0, scale)
	assert.Equal(t, Vec3{3, 4, 5}, pos)
}

func TestUniformScale(t *testing.T) {
	m := ComposeTRS(Vec3{}, QuatIdentity(), 1.75)
	assert.InDelta(t, 1.75, m.UniformScale(), 1e-12)
}

func TestQuatMat3Roundtrip(t *testing.T) {
	for _, r := range []Mat3{RotX(0.3), RotY(-1.2), RotZ(2.9), Mat3Mul(RotX(0.5), RotZ(-0.4))} {
		q := Mat3ToQuat(r)
		back := QuatToMat3(q)
		for i := 0; i < 9; i++ {
			assert.InDelta(t, r[i], back[i], 1e-9)
		}
	}
}

func TestLookBasis(t *testing.T) {
	eye := Vec3{0, 0, -4}
	b := LookBasis(eye, Vec3{}, Vec3{0, 1, 0})

	// The target sits straight ahead: zero lateral offset, positive depth.
	v := b.MulVec3(Vec3{}.Sub(eye))
	assert.InDelta(t, 0, v[0], 1e-9)
	assert.InDelta(t, 0, v[1], 1e-9)
	assert.InDelta(t, 4, v[2], 1e-9)
}

func TestSphericalDir(t *testing.T) {
	// Phi is measured from the up axis: phi=0 points straight up.
	up := SphericalDir(0.3, 0)
	assert.InDelta(t, 1, up[1], 1e-12)

	horiz := SphericalDir(0, math.Pi/2)
	assert.InDelta(t, 1, horiz[0], 1e-12)
	assert.InDelta(t, 0, horiz[1], 1e-12)
}
