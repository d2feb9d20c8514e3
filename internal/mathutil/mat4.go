package mathutil

// Mat4 is a 4×4 affine matrix stored row-major. Used for per-instance
// translate/rotate/scale transforms.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// Translation returns the translation column of an affine matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

// UniformScale returns the scale encoded in an affine TRS matrix, taken
// from the length of the first basis column.
func (m Mat4) UniformScale() float64 {
	return Vec3{m[0], m[4], m[8]}.Len()
}

// ComposeTRS builds an affine matrix from translation, rotation and a
// uniform scale.
func ComposeTRS(t Vec3, q Quat, s float64) Mat4 {
	r := QuatToMat3(q)
	return Mat4{
		r[0] * s, r[1] * s, r[2] * s, t[0],
		r[3] * s, r[4] * s, r[5] * s, t[1],
		r[6] * s, r[7] * s, r[8] * s, t[2],
		0, 0, 0, 1,
	}
}

// DecomposeTRS splits an affine matrix into translation, rotation and a
// uniform scale (taken from the first basis column). A degenerate,
// zero-scale matrix has no recoverable rotation; the identity quaternion
// is returned in that case.
func DecomposeTRS(m Mat4) (Vec3, Quat, float64) {
	t := m.Translation()
	s := Vec3{m[0], m[4], m[8]}.Len()
	if s < 1e-9 {
		return t, QuatIdentity(), 0
	}
	inv := 1 / s
	r := Mat3{
		m[0] * inv, m[1] * inv, m[2] * inv,
		m[4] * inv, m[5] * inv, m[6] * inv,
		m[8] * inv, m[9] * inv, m[10] * inv,
	}
	return t, Mat3ToQuat(r), s
}
