package paintview

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// identityTransform is the identity affine matrix.
var identityTransform = Affine{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m Affine) Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Affine, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// poseTransform computes the local-to-world affine matrix for a layer pose,
// following the spec's toLocal definition run in reverse:
//
//	v = local - anchorOffset
//	v *= scale
//	v = rotate(rotation) * v
//	world = v + (x, y)
//
// anchorOffset is (0,0) for AnchorTopLeft and (w/2, h/2) for AnchorCenter.
func poseTransform(x, y, scale, rotation float64, anchor Anchor, w, h float64) Affine {
	var ax, ay float64
	if anchor == AnchorCenter {
		ax, ay = w/2, h/2
	}
	sin, cos := math.Sincos(rotation)
	// Rotate(rotation) * Scale(scale) combined:
	a := cos * scale
	b := sin * scale
	c := -sin * scale
	d := cos * scale
	// Fold Translate(-ax, -ay) into tx, ty via the matrix above.
	tx := x - (a*ax + c*ay)
	ty := y - (b*ax + d*ay)
	return Affine{a, b, c, d, tx, ty}
}

// invertPoseTransform is the algebraic inverse used by Layer.ToLocal.
func invertPoseTransform(x, y, scale, rotation float64, anchor Anchor, w, h float64) Affine {
	return invertAffine(poseTransform(x, y, scale, rotation, anchor, w, h))
}
