package paintview

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := Affine{2, 0, 0, 3, 5, 7}
	got := multiplyAffine(identityTransform, m)
	assertMatrix(t, "identity*m", got, m)
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := Affine{1.5, 0.2, -0.3, 0.8, 10, -4}
	inv := invertAffine(m)
	roundTrip := multiplyAffine(m, inv)
	assertMatrix(t, "m*inv(m)", roundTrip, identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	m := Affine{0, 0, 0, 0, 5, 5}
	got := invertAffine(m)
	assertMatrix(t, "singular", got, identityTransform)
}

func TestTransformPointTranslate(t *testing.T) {
	m := Affine{1, 0, 0, 1, 10, 20}
	x, y := transformPoint(m, 3, 4)
	assertNear(t, "x", x, 13)
	assertNear(t, "y", y, 24)
}

func TestPoseTransformTopLeftIdentity(t *testing.T) {
	m := poseTransform(0, 0, 1, 0, AnchorTopLeft, 100, 50)
	assertMatrix(t, "topleft-identity", m, identityTransform)
}

func TestPoseTransformTranslation(t *testing.T) {
	m := poseTransform(10, 20, 1, 0, AnchorTopLeft, 100, 50)
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "x", x, 10)
	assertNear(t, "y", y, 20)
}

func TestPoseTransformCenterAnchorOrigin(t *testing.T) {
	// A 100x50 layer at position (0,0), center-anchored: local (50,25) is the
	// anchor point and must map to world (0,0).
	m := poseTransform(0, 0, 1, 0, AnchorCenter, 100, 50)
	x, y := transformPoint(m, 50, 25)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 0)
}

func TestPoseTransformScale(t *testing.T) {
	m := poseTransform(0, 0, 2, 0, AnchorTopLeft, 100, 50)
	x, y := transformPoint(m, 10, 10)
	assertNear(t, "x", x, 20)
	assertNear(t, "y", y, 20)
}

func TestPoseTransformRotationQuarterTurn(t *testing.T) {
	m := poseTransform(0, 0, 1, math.Pi/2, AnchorTopLeft, 100, 50)
	x, y := transformPoint(m, 1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestInvertPoseTransformRoundTrip(t *testing.T) {
	fwd := poseTransform(25, -10, 1.5, 0.3, AnchorCenter, 80, 60)
	inv := invertPoseTransform(25, -10, 1.5, 0.3, AnchorCenter, 80, 60)
	wx, wy := transformPoint(fwd, 12, 34)
	lx, ly := transformPoint(inv, wx, wy)
	assertNear(t, "local x", lx, 12)
	assertNear(t, "local y", ly, 34)
}
