package paintview

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestLayer(name string) *Layer {
	return NewCanvasLayer(name, name, 10, 10, nil)
}

func TestTweenLayerPositionReachesTarget(t *testing.T) {
	l := newTestLayer("pos")
	l.X = 10
	l.Y = 20

	g := TweenLayerPosition(l, 100, 200, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(l.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", l.X)
	}
	if math.Abs(l.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", l.Y)
	}
}

func TestTweenLayerScaleReachesTarget(t *testing.T) {
	l := newTestLayer("scale")
	l.Scale = 1.0

	g := TweenLayerScale(l, 3.0, 0.5, ease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(l.Scale-3.0) > 0.01 {
		t.Errorf("Scale = %f, want ~3.0", l.Scale)
	}
}

func TestTweenLayerOpacityInterpolates(t *testing.T) {
	l := newTestLayer("opacity")
	l.Opacity = 1.0

	g := TweenLayerOpacity(l, 0.0, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(l.Opacity-0.5) > 0.05 {
		t.Errorf("Opacity = %f, want ~0.5 at halfway", l.Opacity)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(l.Opacity-0.0) > 0.01 {
		t.Errorf("Opacity = %f, want ~0.0", l.Opacity)
	}
}

func TestTweenLayerRotationReachesTarget(t *testing.T) {
	l := newTestLayer("rot")
	l.Rotation = 0

	g := TweenLayerRotation(l, math.Pi, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(l.Rotation-math.Pi) > 0.05 {
		t.Errorf("Rotation = %f, want ~%f", l.Rotation, math.Pi)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	l := newTestLayer("done")
	g := TweenLayerPosition(l, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupDestroyedLayer(t *testing.T) {
	l := newTestLayer("destroyed")
	l.X = 10
	l.Y = 20

	g := TweenLayerPosition(l, 100, 200, 1.0, ease.Linear)

	l.Destroy()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after destroyed layer detected")
	}
	if l.X != 10 || l.Y != 20 {
		t.Errorf("fields changed on destroyed layer: X=%f Y=%f", l.X, l.Y)
	}
}

func TestTweenGroupDestroyedMidAnimation(t *testing.T) {
	l := newTestLayer("mid-destroy")

	g := TweenLayerPosition(l, 100, 100, 1.0, ease.Linear)

	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	l.Destroy()
	savedX, savedY := l.X, l.Y

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after layer destroyed mid-animation")
	}
	if l.X != savedX || l.Y != savedY {
		t.Error("fields should not change after destruction")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	layerL := newTestLayer("linear")
	layerC := newTestLayer("cubic")

	gL := TweenLayerPosition(layerL, 100, 0, 1.0, ease.Linear)
	gC := TweenLayerPosition(layerC, 100, 0, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(layerL.X-layerC.X) < 1.0 {
		t.Errorf("easing curves should produce different values at midpoint: linear=%f cubic=%f", layerL.X, layerC.X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	l := newTestLayer("alloc")
	g := TweenLayerPosition(l, 100, 100, 1.0, ease.Linear)

	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
