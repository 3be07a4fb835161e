package paintview

import (
	"testing"
	"time"
)

func TestStrokeCommandMergeWithinWindow(t *testing.T) {
	l := NewCanvasLayer("m", "m", 50, 50, nil)
	h := NewHistoryManager(50)
	l.SetHistoryManager(h)

	now := time.Now()

	l.BeginStroke(5, 5)
	l.Stroke(15, 15, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()
	first := h.undo[len(h.undo)-1].(*StrokeCommand)
	first.timestamp = now

	l.BeginStroke(15, 15)
	l.Stroke(25, 25, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()

	if len(h.undo) != 1 {
		t.Fatalf("expected the two strokes to merge into one undo entry, got %d", len(h.undo))
	}
	merged := h.undo[0].(*StrokeCommand)
	if len(merged.points) != 4 {
		t.Errorf("merged point count = %d, want 4", len(merged.points))
	}
}

func TestStrokeCommandNoMergeAcrossDifferentColor(t *testing.T) {
	l := NewCanvasLayer("m", "m", 50, 50, nil)
	h := NewHistoryManager(50)
	l.SetHistoryManager(h)

	l.BeginStroke(5, 5)
	l.Stroke(15, 15, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()

	l.BeginStroke(15, 15)
	l.Stroke(25, 25, Color{G: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()

	if len(h.undo) != 2 {
		t.Fatalf("expected distinct colors to stay as separate undo entries, got %d", len(h.undo))
	}
}

func TestStrokeCommandNoMergeAfterWindowElapses(t *testing.T) {
	l := NewCanvasLayer("m", "m", 50, 50, nil)
	h := NewHistoryManager(50)
	l.SetHistoryManager(h)

	l.BeginStroke(5, 5)
	l.Stroke(15, 15, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()
	first := h.undo[len(h.undo)-1].(*StrokeCommand)
	first.timestamp = time.Now().Add(-time.Second)

	l.BeginStroke(15, 15)
	l.Stroke(25, 25, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()

	if len(h.undo) != 2 {
		t.Fatalf("expected strokes outside the merge window to stay separate, got %d", len(h.undo))
	}
}

func TestStrokeBoundingBoxDegenerateFallsBackToFullRaster(t *testing.T) {
	bbox := strokeBoundingBox(nil, 4, 50, 60)
	if bbox.Dx() != 50 || bbox.Dy() != 60 {
		t.Errorf("degenerate bbox = %v, want full 50x60 raster", bbox)
	}
}
