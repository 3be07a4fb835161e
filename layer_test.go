package paintview

import "testing"

func pixelAt(l *Layer, x, y int) (r, g, b, a uint8) {
	idx := l.raster.PixOffset(x, y)
	p := l.raster.Pix
	return p[idx], p[idx+1], p[idx+2], p[idx+3]
}

func TestBrushStrokeAndUndo(t *testing.T) {
	l := NewCanvasLayer("sketch", "Sketch", 100, 100, nil)
	l.SetHistoryManager(NewHistoryManager(50))

	l.BeginStroke(10, 10)
	l.Stroke(90, 90, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	l.EndStroke()

	r, g, b, a := pixelAt(l, 50, 50)
	if a != 255 {
		t.Fatalf("alpha after stroke = %d, want 255", a)
	}
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("color after stroke = (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	l.Undo()

	_, _, _, a = pixelAt(l, 50, 50)
	if a != 0 {
		t.Errorf("alpha after undo = %d, want 0 (fully transparent)", a)
	}
}

func TestEraserStrokeAndUndo(t *testing.T) {
	l := NewCanvasLayer("sketch", "Sketch", 100, 100, nil)
	for i := range l.raster.Pix {
		if i%4 == 2 {
			l.raster.Pix[i] = 255 // blue channel
		} else if i%4 == 3 {
			l.raster.Pix[i] = 255 // opaque
		}
	}
	l.SetHistoryManager(NewHistoryManager(50))

	l.BeginStroke(10, 50)
	l.Stroke(90, 50, Color{}, 10, 1, ModeEraser)
	l.EndStroke()

	_, _, _, a := pixelAt(l, 50, 50)
	if a != 0 {
		t.Fatalf("alpha after eraser = %d, want 0", a)
	}

	l.Undo()

	r, g, b, a := pixelAt(l, 50, 50)
	if a != 255 || b != 255 || r != 0 || g != 0 {
		t.Errorf("pixel after undo = (%d,%d,%d,%d), want (0,0,255,255)", r, g, b, a)
	}
}

func TestBeginStrokeWithoutEndStrokeDiscardsOnNextBegin(t *testing.T) {
	l := NewCanvasLayer("sketch", "Sketch", 50, 50, nil)
	l.SetHistoryManager(NewHistoryManager(50))

	l.BeginStroke(5, 5)
	l.Stroke(20, 20, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	// Simulate a lost pointer: begin again without ending.
	l.BeginStroke(30, 30)

	if len(l.strokePoints) != 1 {
		t.Errorf("expected the in-progress stroke buffer to reset, got %d points", len(l.strokePoints))
	}
}

func TestStrokeBeforeBeginStrokeIsNoOp(t *testing.T) {
	l := NewCanvasLayer("sketch", "Sketch", 50, 50, nil)
	l.Stroke(10, 10, Color{R: 1, A: 1}, 4, 1, ModeBrush)
	_, _, _, a := pixelAt(l, 10, 10)
	if a != 0 {
		t.Error("Stroke without BeginStroke should not draw")
	}
}

func TestHitTestRespectsBounds(t *testing.T) {
	l := NewCanvasLayer("sketch", "Sketch", 100, 50, nil)
	l.X, l.Y = 20, 20

	if !l.HitTest(20, 20) {
		t.Error("top-left corner of the layer should hit")
	}
	if l.HitTest(200, 200) {
		t.Error("far outside the layer should not hit")
	}
	if l.HitTest(5, 5) {
		t.Error("point before the layer's origin should not hit")
	}
}

func TestAsCanvasProbe(t *testing.T) {
	canvas := NewCanvasLayer("c", "c", 10, 10, nil)
	if _, ok := canvas.AsCanvas(); !ok {
		t.Error("canvas layer should probe true for AsCanvas")
	}

	overlay := NewOverlayLayer("o", "o", nil)
	if _, ok := overlay.AsCanvas(); ok {
		t.Error("overlay layer should probe false for AsCanvas")
	}
}

func TestResizeToRescalesRaster(t *testing.T) {
	l := NewCanvasLayer("r", "r", 10, 10, nil)
	l.ResizeTo(20, 20)
	if l.Width() != 20 || l.Height() != 20 {
		t.Errorf("size after resize = (%d,%d), want (20,20)", l.Width(), l.Height())
	}
}

func TestCropToRetainsTopLeft(t *testing.T) {
	l := NewCanvasLayer("c", "c", 10, 10, nil)
	idx := l.raster.PixOffset(2, 2)
	l.raster.Pix[idx], l.raster.Pix[idx+3] = 255, 255
	l.CropTo(5, 5)
	if l.Width() != 5 || l.Height() != 5 {
		t.Fatalf("size after crop = (%d,%d), want (5,5)", l.Width(), l.Height())
	}
	r, _, _, a := pixelAt(l, 2, 2)
	if r != 255 || a != 255 {
		t.Error("cropped raster should retain top-left content")
	}
}
