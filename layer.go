package paintview

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// OverlayDrawFunc renders a screen-space (or world-aware screen-space)
// overlay layer each frame.
type OverlayDrawFunc func(rc RenderContext)

// RedrawFunc procedurally repaints a CanvasLayer's raster. Invoked once at
// construction to prime the raster, and again whenever RequestRedraw is
// called.
type RedrawFunc func(l *Layer)

// Layer is the single concrete representation of every layer kind the
// compositor draws: a procedural/paintable canvas, a bitmap pre-filled from
// a decoded image, or a screen-space overlay. Kind discriminates behavior;
// unused fields for a given kind stay zero.
type Layer struct {
	ID   string
	Name string
	Kind LayerKind

	Space   LayerSpace
	Visible bool
	Opacity float64
	Blend   BlendMode

	// Pose.
	X, Y     float64
	Scale    float64
	Rotation float64
	Anchor   Anchor

	// CanvasLayer / BitmapLayer state.
	raster       *image.NRGBA
	width        int
	height       int
	texture      *ebiten.Image
	textureDirty bool
	redraw       RedrawFunc

	strokeActive    bool
	strokePoints    []StrokePoint
	strokeColor     Color
	strokeSize      float64
	strokeMode      StrokeMode
	strokePressure0 bool // whether strokePoints[0].Pressure still needs backfilling
	preStrokeSnapshot *image.NRGBA

	history *HistoryManager

	// BitmapLayer source tracking, released on Destroy.
	sourceRef io.Closer

	// OverlayLayer state.
	overlayDraw OverlayDrawFunc

	destroyed bool
}

func newLayerBase(id, name string, kind LayerKind) *Layer {
	return &Layer{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Space:   SpaceWorld,
		Visible: true,
		Opacity: 1,
		Blend:   BlendNormal,
		Scale:   1,
		Anchor:  AnchorTopLeft,
	}
}

// NewCanvasLayer creates a paintable raster layer of the given pixel
// dimensions. If redraw is non-nil it is invoked once immediately to prime
// the raster content.
func NewCanvasLayer(id, name string, width, height int, redraw RedrawFunc) *Layer {
	l := newLayerBase(id, name, KindCanvas)
	l.width, l.height = width, height
	l.raster = image.NewNRGBA(image.Rect(0, 0, width, height))
	l.redraw = redraw
	l.textureDirty = true
	if redraw != nil {
		redraw(l)
	}
	return l
}

// NewOverlayLayer creates a screen-space layer drawn every frame via draw.
// Overlay layers are not paintable and never participate in history.
func NewOverlayLayer(id, name string, draw OverlayDrawFunc) *Layer {
	l := newLayerBase(id, name, KindOverlay)
	l.Space = SpaceScreen
	l.overlayDraw = draw
	return l
}

// Raster exposes the layer's pixel buffer directly for advanced host use
// (e.g. reading pixels for a color picker without going through ViewController).
func (l *Layer) Raster() *image.NRGBA { return l.raster }

// Width and Height report the raster's pixel dimensions.
func (l *Layer) Width() int  { return l.width }
func (l *Layer) Height() int { return l.height }

// AsCanvas probes whether this layer owns a paintable raster (KindCanvas or
// KindBitmap), the idiomatic alternative to a variant-struct downcast.
func (l *Layer) AsCanvas() (*Layer, bool) {
	if l.Kind == KindCanvas || l.Kind == KindBitmap {
		return l, true
	}
	return nil, false
}

// poseAffine returns this layer's local-to-world (or local-to-screen, for
// overlay layers) affine transform.
func (l *Layer) poseAffine() Affine {
	return poseTransform(l.X, l.Y, l.Scale, l.Rotation, l.Anchor, float64(l.width), float64(l.height))
}

// ToLocal converts a point in the layer's parent space (world for
// SpaceWorld layers, screen for SpaceScreen layers) to layer-local
// coordinates, the formal inverse of the pose transform.
func (l *Layer) ToLocal(px, py float64) (lx, ly float64) {
	inv := invertPoseTransform(l.X, l.Y, l.Scale, l.Rotation, l.Anchor, float64(l.width), float64(l.height))
	return transformPoint(inv, px, py)
}

// HitTest reports whether the given parent-space point falls within the
// layer's raster bounds, after accounting for its pose. An invisible layer
// never hits.
func (l *Layer) HitTest(px, py float64) bool {
	if !l.Visible {
		return false
	}
	lx, ly := l.ToLocal(px, py)
	return lx >= 0 && lx <= float64(l.width) && ly >= 0 && ly <= float64(l.height)
}

// Render draws the layer into rc.Dest using rc.Transform composed with the
// layer's own pose, honoring opacity and blend mode. Callers must have
// already checked Visible && Opacity > 0.
func (l *Layer) Render(rc RenderContext) {
	debugCheckDisposed(l.destroyed, "Render", l.Name)
	combined := multiplyAffine(rc.Transform, l.poseAffine())

	switch l.Kind {
	case KindOverlay:
		if l.overlayDraw != nil {
			l.overlayDraw(RenderContext{Dest: rc.Dest, Transform: combined})
		}
	case KindCanvas, KindBitmap:
		l.syncTexture()
		var op ebiten.DrawImageOptions
		op.GeoM.SetElement(0, 0, combined[0])
		op.GeoM.SetElement(1, 0, combined[1])
		op.GeoM.SetElement(0, 1, combined[2])
		op.GeoM.SetElement(1, 1, combined[3])
		op.GeoM.SetElement(0, 2, combined[4])
		op.GeoM.SetElement(1, 2, combined[5])
		op.ColorScale.ScaleAlpha(float32(clamp01(l.Opacity)))
		op.Blend = l.Blend.EbitenBlend()
		rc.Dest.DrawImage(l.texture, &op)
	}
}

func (l *Layer) syncTexture() {
	if l.texture == nil {
		l.texture = ebiten.NewImage(l.width, l.height)
		l.textureDirty = true
	}
	if l.textureDirty {
		l.texture.WritePixels(l.raster.Pix)
		l.textureDirty = false
	}
}

// RequestRedraw invokes the procedural redraw callback, if any, and marks
// the cached texture dirty. Idempotent: safe to call every frame even if
// nothing changed.
func (l *Layer) RequestRedraw() {
	if l.redraw != nil {
		l.redraw(l)
	}
	l.textureDirty = true
}

// DrawImage draws img onto the raster at (dx, dy), optionally scaled to
// (dw, dh). Passing 0 for dw/dh draws at img's native size.
func (l *Layer) DrawImage(img image.Image, dx, dy, dw, dh float64) {
	debugCheckDisposed(l.destroyed, "DrawImage", l.Name)
	b := img.Bounds()
	w, h := dw, dh
	if w <= 0 {
		w = float64(b.Dx())
	}
	if h <= 0 {
		h = float64(b.Dy())
	}
	src := toNRGBA(img)
	if int(w) != b.Dx() || int(h) != b.Dy() {
		src = resizeRaster(src, int(w), int(h))
	}
	dest := image.Rect(int(dx), int(dy), int(dx+w), int(dy+h)).Intersect(l.raster.Bounds())
	drawNRGBAOver(l.raster, dest, src, src.Bounds().Min.Add(dest.Min.Sub(image.Pt(int(dx), int(dy)))))
	l.textureDirty = true
}

// SetHistoryManager attaches the history manager that completed strokes are
// recorded into.
func (l *Layer) SetHistoryManager(h *HistoryManager) { l.history = h }

// GetHistoryManager returns the attached history manager, or nil.
func (l *Layer) GetHistoryManager() *HistoryManager { return l.history }

// Undo delegates to the attached history manager, a no-op if none is attached.
func (l *Layer) Undo() {
	if l.history != nil {
		l.history.Undo()
	}
}

// Redo delegates to the attached history manager, a no-op if none is attached.
func (l *Layer) Redo() {
	if l.history != nil {
		l.history.Redo()
	}
}

// CanUndo reports whether the attached history manager has an undoable command.
func (l *Layer) CanUndo() bool { return l.history != nil && l.history.CanUndo() }

// CanRedo reports whether the attached history manager has a redoable command.
func (l *Layer) CanRedo() bool { return l.history != nil && l.history.CanRedo() }

// --- stroke drawing ---

// BeginStroke starts a new stroke at the given parent-space point, capturing
// a full-raster snapshot for undo if a history manager is attached. A
// stroke already in progress (e.g. from a lost pointer-up) is discarded.
func (l *Layer) BeginStroke(px, py float64) {
	debugCheckDisposed(l.destroyed, "BeginStroke", l.Name)
	lx, ly := l.ToLocal(px, py)
	l.strokeActive = true
	l.strokePoints = l.strokePoints[:0]
	l.strokePoints = append(l.strokePoints, StrokePoint{X: lx, Y: ly})
	l.strokePressure0 = true
	if l.history != nil {
		snap := image.NewNRGBA(l.raster.Bounds())
		copy(snap.Pix, l.raster.Pix)
		l.preStrokeSnapshot = snap
	} else {
		l.preStrokeSnapshot = nil
	}
}

// Stroke appends a segment to the in-progress stroke and draws it
// immediately. A no-op if no stroke is in progress (StateViolation:
// ignored). pressure defaults to 1 when not meaningfully supplied.
func (l *Layer) Stroke(px, py float64, col Color, size float64, pressure float64, mode StrokeMode) {
	if !l.strokeActive {
		return
	}
	if pressure <= 0 {
		pressure = 1
	}
	lx, ly := l.ToLocal(px, py)

	if l.strokePressure0 {
		l.strokePoints[0].Pressure = pressure
		l.strokePressure0 = false
	}
	l.strokeColor = col
	l.strokeSize = size
	l.strokeMode = mode

	prev := l.strokePoints[len(l.strokePoints)-1]
	point := StrokePoint{X: lx, Y: ly, Pressure: pressure}
	l.strokePoints = append(l.strokePoints, point)

	l.drawSegment(prev, point, col, size, mode)
}

// drawSegment rasterizes and composites one stroke segment (or a filled
// disk, for a degenerate zero-length segment) onto the raster.
func (l *Layer) drawSegment(a, b StrokePoint, col Color, size float64, mode StrokeMode) {
	r0 := size * a.Pressure / 2
	r1 := size * b.Pressure / 2
	if r0 <= 0 && r1 <= 0 {
		return
	}
	mask := rasterizeCapsule(l.width, l.height, a.X, a.Y, r0, b.X, b.Y, r1)
	switch mode {
	case ModeEraser:
		compositeEraser(l.raster, mask)
	default:
		compositeBrush(l.raster, mask, col)
	}
	l.textureDirty = true
}

// EndStroke finalizes the in-progress stroke, recording a StrokeCommand on
// the attached history manager (if any) with alreadyApplied=true since the
// stroke was drawn live segment by segment. A no-op if no stroke is in
// progress, or if it gathered no points.
func (l *Layer) EndStroke() {
	if !l.strokeActive {
		return
	}
	l.strokeActive = false

	if len(l.strokePoints) == 0 {
		return
	}
	if len(l.strokePoints) == 1 && l.strokePoints[0].Pressure > 0 {
		// Single-point stroke: draw a filled disk at the lone point. Every
		// Stroke call appends a second point and draws its own segment, so
		// a lone BeginStroke point keeps pressure 0 and skips this branch.
		p := l.strokePoints[0]
		l.drawSegment(p, p, l.strokeColor, l.strokeSize, l.strokeMode)
	}

	if l.history == nil {
		l.strokePoints = nil
		l.preStrokeSnapshot = nil
		return
	}

	points := make([]StrokePoint, len(l.strokePoints))
	copy(points, l.strokePoints)

	cmd := newStrokeCommand(l, points, l.strokeColor, l.strokeSize, l.strokeMode, l.preStrokeSnapshot, time.Now())
	l.history.AddCommand(cmd)

	l.strokePoints = nil
	l.preStrokeSnapshot = nil
}

// CropTo crops the raster to (w,h), retaining the top-left region and
// discarding pixels outside it (or padding with transparency if larger).
func (l *Layer) CropTo(w, h int) {
	l.raster = cropRaster(l.raster, w, h)
	l.width, l.height = w, h
	l.texture = nil
	l.textureDirty = true
}

// ResizeTo rescales the raster to (w,h) using bilinear filtering.
func (l *Layer) ResizeTo(w, h int) {
	l.raster = resizeRaster(l.raster, w, h)
	l.width, l.height = w, h
	l.texture = nil
	l.textureDirty = true
}

// Destroy releases the layer's GPU texture and decoded-source reference.
// The layer must not be used afterward (checked via debugCheckDisposed when
// Debug is enabled).
func (l *Layer) Destroy() {
	if l.texture != nil {
		l.texture.Deallocate()
		l.texture = nil
	}
	if l.sourceRef != nil {
		_ = l.sourceRef.Close()
		l.sourceRef = nil
	}
	l.destroyed = true
}

// --- bitmap layers ---

// BitmapSource supplies image bytes for an asynchronously decoded bitmap
// layer.
type BitmapSource interface {
	// Open returns a reader over the encoded image bytes. The caller closes
	// the returned ReadCloser.
	Open() (io.ReadCloser, error)
}

// FileSource reads an encoded image from a local file path.
type FileSource string

func (f FileSource) Open() (io.ReadCloser, error) { return os.Open(string(f)) }

// URLSource fetches an encoded image over HTTP(S).
type URLSource string

func (u URLSource) Open() (io.ReadCloser, error) {
	resp, err := http.Get(string(u))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %s", string(u), resp.Status)
	}
	return resp.Body, nil
}

// BytesSource decodes an image already resident in memory.
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// BitmapLayerResult is delivered on NewBitmapLayerAsync's channel once
// decoding completes. Err is an *EngineError with Kind ErrImageLoadFailed
// on failure, in which case Layer is nil and no layer was added to any stack.
type BitmapLayerResult struct {
	Layer *Layer
	Err   error
}

// NewBitmapLayerAsync decodes source in a background goroutine (the one
// permitted suspension point outside the frame loop) and delivers the
// resulting layer, or a failure, on the returned channel.
func NewBitmapLayerAsync(id, name string, source BitmapSource) <-chan BitmapLayerResult {
	ch := make(chan BitmapLayerResult, 1)
	go func() {
		img, err := decodeBitmapSource(source)
		if err != nil {
			ch <- BitmapLayerResult{Err: &EngineError{Kind: ErrImageLoadFailed, Message: "decode bitmap source", Cause: err}}
			return
		}
		b := img.Bounds()
		l := newLayerBase(id, name, KindBitmap)
		l.width, l.height = b.Dx(), b.Dy()
		l.raster = toNRGBA(img)
		l.textureDirty = true
		ch <- BitmapLayerResult{Layer: l}
	}()
	return ch
}

// SetSource replaces the bitmap layer's dimensions and content by decoding a
// new source asynchronously; the previous content remains visible until
// decoding completes.
func (l *Layer) SetSource(source BitmapSource) <-chan error {
	ch := make(chan error, 1)
	go func() {
		img, err := decodeBitmapSource(source)
		if err != nil {
			ch <- &EngineError{Kind: ErrImageLoadFailed, Message: "decode bitmap source", Cause: err}
			return
		}
		b := img.Bounds()
		l.raster = toNRGBA(img)
		l.width, l.height = b.Dx(), b.Dy()
		l.texture = nil
		l.textureDirty = true
		ch <- nil
	}()
	return ch
}

func decodeBitmapSource(source BitmapSource) (image.Image, error) {
	rc, err := source.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	drawNRGBAOver(dst, dst.Bounds(), img, b.Min)
	return dst
}
