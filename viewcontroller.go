package paintview

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderContext is passed to a host's content/overlay render callback. It
// stands in for an HTML canvas 2D context that already has its transform set:
// Dest is the destination surface and Transform is the world (content plane)
// or identity (overlay plane) affine matrix. Dest itself carries no
// transform — host code draws into Dest using Transform to place world-space
// geometry, the same role DrawImageOptions.GeoM plays for a single DrawImage
// call.
type RenderContext struct {
	Dest      *ebiten.Image
	Transform Affine
}

// ContentRenderFunc renders the content plane. Typically the
// RenderAllLayersIn method of a LayerManager from NewContentLayerManager.
type ContentRenderFunc func(rc RenderContext)

// OverlayRenderFunc renders the overlay plane, analogous to ContentRenderFunc
// but called with an identity transform.
type OverlayRenderFunc func(rc RenderContext)

// Config holds the tunable constants of the animation loop and the host's
// render callbacks. Zero-value fields are replaced by defaults in
// NewViewController.
type Config struct {
	MinZoom          float64 // default 0.5
	MaxZoom          float64 // default 10
	WheelSensitivity float64 // pixel-delta -> log-zoom-step, default 0.0015
	ApproachKZoom    float64 // per-ms zoom ease rate, default 0.022
	ApproachKPan     float64 // per-ms reset ease rate, default 0.022
	Friction         float64 // per-16ms inertia decay, default 0.92
	StopSpeed        float64 // CSS px/ms, below which inertia snaps to 0, default 0.02
	EMAAlpha         float64 // drag velocity smoothing factor, default 0.25
	IdleNoInertia    time.Duration // default 120ms
	AutoResize       bool
	Background       *Color // nil selects the default, opaque white; a Color with A == 0 leaves the content plane transparent
	DrawDocBorder    bool
	MinVisiblePx     float64      // default 30
	ClampMode        PanClampMode // default PanClampMinVisible
	DPR              float64      // device pixel ratio, default 1

	ContentRender ContentRenderFunc
	OverlayRender OverlayRenderFunc
}

func (c *Config) sanitize() {
	if c.MinZoom == 0 {
		c.MinZoom = 0.5
	} else if c.MinZoom < 0 {
		c.MinZoom = 1e-8
	}
	if c.MaxZoom <= 0 {
		c.MaxZoom = 10
	}
	if c.MaxZoom < c.MinZoom {
		c.MinZoom, c.MaxZoom = c.MaxZoom, c.MinZoom
	}
	if c.WheelSensitivity == 0 {
		c.WheelSensitivity = 0.0015
	}
	if c.ApproachKZoom == 0 {
		c.ApproachKZoom = 0.022
	}
	if c.ApproachKPan == 0 {
		c.ApproachKPan = 0.022
	}
	if c.Friction == 0 {
		c.Friction = 0.92
	}
	if c.StopSpeed == 0 {
		c.StopSpeed = 0.02
	}
	if c.EMAAlpha == 0 {
		c.EMAAlpha = 0.25
	}
	if c.IdleNoInertia == 0 {
		c.IdleNoInertia = 120 * time.Millisecond
	}
	if c.Background == nil {
		c.Background = &Color{1, 1, 1, 1}
	}
	if c.MinVisiblePx <= 0 {
		c.MinVisiblePx = 30
	}
	if c.DPR <= 0 {
		c.DPR = 1
	}
}

// ViewController owns the camera (zoom, pan, DPR), the three drawing
// surfaces, the optional document rectangle and its pan-clamp policy, and
// the translation from screen pixels to world coordinates.
type ViewController struct {
	cfg Config

	// camera state, kept in log-space per §3 so exponential easing is uniform
	currentLogZ, targetLogZ float64
	tx, ty                  float64
	anchorX, anchorY        float64
	vx, vy                  float64

	dragging   bool
	resetting  bool
	panEnabled bool
	zoomEnabled bool

	lastDragX, lastDragY float64
	lastMoveAt           time.Time

	docEnabled bool
	docRect    Rect
	margins    Margins

	cssWidth, cssHeight float64

	finalSurface, contentSurface, overlaySurface *ebiten.Image

	lastTickDuration time.Duration
}

// NewViewController constructs a ViewController sized to the given CSS pixel
// dimensions. Returns an error (ContextUnavailable) if the dimensions cannot
// back a real drawing surface.
func NewViewController(cssWidth, cssHeight float64, cfg Config) (*ViewController, error) {
	if cssWidth <= 0 || cssHeight <= 0 {
		return nil, &EngineError{Kind: ErrContextUnavailable, Message: "viewport dimensions must be positive"}
	}
	cfg.sanitize()
	if cfg.MinVisiblePx > cssWidth {
		cfg.MinVisiblePx = math.Max(cssWidth-5, 0)
	}

	v := &ViewController{
		cfg:         cfg,
		targetLogZ:  0,
		panEnabled:  true,
		zoomEnabled: true,
		cssWidth:    cssWidth,
		cssHeight:   cssHeight,
	}
	v.allocateSurfaces()
	return v, nil
}

func (v *ViewController) devicePixels(cssW, cssH float64) (int, int) {
	w := int(math.Floor(cssW * v.cfg.DPR))
	h := int(math.Floor(cssH * v.cfg.DPR))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (v *ViewController) allocateSurfaces() {
	w, h := v.devicePixels(v.cssWidth, v.cssHeight)
	v.finalSurface = ebiten.NewImage(w, h)
	v.contentSurface = ebiten.NewImage(w, h)
	v.overlaySurface = ebiten.NewImage(w, h)
}

// Zoom returns the current zoom factor exp(currentLogZ).
func (v *ViewController) Zoom() float64 { return math.Exp(v.currentLogZ) }

// Pan returns the current CSS-pixel translation.
func (v *ViewController) Pan() (tx, ty float64) { return v.tx, v.ty }

// FinalSurface returns the composited surface the host should present.
func (v *ViewController) FinalSurface() *ebiten.Image { return v.finalSurface }

// --- document region ---

// SetDocumentRect installs a world-space document rectangle that governs pan
// clamping.
func (v *ViewController) SetDocumentRect(x, y, w, h float64) {
	v.docEnabled = true
	v.docRect = Rect{X: x, Y: y, Width: w, Height: h}
}

// ClearDocumentRect removes the document rectangle; panning becomes unclamped.
func (v *ViewController) ClearDocumentRect() {
	v.docEnabled = false
}

// SetDocumentMargins sets the screen-pixel margins used by pan clamping.
func (v *ViewController) SetDocumentMargins(m Margins) {
	v.margins = m
}

// SetPanClampMode selects the margin or minVisible clamp policy.
func (v *ViewController) SetPanClampMode(mode PanClampMode) {
	v.cfg.ClampMode = mode
}

// SetPanEnabled enables or disables panning. Disabling terminates any
// in-flight drag and zeroes inertia.
func (v *ViewController) SetPanEnabled(enabled bool) {
	v.panEnabled = enabled
	if !enabled {
		v.dragging = false
		v.vx, v.vy = 0, 0
	}
}

// SetZoomEnabled enables or disables zoom input.
func (v *ViewController) SetZoomEnabled(enabled bool) {
	v.zoomEnabled = enabled
}

// --- zoom ---

func (v *ViewController) clampLogZ(logZ float64) float64 {
	if math.IsNaN(logZ) || math.IsInf(logZ, 0) {
		return v.targetLogZ
	}
	minLog := math.Log(v.cfg.MinZoom)
	maxLog := math.Log(v.cfg.MaxZoom)
	if logZ < minLog {
		return minLog
	}
	if logZ > maxLog {
		return maxLog
	}
	return logZ
}

// ZoomToAtScreen smoothly retargets to absolute zoom z, anchored at the CSS
// point (ax, ay).
func (v *ViewController) ZoomToAtScreen(ax, ay, z float64) {
	if !v.zoomEnabled || z <= 0 {
		return
	}
	v.anchorX, v.anchorY = ax, ay
	v.targetLogZ = v.clampLogZ(math.Log(z))
}

// ZoomToAtScreenRaw snaps immediately to absolute zoom z, anchored at (ax, ay),
// then applies the document clamp instantly.
func (v *ViewController) ZoomToAtScreenRaw(ax, ay, z float64) {
	if !v.zoomEnabled || z <= 0 {
		return
	}
	prevZ := v.Zoom()
	v.anchorX, v.anchorY = ax, ay
	v.currentLogZ = v.clampLogZ(math.Log(z))
	v.targetLogZ = v.currentLogZ
	v.applyAnchorCompensation(prevZ, v.Zoom())
	if v.docEnabled {
		v.clampDocumentPan()
	}
}

// ZoomByFactorAtScreen sets the target zoom to the current zoom times f,
// anchored at (ax, ay).
func (v *ViewController) ZoomByFactorAtScreen(ax, ay, f float64) {
	v.ZoomToAtScreen(ax, ay, v.Zoom()*f)
}

// ZoomByFactorAtWorld sets the target zoom to the current zoom times f,
// anchored at the screen point currently under world coordinate (wx, wy).
func (v *ViewController) ZoomByFactorAtWorld(wx, wy, f float64) {
	ax, ay := v.ToScreen(wx, wy)
	v.ZoomToAtScreen(ax, ay, v.Zoom()*f)
}

// ZoomDocumentToFit computes the zoom that fits the document within the
// margin-reduced viewport per mode, clamps it, and centers the document.
// Both current and target zoom are snapped — there is no animation.
func (v *ViewController) ZoomDocumentToFit(mode FitMode) {
	if !v.docEnabled || v.docRect.Width <= 0 || v.docRect.Height <= 0 {
		return
	}
	availW := v.cssWidth - v.margins.Left - v.margins.Right
	availH := v.cssHeight - v.margins.Top - v.margins.Bottom
	if availW <= 0 || availH <= 0 {
		return
	}
	scaleW := availW / v.docRect.Width
	scaleH := availH / v.docRect.Height

	var z float64
	switch mode {
	case FitCover:
		z = math.Max(scaleW, scaleH)
	case FitWidth:
		z = scaleW
	case FitHeight:
		z = scaleH
	default: // FitContain
		z = math.Min(scaleW, scaleH)
	}
	z = math.Exp(v.clampLogZ(math.Log(z)))

	v.currentLogZ = math.Log(z)
	v.targetLogZ = v.currentLogZ

	docCX := v.docRect.X + v.docRect.Width/2
	docCY := v.docRect.Y + v.docRect.Height/2
	viewportCX := v.margins.Left + availW/2
	viewportCY := v.margins.Top + availH/2
	v.tx = viewportCX - docCX*z
	v.ty = viewportCY - docCY*z
}

// ResetSmooth begins an eased return to zoom=1, pan=(0,0).
func (v *ViewController) ResetSmooth() {
	v.resetting = true
	v.targetLogZ = 0
}

// ResetInstant snaps immediately to zoom=1, pan=(0,0).
func (v *ViewController) ResetInstant() {
	v.resetting = false
	v.currentLogZ = 0
	v.targetLogZ = 0
	v.tx, v.ty = 0, 0
	v.vx, v.vy = 0, 0
}

func (v *ViewController) applyAnchorCompensation(zPrev, zNow float64) {
	if zPrev == 0 {
		return
	}
	ratio := zNow / zPrev
	v.tx = v.anchorX - (v.anchorX-v.tx)*ratio
	v.ty = v.anchorY - (v.anchorY-v.ty)*ratio
}

// --- coordinate conversion ---

// worldToScreenMatrix returns the current (a,0,0,d,tx,ty) CSS-pixel world->screen matrix.
func (v *ViewController) worldToScreenMatrix() Affine {
	z := v.Zoom()
	return Affine{z, 0, 0, z, v.tx, v.ty}
}

// ToWorld converts a CSS-pixel screen coordinate to world coordinates.
func (v *ViewController) ToWorld(x, y float64) (wx, wy float64) {
	return transformPoint(invertAffine(v.worldToScreenMatrix()), x, y)
}

// ToScreen converts a world coordinate to CSS-pixel screen coordinates.
func (v *ViewController) ToScreen(wx, wy float64) (x, y float64) {
	return transformPoint(v.worldToScreenMatrix(), wx, wy)
}

// GetPixelColorAtScreen reads the content plane at the device pixel under the
// given CSS coordinate. Out-of-range coordinates return transparent black.
func (v *ViewController) GetPixelColorAtScreen(sx, sy float64) PixelColor {
	dx := int(math.Floor(sx * v.cfg.DPR))
	dy := int(math.Floor(sy * v.cfg.DPR))
	b := v.contentSurface.Bounds()
	if dx < b.Min.X || dy < b.Min.Y || dx >= b.Max.X || dy >= b.Max.Y {
		return PixelColor{}
	}
	r, g, bl, a := v.contentSurface.At(dx, dy).RGBA()
	if a == 0 {
		return PixelColor{}
	}
	// unpremultiply: ebiten images report premultiplied 16-bit components.
	return PixelColor{
		R: uint8(unpremultiply(r, a)),
		G: uint8(unpremultiply(g, a)),
		B: uint8(unpremultiply(bl, a)),
		A: float64(a) / 0xffff,
	}
}

func unpremultiply(c, a uint32) uint32 {
	if a == 0 {
		return 0
	}
	v := c * 0xff / a
	if v > 0xff {
		return 0xff
	}
	return v
}

// GetPixelColorAtWorld reads the content plane at the world coordinate,
// converting through the current camera transform.
func (v *ViewController) GetPixelColorAtWorld(wx, wy float64) PixelColor {
	sx, sy := v.ToScreen(wx, wy)
	return v.GetPixelColorAtScreen(sx, sy)
}

// --- resize ---

// ResizeToParent synchronizes the final surface's device-pixel dimensions to
// floor(parentCSSsize * DPR) and its CSS size to parentCSSsize. Content and
// overlay surfaces are matched in size.
func (v *ViewController) ResizeToParent(parentCSSWidth, parentCSSHeight float64) {
	if parentCSSWidth <= 0 || parentCSSHeight <= 0 {
		return
	}
	if parentCSSWidth == v.cssWidth && parentCSSHeight == v.cssHeight {
		return
	}
	v.cssWidth, v.cssHeight = parentCSSWidth, parentCSSHeight
	v.finalSurface.Deallocate()
	v.contentSurface.Deallocate()
	v.overlaySurface.Deallocate()
	v.allocateSurfaces()
}

// Destroy releases the viewport's drawing surfaces. The ViewController must
// not be used afterward.
func (v *ViewController) Destroy() {
	v.finalSurface.Deallocate()
	v.contentSurface.Deallocate()
	v.overlaySurface.Deallocate()
}

// --- the animation loop ---

// Tick advances zoom easing, pan inertia, and reset-to-identity by dt, then
// applies the document pan clamp. Call once per animation frame, followed by
// Render.
func (v *ViewController) Tick(dt time.Duration) {
	start := time.Now()
	defer func() { v.lastTickDuration = time.Since(start) }()

	ms := float64(dt.Milliseconds())
	if ms < 1 {
		ms = 1
	}

	// 1. Zoom easing with anchor compensation.
	zPrev := v.Zoom()
	alpha := 1 - math.Exp(-v.cfg.ApproachKZoom*ms)
	v.currentLogZ += (v.targetLogZ - v.currentLogZ) * alpha
	zNow := v.Zoom()
	v.applyAnchorCompensation(zPrev, zNow)

	// 2. Pan inertia.
	if !v.dragging && v.panEnabled {
		v.tx += v.vx * ms
		v.ty += v.vy * ms
		v.vx *= v.cfg.Friction
		v.vy *= v.cfg.Friction
		if math.Hypot(v.vx, v.vy) < v.cfg.StopSpeed {
			v.vx, v.vy = 0, 0
		}
	} else if !v.panEnabled {
		v.vx, v.vy = 0, 0
	}

	// 3. Reset.
	if v.resetting {
		beta := 1 - math.Exp(-v.cfg.ApproachKPan*ms)
		v.tx -= v.tx * beta
		v.ty -= v.ty * beta
		if math.Abs(v.currentLogZ) < 1e-3 && math.Abs(v.tx) < 0.5 && math.Abs(v.ty) < 0.5 {
			v.currentLogZ, v.targetLogZ = 0, 0
			v.tx, v.ty = 0, 0
			v.resetting = false
		}
	}

	// 4. Document pan clamp.
	if v.docEnabled {
		v.clampDocumentPan()
	}
}

func (v *ViewController) clampDocumentPan() {
	z := v.Zoom()
	W, H := v.cssWidth, v.cssHeight
	docL, docR := v.docRect.X, v.docRect.X+v.docRect.Width
	docT, docB := v.docRect.Y, v.docRect.Y+v.docRect.Height

	switch v.cfg.ClampMode {
	case PanClampMargin:
		availW := W - v.margins.Left - v.margins.Right
		if z*v.docRect.Width <= availW {
			v.tx = v.margins.Left + (availW-z*v.docRect.Width)/2 - z*v.docRect.X
		} else {
			lo := (W - v.margins.Right) - z*docR
			hi := v.margins.Left - z*docL
			v.tx = clampF(v.tx, lo, hi)
		}
		availH := H - v.margins.Top - v.margins.Bottom
		if z*v.docRect.Height <= availH {
			v.ty = v.margins.Top + (availH-z*v.docRect.Height)/2 - z*v.docRect.Y
		} else {
			lo := (H - v.margins.Bottom) - z*docB
			hi := v.margins.Top - z*docT
			v.ty = clampF(v.ty, lo, hi)
		}
	default: // PanClampMinVisible
		minVisX := math.Min(v.cfg.MinVisiblePx, z*v.docRect.Width)
		loX := minVisX - z*docR
		hiX := (W - minVisX) - z*docL
		if loX > hiX {
			v.tx = (loX + hiX) / 2
		} else {
			v.tx = clampF(v.tx, loX, hiX)
		}
		minVisY := math.Min(v.cfg.MinVisiblePx, z*v.docRect.Height)
		loY := minVisY - z*docB
		hiY := (H - minVisY) - z*docT
		if loY > hiY {
			v.ty = (loY + hiY) / 2
		} else {
			v.ty = clampF(v.ty, loY, hiY)
		}
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render paints the content plane through the
// host's ContentRender callback (clipped to the document rect when one is
// set), paints the overlay plane through OverlayRender, then blits both onto
// the final surface.
func (v *ViewController) Render() {
	start := time.Now()
	defer func() {
		debugLogFrame(frameStats{tickTime: v.lastTickDuration, renderTime: time.Since(start)})
	}()

	z := v.Zoom()

	if v.cfg.Background != nil && v.cfg.Background.A > 0 {
		v.contentSurface.Fill(v.cfg.Background.toRGBA())
	} else {
		v.contentSurface.Clear()
	}
	v.overlaySurface.Clear()

	worldTransform := Affine{v.cfg.DPR * z, 0, 0, v.cfg.DPR * z, v.cfg.DPR * v.tx, v.cfg.DPR * v.ty}

	if v.cfg.ContentRender != nil {
		dest := v.contentSurface
		if v.docEnabled {
			dest = v.clipToDocument(dest, worldTransform)
		}
		v.cfg.ContentRender(RenderContext{Dest: dest, Transform: worldTransform})
		if v.cfg.DrawDocBorder {
			v.drawDocumentBorder(worldTransform, z)
		}
	}

	if v.cfg.OverlayRender != nil {
		v.cfg.OverlayRender(RenderContext{Dest: v.overlaySurface, Transform: identityTransform})
	}

	v.finalSurface.Clear()
	var op ebiten.DrawImageOptions
	v.finalSurface.DrawImage(v.contentSurface, &op)
	v.finalSurface.DrawImage(v.overlaySurface, &op)
}

// clipToDocument returns a sub-image of dest restricted to the document
// rectangle's device-pixel bounds, the Go analogue of a canvas clip() to the
// document path (the camera never rotates, so the clip region is always
// axis-aligned).
func (v *ViewController) clipToDocument(dest *ebiten.Image, worldTransform Affine) *ebiten.Image {
	x0, y0 := transformPoint(worldTransform, v.docRect.X, v.docRect.Y)
	x1, y1 := transformPoint(worldTransform, v.docRect.X+v.docRect.Width, v.docRect.Y+v.docRect.Height)
	b := dest.Bounds()
	rect := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).Intersect(b)
	if rect.Empty() {
		return dest
	}
	return dest.SubImage(rect).(*ebiten.Image)
}

func (v *ViewController) drawDocumentBorder(worldTransform Affine, z float64) {
	lineWidth := v.cfg.DPR / z
	x0, y0 := transformPoint(worldTransform, v.docRect.X, v.docRect.Y)
	x1, y1 := transformPoint(worldTransform, v.docRect.X+v.docRect.Width, v.docRect.Y+v.docRect.Height)
	drawRectBorder(v.contentSurface, x0, y0, x1, y1, lineWidth, Color{0, 0, 0, 0.5})
}

func drawRectBorder(dest *ebiten.Image, x0, y0, x1, y1, w float64, c Color) {
	rgba := c.toRGBA()
	drawHLine(dest, x0, x1, y0, w, rgba)
	drawHLine(dest, x0, x1, y1-w, w, rgba)
	drawVLine(dest, x0, y0, y1, w, rgba)
	drawVLine(dest, x1-w, y0, y1, w, rgba)
}

func drawHLine(dest *ebiten.Image, x0, x1, y, w float64, c colorRGBA) {
	img := ebiten.NewImage(1, 1)
	img.Fill(c)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(x1-x0, w)
	op.GeoM.Translate(x0, y)
	dest.DrawImage(img, &op)
}

func drawVLine(dest *ebiten.Image, x, y0, y1, w float64, c colorRGBA) {
	img := ebiten.NewImage(1, 1)
	img.Fill(c)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, y1-y0)
	op.GeoM.Translate(x, y0)
	dest.DrawImage(img, &op)
}

// --- wheel input ---

// WheelDeltaMode mirrors the DOM WheelEvent deltaMode enumeration.
type WheelDeltaMode uint8

const (
	WheelDeltaPixel WheelDeltaMode = iota
	WheelDeltaLine
	WheelDeltaPage
)

// WheelEvent carries a normalized scroll-wheel input.
type WheelEvent struct {
	DeltaY  float64
	Mode    WheelDeltaMode
	Ctrl    bool
	Shift   bool
	X, Y    float64 // CSS-relative coordinate of the cursor
	LineHeightPx float64 // fallback 16 when zero
	PageHeightPx float64 // fallback 800 when zero
}

// HandleWheel normalizes the event's delta, applies sensitivity and modifier
// multipliers, and retargets zoom anchored at the event's coordinate.
func (v *ViewController) HandleWheel(ev WheelEvent) {
	if !v.zoomEnabled {
		return
	}
	delta := ev.DeltaY
	switch ev.Mode {
	case WheelDeltaLine:
		lh := ev.LineHeightPx
		if lh == 0 {
			lh = 16
		}
		delta *= lh
	case WheelDeltaPage:
		ph := ev.PageHeightPx
		if ph == 0 {
			ph = 800
		}
		delta *= ph
	}
	stepLog := -delta * v.cfg.WheelSensitivity
	if ev.Ctrl {
		stepLog *= 1.6
	}
	if ev.Shift {
		stepLog *= 0.6
	}
	v.anchorX, v.anchorY = ev.X, ev.Y
	v.targetLogZ = v.clampLogZ(v.targetLogZ + stepLog)
}

// --- pointer drag (pan) ---

// PointerEvent carries a CSS-pixel pointer position for drag-to-pan input.
type PointerEvent struct {
	X, Y float64
}

// HandlePointerDown begins a pan drag if panning is enabled.
func (v *ViewController) HandlePointerDown(ev PointerEvent) {
	if !v.panEnabled {
		return
	}
	v.dragging = true
	v.vx, v.vy = 0, 0
	v.lastDragX, v.lastDragY = ev.X, ev.Y
	v.lastMoveAt = time.Now()
}

// HandlePointerMove applies drag movement to pan and updates the EMA inertia
// velocity. No-op unless a drag is in progress.
func (v *ViewController) HandlePointerMove(ev PointerEvent) {
	if !v.dragging {
		return
	}
	now := time.Now()
	dtMs := float64(now.Sub(v.lastMoveAt).Milliseconds())
	if dtMs < 1 {
		dtMs = 1
	}
	movementX := ev.X - v.lastDragX
	movementY := ev.Y - v.lastDragY
	v.tx += movementX
	v.ty += movementY

	alpha := v.cfg.EMAAlpha
	v.vx = (1-alpha)*v.vx + alpha*(movementX/dtMs)
	v.vy = (1-alpha)*v.vy + alpha*(movementY/dtMs)

	v.lastDragX, v.lastDragY = ev.X, ev.Y
	v.lastMoveAt = now
}

// HandlePointerUp ends the drag, decaying or zeroing inertia velocity based
// on how idle the pointer was before release.
func (v *ViewController) HandlePointerUp(ev PointerEvent) {
	if !v.dragging {
		return
	}
	v.dragging = false
	idle := time.Since(v.lastMoveAt)
	if idle >= v.cfg.IdleNoInertia {
		v.vx, v.vy = 0, 0
		return
	}
	decay := math.Pow(v.cfg.Friction, float64(idle.Milliseconds())/16)
	v.vx *= decay
	v.vy *= decay
	if math.Hypot(v.vx, v.vy) < v.cfg.StopSpeed {
		v.vx, v.vy = 0, 0
	}
}
