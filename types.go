package paintview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is fully opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is fully transparent black, the zero value.
var ColorTransparent = Color{}

// toRGBA converts a Color to a color.RGBA (premultiplied), for ebiten.Image.Fill.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements color.Color for image.Fill without importing image/color
// just for this conversion.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := minF(r.X, other.X)
	minY := minF(r.Y, other.Y)
	maxX := maxF(r.X+r.Width, other.X+other.Width)
	maxY := maxF(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersection returns the overlapping area of r and other. The result has
// zero width/height if the rectangles do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	x0 := maxF(r.X, other.X)
	y0 := maxF(r.Y, other.Y)
	x1 := minF(r.X+r.Width, other.X+other.Width)
	y1 := minF(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// BlendMode selects the compositing operation used when a layer is drawn
// onto its plane. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendErase                     // destination-out (punch transparent holes, used by the eraser)
	BlendBelow                     // destination-over (draw behind existing content)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendBelow:
		return ebiten.BlendDestinationOver
	default:
		return ebiten.BlendSourceOver
	}
}

// Anchor selects the local-space origin used by a layer's pose transform.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorCenter
)

// LayerSpace selects whether a layer's pose is interpreted in document
// (world) coordinates or fixed to the viewport (screen) coordinates.
type LayerSpace uint8

const (
	SpaceWorld LayerSpace = iota
	SpaceScreen
)

// LayerKind discriminates the behavior of a Layer.
type LayerKind uint8

const (
	KindCanvas  LayerKind = iota // procedural/paintable raster, drawn via a redraw callback and stroke ops
	KindBitmap                   // CanvasLayer pre-filled from a decoded source image
	KindOverlay                  // screen-space, non-history, drawn via a user callback every frame
)

// StrokeMode selects how Layer.Stroke composites new ink onto the raster.
type StrokeMode uint8

const (
	ModeBrush  StrokeMode = iota // source-over with the given color
	ModeEraser                   // destination-out (punches transparent holes)
)

// PanClampMode selects how ViewController.SetDocumentRect restricts panning.
type PanClampMode uint8

const (
	// PanClampMinVisible keeps at least Config.MinVisiblePx of the document
	// rect's width and height visible, allowing the document to be panned
	// mostly out of view but never completely. The zero value.
	PanClampMinVisible PanClampMode = iota
	// PanClampMargin centers the document rect on an axis where it fits
	// inside the margin-reduced viewport; on an axis where it is larger, it
	// keeps the document's edges at or beyond the margins.
	PanClampMargin
)

// FitMode controls how ZoomDocumentToFit chooses a zoom level.
type FitMode uint8

const (
	FitContain   FitMode = iota // scale so the whole document rect fits with no cropping
	FitCover                    // scale so the document rect fills the viewport, cropping overflow
	FitWidth                    // scale so the document rect's width fills the available width
	FitHeight                   // scale so the document rect's height fills the available height
)

// PixelColor is the result of a pixel-color read, in straight
// (non-premultiplied) form: R/G/B are 0-255, A is normalized to [0,1].
type PixelColor struct {
	R, G, B uint8
	A       float64
}

// Hex returns the color's RGB channels as a "#rrggbb" string, ignoring alpha.
func (c PixelColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the color as a CSS-style "rgba(r,g,b,a.3f)" string.
func (c PixelColor) RGBA() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, c.A)
}

// Margins specifies extra clamp allowance on each side of the document rect,
// in CSS pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// StrokePoint is one sample of a brush or eraser stroke, in layer-local
// coordinates, carrying the input device's normalized pressure.
type StrokePoint struct {
	X, Y     float64
	Pressure float64
}
