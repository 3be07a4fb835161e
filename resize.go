package paintview

import (
	"image"

	"golang.org/x/image/draw"
)

// resizeRaster returns a new raster of size (w,h) containing src scaled with
// bilinear filtering.
func resizeRaster(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// cropRaster returns a new raster of size (w,h) containing the top-left
// (w,h) region of src, padded with transparent pixels if src is smaller.
func cropRaster(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	srcRect := src.Bounds()
	copyW, copyH := w, h
	if srcRect.Dx() < copyW {
		copyW = srcRect.Dx()
	}
	if srcRect.Dy() < copyH {
		copyH = srcRect.Dy()
	}
	draw.Draw(dst, image.Rect(0, 0, copyW, copyH), src, srcRect.Min, draw.Src)
	return dst
}

// drawNRGBAOver composites src over dst within dstRect using source-over,
// starting at srcPoint in src's coordinate space.
func drawNRGBAOver(dst *image.NRGBA, dstRect image.Rectangle, src image.Image, srcPoint image.Point) {
	draw.Draw(dst, dstRect, src, srcPoint, draw.Over)
}
