package paintview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

const capsuleCircleSegments = 20

// rasterizeCapsule builds an antialiased coverage mask for a round-capped
// line segment from (x0,y0) to (x1,y1) with the given radius at each end,
// sized to (w,h). A zero-length segment (a single-point stroke) degenerates
// to a filled disk. The mask is built from a rectangle plus two full circles
// wound the same direction in one Rasterizer pass, so overlap between the
// pieces saturates at full coverage instead of cancelling out.
func rasterizeCapsule(w, h int, x0, y0, r0, x1, y1, r1 float64) *image.Alpha {
	z := vector.NewRasterizer(w, h)

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)

	if length < 1e-9 {
		r := r0
		if r1 > r {
			r = r1
		}
		addCircle(z, x0, y0, r)
	} else {
		nx, ny := -dy/length, dx/length // unit perpendicular

		// Quad connecting the two offset edges, same winding both sides.
		z.MoveTo(float32(x0+nx*r0), float32(y0+ny*r0))
		z.LineTo(float32(x1+nx*r1), float32(y1+ny*r1))
		z.LineTo(float32(x1-nx*r1), float32(y1-ny*r1))
		z.LineTo(float32(x0-nx*r0), float32(y0-ny*r0))
		z.ClosePath()

		addCircle(z, x0, y0, r0)
		addCircle(z, x1, y1, r1)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})
	return mask
}

func addCircle(z *vector.Rasterizer, cx, cy, r float64) {
	if r <= 0 {
		return
	}
	z.MoveTo(float32(cx+r), float32(cy))
	for i := 1; i <= capsuleCircleSegments; i++ {
		theta := -2 * math.Pi * float64(i) / capsuleCircleSegments
		z.LineTo(float32(cx+r*math.Cos(theta)), float32(cy+r*math.Sin(theta)))
	}
	z.ClosePath()
}

// compositeBrush applies src-over blending of col onto raster, modulated by
// mask's per-pixel coverage. raster is non-premultiplied (image.NRGBA).
func compositeBrush(raster *image.NRGBA, mask *image.Alpha, col Color) {
	bounds := raster.Bounds().Intersect(mask.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			coverage := float64(mask.AlphaAt(x, y).A) / 255
			if coverage <= 0 {
				continue
			}
			srcA := clamp01(col.A) * coverage

			idx := raster.PixOffset(x, y)
			dstR := float64(raster.Pix[idx+0]) / 255
			dstG := float64(raster.Pix[idx+1]) / 255
			dstB := float64(raster.Pix[idx+2]) / 255
			dstA := float64(raster.Pix[idx+3]) / 255

			outA := srcA + dstA*(1-srcA)
			var outR, outG, outB float64
			if outA > 0 {
				outR = (col.R*srcA + dstR*dstA*(1-srcA)) / outA
				outG = (col.G*srcA + dstG*dstA*(1-srcA)) / outA
				outB = (col.B*srcA + dstB*dstA*(1-srcA)) / outA
			}

			raster.Pix[idx+0] = uint8(clamp01(outR) * 255)
			raster.Pix[idx+1] = uint8(clamp01(outG) * 255)
			raster.Pix[idx+2] = uint8(clamp01(outB) * 255)
			raster.Pix[idx+3] = uint8(clamp01(outA) * 255)
		}
	}
}

// compositeEraser applies destination-out blending onto raster, modulated by
// mask's per-pixel coverage: it reduces alpha without touching RGB, which
// neither ebiten's Blend presets nor golang.org/x/image/draw expose at the
// sub-image, software-raster granularity this needs.
func compositeEraser(raster *image.NRGBA, mask *image.Alpha) {
	bounds := raster.Bounds().Intersect(mask.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			coverage := float64(mask.AlphaAt(x, y).A) / 255
			if coverage <= 0 {
				continue
			}
			idx := raster.PixOffset(x, y)
			dstA := float64(raster.Pix[idx+3]) / 255
			newA := dstA * (1 - coverage)
			raster.Pix[idx+3] = uint8(clamp01(newA) * 255)
		}
	}
}
