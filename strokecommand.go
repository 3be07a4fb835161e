package paintview

import (
	"image"
	"time"

	"golang.org/x/image/draw"
)

const strokeMergeWindow = 100 * time.Millisecond

// StrokeCommand is the undo/redo unit produced by Layer.EndStroke. It owns a
// pre-stroke snapshot of the affected raster region until the command exits
// both the undo and redo stacks.
type StrokeCommand struct {
	layer     *Layer
	points    []StrokePoint
	color     Color
	size      float64
	mode      StrokeMode
	bbox      image.Rectangle
	snapshot  *image.NRGBA // cropped to bbox; nil only if capture failed
	executed  bool
	timestamp time.Time
}

// newStrokeCommand builds a StrokeCommand from a just-completed stroke.
// fullSnapshot, if non-nil, is the full-raster copy captured at BeginStroke;
// it is cropped down to the computed bounding box. Since the stroke was
// already drawn live, the command starts marked executed.
func newStrokeCommand(l *Layer, points []StrokePoint, col Color, size float64, mode StrokeMode, fullSnapshot *image.NRGBA, ts time.Time) *StrokeCommand {
	bbox := strokeBoundingBox(points, size, l.width, l.height)
	cmd := &StrokeCommand{
		layer:     l,
		points:    points,
		color:     col,
		size:      size,
		mode:      mode,
		bbox:      bbox,
		executed:  true,
		timestamp: ts,
	}
	if fullSnapshot != nil {
		cmd.snapshot = cropToRect(fullSnapshot, bbox)
	}
	return cmd
}

// strokeBoundingBox unions each point's radius-expanded footprint, pads by
// 2px, and clips to the raster bounds. A stroke with no points, or whose
// padded box lies wholly outside the raster, falls back to the whole raster.
func strokeBoundingBox(points []StrokePoint, size float64, width, height int) image.Rectangle {
	full := image.Rect(0, 0, width, height)
	if len(points) == 0 {
		return full
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		r := size * p.Pressure / 2
		if p.X-r < minX {
			minX = p.X - r
		}
		if p.Y-r < minY {
			minY = p.Y - r
		}
		if p.X+r > maxX {
			maxX = p.X + r
		}
		if p.Y+r > maxY {
			maxY = p.Y + r
		}
	}
	minX -= 2
	minY -= 2
	maxX += 2
	maxY += 2

	rect := image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1).Intersect(full)
	if rect.Empty() {
		return full
	}
	return rect
}

func cropToRect(src *image.NRGBA, rect image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst
}

// Execute replays the stroke onto the layer's raster. If no snapshot was
// captured yet (a programmatically constructed, not-yet-applied command),
// it captures one from the current pixels first.
func (c *StrokeCommand) Execute() {
	if c.executed {
		return
	}
	if c.snapshot == nil {
		c.snapshot = cropToRect(c.layer.raster, c.bbox)
	}
	for i := 1; i < len(c.points); i++ {
		c.layer.drawSegment(c.points[i-1], c.points[i], c.color, c.size, c.mode)
	}
	if len(c.points) == 1 {
		c.layer.drawSegment(c.points[0], c.points[0], c.color, c.size, c.mode)
	}
	c.layer.textureDirty = true
	c.executed = true
}

// Undo restores the pre-stroke snapshot over the bounding box. If the
// snapshot is nil (pixel capture failed at the time), it falls back to
// clearing the affected rect to transparent rather than failing.
func (c *StrokeCommand) Undo() {
	if !c.executed {
		return
	}
	if c.snapshot != nil {
		draw.Draw(c.layer.raster, c.bbox, c.snapshot, image.Point{}, draw.Src)
	} else {
		draw.Draw(c.layer.raster, c.bbox, image.Transparent, image.Point{}, draw.Src)
	}
	c.layer.textureDirty = true
	c.executed = false
}

// CanMerge reports whether next is a StrokeCommand against the same layer,
// with the same color/size/mode, completed within a short window of this
// command — the signature of one continuous brush motion that crossed an
// internal endStroke/beginStroke boundary (e.g. a pressure dropout).
func (c *StrokeCommand) CanMerge(next Command) bool {
	o, ok := next.(*StrokeCommand)
	if !ok {
		return false
	}
	if o.layer != c.layer || o.color != c.color || o.size != c.size || o.mode != c.mode {
		return false
	}
	diff := o.timestamp.Sub(c.timestamp)
	if diff < 0 {
		diff = -diff
	}
	return diff <= strokeMergeWindow
}

// Merge absorbs next's points into c and returns the combined command. The
// merged snapshot is assembled so that the overlap between the two
// bounding boxes takes c's (earlier) pixel values: next's snapshot reflects
// the canvas after c's stroke already landed, so painting next's snapshot
// first and c's snapshot second over the union rect recovers the true
// pre-both-strokes state everywhere.
func (c *StrokeCommand) Merge(next Command) Command {
	o := next.(*StrokeCommand)
	union := c.bbox.Union(o.bbox)

	merged := image.NewNRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	if o.snapshot != nil {
		draw.Draw(merged, o.bbox.Sub(union.Min), o.snapshot, image.Point{}, draw.Src)
	}
	if c.snapshot != nil {
		draw.Draw(merged, c.bbox.Sub(union.Min), c.snapshot, image.Point{}, draw.Src)
	}

	c.bbox = union
	c.snapshot = merged
	c.points = append(c.points, o.points...)
	c.timestamp = o.timestamp
	return c
}
