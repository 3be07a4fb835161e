package paintview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 pose fields on a Layer simultaneously.
// Create one via the convenience constructors (TweenLayerPosition,
// TweenLayerScale, TweenLayerOpacity, TweenLayerRotation) and call Update(dt)
// each frame. If the target layer is destroyed, the group stops immediately.
//
// There is no global animation manager — hosts call Update themselves,
// typically once per Tick alongside ViewController.Tick.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Layer
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target layer has been destroyed, Done is set true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.destroyed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenLayerPosition animates layer.X and layer.Y to the given target
// coordinates over duration seconds.
func TweenLayerPosition(layer *Layer, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: layer}
	g.tweens[0] = gween.New(float32(layer.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(layer.Y), float32(toY), duration, fn)
	g.fields[0] = &layer.X
	g.fields[1] = &layer.Y
	return g
}

// TweenLayerScale animates layer.Scale to the target value over duration
// seconds.
func TweenLayerScale(layer *Layer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: layer}
	g.tweens[0] = gween.New(float32(layer.Scale), float32(to), duration, fn)
	g.fields[0] = &layer.Scale
	return g
}

// TweenLayerOpacity animates layer.Opacity to the target value over
// duration seconds.
func TweenLayerOpacity(layer *Layer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: layer}
	g.tweens[0] = gween.New(float32(layer.Opacity), float32(to), duration, fn)
	g.fields[0] = &layer.Opacity
	return g
}

// TweenLayerRotation animates layer.Rotation (radians) to the target value
// over duration seconds.
func TweenLayerRotation(layer *Layer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: layer}
	g.tweens[0] = gween.New(float32(layer.Rotation), float32(to), duration, fn)
	g.fields[0] = &layer.Rotation
	return g
}
