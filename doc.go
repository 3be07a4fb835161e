// Package paintview is an embeddable 2D viewport engine for raster editing
// applications: a camera with inertial pan and anchored log-space zoom, a
// two-plane (content + overlay) layer compositor, and a bounded undo/redo
// history for brush and eraser strokes.
//
// # Quick start
//
// [NewViewController] builds a viewport sized in CSS pixels. The host
// supplies a [ContentRenderFunc], typically a [LayerManager]'s
// RenderAllLayersIn method, which is invoked with the world transform
// already applied:
//
//	content := NewContentLayerManager()
//	v, err := NewViewController(800, 600, Config{
//		ContentRender: content.RenderAllLayersIn,
//	})
//
// Each animation frame, call [ViewController.Tick] followed by
// [ViewController.Render], then present [ViewController.FinalSurface] via
// whatever surface the host window owns.
//
// # Layers
//
// [NewCanvasLayer] creates a paintable raster. A stroke is a
// BeginStroke/Stroke.../EndStroke sequence; EndStroke records exactly one
// [StrokeCommand] on the layer's attached [HistoryManager], if any:
//
//	layer := NewCanvasLayer("sketch", "Sketch", 1024, 768, nil)
//	layer.SetHistoryManager(NewHistoryManager(50))
//	content.AddLayer(layer, -1)
//
//	layer.BeginStroke(wx, wy)
//	layer.Stroke(wx2, wy2, Color{R: 1, A: 1}, 8, 1.0, ModeBrush)
//	layer.EndStroke()
//
// [NewBitmapLayerAsync] decodes an image source in the background and
// delivers the resulting layer on a channel. [NewOverlayLayer] creates a
// screen-space layer for cursors, selection rings, and similar chrome drawn
// every frame but never recorded in history.
//
// # Document bounds and pan clamping
//
// [ViewController.SetDocumentRect] installs a world-space rectangle that
// [ViewController.ZoomDocumentToFit] frames and that pan input is clamped
// against, per [ViewController.SetPanClampMode].
package paintview
