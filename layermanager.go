package paintview

// LayerManager holds an ordered stack of layers for one rendering plane and
// renders them back-to-front: index 0 draws first, the last layer draws on
// top. Hit testing walks in the opposite
// order, so the topmost layer wins.
type LayerManager struct {
	layers []*Layer
}

// NewContentLayerManager creates a LayerManager intended to back a
// ViewController's content plane (world-space layers, typically painted
// with Config.ContentRender set to its RenderAllLayersIn method).
func NewContentLayerManager() *LayerManager { return &LayerManager{} }

// NewOverlayLayerManager creates a LayerManager intended to back a
// ViewController's overlay plane (screen-space layers, typically painted
// with Config.OverlayRender set to its RenderAllLayersIn method).
func NewOverlayLayerManager() *LayerManager { return &LayerManager{} }

// AddLayer inserts layer at position insertAt if it is a valid index,
// otherwise appends it to the top of the stack. Returns the layer's ID.
func (m *LayerManager) AddLayer(layer *Layer, insertAt int) string {
	if insertAt >= 0 && insertAt <= len(m.layers) {
		m.layers = append(m.layers, nil)
		copy(m.layers[insertAt+1:], m.layers[insertAt:])
		m.layers[insertAt] = layer
	} else {
		m.layers = append(m.layers, layer)
	}
	return layer.ID
}

// RemoveLayer destroys and removes the layer with the given ID. A no-op if
// no such layer exists.
func (m *LayerManager) RemoveLayer(id string) {
	for i, l := range m.layers {
		if l.ID == id {
			l.Destroy()
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return
		}
	}
}

// GetLayer returns the layer with the given ID, or nil if not found.
func (m *LayerManager) GetLayer(id string) *Layer {
	for _, l := range m.layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// GetAllLayers returns a snapshot of the stack in draw order (bottom to top).
func (m *LayerManager) GetAllLayers() []*Layer {
	out := make([]*Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// RenderAllLayersIn draws every visible, non-transparent layer in stack
// order into rc.Dest using rc.Transform. Matches the ContentRenderFunc and
// OverlayRenderFunc signatures, so it can be assigned directly to
// Config.ContentRender / Config.OverlayRender.
func (m *LayerManager) RenderAllLayersIn(rc RenderContext) {
	for _, l := range m.layers {
		if !l.Visible || l.Opacity <= 0 {
			continue
		}
		l.Render(rc)
	}
}

// HitTest walks the stack top-first and returns the first layer whose
// HitTest matches (x, y), or nil if none do.
func (m *LayerManager) HitTest(x, y float64) *Layer {
	for i := len(m.layers) - 1; i >= 0; i-- {
		if m.layers[i].HitTest(x, y) {
			return m.layers[i]
		}
	}
	return nil
}

// Destroy destroys every layer in the stack and empties it.
func (m *LayerManager) Destroy() {
	for _, l := range m.layers {
		l.Destroy()
	}
	m.layers = nil
}
