package flipbook

// LayerRole names one of the three stacked raster buffers of a frame,
// ordered bottom to top.
type LayerRole int

const (
	// Background is the bottom layer.
	Background LayerRole = iota
	// Middle is the default active layer for new frames.
	Middle
	// Foreground is the top layer.
	Foreground
)

// LayerCount is the fixed number of layers per frame.
const LayerCount = 3

// DefaultLayer is the layer new frames open for editing.
const DefaultLayer = Middle

// FrameID uniquely identifies a frame for the lifetime of a store.
// IDs are never reused, which is what makes the history key reliable
// across frame deletion and reinsertion.
type FrameID uint64

// Frame is one animation cell: three transparent drawing layers plus a
// cached opaque composite. The composite is recomputed after every layer
// mutation, before anyone reads it for playback, thumbnailing or onion
// skinning — it is never left stale.
type Frame struct {
	id        FrameID
	layers    [LayerCount]*Pixmap
	composite *Pixmap
}

func newFrame(id FrameID, width, height int) *Frame {
	f := &Frame{id: id}
	for i := range f.layers {
		f.layers[i] = NewPixmap(width, height)
	}
	f.composite = Flatten(f.layers)
	return f
}

// ID returns the frame's identity.
func (f *Frame) ID() FrameID { return f.id }

// Layer returns the pixel buffer for the given role. The frame owns the
// buffer; callers mutate it in place and then recompute the composite.
func (f *Frame) Layer(role LayerRole) *Pixmap {
	return f.layers[role]
}

// Composite returns the cached white-background flattening of the three
// layers. Treat it as read-only.
func (f *Frame) Composite() *Pixmap {
	return f.composite
}

// RecomputeComposite refreshes the cached composite from the layers.
func (f *Frame) RecomputeComposite() {
	f.composite = Flatten(f.layers)
}

// clone deep-copies the frame under a new identity.
func (f *Frame) clone(id FrameID) *Frame {
	out := &Frame{id: id}
	for i, l := range f.layers {
		out.layers[i] = l.Clone()
	}
	out.composite = f.composite.Clone()
	return out
}
