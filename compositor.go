package flipbook

// Flatten merges an ordered layer stack onto an opaque white background
// using source-over blending, bottom layer first. The result is a new
// buffer; the layers are not touched.
//
// The blend runs in integer premultiplied space, so the output is
// bit-identical for identical inputs — composites can be compared and
// cached by value.
func Flatten(layers [LayerCount]*Pixmap) *Pixmap {
	out := NewPixmapFilled(layers[0].Width(), layers[0].Height(), White)
	for _, layer := range layers {
		out.Blit(layer, 0, 0)
	}
	return out
}
