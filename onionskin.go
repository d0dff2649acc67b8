package flipbook

// DefaultOnionOpacity is the ghost strength of the onion-skin overlay.
const DefaultOnionOpacity = 0.3

// OnionSkin renders a drawing aid: the previous frame's composite laid
// over the current one at reduced opacity. It only reads composites and
// never mutates them; shells show it while stopped and hide it during
// playback.
type OnionSkin struct {
	store   *Store
	Opacity float64
}

// NewOnionSkin creates an overlay for the store at DefaultOnionOpacity.
func NewOnionSkin(store *Store) *OnionSkin {
	return &OnionSkin{store: store, Opacity: DefaultOnionOpacity}
}

// Render returns a new image of the current frame's composite with the
// previous frame ghosted over it. The first frame has no previous frame,
// so its composite is returned unghosted (as a copy either way).
func (o *OnionSkin) Render() *Pixmap {
	idx := o.store.CurrentIndex()
	current := o.store.Current().Composite().Clone()
	if idx == 0 {
		return current
	}
	prev, err := o.store.Frame(idx - 1)
	if err != nil {
		return current
	}
	overlayGhost(current, prev.Composite(), o.Opacity)
	return current
}

// overlayGhost composites src over dst with its alpha scaled by opacity.
// Scaling premultiplied pixels is a uniform multiply of all four bytes.
func overlayGhost(dst, src *Pixmap, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	sd := src.Data()
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			i := (y*src.Width() + x) * 4
			c := RGBA{
				R: float64(sd[i+0]) / 255,
				G: float64(sd[i+1]) / 255,
				B: float64(sd[i+2]) / 255,
				A: float64(sd[i+3]) / 255,
			}
			// Bytes are premultiplied; unpremultiply before BlendPixel's
			// straight-alpha contract.
			if c.A > 0 {
				c.R /= c.A
				c.G /= c.A
				c.B /= c.A
			}
			dst.BlendPixel(x, y, c, opacity)
		}
	}
}
