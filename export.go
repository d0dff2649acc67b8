package flipbook

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/setanarut/apng"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameData is the persistence-boundary view of one frame: the composite
// and each layer encoded as PNG bytes. Storage and transport of these
// bytes belong to the external persistence collaborator; the engine only
// encodes and decodes.
type FrameData struct {
	ID        FrameID
	Composite []byte
	Layers    [LayerCount][]byte
}

// EncodeFrame serializes a frame for the persistence boundary.
func EncodeFrame(f *Frame) (FrameData, error) {
	out := FrameData{ID: f.ID()}
	var err error
	if out.Composite, err = encodePNG(f.Composite()); err != nil {
		return FrameData{}, fmt.Errorf("encode composite: %w", err)
	}
	for role := Background; role <= Foreground; role++ {
		if out.Layers[role], err = encodePNG(f.Layer(role)); err != nil {
			return FrameData{}, fmt.Errorf("encode layer %d: %w", role, err)
		}
	}
	return out, nil
}

func encodePNG(pm *Pixmap) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, pm.ToImage()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Thumbnail renders a frame's composite scaled to fit within maxW×maxH,
// preserving aspect ratio.
func Thumbnail(f *Frame, maxW, maxH int) *image.RGBA {
	src := f.Composite()
	w, h := src.Width(), src.Height()
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale > 1 {
		scale = 1
	}
	tw, th := int(float64(w)*scale), int(float64(h)*scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// ExportAPNG writes the store's frame composites as a looping APNG
// animation at the given frames-per-second.
func ExportAPNG(path string, store *Store, fps int) error {
	frames := store.Frames()
	images := make([]image.Image, len(frames))
	for i, f := range frames {
		images[i] = f.Composite().ToImage()
	}
	delay := 100 / fps // centiseconds per frame
	if delay < 1 {
		delay = 1
	}
	apng.Save(path, images, uint16(delay))
	Logger().Debug("apng exported", "path", path, "frames", len(images), "fps", fps)
	return nil
}

// StampCaption draws a caption near the bottom-left of the buffer, white
// over a black offset shadow so it reads on any artwork. Shells use this
// to burn AI-generated frame captions into exports.
func StampCaption(pm *Pixmap, caption string) {
	if caption == "" {
		return
	}
	face := basicfont.Face7x13
	margin := 8
	baseline := pm.Height() - margin
	shadow := &font.Drawer{
		Dst:  pm,
		Src:  image.NewUniform(Black.Color()),
		Face: face,
		Dot:  fixed.P(margin+1, baseline+1),
	}
	shadow.DrawString(caption)
	text := &font.Drawer{
		Dst:  pm,
		Src:  image.NewUniform(White.Color()),
		Face: face,
		Dot:  fixed.P(margin, baseline),
	}
	text.DrawString(caption)
}
