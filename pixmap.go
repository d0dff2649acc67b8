package flipbook

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/flipbook/internal/blend"
)

// Pixmap represents a rectangular pixel buffer: the backing store of a
// layer, a composite, or a scratch computation. Pixels are stored row-major
// as 4 bytes per pixel (R, G, B, A) with premultiplied alpha, so
// len(Data()) == Width()*Height()*4 always holds.
//
// A Pixmap has exactly one logical owner at a time; it is never shared
// between layers. Use Clone to snapshot.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapFilled creates a new pixmap filled with a color.
func NewPixmapFilled(width, height int, c RGBA) *Pixmap {
	pm := NewPixmap(width, height)
	pm.Clear(c)
	return pm
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (premultiplied RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// premul converts a straight-alpha color to premultiplied storage bytes.
func premul(c RGBA) (r, g, b, a uint8) {
	return uint8(clamp255(c.R * c.A * 255)),
		uint8(clamp255(c.G * c.A * 255)),
		uint8(clamp255(c.B * c.A * 255)),
		uint8(clamp255(c.A * 255))
}

// SetPixel stores the color of a single pixel, replacing what was there.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = premul(c)
}

// GetPixel returns the straight-alpha color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	a := float64(p.data[i+3]) / 255
	if a == 0 {
		return Transparent
	}
	return RGBA{
		R: float64(p.data[i+0]) / 255 / a,
		G: float64(p.data[i+1]) / 255 / a,
		B: float64(p.data[i+2]) / 255 / a,
		A: a,
	}
}

// BlendPixel composites a straight-alpha color over a single pixel
// (source-over). A coverage factor in [0, 1] scales the source alpha;
// pass 1 for full coverage.
func (p *Pixmap) BlendPixel(x, y int, c RGBA, coverage float64) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height || coverage <= 0 {
		return
	}
	sr, sg, sb, _ := premul(c.WithAlpha(c.A * coverage))
	sa := uint8(clamp255(c.A * coverage * 255))
	i := (y*p.width + x) * 4
	blend.SourceOverPixel(p.data[i:i+4], sr, sg, sb, sa)
}

// ErasePixel removes alpha from a single pixel (destination-out).
// strength in [0, 1] is the source alpha of the erase primitive.
func (p *Pixmap) ErasePixel(x, y int, strength float64) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height || strength <= 0 {
		return
	}
	i := (y*p.width + x) * 4
	blend.DestinationOutPixel(p.data[i:i+4], uint8(clamp255(strength*255)))
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := premul(c)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// FillSpan stores a color into pixels [x1, x2) on row y, replacing what was
// there. Coordinates are clipped to the buffer.
func (p *Pixmap) FillSpan(x1, x2, y int, c RGBA) {
	if y < 0 || y >= p.height {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > p.width {
		x2 = p.width
	}
	if x1 >= x2 {
		return
	}
	r, g, b, a := premul(c)
	i := (y*p.width + x1) * 4
	for x := x1; x < x2; x++ {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
		i += 4
	}
}

// Blit composites src over p with its top-left corner at (x, y), using
// source-over blending. Regions falling outside p are clipped.
func (p *Pixmap) Blit(src *Pixmap, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		srow := sy * src.width * 4
		drow := dy * p.width * 4
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			si := srow + sx*4
			di := drow + dx*4
			blend.SourceOverPixel(p.data[di:di+4],
				src.data[si+0], src.data[si+1], src.data[si+2], src.data[si+3])
		}
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(out.data, p.data)
	return out
}

// CopyFrom overwrites the pixmap's contents with those of src.
// Both pixmaps must have identical dimensions; mismatches are ignored.
func (p *Pixmap) CopyFrom(src *Pixmap) {
	if p.width != src.width || p.height != src.height {
		return
	}
	copy(p.data, src.data)
}

// Equal reports whether two pixmaps have identical dimensions and bytes.
func (p *Pixmap) Equal(q *Pixmap) bool {
	return p.width == q.width && p.height == q.height && bytes.Equal(p.data, q.data)
}

// ToImage converts the pixmap to an image.RGBA (premultiplied, matching
// the pixmap's storage — a straight byte copy).
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == width*4 {
		copy(pm.data, rgba.Pix)
		return pm
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Set implements the draw.Image interface, letting stdlib and x/image
// drawing code target a pixmap directly.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	rc := color.RGBAModel.Convert(c).(color.RGBA)
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = rc.R, rc.G, rc.B, rc.A
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
