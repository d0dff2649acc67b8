package flipbook

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestPixmapNew(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 {
		t.Fatalf("dimensions = %d×%d", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 4*3*4 {
		t.Fatalf("data length = %d, want %d", len(pm.Data()), 4*3*4)
	}
	if got := pm.GetPixel(0, 0); got != Transparent {
		t.Errorf("new pixmap pixel = %+v, want transparent", got)
	}
}

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(10, 10)
	tests := []struct {
		name string
		c    RGBA
	}{
		{"opaque red", Red},
		{"opaque white", White},
		{"half green", RGBA{G: 1, A: 0.5}},
		{"transparent", Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm.SetPixel(3, 4, tt.c)
			got := pm.GetPixel(3, 4)
			if !colorsClose(got, tt.c, 0.01) {
				t.Errorf("round trip = %+v, want %+v", got, tt.c)
			}
		})
	}

	// Out of bounds is silent on write, transparent on read.
	pm.SetPixel(-1, 0, Red)
	pm.SetPixel(10, 0, Red)
	if got := pm.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-bounds read = %+v", got)
	}
}

func TestPixmapPremultipliedStorage(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetPixel(0, 0, RGBA{R: 1, G: 1, B: 1, A: 0.5})
	d := pm.Data()
	// Half-alpha white stores as ~(127, 127, 127, 127).
	for i := 0; i < 4; i++ {
		if d[i] != 127 {
			t.Errorf("byte %d = %d, want 127", i, d[i])
		}
	}
}

func TestPixmapBlendPixel(t *testing.T) {
	pm := NewPixmapFilled(2, 2, White)
	pm.BlendPixel(0, 0, Black, 1)
	if got := pm.GetPixel(0, 0); !colorsClose(got, Black, 0.01) {
		t.Errorf("full-coverage blend = %+v, want black", got)
	}
	pm.BlendPixel(1, 1, Black, 0.5)
	got := pm.GetPixel(1, 1)
	if math.Abs(got.R-0.5) > 0.01 {
		t.Errorf("half-coverage blend R = %v, want ~0.5", got.R)
	}
	before := pm.Clone()
	pm.BlendPixel(0, 1, Red, 0)
	if !pm.Equal(before) {
		t.Error("zero-coverage blend mutated the pixmap")
	}
}

func TestPixmapErasePixel(t *testing.T) {
	pm := NewPixmapFilled(2, 1, Red)
	pm.ErasePixel(0, 0, 1)
	if got := pm.GetPixel(0, 0); got != Transparent {
		t.Errorf("full erase = %+v, want transparent", got)
	}
	pm.ErasePixel(1, 0, 0.5)
	if got := pm.GetPixel(1, 0).A; math.Abs(got-0.5) > 0.01 {
		t.Errorf("half erase alpha = %v, want ~0.5", got)
	}
}

func TestPixmapFillSpan(t *testing.T) {
	pm := NewPixmap(10, 3)
	pm.FillSpan(-5, 15, 1, Blue) // clipped both sides
	for x := 0; x < 10; x++ {
		if got := pm.GetPixel(x, 1); !colorsClose(got, Blue, 0.01) {
			t.Fatalf("pixel (%d, 1) = %+v, want blue", x, got)
		}
	}
	if got := pm.GetPixel(0, 0); got != Transparent {
		t.Error("FillSpan leaked onto another row")
	}
	pm.FillSpan(0, 10, 5, Red) // off-buffer row is a no-op
}

func TestPixmapBlit(t *testing.T) {
	dst := NewPixmapFilled(4, 4, White)
	src := NewPixmapFilled(2, 2, Red)

	dst.Blit(src, 1, 1)
	if got := dst.GetPixel(1, 1); !colorsClose(got, Red, 0.01) {
		t.Errorf("blitted pixel = %+v, want red", got)
	}
	if got := dst.GetPixel(0, 0); !colorsClose(got, White, 0.01) {
		t.Errorf("untouched pixel = %+v, want white", got)
	}

	// Clipping: partially off the edge must not panic or wrap.
	dst.Blit(src, 3, 3)
	dst.Blit(src, -1, -1)
	if got := dst.GetPixel(3, 3); !colorsClose(got, Red, 0.01) {
		t.Errorf("corner blit = %+v, want red", got)
	}

	// Transparent source leaves the destination alone (source-over).
	before := dst.Clone()
	dst.Blit(NewPixmap(4, 4), 0, 0)
	if !dst.Equal(before) {
		t.Error("transparent blit mutated the destination")
	}
}

func TestPixmapCloneIndependence(t *testing.T) {
	pm := NewPixmapFilled(3, 3, Green)
	c := pm.Clone()
	if !pm.Equal(c) {
		t.Fatal("clone differs from original")
	}
	c.SetPixel(0, 0, Red)
	if pm.Equal(c) {
		t.Error("mutating the clone changed the original")
	}
}

func TestPixmapCopyFrom(t *testing.T) {
	dst := NewPixmap(3, 3)
	src := NewPixmapFilled(3, 3, Blue)
	dst.CopyFrom(src)
	if !dst.Equal(src) {
		t.Error("CopyFrom did not copy")
	}

	// Mismatched dimensions are ignored.
	other := NewPixmapFilled(2, 2, Red)
	dst.CopyFrom(other)
	if !dst.Equal(src) {
		t.Error("mismatched CopyFrom mutated the destination")
	}
}

func TestPixmapImageRoundTrip(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(1, 2, Red)
	pm.SetPixel(3, 3, RGBA{B: 1, A: 0.5})

	back := FromImage(pm.ToImage())
	if !pm.Equal(back) {
		t.Error("ToImage/FromImage round trip lost data")
	}
}

func TestPixmapFromImageGeneric(t *testing.T) {
	// A non-RGBA image exercises the slow per-pixel path.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	pm := FromImage(img)
	if got := pm.GetPixel(0, 0); !colorsClose(got, Red, 0.01) {
		t.Errorf("pixel = %+v, want red", got)
	}
	if got := pm.GetPixel(1, 1); got != Transparent {
		t.Errorf("pixel = %+v, want transparent", got)
	}
}

func TestPixmapDrawImage(t *testing.T) {
	// Pixmap satisfies image.Image and draw.Image.
	pm := NewPixmap(2, 2)
	pm.Set(0, 0, color.RGBA{R: 255, A: 255})
	if got := pm.At(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("At = %+v", got)
	}
	if got := pm.Bounds(); got != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds = %+v", got)
	}
}
