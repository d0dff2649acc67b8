package flipbook

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1337))
}

func countInk(pm *Pixmap) int {
	n := 0
	d := pm.Data()
	for i := 3; i < len(d); i += 4 {
		if d[i] != 0 {
			n++
		}
	}
	return n
}

func TestStrokeBrush(t *testing.T) {
	pm := NewPixmap(40, 40)
	r := NewStrokeRenderer(testRand())

	r.BeginStroke(pm, Pt(10, 20), 0, PointerMouse, DrawSettings{Tool: BrushTool{}, Color: Red, Size: 6})
	if !r.Active() {
		t.Fatal("renderer not active after BeginStroke")
	}
	r.ExtendStroke(Pt(30, 20), 0)
	if !r.EndStroke() {
		t.Fatal("EndStroke = false for a brush stroke")
	}
	if r.Active() {
		t.Error("renderer still active after EndStroke")
	}

	for _, x := range []int{10, 20, 30} {
		if got := pm.GetPixel(x, 20); !colorsClose(got, Red, 0.01) {
			t.Errorf("stroke spine (%d, 20) = %+v, want red", x, got)
		}
	}
}

func TestStrokePointOperationsInert(t *testing.T) {
	pm := NewPixmap(10, 10)
	r := NewStrokeRenderer(testRand())
	for _, tool := range []Tool{FillTool{}, PickerTool{}} {
		r.BeginStroke(pm, Pt(5, 5), 0, PointerMouse, DrawSettings{Tool: tool, Color: Red, Size: 6})
		if r.Active() {
			t.Errorf("%v opened a stroke", tool)
		}
	}
	if countInk(pm) != 0 {
		t.Error("point-operation tools left ink")
	}
	if r.EndStroke() {
		t.Error("EndStroke = true with no stroke")
	}
}

func TestStrokeExtendWithoutBegin(t *testing.T) {
	r := NewStrokeRenderer(testRand())
	r.ExtendStroke(Pt(1, 1), 0) // must not panic on a nil destination
	if r.EndStroke() {
		t.Error("EndStroke = true without a stroke")
	}
}

func TestStrokeMarkerAlpha(t *testing.T) {
	pm := NewPixmap(20, 20)
	r := NewStrokeRenderer(testRand())
	r.BeginStroke(pm, Pt(10, 10), 0, PointerMouse, DrawSettings{Tool: MarkerTool{}, Color: Black, Size: 10})
	first := pm.GetPixel(10, 10).A
	if math.Abs(first-0.5) > 0.02 {
		t.Errorf("single marker dab alpha = %v, want ~0.5", first)
	}

	// Overlap within the same stroke darkens further.
	r.ExtendStroke(Pt(10, 10), 0)
	r.EndStroke()
	if second := pm.GetPixel(10, 10).A; second <= first {
		t.Errorf("overlapping dab alpha = %v, want > %v", second, first)
	}
}

func TestStrokeEraser(t *testing.T) {
	pm := NewPixmapFilled(40, 40, Blue)
	r := NewStrokeRenderer(testRand())
	r.BeginStroke(pm, Pt(10, 20), 0, PointerMouse, DrawSettings{Tool: EraserTool{}, Color: Black, Size: 8})
	r.ExtendStroke(Pt(30, 20), 0)
	if !r.EndStroke() {
		t.Fatal("EndStroke = false for an eraser stroke")
	}
	if got := pm.GetPixel(20, 20); got != Transparent {
		t.Errorf("erased spine = %+v, want transparent", got)
	}
	if got := pm.GetPixel(20, 35); !colorsClose(got, Blue, 0.01) {
		t.Errorf("pixel away from eraser = %+v, want blue", got)
	}
}

func TestStrokeTexturedDeterministic(t *testing.T) {
	// Identical seeds yield identical jitter, hence identical pixels.
	run := func(tool Tool) *Pixmap {
		pm := NewPixmap(60, 30)
		r := NewStrokeRenderer(rand.New(rand.NewPCG(7, 7)))
		r.BeginStroke(pm, Pt(5, 15), 0.8, PointerPen, DrawSettings{Tool: tool, Color: Black, Size: 5})
		r.ExtendStroke(Pt(30, 15), 0.6)
		r.ExtendStroke(Pt(55, 15), 0.9)
		r.EndStroke()
		return pm
	}
	for _, tool := range []Tool{PencilTool{}, CrayonTool{}} {
		a, b := run(tool), run(tool)
		if !a.Equal(b) {
			t.Errorf("%v stroke not deterministic under a fixed seed", tool)
		}
		if countInk(a) == 0 {
			t.Errorf("%v stroke left no ink", tool)
		}
	}
}

func TestStrokeTexturedSpacing(t *testing.T) {
	// The crayon resamples at 2px; many tiny move samples must not stamp a
	// dot per sample. Compare ink against one dot's worth of pixels: a
	// 25px path at a 2px step stamps ~12 dots, far less than 25.
	pm := NewPixmap(60, 30)
	r := NewStrokeRenderer(rand.New(rand.NewPCG(3, 3)))
	settings := DrawSettings{Tool: CrayonTool{}, Color: Black, Size: 4}
	r.BeginStroke(pm, Pt(5, 15), 0, PointerMouse, settings)
	for x := 5.5; x <= 30; x += 0.5 {
		r.ExtendStroke(Pt(x, 15), 0)
	}
	r.EndStroke()

	single := NewPixmap(60, 30)
	r2 := NewStrokeRenderer(rand.New(rand.NewPCG(3, 3)))
	r2.BeginStroke(single, Pt(5, 15), 0, PointerMouse, settings)
	r2.EndStroke()

	perDot := countInk(single)
	total := countInk(pm)
	if total > perDot*20 {
		t.Errorf("ink %d exceeds ~13 dots (%d per dot); resampling is not spacing dots", total, perDot)
	}
}

func TestStrokePressureWidth(t *testing.T) {
	// A full-pressure pen stroke is wider than a light one.
	width := func(pressure float64) int {
		pm := NewPixmap(40, 40)
		r := NewStrokeRenderer(testRand())
		r.BeginStroke(pm, Pt(10, 20), pressure, PointerPen, DrawSettings{Tool: BrushTool{}, Color: Black, Size: 8})
		r.ExtendStroke(Pt(30, 20), pressure)
		r.EndStroke()
		n := 0
		for y := 0; y < 40; y++ {
			if pm.GetPixel(20, y).A > 0.5 {
				n++
			}
		}
		return n
	}
	if light, hard := width(0.1), width(1.0); hard <= light {
		t.Errorf("hard stroke rows %d <= light stroke rows %d", hard, light)
	}
}
