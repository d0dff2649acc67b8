package flipbook

import (
	"math"
	"testing"
)

func TestToolString(t *testing.T) {
	tests := []struct {
		tool Tool
		want string
	}{
		{BrushTool{}, "brush"},
		{PencilTool{}, "pencil"},
		{MarkerTool{}, "marker"},
		{CrayonTool{}, "crayon"},
		{EraserTool{}, "eraser"},
		{FillTool{}, "fill"},
		{PickerTool{}, "picker"},
	}
	for _, tt := range tests {
		if got := tt.tool.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPressureCurve(t *testing.T) {
	// Flattened and floored: light touches register, nothing vanishes.
	if got := pressureCurve(0); got != 0.5 {
		t.Errorf("pressureCurve(0) = %v, want 0.5", got)
	}
	if got := pressureCurve(1); got != 1 {
		t.Errorf("pressureCurve(1) = %v, want 1", got)
	}
	mid := pressureCurve(0.5)
	if mid <= 0.5 || mid >= 1 {
		t.Errorf("pressureCurve(0.5) = %v, want in (0.5, 1)", mid)
	}
	if want := math.Pow(0.5, 0.2); math.Abs(mid-want) > 1e-9 {
		t.Errorf("pressureCurve(0.5) = %v, want %v", mid, want)
	}
}

func TestModulatesPressure(t *testing.T) {
	tests := []struct {
		name     string
		pressure float64
		pt       PointerType
		want     bool
	}{
		{"pen always modulates", 0.5, PointerPen, true},
		{"pen at zero still modulates", 0, PointerPen, true},
		{"mouse reporting nothing", 0, PointerMouse, false},
		{"mouse at sentinel", 0.5, PointerMouse, false},
		{"mouse with real value", 0.7, PointerMouse, true},
		{"touch at sentinel", 0.5, PointerTouch, false},
		{"touch with real value", 0.3, PointerTouch, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := modulatesPressure(tt.pressure, tt.pt); got != tt.want {
				t.Errorf("modulatesPressure(%v, %v) = %v, want %v", tt.pressure, tt.pt, got, tt.want)
			}
		})
	}
}

func TestEffectiveWidth(t *testing.T) {
	const size = 10
	tests := []struct {
		name     string
		tool     Tool
		pressure float64
		pt       PointerType
		want     float64
	}{
		{"brush mouse full size", BrushTool{}, 0, PointerMouse, 10},
		{"eraser mouse full size", EraserTool{}, 0, PointerMouse, 10},
		{"pencil mouse reduced", PencilTool{}, 0, PointerMouse, 8},
		{"crayon mouse reduced", CrayonTool{}, 0, PointerMouse, 8},
		{"marker mouse full size", MarkerTool{}, 0, PointerMouse, 10},
		{"brush pen full pressure", BrushTool{}, 1, PointerPen, 15},
		{"brush pen zero pressure floors", BrushTool{}, 0, PointerPen, 7.5}, // 1.5·s·0.5
		{"marker pen full pressure", MarkerTool{}, 1, PointerPen, 10},
		{"pencil pen full pressure", PencilTool{}, 1, PointerPen, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := effectiveWidth(tt.tool, size, tt.pressure, tt.pt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("effectiveWidth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectiveWidthMonotonic(t *testing.T) {
	// Harder pen pressure never narrows a brush stroke.
	prev := 0.0
	for p := 0.0; p <= 1.0; p += 0.1 {
		w := effectiveWidth(BrushTool{}, 10, p, PointerPen)
		if w < prev {
			t.Fatalf("width decreased: %v at pressure %v (prev %v)", w, p, prev)
		}
		prev = w
	}
}

func TestTextureOpacity(t *testing.T) {
	// Pencil clamps at 0.8, crayon reaches 1.0.
	if got := textureOpacity(PencilTool{}, 1, PointerPen); got != 0.8 {
		t.Errorf("pencil full pressure opacity = %v, want 0.8", got)
	}
	if got := textureOpacity(CrayonTool{}, 1, PointerPen); got != 1.0 {
		t.Errorf("crayon full pressure opacity = %v, want 1.0", got)
	}
	// Lower bound holds even at zero pressure.
	if got := textureOpacity(PencilTool{}, 0, PointerPen); got < 0.5 {
		t.Errorf("pencil zero pressure opacity = %v, want >= 0.5", got)
	}
	// Pressure-less devices land on the sentinel curve.
	mouse := textureOpacity(PencilTool{}, 0, PointerMouse)
	sentinel := textureOpacity(PencilTool{}, pressureUnknown, PointerPen)
	if math.Abs(mouse-sentinel) > 1e-9 {
		t.Errorf("mouse opacity %v != sentinel opacity %v", mouse, sentinel)
	}
}

func TestTextureStep(t *testing.T) {
	tests := []struct {
		tool Tool
		want float64
	}{
		{PencilTool{}, 1},
		{CrayonTool{}, 2},
		{BrushTool{}, 0},
		{MarkerTool{}, 0},
		{EraserTool{}, 0},
	}
	for _, tt := range tests {
		if got := textureStep(tt.tool); got != tt.want {
			t.Errorf("textureStep(%v) = %v, want %v", tt.tool, got, tt.want)
		}
	}
}

func TestRoughness(t *testing.T) {
	if got := roughness(PencilTool{}, 10); got != 2 {
		t.Errorf("pencil roughness = %v, want 2", got)
	}
	if got := roughness(CrayonTool{}, 10); got != 6 {
		t.Errorf("crayon roughness = %v, want 6", got)
	}
	if got := roughness(BrushTool{}, 10); got != 0 {
		t.Errorf("brush roughness = %v, want 0", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if _, ok := s.Tool.(BrushTool); !ok {
		t.Errorf("default tool = %v, want brush", s.Tool)
	}
	if s.Color != Black || s.Size != 6 {
		t.Errorf("default settings = %+v", s)
	}
}
