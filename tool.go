package flipbook

import "math"

// Tool identifies what pointer input does to the active layer.
// This is a sealed interface - only types in this package implement it,
// so a type switch over the variants is exhaustive.
//
// The drawing tools fall into three families:
//   - continuous strokes: BrushTool, MarkerTool, EraserTool
//   - texture-dot stamping: PencilTool, CrayonTool
//   - point operations: FillTool, PickerTool
type Tool interface {
	// toolMarker is an unexported method that seals this interface.
	toolMarker()

	// String returns the tool's display name.
	String() string
}

// BrushTool draws continuous opaque strokes with round caps.
type BrushTool struct{}

// PencilTool stamps small jittered texture dots at a 1px step.
type PencilTool struct{}

// MarkerTool draws continuous strokes at a fixed 0.5 alpha.
//
// The alpha is applied per rendered primitive (segment plus gap-filling
// circle), so overlap within a single stroke can double-darken. This
// matches the historical behavior; see DESIGN.md.
type MarkerTool struct{}

// CrayonTool stamps large jittered texture dots at a 2px step.
type CrayonTool struct{}

// EraserTool follows the brush path but removes alpha instead of adding
// color (destination-out).
type EraserTool struct{}

// FillTool flood-fills the exact-match region under the pointer.
type FillTool struct{}

// PickerTool samples a pixel's color and reports it; it never mutates.
type PickerTool struct{}

func (BrushTool) toolMarker()  {}
func (PencilTool) toolMarker() {}
func (MarkerTool) toolMarker() {}
func (CrayonTool) toolMarker() {}
func (EraserTool) toolMarker() {}
func (FillTool) toolMarker()   {}
func (PickerTool) toolMarker() {}

func (BrushTool) String() string  { return "brush" }
func (PencilTool) String() string { return "pencil" }
func (MarkerTool) String() string { return "marker" }
func (CrayonTool) String() string { return "crayon" }
func (EraserTool) String() string { return "eraser" }
func (FillTool) String() string   { return "fill" }
func (PickerTool) String() string { return "picker" }

// markerAlpha is the fixed stroke alpha of MarkerTool.
const markerAlpha = 0.5

// PointerType identifies the input device reported by the windowing layer.
type PointerType int

const (
	// PointerMouse is a device without pressure reporting.
	PointerMouse PointerType = iota
	// PointerPen is a stylus with real pressure values.
	PointerPen
	// PointerTouch is a finger; pressure, when present, is unreliable.
	PointerTouch
)

// DrawSettings is the ephemeral editing state: active tool, stroke color
// and brush size (pixel diameter). It is owned by the session and not
// persisted per frame.
type DrawSettings struct {
	Tool  Tool
	Color RGBA
	Size  int
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() DrawSettings {
	return DrawSettings{Tool: BrushTool{}, Color: Black, Size: 6}
}

// pressureUnknown is the sentinel some platforms report for devices that
// have no pressure sensor.
const pressureUnknown = 0.5

// pressureCurve flattens raw pressure so light touches still register,
// floored at 0.5 so strokes are never near-invisible.
func pressureCurve(pressure float64) float64 {
	return math.Max(math.Pow(pressure, 0.2), 0.5)
}

// modulatesPressure reports whether the effective width should follow the
// reported pressure. Mice report nothing, and non-pen devices reporting
// exactly the 0.5 sentinel are treated as pressure-less.
func modulatesPressure(pressure float64, pt PointerType) bool {
	if pt == PointerPen {
		return true
	}
	return pressure > 0 && pressure != pressureUnknown
}

// effectiveWidth computes the stroke or dot width in pixels for a tool,
// brush size and pressure sample.
func effectiveWidth(tool Tool, size int, pressure float64, pt PointerType) float64 {
	s := float64(size)
	if !modulatesPressure(pressure, pt) {
		switch tool.(type) {
		case PencilTool, CrayonTool:
			return 0.8 * s
		default:
			return s
		}
	}
	p := pressureCurve(pressure)
	switch tool.(type) {
	case PencilTool, CrayonTool:
		return s * (0.6 + 0.4*p)
	case MarkerTool:
		return s * (0.7 + 0.3*p)
	default: // Brush, Eraser
		return math.Max(0.5*s, 1.5*s*p)
	}
}

// textureOpacity computes the dot opacity for the texture tools (pencil,
// crayon) from a pressure sample: the flattened curve gets a boost
// multiplier, then clamps into [0.5, maxOpacity].
func textureOpacity(tool Tool, pressure float64, pt PointerType) float64 {
	p := pressureCurve(pressure)
	if !modulatesPressure(pressure, pt) {
		p = pressureCurve(pressureUnknown)
	}
	boost, maxOpacity := 1.5, 0.8
	if _, ok := tool.(CrayonTool); ok {
		boost, maxOpacity = 2.0, 1.0
	}
	o := boost * p
	if o < 0.5 {
		o = 0.5
	}
	if o > maxOpacity {
		o = maxOpacity
	}
	return o
}

// textureStep is the resampling distance along the stroke path for the
// texture tools: 1px for pencil, 2px for crayon, 0 for the rest.
func textureStep(tool Tool) float64 {
	switch tool.(type) {
	case PencilTool:
		return 1
	case CrayonTool:
		return 2
	default:
		return 0
	}
}

// roughness is the maximum jitter radius of a texture dot, proportional
// to brush size: crayon dots scatter three times wider than pencil dots.
func roughness(tool Tool, size int) float64 {
	switch tool.(type) {
	case CrayonTool:
		return 0.6 * float64(size)
	case PencilTool:
		return 0.2 * float64(size)
	default:
		return 0
	}
}
