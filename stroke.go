package flipbook

import (
	"math/rand/v2"
	"time"
)

// StrokeRenderer converts a sequence of pointer samples into mutations of
// the active layer's pixel buffer. One renderer serves one pointer-down to
// pointer-up gesture at a time:
//
//	r.BeginStroke(layer, pt, pressure, ptype, settings)
//	r.ExtendStroke(pt, pressure)   // repeatedly
//	drew := r.EndStroke()
//
// The renderer never touches a frame's composite and never records
// history; the session does both exactly once per completed stroke.
//
// FillTool and PickerTool carry no stroke state; BeginStroke ignores them
// and the session routes those gestures elsewhere.
type StrokeRenderer struct {
	rng *rand.Rand

	dst      *Pixmap
	settings DrawSettings
	ptype    PointerType

	last         Point
	lastPressure float64
	leftover     float64 // distance already consumed toward the next texture dot
	active       bool
	drew         bool
}

// NewStrokeRenderer creates a renderer. rng drives texture-dot jitter;
// pass nil for a time-seeded source.
func NewStrokeRenderer(rng *rand.Rand) *StrokeRenderer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &StrokeRenderer{rng: rng}
}

// Active reports whether a stroke is in progress.
func (r *StrokeRenderer) Active() bool { return r.active }

// BeginStroke starts a gesture on dst and renders its first mark.
func (r *StrokeRenderer) BeginStroke(dst *Pixmap, pt Point, pressure float64, ptype PointerType, settings DrawSettings) {
	switch settings.Tool.(type) {
	case FillTool, PickerTool:
		return
	}
	r.dst = dst
	r.settings = settings
	r.ptype = ptype
	r.last = pt
	r.lastPressure = pressure
	r.leftover = 0
	r.active = true
	r.drew = false

	width := effectiveWidth(settings.Tool, settings.Size, pressure, ptype)
	switch settings.Tool.(type) {
	case PencilTool, CrayonTool:
		r.stampDot(pt, pressure)
	case EraserTool:
		eraseCircle(dst, pt, width/2)
		r.drew = true
	case MarkerTool:
		fillCircle(dst, pt, width/2, settings.Color.WithAlpha(markerAlpha), 1)
		r.drew = true
	default:
		fillCircle(dst, pt, width/2, settings.Color, 1)
		r.drew = true
	}
}

// ExtendStroke renders the path from the previous sample to pt.
// No-op if no stroke is active.
func (r *StrokeRenderer) ExtendStroke(pt Point, pressure float64) {
	if !r.active {
		return
	}
	switch r.settings.Tool.(type) {
	case PencilTool, CrayonTool:
		r.extendTextured(pt, pressure)
	case EraserTool:
		width := effectiveWidth(r.settings.Tool, r.settings.Size, pressure, r.ptype)
		eraseSegment(r.dst, r.last, pt, width)
		eraseCircle(r.dst, pt, width/2)
		r.drew = true
	case MarkerTool:
		width := effectiveWidth(r.settings.Tool, r.settings.Size, pressure, r.ptype)
		c := r.settings.Color.WithAlpha(markerAlpha)
		strokeSegment(r.dst, r.last, pt, width, c, 1)
		fillCircle(r.dst, pt, width/2, c, 1)
		r.drew = true
	default:
		width := effectiveWidth(r.settings.Tool, r.settings.Size, pressure, r.ptype)
		strokeSegment(r.dst, r.last, pt, width, r.settings.Color, 1)
		fillCircle(r.dst, pt, width/2, r.settings.Color, 1)
		r.drew = true
	}
	r.last = pt
	r.lastPressure = pressure
}

// EndStroke completes the gesture and reports whether any pixels were
// touched. The renderer is idle afterwards.
func (r *StrokeRenderer) EndStroke() bool {
	drew := r.drew
	r.active = false
	r.dst = nil
	r.drew = false
	return drew
}

// extendTextured resamples the segment from the previous sample at the
// tool's fixed step, stamping a jittered dot at each step with pressure
// linearly interpolated across the segment. The leftover distance carries
// across segments so dot spacing stays even through sparse fast-motion
// samples.
func (r *StrokeRenderer) extendTextured(pt Point, pressure float64) {
	step := textureStep(r.settings.Tool)
	dist := r.last.Distance(pt)
	if dist == 0 {
		return
	}
	pos := step - r.leftover
	for ; pos <= dist; pos += step {
		t := pos / dist
		sample := r.last.Lerp(pt, t)
		p := r.lastPressure + (pressure-r.lastPressure)*t
		r.stampDot(sample, p)
	}
	r.leftover = dist - (pos - step)
}

// stampDot renders one jittered, pressure-modulated texture dot.
func (r *StrokeRenderer) stampDot(pt Point, pressure float64) {
	width := effectiveWidth(r.settings.Tool, r.settings.Size, pressure, r.ptype)
	opacity := textureOpacity(r.settings.Tool, pressure, r.ptype)
	rough := roughness(r.settings.Tool, r.settings.Size)
	jittered := Point{
		X: pt.X + (r.rng.Float64()*2-1)*rough,
		Y: pt.Y + (r.rng.Float64()*2-1)*rough,
	}
	fillCircle(r.dst, jittered, width/2, r.settings.Color, opacity)
	r.drew = true
}
