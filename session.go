package flipbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for the external-image boundary
	_ "image/png"  // register decoder for the external-image boundary
	"math/rand/v2"

	xdraw "golang.org/x/image/draw"
)

// ErrDecode is returned when an externally supplied image cannot be
// decoded; the frame it was meant for is left untouched.
var ErrDecode = errors.New("flipbook: cannot decode external image")

// PointerEvent is one input sample from the windowing layer, already
// scaled to buffer-local pixel coordinates. Pressure is in [0, 1]; devices
// without a sensor report 0 (or the 0.5 sentinel, see DrawSettings curves).
type PointerEvent struct {
	X, Y     float64
	Pressure float64
	Type     PointerType
}

// Session is an editing session over one store: it owns the draw settings,
// the active-layer cursor, the stroke renderer, and the per-(frame, layer)
// undo history, and it emits the callbacks the surrounding shell listens
// to. All mutation enters through the session, which keeps the engine's
// single-mutator model intact.
type Session struct {
	store    *Store
	settings DrawSettings
	active   LayerRole

	renderer *StrokeRenderer
	history  *History
	key      HistoryKey

	player *Player
	onion  *OnionSkin
	melt   *Melt

	strokeFrame FrameID // frame the in-progress stroke started on

	onColorPick     func(hex string)
	onHistoryChange func(canUndo, canRedo bool)

	meltCancel context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRand seeds the stroke jitter and melt simulation from rng instead
// of the clock. Tests use this for reproducible output.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) {
		s.renderer = NewStrokeRenderer(rng)
		s.melt = NewMelt(rng)
	}
}

// WithSettings sets the initial draw settings.
func WithSettings(settings DrawSettings) SessionOption {
	return func(s *Session) { s.settings = settings }
}

// WithFPS sets the initial playback rate (callers clamp to MinFPS..MaxFPS).
func WithFPS(fps int) SessionOption {
	return func(s *Session) { s.player = NewPlayer(s.store, fps) }
}

// NewSession opens an editing session on the store. The middle layer of
// the current frame is active and history starts from its present state.
func NewSession(store *Store, opts ...SessionOption) *Session {
	s := &Session{
		store:    store,
		settings: DefaultSettings(),
		active:   DefaultLayer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NewStrokeRenderer(nil)
	}
	if s.melt == nil {
		s.melt = NewMelt(nil)
	}
	if s.player == nil {
		s.player = NewPlayer(store, 12)
	}
	s.onion = NewOnionSkin(store)
	s.key = HistoryKey{Frame: store.Current().ID(), Layer: s.active}
	s.history = NewHistory(store.Current().Layer(s.active))
	return s
}

// Store returns the session's frame store.
func (s *Session) Store() *Store { return s.store }

// Player returns the playback scheduler.
func (s *Session) Player() *Player { return s.player }

// OnionSkin returns the onion-skin overlay.
func (s *Session) OnionSkin() *OnionSkin { return s.onion }

// Settings returns the current draw settings.
func (s *Session) Settings() DrawSettings { return s.settings }

// SetSettings replaces the draw settings.
func (s *Session) SetSettings(settings DrawSettings) { s.settings = settings }

// SetTool switches the active tool.
func (s *Session) SetTool(t Tool) { s.settings.Tool = t }

// SetColor switches the stroke color.
func (s *Session) SetColor(c RGBA) { s.settings.Color = c }

// SetBrushSize switches the brush diameter in pixels.
func (s *Session) SetBrushSize(size int) { s.settings.Size = size }

// ActiveLayer returns the layer strokes currently land on.
func (s *Session) ActiveLayer() LayerRole { return s.active }

// SetActiveLayer moves editing to another layer of the current frame.
// Changing the (frame, layer) key resets undo history to the layer's
// present state; selecting the already-active layer changes nothing.
func (s *Session) SetActiveLayer(role LayerRole) {
	s.active = role
	s.refreshHistoryKey()
}

// SelectFrame moves the cursor to frame i and rekeys history.
func (s *Session) SelectFrame(i int) error {
	if err := s.store.Select(i); err != nil {
		return err
	}
	s.refreshHistoryKey()
	return nil
}

// OnColorPick registers the callback the picker tool reports through,
// receiving "#RRGGBB".
func (s *Session) OnColorPick(fn func(hex string)) { s.onColorPick = fn }

// OnHistoryChange registers the callback emitted after every mutating
// operation with the current undo/redo availability, for UI gating.
func (s *Session) OnHistoryChange(fn func(canUndo, canRedo bool)) {
	s.onHistoryChange = fn
	s.notifyHistory()
}

// refreshHistoryKey resets history when — and only when — the active
// (frame identity, layer index) pair changed. Content changes under the
// same key must never reset, or each stroke would erase its undo trail.
//
// Playback ticks move the cursor through the store without the session's
// involvement, so every operation that consults or pushes history calls
// this first; the key comparison makes repeated calls free.
func (s *Session) refreshHistoryKey() {
	key := HistoryKey{Frame: s.store.Current().ID(), Layer: s.active}
	if key == s.key {
		return
	}
	s.key = key
	s.history.Reset(s.store.Current().Layer(s.active))
	s.notifyHistory()
}

func (s *Session) notifyHistory() {
	if s.onHistoryChange != nil {
		s.onHistoryChange(s.history.CanUndo(), s.history.CanRedo())
	}
}

// PointerDown begins a gesture. Picker samples and reports; Fill floods
// immediately; the drawing tools open a stroke on the active layer.
func (s *Session) PointerDown(ev PointerEvent) {
	s.refreshHistoryKey()
	switch s.settings.Tool.(type) {
	case PickerTool:
		c := s.store.Current().Layer(s.active).GetPixel(int(ev.X), int(ev.Y))
		if s.onColorPick != nil {
			s.onColorPick(c.HexString())
		}
	case FillTool:
		changed := false
		s.store.UpdateCurrent(func(f *Frame) {
			changed = f.Layer(s.active).FloodFill(int(ev.X), int(ev.Y), s.settings.Color)
			if changed {
				f.RecomputeComposite()
			}
		})
		if changed {
			s.pushHistory()
		}
	default:
		s.strokeFrame = s.store.Current().ID()
		s.store.UpdateCurrent(func(f *Frame) {
			s.renderer.BeginStroke(f.Layer(s.active), Pt(ev.X, ev.Y), ev.Pressure, ev.Type, s.settings)
		})
	}
}

// PointerMove extends an in-progress stroke. Intermediate samples never
// push history and never recompute the composite — granularity is one
// entry per completed stroke.
func (s *Session) PointerMove(ev PointerEvent) {
	if !s.renderer.Active() {
		return
	}
	if s.store.Current().ID() != s.strokeFrame {
		// The frame changed under the stroke (e.g. playback); abandon it.
		s.renderer.EndStroke()
		return
	}
	s.store.UpdateCurrent(func(*Frame) {
		s.renderer.ExtendStroke(Pt(ev.X, ev.Y), ev.Pressure)
	})
}

// PointerUp completes a gesture: exactly one composite recompute and one
// history push when pixels changed.
func (s *Session) PointerUp(ev PointerEvent) {
	if !s.renderer.Active() {
		return
	}
	if s.store.Current().ID() == s.strokeFrame {
		s.store.UpdateCurrent(func(*Frame) {
			s.renderer.ExtendStroke(Pt(ev.X, ev.Y), ev.Pressure)
		})
	}
	drew := s.renderer.EndStroke()
	if !drew || s.store.Current().ID() != s.strokeFrame {
		return
	}
	s.store.UpdateCurrent(func(f *Frame) {
		f.RecomputeComposite()
	})
	s.pushHistory()
}

// pushHistory snapshots the active layer and reports availability.
func (s *Session) pushHistory() {
	s.history.Push(s.store.Current().Layer(s.active))
	s.notifyHistory()
}

// Undo restores the previous snapshot of the active layer, if any.
// Beyond the stack bottom it is a no-op (availability flags unchanged).
func (s *Session) Undo() bool {
	s.refreshHistoryKey()
	snapshot, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.applySnapshot(snapshot)
	return true
}

// Redo restores the next snapshot of the active layer, if any.
func (s *Session) Redo() bool {
	s.refreshHistoryKey()
	snapshot, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.applySnapshot(snapshot)
	return true
}

func (s *Session) applySnapshot(snapshot *Pixmap) {
	s.store.UpdateCurrent(func(f *Frame) {
		f.Layer(s.active).CopyFrom(snapshot)
		f.RecomputeComposite()
	})
	s.notifyHistory()
}

// ApplyExternalImage replaces the active layer's content with an image
// produced outside the engine (e.g. an AI edit), routed through the
// normal draw-end path: one history push, one composite recompute.
// Undecodable data returns ErrDecode and leaves the frame untouched.
// Images of a different size are rescaled to the project dimensions.
func (s *Session) ApplyExternalImage(data []byte) error {
	s.refreshHistoryKey()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		Logger().Warn("external image rejected", "err", err)
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	Logger().Debug("external image accepted", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	replacement := FromImage(img)
	if replacement.Width() != s.store.Width() || replacement.Height() != s.store.Height() {
		scaled := NewPixmap(s.store.Width(), s.store.Height())
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), replacement, replacement.Bounds(), xdraw.Src, nil)
		replacement = scaled
	}

	s.store.UpdateCurrent(func(f *Frame) {
		f.Layer(s.active).CopyFrom(replacement)
		f.RecomputeComposite()
	})
	s.pushHistory()
	return nil
}

// StartMelt runs the melt simulator on a snapshot of the current frame's
// composite in the background. On success all frames are inserted after
// the current frame as one batch and onDone receives them; on
// cancellation or error nothing is inserted. onDone runs on the melt
// goroutine and may be nil.
func (s *Session) StartMelt(ctx context.Context, frameCount int, onDone func([]*Frame, error)) {
	s.CancelMelt()
	ctx, cancel := context.WithCancel(ctx)
	s.meltCancel = cancel

	src := s.store.Current().Composite().Clone()
	go func() {
		defer cancel()
		images, err := s.melt.Simulate(ctx, src, frameCount)
		if err != nil {
			if onDone != nil {
				onDone(nil, err)
			}
			return
		}
		frames := s.store.InsertBatchAfterCurrent(images)
		if onDone != nil {
			onDone(frames, nil)
		}
	}()
}

// CancelMelt abandons any melt run in progress. Frame-switching callers
// use this when the melt's target frame is invalidated.
func (s *Session) CancelMelt() {
	if s.meltCancel != nil {
		s.meltCancel()
		s.meltCancel = nil
	}
}
