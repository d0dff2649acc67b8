package flipbook

import (
	"errors"
	"sync"
)

// ErrLastFrame is returned when deleting the only remaining frame; a store
// always contains at least one frame.
var ErrLastFrame = errors.New("flipbook: cannot delete the last frame")

// ErrOutOfRange is returned for frame indexes outside [0, Len).
var ErrOutOfRange = errors.New("flipbook: frame index out of range")

// Store is the ordered sequence of frames plus the current-frame cursor.
// All structural operations and all composite recomputation go through the
// store's mutex, so a playback tick can never observe a composite mid
// recompute and a mutation can never observe a half-moved cursor.
type Store struct {
	mu      sync.Mutex
	width   int
	height  int
	frames  []*Frame
	current int
	nextID  FrameID
}

// NewStore creates a store with a single blank frame of the given
// dimensions, which stay fixed for the store's lifetime.
func NewStore(width, height int) *Store {
	s := &Store{width: width, height: height}
	s.frames = []*Frame{newFrame(s.allocID(), width, height)}
	return s
}

func (s *Store) allocID() FrameID {
	s.nextID++
	return s.nextID
}

// Width returns the project's pixel width.
func (s *Store) Width() int { return s.width }

// Height returns the project's pixel height.
func (s *Store) Height() int { return s.height }

// Len returns the number of frames.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// CurrentIndex returns the cursor position.
func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the frame under the cursor.
func (s *Store) Current() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[s.current]
}

// Frame returns the frame at index i.
func (s *Store) Frame(i int) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.frames) {
		return nil, ErrOutOfRange
	}
	return s.frames[i], nil
}

// Select moves the cursor to index i.
func (s *Store) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.frames) {
		return ErrOutOfRange
	}
	s.current = i
	return nil
}

// Advance moves the cursor one frame forward, wrapping at the end, and
// returns the new index. This is the playback tick.
func (s *Store) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = (s.current + 1) % len(s.frames)
	return s.current
}

// InsertAfterCurrent creates a blank frame immediately after the cursor
// and moves the cursor onto it.
func (s *Store) InsertAfterCurrent() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := newFrame(s.allocID(), s.width, s.height)
	s.insertLocked(f)
	return f
}

// DuplicateCurrent copies the frame under the cursor (layers and
// composite) into a new frame placed immediately after it; the cursor
// moves onto the copy.
func (s *Store) DuplicateCurrent() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.frames[s.current].clone(s.allocID())
	s.insertLocked(f)
	return f
}

// insertLocked places f after the cursor and advances the cursor onto it.
func (s *Store) insertLocked(f *Frame) {
	at := s.current + 1
	s.frames = append(s.frames, nil)
	copy(s.frames[at+1:], s.frames[at:])
	s.frames[at] = f
	s.current = at
}

// InsertBatchAfterCurrent builds one frame per composite image — the
// image becomes the background layer, the other layers stay transparent —
// and inserts them in order after the cursor as a single atomic operation.
// The cursor ends on the last inserted frame. This is how melt results
// land: all frames appear at once, or none do.
func (s *Store) InsertBatchAfterCurrent(composites []*Pixmap) []*Frame {
	if len(composites) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := make([]*Frame, 0, len(composites))
	for _, img := range composites {
		f := newFrame(s.allocID(), s.width, s.height)
		f.layers[Background].CopyFrom(img)
		f.RecomputeComposite()
		s.insertLocked(f)
		inserted = append(inserted, f)
	}
	return inserted
}

// Delete removes the frame at index i. Deleting the only frame is
// rejected with ErrLastFrame and the store is left unchanged. When the
// removed index is at or before the cursor, the cursor steps back
// (floored at zero) so it keeps pointing at the same or the next frame.
func (s *Store) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.frames) {
		return ErrOutOfRange
	}
	if len(s.frames) == 1 {
		return ErrLastFrame
	}
	s.frames = append(s.frames[:i], s.frames[i+1:]...)
	if i <= s.current && s.current > 0 {
		s.current--
	}
	return nil
}

// UpdateCurrent runs fn on the frame under the cursor while holding the
// store lock. Layer mutation plus the composite recompute that follows it
// belong inside fn, keeping ticks and readers out until the frame is
// consistent again.
func (s *Store) UpdateCurrent(fn func(*Frame)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.frames[s.current])
}

// Frames returns a snapshot of the frame sequence in order.
func (s *Store) Frames() []*Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Frame, len(s.frames))
	copy(out, s.frames)
	return out
}
