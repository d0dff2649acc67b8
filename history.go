package flipbook

// HistoryCapacity bounds the number of snapshots a History retains.
// When a push exceeds it the oldest entry is evicted; evicted states are
// unrecoverable. That data loss is deliberate, not an error.
const HistoryCapacity = 20

// HistoryKey identifies which layer a History belongs to. Undo history is
// scoped per (frame identity, layer index): switching either resets the
// stack, while drawing on the same layer never does.
type HistoryKey struct {
	Frame FrameID
	Layer LayerRole
}

// History is a linear undo/redo stack of layer snapshots. Entry zero is
// the state the layer had when the stack was (re)initialized; the cursor
// points at the entry matching the layer's current content.
//
// Snapshots are cloned on the way in and on the way out, so stored entries
// are immutable.
type History struct {
	entries []*Pixmap
	cursor  int
}

// NewHistory creates a history whose single entry is a snapshot of initial.
func NewHistory(initial *Pixmap) *History {
	return &History{entries: []*Pixmap{initial.Clone()}}
}

// Reset discards all entries and restarts from a snapshot of initial.
// Call this only when the active (frame, layer) pair changes — never on
// content changes, or every stroke would erase its own undo trail.
func (h *History) Reset(initial *Pixmap) {
	h.entries = []*Pixmap{initial.Clone()}
	h.cursor = 0
}

// Push records a new snapshot after a completed mutation. Any redoable
// suffix beyond the cursor is truncated (linear undo, no branches), and
// the oldest entry is evicted once the stack exceeds HistoryCapacity.
func (h *History) Push(snapshot *Pixmap) {
	h.entries = append(h.entries[:h.cursor+1], snapshot.Clone())
	if len(h.entries) > HistoryCapacity {
		// Copy into a fresh slice: the evicted snapshot must not stay
		// reachable through the old backing array.
		kept := make([]*Pixmap, HistoryCapacity)
		copy(kept, h.entries[len(h.entries)-HistoryCapacity:])
		h.entries = kept
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps the cursor back and returns a copy of that snapshot.
// At the bottom of the stack it returns (nil, false) and changes nothing.
func (h *History) Undo() (*Pixmap, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps the cursor forward and returns a copy of that snapshot.
// At the top of the stack it returns (nil, false) and changes nothing.
func (h *History) Redo() (*Pixmap, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }
