package flipbook

import (
	"sync"
	"time"
)

// FPS bounds for playback. Values outside this range are clamped by
// callers (the engine does not validate).
const (
	MinFPS = 1
	MaxFPS = 24
)

// Player advances a store's current frame at a fixed cadence, looping
// indefinitely. Its state machine is Stopped → Playing → Stopped; Stop
// cancels the tick without touching the frame index.
//
// Each tick goes through Store.Advance, so a tick can never interleave
// with a composite recompute or a structural mutation.
type Player struct {
	mu      sync.Mutex
	store   *Store
	fps     int
	playing bool
	ticker  *time.Ticker
	quit    chan struct{}
	onFrame func(index int)
}

// NewPlayer creates a stopped player at the given frames-per-second.
func NewPlayer(store *Store, fps int) *Player {
	return &Player{store: store, fps: fps}
}

// SetOnFrame registers a callback invoked after every tick with the new
// frame index. Set it before Play; it runs on the player's goroutine.
func (p *Player) SetOnFrame(fn func(index int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFrame = fn
}

// FPS returns the playback rate.
func (p *Player) FPS() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// Playing reports whether the player is in the Playing state.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play starts the tick. No-op while already playing.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return
	}
	p.playing = true
	p.ticker = time.NewTicker(p.period())
	p.quit = make(chan struct{})
	go p.run(p.ticker, p.quit)
}

// Stop cancels the tick. The frame index stays wherever playback left it.
// No-op while already stopped.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing {
		return
	}
	p.playing = false
	p.ticker.Stop()
	close(p.quit)
	p.ticker = nil
	p.quit = nil
}

// SetFPS changes the playback rate. While playing the ticker is re-armed
// at the new period; the current phase is not preserved.
func (p *Player) SetFPS(fps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fps = fps
	if p.playing {
		p.ticker.Reset(p.period())
	}
}

func (p *Player) period() time.Duration {
	return time.Second / time.Duration(p.fps)
}

func (p *Player) run(ticker *time.Ticker, quit chan struct{}) {
	for {
		select {
		case <-ticker.C:
			idx := p.store.Advance()
			p.mu.Lock()
			fn := p.onFrame
			p.mu.Unlock()
			if fn != nil {
				fn(idx)
			}
		case <-quit:
			return
		}
	}
}
