package flipbook

import (
	"context"
	"math/rand/v2"
	"time"
)

// meltSeedChance is the fraction of columns seeded as fast "drips".
const meltSeedChance = 0.04

// Melt derives a sequence of frames from a single source image by letting
// each pixel column fall under gravity with per-column viscosity coupling.
// The two-population seeding (a few fast columns, the rest slow) is what
// separates distinct drip strands from the general sag.
//
// A Melt holds only its random source; each Simulate call owns fresh
// per-column state, so one simulator can be reused sequentially.
type Melt struct {
	rng *rand.Rand
}

// NewMelt creates a simulator. rng drives seeding and gravity jitter;
// pass nil for a time-seeded source.
func NewMelt(rng *rand.Rand) *Melt {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x6a09e667f3bcc909))
	}
	return &Melt{rng: rng}
}

// Simulate generates frameCount derived images from src. Each output frame
// advances the column physics one step and renders the shifted source over
// an opaque white background; rows pushed past the bottom edge are dropped,
// not wrapped.
//
// A degenerate source (zero width or height) yields an empty sequence and
// is logged, not an error. Cancelling ctx abandons the run and returns the
// context's error; no partial sequence is returned.
func (m *Melt) Simulate(ctx context.Context, src *Pixmap, frameCount int) ([]*Pixmap, error) {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		Logger().Warn("melt: degenerate source image", "width", w, "height", h)
		return nil, nil
	}

	velocity := make([]float64, w)
	offset := make([]float64, w)
	for x := range velocity {
		if m.rng.Float64() < meltSeedChance {
			velocity[x] = 4 + m.rng.Float64()*8 // fast drip seed
		} else {
			velocity[x] = m.rng.Float64() * 2 // slow general melt
		}
	}

	srcData := src.Data()
	frames := make([]*Pixmap, 0, frameCount)
	for f := 0; f < frameCount; f++ {
		if err := ctx.Err(); err != nil {
			Logger().Debug("melt: cancelled", "frame", f)
			return nil, err
		}

		// Gravity with jitter.
		for x := 0; x < w; x++ {
			velocity[x] += 0.8 + m.rng.Float64()*0.5
		}

		// Viscosity: blend interior columns toward their neighborhood
		// average so adjacent columns fall together as coherent drips.
		for x := 2; x < w-2; x++ {
			avgV := (velocity[x-1] + velocity[x] + velocity[x+1]) / 3
			velocity[x] = 0.7*velocity[x] + 0.3*avgV
			avgO := (offset[x-1] + offset[x] + offset[x+1]) / 3
			offset[x] = 0.9*offset[x] + 0.1*avgO
		}

		out := NewPixmapFilled(w, h, White)
		outData := out.Data()
		for x := 0; x < w; x++ {
			offset[x] += velocity[x]
			shift := int(offset[x])
			for y := 0; y < h; y++ {
				dy := y + shift
				if dy >= h {
					break
				}
				si := (y*w + x) * 4
				di := (dy*w + x) * 4
				copy(outData[di:di+4], srcData[si:si+4])
			}
		}
		frames = append(frames, out)
	}
	Logger().Debug("melt: simulation complete", "frames", len(frames), "width", w, "height", h)
	return frames, nil
}
