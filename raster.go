package flipbook

import "math"

// Low-level raster mutations shared by the stroke renderer and the vector
// object preview. Coverage comes from a signed distance to the primitive,
// softened by a Hermite smoothstep for anti-aliasing.

// aaWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const aaWidth = 0.7

// coverage converts a signed distance (negative inside) to [0, 1].
func coverage(sdf float64) float64 {
	if sdf >= aaWidth {
		return 0
	}
	if sdf <= -aaWidth {
		return 1
	}
	t := (sdf + aaWidth) / (2 * aaWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return ap.Length()
	}
	t := ap.Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

// fillCircle composites a filled circle of the given color over the buffer.
// opacity scales the color's alpha uniformly across the circle.
func fillCircle(dst *Pixmap, center Point, radius float64, c RGBA, opacity float64) {
	forEachCoveredPixel(dst, RectFrom(center, center).Expand(radius+aaWidth),
		func(px Point) float64 {
			return coverage(px.Distance(center) - radius)
		},
		func(x, y int, cov float64) {
			dst.BlendPixel(x, y, c, cov*opacity)
		})
}

// strokeSegment composites a thick segment with round caps over the buffer.
// Together with a fillCircle at each input sample this gives round joins
// and no gaps under fast pointer motion.
func strokeSegment(dst *Pixmap, a, b Point, width float64, c RGBA, opacity float64) {
	half := width / 2
	forEachCoveredPixel(dst, RectFrom(a, b).Expand(half+aaWidth),
		func(px Point) float64 {
			return coverage(segmentDistance(px, a, b) - half)
		},
		func(x, y int, cov float64) {
			dst.BlendPixel(x, y, c, cov*opacity)
		})
}

// eraseCircle removes alpha inside a circle (destination-out geometry of
// fillCircle).
func eraseCircle(dst *Pixmap, center Point, radius float64) {
	forEachCoveredPixel(dst, RectFrom(center, center).Expand(radius+aaWidth),
		func(px Point) float64 {
			return coverage(px.Distance(center) - radius)
		},
		func(x, y int, cov float64) {
			dst.ErasePixel(x, y, cov)
		})
}

// eraseSegment removes alpha along a thick round-capped segment.
func eraseSegment(dst *Pixmap, a, b Point, width float64) {
	half := width / 2
	forEachCoveredPixel(dst, RectFrom(a, b).Expand(half+aaWidth),
		func(px Point) float64 {
			return coverage(segmentDistance(px, a, b) - half)
		},
		func(x, y int, cov float64) {
			dst.ErasePixel(x, y, cov)
		})
}

// forEachCoveredPixel walks the pixels of bounds clipped to dst, evaluates
// the coverage function at each pixel center and hands non-zero coverage
// to apply.
func forEachCoveredPixel(dst *Pixmap, bounds Rect, cov func(Point) float64, apply func(x, y int, cov float64)) {
	x0 := int(math.Floor(bounds.Min.X))
	y0 := int(math.Floor(bounds.Min.Y))
	x1 := int(math.Ceil(bounds.Max.X))
	y1 := int(math.Ceil(bounds.Max.Y))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= dst.Width() {
		x1 = dst.Width() - 1
	}
	if y1 >= dst.Height() {
		y1 = dst.Height() - 1
	}
	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5
		for x := x0; x <= x1; x++ {
			c := cov(Point{X: float64(x) + 0.5, Y: fy})
			if c > 0 {
				apply(x, y, c)
			}
		}
	}
}
