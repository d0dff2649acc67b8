package flipbook

// FloodFill recolors the contiguous region of pixels exactly matching the
// seed pixel's stored RGBA value, in place. Matching is exact on all four
// channels — there is no tolerance and anti-aliased fringes are left alone,
// which is what bounds the fill at a stroke's soft edge.
//
// The walk is a stack-based scanline fill: each popped seed scans to the
// top of its matching column run, colors downward, and pushes new seeds
// whenever a matching run starts in the neighboring columns. This visits
// each pixel a constant number of times and never recurses, so large
// regions cannot overflow the stack.
//
// Returns false without mutating when the seed is out of bounds or the
// region already has the fill color.
func (p *Pixmap) FloodFill(x, y int, c RGBA) bool {
	w, h := p.width, p.height
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}

	var fill [4]uint8
	fill[0], fill[1], fill[2], fill[3] = premul(c)

	var target [4]uint8
	si := (y*w + x) * 4
	copy(target[:], p.data[si:si+4])
	if target == fill {
		return false
	}

	match := func(x, y int) bool {
		i := (y*w + x) * 4
		return p.data[i+0] == target[0] && p.data[i+1] == target[1] &&
			p.data[i+2] == target[2] && p.data[i+3] == target[3]
	}
	set := func(x, y int) {
		i := (y*w + x) * 4
		p.data[i+0] = fill[0]
		p.data[i+1] = fill[1]
		p.data[i+2] = fill[2]
		p.data[i+3] = fill[3]
	}

	type seed struct{ x, y int }
	stack := []seed{{x, y}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sx, sy := s.x, s.y
		if !match(sx, sy) {
			continue
		}

		// Rewind to the top of the matching run in this column.
		for sy > 0 && match(sx, sy-1) {
			sy--
		}

		// Color downward, seeding neighbors where their matching runs begin.
		spanLeft, spanRight := false, false
		for sy < h && match(sx, sy) {
			set(sx, sy)
			if sx > 0 {
				if match(sx-1, sy) {
					if !spanLeft {
						stack = append(stack, seed{sx - 1, sy})
						spanLeft = true
					}
				} else {
					spanLeft = false
				}
			}
			if sx < w-1 {
				if match(sx+1, sy) {
					if !spanRight {
						stack = append(stack, seed{sx + 1, sy})
						spanRight = true
					}
				} else {
					spanRight = false
				}
			}
			sy++
		}
	}
	return true
}
