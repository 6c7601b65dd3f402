package core

import "sort"

// RefreshRequest tells a policy which lanes need a new color and what both lanes hold now.
type RefreshRequest struct {
	Left, Right           bool
	LeftColor, RightColor Color
}

// RefreshPolicy selects new colors for lanes that just filled.
// Only the colors of requested sides are used by the caller.
type RefreshPolicy interface {
	Choose(req RefreshRequest) (left, right Color)
}

// ModulePolicy prefers colors that still have complete triplets left, ranking
// reachable colors (at least one clickable resident piece) first, then by
// descending module count, then by color order. With no candidate it falls
// back to a random color different from the sibling lane when possible.
type ModulePolicy struct {
	Pool      *ColorPool
	Reachable func() ColorSet // Evaluated once per refresh; nil means nothing is reachable
	Palette   []Color
	Rand      Random
}

// Choose implements RefreshPolicy.
func (p ModulePolicy) Choose(req RefreshRequest) (left, right Color) {
	modules := p.Pool.ModuleCounts()
	var reach ColorSet
	if p.Reachable != nil {
		reach = p.Reachable()
	}
	left, right = req.LeftColor, req.RightColor

	switch {
	case req.Left && req.Right:
		c0, ok0 := pickByModule(modules, reach, NoColor)
		if ok0 {
			// Provisionally consume one module so the right pick sees the left choice.
			modules[c0] = max(0, modules[c0]-1)
		}
		exclude := NoColor
		if ok0 {
			exclude = c0
		}
		c1, ok1 := pickByModule(modules, reach, exclude)
		if !ok1 && ok0 {
			c1, ok1 = c0, true
		}
		if ok0 {
			left = c0
		} else {
			left = pickRandomExcluding(p.Palette, req.RightColor, p.Rand)
		}
		if ok1 {
			right = c1
		} else {
			right = pickRandomExcluding(p.Palette, left, p.Rand)
		}

	case req.Left:
		c, ok := pickByModule(modules, reach, req.RightColor)
		if !ok {
			c = pickRandomExcluding(p.Palette, req.RightColor, p.Rand)
		}
		left = c

	case req.Right:
		c, ok := pickByModule(modules, reach, req.LeftColor)
		if !ok {
			c = pickRandomExcluding(p.Palette, req.LeftColor, p.Rand)
		}
		right = c
	}
	return left, right
}

// pickByModule returns the best candidate with module count > 0 other than excluded.
// If only the excluded color has modules left, it is returned.
func pickByModule(modules map[Color]int, reach ColorSet, excluded Color) (Color, bool) {
	var reachable, other []Color
	for c, m := range modules {
		if m <= 0 || c == excluded {
			continue
		}
		if reach.Has(c) {
			reachable = append(reachable, c)
		} else {
			other = append(other, c)
		}
	}

	rank := func(cs []Color) {
		sort.Slice(cs, func(i, j int) bool {
			if modules[cs[i]] != modules[cs[j]] {
				return modules[cs[i]] > modules[cs[j]]
			}
			return cs[i] < cs[j]
		})
	}
	rank(reachable)
	rank(other)

	if len(reachable) > 0 {
		return reachable[0], true
	}
	if len(other) > 0 {
		return other[0], true
	}
	if excluded.Valid() && modules[excluded] > 0 {
		return excluded, true
	}
	return NoColor, false
}

// RandomPolicy picks a uniformly random palette color different from the sibling lane.
// It ignores the color pool entirely, so levels are not guaranteed to stay solvable.
type RandomPolicy struct {
	Palette []Color
	Rand    Random
}

// Choose implements RefreshPolicy.
func (p RandomPolicy) Choose(req RefreshRequest) (left, right Color) {
	left, right = req.LeftColor, req.RightColor
	if req.Left {
		left = pickRandomExcluding(p.Palette, req.RightColor, p.Rand)
	}
	if req.Right {
		right = pickRandomExcluding(p.Palette, left, p.Rand)
	}
	return left, right
}

// pickRandomExcluding draws uniformly from palette minus exclude.
// When the palette holds nothing else, exclude itself (or the first color) is returned.
func pickRandomExcluding(palette []Color, exclude Color, rng Random) Color {
	candidates := make([]Color, 0, len(palette))
	for _, c := range palette {
		if c != exclude {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		if exclude.Valid() {
			return exclude
		}
		if len(palette) > 0 {
			return palette[0]
		}
		return C0
	}
	return candidates[rng.Intn(len(candidates))]
}
