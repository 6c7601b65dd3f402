package core

// RoundUpToTriplet returns the smallest multiple of 3 that is >= n (0 for n <= 0).
func RoundUpToTriplet(n int) int {
	if n <= 0 {
		return 0
	}
	return ((n + 2) / 3) * 3
}

// GenerateTripletPalette builds a shuffled color sequence for total pieces.
// The length is rounded up to a multiple of 3. Palette colors are laid out
// three at a time in palette order, cycling when more triplets than colors
// are needed, and the whole sequence is then permuted with rng.
func GenerateTripletPalette(total int, palette []Color, rng Random) []Color {
	adjusted := RoundUpToTriplet(total)
	if len(palette) == 0 || adjusted == 0 {
		return []Color{}
	}
	seq := make([]Color, 0, adjusted)
	for i := 0; len(seq) < adjusted; i++ {
		c := palette[i%len(palette)]
		seq = append(seq, c, c, c)
	}
	shuffle(seq, rng)
	return seq
}

// ColorPool tracks remaining pieces per color for the lifetime of a level.
// A piece leaves the pool when it is absorbed by a lane, not when it is queued,
// so Remaining covers pieces on layers plus pieces in the holding queue.
type ColorPool struct {
	remaining [ColorCount]int
}

// NewColorPool counts occurrences per color in an assignment.
func NewColorPool(colors []Color) *ColorPool {
	p := &ColorPool{}
	for _, c := range colors {
		if c.Valid() {
			p.remaining[c]++
		}
	}
	return p
}

// Remaining returns the remaining piece count of c.
func (p *ColorPool) Remaining(c Color) int {
	if !c.Valid() {
		return 0
	}
	return p.remaining[c]
}

// Modules returns floor(remaining/3) for c. Always derived, never stored.
func (p *ColorPool) Modules(c Color) int {
	return p.Remaining(c) / 3
}

// Total returns the sum of remaining counts.
func (p *ColorPool) Total() int {
	n := 0
	for _, r := range p.remaining {
		n += r
	}
	return n
}

// Decrement records one placement of c. The count is floored at 0.
func (p *ColorPool) Decrement(c Color) {
	if c.Valid() && p.remaining[c] > 0 {
		p.remaining[c]--
	}
}

// ModuleCounts returns a writable snapshot of module counts for colors with at least one module.
func (p *ColorPool) ModuleCounts() map[Color]int {
	out := make(map[Color]int)
	for c := Color(0); c < ColorCount; c++ {
		if m := p.Modules(c); m > 0 {
			out[c] = m
		}
	}
	return out
}

// Clone returns an independent copy.
func (p *ColorPool) Clone() *ColorPool {
	c := *p
	return &c
}
