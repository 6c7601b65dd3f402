package core

// Random is the pseudo-random source a level draws from.
// *math/rand.Rand satisfies it, as does SimpleRNG.
type Random interface {
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// shuffle permutes colors in place (Fisher-Yates).
func shuffle(colors []Color, rng Random) {
	for i := len(colors) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		colors[i], colors[j] = colors[j], colors[i]
	}
}

// randRange returns a random int in [lo, hi]. Returns lo when hi < lo.
func randRange(rng Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
