package core

// Side identifies one of the two collection lanes.
type Side uint8

const (
	Left Side = iota
	Right
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Other returns the sibling side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Lane is one collection lane: a current color and how many slots are filled.
type Lane struct {
	Color  Color
	Filled int
}

// LaneSet holds exactly two lanes with a shared slot count.
// A lane that reaches the slot count stays full only until the next Refresh,
// which the engine runs before the click that filled it returns.
type LaneSet struct {
	lanes [2]Lane
	slots int
}

// NewLaneSet creates two empty lanes with the given colors.
func NewLaneSet(slots int, left, right Color) *LaneSet {
	return &LaneSet{
		lanes: [2]Lane{{Color: left}, {Color: right}},
		slots: slots,
	}
}

// Slots returns the slot count per lane.
func (ls *LaneSet) Slots() int {
	return ls.slots
}

// Lane returns a copy of the lane on the given side.
func (ls *LaneSet) Lane(s Side) Lane {
	return ls.lanes[s]
}

// TryPlace adds c to the first lane (left before right) whose color matches
// and which still has a free slot. ok is false when neither lane accepts it.
func (ls *LaneSet) TryPlace(c Color) (side Side, ok bool) {
	for _, s := range [2]Side{Left, Right} {
		l := &ls.lanes[s]
		if l.Color == c && l.Filled < ls.slots {
			l.Filled++
			return s, true
		}
	}
	return Left, false
}

// Accepts reports whether TryPlace(c) would succeed, without mutating.
func (ls *LaneSet) Accepts(c Color) bool {
	for _, l := range ls.lanes {
		if l.Color == c && l.Filled < ls.slots {
			return true
		}
	}
	return false
}

// Full reports whether the lane on side s has every slot filled.
func (ls *LaneSet) Full(s Side) bool {
	return ls.lanes[s].Filled >= ls.slots
}

func (ls *LaneSet) LeftFull() bool { return ls.Full(Left) }
func (ls *LaneSet) RightFull() bool { return ls.Full(Right) }
func (ls *LaneSet) LeftColor() Color { return ls.lanes[Left].Color }
func (ls *LaneSet) RightColor() Color { return ls.lanes[Right].Color }
func (ls *LaneSet) LeftCount() int { return ls.lanes[Left].Filled }
func (ls *LaneSet) RightCount() int { return ls.lanes[Right].Filled }

// RefreshEvent describes which lanes were reset by Refresh and their new colors.
type RefreshEvent struct {
	Left, Right           bool
	LeftColor, RightColor Color
}

// Any returns true if at least one lane was refreshed.
func (e RefreshEvent) Any() bool {
	return e.Left || e.Right
}

// Refresh resets every full lane to zero and assigns it a color chosen by policy.
// When both lanes are full the policy sees a single request so the left pick
// is made first and can inform the right one.
func (ls *LaneSet) Refresh(policy RefreshPolicy) RefreshEvent {
	req := RefreshRequest{
		Left:       ls.LeftFull(),
		Right:      ls.RightFull(),
		LeftColor:  ls.lanes[Left].Color,
		RightColor: ls.lanes[Right].Color,
	}
	if !req.Left && !req.Right {
		return RefreshEvent{LeftColor: req.LeftColor, RightColor: req.RightColor}
	}
	newLeft, newRight := policy.Choose(req)
	if req.Left {
		ls.lanes[Left] = Lane{Color: newLeft}
	}
	if req.Right {
		ls.lanes[Right] = Lane{Color: newRight}
	}
	return RefreshEvent{
		Left:       req.Left,
		Right:      req.Right,
		LeftColor:  ls.lanes[Left].Color,
		RightColor: ls.lanes[Right].Color,
	}
}

// Clone returns an independent copy.
func (ls *LaneSet) Clone() *LaneSet {
	c := *ls
	return &c
}

// InitialLaneColors picks two distinct colors at random among colors with at
// least one module. Falls back to palette colors when fewer than two qualify.
func InitialLaneColors(pool *ColorPool, palette []Color, rng Random) (left, right Color) {
	candidates := make([]Color, 0, len(palette))
	for _, c := range palette {
		if pool.Modules(c) > 0 {
			candidates = append(candidates, c)
		}
	}
	switch len(candidates) {
	case 0:
		left = pickRandomExcluding(palette, NoColor, rng)
		return left, pickRandomExcluding(palette, left, rng)
	case 1:
		return candidates[0], pickRandomExcluding(palette, candidates[0], rng)
	}
	i := rng.Intn(len(candidates))
	left = candidates[i]
	candidates = append(candidates[:i], candidates[i+1:]...)
	return left, candidates[rng.Intn(len(candidates))]
}
