package core

// Level is the aggregate root of one round: layers, color accounting,
// holding queue, lanes and the random source used for color decisions.
// A Level is owned by a single goroutine.
type Level struct {
	rules     Rules
	layout    Layout
	stack     *LayerStack
	pool      *ColorPool
	queue     *HoldingQueue
	lanes     *LaneSet
	occlusion Occlusion
	policy    RefreshPolicy
	rng       Random

	total    int // Pieces generated; constant for the level
	absorbed int // Pieces permanently placed into lanes
}

// NewLevel builds a level from a colored layout.
// Rules and layout are validated here; a violation is returned as a ValidationError.
func NewLevel(r Rules, layout Layout, rng Random) (*Level, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := layout.Validate(r); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRNG(0)
	}

	layout = layout.Clone()
	rects := make([]Rect, len(layout.Layers))
	pieces := make([][]Piece, len(layout.Layers))
	for i, ls := range layout.Layers {
		rects[i] = ls.Rect
		pieces[i] = ls.Pieces
	}

	lv := &Level{
		rules:     r,
		layout:    layout,
		stack:     NewLayerStack(rects, pieces),
		pool:      NewColorPool(layout.Colors()),
		queue:     NewHoldingQueue(r.QueueCapacity),
		occlusion: NewOcclusion(r),
		rng:       rng,
		total:     layout.Total(),
	}

	palette := r.Palette()
	var left, right Color
	if len(layout.Lanes) == 2 {
		left, right = layout.Lanes[0], layout.Lanes[1]
	} else {
		left, right = InitialLaneColors(lv.pool, palette, rng)
	}
	lv.lanes = NewLaneSet(r.SlotsPerLane, left, right)

	switch r.RefreshPolicy {
	case PolicyRandom:
		lv.policy = RandomPolicy{Palette: palette, Rand: rng}
	default:
		lv.policy = ModulePolicy{
			Pool:      lv.pool,
			Reachable: lv.ReachableColors,
			Palette:   palette,
			Rand:      rng,
		}
	}
	return lv, nil
}

// NewRandomLevel generates a random layout and builds a level from it.
func NewRandomLevel(r Rules, p GenParams, rng Random) (*Level, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRNG(0)
	}
	return NewLevel(r, GenerateLayout(r, p, rng), rng)
}

func (lv *Level) Rules() Rules { return lv.rules }
func (lv *Level) Layout() Layout { return lv.layout.Clone() }
func (lv *Level) Stack() *LayerStack { return lv.stack }
func (lv *Level) Pool() *ColorPool { return lv.pool }
func (lv *Level) Queue() *HoldingQueue { return lv.queue }
func (lv *Level) Lanes() *LaneSet { return lv.lanes }
func (lv *Level) Occlusion() Occlusion { return lv.occlusion }
func (lv *Level) Policy() RefreshPolicy { return lv.policy }
func (lv *Level) Total() int { return lv.total }
func (lv *Level) Absorbed() int { return lv.absorbed }
func (lv *Level) Resident() int { return lv.stack.Resident() }

// SetPolicy replaces the lane refresh policy.
func (lv *Level) SetPolicy(p RefreshPolicy) {
	lv.policy = p
}

// ReachableColors returns the colors with at least one clickable resident piece.
func (lv *Level) ReachableColors() ColorSet {
	return lv.occlusion.ReachableColors(lv.stack)
}

// ClickablePieces returns every resident piece that can be selected now.
func (lv *Level) ClickablePieces() []Hit {
	return lv.occlusion.ClickablePieces(lv.stack)
}

// Cleared reports whether every layer is empty and the queue holds nothing.
func (lv *Level) Cleared() bool {
	return lv.stack.AllCleared() && lv.queue.IsEmpty()
}

// Stalled reports whether the level can make no further progress by clicking:
// something is left to clear but no resident piece is clickable.
func (lv *Level) Stalled() bool {
	if lv.Cleared() {
		return false
	}
	return len(lv.ClickablePieces()) == 0
}

// Conserved reports whether resident + queued + absorbed equals the pieces generated.
func (lv *Level) Conserved() bool {
	return lv.Resident()+lv.queue.Size()+lv.absorbed == lv.total
}

// absorb records a permanent placement of c.
func (lv *Level) absorb(c Color) {
	lv.pool.Decrement(c)
	lv.absorbed++
}

// refresh resets full lanes through the level's policy.
func (lv *Level) refresh() RefreshEvent {
	return lv.lanes.Refresh(lv.policy)
}

// place tries to put c into a lane. On success the placement is counted
// and any lane it filled is refreshed before returning.
func (lv *Level) place(c Color) (Side, RefreshEvent, bool) {
	side, ok := lv.lanes.TryPlace(c)
	if !ok {
		return side, RefreshEvent{}, false
	}
	lv.absorb(c)
	return side, lv.refresh(), true
}

// drain moves queued colors into lanes. Each pass scans the queue from the
// head and places every color a lane accepts at that moment; colors that do
// not fit keep their relative order. Passes repeat until one places nothing,
// so the queue ends with its still-blocked head in front.
func (lv *Level) drain() (placed []Color, refreshes []RefreshEvent) {
	for progress := true; progress; {
		progress = false
		for i := 0; i < lv.queue.Size(); {
			c, _ := lv.queue.At(i)
			_, ev, ok := lv.place(c)
			if !ok {
				i++
				continue
			}
			lv.queue.Take(i)
			placed = append(placed, c)
			if ev.Any() {
				refreshes = append(refreshes, ev)
			}
			progress = true
		}
	}
	return placed, refreshes
}
