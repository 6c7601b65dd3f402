package core

// State represents the round state.
type State uint8

const (
	Playing State = iota
	Won
	Lost
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further clicks are accepted.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// Outcome classifies what a click did.
type Outcome uint8

const (
	OutcomeIgnored  Outcome = iota // Round already over
	OutcomeMiss                    // No piece under the point
	OutcomeBlocked                 // Topmost piece under the point is not clickable
	OutcomePlaced                  // Piece went straight into a lane
	OutcomeQueued                  // Piece went into the holding queue
	OutcomeOverflow                // Queue was full; round lost
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeMiss:
		return "miss"
	case OutcomeBlocked:
		return "blocked"
	case OutcomePlaced:
		return "placed"
	case OutcomeQueued:
		return "queued"
	case OutcomeOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome mutated the level.
func (o Outcome) Changed() bool {
	return o == OutcomePlaced || o == OutcomeQueued
}

// ClickResult describes the resolution of one click.
type ClickResult struct {
	Outcome   Outcome
	Piece     Piece   // Selected piece; zero for ignored and miss
	Layer     int     // Stack index the piece was on
	Side      Side    // Lane used when Outcome is OutcomePlaced
	Coverage  float64 // Coverage ratio of the selected piece
	Drained   []Color // Queued colors moved into lanes by this click, in order
	Refreshes []RefreshEvent
	State     State // Round state after the click
}

// Notifier receives the one-shot round notifications.
type Notifier interface {
	OnWin()
	OnFail()
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	Win  func()
	Fail func()
}

func (n NotifierFuncs) OnWin() {
	if n.Win != nil {
		n.Win()
	}
}

func (n NotifierFuncs) OnFail() {
	if n.Fail != nil {
		n.Fail()
	}
}

// Engine resolves clicks against a level. Every click runs to completion,
// including queue drainage and lane refresh cascades, before returning.
type Engine struct {
	level    *Level
	state    State
	notifier Notifier
	clicks   int // Clicks that changed the level
}

// NewEngine creates an engine in the Playing state. notifier may be nil.
func NewEngine(lv *Level, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = NotifierFuncs{}
	}
	return &Engine{level: lv, state: Playing, notifier: notifier}
}

func (e *Engine) Level() *Level { return e.level }
func (e *Engine) State() State { return e.state }
func (e *Engine) Clicks() int { return e.clicks }

// Stalled reports whether the round is still playing but cannot progress.
func (e *Engine) Stalled() bool {
	return e.state == Playing && e.level.Stalled()
}

// HandleClick resolves a click at world point p.
// Misses and blocked pieces leave the level untouched. A color that no lane
// accepts goes to the holding queue; if the queue is full the round is lost
// and the piece stays on its layer.
func (e *Engine) HandleClick(p Point) ClickResult {
	if e.state != Playing {
		return ClickResult{Outcome: OutcomeIgnored, State: e.state}
	}
	lv := e.level

	hit, ok := lv.stack.HitTest(p, lv.rules.PieceRadius)
	if !ok {
		return ClickResult{Outcome: OutcomeMiss, State: e.state}
	}
	res := ClickResult{
		Piece:    hit.Piece,
		Layer:    hit.Layer,
		Coverage: lv.occlusion.Coverage(lv.stack, hit.Piece, hit.Layer),
	}
	if res.Coverage >= lv.occlusion.Threshold {
		res.Outcome = OutcomeBlocked
		res.State = e.state
		return res
	}

	c := hit.Piece.Color
	if lv.lanes.Accepts(c) {
		lv.stack.Remove(hit.Piece.ID)
		side, ev, _ := lv.place(c)
		res.Outcome = OutcomePlaced
		res.Side = side
		if ev.Any() {
			res.Refreshes = append(res.Refreshes, ev)
		}
	} else {
		if lv.queue.Push(c) == PushOverflow {
			res.Outcome = OutcomeOverflow
			e.state = Lost
			res.State = e.state
			e.notifier.OnFail()
			return res
		}
		lv.stack.Remove(hit.Piece.ID)
		res.Outcome = OutcomeQueued
	}
	e.clicks++

	drained, refreshes := lv.drain()
	res.Drained = drained
	res.Refreshes = append(res.Refreshes, refreshes...)

	e.CheckWin()
	res.State = e.state
	return res
}

// CheckWin moves a playing round to Won when the level is cleared.
// The win notification fires at most once; later calls are no-ops.
func (e *Engine) CheckWin() bool {
	if e.state != Playing {
		return e.state == Won
	}
	if !e.level.Cleared() {
		return false
	}
	e.state = Won
	e.notifier.OnWin()
	return true
}
