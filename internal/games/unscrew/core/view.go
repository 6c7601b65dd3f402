package core

// PieceView is a resident piece as seen by a renderer.
type PieceView struct {
	Piece
	Coverage  float64
	Clickable bool
}

// LayerView is a layer as seen by a renderer.
type LayerView struct {
	Index  int
	Rect   Rect
	Empty  bool
	Pieces []PieceView
}

// LaneView is one lane as seen by a renderer.
type LaneView struct {
	Color  Color
	Filled int
	Slots  int
}

// View is a read-only snapshot of a round. It shares no storage with the level.
type View struct {
	World         Rect
	Layers        []LayerView // Bottom first
	Left, Right   LaneView
	Queue         []Color // Head first
	QueueCapacity int
	Remaining     map[Color]int // Pool counts for colors with pieces left
	Resident      int
	Absorbed      int
	Total         int
	Clicks        int
	State         State
	Stalled       bool
}

// View builds a snapshot of the engine's current round.
func (e *Engine) View() View {
	lv := e.level
	v := lv.view()
	v.Clicks = e.clicks
	v.State = e.state
	v.Stalled = e.state == Playing && v.Stalled
	return v
}

func (lv *Level) view() View {
	v := View{
		World:         lv.layout.World,
		Queue:         lv.queue.Snapshot(),
		QueueCapacity: lv.queue.Capacity(),
		Remaining:     make(map[Color]int),
		Resident:      lv.Resident(),
		Absorbed:      lv.absorbed,
		Total:         lv.total,
		State:         Playing,
	}
	if v.World.Empty() {
		v.World = lv.rules.World()
	}

	clickable := 0
	for i, l := range lv.stack.Layers() {
		covers := lv.stack.Above(i, lv.occlusion.IncludeEmpty)
		layer := LayerView{Index: i, Rect: l.Rect, Empty: l.IsEmpty()}
		for _, pc := range l.Pieces {
			cov := CoverageRatio(pc, lv.occlusion.Radius, covers)
			ok := cov < lv.occlusion.Threshold
			if ok {
				clickable++
			}
			layer.Pieces = append(layer.Pieces, PieceView{Piece: pc, Coverage: cov, Clickable: ok})
		}
		v.Layers = append(v.Layers, layer)
	}
	v.Stalled = clickable == 0 && !lv.Cleared()

	left, right := lv.lanes.Lane(Left), lv.lanes.Lane(Right)
	v.Left = LaneView{Color: left.Color, Filled: left.Filled, Slots: lv.lanes.Slots()}
	v.Right = LaneView{Color: right.Color, Filled: right.Filled, Slots: lv.lanes.Slots()}

	for c := Color(0); c < ColorCount; c++ {
		if n := lv.pool.Remaining(c); n > 0 {
			v.Remaining[c] = n
		}
	}
	return v
}
