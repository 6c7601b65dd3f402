package core

// GenParams holds the random board generation parameters.
type GenParams struct {
	MinWidth, MaxWidth   int // Board width range (inclusive)
	MinHeight, MaxHeight int // Board height range (inclusive)
	Rows                 int // Piece rows per board
	MinCols, MaxCols     int // Piece columns per board (inclusive)
	Inset                int // Distance from board edge to outer piece centers
}

// DefaultGenParams returns parameters tuned for the 800x480 reference world.
func DefaultGenParams() GenParams {
	return GenParams{
		MinWidth:  160,
		MaxWidth:  279,
		MinHeight: 70,
		MaxHeight: 119,
		Rows:      2,
		MinCols:   3,
		MaxCols:   4,
		Inset:     20,
	}
}

// Scale adapts parameters tuned for the reference world to a world of w x h.
// Piece counts are unchanged; sizes never drop below what the inset needs.
func (p GenParams) Scale(w, h int) GenParams {
	sx := func(v int) int { return v * w / DefaultWorldWidth }
	sy := func(v int) int { return v * h / DefaultWorldHeight }
	out := p
	out.MinWidth, out.MaxWidth = sx(p.MinWidth), sx(p.MaxWidth)
	out.MinHeight, out.MaxHeight = sy(p.MinHeight), sy(p.MaxHeight)
	out.Inset = min(sx(p.Inset), sy(p.Inset))
	floor := 2*out.Inset + 1
	out.MinWidth = max(out.MinWidth, floor)
	out.MaxWidth = max(out.MaxWidth, out.MinWidth)
	out.MinHeight = max(out.MinHeight, floor)
	out.MaxHeight = max(out.MaxHeight, out.MinHeight)
	return out
}

// GenerateLayout builds a random colored layout with rules.LayerCount boards.
// Boards are placed uniformly inside the world, each holding a Rows x Cols
// grid of pieces. The total is padded to a multiple of 3 and colors come
// from the triplet palette, so the level decomposes into complete modules.
func GenerateLayout(r Rules, p GenParams, rng Random) Layout {
	world := r.World()
	layout := Layout{ID: "random", Name: "Random", World: world}
	nextID := 0

	for range r.LayerCount {
		w := min(randRange(rng, p.MinWidth, p.MaxWidth), world.W)
		h := min(randRange(rng, p.MinHeight, p.MaxHeight), world.H)
		x := world.X + randRange(rng, 0, world.W-w)
		y := world.Y + randRange(rng, 0, world.H-h)
		rect := R(x, y, w, h)

		cols := randRange(rng, p.MinCols, p.MaxCols)
		var pieces []Piece
		for _, pos := range gridPositions(rect, p.Rows, cols, p.Inset) {
			pieces = append(pieces, Piece{ID: nextID, Pos: pos, Color: NoColor})
			nextID++
		}
		layout.Layers = append(layout.Layers, LayerSpec{Rect: rect, Pieces: pieces})
	}

	PadLayout(&layout, p.Inset, rng)
	AssignColors(&layout, r.Palette(), rng)
	return layout
}

// gridPositions spreads rows x cols piece centers evenly inside rect, inset from the edges.
func gridPositions(rect Rect, rows, cols, inset int) []Point {
	if rows < 1 || cols < 1 {
		return nil
	}
	inner := R(rect.X+inset, rect.Y+inset, max(rect.W-2*inset, 0), max(rect.H-2*inset, 0))
	step := func(span, n, i int) int {
		if n == 1 {
			return span / 2
		}
		return span * i / (n - 1)
	}
	pts := make([]Point, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			pts = append(pts, Pt(inner.X+step(inner.W, cols, col), inner.Y+step(inner.H, rows, row)))
		}
	}
	return pts
}

// PadLayout adds uncolored pieces at random inset positions on random layers
// until the total is a multiple of 3. New pieces get fresh IDs.
func PadLayout(l *Layout, inset int, rng Random) {
	if len(l.Layers) == 0 {
		return
	}
	nextID := 0
	for _, ls := range l.Layers {
		for _, pc := range ls.Pieces {
			nextID = max(nextID, pc.ID+1)
		}
	}
	for l.Total()%3 != 0 {
		ls := &l.Layers[rng.Intn(len(l.Layers))]
		r := ls.Rect
		x := randRange(rng, r.X+inset, r.Right()-inset)
		y := randRange(rng, r.Y+inset, r.Bottom()-inset)
		ls.Pieces = append(ls.Pieces, Piece{ID: nextID, Pos: Pt(x, y), Color: NoColor})
		nextID++
	}
}

// AssignColors colors every piece of l from a shuffled triplet palette.
// The total should already be a multiple of 3 (see PadLayout).
func AssignColors(l *Layout, palette []Color, rng Random) {
	seq := GenerateTripletPalette(l.Total(), palette, rng)
	i := 0
	for li := range l.Layers {
		for pi := range l.Layers[li].Pieces {
			l.Layers[li].Pieces[pi].Color = seq[i]
			i++
		}
	}
}
