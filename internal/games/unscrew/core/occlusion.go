package core

// CoverageRatio approximates how much of a piece is hidden by the given rectangles.
// The piece's bounding square is intersected with every rectangle independently;
// the areas are summed, so overlapping covers are counted twice. The ratio is
// clamped to [0, 1]. A degenerate bounding square counts as fully covered.
func CoverageRatio(pc Piece, radius int, covers []Rect) float64 {
	box := pc.Bounds(radius)
	total := box.Area()
	if total == 0 {
		return 1.0
	}
	var covered int64
	for _, r := range covers {
		covered += box.Intersect(r).Area()
	}
	ratio := float64(covered) / float64(total)
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// IsClickable returns true iff the coverage ratio is strictly below threshold.
func IsClickable(pc Piece, radius int, covers []Rect, threshold float64) bool {
	return CoverageRatio(pc, radius, covers) < threshold
}

// Occlusion evaluates clickability against a layer stack using fixed rules.
type Occlusion struct {
	Radius       int
	Threshold    float64
	IncludeEmpty bool // Whether empty layers still cover lower layers
}

// NewOcclusion creates an evaluator from the rules.
func NewOcclusion(r Rules) Occlusion {
	return Occlusion{
		Radius:       r.PieceRadius,
		Threshold:    r.CoverageThreshold,
		IncludeEmpty: r.EmptyLayersOcclude,
	}
}

// Coverage returns the coverage ratio of a piece held by layer idx.
func (o Occlusion) Coverage(s *LayerStack, pc Piece, idx int) float64 {
	return CoverageRatio(pc, o.Radius, s.Above(idx, o.IncludeEmpty))
}

// Clickable reports whether a piece held by layer idx may be selected.
func (o Occlusion) Clickable(s *LayerStack, pc Piece, idx int) bool {
	return o.Coverage(s, pc, idx) < o.Threshold
}

// ReachableColors returns the colors of all resident pieces that are currently clickable.
func (o Occlusion) ReachableColors(s *LayerStack) ColorSet {
	var set ColorSet
	for i, l := range s.Layers() {
		covers := s.Above(i, o.IncludeEmpty)
		for _, pc := range l.Pieces {
			if CoverageRatio(pc, o.Radius, covers) < o.Threshold {
				set = set.Add(pc.Color)
			}
		}
	}
	return set
}

// ClickablePieces returns every resident piece that is currently clickable, bottom layer first.
func (o Occlusion) ClickablePieces(s *LayerStack) []Hit {
	var hits []Hit
	for i, l := range s.Layers() {
		covers := s.Above(i, o.IncludeEmpty)
		for _, pc := range l.Pieces {
			if CoverageRatio(pc, o.Radius, covers) < o.Threshold {
				hits = append(hits, Hit{Piece: pc, Layer: i})
			}
		}
	}
	return hits
}
