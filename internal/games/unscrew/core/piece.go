package core

// Piece is a single collectible unit resident on exactly one layer.
// Once removed from its layer it only survives as a color token
// (queued or absorbed by a lane).
type Piece struct {
	ID    int   // Unique within a level
	Pos   Point // Center of the piece
	Color Color
}

// Contains reports whether p lies in the circular hit region of the piece.
// The boundary is inclusive.
func (pc Piece) Contains(p Point, radius int) bool {
	dx := int64(p.X - pc.Pos.X)
	dy := int64(p.Y - pc.Pos.Y)
	r := int64(radius)
	return dx*dx+dy*dy <= r*r
}

// Bounds returns the bounding square of the piece (side = 2*radius).
func (pc Piece) Bounds(radius int) Rect {
	return Rect{X: pc.Pos.X - radius, Y: pc.Pos.Y - radius, W: 2 * radius, H: 2 * radius}
}
