package core

// Layer is a rectangular region owning an ordered collection of pieces.
type Layer struct {
	Index  int     // Position in the stack; higher is closer to the viewer
	Rect   Rect    // Layer bounds
	Pieces []Piece // Resident pieces; order carries no logical meaning
}

// IsEmpty returns true if no pieces remain on the layer.
// An empty layer still occludes layers below it.
func (l *Layer) IsEmpty() bool {
	return len(l.Pieces) == 0
}

// indexOf returns the slice index of the piece with the given ID, or -1.
func (l *Layer) indexOf(id int) int {
	for i := range l.Pieces {
		if l.Pieces[i].ID == id {
			return i
		}
	}
	return -1
}

// remove deletes the piece with the given ID, preserving order.
func (l *Layer) remove(id int) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.Pieces = append(l.Pieces[:i], l.Pieces[i+1:]...)
	return true
}

// Hit is the result of a successful hit test.
type Hit struct {
	Piece Piece
	Layer int // Stack index of the owning layer
}

// LayerStack is the back-to-front sequence of layers.
// Insertion order is stacking order: the last layer is the topmost.
type LayerStack struct {
	layers []*Layer
}

// NewLayerStack creates a stack from rectangles and their pieces, bottom first.
// pieces[i] belongs to rects[i]; missing entries leave the layer empty.
func NewLayerStack(rects []Rect, pieces [][]Piece) *LayerStack {
	s := &LayerStack{layers: make([]*Layer, 0, len(rects))}
	for i, r := range rects {
		var ps []Piece
		if i < len(pieces) {
			ps = append(ps, pieces[i]...)
		}
		s.layers = append(s.layers, &Layer{Index: i, Rect: r, Pieces: ps})
	}
	return s
}

// Len returns the number of layers.
func (s *LayerStack) Len() int {
	return len(s.layers)
}

// Layer returns the layer at stack index i, or nil when out of range.
func (s *LayerStack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom first. The slice is shared; callers must not modify it.
func (s *LayerStack) Layers() []*Layer {
	return s.layers
}

// HitTest scans layers top-down and returns the first piece whose hit region
// contains p. Only one piece is returned even if several regions overlap p.
func (s *LayerStack) HitTest(p Point, radius int) (Hit, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		for _, pc := range layer.Pieces {
			if pc.Contains(p, radius) {
				return Hit{Piece: pc, Layer: i}, true
			}
		}
	}
	return Hit{}, false
}

// Above returns the rectangles of all layers strictly above stack index idx.
// When includeEmpty is false, layers without resident pieces are skipped.
func (s *LayerStack) Above(idx int, includeEmpty bool) []Rect {
	if idx < 0 || idx >= len(s.layers) {
		return nil
	}
	rects := make([]Rect, 0, len(s.layers)-idx-1)
	for i := len(s.layers) - 1; i > idx; i-- {
		if !includeEmpty && s.layers[i].IsEmpty() {
			continue
		}
		rects = append(rects, s.layers[i].Rect)
	}
	return rects
}

// Holder returns the stack index of the layer that owns the piece, or -1.
func (s *LayerStack) Holder(pieceID int) int {
	for i, l := range s.layers {
		if l.indexOf(pieceID) >= 0 {
			return i
		}
	}
	return -1
}

// Remove takes the piece off its owning layer.
// Returns false if no layer holds it.
func (s *LayerStack) Remove(pieceID int) bool {
	for _, l := range s.layers {
		if l.remove(pieceID) {
			return true
		}
	}
	return false
}

// Resident returns the number of pieces still on layers.
func (s *LayerStack) Resident() int {
	n := 0
	for _, l := range s.layers {
		n += len(l.Pieces)
	}
	return n
}

// AllCleared returns true if every layer is empty.
func (s *LayerStack) AllCleared() bool {
	return s.Resident() == 0
}

// CountByColor returns resident piece counts per color.
func (s *LayerStack) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, l := range s.layers {
		for _, pc := range l.Pieces {
			counts[pc.Color]++
		}
	}
	return counts
}

// Clone returns a deep copy of the stack.
func (s *LayerStack) Clone() *LayerStack {
	c := &LayerStack{layers: make([]*Layer, len(s.layers))}
	for i, l := range s.layers {
		ps := make([]Piece, len(l.Pieces))
		copy(ps, l.Pieces)
		c.layers[i] = &Layer{Index: l.Index, Rect: l.Rect, Pieces: ps}
	}
	return c
}
