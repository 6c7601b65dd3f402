package core

import "fmt"

// LayerSpec is one layer of a layout before it is turned into a live stack.
type LayerSpec struct {
	Rect   Rect
	Pieces []Piece
}

// Layout describes the initial geometry and colors of a level, bottom layer first.
type Layout struct {
	ID     string
	Name   string
	World  Rect
	Layers []LayerSpec
	Lanes  []Color // Optional starting lane colors, left then right
}

// Total returns the number of pieces across all layers.
func (l Layout) Total() int {
	n := 0
	for _, ls := range l.Layers {
		n += len(ls.Pieces)
	}
	return n
}

// Colored reports whether every piece carries a valid color.
func (l Layout) Colored() bool {
	for _, ls := range l.Layers {
		for _, pc := range ls.Pieces {
			if !pc.Color.Valid() {
				return false
			}
		}
	}
	return true
}

// Uncolored reports whether no piece carries a color yet.
func (l Layout) Uncolored() bool {
	for _, ls := range l.Layers {
		for _, pc := range ls.Pieces {
			if pc.Color.Valid() {
				return false
			}
		}
	}
	return true
}

// Colors returns the colors of all pieces in layer order.
func (l Layout) Colors() []Color {
	out := make([]Color, 0, l.Total())
	for _, ls := range l.Layers {
		for _, pc := range ls.Pieces {
			out = append(out, pc.Color)
		}
	}
	return out
}

// Clone returns a deep copy.
func (l Layout) Clone() Layout {
	c := l
	c.Lanes = append([]Color(nil), l.Lanes...)
	c.Layers = make([]LayerSpec, len(l.Layers))
	for i, ls := range l.Layers {
		c.Layers[i] = LayerSpec{Rect: ls.Rect, Pieces: append([]Piece(nil), ls.Pieces...)}
	}
	return c
}

// Validate checks a colored layout against the rules.
// Checks:
//   - At least one layer, each with a non-empty rectangle
//   - Piece IDs are unique
//   - Every piece color belongs to the palette
//   - Every color occurs a multiple of 3 times
//   - Starting lanes, when given, are two palette colors
func (l Layout) Validate(r Rules) error {
	if len(l.Layers) == 0 {
		return invalidLayout("layout has no layers")
	}
	palette := ColorSet(0)
	for _, c := range r.Palette() {
		palette = palette.Add(c)
	}
	if len(l.Lanes) != 0 {
		if len(l.Lanes) != 2 {
			return invalidLayout(fmt.Sprintf("expected 2 starting lane colors, got %d", len(l.Lanes)))
		}
		for _, c := range l.Lanes {
			if !palette.Has(c) {
				return invalidLayout(fmt.Sprintf("starting lane color %s outside the palette", c))
			}
		}
	}
	seen := make(map[int]bool)
	var counts [ColorCount]int
	for i, ls := range l.Layers {
		if ls.Rect.Empty() {
			return invalidLayout(fmt.Sprintf("layer %d has an empty rectangle", i))
		}
		for _, pc := range ls.Pieces {
			if seen[pc.ID] {
				return invalidLayout(fmt.Sprintf("duplicate piece id %d", pc.ID))
			}
			seen[pc.ID] = true
			if !palette.Has(pc.Color) {
				return invalidLayout(fmt.Sprintf("piece %d has color %s outside the palette", pc.ID, pc.Color))
			}
			counts[pc.Color]++
		}
	}
	for c, n := range counts {
		if n%3 != 0 {
			return invalidLayout(fmt.Sprintf("color %s occurs %d times, not a multiple of 3", Color(c), n))
		}
	}
	return nil
}

func invalidLayout(msg string) error {
	return ValidationError{Code: "INVALID_LAYOUT", Message: msg}
}
