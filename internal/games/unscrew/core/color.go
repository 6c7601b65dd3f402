package core

import (
	"fmt"
	"strings"
)

// Color is a logical piece color. It is carried on every piece from creation
// and never derived from a presentation value.
type Color uint8

const (
	C0 Color = iota
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	ColorCount // Sentinel value for iteration
)

// NoColor marks an absent color (e.g. "no exclusion" in refresh picks).
const NoColor Color = 255

// String returns the string representation of a color.
func (c Color) String() string {
	if c < ColorCount {
		return fmt.Sprintf("C%d", uint8(c))
	}
	return "none"
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	if c < ColorCount {
		return rune('0' + c)
	}
	return '?'
}

// Valid reports whether c is one of the enumerated colors.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor converts a string ("C3", "c3" or "3") to a Color.
// Returns NoColor and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "c")
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return NoColor, false
	}
	c := Color(s[0] - '0')
	if !c.Valid() {
		return NoColor, false
	}
	return c, true
}

// Palette returns the first n logical colors in their fixed order.
// n is clamped to [1, ColorCount].
func Palette(n int) []Color {
	if n < 1 {
		n = 1
	}
	if n > int(ColorCount) {
		n = int(ColorCount)
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color(i)
	}
	return colors
}

// ColorSet is a small set of logical colors.
type ColorSet uint16

// Add returns the set with c added.
func (s ColorSet) Add(c Color) ColorSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s ColorSet) Has(c Color) bool {
	return c.Valid() && s&(1<<c) != 0
}

// Colors returns the members in fixed color order.
func (s ColorSet) Colors() []Color {
	out := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
