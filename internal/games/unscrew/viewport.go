package unscrew

import (
	platformcore "github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// World units per terminal cell for generated levels. Cells are about
// twice as tall as wide, so this keeps world units roughly square.
const (
	unitsPerCol = 4
	unitsPerRow = 8
)

// viewport maps the level world onto the play area of the screen.
type viewport struct {
	area  platformcore.Rect // Screen cells
	world core.Rect         // World units
}

func (v viewport) valid() bool {
	return !v.area.Empty() && !v.world.Empty()
}

// toCell returns the screen cell a world point is drawn in, clamped to the area.
func (v viewport) toCell(p core.Point) platformcore.Point {
	cx := v.area.X + (p.X-v.world.X)*v.area.W/v.world.W
	cy := v.area.Y + (p.Y-v.world.Y)*v.area.H/v.world.H
	return platformcore.Point{
		X: platformcore.Clamp(cx, v.area.X, v.area.Right()-1),
		Y: platformcore.Clamp(cy, v.area.Y, v.area.Bottom()-1),
	}
}

// toWorld returns the world point at the center of screen cell c.
func (v viewport) toWorld(c platformcore.Point) core.Point {
	x := v.world.X + (2*(c.X-v.area.X)+1)*v.world.W/(2*v.area.W)
	y := v.world.Y + (2*(c.Y-v.area.Y)+1)*v.world.H/(2*v.area.H)
	return core.Pt(x, y)
}

// toCells returns the smallest cell rectangle covering world rectangle r.
func (v viewport) toCells(r core.Rect) platformcore.Rect {
	x0 := v.area.X + (r.X-v.world.X)*v.area.W/v.world.W
	y0 := v.area.Y + (r.Y-v.world.Y)*v.area.H/v.world.H
	x1 := v.area.X + ceilDiv((r.Right()-v.world.X)*v.area.W, v.world.W)
	y1 := v.area.Y + ceilDiv((r.Bottom()-v.world.Y)*v.area.H, v.world.H)
	return platformcore.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}

// generatedWorld returns the world rectangle for a generated level drawn in area.
func generatedWorld(area platformcore.Rect) core.Rect {
	return core.R(0, 0, area.W*unitsPerCol, area.H*unitsPerRow)
}

// scaledRadius shrinks the reference piece radius for worlds smaller than the reference one.
func scaledRadius(radius, w, h int) int {
	s := min(float64(w)/core.DefaultWorldWidth, float64(h)/core.DefaultWorldHeight)
	if s >= 1 {
		return radius
	}
	return max(2, int(float64(radius)*s+0.5))
}
