package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// repeat returns n copies of c.
func repeat(c core.Color, n int) []core.Color {
	out := make([]core.Color, n)
	for i := range out {
		out[i] = c
	}
	return out
}

// row lays colors out left to right on one line, 40 units apart, starting at (x, y).
func row(firstID, x, y int, colors ...core.Color) []core.Piece {
	pieces := make([]core.Piece, len(colors))
	for i, c := range colors {
		pieces[i] = core.Piece{ID: firstID + i, Pos: core.Pt(x+40*i, y), Color: c}
	}
	return pieces
}

// flatLayout is a single full-world layer holding pieces.
func flatLayout(lanes []core.Color, pieces []core.Piece) core.Layout {
	return core.Layout{
		ID:     "flat",
		World:  core.R(0, 0, 800, 480),
		Layers: []core.LayerSpec{{Rect: core.R(0, 0, 800, 480), Pieces: pieces}},
		Lanes:  lanes,
	}
}

// counter counts win and fail notifications.
type counter struct {
	wins, fails int
}

func (c *counter) OnWin()  { c.wins++ }
func (c *counter) OnFail() { c.fails++ }

// fixedPolicy always refreshes to the same colors.
type fixedPolicy struct {
	left, right core.Color
}

func (p fixedPolicy) Choose(req core.RefreshRequest) (core.Color, core.Color) {
	return p.left, p.right
}

func newEngine(t *testing.T, r core.Rules, layout core.Layout) (*core.Engine, *counter) {
	t.Helper()
	lv, err := core.NewLevel(r, layout, core.NewRNG(42))
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	n := &counter{}
	return core.NewEngine(lv, n), n
}

// click clicks the center of a piece and checks conservation afterwards.
func click(t *testing.T, e *core.Engine, pc core.Piece) core.ClickResult {
	t.Helper()
	res := e.HandleClick(pc.Pos)
	if !e.Level().Conserved() {
		t.Fatalf("conservation broken after clicking piece %d", pc.ID)
	}
	return res
}
