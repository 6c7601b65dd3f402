package unscrew

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// Glyphs
const (
	glyphClickable = '●'
	glyphCovered   = '○'
	glyphSlotFull  = '■'
	glyphSlotEmpty = '□'
)

// colorNames maps config palette names to terminal colors.
var colorNames = map[string]platformcore.Color{
	"red":            platformcore.ColorRed,
	"green":          platformcore.ColorGreen,
	"yellow":         platformcore.ColorYellow,
	"blue":           platformcore.ColorBlue,
	"magenta":        platformcore.ColorMagenta,
	"cyan":           platformcore.ColorCyan,
	"white":          platformcore.ColorWhite,
	"orange":         platformcore.ColorOrange,
	"pink":           platformcore.ColorPink,
	"teal":           platformcore.ColorTeal,
	"gray":           platformcore.ColorGray,
	"bright_red":     platformcore.ColorBrightRed,
	"bright_green":   platformcore.ColorBrightGreen,
	"bright_yellow":  platformcore.ColorBrightYellow,
	"bright_blue":    platformcore.ColorBrightBlue,
	"bright_magenta": platformcore.ColorBrightMagenta,
	"bright_cyan":    platformcore.ColorBrightCyan,
}

var defaultPalette = []platformcore.Color{
	platformcore.ColorRed,
	platformcore.ColorGreen,
	platformcore.ColorYellow,
	platformcore.ColorBlue,
	platformcore.ColorMagenta,
	platformcore.ColorCyan,
	platformcore.ColorOrange,
	platformcore.ColorPink,
}

// layerShades cycles the board outline colors, bottom first.
var layerShades = []platformcore.Color{
	platformcore.ColorGray,
	platformcore.ColorWhite,
	platformcore.ColorTeal,
	platformcore.ColorBrightBlue,
	platformcore.ColorBrightWhite,
}

// paletteColors resolves config names; unknown or missing entries keep the default.
func paletteColors(names []string) []platformcore.Color {
	out := append([]platformcore.Color(nil), defaultPalette...)
	for i, name := range names {
		if i >= len(out) {
			break
		}
		if c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			out[i] = c
		}
	}
	return out
}

// colorOf returns the terminal color of a logical color.
func (g *Game) colorOf(c core.Color) platformcore.Color {
	if !c.Valid() || int(c) >= len(g.palette) {
		return platformcore.ColorGray
	}
	return g.palette[c]
}

// fadeTicks is how long an emptied board stays visible when empty boards do not occlude.
func (g *Game) fadeTicks() uint64 {
	return uint64(g.tickRate)
}

func (g *Game) layerDrawn(l core.LayerView) bool {
	if !l.Empty || g.engine == nil || g.engine.Level().Rules().EmptyLayersOcclude {
		return true
	}
	at, ok := g.emptiedAt[l.Index]
	return ok && g.tick-at < g.fadeTicks()
}

func (g *Game) pieceDrawn(pv core.PieceView) bool {
	return pv.Clickable || g.cfg.Display.ShowCoverage
}

func onBorder(r platformcore.Rect, c platformcore.Point) bool {
	if !r.Contains(c) {
		return false
	}
	return c.X == r.X || c.X == r.Right()-1 || c.Y == r.Y || c.Y == r.Bottom()-1
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.loadErr != "":
		g.renderOverlay(dst, "Cannot start level", truncate(g.loadErr, dst.Width()-6))
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	case g.engine == nil:
		return
	}

	g.renderBoards(dst)
	g.renderCursor(dst)
	g.renderFooter(dst)

	switch {
	case g.showHelp:
		g.renderHelp(dst)
	case g.view.State == core.Won:
		g.renderOverlay(dst, "Cleared!", fmt.Sprintf("Score %d | R: play again", g.score()))
	case g.view.State == core.Lost:
		g.renderOverlay(dst, "Queue overflow", fmt.Sprintf("Score %d | R: try again", g.score()))
	case g.view.Stalled:
		g.renderOverlay(dst, "No moves left", "Every piece is covered | R: restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Unscrew"
	if g.engine != nil {
		v := g.view
		hud = fmt.Sprintf(" Unscrew | %s | Score: %d | Pieces: %d/%d | Clicks: %d",
			g.LevelID(), g.score(), v.Resident, v.Total, v.Clicks)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	if g.message != "" {
		x := max(dst.Width()-utf8.RuneCountInString(g.message)-1, utf8.RuneCountInString(hud)+2)
		dst.DrawTextWithColor(x, 0, g.message, platformcore.ColorBrightYellow)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoards draws layers back to front: each board outline, then its pieces.
func (g *Game) renderBoards(dst *platformcore.Screen) {
	for _, l := range g.view.Layers {
		if !g.layerDrawn(l) {
			continue
		}
		shade := layerShades[l.Index%len(layerShades)]
		if l.Empty {
			shade = platformcore.ColorDarkGray
		}
		dst.DrawBox(g.vp.toCells(l.Rect), shade)

		for _, pv := range l.Pieces {
			if !g.pieceDrawn(pv) {
				continue
			}
			c := g.vp.toCell(pv.Pos)
			cell := platformcore.Cell{Rune: glyphCovered, Fg: g.colorOf(pv.Color)}
			if pv.Clickable {
				cell.Rune = glyphClickable
				cell.Bold = true
			}
			dst.SetCell(c.X, c.Y, cell)
		}
	}
}

func (g *Game) renderCursor(dst *platformcore.Screen) {
	if g.over() {
		return
	}
	cell := dst.GetCell(g.cursor.X, g.cursor.Y)
	if cell.Rune == ' ' {
		cell.Rune = '+'
		cell.Fg = platformcore.ColorBrightWhite
	}
	cell.Bg = platformcore.ColorDarkGray
	dst.SetCell(g.cursor.X, g.cursor.Y, cell)
}

// renderFooter draws lanes, the holding queue and the controls hint.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - footerHeight
	dst.DrawHLine(0, y, dst.Width(), '─', platformcore.ColorGray)

	x := 1
	x = g.drawLane(dst, x, y+1, "L", g.view.Left)
	x = g.drawLane(dst, x+2, y+1, "R", g.view.Right)

	x += 3
	dst.DrawTextWithColor(x, y+1, "Queue:", platformcore.ColorGray)
	x += 7
	for i := range g.view.QueueCapacity {
		if i < len(g.view.Queue) {
			c := g.view.Queue[i]
			dst.SetCell(x, y+1, platformcore.Cell{Rune: glyphClickable, Fg: g.colorOf(c), Bold: true})
		} else {
			dst.SetWithColor(x, y+1, '_', platformcore.ColorGray)
		}
		x += 2
	}
	dst.DrawTextWithColor(x, y+1, fmt.Sprintf("%d/%d", len(g.view.Queue), g.view.QueueCapacity), platformcore.ColorGray)

	dst.DrawTextWithColor(0, y+2, " Click/Space: unscrew | Tab: next | P: pause | R: restart | H: history | ?: help | Q: quit", platformcore.ColorGray)
}

// drawLane draws one lane and returns the column after it.
func (g *Game) drawLane(dst *platformcore.Screen, x, y int, label string, lane core.LaneView) int {
	fg := g.colorOf(lane.Color)
	dst.DrawTextWithColor(x, y, label+":", platformcore.ColorGray)
	x += 3
	dst.DrawTextWithColor(x, y, lane.Color.String(), fg)
	x += 3
	for i := range lane.Slots {
		r := glyphSlotEmpty
		if i < lane.Filled {
			r = glyphSlotFull
		}
		dst.SetWithColor(x, y, r, fg)
		x++
	}
	return x
}

func (g *Game) renderHelp(dst *platformcore.Screen) {
	lines := []string{
		"Unscrew every piece. Each lane takes 3 of its color.",
		"Pieces mostly covered by boards above cannot be taken.",
		"A piece no lane takes waits in the holding queue;",
		"the round is lost when the queue overflows.",
		"",
		"Mouse click or Space/Enter at the cursor unscrews.",
		"Tab / Shift+Tab jump between free pieces.",
		"R starts a new round, H shows past rounds.",
		"? closes this help.",
	}
	g.renderBox(dst, lines)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	g.renderBox(dst, []string{line1, "", line2})
}

func (g *Game) renderBox(dst *platformcore.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l))
	}
	boxW := min(maxLen+4, dst.Width())
	boxH := len(lines) + 2
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, platformcore.ColorWhite)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l, platformcore.ColorBrightWhite)
	}
}

func truncate(s string, n int) string {
	if n <= 3 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
