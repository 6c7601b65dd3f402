package core

import (
	"fmt"
	"strings"
)

// RenderASCII draws a round onto a cols x rows character grid followed by a
// status block. Layers are filled back to front with their letter ('a' is the
// bottom layer); clickable pieces show their color digit and covered pieces
// show '#'.
func RenderASCII(v View, cols, rows int) string {
	if cols < 1 || rows < 1 || v.World.Empty() {
		return ""
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	toCell := func(p Point) (int, int) {
		cx := (p.X - v.World.X) * cols / v.World.W
		cy := (p.Y - v.World.Y) * rows / v.World.H
		return cx, cy
	}
	inGrid := func(cx, cy int) bool {
		return cx >= 0 && cx < cols && cy >= 0 && cy < rows
	}

	// Boards first, then every piece on top so covered pieces stay visible as '#'.
	for _, l := range v.Layers {
		ch := rune('a' + l.Index%26)
		x0, y0 := toCell(Pt(l.Rect.X, l.Rect.Y))
		x1, y1 := toCell(Pt(l.Rect.Right()-1, l.Rect.Bottom()-1))
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				if inGrid(cx, cy) {
					grid[cy][cx] = ch
				}
			}
		}
	}
	for _, l := range v.Layers {
		for _, pc := range l.Pieces {
			cx, cy := toCell(pc.Pos)
			if !inGrid(cx, cy) {
				continue
			}
			if pc.Clickable {
				grid[cy][cx] = pc.Color.Char()
			} else {
				grid[cy][cx] = '#'
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "lanes: %s %d/%d | %s %d/%d\n",
		v.Left.Color, v.Left.Filled, v.Left.Slots,
		v.Right.Color, v.Right.Filled, v.Right.Slots)
	queue := make([]string, len(v.Queue))
	for i, c := range v.Queue {
		queue[i] = c.String()
	}
	fmt.Fprintf(&sb, "queue: [%s] %d/%d\n", strings.Join(queue, " "), len(v.Queue), v.QueueCapacity)
	fmt.Fprintf(&sb, "pieces: %d resident, %d absorbed, %d total\n", v.Resident, v.Absorbed, v.Total)
	fmt.Fprintf(&sb, "state: %s", v.State)
	if v.Stalled {
		sb.WriteString(" (stalled)")
	}
	sb.WriteByte('\n')
	return sb.String()
}
