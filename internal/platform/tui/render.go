package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-unscrew/internal/core"
)

// cellStyle returns the lipgloss style for a cell's attributes.
func cellStyle(c core.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code := c.Fg.ANSI(); code != "" {
		style = style.Foreground(lipgloss.Color(code))
	}
	if code := c.Bg.ANSI(); code != "" {
		style = style.Background(lipgloss.Color(code))
	}
	if c.Bold {
		style = style.Bold(true)
	}
	return style
}

// sameStyle reports whether two cells can share one styled run.
func sameStyle(a, b core.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Bold == b.Bold
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same attributes to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if !sameStyle(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault && !start.Bold {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(cellStyle(start).Render(run.String()))
		}
	}
	return sb.String()
}
