package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-unscrew/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runes("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runes("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNext, false},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrev, false},
		{"p", runes("p"), core.ActionPause, false},
		{"r", runes("r"), core.ActionRestart, false},
		{"?", runes("?"), core.ActionHelp, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyTab}, &frame) {
		t.Fatal("tab is not a quit key")
	}
	if !frame.Has(core.ActionNext) {
		t.Error("tab should set ActionNext")
	}
	if !km.MapKeyToFrame(runes("q"), &frame) {
		t.Fatal("q is a quit key")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be forwarded to the game")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name  string
		msg   tea.MouseMsg
		click bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			got := km.MapMouseToFrame(tt.msg, &frame)
			if got != tt.click {
				t.Fatalf("MapMouseToFrame = %v, want %v", got, tt.click)
			}
			if tt.click && (frame.Click == nil || *frame.Click != (core.Point{X: 3, Y: 4})) {
				t.Errorf("click = %v, want (3,4)", frame.Click)
			}
			if !tt.click && frame.Click != nil {
				t.Error("no click expected")
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runes("H"), MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextWithColor(1, 0, "Hi", core.ColorRed)
	s.SetCell(5, 1, core.Cell{Rune: '+', Bg: core.ColorDarkGray, Bold: true})
	s.DrawText(0, 2, "plain")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
	if !strings.Contains(lines[0], "Hi") {
		t.Errorf("line 0 = %q, want it to contain Hi", lines[0])
	}
	if !strings.HasPrefix(lines[2], "plain") {
		t.Errorf("default cells should be written unstyled, got %q", lines[2])
	}
}

func TestSameStyle(t *testing.T) {
	a := core.Cell{Rune: 'a', Fg: core.ColorRed}
	if !sameStyle(a, core.Cell{Rune: 'b', Fg: core.ColorRed}) {
		t.Error("runes do not affect the style")
	}
	if sameStyle(a, core.Cell{Rune: 'a', Fg: core.ColorRed, Bold: true}) {
		t.Error("bold differs")
	}
	if sameStyle(a, core.Cell{Rune: 'a', Fg: core.ColorRed, Bg: core.ColorGray}) {
		t.Error("background differs")
	}
}
