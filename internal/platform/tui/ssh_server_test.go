package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return next, cmd
}

func TestSessionMenuGameMenu(t *testing.T) {
	store := openTestStore(t)
	items := []MenuItem{
		{LevelID: "random", Title: "Random"},
		{LevelID: "tower", Title: "Tower"},
	}
	var recorded []storage.Round
	m := NewSessionModel(fakeGameID, items, store, testConfig(), "bob", func(r storage.Round) {
		recorded = append(recorded, r)
	})

	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil || cmd == nil {
		t.Fatal("select should start the game and its tick loop")
	}
	g, ok := m.game.game.(*fakeGame)
	if !ok {
		t.Fatalf("game is %T", m.game.game)
	}
	if g.level != "tower" || g.resets != 1 {
		t.Errorf("level=%q resets=%d, want tower and 1", g.level, g.resets)
	}

	for range 3 {
		m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m, _ = sessionSend(t, m, TickMsg{Loop: m.game.loop})
	}
	if len(recorded) != 1 || recorded[0].Session != "bob" || recorded[0].LevelID != "tower" {
		t.Fatalf("recorded = %+v", recorded)
	}

	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.game != nil {
		t.Fatal("esc after the round should return to the menu")
	}
	if _, ok := m.menu.best["tower"]; !ok {
		t.Error("menu should show the new high score")
	}

	// A tick left over from the finished game is ignored by the menu
	m, _ = sessionSend(t, m, TickMsg{})
	m, cmd = sessionSend(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestSessionHistory(t *testing.T) {
	m := NewSessionModel(fakeGameID, []MenuItem{{LevelID: "random", Title: "Random"}}, nil, testConfig(), "bob", nil)

	m, cmd := sessionSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.history == nil || cmd != nil {
		t.Fatal("tab should open the history without quitting")
	}

	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.history != nil || m.quitting {
		t.Error("esc should return to the menu")
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" || cfg.DBPath != "~/.unscrew/scores.db" || cfg.TickRate <= 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
