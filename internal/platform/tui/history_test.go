package tui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

func seedRounds(t *testing.T, store *storage.Store) {
	t.Helper()
	rounds := []storage.Round{
		{LevelID: "alpha", Outcome: storage.OutcomeWon, Score: 500, Clicks: 12, Duration: time.Minute},
		{LevelID: "alpha", Outcome: storage.OutcomeLost, Score: 80, Clicks: 9, Duration: 30 * time.Second},
		{LevelID: "beta", Outcome: storage.OutcomeWon, Score: 650, Clicks: 15, Duration: 90 * time.Second},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound failed: %v", err)
		}
	}
}

func TestHistoryTabs(t *testing.T) {
	store := openTestStore(t)
	seedRounds(t, store)

	m := NewHistoryModel(store, "beta", 100, 30)
	if want := []string{"", "alpha", "beta"}; !slices.Equal(m.Levels(), want) {
		t.Fatalf("Levels = %v, want %v", m.Levels(), want)
	}
	if m.currentLevel() != "beta" || len(m.Rounds()) != 1 {
		t.Fatalf("preselected %q with %d rounds", m.currentLevel(), len(m.Rounds()))
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(HistoryModel)
	if m.currentLevel() != "" || len(m.Rounds()) != 3 {
		t.Errorf("tab should wrap to all levels, got %q with %d rounds", m.currentLevel(), len(m.Rounds()))
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(HistoryModel)
	if m.currentLevel() != "beta" {
		t.Errorf("shift+tab should wrap back, got %q", m.currentLevel())
	}

	view := m.View()
	if !strings.Contains(view, "ROUND HISTORY - beta") {
		t.Error("title should name the level")
	}
	if !strings.Contains(view, "win rate 100%") {
		t.Errorf("stats line missing from view")
	}
}

func TestHistoryStatsLine(t *testing.T) {
	store := openTestStore(t)
	seedRounds(t, store)

	m := NewHistoryModel(store, "", 60, 24)
	line := m.statsLine()
	for _, want := range []string{"3 rounds", "2 won", "1 lost", "win rate 67%", "best 650", "avg clicks 12.0", "played 3m0s"} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q missing %q", line, want)
		}
	}
}

func TestHistoryEmpty(t *testing.T) {
	m := NewHistoryModel(nil, "alpha", 60, 24)
	if len(m.Levels()) != 1 || len(m.Rounds()) != 0 {
		t.Fatalf("levels=%v rounds=%d", m.Levels(), len(m.Rounds()))
	}
	if !strings.Contains(m.View(), "No rounds recorded yet.") {
		t.Error("empty history should say so")
	}
}

func TestHistoryBack(t *testing.T) {
	m := NewHistoryModel(nil, "", 60, 24)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(HistoryModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("standalone back should quit the program and report going back")
	}

	e := newEmbeddedHistory(nil, "", 60, 24)
	updated, cmd = e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	h := updated.(HistoryModel)
	if !h.closed || h.IsGoingBack() || cmd != nil {
		t.Error("embedded back should only close the view")
	}
}

func TestSumStats(t *testing.T) {
	sum := sumStats([]storage.RoundStats{
		{Rounds: 2, Wins: 1, Losses: 1, BestScore: 100, AvgClicks: 10, TotalPlayed: time.Minute},
		{Rounds: 1, Wins: 1, BestScore: 300, AvgClicks: 4, TotalPlayed: time.Second},
	})
	if sum.Rounds != 3 || sum.Wins != 2 || sum.Losses != 1 || sum.BestScore != 300 {
		t.Errorf("unexpected sum: %+v", sum)
	}
	if sum.AvgClicks != 8 {
		t.Errorf("AvgClicks = %v, want 8", sum.AvgClicks)
	}
	if sum.TotalPlayed != 61*time.Second {
		t.Errorf("TotalPlayed = %v", sum.TotalPlayed)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                       "0:00",
		59 * time.Second:        "0:59",
		61500 * time.Millisecond: "1:02",
		12 * time.Minute:        "12:00",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestMenuNavigation(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("tower", 99); err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}

	items := []MenuItem{
		{LevelID: "random", Title: "Random"},
		{LevelID: "tower", Title: "Tower", Detail: "18 pieces"},
	}
	m := NewMenuModel(items, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if !strings.Contains(m.View(), "best 99") {
		t.Error("menu should show the high score")
	}

	press := func(msg tea.KeyMsg) tea.Cmd {
		updated, cmd := m.Update(msg)
		m = updated.(MenuModel)
		return cmd
	}

	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyUp})
	press(tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	if cmd := press(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("select should quit the menu")
	}
	if m.Selected() == nil || m.Selected().LevelID != "tower" {
		t.Errorf("selected = %v, want tower", m.Selected())
	}
}

func TestMenuHistoryAndResize(t *testing.T) {
	m := NewMenuModel([]MenuItem{{LevelID: "random", Title: "Random"}}, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(MenuModel)
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config size %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(MenuModel)
	if !m.WantsHistory() {
		t.Error("tab should open the history")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q", got)
	}
}
