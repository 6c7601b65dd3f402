package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	store.SaveScore("random", 120)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore("random"); high != 120 {
		t.Errorf("Expected 120 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("tutorial", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("random", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tutorial", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	for _, s := range scores {
		if s.LevelID != "tutorial" {
			t.Errorf("Unexpected level %q", s.LevelID)
		}
		if s.CreatedAt.IsZero() {
			t.Error("CreatedAt was not parsed")
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tutorial")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty level, got %d", high)
	}

	store.SaveScore("tutorial", 100)
	store.SaveScore("tutorial", 300)
	store.SaveScore("tutorial", 200)

	if high, _ = store.HighScore("tutorial"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tutorial", 100)
	store.SaveScore("tutorial", 200)
	store.SaveScore("random", 300)

	if err := store.ClearScores("tutorial"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("tutorial", 10); len(scores) != 0 {
		t.Errorf("Expected 0 tutorial scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("random", 10); len(scores) != 1 {
		t.Error("Random scores should not be affected by clearing tutorial")
	}
}

func TestStoreAllScoresAndLevels(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		store.SaveScore("test", i*10)
	}
	store.SaveScore("alpha", 1)

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}

	levels, err := store.ScoredLevels()
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 2 || levels[0] != "alpha" || levels[1] != "test" {
		t.Errorf("ScoredLevels() = %v", levels)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/subdir/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with home path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "subdir", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under home")
	}
}

func TestSaveRoundGeneratesUUID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(Round{
		LevelID:  "tutorial",
		Seed:     42,
		Outcome:  OutcomeWon,
		Clicks:   12,
		Absorbed: 12,
		Total:    12,
		Score:    620,
		Duration: 1500 * time.Millisecond,
		Session:  "alice",
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRound() returned non-UUID %q", id)
	}

	got, err := store.RoundByID(id)
	if err != nil || got == nil {
		t.Fatalf("RoundByID() = %v, %v", got, err)
	}
	if got.Seed != 42 || got.Outcome != OutcomeWon || got.Score != 620 || got.Session != "alice" {
		t.Errorf("Round not stored faithfully: %+v", got)
	}
	if got.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", got.Duration)
	}
}

func TestSaveRoundRejectsDuplicateAndInvalidIDs(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	if _, err := store.SaveRound(Round{RoundID: id, LevelID: "x", Outcome: OutcomeLost}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRound(Round{RoundID: id, LevelID: "x", Outcome: OutcomeLost}); err == nil {
		t.Error("duplicate round id should fail")
	}
	if _, err := store.SaveRound(Round{RoundID: "not-a-uuid", LevelID: "x"}); err == nil {
		t.Error("invalid round id should fail")
	}
}

func TestRoundByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RoundByID(uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing round, got %+v", got)
	}
}

func TestRecentRounds(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveRound(Round{LevelID: "tutorial", Outcome: OutcomeLost, Clicks: i})
	}
	store.SaveRound(Round{LevelID: "random", Outcome: OutcomeWon, Clicks: 99})

	all, err := store.RecentRounds("", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(all))
	}
	if all[0].LevelID != "random" || all[1].Clicks != 4 {
		t.Errorf("Rounds not newest first: %+v", all)
	}

	tut, err := store.RecentRounds("tutorial", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tut) != 5 {
		t.Errorf("Expected 5 tutorial rounds, got %d", len(tut))
	}
}

func TestRoundStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.RoundStats("tutorial")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Rounds != 0 || empty.WinRate() != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRound(Round{LevelID: "tutorial", Outcome: OutcomeWon, Clicks: 10, Score: 600, Duration: time.Second})
	store.SaveRound(Round{LevelID: "tutorial", Outcome: OutcomeLost, Clicks: 20, Score: 80, Duration: time.Second})
	store.SaveRound(Round{LevelID: "tutorial", Outcome: OutcomeAbandoned, Clicks: 0})
	store.SaveRound(Round{LevelID: "random", Outcome: OutcomeWon, Score: 1000})

	st, err := store.RoundStats("tutorial")
	if err != nil {
		t.Fatal(err)
	}
	if st.Rounds != 3 || st.Wins != 1 || st.Losses != 1 {
		t.Errorf("Counts wrong: %+v", st)
	}
	if st.BestScore != 600 {
		t.Errorf("BestScore = %d, want 600", st.BestScore)
	}
	if st.AvgClicks != 10 {
		t.Errorf("AvgClicks = %v, want 10", st.AvgClicks)
	}
	if st.TotalPlayed != 2*time.Second {
		t.Errorf("TotalPlayed = %v, want 2s", st.TotalPlayed)
	}

	all, err := store.AllRoundStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].LevelID != "random" || all[1].LevelID != "tutorial" {
		t.Errorf("AllRoundStats() = %+v", all)
	}
}
