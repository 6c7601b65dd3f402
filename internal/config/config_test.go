package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// isolate points home and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home, wd = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(defaultUnscrewYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	want := DefaultUnscrewConfig()
	if cfg.Rules != want.Rules {
		t.Errorf("rules = %+v, want %+v", cfg.Rules, want.Rules)
	}
	if cfg.Generation != want.Generation {
		t.Errorf("generation = %+v, want %+v", cfg.Generation, want.Generation)
	}
	if cfg.Scoring != want.Scoring {
		t.Errorf("scoring = %+v, want %+v", cfg.Scoring, want.Scoring)
	}
	if len(cfg.Display.Palette) != len(want.Display.Palette) {
		t.Errorf("palette has %d entries, want %d", len(cfg.Display.Palette), len(want.Display.Palette))
	}
}

func TestDefaultRulesMatchEngine(t *testing.T) {
	got := DefaultUnscrewConfig().CoreRules(core.DefaultWorldWidth, core.DefaultWorldHeight)
	if got != core.DefaultRules() {
		t.Errorf("CoreRules = %+v, want %+v", got, core.DefaultRules())
	}
	if err := DefaultUnscrewConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)
	cfg, err := LoadUnscrew("")
	if err != nil {
		t.Fatalf("LoadUnscrew: %v", err)
	}
	if cfg.Rules.QueueCapacity != 4 {
		t.Errorf("queue capacity = %d, want 4", cfg.Rules.QueueCapacity)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "configs", configFile), "rules:\n  queue_capacity: 6\n")

	cfg, err := LoadUnscrew("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.QueueCapacity != 6 {
		t.Errorf("local config not used: capacity = %d", cfg.Rules.QueueCapacity)
	}

	writeFile(t, filepath.Join(home, ".unscrew", "configs", configFile), "rules:\n  queue_capacity: 2\n")
	cfg, err = LoadUnscrew("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.QueueCapacity != 2 {
		t.Errorf("user config should win over local: capacity = %d", cfg.Rules.QueueCapacity)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "scoring:\n  win_bonus: 42\n")

	cfg, err := LoadUnscrew(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scoring.WinBonus != 42 {
		t.Errorf("win bonus = %d, want 42", cfg.Scoring.WinBonus)
	}
	if cfg.Scoring.PerPiece != 10 || cfg.Rules.LayerCount != 7 {
		t.Errorf("unset values lost their defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	if _, err := LoadUnscrew(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "rules: [not, a, map")
	if _, err := LoadUnscrew(bad); err == nil {
		t.Error("malformed custom file should fail")
	}
}

func TestLoadSkipsBrokenSearchFile(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "configs", configFile), "rules: [broken")

	cfg, err := LoadUnscrew("")
	if err != nil {
		t.Fatalf("broken search file should be skipped: %v", err)
	}
	if cfg.Rules.LayerCount != 7 {
		t.Errorf("layer count = %d, want embedded default", cfg.Rules.LayerCount)
	}
}

func TestLoadValidates(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, path, "rules:\n  coverage_threshold: 1.5\n")

	if _, err := Load(path, ""); err == nil {
		t.Error("threshold above 1 should be rejected")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		layers    int
		capacity  int
		threshold float64
	}{
		{DifficultyEasy, 5, 5, 0.6},
		{DifficultyNormal, 7, 4, 0.5},
		{DifficultyHard, 9, 3, 0.4},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultUnscrewConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Rules.LayerCount != tt.layers || cfg.Rules.QueueCapacity != tt.capacity || cfg.Rules.CoverageThreshold != tt.threshold {
				t.Errorf("got %+v", cfg.Rules)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config invalid: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(Hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestGenParamsScaling(t *testing.T) {
	cfg := DefaultUnscrewConfig()
	if got := cfg.GenParams(800, 480); got != core.DefaultGenParams() {
		t.Errorf("reference world should not scale: %+v", got)
	}
	got := cfg.GenParams(400, 240)
	if got.MinWidth != 80 || got.Inset != 10 {
		t.Errorf("half world: %+v", got)
	}

	// Ranges tuned for a 400x240 world apply verbatim there.
	cfg.Generation = GenerationConfig{
		WorldWidth: 400, WorldHeight: 240,
		MinWidth: 80, MaxWidth: 139, MinHeight: 35, MaxHeight: 59,
		Rows: 2, MinCols: 3, MaxCols: 4, Inset: 10,
	}
	if got := cfg.GenParams(400, 240); got.MinWidth != 80 || got.MaxHeight != 59 {
		t.Errorf("native world: %+v", got)
	}
	if got := cfg.GenParams(800, 480); got.MinWidth != 160 || got.Inset != 20 {
		t.Errorf("doubled world: %+v", got)
	}
}

func TestValidateGeneration(t *testing.T) {
	cfg := DefaultUnscrewConfig()
	cfg.Generation.MaxCols = 1
	if err := cfg.Validate(); err == nil {
		t.Error("max_cols < min_cols should be rejected")
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultUnscrewConfig()
	cfg.Rules.RefreshPolicy = "random"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	back, err := parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Rules.RefreshPolicy != "random" {
		t.Errorf("policy = %q", back.Rules.RefreshPolicy)
	}
}
