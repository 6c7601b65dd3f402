package tui

import (
	"time"

	"github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/registry"
)

const fakeGameID = "fake"

func init() {
	registry.Register(fakeGameID, func() registry.Game { return &fakeGame{level: "random"} })
}

// fakeGame is a scripted game: each Select is a click, and the round ends
// once winAfter clicks have been made.
type fakeGame struct {
	level    string
	resets   int
	resizes  int
	steps    int
	seeds    []int64
	nextSeed int64
	clicks   int
	winAfter int
	paused   bool
	lastIn   core.InputFrame
	w, h     int
}

func (g *fakeGame) ID() string    { return fakeGameID }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.clicks = 0
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
	if g.winAfter == 0 {
		g.winAfter = 3
	}
}

func (g *fakeGame) Resize(w, h int) {
	g.resizes++
	g.w, g.h = w, h
}

func (g *fakeGame) SelectLevel(ref string) { g.level = ref }

func (g *fakeGame) NextSeed() int64 {
	g.nextSeed++
	return g.nextSeed
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = in.Clone()
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.over() && (in.Has(core.ActionSelect) || in.Click != nil) {
		g.clicks++
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) over() bool { return g.clicks >= g.winAfter }

func (g *fakeGame) State() core.GameState {
	return core.GameState{
		Score:    g.clicks * 10,
		GameOver: g.over(),
		Won:      g.over(),
		Paused:   g.paused,
	}
}

func (g *fakeGame) Round() core.RoundSummary {
	outcome := "abandoned"
	if g.over() {
		outcome = "won"
	}
	var seed int64
	if len(g.seeds) > 0 {
		seed = g.seeds[len(g.seeds)-1]
	}
	return core.RoundSummary{
		Seed:     seed,
		Level:    g.level,
		Outcome:  outcome,
		Clicks:   g.clicks,
		Absorbed: g.clicks,
		Total:    g.winAfter,
		Score:    g.clicks * 10,
		Duration: time.Duration(g.clicks) * time.Second,
	}
}
