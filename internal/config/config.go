// Package config provides YAML-based configuration loading and difficulty
// presets for the unscrew puzzle.
package config

import (
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// UnscrewConfig contains all configuration for the puzzle.
type UnscrewConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Generation GenerationConfig `yaml:"generation"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Display    DisplayConfig    `yaml:"display"`
}

// RulesConfig defines the rules engine parameters.
type RulesConfig struct {
	LayerCount         int     `yaml:"layer_count"`
	SlotsPerLane       int     `yaml:"slots_per_lane"`
	QueueCapacity      int     `yaml:"queue_capacity"`
	CoverageThreshold  float64 `yaml:"coverage_threshold"` // Exclusive upper bound for clickable coverage
	PaletteSize        int     `yaml:"palette_size"`
	PieceRadius        int     `yaml:"piece_radius"`
	RefreshPolicy      string  `yaml:"refresh_policy"` // "module" or "random"
	EmptyLayersOcclude bool    `yaml:"empty_layers_occlude"`
}

// GenerationConfig defines random board generation in world units.
type GenerationConfig struct {
	WorldWidth  int `yaml:"world_width"`  // Reference world the ranges below are tuned for
	WorldHeight int `yaml:"world_height"` // Reference world the ranges below are tuned for
	MinWidth    int `yaml:"min_width"`
	MaxWidth    int `yaml:"max_width"`
	MinHeight   int `yaml:"min_height"`
	MaxHeight   int `yaml:"max_height"`
	Rows        int `yaml:"rows"`
	MinCols     int `yaml:"min_cols"`
	MaxCols     int `yaml:"max_cols"`
	Inset       int `yaml:"inset"`
}

// ScoringConfig defines how a round is scored.
type ScoringConfig struct {
	PerPiece      int `yaml:"per_piece"`       // Points per piece absorbed by a lane
	WinBonus      int `yaml:"win_bonus"`       // Points for clearing the level
	PerQueuedLeft int `yaml:"per_queued_left"` // Penalty per queued piece when a round ends
}

// DisplayConfig defines presentation options.
type DisplayConfig struct {
	Palette      []string `yaml:"palette"`       // Terminal color name per logical color
	ShowCoverage bool     `yaml:"show_coverage"` // Dim covered pieces instead of hiding them
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// CoreRules converts the rules section to engine rules for a world of w x h.
func (c UnscrewConfig) CoreRules(w, h int) core.Rules {
	return core.Rules{
		LayerCount:         c.Rules.LayerCount,
		SlotsPerLane:       c.Rules.SlotsPerLane,
		QueueCapacity:      c.Rules.QueueCapacity,
		CoverageThreshold:  c.Rules.CoverageThreshold,
		PaletteSize:        c.Rules.PaletteSize,
		PieceRadius:        c.Rules.PieceRadius,
		RefreshPolicy:      core.PolicyKind(c.Rules.RefreshPolicy),
		EmptyLayersOcclude: c.Rules.EmptyLayersOcclude,
		WorldWidth:         w,
		WorldHeight:        h,
	}
}

// GenParams converts the generation section to engine parameters scaled to a world of w x h.
func (c UnscrewConfig) GenParams(w, h int) core.GenParams {
	g := c.Generation
	p := core.GenParams{
		MinWidth:  g.MinWidth,
		MaxWidth:  g.MaxWidth,
		MinHeight: g.MinHeight,
		MaxHeight: g.MaxHeight,
		Rows:      g.Rows,
		MinCols:   g.MinCols,
		MaxCols:   g.MaxCols,
		Inset:     g.Inset,
	}
	if g.WorldWidth <= 0 || g.WorldHeight <= 0 || (g.WorldWidth == w && g.WorldHeight == h) {
		return p
	}
	// Scale assumes the reference world; rescale from the configured one first.
	p = scaleParams(p, g.WorldWidth, g.WorldHeight, core.DefaultWorldWidth, core.DefaultWorldHeight)
	return p.Scale(w, h)
}

func scaleParams(p core.GenParams, fromW, fromH, toW, toH int) core.GenParams {
	sx := func(v int) int { return v * toW / fromW }
	sy := func(v int) int { return v * toH / fromH }
	p.MinWidth, p.MaxWidth = sx(p.MinWidth), sx(p.MaxWidth)
	p.MinHeight, p.MaxHeight = sy(p.MinHeight), sy(p.MaxHeight)
	p.Inset = min(sx(p.Inset), sy(p.Inset))
	return p
}

// Validate checks the configuration by building engine rules for the reference world.
func (c UnscrewConfig) Validate() error {
	if err := c.CoreRules(core.DefaultWorldWidth, core.DefaultWorldHeight).Validate(); err != nil {
		return err
	}
	g := c.Generation
	switch {
	case g.Rows < 1 || g.MinCols < 1 || g.MaxCols < g.MinCols:
		return core.ValidationError{Code: "INVALID_GENERATION", Message: "rows and columns must be positive and min_cols <= max_cols"}
	case g.MinWidth < 1 || g.MaxWidth < g.MinWidth || g.MinHeight < 1 || g.MaxHeight < g.MinHeight:
		return core.ValidationError{Code: "INVALID_GENERATION", Message: "board size ranges must be positive and ordered"}
	case g.Inset < 0:
		return core.ValidationError{Code: "INVALID_GENERATION", Message: "inset must be >= 0"}
	}
	return nil
}
