package config

import (
	_ "embed"
)

//go:embed defaults/unscrew.yaml
var defaultUnscrewYAML []byte

// DefaultUnscrewConfig returns the reference configuration.
func DefaultUnscrewConfig() UnscrewConfig {
	return UnscrewConfig{
		Rules: RulesConfig{
			LayerCount:         7,
			SlotsPerLane:       3,
			QueueCapacity:      4,
			CoverageThreshold:  0.5,
			PaletteSize:        8,
			PieceRadius:        9,
			RefreshPolicy:      "module",
			EmptyLayersOcclude: true,
		},
		Generation: GenerationConfig{
			WorldWidth:  800,
			WorldHeight: 480,
			MinWidth:    160,
			MaxWidth:    279,
			MinHeight:   70,
			MaxHeight:   119,
			Rows:        2,
			MinCols:     3,
			MaxCols:     4,
			Inset:       20,
		},
		Scoring: ScoringConfig{
			PerPiece:      10,
			WinBonus:      500,
			PerQueuedLeft: 0,
		},
		Display: DisplayConfig{
			Palette:      []string{"red", "green", "yellow", "blue", "magenta", "cyan", "orange", "pink"},
			ShowCoverage: true,
		},
	}
}
