package config

import (
	"fmt"
	"strings"
)

// presetRules holds the rule overrides a preset applies on top of the loaded config.
type presetRules struct {
	LayerCount        int
	QueueCapacity     int
	CoverageThreshold float64
}

var presets = map[DifficultyPreset]presetRules{
	DifficultyEasy:   {LayerCount: 5, QueueCapacity: 5, CoverageThreshold: 0.6},
	DifficultyNormal: {LayerCount: 7, QueueCapacity: 4, CoverageThreshold: 0.5},
	DifficultyHard:   {LayerCount: 9, QueueCapacity: 3, CoverageThreshold: 0.4},
}

// ParsePreset converts a flag value to a preset. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// Presets returns the preset names from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config unchanged.
func ApplyPreset(cfg *UnscrewConfig, preset DifficultyPreset) {
	p, ok := presets[preset]
	if !ok {
		return
	}
	cfg.Rules.LayerCount = p.LayerCount
	cfg.Rules.QueueCapacity = p.QueueCapacity
	cfg.Rules.CoverageThreshold = p.CoverageThreshold
}
