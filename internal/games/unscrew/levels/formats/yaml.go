// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	World    YAMLSize          `yaml:"world"`
	Layers   []YAMLLayer       `yaml:"layers"`
	Lanes    []string          `yaml:"lanes,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents world dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLRect represents a layer rectangle.
type YAMLRect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLLayer represents one layer, bottom first.
type YAMLLayer struct {
	Rect   YAMLRect    `yaml:"rect"`
	Pieces []YAMLPiece `yaml:"pieces"`
}

// YAMLPiece represents a single piece center. C is optional.
type YAMLPiece struct {
	X int    `yaml:"x"`
	Y int    `yaml:"y"`
	C string `yaml:"c,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout // Pieces carry core.NoColor when the file leaves colors out
	Colored  bool
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
// Either every piece names a color or none does; mixing is an error
// because a partly colored level cannot be padded to complete triplets.
// Piece IDs follow file order starting at 0.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if len(yl.Layers) == 0 {
		return Level{}, fmt.Errorf("level %s has no layers", yl.ID)
	}

	w, h := yl.World.W, yl.World.H
	if w <= 0 || h <= 0 {
		w, h = core.DefaultWorldWidth, core.DefaultWorldHeight
	}

	layout := core.Layout{
		ID:     yl.ID,
		Name:   yl.Name,
		World:  core.R(0, 0, w, h),
		Layers: make([]core.LayerSpec, len(yl.Layers)),
	}
	if layout.Name == "" {
		layout.Name = yl.ID
	}

	colored, uncolored := 0, 0
	nextID := 0
	for i, l := range yl.Layers {
		spec := core.LayerSpec{Rect: core.R(l.Rect.X, l.Rect.Y, l.Rect.W, l.Rect.H)}
		for _, p := range l.Pieces {
			color := core.NoColor
			if p.C != "" {
				c, ok := core.ParseColor(p.C)
				if !ok {
					return Level{}, fmt.Errorf("layer %d: invalid color %q", i, p.C)
				}
				color = c
				colored++
			} else {
				uncolored++
			}
			spec.Pieces = append(spec.Pieces, core.Piece{ID: nextID, Pos: core.Pt(p.X, p.Y), Color: color})
			nextID++
		}
		layout.Layers[i] = spec
	}
	if colored > 0 && uncolored > 0 {
		return Level{}, fmt.Errorf("level %s mixes colored (%d) and uncolored (%d) pieces", yl.ID, colored, uncolored)
	}

	for _, s := range yl.Lanes {
		c, ok := core.ParseColor(s)
		if !ok {
			return Level{}, fmt.Errorf("invalid lane color %q", s)
		}
		layout.Lanes = append(layout.Lanes, c)
	}

	return Level{
		ID:       yl.ID,
		Name:     layout.Name,
		Layout:   layout,
		Colored:  colored > 0,
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
