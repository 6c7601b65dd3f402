// Package levels provides level loading for the unscrew puzzle.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// RandomID names the generated level that needs no file.
const RandomID = "random"

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Layout   core.Layout
	Colored  bool // False when colors are assigned at start from the triplet palette
	Metadata map[string]string
	FilePath string
}

// Rules adapts base rules to the level: world size and layer count
// come from the level file.
func (l *Level) Rules(base core.Rules) core.Rules {
	r := base
	r.WorldWidth = l.Layout.World.W
	r.WorldHeight = l.Layout.World.H
	r.LayerCount = len(l.Layout.Layers)
	return r
}

// Resolve returns a colored layout ready for core.NewLevel.
// Uncolored levels are padded to a multiple of 3 and colored from
// the rules palette; colored levels are returned as a copy.
func (l *Level) Resolve(r core.Rules, inset int, rng core.Random) core.Layout {
	layout := l.Layout.Clone()
	if l.Colored {
		return layout
	}
	core.PadLayout(&layout, inset, rng)
	core.AssignColors(&layout, r.Palette(), rng)
	return layout
}

// NewLevel builds a playable level using the given base rules.
func (l *Level) NewLevel(base core.Rules, inset int, rng core.Random) (*core.Level, error) {
	r := l.Rules(base)
	return core.NewLevel(r, l.Resolve(r, inset, rng), rng)
}

// Loader handles loading levels from a file tree.
type Loader struct {
	FS   fs.FS
	Root string // For messages and FilePath
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin tree: %v", err))
	}
	return &Loader{FS: sub, Root: "builtin"}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(name string) (Level, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", name, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(name)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", name, err)
	}

	return fromParsed(parsed, path.Join(l.Root, name)), nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadPath loads a level from a file path on disk.
func LoadPath(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return fromParsed(parsed, p), nil
}

func fromParsed(parsed formats.Level, filePath string) Level {
	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Layout:   parsed.Layout,
		Colored:  parsed.Colored,
		Metadata: parsed.Metadata,
		FilePath: filePath,
	}
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
