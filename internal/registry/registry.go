// Package registry keeps the factories of the games the platform can run.
// Games register themselves in init() functions, so the platform and the
// SSH server can instantiate them by ID without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-unscrew/internal/core"
)

// Game is the interface the terminal platform drives.
// Games contain pure logic with no Bubble Tea dependency; the platform maps
// keys and mouse presses to an InputFrame and paints the Screen.
type Game interface {
	// ID returns a unique identifier used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new round. Called once at start and after a restart.
	// Games that do not implement Resizer are also reset on resize.
	Reset(cfg core.RuntimeConfig)

	// Step applies the input collected since the previous step and
	// advances animations by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// RoundReporter is implemented by games that can describe the round in progress.
// The platform persists the summary once the round ends.
type RoundReporter interface {
	Round() core.RoundSummary
}

// Resizer is implemented by games that can adapt to a new screen size
// without restarting the round.
type Resizer interface {
	Resize(w, h int)
}

// Seeder is implemented by games that derive the seed of the next round
// from the current one, so a sequence of restarts stays reproducible.
type Seeder interface {
	NextSeed() int64
}

// LevelSelector is implemented by games that offer more than one level.
// The platform calls SelectLevel before Reset.
type LevelSelector interface {
	SelectLevel(ref string)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
