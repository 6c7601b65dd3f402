package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Animation ticks per second
	Seed     int64 // RNG seed for deterministic rounds; 0 means pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 20,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the round has ended (won or lost)
	Won      bool   // Whether the round ended in a win
	Stalled  bool   // No move is possible but the round has not ended
	Paused   bool   // Whether the game is paused
	Status   string // Short status line for the platform chrome
}

// StepResult is returned by Game.Step() after each tick or input.
type StepResult struct {
	State GameState
}

// RoundSummary describes a finished round for persistence.
type RoundSummary struct {
	Seed     int64
	Level    string // Level ID, "random" for generated layouts
	Outcome  string // "won", "lost" or "abandoned"
	Clicks   int
	Absorbed int
	Total    int
	Score    int
	Duration time.Duration
}
