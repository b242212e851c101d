package core

// Rules are the tunable parameters of a 2048 game.
type Rules struct {
	SpawnFourProb float64 // Chance a spawned tile is a 4
	Target        int     // Tile that marks the game as won, 0 = none
}

// DefaultRules returns the classic rules.
func DefaultRules() Rules {
	return Rules{
		SpawnFourProb: 0.10,
		Target:        2048,
	}
}

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
	Rules   Rules
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Rules:   DefaultRules(),
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Moves    int  // Moves that changed the board
	MaxTile  int  // Highest tile on the board
	GameOver bool // No move is possible
	Won      bool // Target tile reached (play may continue)
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each input.
type StepResult struct {
	State GameState
	Moved bool // The input changed the board
}
