package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "classic" or "endless"
	Target  int    // 0 in endless mode
	Score   int
	Moves   int
	Board   Grid
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.engine == nil {
		return Snapshot{Mode: string(g.mode), State: StatePlaying}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.engine.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.engine.Won():
		state = StateWon
	}

	s := g.engine.State()
	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Target:  g.engine.Target(),
		Score:   s.Score,
		Moves:   s.Moves,
		Board:   s.Grid,
		MaxTile: s.MaxTile,
		State:   state,
	}
}
