package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultTarget is the tile that marks a classic game as won.
const DefaultTarget = 2048

// State is the externally visible state of an engine.
type State struct {
	Grid     Grid  `json:"-"`
	Cells    []int `json:"cells"` // row-major
	Score    int   `json:"score"`
	Moves    int   `json:"moves"`
	MaxTile  int   `json:"maxTile"`
	GameOver bool  `json:"gameOver"`
	Won      bool  `json:"won"`
}

// Tile is a placed value.
type Tile struct {
	Cell
	Value int `json:"value"`
}

// MoveResult is the outcome of one Apply.
type MoveResult struct {
	State
	Direction Direction `json:"-"`
	Gained    int       `json:"gained"`
	Moved     bool      `json:"moved"`
	Spawned   *Tile     `json:"spawned,omitempty"`
}

// Engine owns one board and applies directional moves to it.
// It is not safe for concurrent use; hosts serialize calls.
type Engine struct {
	board    *Board
	src      Source
	fourProb float64
	target   int // 0 disables the target check
	moves    int
	gameOver bool
	won      bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpawnFourProbability sets the chance a spawned tile is a 4.
func WithSpawnFourProbability(p float64) Option {
	return func(e *Engine) {
		e.fourProb = min(max(p, 0), 1)
	}
}

// WithTarget sets the tile value that marks the game as won. 0 disables it.
func WithTarget(tile int) Option {
	return func(e *Engine) {
		e.target = max(tile, 0)
	}
}

// WithBoard starts the engine from a fixed grid and score instead of a fresh game.
func WithBoard(grid Grid, score int) Option {
	return func(e *Engine) {
		e.board = NewBoard(grid, score)
	}
}

// NewEngine creates an engine drawing randomness from src.
// A nil src gets a time-seeded generator.
func NewEngine(src Source, opts ...Option) *Engine {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		src:      src,
		fourProb: DefaultSpawnFourProbability,
		target:   DefaultTarget,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.board == nil {
		e.Reset()
	} else {
		e.gameOver = IsTerminal(e.board)
		e.won = e.reachedTarget()
	}
	return e
}

// Reset clears the board and score and spawns the two starting tiles.
func (e *Engine) Reset() {
	e.board = &Board{}
	e.moves = 0
	e.gameOver = false
	e.won = false

	Spawn(e.board, e.src, e.fourProb)
	Spawn(e.board, e.src, e.fourProb)
}

// Apply performs a move. A move that changes no cell is a no-op:
// no spawn, no score change and no game-over evaluation.
func (e *Engine) Apply(dir Direction) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{}, fmt.Errorf("t2048: %w: %d", ErrInvalidDirection, int(dir))
	}

	gained, moved := slideBoard(e.board, dir)
	res := MoveResult{Direction: dir, Moved: moved}

	if moved {
		e.board.AddScore(gained)
		e.moves++
		res.Gained = gained

		if cell, value, ok := Spawn(e.board, e.src, e.fourProb); ok {
			res.Spawned = &Tile{Cell: cell, Value: value}
		}

		e.gameOver = IsTerminal(e.board)
		if !e.won {
			e.won = e.reachedTarget()
		}
	}

	res.State = e.State()
	return res, nil
}

func (e *Engine) reachedTarget() bool {
	return e.target > 0 && e.board.MaxTile() >= e.target
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	return State{
		Grid:     e.board.Grid(),
		Cells:    e.board.Cells(),
		Score:    e.board.Score(),
		Moves:    e.moves,
		MaxTile:  e.board.MaxTile(),
		GameOver: e.gameOver,
		Won:      e.won,
	}
}

// Board returns the engine's board. Callers must not mutate it.
func (e *Engine) Board() *Board {
	return e.board
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.board.Score()
}

// Moves returns the number of moves that changed the board.
func (e *Engine) Moves() int {
	return e.moves
}

// GameOver reports whether the last committed move left a terminal board.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Won reports whether the target tile has been reached.
func (e *Engine) Won() bool {
	return e.won
}

// Target returns the configured target tile, 0 if none.
func (e *Engine) Target() int {
	return e.target
}
