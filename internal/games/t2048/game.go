package t2048

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// ParseMode parses a mode name. An empty name is classic.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeClassic:
		return ModeClassic, nil
	case ModeEndless:
		return ModeEndless, nil
	}
	return "", fmt.Errorf("t2048: unknown mode %q", s)
}

// Game plugs an Engine into the platform: it maps input frames onto moves,
// tracks pause and overlay state and renders the board.
type Game struct {
	mode   Mode
	engine *Engine
	tick   uint64 // input frames processed

	// Screen dimensions
	screenW int
	screenH int

	paused      bool
	tooSmall    bool
	celebrating bool // target reached, overlay shown until the next move
}

// New creates a classic 2048 game that is won by reaching the target tile.
func New() *Game {
	return &Game{
		mode: ModeClassic,
	}
}

// NewEndless creates a 2048 game without a target tile.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

func init() {
	registry.Register(ModeClassic.GameID(), func() registry.Game {
		return New()
	})
	registry.Register(ModeEndless.GameID(), func() registry.Game {
		return NewEndless()
	})
}

// GameID returns the registry and score-table identifier of a mode.
func (m Mode) GameID() string {
	if m == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Reset starts a new game. The engine is seeded from cfg.Seed so equal
// seeds replay equal games.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewSeededEngine(g.mode, cfg.Seed, cfg.Rules)
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.celebrating = false

	g.checkScreenSize()
}

// NewSeededEngine creates an engine for mode from a seed and rules.
// Rules are used as given; endless mode never has a target.
func NewSeededEngine(mode Mode, seed int64, rules core.Rules) *Engine {
	target := rules.Target
	if mode == ModeEndless {
		target = 0
	}

	return NewEngine(
		rand.New(rand.NewSource(seed)),
		WithSpawnFourProbability(rules.SpawnFourProb),
		WithTarget(target),
	)
}

// Resize updates the screen dimensions. The board is kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step applies one input frame. At most one move is made per frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	wasWon := g.engine.Won()
	res, err := g.engine.Apply(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}

	if res.Moved {
		g.celebrating = !wasWon && res.Won
	}

	return core.StepResult{State: g.State(), Moved: res.Moved}
}

// directionFor maps the movement actions of a frame to a direction.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	s := g.engine.State()
	return core.GameState{
		Score:    s.Score,
		Moves:    s.Moves,
		MaxTile:  s.MaxTile,
		GameOver: s.GameOver,
		Won:      s.Won,
		Paused:   g.paused || g.tooSmall,
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}
