package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// footerHeight is the number of rows below the game screen.
const footerHeight = 1

// Resizer is implemented by games that can adapt to a new screen size
// without losing their state.
type Resizer interface {
	Resize(width, height int)
}

// GameModel is the Bubble Tea model for one game. It is turn-based:
// every mapped key press becomes exactly one Step, nothing runs between keys.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	gameState  core.GameState
	best       int
	status     string
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for the given game and resets it.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.help.Width = cfg.ScreenW

	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	m.loadBest()

	return m
}

// gameConfig is the runtime config minus the footer rows.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-footerHeight, 1)
	return cfg
}

func (m *GameModel) loadBest() {
	if m.store == nil {
		return
	}
	if best, err := m.store.HighScore(m.game.ID()); err == nil {
		m.best = best
	}
}

// Init has nothing to schedule: the game only moves on key presses.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		// Unmapped keys never reach the game.
		return m, nil

	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.status = ""
		return m, nil
	}

	result := m.game.Step(core.FrameOf(action))
	m.gameState = result.State
	m.recordGameOver()

	return m, nil
}

// recordGameOver saves the score once when a game ends.
func (m *GameModel) recordGameOver() {
	if !m.gameState.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if m.gameState.Score > m.best {
		m.best = m.gameState.Score
	}
	if m.store == nil || m.gameState.Score == 0 {
		return
	}

	_, err := m.store.SaveRun(storage.Run{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		MaxTile: m.gameState.MaxTile,
		Moves:   m.gameState.Moves,
	})
	if err != nil {
		m.status = "score not saved"
		return
	}
	m.status = "score saved"
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}
	m.gameState = m.game.State()

	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "screenshot saved"
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := bestStyle.Render(fmt.Sprintf("Best: %d", max(m.best, m.gameState.Score)))
	if m.status != "" {
		footer += footerStyle.Render("  " + m.status)
	}
	footer += "  " + footerStyle.Render(m.help.View(m.keyMapper.Keys()))

	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
