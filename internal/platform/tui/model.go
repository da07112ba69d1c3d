package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bricks/internal/config"
	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/engine"
	"github.com/vovakirdan/bricks/internal/games/breakout"
	"github.com/vovakirdan/bricks/internal/storage"
)

// helpRows is the number of rows below the game reserved for the help bar.
const helpRows = 1

// Deps are the shared services a Model uses. All fields are optional.
type Deps struct {
	Store  *storage.Store // Wallet and history; nil plays with an in-memory wallet
	Logger *log.Logger
	Player string // Wallet owner and history label
}

// Model is the Bubble Tea model for one player.
type Model struct {
	game       *breakout.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a model with an idle game sized to cfg.
func NewModel(gameCfg config.BreakoutConfig, cfg core.RuntimeConfig, deps Deps) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts := []breakout.Option{
		breakout.WithLogger(logger),
		breakout.WithEndHook(recordSession(deps.Store, deps.Player, logger)),
	}
	if deps.Store != nil {
		opts = append(opts, breakout.WithLedger(deps.Store.Wallet(deps.Player)))
	}

	gameRuntime := cfg
	gameRuntime.ScreenH = max(cfg.ScreenH-helpRows, 0)
	game, err := breakout.New(gameCfg, gameRuntime, opts...)
	if err != nil {
		return Model{}, err
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(gameRuntime.ScreenW, gameRuntime.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     logger,
	}, nil
}

// recordSession appends finished sessions to the history table.
func recordSession(store *storage.Store, player string, logger *log.Logger) func(engine.Summary) {
	return func(sum engine.Summary) {
		if store == nil {
			return
		}
		_, err := store.RecordSession(storage.SessionRecord{
			SessionID:   sum.SessionID,
			Player:      player,
			Outcome:     sum.Outcome.String(),
			Score:       sum.Score,
			Ticks:       sum.Ticks,
			Economy:     sum.Economy,
			CoinsEarned: sum.CoinsEarned,
			TotalCoins:  sum.TotalCoins,
		})
		if err != nil {
			logger.Warn("could not record session", "session", sum.SessionID, "error", err)
		}
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inputFrame.SetPointer(msg.X)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the running session and relayouts it in place.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	gameH := max(msg.Height-helpRows, 0)
	m.screen.Resize(msg.Width, gameH)
	m.game.Resize(msg.Width, gameH)
	return m, nil
}

// handleTick runs exactly one game step per frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Draw(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".bricks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("bricks_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Draw(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game exposes the underlying game, mainly for tests.
func (m Model) Game() *breakout.Game {
	return m.game
}

// Run starts the Bubble Tea program with a fresh model.
func Run(gameCfg config.BreakoutConfig, cfg core.RuntimeConfig, deps Deps) error {
	model, err := NewModel(gameCfg, cfg, deps)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()
	return err
}
