// Package breakout adapts the brick-breaker engine to a terminal: it maps
// screen cells to engine units, turns key and mouse frames into engine
// input and draws snapshots into a core.Screen.
package breakout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bricks/internal/config"
	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/economy"
	"github.com/vovakirdan/bricks/internal/engine"
)

// hudRows is the number of screen rows reserved above the field.
const hudRows = 1

// Minimum usable terminal size.
const (
	MinScreenW = 20
	MinScreenH = 8
)

// Option customises a Game.
type Option func(*options)

type options struct {
	ledger economy.Ledger
	logger *log.Logger
	onEnd  func(engine.Summary)
}

// WithLedger persists coins through l.
func WithLedger(l economy.Ledger) Option {
	return func(o *options) { o.ledger = l }
}

// WithLogger routes engine logs to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEndHook is called once per settled session.
func WithEndHook(fn func(engine.Summary)) Option {
	return func(o *options) { o.onEnd = fn }
}

// Game is one player's brick-breaker in a terminal.
type Game struct {
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig
	session *engine.Session
	last    engine.Snapshot
	summary *engine.Summary
	onEnd   func(engine.Summary)

	cellW, cellH float64
	view         view
	paused       bool
	controls     controls
}

// New creates an idle game sized to runtime.ScreenW x runtime.ScreenH cells.
func New(cfg config.BreakoutConfig, runtime core.RuntimeConfig, opts ...Option) (*Game, error) {
	rule, err := economy.Parse(cfg.Economy.Rule)
	if err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	g := &Game{
		cfg:     cfg,
		runtime: runtime,
		cellW:   positive(cfg.Terminal.CellWidth, 10),
		cellH:   positive(cfg.Terminal.CellHeight, 20),
		onEnd:   o.onEnd,
	}
	g.controls.holdTicks = max(cfg.Terminal.KeyHoldTicks, 1)

	sessOpts := []engine.Option{
		engine.WithMetrics(cfg.Metrics()),
		engine.WithRule(rule),
		engine.WithRenderer(g),
		engine.WithEndHook(g.ended),
	}
	if o.ledger != nil {
		sessOpts = append(sessOpts, engine.WithLedger(o.ledger))
	}
	if o.logger != nil {
		sessOpts = append(sessOpts, engine.WithLogger(o.logger))
	}
	if runtime.Seed != 0 {
		sessOpts = append(sessOpts, engine.WithSeed(runtime.Seed))
	}

	vw, vh := g.viewport(runtime.ScreenW, runtime.ScreenH)
	g.session = engine.NewSession(vw, vh, sessOpts...)
	g.refresh()
	return g, nil
}

// viewport converts a terminal size to engine units. The HUD row is not
// part of the viewport.
func (g *Game) viewport(cols, rows int) (float64, float64) {
	return float64(cols) * g.cellW, float64(rows-hudRows) * g.cellH
}

// Resize adapts the game to a new terminal size.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW, g.runtime.ScreenH = cols, rows
	vw, vh := g.viewport(cols, rows)
	g.session.OnResize(vw, vh)
	g.refresh()
}

// Step processes one frame of input and advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	phase := g.session.Phase()

	switch {
	case in.Has(core.ActionStart) && phase != engine.PhaseRunning:
		g.start()
	case in.Has(core.ActionRestart) && phase != engine.PhaseIdle:
		g.start()
	case in.Has(core.ActionPause) && phase == engine.PhaseRunning:
		g.paused = !g.paused
	}

	g.controls.observe(in, g.view)
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.session.Tick(g.controls.next())
	return core.StepResult{State: g.State()}
}

func (g *Game) start() {
	g.paused = false
	g.summary = nil
	g.controls.reset()
	g.session.Start()
	g.refresh()
}

// Render implements engine.Renderer; it records the latest snapshot.
func (g *Game) Render(snap engine.Snapshot) {
	g.last = snap
	g.view = newView(snap.Geometry, g.runtime.ScreenW, g.runtime.ScreenH, g.cellW, g.cellH)
}

// refresh pulls a snapshot outside of a tick, e.g. after a resize.
func (g *Game) refresh() {
	g.Render(g.session.Snapshot())
}

func (g *Game) ended(sum engine.Summary) {
	g.summary = &sum
	if g.onEnd != nil {
		g.onEnd(sum)
	}
}

// Snapshot returns the most recent engine snapshot.
func (g *Game) Snapshot() engine.Snapshot {
	return g.last
}

// Summary returns the settlement of the last finished session.
func (g *Game) Summary() (engine.Summary, bool) {
	if g.summary == nil {
		return engine.Summary{}, false
	}
	return *g.summary, true
}

// State returns the coarse status the platform needs.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.last.Score,
		Running:  g.last.Phase == engine.PhaseRunning,
		GameOver: g.last.Phase == engine.PhaseEnded,
		Won:      g.last.Outcome == engine.OutcomeWon,
		Paused:   g.paused,
	}
}

// Rule returns the coin economy in use.
func (g *Game) Rule() economy.Rule {
	return g.session.Rule()
}

func positive(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
