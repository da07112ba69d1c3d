package engine

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/bricks/internal/economy"
)

// round is everything that belongs to a single session. It is rebuilt from
// scratch on every Start and never carried over.
type round struct {
	id     uuid.UUID
	ball   Ball
	paddle Paddle
	grid   *Grid
	score  int
	ticks  uint64
}

// Session is the brick breaker state machine: Idle -> Running -> Ended.
// It is not safe for concurrent use; the caller's frame loop is the only writer.
type Session struct {
	metrics  Metrics
	rule     economy.Rule
	ledger   economy.Ledger
	renderer Renderer
	onEnd    func(Summary)
	logger   *log.Logger
	rng      *rand.Rand

	geom   Geometry
	layout Layout

	phase   Phase
	outcome Outcome
	round   round

	settled bool
	earned  decimal.Decimal
	total   decimal.Decimal
	unsaved decimal.Decimal // Coins whose save failed, retried on next settlement
}

// Option configures a Session.
type Option func(*Session)

// WithMetrics overrides the default tuning.
func WithMetrics(m Metrics) Option {
	return func(s *Session) { s.metrics = m.normalized() }
}

// WithRule selects the coin economy. A nil rule keeps the default.
func WithRule(r economy.Rule) Option {
	return func(s *Session) {
		if r != nil {
			s.rule = r
		}
	}
}

// WithLedger sets the persistence collaborator for the cumulative coin total.
func WithLedger(l economy.Ledger) Option {
	return func(s *Session) {
		if l != nil {
			s.ledger = l
		}
	}
}

// WithRenderer sets the collaborator that receives a snapshot after every tick.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithEndHook registers a callback invoked once per settled session.
func WithEndHook(fn func(Summary)) Option {
	return func(s *Session) { s.onEnd = fn }
}

// WithLogger sets the logger. By default the session logs nowhere.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed makes the serve direction deterministic.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		u := uint64(seed) //#nosec G115 -- seed bits only
		s.rng = rand.New(rand.NewPCG(u, u^0x9e3779b97f4a7c15))
	}
}

// NewSession creates an idle session for the given viewport size.
func NewSession(viewportW, viewportH float64, opts ...Option) *Session {
	s := &Session{
		metrics: DefaultMetrics(),
		rule:    economy.Default(),
		ledger:  economy.NewMemoryLedger(decimal.Zero),
		logger:  log.New(io.Discard),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //#nosec G404 -- gameplay randomness
		phase:   PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.total = s.loadTotal()
	s.applyViewport(viewportW, viewportH)
	s.round = s.previewRound()
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Outcome returns how the session ended, or OutcomeNone before it has.
func (s *Session) Outcome() Outcome { return s.outcome }

// Score returns the current score.
func (s *Session) Score() int { return s.round.score }

// Geometry returns the current playfield.
func (s *Session) Geometry() Geometry { return s.geom }

// Layout returns the current brick layout.
func (s *Session) Layout() Layout { return s.layout }

// Rule returns the configured coin economy.
func (s *Session) Rule() economy.Rule { return s.rule }

// Start begins a new round from any phase. All per-round state is rebuilt
// from the current layout.
func (s *Session) Start() {
	m := s.metrics
	w, h := s.geom.Width, s.geom.Height

	dir := 1.0
	if s.rng.IntN(2) == 0 {
		dir = -1
	}

	s.round = round{
		id: uuid.New(),
		ball: Ball{
			X:      w / 2,
			Y:      h - m.BallStartOffset,
			VX:     dir * m.BallSpeed,
			VY:     -m.BallSpeed,
			Radius: m.BallRadius,
		},
		paddle: s.centeredPaddle(),
		grid:   NewGrid(s.layout),
	}

	s.phase = PhaseRunning
	s.outcome = OutcomeNone
	s.settled = false
	s.earned = decimal.Zero

	s.logger.Debug("session started",
		"session", s.round.id,
		"field", fmt.Sprintf("%.0fx%.0f", w, h),
		"columns", s.layout.Columns,
		"compact", s.geom.Compact,
	)
}

// Restart is Start under another name, usable from any phase.
func (s *Session) Restart() {
	s.Start()
}

// End finishes a running session and settles its coins. Calls in any other
// phase, repeated calls and OutcomeNone are ignored, so coins are settled at
// most once per session.
func (s *Session) End(outcome Outcome) {
	if s.phase != PhaseRunning || s.settled {
		return
	}
	if outcome != OutcomeWon && outcome != OutcomeLost {
		return
	}

	s.phase = PhaseEnded
	s.outcome = outcome
	s.settle()
}

// settle converts the score to coins and persists the new cumulative total.
// When the ledger cannot be read or written the coins are kept as unsaved
// and retried on the next settlement; the stored total is never replaced by
// one built on a failed read.
func (s *Session) settle() {
	s.settled = true
	s.earned = s.rule.Earned(s.round.score)
	delta := s.earned.Add(s.unsaved)

	total, err := s.persist(delta)
	persisted := err == nil
	if err != nil {
		s.unsaved = delta
		total = s.total.Add(s.earned)
		s.logger.Warn("could not persist coin total",
			"session", s.round.id,
			"error", fmt.Errorf("%w: %w", ErrPersistence, err),
			"unsaved", s.unsaved.String(),
		)
	} else {
		s.unsaved = decimal.Zero
	}
	s.total = total

	s.logger.Info("session ended",
		"session", s.round.id,
		"outcome", s.outcome,
		"score", s.round.score,
		"coins", economy.Format(s.earned),
		"total", economy.Format(total),
	)

	if s.onEnd != nil {
		s.onEnd(Summary{
			SessionID:   s.round.id,
			Outcome:     s.outcome,
			Score:       s.round.score,
			Ticks:       s.round.ticks,
			Economy:     s.rule.Name(),
			CoinsEarned: s.earned,
			TotalCoins:  total,
			Persisted:   persisted,
		})
	}
}

// persist adds delta to the stored total and returns the new total.
// Ledgers that can add in one step do so; others are read then written.
func (s *Session) persist(delta decimal.Decimal) (decimal.Decimal, error) {
	if acc, ok := s.ledger.(economy.Accumulator); ok {
		return acc.AddCumulativeCoins(delta)
	}

	prev, err := s.ledger.LoadCumulativeCoins()
	if err != nil {
		return decimal.Zero, fmt.Errorf("load: %w", err)
	}
	if prev.IsNegative() {
		prev = decimal.Zero
	}
	total := prev.Add(delta)
	if err := s.ledger.SaveCumulativeCoins(total); err != nil {
		return decimal.Zero, fmt.Errorf("save: %w", err)
	}
	return total, nil
}

// loadTotal reads the cumulative total for display, treating any failure
// as zero.
func (s *Session) loadTotal() decimal.Decimal {
	total, err := s.ledger.LoadCumulativeCoins()
	if err != nil {
		s.logger.Warn("could not load coin total, using 0",
			"error", fmt.Errorf("%w: %w", ErrPersistence, err),
		)
		return decimal.Zero
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// OnResize re-derives geometry for a new viewport. Idle sessions rebuild
// their preview; running and ended sessions keep brick statuses, score and
// velocities, and only have positions re-clamped to the new bounds.
func (s *Session) OnResize(viewportW, viewportH float64) {
	s.applyViewport(viewportW, viewportH)

	if s.phase == PhaseIdle {
		s.round = s.previewRound()
		return
	}

	r := &s.round
	r.grid.Relayout(s.layout)

	r.paddle.Width = s.layout.PaddleWidth
	r.paddle.Height = s.metrics.PaddleHeight
	r.paddle.Y = s.paddleY()
	r.paddle.clampX(s.geom.Width)

	b := &r.ball
	b.X = clamp(b.X, b.Radius, maxF(b.Radius, s.geom.Width-b.Radius))
	b.Y = clamp(b.Y, b.Radius, maxF(b.Radius, s.geom.Height-b.Radius))
}

func (s *Session) applyViewport(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		s.logger.Warn("clamping playfield to minimum size",
			"error", ErrDegenerateViewport,
			"viewport", fmt.Sprintf("%.0fx%.0f", viewportW, viewportH),
		)
	}
	s.geom = s.metrics.Geometry(viewportW, viewportH)
	s.layout = s.metrics.Layout(s.geom)
}

// previewRound is the static board shown before the first start.
func (s *Session) previewRound() round {
	m := s.metrics
	return round{
		ball: Ball{
			X:      s.geom.Width / 2,
			Y:      s.geom.Height - m.BallStartOffset,
			Radius: m.BallRadius,
		},
		paddle: s.centeredPaddle(),
		grid:   NewGrid(s.layout),
	}
}

func (s *Session) centeredPaddle() Paddle {
	p := Paddle{
		Width:  s.layout.PaddleWidth,
		Height: s.metrics.PaddleHeight,
		Y:      s.paddleY(),
	}
	p.X = roundHalfUp((s.geom.Width - p.Width) / 2)
	p.clampX(s.geom.Width)
	return p
}

func (s *Session) paddleY() float64 {
	return s.geom.Height - s.metrics.PaddleHeight - s.metrics.PaddleBottomOffset
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	r := &s.round

	earned := s.earned
	if !s.settled {
		earned = s.rule.Earned(r.score)
	}

	return Snapshot{
		SessionID:   r.id,
		Tick:        r.ticks,
		Geometry:    s.geom,
		Ball:        r.ball,
		Paddle:      r.paddle,
		Bricks:      r.grid.Bricks(),
		Rows:        r.grid.Rows(),
		Columns:     r.grid.Columns(),
		Alive:       r.grid.CountAlive(),
		Score:       r.score,
		Phase:       s.phase,
		Outcome:     s.outcome,
		CoinsEarned: earned,
		TotalCoins:  s.total,
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// roundHalfUp matches the classic Math.round behavior for paddle centering.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
