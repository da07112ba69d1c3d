package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bricks/internal/economy"
)

// exactMetrics maps the viewport 1:1 onto the field so tests can pick exact sizes.
func exactMetrics() Metrics {
	m := DefaultMetrics()
	m.WidthRatio = 1
	m.HeightRatio = 1
	return m
}

// countingLedger records every save and can be told to fail.
type countingLedger struct {
	total    decimal.Decimal
	saves    int
	failSave bool
	failLoad bool
}

func (l *countingLedger) LoadCumulativeCoins() (decimal.Decimal, error) {
	if l.failLoad {
		return decimal.Zero, errors.New("disk on fire")
	}
	return l.total, nil
}

func (l *countingLedger) SaveCumulativeCoins(total decimal.Decimal) error {
	if l.failSave {
		return errors.New("read-only filesystem")
	}
	l.saves++
	l.total = total
	return nil
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	base := []Option{WithMetrics(exactMetrics()), WithSeed(7)}
	return NewSession(800, 480, append(base, opts...)...)
}

func TestNewSessionIsIdle(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Equal(t, OutcomeNone, s.Outcome())
	assert.Equal(t, 800.0, s.Geometry().Width)
	assert.Equal(t, 480.0, s.Geometry().Height)
	assert.False(t, s.Geometry().Compact)

	snap := s.Snapshot()
	assert.Equal(t, 7*13, snap.Alive, "idle preview should show a full grid")
	assert.Equal(t, 0, snap.Score)
}

func TestTickWhileNotRunningIsNoop(t *testing.T) {
	s := newTestSession(t)

	before := s.Snapshot()
	after := s.Tick(DirectionInput(false, true))
	assert.Equal(t, before.Paddle, after.Paddle)
	assert.Equal(t, before.Ball, after.Ball)
	assert.Equal(t, uint64(0), after.Tick)
	assert.Equal(t, PhaseIdle, after.Phase)
}

func TestStart(t *testing.T) {
	s := newTestSession(t)
	s.Start()

	snap := s.Snapshot()
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 400.0, snap.Ball.X)
	assert.Equal(t, 440.0, snap.Ball.Y)
	assert.Equal(t, 4.0, math.Abs(snap.Ball.VX))
	assert.Equal(t, -4.0, snap.Ball.VY)
	assert.Equal(t, 350.0, snap.Paddle.X)
	assert.Equal(t, 100.0, snap.Paddle.Width)
	assert.Equal(t, 458.0, snap.Paddle.Y)
	assert.NotEqual(t, uuid.Nil, snap.SessionID)
}

func TestStartDirectionIsRandomized(t *testing.T) {
	seen := map[float64]bool{}
	for seed := int64(0); seed < 64; seed++ {
		s := NewSession(800, 480, WithMetrics(exactMetrics()), WithSeed(seed))
		s.Start()
		seen[s.Snapshot().Ball.VX] = true
	}
	assert.True(t, seen[4], "expected some serves to the right")
	assert.True(t, seen[-4], "expected some serves to the left")
	assert.Len(t, seen, 2)
}

func TestStartIsDeterministicForSeed(t *testing.T) {
	a := NewSession(800, 480, WithSeed(99))
	b := NewSession(800, 480, WithSeed(99))
	a.Start()
	b.Start()

	in := DirectionInput(false, true)
	for range 300 {
		sa := a.Tick(in)
		sb := b.Tick(in)
		require.Equal(t, sa.Ball, sb.Ball)
		require.Equal(t, sa.Score, sb.Score)
	}
}

func TestRestartRebuildsState(t *testing.T) {
	s := newTestSession(t)
	s.Start()
	first := s.Snapshot().SessionID

	s.round.grid.Destroy(0, 0)
	s.round.score = 42
	s.End(OutcomeLost)
	require.Equal(t, PhaseEnded, s.Phase())

	s.Restart()
	snap := s.Snapshot()
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.Equal(t, OutcomeNone, snap.Outcome)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 7*13, snap.Alive)
	assert.NotEqual(t, first, snap.SessionID)

	// Restart from Running is allowed too.
	s.round.score = 5
	s.Restart()
	assert.Equal(t, 0, s.Score())
}

func TestEndGuards(t *testing.T) {
	ledger := &countingLedger{}
	calls := 0
	s := newTestSession(t, WithLedger(ledger), WithEndHook(func(Summary) { calls++ }))

	// Idle cannot jump to Ended.
	s.End(OutcomeWon)
	assert.Equal(t, PhaseIdle, s.Phase())

	s.Start()
	s.End(OutcomeNone)
	assert.Equal(t, PhaseRunning, s.Phase(), "OutcomeNone must not end a session")

	s.round.score = 400
	s.End(OutcomeWon)
	s.End(OutcomeLost)
	s.Tick(Input{})
	s.Tick(Input{})

	assert.Equal(t, PhaseEnded, s.Phase())
	assert.Equal(t, OutcomeWon, s.Outcome())
	assert.Equal(t, 1, ledger.saves, "coins must be settled once")
	assert.Equal(t, 1, calls)
	assert.True(t, ledger.total.Equal(decimal.NewFromInt(1)))
}

func TestSettlementEconomies(t *testing.T) {
	tests := []struct {
		name string
		rule economy.Rule
		want string
	}{
		{"proportional", economy.Proportional{}, "0.625"},
		{"stepped", economy.Stepped{}, "0.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &countingLedger{total: decimal.RequireFromString("10")}
			var got Summary
			s := newTestSession(t,
				WithRule(tc.rule),
				WithLedger(ledger),
				WithEndHook(func(sum Summary) { got = sum }),
			)

			s.Start()
			s.round.score = 250
			s.End(OutcomeLost)

			want := decimal.RequireFromString(tc.want)
			assert.True(t, got.CoinsEarned.Equal(want), "earned %s, expected %s", got.CoinsEarned, want)
			assert.True(t, got.TotalCoins.Equal(want.Add(decimal.NewFromInt(10))))
			assert.True(t, ledger.total.Equal(got.TotalCoins))
			assert.Equal(t, tc.rule.Name(), got.Economy)
			assert.True(t, got.Persisted)

			snap := s.Snapshot()
			assert.True(t, snap.CoinsEarned.Equal(want))
			assert.True(t, snap.TotalCoins.Equal(got.TotalCoins))
		})
	}
}

func TestSettlementSurvivesSaveFailure(t *testing.T) {
	ledger := &countingLedger{failSave: true}
	var sums []Summary
	s := newTestSession(t, WithLedger(ledger), WithEndHook(func(sum Summary) { sums = append(sums, sum) }))

	s.Start()
	s.round.score = 400 // 1 coin
	s.End(OutcomeLost)
	require.Len(t, sums, 1)
	assert.False(t, sums[0].Persisted)
	assert.True(t, s.unsaved.Equal(decimal.NewFromInt(1)))

	// Next settlement retries the unsaved coins.
	ledger.failSave = false
	s.Start()
	s.round.score = 200 // 0.5 coin
	s.End(OutcomeLost)
	require.Len(t, sums, 2)
	assert.True(t, sums[1].Persisted)
	assert.True(t, ledger.total.Equal(decimal.RequireFromString("1.5")), "total = %s", ledger.total)
	assert.True(t, s.unsaved.IsZero())
}

func TestLoadFailureAtStartShowsZero(t *testing.T) {
	ledger := &countingLedger{failLoad: true, total: decimal.NewFromInt(50)}
	var got Summary
	s := newTestSession(t, WithLedger(ledger), WithEndHook(func(sum Summary) { got = sum }))
	assert.True(t, s.Snapshot().TotalCoins.IsZero())

	s.Start()
	s.round.score = 100
	s.End(OutcomeWon)

	assert.False(t, got.Persisted)
	assert.Equal(t, 0, ledger.saves)
	assert.True(t, ledger.total.Equal(decimal.NewFromInt(50)), "stored total = %s", ledger.total)
	assert.True(t, s.unsaved.Equal(decimal.RequireFromString("0.25")))
}

func TestLoadFailureAtSettlementKeepsStoredTotal(t *testing.T) {
	ledger := &countingLedger{total: decimal.NewFromInt(50)}
	var sums []Summary
	s := newTestSession(t, WithLedger(ledger), WithEndHook(func(sum Summary) { sums = append(sums, sum) }))
	require.True(t, s.Snapshot().TotalCoins.Equal(decimal.NewFromInt(50)))

	s.Start()
	s.round.score = 100 // 0.25 coin
	ledger.failLoad = true
	s.End(OutcomeWon)

	require.Len(t, sums, 1)
	assert.False(t, sums[0].Persisted)
	assert.Equal(t, 0, ledger.saves)
	assert.True(t, ledger.total.Equal(decimal.NewFromInt(50)), "stored total = %s", ledger.total)
	assert.True(t, sums[0].TotalCoins.Equal(decimal.RequireFromString("50.25")))
	assert.True(t, s.Snapshot().TotalCoins.GreaterThanOrEqual(decimal.NewFromInt(50)))

	// Once the ledger reads again the held coins land with the next round's.
	ledger.failLoad = false
	s.Start()
	s.round.score = 200 // 0.5 coin
	s.End(OutcomeLost)

	require.Len(t, sums, 2)
	assert.True(t, sums[1].Persisted)
	assert.True(t, ledger.total.Equal(decimal.RequireFromString("50.75")), "stored total = %s", ledger.total)
	assert.True(t, s.unsaved.IsZero())
}

func TestSessionsSharingAccumulatorKeepAllCoins(t *testing.T) {
	ledger := economy.NewMemoryLedger(decimal.NewFromInt(3))
	a := newTestSession(t, WithLedger(ledger))
	b := newTestSession(t, WithLedger(ledger))

	// Both sessions saw the same starting total before either settled.
	a.Start()
	b.Start()
	a.round.score = 400 // 1 coin
	b.round.score = 800 // 2 coins
	a.End(OutcomeLost)
	b.End(OutcomeLost)

	got, err := ledger.LoadCumulativeCoins()
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(6)), "total = %s", got)
	assert.True(t, b.Snapshot().TotalCoins.Equal(decimal.NewFromInt(6)))
}

func TestRendererGetsPostTickSnapshot(t *testing.T) {
	var got []Snapshot
	s := newTestSession(t, WithRenderer(RendererFunc(func(snap Snapshot) {
		got = append(got, snap)
	})))

	s.Tick(Input{}) // idle ticks still draw
	s.Start()
	ret := s.Tick(Input{})

	require.Len(t, got, 2)
	assert.Equal(t, ret.Ball, got[1].Ball)
	assert.Equal(t, uint64(1), got[1].Tick)

	// Snapshots never alias the grid.
	got[1].Bricks[0].Status = BrickDestroyed
	b, _ := s.round.grid.At(0, 0)
	assert.True(t, b.Alive())
}

func TestOnResizeWhileRunning(t *testing.T) {
	s := NewSession(1000, 600, WithSeed(3))
	require.Equal(t, 15, s.Layout().Columns)
	s.Start()

	s.round.grid.Destroy(0, 0)
	s.round.score = 10
	s.round.paddle.X = 800
	vx, vy := s.round.ball.VX, s.round.ball.VY

	s.OnResize(700, 500)

	snap := s.Snapshot()
	assert.True(t, snap.Geometry.Compact)
	assert.Equal(t, 665.0, snap.Geometry.Width)
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 15, snap.Columns, "grid keeps its columns mid-session")
	assert.Equal(t, 7*15-1, snap.Alive)
	assert.False(t, snap.Bricks[0].Alive())
	assert.Equal(t, vx, snap.Ball.VX)
	assert.Equal(t, vy, snap.Ball.VY)
	assert.Equal(t, 80.0, snap.Paddle.Width)
	assert.Equal(t, 665.0-80, snap.Paddle.X, "paddle re-clamped to new bounds")
	assert.LessOrEqual(t, snap.Ball.X, 665.0-snap.Ball.Radius)

	last := snap.Bricks[len(snap.Bricks)-1]
	assert.LessOrEqual(t, last.X+last.Width, 665.0)
}

func TestOnResizeWhileIdleRebuilds(t *testing.T) {
	s := NewSession(1000, 600)
	s.OnResize(700, 500)

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, 10, snap.Columns)
	assert.Equal(t, 70, snap.Alive)
}

func TestDegenerateViewport(t *testing.T) {
	s := NewSession(0, 0, WithSeed(1))
	g := s.Geometry()
	assert.Equal(t, 1.0, g.Width)
	assert.Equal(t, 1.0, g.Height)
	assert.Equal(t, 1, s.Layout().Columns)

	s.Start()
	for range 200 {
		snap := s.Tick(Input{Mode: ControlAbsolute, TargetX: 500})
		assert.Equal(t, 4.0, math.Abs(snap.Ball.VX))
		assert.Equal(t, 4.0, math.Abs(snap.Ball.VY))
		assert.GreaterOrEqual(t, snap.Paddle.X, 0.0)
	}
}
