package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runningSession returns an 800x480 session that has just started.
func runningSession(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	s.Start()
	return s
}

// placeBall puts the ball at (x, y) with the given velocity.
func placeBall(s *Session, x, y, vx, vy float64) {
	s.round.ball.X, s.round.ball.Y = x, y
	s.round.ball.VX, s.round.ball.VY = vx, vy
}

func TestBrickHitFlipsVerticalOnly(t *testing.T) {
	s := runningSession(t)

	// Center of brick (3, 4): x 250..300, y 150..170
	placeBall(s, 275, 160, 4, -4)
	snap := s.Tick(Input{})

	assert.Equal(t, 5, snap.Score, "row 3 is worth 3+2 points")
	assert.Equal(t, 4.0, snap.Ball.VX)
	assert.Equal(t, 4.0, snap.Ball.VY)
	assert.Equal(t, 279.0, snap.Ball.X)
	assert.Equal(t, 164.0, snap.Ball.Y)
	assert.Equal(t, 7*13-1, snap.Alive)

	b, _ := s.round.grid.At(3, 4)
	assert.False(t, b.Alive())
}

func TestBrickRowScoring(t *testing.T) {
	for row := range 7 {
		s := runningSession(t)
		y := 60 + float64(row)*30 + 10
		placeBall(s, 35, y, 4, -4)
		snap := s.Tick(Input{})
		assert.Equal(t, row+2, snap.Score, "row %d", row)
	}
}

func TestWallBounces(t *testing.T) {
	tests := []struct {
		name           string
		x, y, vx, vy   float64
		wantVX, wantVY float64
	}{
		{"right wall", 787, 300, 4, -4, -4, -4},
		{"left wall", 13, 300, -4, 4, 4, 4},
		{"top wall", 400, 13, 4, -4, 4, 4},
		{"top-right corner", 787, 13, 4, -4, -4, 4},
		{"open space", 400, 300, -4, -4, -4, -4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := runningSession(t)
			placeBall(s, tc.x, tc.y, tc.vx, tc.vy)
			snap := s.Tick(Input{})
			assert.Equal(t, tc.wantVX, snap.Ball.VX)
			assert.Equal(t, tc.wantVY, snap.Ball.VY)
			assert.Equal(t, PhaseRunning, snap.Phase)
		})
	}
}

func TestPaddleBounce(t *testing.T) {
	// Paddle plane: 480 - 10 - 12 - 10 = 448; paddle spans 350..450
	tests := []struct {
		name string
		x    float64
	}{
		{"center", 400},
		{"left edge inclusive", 350},
		{"right edge inclusive", 450},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := runningSession(t)
			s.round.score = 9
			placeBall(s, tc.x, 446, 4, 4)

			snap := s.Tick(Input{})
			assert.Equal(t, PhaseRunning, snap.Phase)
			assert.Equal(t, -4.0, snap.Ball.VY)
			assert.Equal(t, 4.0, snap.Ball.VX)
			assert.Equal(t, 10, snap.Score, "paddle hit is worth 1 point")
			assert.Equal(t, 442.0, snap.Ball.Y)
		})
	}
}

func TestMissEndsSessionLost(t *testing.T) {
	s := runningSession(t)
	s.round.score = 17
	s.round.paddle.X = 0
	placeBall(s, 700, 446, 4, 4)

	snap := s.Tick(Input{})
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Equal(t, OutcomeLost, snap.Outcome)
	assert.Equal(t, 17, snap.Score, "a miss never scores")
	assert.Equal(t, 700.0, snap.Ball.X, "ball does not advance on the losing tick")

	// Further ticks do nothing.
	again := s.Tick(DirectionInput(false, true))
	assert.Equal(t, snap.Ball, again.Ball)
	assert.Equal(t, snap.Paddle, again.Paddle)
}

func TestMissJustOutsidePaddle(t *testing.T) {
	for _, x := range []float64{349.9, 450.1} {
		s := runningSession(t)
		placeBall(s, x, 446, 4, 4)
		snap := s.Tick(Input{})
		assert.Equal(t, OutcomeLost, snap.Outcome, "x=%v", x)
	}
}

func TestUpwardBallBelowPlaneIsNotAMiss(t *testing.T) {
	s := runningSession(t)
	placeBall(s, 700, 450, 4, -4)
	snap := s.Tick(Input{})
	assert.Equal(t, PhaseRunning, snap.Phase)
}

func TestDiscretePaddleControl(t *testing.T) {
	s := runningSession(t)
	placeBall(s, 400, 300, 4, -4)

	snap := s.Tick(DirectionInput(false, true))
	assert.Equal(t, 357.0, snap.Paddle.X)

	snap = s.Tick(DirectionInput(true, false))
	assert.Equal(t, 350.0, snap.Paddle.X)

	snap = s.Tick(DirectionInput(true, true))
	assert.Equal(t, 350.0, snap.Paddle.X, "opposing directions cancel")

	for range 200 {
		snap = s.Tick(DirectionInput(true, false))
		if snap.Phase != PhaseRunning {
			break
		}
	}
	assert.Equal(t, 0.0, snap.Paddle.X)
}

func TestDiscretePaddleClampsRight(t *testing.T) {
	s := runningSession(t)
	s.round.paddle.X = 698
	placeBall(s, 400, 300, 4, -4)

	snap := s.Tick(DirectionInput(false, true))
	assert.Equal(t, 700.0, snap.Paddle.X)
}

func TestAbsolutePaddleControl(t *testing.T) {
	tests := []struct {
		target float64
		want   float64
	}{
		{400, 350},
		{120, 70},
		{0, 0},
		{-300, 0},
		{799, 700},
		{5000, 700},
	}

	for _, tc := range tests {
		s := runningSession(t)
		placeBall(s, 400, 300, 4, -4)
		snap := s.Tick(PointerInput(tc.target))
		assert.Equal(t, tc.want, snap.Paddle.X, "target %v", tc.target)
	}
}

func TestPaddleMovesAfterCollisionCheck(t *testing.T) {
	s := runningSession(t)
	s.round.paddle.X = 0
	placeBall(s, 400, 446, 4, 4)

	// The pointer would have caught the ball, but collision uses the
	// paddle position from before this tick's move.
	snap := s.Tick(PointerInput(400))
	assert.Equal(t, OutcomeLost, snap.Outcome)
}

func TestClearingTopRowWins(t *testing.T) {
	s := runningSession(t)
	layout := s.Layout()
	require.Equal(t, 13, layout.Columns)

	// Leave only row 0 standing.
	for row := 1; row < 7; row++ {
		for col := range layout.Columns {
			s.round.grid.Destroy(row, col)
		}
	}

	for col := range layout.Columns {
		b, _ := s.round.grid.At(0, col)
		placeBall(s, b.X+b.Width/2, b.Y+b.Height/2, 4, -4)
		snap := s.Tick(Input{})

		if col < layout.Columns-1 {
			require.Equal(t, PhaseRunning, snap.Phase, "col %d", col)
			continue
		}
		assert.Equal(t, PhaseEnded, snap.Phase)
		assert.Equal(t, OutcomeWon, snap.Outcome)
		assert.Equal(t, layout.Columns*2, snap.Score)
		assert.Equal(t, 0, snap.Alive)
	}
}

func TestLastBrickAndMissSameTickWins(t *testing.T) {
	s := runningSession(t)
	// A single brick sitting on the paddle plane.
	s.round.grid = NewGrid(Layout{
		Geometry:    s.geom,
		Rows:        1,
		Columns:     1,
		BrickWidth:  50,
		BrickHeight: 20,
		OffsetTop:   436,
		OffsetLeft:  680,
	})
	s.round.paddle.X = 0
	// The brick flips the ball downward across the plane in the same tick.
	placeBall(s, 700, 446, 4, -4)

	snap := s.Tick(Input{})
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Equal(t, OutcomeWon, snap.Outcome)
	assert.Equal(t, 2, snap.Score)
}

func TestVelocityMagnitudeInvariant(t *testing.T) {
	s := NewSession(1024, 768, WithSeed(2024))
	s.Start()

	prevScore := 0
	for i := range 20000 {
		before := s.Snapshot()
		// Track the ball so the round lasts.
		snap := s.Tick(PointerInput(before.Ball.X))

		require.Equal(t, math.Abs(before.Ball.VX), math.Abs(snap.Ball.VX), "tick %d", i)
		require.Equal(t, math.Abs(before.Ball.VY), math.Abs(snap.Ball.VY), "tick %d", i)
		require.NotZero(t, snap.Ball.VX)
		require.NotZero(t, snap.Ball.VY)
		require.GreaterOrEqual(t, snap.Score, prevScore, "score must never decrease")
		prevScore = snap.Score

		require.GreaterOrEqual(t, snap.Paddle.X, 0.0)
		require.LessOrEqual(t, snap.Paddle.X, snap.Geometry.Width-snap.Paddle.Width)

		if snap.Phase != PhaseRunning {
			break
		}
	}
}

func TestEachBrickDestroyedAtMostOnce(t *testing.T) {
	s := NewSession(1024, 768, WithSeed(11))
	s.Start()

	destroyed := map[[2]int]int{}
	prev := s.Snapshot().Bricks
	for range 20000 {
		snap := s.Tick(PointerInput(s.round.ball.X))
		for i, b := range snap.Bricks {
			if prev[i].Alive() && !b.Alive() {
				destroyed[[2]int{b.Row, b.Col}]++
			}
			require.False(t, !prev[i].Alive() && b.Alive(), "brick came back to life")
		}
		prev = snap.Bricks
		if snap.Phase != PhaseRunning {
			break
		}
	}

	for cell, n := range destroyed {
		assert.Equal(t, 1, n, "brick %v destroyed %d times", cell, n)
	}
	assert.NotEmpty(t, destroyed)
}
