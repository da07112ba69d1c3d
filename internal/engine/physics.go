package engine

import "math"

// Tick advances a running session by one frame and returns the post-tick
// snapshot, which is also handed to the renderer. Ticks outside the Running
// phase change nothing.
//
// Per tick, in order: brick hit, walls, paddle plane, paddle movement, ball
// advance, win check. Each check runs once against the pre-move position;
// there is no sub-stepping, so a fast ball can tunnel through a thin row.
func (s *Session) Tick(in Input) Snapshot {
	if s.phase == PhaseRunning {
		s.step(in)
	}

	snap := s.Snapshot()
	if s.renderer != nil {
		s.renderer.Render(snap)
	}
	return snap
}

func (s *Session) step(in Input) {
	r := &s.round
	b := &r.ball
	r.ticks++

	s.collideBricks()

	missed := s.collideWallsAndPaddle()
	if missed {
		// The last brick may have fallen in this same tick.
		if r.grid.CountAlive() == 0 {
			s.End(OutcomeWon)
		} else {
			s.End(OutcomeLost)
		}
		return
	}

	s.movePaddle(in)

	b.X += b.VX
	b.Y += b.VY

	if r.grid.CountAlive() == 0 {
		s.End(OutcomeWon)
	}
}

// collideBricks destroys the first brick containing the ball center,
// reverses vertical motion and awards row+2 points.
func (s *Session) collideBricks() {
	r := &s.round
	b := &r.ball

	row, col, ok := r.grid.HitTest(b.X, b.Y, b.Radius)
	if !ok {
		return
	}
	if r.grid.Destroy(row, col) {
		b.VY = -b.VY
		r.score += row + 2
	}
}

// collideWallsAndPaddle bounces off the side walls, the top wall and the
// paddle. It reports true when the ball crosses the paddle plane outside the
// paddle.
func (s *Session) collideWallsAndPaddle() (missed bool) {
	r := &s.round
	b := &r.ball
	w := s.geom.Width

	nextX := b.X + b.VX
	switch {
	case nextX > w-b.Radius:
		b.VX = -math.Abs(b.VX)
	case nextX < b.Radius:
		b.VX = math.Abs(b.VX)
	}

	nextY := b.Y + b.VY
	if nextY < b.Radius {
		b.VY = math.Abs(b.VY)
		return false
	}

	if b.VY > 0 && nextY > s.paddlePlane() {
		p := r.paddle
		if b.X >= p.X && b.X <= p.Right() {
			b.VY = -math.Abs(b.VY)
			r.score++
			return false
		}
		return true
	}
	return false
}

// paddlePlane is the y the ball center must not pass without the paddle.
func (s *Session) paddlePlane() float64 {
	m := s.metrics
	return s.geom.Height - s.round.ball.Radius - m.PaddleHeight - m.PaddleBottomOffset
}

// movePaddle applies the tick's input. Out-of-range targets are clamped,
// never rejected.
func (s *Session) movePaddle(in Input) {
	p := &s.round.paddle

	switch in.Mode {
	case ControlAbsolute:
		p.X = in.TargetX - p.Width/2
	case ControlDiscrete:
		switch {
		case in.Right && !in.Left:
			p.X += s.metrics.PaddleStep
		case in.Left && !in.Right:
			p.X -= s.metrics.PaddleStep
		}
	}

	p.clampX(s.geom.Width)
}
