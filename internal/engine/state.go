package engine

import "math"

// Phase is the session's state-machine state.
type Phase int

const (
	PhaseIdle    Phase = iota // Before the first start
	PhaseRunning              // Ball in play
	PhaseEnded                // Round over, see Outcome
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is how an ended session finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Ball is the ball state. X and Y are the center.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Paddle is the paddle state. X is the left edge, Y the top edge.
type Paddle struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the paddle's right edge.
func (p Paddle) Right() float64 {
	return p.X + p.Width
}

// clampX keeps the paddle inside a field of the given width.
func (p *Paddle) clampX(fieldW float64) {
	p.X = clamp(p.X, 0, math.Max(0, fieldW-p.Width))
}

// ControlMode selects how an Input moves the paddle.
type ControlMode int

const (
	ControlNone     ControlMode = iota // Paddle stays put
	ControlAbsolute                    // Pointer position; paddle centers on it
	ControlDiscrete                    // Held directions; fixed step per tick
)

// Input is the paddle intent sampled once per tick.
type Input struct {
	Mode    ControlMode
	TargetX float64 // Pointer x in field units (ControlAbsolute)
	Left    bool    // Held left (ControlDiscrete)
	Right   bool    // Held right (ControlDiscrete)
}

// PointerInput returns an absolute-control input centered on x.
func PointerInput(x float64) Input {
	return Input{Mode: ControlAbsolute, TargetX: x}
}

// DirectionInput returns a discrete-control input.
func DirectionInput(left, right bool) Input {
	return Input{Mode: ControlDiscrete, Left: left, Right: right}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
