package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a read-only copy of the session state taken after a tick.
// Nothing in it aliases engine-owned memory.
type Snapshot struct {
	SessionID uuid.UUID
	Tick      uint64

	Geometry Geometry
	Ball     Ball
	Paddle   Paddle
	Bricks   []Brick // Row-major
	Rows     int
	Columns  int
	Alive    int

	Score   int
	Phase   Phase
	Outcome Outcome

	// CoinsEarned is the live value while running and the settled amount
	// once the session has ended.
	CoinsEarned decimal.Decimal
	TotalCoins  decimal.Decimal
}

// Renderer consumes one snapshot per tick. Its return has no effect on the engine.
type Renderer interface {
	Render(snap Snapshot)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(snap Snapshot)

// Render implements Renderer.
func (f RendererFunc) Render(snap Snapshot) { f(snap) }

// Summary describes a settled session.
type Summary struct {
	SessionID   uuid.UUID
	Outcome     Outcome
	Score       int
	Ticks       uint64
	Economy     string
	CoinsEarned decimal.Decimal
	TotalCoins  decimal.Decimal
	Persisted   bool // False if the ledger save failed
}
