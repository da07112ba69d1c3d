package engine

// BrickStatus is the lifecycle state of a single brick.
type BrickStatus uint8

const (
	BrickAlive BrickStatus = iota
	BrickDestroyed
)

// String returns a human-readable name for the status.
func (s BrickStatus) String() string {
	switch s {
	case BrickAlive:
		return "alive"
	case BrickDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Brick is one cell of the grid. X and Y are the top-left corner.
type Brick struct {
	X, Y          float64
	Width, Height float64
	Status        BrickStatus
	Row, Col      int
}

// Alive reports whether the brick is still standing.
func (b Brick) Alive() bool {
	return b.Status == BrickAlive
}

// Contains reports whether the point lies strictly inside the brick.
func (b Brick) Contains(x, y float64) bool {
	return x > b.X && x < b.X+b.Width && y > b.Y && y < b.Y+b.Height
}

// Grid owns the destructible brick matrix for one session.
type Grid struct {
	rows, cols int
	bricks     []Brick // Row-major: index = row*cols + col
	alive      int
}

// NewGrid allocates a grid for the layout with every brick alive.
func NewGrid(l Layout) *Grid {
	rows, cols := l.Rows, l.Columns
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	g := &Grid{
		rows:   rows,
		cols:   cols,
		bricks: make([]Brick, rows*cols),
		alive:  rows * cols,
	}
	for r := range rows {
		for c := range cols {
			g.bricks[r*cols+c] = Brick{Row: r, Col: c, Status: BrickAlive}
		}
	}
	g.Relayout(l)
	return g
}

// Rows returns the number of brick rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of brick columns.
func (g *Grid) Columns() int { return g.cols }

// At returns the brick at (row, col) and whether the coordinates are valid.
func (g *Grid) At(row, col int) (Brick, bool) {
	if !g.inBounds(row, col) {
		return Brick{}, false
	}
	return g.bricks[row*g.cols+col], true
}

// CountAlive returns the number of bricks still standing.
func (g *Grid) CountAlive() int {
	return g.alive
}

// Destroy marks a brick as destroyed. Destroying an already destroyed brick
// or an out-of-range cell is a no-op. Reports whether the brick changed.
func (g *Grid) Destroy(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	b := &g.bricks[row*g.cols+col]
	if b.Status == BrickDestroyed {
		return false
	}
	b.Status = BrickDestroyed
	g.alive--
	return true
}

// HitTest returns the first alive brick, scanning row-major, whose rectangle
// contains the ball center. The radius does not widen the test.
func (g *Grid) HitTest(x, y, radius float64) (row, col int, ok bool) {
	for i := range g.bricks {
		b := &g.bricks[i]
		if b.Status == BrickAlive && b.Contains(x, y) {
			return b.Row, b.Col, true
		}
	}
	return -1, -1, false
}

// Relayout recomputes brick positions for a new layout without touching
// statuses. The grid keeps its own dimensions; if the layout suggests a
// different column count, the existing columns are stretched to fit.
func (g *Grid) Relayout(l Layout) {
	width := l.BrickWidth
	if l.Columns != g.cols {
		width = l.ColumnWidth(g.cols)
	}

	for i := range g.bricks {
		b := &g.bricks[i]
		b.Width = width
		b.Height = l.BrickHeight
		b.X = l.OffsetLeft + float64(b.Col)*(width+l.Padding)
		b.Y = l.OffsetTop + float64(b.Row)*(l.BrickHeight+l.Padding)
	}
}

// Bricks returns a copy of all bricks in row-major order.
func (g *Grid) Bricks() []Brick {
	out := make([]Brick, len(g.bricks))
	copy(out, g.bricks)
	return out
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}
