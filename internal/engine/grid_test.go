package engine

import "testing"

func testLayout() Layout {
	return ComputeLayout(Geometry{Width: 800, Height: 480})
}

func TestNewGrid(t *testing.T) {
	l := testLayout()
	g := NewGrid(l)

	if g.Rows() != 7 || g.Columns() != 13 {
		t.Fatalf("grid = %dx%d, expected 7x13", g.Rows(), g.Columns())
	}
	if g.CountAlive() != 7*13 {
		t.Errorf("CountAlive() = %d, expected %d", g.CountAlive(), 7*13)
	}

	tests := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 10, 60},
		{0, 1, 70, 60},
		{1, 2, 130, 90},
		{6, 12, 730, 240},
	}
	for _, tc := range tests {
		b, ok := g.At(tc.row, tc.col)
		if !ok {
			t.Fatalf("At(%d, %d) out of range", tc.row, tc.col)
		}
		if b.X != tc.x || b.Y != tc.y {
			t.Errorf("brick (%d,%d) at (%v,%v), expected (%v,%v)", tc.row, tc.col, b.X, b.Y, tc.x, tc.y)
		}
		if !b.Alive() {
			t.Errorf("brick (%d,%d) should start alive", tc.row, tc.col)
		}
	}
}

func TestGridDestroyIdempotent(t *testing.T) {
	g := NewGrid(testLayout())
	total := g.CountAlive()

	if !g.Destroy(2, 3) {
		t.Fatal("first Destroy should change the brick")
	}
	if g.Destroy(2, 3) {
		t.Error("second Destroy should be a no-op")
	}
	if g.CountAlive() != total-1 {
		t.Errorf("CountAlive() = %d, expected %d", g.CountAlive(), total-1)
	}

	// Out of range is ignored
	if g.Destroy(-1, 0) || g.Destroy(0, 99) || g.Destroy(7, 0) {
		t.Error("out-of-range Destroy should report no change")
	}
	if g.CountAlive() != total-1 {
		t.Error("out-of-range Destroy changed the count")
	}
}

func TestGridHitTest(t *testing.T) {
	g := NewGrid(testLayout())

	tests := []struct {
		name     string
		x, y     float64
		row, col int
		ok       bool
	}{
		{"center of first brick", 35, 70, 0, 0, true},
		{"row 3 col 4", 10 + 4*60 + 1, 60 + 3*30 + 1, 3, 4, true},
		{"left edge is outside", 10, 70, -1, -1, false},
		{"top edge is outside", 35, 60, -1, -1, false},
		{"padding gap", 65, 70, -1, -1, false},
		{"above grid", 35, 30, -1, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, col, ok := g.HitTest(tc.x, tc.y, 10)
			if ok != tc.ok || row != tc.row || col != tc.col {
				t.Errorf("HitTest(%v, %v) = (%d, %d, %v), expected (%d, %d, %v)",
					tc.x, tc.y, row, col, ok, tc.row, tc.col, tc.ok)
			}
		})
	}
}

func TestGridHitTestIgnoresRadius(t *testing.T) {
	g := NewGrid(testLayout())

	// Ball edge overlaps brick (0,0) but the center does not.
	if _, _, ok := g.HitTest(35, 55, 10); ok {
		t.Error("HitTest should only consider the ball center")
	}
}

func TestGridHitTestRowMajorFirstMatch(t *testing.T) {
	// Negative padding makes neighbours overlap.
	l := Layout{
		Geometry:    Geometry{Width: 200, Height: 200},
		Rows:        2,
		Columns:     2,
		BrickWidth:  50,
		BrickHeight: 20,
		Padding:     -10,
	}
	g := NewGrid(l)

	row, col, ok := g.HitTest(45, 15, 0)
	if !ok || row != 0 || col != 0 {
		t.Fatalf("HitTest = (%d, %d, %v), expected (0, 0, true)", row, col, ok)
	}

	g.Destroy(0, 0)
	row, col, ok = g.HitTest(45, 15, 0)
	if !ok || row != 0 || col != 1 {
		t.Fatalf("after destroy HitTest = (%d, %d, %v), expected (0, 1, true)", row, col, ok)
	}

	g.Destroy(0, 1)
	row, col, ok = g.HitTest(45, 15, 0)
	if !ok || row != 1 || col != 0 {
		t.Fatalf("after destroy HitTest = (%d, %d, %v), expected (1, 0, true)", row, col, ok)
	}
}

func TestGridRelayoutKeepsStatus(t *testing.T) {
	g := NewGrid(testLayout())
	g.Destroy(0, 0)
	g.Destroy(6, 12)

	compact := ComputeLayout(Geometry{Width: 700, Height: 400, Compact: true})
	g.Relayout(compact)

	if g.CountAlive() != 7*13-2 {
		t.Errorf("CountAlive() = %d after relayout, expected %d", g.CountAlive(), 7*13-2)
	}
	b, _ := g.At(0, 0)
	if b.Alive() {
		t.Error("destroyed brick came back after relayout")
	}

	// 13 columns squeezed into a 700 wide compact field
	want := compact.ColumnWidth(13)
	b, _ = g.At(1, 1)
	if b.Width != want {
		t.Errorf("brick width = %v, expected %v", b.Width, want)
	}
	if b.Height != 16 {
		t.Errorf("brick height = %v, expected 16", b.Height)
	}
	if b.X != 10+want+10 {
		t.Errorf("brick x = %v, expected %v", b.X, 10+want+10)
	}
}

func TestGridBricksIsCopy(t *testing.T) {
	g := NewGrid(testLayout())
	bricks := g.Bricks()
	bricks[0].Status = BrickDestroyed

	b, _ := g.At(0, 0)
	if !b.Alive() {
		t.Error("mutating Bricks() result changed the grid")
	}
}
