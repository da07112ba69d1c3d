// Package engine implements the brick breaker simulation: playfield layout,
// the destructible brick grid, ball/paddle physics and the session state
// machine that settles coins at the end of a round.
//
// The engine is pure logic. It owns no timers and knows nothing about
// terminals; a platform layer calls Tick once per frame and draws the
// returned Snapshot.
package engine

import "math"

// Metrics holds every tunable distance, ratio and speed the engine uses.
// Units are abstract pixels; the platform decides how they map to the screen.
type Metrics struct {
	// Field sizing
	WidthRatio       float64 // Share of viewport width used by the field
	HeightRatio      float64 // Share of viewport height used by the field
	MaxFieldWidth    float64
	MaxFieldHeight   float64
	CompactThreshold float64 // Viewport widths at or below this are compact devices
	CompactScale     float64 // Brick and paddle scale on compact devices

	// Brick grid
	Rows              int
	TargetColumnWidth float64 // Approximate brick width used to pick the column count
	BrickHeight       float64
	BrickPadding      float64
	OffsetTop         float64
	OffsetLeft        float64

	// Paddle
	PaddleWidth        float64
	PaddleHeight       float64
	PaddleBottomOffset float64 // Gap between paddle and the bottom edge
	PaddleStep         float64 // Distance moved per tick under discrete control

	// Ball
	BallRadius      float64
	BallSpeed       float64 // Per-axis speed in units per tick
	BallStartOffset float64 // Distance of the start position above the bottom edge
}

// DefaultMetrics returns the classic 800x480-era tuning.
func DefaultMetrics() Metrics {
	return Metrics{
		WidthRatio:       0.95,
		HeightRatio:      0.78,
		MaxFieldWidth:    1200,
		MaxFieldHeight:   900,
		CompactThreshold: 768,
		CompactScale:     0.8,

		Rows:              7,
		TargetColumnWidth: 60,
		BrickHeight:       20,
		BrickPadding:      10,
		OffsetTop:         60,
		OffsetLeft:        10,

		PaddleWidth:        100,
		PaddleHeight:       12,
		PaddleBottomOffset: 10,
		PaddleStep:         7,

		BallRadius:      10,
		BallSpeed:       4,
		BallStartOffset: 40,
	}
}

// normalized replaces unusable values with defaults so that the rest of the
// engine can rely on positive sizes and a non-zero ball speed.
func (m Metrics) normalized() Metrics {
	d := DefaultMetrics()
	pos := func(v, def float64) float64 {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	}

	m.WidthRatio = pos(m.WidthRatio, d.WidthRatio)
	m.HeightRatio = pos(m.HeightRatio, d.HeightRatio)
	m.MaxFieldWidth = pos(m.MaxFieldWidth, d.MaxFieldWidth)
	m.MaxFieldHeight = pos(m.MaxFieldHeight, d.MaxFieldHeight)
	m.CompactThreshold = pos(m.CompactThreshold, d.CompactThreshold)
	m.CompactScale = pos(m.CompactScale, d.CompactScale)
	if m.Rows <= 0 {
		m.Rows = d.Rows
	}
	m.TargetColumnWidth = pos(m.TargetColumnWidth, d.TargetColumnWidth)
	m.BrickHeight = pos(m.BrickHeight, d.BrickHeight)
	m.PaddleWidth = pos(m.PaddleWidth, d.PaddleWidth)
	m.PaddleHeight = pos(m.PaddleHeight, d.PaddleHeight)
	m.PaddleStep = pos(m.PaddleStep, d.PaddleStep)
	m.BallRadius = pos(m.BallRadius, d.BallRadius)
	m.BallSpeed = pos(m.BallSpeed, d.BallSpeed)

	// Zero is a legitimate value for these.
	if m.BrickPadding < 0 {
		m.BrickPadding = 0
	}
	if m.OffsetTop < 0 {
		m.OffsetTop = 0
	}
	if m.OffsetLeft < 0 {
		m.OffsetLeft = 0
	}
	if m.PaddleBottomOffset < 0 {
		m.PaddleBottomOffset = 0
	}
	if m.BallStartOffset < 0 {
		m.BallStartOffset = 0
	}
	return m
}

// Geometry is the playfield derived from one viewport size.
type Geometry struct {
	Width   float64
	Height  float64
	Compact bool
}

// Layout is the brick grid and paddle sizing derived from a Geometry.
type Layout struct {
	Geometry

	Rows        int
	Columns     int
	BrickWidth  float64
	BrickHeight float64
	PaddleWidth float64

	OffsetTop  float64
	OffsetLeft float64
	Padding    float64

	scale float64 // Compact scale applied to brick width (1 on regular devices)
}

// ComputeGeometry derives the playfield from a viewport using DefaultMetrics.
func ComputeGeometry(viewportW, viewportH float64) Geometry {
	return DefaultMetrics().Geometry(viewportW, viewportH)
}

// ComputeLayout derives the brick layout from a geometry using DefaultMetrics.
func ComputeLayout(g Geometry) Layout {
	return DefaultMetrics().Layout(g)
}

// Geometry derives the playfield size. The field never exceeds the configured
// caps and never shrinks below 1x1.
func (m Metrics) Geometry(viewportW, viewportH float64) Geometry {
	m = m.normalized()
	vw := nonNegative(viewportW)
	vh := nonNegative(viewportH)

	return Geometry{
		Width:   math.Max(1, math.Floor(math.Min(vw*m.WidthRatio, m.MaxFieldWidth))),
		Height:  math.Max(1, math.Floor(math.Min(vh*m.HeightRatio, m.MaxFieldHeight))),
		Compact: vw <= m.CompactThreshold,
	}
}

// Layout derives brick and paddle sizes for a geometry. It depends only on
// its inputs; the compact scale is applied to base sizes exactly once.
func (m Metrics) Layout(g Geometry) Layout {
	m = m.normalized()

	scale := 1.0
	if g.Compact {
		scale = m.CompactScale
	}

	cols := int(math.Floor((g.Width - 2*m.OffsetLeft) / m.TargetColumnWidth))
	if cols < 1 {
		cols = 1
	}

	l := Layout{
		Geometry:    g,
		Rows:        m.Rows,
		Columns:     cols,
		BrickHeight: math.Max(1, math.Floor(m.BrickHeight*scale)),
		PaddleWidth: math.Min(g.Width, math.Max(1, math.Round(m.PaddleWidth*scale))),
		OffsetTop:   m.OffsetTop,
		OffsetLeft:  m.OffsetLeft,
		Padding:     m.BrickPadding,
		scale:       scale,
	}
	l.BrickWidth = l.ColumnWidth(cols)
	return l
}

// ColumnWidth returns the brick width that fits cols columns across the
// field with this layout's padding and scale.
func (l Layout) ColumnWidth(cols int) float64 {
	if cols < 1 {
		cols = 1
	}
	scale := l.scale
	if scale == 0 {
		scale = 1
	}
	usable := l.Width - 2*l.OffsetLeft - float64(cols-1)*l.Padding
	return math.Max(1, math.Floor(usable/float64(cols)*scale))
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
