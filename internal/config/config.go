// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"github.com/vovakirdan/bricks/internal/engine"
)

// BreakoutConfig contains all tunables for a brick-breaker session.
type BreakoutConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Economy  EconomyConfig  `yaml:"economy"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// FieldConfig sizes the playfield and the brick grid, in engine units.
type FieldConfig struct {
	WidthRatio       float64 `yaml:"width_ratio"`
	HeightRatio      float64 `yaml:"height_ratio"`
	MaxWidth         float64 `yaml:"max_width"`
	MaxHeight        float64 `yaml:"max_height"`
	CompactThreshold float64 `yaml:"compact_threshold"` // Viewport widths at or below this are compact
	CompactScale     float64 `yaml:"compact_scale"`
	Rows             int     `yaml:"rows"`
	ColumnWidth      float64 `yaml:"column_width"` // Target width used to pick the column count
	BrickHeight      float64 `yaml:"brick_height"`
	BrickPadding     float64 `yaml:"brick_padding"`
	OffsetTop        float64 `yaml:"offset_top"`
	OffsetLeft       float64 `yaml:"offset_left"`
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"`
	Step         float64 `yaml:"step"` // Units moved per tick with discrete controls
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"` // Per-axis speed in units per tick
	StartOffset float64 `yaml:"start_offset"`
}

// EconomyConfig selects the coin conversion rule.
type EconomyConfig struct {
	Rule string `yaml:"rule"` // "proportional" or "stepped"
}

// TerminalConfig maps terminal cells onto engine units.
type TerminalConfig struct {
	CellWidth    float64 `yaml:"cell_width"`
	CellHeight   float64 `yaml:"cell_height"`
	KeyHoldTicks int     `yaml:"key_hold_ticks"` // Ticks a key press keeps the paddle moving
}

// Metrics converts the configuration into engine metrics.
// Zero or negative values fall back to engine defaults.
func (c BreakoutConfig) Metrics() engine.Metrics {
	return engine.Metrics{
		WidthRatio:        c.Field.WidthRatio,
		HeightRatio:       c.Field.HeightRatio,
		MaxFieldWidth:     c.Field.MaxWidth,
		MaxFieldHeight:    c.Field.MaxHeight,
		CompactThreshold:  c.Field.CompactThreshold,
		CompactScale:      c.Field.CompactScale,
		Rows:              c.Field.Rows,
		TargetColumnWidth: c.Field.ColumnWidth,
		BrickHeight:       c.Field.BrickHeight,
		BrickPadding:      c.Field.BrickPadding,
		OffsetTop:         c.Field.OffsetTop,
		OffsetLeft:        c.Field.OffsetLeft,

		PaddleWidth:        c.Paddle.Width,
		PaddleHeight:       c.Paddle.Height,
		PaddleBottomOffset: c.Paddle.BottomOffset,
		PaddleStep:         c.Paddle.Step,

		BallRadius:      c.Ball.Radius,
		BallSpeed:       c.Ball.Speed,
		BallStartOffset: c.Ball.StartOffset,
	}
}
