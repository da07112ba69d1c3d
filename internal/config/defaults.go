package config

import (
	_ "embed"

	"github.com/vovakirdan/bricks/internal/economy"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			WidthRatio:       0.95,
			HeightRatio:      0.78,
			MaxWidth:         1200,
			MaxHeight:        900,
			CompactThreshold: 768,
			CompactScale:     0.8,
			Rows:             7,
			ColumnWidth:      60,
			BrickHeight:      20,
			BrickPadding:     10,
			OffsetTop:        60,
			OffsetLeft:       10,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       12,
			BottomOffset: 10,
			Step:         7,
		},
		Ball: BallConfig{
			Radius:      10,
			Speed:       4,
			StartOffset: 40,
		},
		Economy: EconomyConfig{
			Rule: economy.NameProportional,
		},
		Terminal: TerminalConfig{
			CellWidth:    10,
			CellHeight:   20,
			KeyHoldTicks: 6,
		},
	}
}
