package breakout

import (
	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/engine"
)

// controls turns per-frame terminal input into engine input.
//
// Terminals report key presses but never releases, so a press holds its
// direction for holdTicks frames; auto-repeat keeps it alive while the key
// is down. A mouse report switches to pointer control until the next key.
type controls struct {
	holdTicks int

	left, right int // Remaining hold frames

	pointer    float64
	hasPointer bool
}

func (c *controls) observe(in core.InputFrame, v view) {
	if in.HasPointer {
		c.pointer = v.toUnitsX(in.Pointer)
		c.hasPointer = true
		c.left, c.right = 0, 0
	}

	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	if left || right {
		c.hasPointer = false
	}
	// A fresh press cancels the opposite hold so reversing feels immediate.
	switch {
	case left && right:
		c.left, c.right = c.holdTicks, c.holdTicks
	case left:
		c.left, c.right = c.holdTicks, 0
	case right:
		c.left, c.right = 0, c.holdTicks
	}
}

// next returns the input for this tick and ages the key holds.
func (c *controls) next() engine.Input {
	if c.hasPointer {
		return engine.PointerInput(c.pointer)
	}
	in := engine.DirectionInput(c.left > 0, c.right > 0)
	if c.left > 0 {
		c.left--
	}
	if c.right > 0 {
		c.right--
	}
	return in
}

func (c *controls) reset() {
	c.left, c.right = 0, 0
	c.hasPointer = false
}
