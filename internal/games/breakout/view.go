package breakout

import (
	"math"

	"github.com/vovakirdan/bricks/internal/core"
	"github.com/vovakirdan/bricks/internal/engine"
)

// view places the engine field on the terminal. The field is centred
// horizontally and sits directly under the HUD.
type view struct {
	cellW, cellH float64
	originX      int // Screen column of field x=0
	originY      int // Screen row of field y=0
	cols, rows   int // Field size in cells
}

func newView(geom engine.Geometry, screenW, screenH int, cellW, cellH float64) view {
	cols := max(1, int(math.Ceil(geom.Width/cellW)))
	rows := max(1, int(math.Ceil(geom.Height/cellH)))
	return view{
		cellW:   cellW,
		cellH:   cellH,
		originX: max(0, (screenW-cols)/2),
		originY: hudRows + max(0, (screenH-hudRows-rows)/2),
		cols:    cols,
		rows:    rows,
	}
}

// field is the screen rectangle covered by the playfield.
func (v view) field() core.Rect {
	return core.NewRect(v.originX, v.originY, v.cols, v.rows)
}

// cell maps an engine point to the screen cell containing it, clamped to
// the field so a ball past the paddle stays visible.
func (v view) cell(x, y float64) (int, int) {
	cx := core.Clamp(int(math.Floor(x/v.cellW)), 0, v.cols-1)
	cy := core.Clamp(int(math.Floor(y/v.cellH)), 0, v.rows-1)
	return v.originX + cx, v.originY + cy
}

// rect maps an engine rectangle to cells by rounding its edges, never
// producing less than one cell in either direction.
func (v view) rect(x, y, w, h float64) core.Rect {
	x0 := int(math.Round(x / v.cellW))
	x1 := int(math.Round((x + w) / v.cellW))
	y0 := int(math.Round(y / v.cellH))
	y1 := int(math.Round((y + h) / v.cellH))
	return core.NewRect(v.originX+x0, v.originY+y0, max(1, x1-x0), max(1, y1-y0))
}

// toUnitsX converts a screen column to the engine x at the cell's centre.
func (v view) toUnitsX(col int) float64 {
	return (float64(col-v.originX) + 0.5) * v.cellW
}
