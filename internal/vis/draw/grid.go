// Package draw provides rendering functions for visualization.
package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/vis/interact"
)

// Cell colors
var (
	ColorCellOpen    = color.NRGBA{R: 70, G: 78, B: 88, A: 255}
	ColorCellBlocked = color.NRGBA{R: 15, G: 15, B: 18, A: 255}
	ColorCellCycle   = color.NRGBA{R: 120, G: 80, B: 50, A: 255}
	ColorGridLine    = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
)

// CellColor shades an open cell by cost: unit cells use ColorCellOpen and
// the most expensive cell is the darkest.
func CellColor(cost, maxCost float64) color.NRGBA {
	if cost == core.Blocked {
		return ColorCellBlocked
	}
	if maxCost <= 1 || cost <= 1 {
		return ColorCellOpen
	}
	f := (cost - 1) / (maxCost - 1)
	if f > 1 {
		f = 1
	}
	shade := func(v uint8) uint8 { return uint8(float64(v) * (1 - 0.55*f)) }
	return color.NRGBA{R: shade(ColorCellOpen.R), G: shade(ColorCellOpen.G), B: shade(ColorCellOpen.B), A: 255}
}

// DrawCells fills every cell with its cost shade, tints the cells visited by
// obstacle cycles and draws the grid lines.
func DrawCells(gtx layout.Context, w *core.World, camera *interact.Camera) {
	maxCost := w.MaxCost()
	for x := 0; x < w.Rows; x++ {
		for y := 0; y < w.Cols; y++ {
			c := core.Cell{X: x, Y: y}
			FillCell(gtx, c, camera, CellColor(w.Cost(c), maxCost), 0)
		}
	}

	for _, o := range w.Obstacles() {
		for _, c := range o.Positions() {
			col := ColorCellCycle
			col.A = 120
			FillCell(gtx, c, camera, col, 0)
		}
	}

	drawGridLines(gtx, w.Rows, w.Cols, camera)
}

// FillCell fills a cell, shrunk by inset screen pixels on every side.
func FillCell(gtx layout.Context, c core.Cell, camera *interact.Camera, col color.NRGBA, inset float32) {
	x, y := camera.CellOrigin(c)
	size := camera.CellPixels()
	rect := image.Rect(int(x+inset), int(y+inset), int(x+size-inset), int(y+size-inset))
	if rect.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

func drawGridLines(gtx layout.Context, rows, cols int, camera *interact.Camera) {
	x0, y0 := camera.CellOrigin(core.Cell{})
	x1, y1 := camera.CellOrigin(core.Cell{X: rows, Y: cols})

	for col := 0; col <= cols; col++ {
		sx, _ := camera.CellOrigin(core.Cell{Y: col})
		rect := image.Rect(int(sx), int(y0), int(sx)+1, int(y1))
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
	for row := 0; row <= rows; row++ {
		_, sy := camera.CellOrigin(core.Cell{X: row})
		rect := image.Rect(int(x0), int(sy), int(x1), int(sy)+1)
		paint.FillShape(gtx.Ops, ColorGridLine, clip.Rect(rect).Op())
	}
}
