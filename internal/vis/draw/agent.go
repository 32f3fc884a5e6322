package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/vis/interact"
)

var (
	ColorAgent    = color.NRGBA{R: 100, G: 200, B: 255, A: 255}
	ColorObstacle = color.NRGBA{R: 255, G: 120, B: 60, A: 255}
	ColorStart    = color.NRGBA{R: 80, G: 180, B: 100, A: 255}
	ColorGoal     = color.NRGBA{R: 230, G: 200, B: 80, A: 255}
	ColorReplan   = color.NRGBA{R: 255, G: 70, B: 70, A: 255}
)

// DrawAgent draws the agent as a circle in its cell.
func DrawAgent(gtx layout.Context, c core.Cell, camera *interact.Camera) {
	x, y := camera.CellCenter(c)
	drawFilledCircle(gtx, x, y, camera.CellPixels()*0.35, ColorAgent)
}

// DrawObstacles draws moving obstacles as squares.
func DrawObstacles(gtx layout.Context, cells []core.Cell, camera *interact.Camera) {
	for _, c := range cells {
		x, y := camera.CellCenter(c)
		drawSquare(gtx, x, y, camera.CellPixels()*0.7, ColorObstacle)
	}
}

// DrawEndpoints outlines the start and goal cells.
func DrawEndpoints(gtx layout.Context, start, goal core.Cell, camera *interact.Camera) {
	inset := camera.CellPixels() * 0.1
	FillCell(gtx, start, camera, withAlpha(ColorStart, 140), inset)
	FillCell(gtx, goal, camera, withAlpha(ColorGoal, 140), inset)
}

// DrawReplanMarker crosses out the cell that blocked a move and marks the
// cell replanning started from.
func DrawReplanMarker(gtx layout.Context, from, blocked core.Cell, camera *interact.Camera) {
	size := camera.CellPixels()
	x, y := camera.CellCenter(blocked)
	drawCross(gtx, x, y, size*0.5, 3*camera.Zoom, ColorReplan)

	x, y = camera.CellCenter(from)
	drawFilledCircle(gtx, x, y, size*0.12, ColorReplan)
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
