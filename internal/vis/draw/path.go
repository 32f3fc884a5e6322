package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/gridplan/internal/core"
	"github.com/elektrokombinacija/gridplan/internal/vis/interact"
)

// DrawPath draws a cell sequence as a polyline through cell centers.
func DrawPath(gtx layout.Context, path []core.Cell, camera *interact.Camera, col color.NRGBA, width float32) {
	if len(path) < 2 {
		return
	}

	w := width * camera.Zoom
	for i := 0; i < len(path)-1; i++ {
		x1, y1 := camera.CellCenter(path[i])
		x2, y2 := camera.CellCenter(path[i+1])
		drawSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawPathTrail draws the traversed cells, fading towards the oldest.
func DrawPathTrail(gtx layout.Context, history []core.Cell, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	if len(history) < 2 {
		return
	}

	n := len(history)
	for i := 0; i < n-1; i++ {
		col := withAlpha(baseColor, uint8(50+float64(i)/float64(n)*150))
		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		x1, y1 := camera.CellCenter(history[i])
		x2, y2 := camera.CellCenter(history[i+1])
		drawSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawFuturePath draws the rest of the committed path in a dimmer color.
func DrawFuturePath(gtx layout.Context, remaining []core.Cell, camera *interact.Camera, col color.NRGBA) {
	DrawPath(gtx, remaining, camera, withAlpha(col, 80), 2)
}
