package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// PNGOptions controls snapshot rendering.
type PNGOptions struct {
	Scale int // pixels per cell
	Time  int // obstacle positions are drawn at this time
}

// DefaultPNGOptions returns 24 px cells at time 0.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Scale: 24}
}

var (
	colorBlocked  = color.RGBA{40, 40, 40, 255}
	colorCycle    = color.RGBA{255, 200, 120, 255}
	colorObstacle = color.RGBA{230, 90, 40, 255}
	colorPath     = color.RGBA{30, 100, 220, 255}
	colorStart    = color.RGBA{0, 170, 0, 255}
	colorGoal     = color.RGBA{200, 0, 0, 255}
)

// Image draws the world and path. Rows run downwards, columns to the right.
// Cells darken with cost; every cell an obstacle ever visits is tinted.
func Image(world *core.World, path []core.Cell, opts PNGOptions) image.Image {
	if opts.Scale <= 0 {
		opts.Scale = DefaultPNGOptions().Scale
	}
	s := float64(opts.Scale)
	dc := gg.NewContext(world.Cols*opts.Scale, world.Rows*opts.Scale)
	dc.SetColor(color.White)
	dc.Clear()

	maxCost := world.MaxCost()
	for x := 0; x < world.Rows; x++ {
		for y := 0; y < world.Cols; y++ {
			c := world.Cost(core.Cell{X: x, Y: y})
			if c == core.Blocked {
				dc.SetColor(colorBlocked)
			} else {
				shade := costShade(c, maxCost)
				dc.SetColor(color.RGBA{shade, shade, shade, 255})
			}
			dc.DrawRectangle(float64(y)*s, float64(x)*s, s, s)
			dc.Fill()
		}
	}

	for _, o := range world.Obstacles() {
		dc.SetColor(colorCycle)
		for _, c := range o.Positions() {
			dc.DrawRectangle(float64(c.Y)*s, float64(c.X)*s, s, s)
			dc.Fill()
		}
	}
	dc.SetColor(colorObstacle)
	for _, c := range world.ObstaclesAt(opts.Time) {
		dc.DrawRectangle(float64(c.Y)*s+2, float64(c.X)*s+2, s-4, s-4)
		dc.Fill()
	}

	center := func(c core.Cell) (float64, float64) {
		return float64(c.Y)*s + s/2, float64(c.X)*s + s/2
	}

	if len(path) > 0 {
		dc.SetColor(colorPath)
		dc.SetLineWidth(s / 4)
		dc.MoveTo(center(path[0]))
		for _, c := range path[1:] {
			dc.LineTo(center(c))
		}
		dc.Stroke()

		dc.SetColor(colorStart)
		cx, cy := center(path[0])
		dc.DrawCircle(cx, cy, s/3)
		dc.Fill()

		dc.SetColor(colorGoal)
		cx, cy = center(path[len(path)-1])
		dc.DrawCircle(cx, cy, s/3)
		dc.Fill()
	}

	return dc.Image()
}

// PNG writes the snapshot produced by Image to filename.
func PNG(filename string, world *core.World, path []core.Cell, opts PNGOptions) error {
	return gg.SavePNG(filename, Image(world, path, opts))
}

// costShade maps a cell cost to a gray level: 255 for unit or cheaper
// cells, 135 for the most expensive.
func costShade(c, maxCost float64) uint8 {
	if maxCost <= 1 || c <= 1 {
		return 255
	}
	f := (c - 1) / (maxCost - 1)
	if f > 1 {
		f = 1
	}
	return uint8(255 - 120*f)
}
