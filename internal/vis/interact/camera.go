// Package interact handles pan and zoom of the grid view.
package interact

import (
	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/gridplan/internal/core"
)

// CellSize is the side of one grid cell in world units.
const CellSize = 40.0

const (
	minZoom = 0.1
	maxZoom = 10
)

// Camera maps world coordinates to the screen. The world places cell
// (x, y) with its top-left corner at (y*CellSize, x*CellSize), so rows run
// downwards as in the ASCII renderer.
type Camera struct {
	OffsetX float32 // pan offset in screen pixels
	OffsetY float32
	Zoom    float32

	dragging bool
	lastX    float32
	lastY    float32
	fitted   bool
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the default view. The next FitGrid call refits.
func (c *Camera) Reset() {
	c.OffsetX = 20
	c.OffsetY = 20
	c.Zoom = 1.0
	c.fitted = false
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// CellOrigin returns the screen position of a cell's top-left corner.
func (c *Camera) CellOrigin(cell core.Cell) (float32, float32) {
	return c.WorldToScreen(float64(cell.Y)*CellSize, float64(cell.X)*CellSize)
}

// CellCenter returns the screen position of a cell's center.
func (c *Camera) CellCenter(cell core.Cell) (float32, float32) {
	return c.WorldToScreen((float64(cell.Y)+0.5)*CellSize, (float64(cell.X)+0.5)*CellSize)
}

// CellAt returns the cell under a screen point. The result may be out of
// bounds for the world being shown.
func (c *Camera) CellAt(screenX, screenY float32) core.Cell {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	return core.Cell{X: floorDiv(wy, CellSize), Y: floorDiv(wx, CellSize)}
}

func floorDiv(v, d float64) int {
	q := int(v / d)
	if v < 0 && float64(q)*d != v {
		q--
	}
	return q
}

// CellPixels returns the on-screen side of one cell.
func (c *Camera) CellPixels() float32 {
	return float32(CellSize) * c.Zoom
}

// HandleEvent processes pointer events: drag with any button pans, scroll
// zooms around the pointer.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		c.dragging = true
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y > 0 {
			c.ZoomBy(1/1.1, ev.Position.X, ev.Position.Y)
		} else if ev.Scroll.Y < 0 {
			c.ZoomBy(1.1, ev.Position.X, ev.Position.Y)
		}
	}
}

// Pan pans the camera by the given screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
	c.fitted = true
}

// ZoomBy zooms by a factor, keeping the world point under (centerX,
// centerY) fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)

	c.Zoom = clampZoom(c.Zoom * factor)

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
	c.fitted = true
}

// FitGrid fits a rows x cols grid into the screen once, until the user pans,
// zooms or resets.
func (c *Camera) FitGrid(rows, cols int, screenWidth, screenHeight, margin float32) {
	if c.fitted {
		return
	}
	c.FitBounds(0, 0, float64(cols)*CellSize, float64(rows)*CellSize, screenWidth, screenHeight, margin)
	c.fitted = true
}

// FitBounds adjusts camera to fit the given world bounds.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	zoomX := (screenWidth - 2*margin) / float32(worldW)
	zoomY := (screenHeight - 2*margin) / float32(worldH)
	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	c.Zoom = clampZoom(c.Zoom)

	// Center on bounds
	c.OffsetX = screenWidth/2 - float32((minX+maxX)/2)*c.Zoom
	c.OffsetY = screenHeight/2 - float32((minY+maxY)/2)*c.Zoom
}

func clampZoom(z float32) float32 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
