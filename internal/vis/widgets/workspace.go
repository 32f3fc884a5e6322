// Package widgets provides Gio UI widgets for the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gridplan/internal/vis/draw"
	"github.com/elektrokombinacija/gridplan/internal/vis/interact"
	"github.com/elektrokombinacija/gridplan/internal/vis/state"
)

// Workspace is the grid view.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Layout renders the world at the current playback step.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	w.handlePointerEvents(gtx)

	world := w.state.World
	w.camera.FitGrid(world.Rows, world.Cols, float32(bounds.X), float32(bounds.Y), 20)

	step := w.state.Current()

	draw.DrawCells(gtx, world, w.camera)
	draw.DrawEndpoints(gtx, w.state.Start, w.state.Goal, w.camera)
	draw.DrawFuturePath(gtx, w.state.Remaining(step), w.camera, draw.ColorAgent)
	draw.DrawPathTrail(gtx, w.state.Trail(step), w.camera, draw.ColorAgent, 6)

	for _, e := range w.state.EventsUpTo(step) {
		draw.DrawReplanMarker(gtx, e.From, e.Blocked, w.camera)
	}

	draw.DrawObstacles(gtx, world.ObstaclesAt(step), w.camera)
	draw.DrawAgent(gtx, w.state.AgentAt(step), w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(pe)
		}
	}
}
