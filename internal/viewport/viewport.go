// Package viewport holds the pan/zoom state over the schema graph's logical
// canvas. It is the only stateful piece of the pipeline: a single viewport
// with at most one drag session in progress.
package viewport

import (
	"github.com/The-vyanshuDev/datalens-backend/internal/graph"
)

const (
	MinScale = 0.45
	MaxScale = 2.8

	// Wheel gesture zoom steps.
	ZoomInFactor  = 1.12
	ZoomOutFactor = 0.9
)

// Bounds is the on-screen bounding box of the canvas element, in client
// (pointer event) coordinates.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Point is a position in graph-space coordinates.
type Point struct {
	X float64
	Y float64
}

type dragSession struct {
	active  bool
	startX  float64
	startY  float64
	startTx float64
	startTy float64
}

// Viewport applies translate(tx, ty) then scale(scale) to graph coordinates.
type Viewport struct {
	Scale float64
	Tx    float64
	Ty    float64

	drag dragSession
}

func New() *Viewport {
	return &Viewport{Scale: 1}
}

// Reset restores the identity transform and discards any drag in progress.
// Callers invoke it whenever the active database or the node count changes.
func (v *Viewport) Reset() {
	v.Scale = 1
	v.Tx = 0
	v.Ty = 0
	v.drag = dragSession{}
}

// Zoom multiplies the scale by factor, clamped to [MinScale, MaxScale], and
// recomputes the translation so pivot keeps its screen position. A nil pivot
// zooms around the canvas center. No-op when the clamped scale is unchanged.
func (v *Viewport) Zoom(factor float64, pivot *Point) {
	if pivot == nil {
		pivot = &Point{X: graph.CanvasWidth / 2, Y: graph.CanvasHeight / 2}
	}
	newScale := clampScale(v.Scale * factor)
	if newScale == v.Scale {
		return
	}
	v.Tx = pivot.X - (pivot.X-v.Tx)/v.Scale*newScale
	v.Ty = pivot.Y - (pivot.Y-v.Ty)/v.Scale*newScale
	v.Scale = newScale
}

// ZoomAtPointer maps a wheel event's client coordinates into graph space via
// the canvas bounding box and zooms around that point.
func (v *Viewport) ZoomAtPointer(clientX, clientY float64, bounds Bounds, factor float64) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		v.Zoom(factor, nil)
		return
	}
	pivot := Point{
		X: (clientX - bounds.Left) / bounds.Width * graph.CanvasWidth,
		Y: (clientY - bounds.Top) / bounds.Height * graph.CanvasHeight,
	}
	v.Zoom(factor, &pivot)
}

// StartDrag begins a pan session from a background press. A second
// pointer-down while a drag is active is ignored; nested drags are not a
// supported gesture. Returns whether a session was started.
func (v *Viewport) StartDrag(clientX, clientY float64) bool {
	if v.drag.active {
		return false
	}
	v.drag = dragSession{
		active:  true,
		startX:  clientX,
		startY:  clientY,
		startTx: v.Tx,
		startTy: v.Ty,
	}
	return true
}

// Drag updates the translation from pointer movement while a session is
// active. Movement is scaled from client pixels into graph units through the
// canvas bounding box.
func (v *Viewport) Drag(clientX, clientY float64, bounds Bounds) {
	if !v.drag.active || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	dx := (clientX - v.drag.startX) / bounds.Width * graph.CanvasWidth
	dy := (clientY - v.drag.startY) / bounds.Height * graph.CanvasHeight
	v.Tx = v.drag.startTx + dx
	v.Ty = v.drag.startTy + dy
}

// EndDrag closes the session. Pointer-up, pointer-leave and pointer-cancel
// all route here and behave identically.
func (v *Viewport) EndDrag() {
	v.drag = dragSession{}
}

// Dragging reports whether a drag session is in progress.
func (v *Viewport) Dragging() bool {
	return v.drag.active
}

// Apply converts a graph-space point to its transformed position.
func (v *Viewport) Apply(p Point) Point {
	return Point{
		X: p.X*v.Scale + v.Tx,
		Y: p.Y*v.Scale + v.Ty,
	}
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
