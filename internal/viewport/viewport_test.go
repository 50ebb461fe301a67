package viewport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/The-vyanshuDev/datalens-backend/internal/graph"
)

func TestNewStartsAtIdentity(t *testing.T) {
	v := New()
	require.Equal(t, 1.0, v.Scale)
	require.Equal(t, 0.0, v.Tx)
	require.Equal(t, 0.0, v.Ty)
	require.False(t, v.Dragging())
}

func TestZoomClamping(t *testing.T) {
	v := New()
	for i := 0; i < 50; i++ {
		v.Zoom(ZoomInFactor, nil)
	}
	require.Equal(t, MaxScale, v.Scale)

	for i := 0; i < 100; i++ {
		v.Zoom(ZoomOutFactor, nil)
	}
	require.Equal(t, MinScale, v.Scale)
}

func TestZoomNoOpAtClampBoundary(t *testing.T) {
	v := New()
	v.Tx, v.Ty = 17, -4
	v.Scale = MaxScale

	v.Zoom(ZoomInFactor, &Point{X: 100, Y: 100})
	require.Equal(t, MaxScale, v.Scale)
	require.Equal(t, 17.0, v.Tx)
	require.Equal(t, -4.0, v.Ty)
}

// The content point rendered under the pivot before a zoom must stay at the
// same canvas position afterwards.
func TestZoomKeepsPivotStationary(t *testing.T) {
	v := New()
	v.Scale = 1.3
	v.Tx, v.Ty = 40, -20

	pivot := Point{X: 300, Y: 200}
	content := Point{
		X: (pivot.X - v.Tx) / v.Scale,
		Y: (pivot.Y - v.Ty) / v.Scale,
	}
	before := v.Apply(content)

	v.Zoom(ZoomInFactor, &pivot)
	after := v.Apply(content)

	require.InDelta(t, before.X, after.X, 1e-9)
	require.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomDefaultPivotIsCanvasCenter(t *testing.T) {
	a := New()
	b := New()

	a.Zoom(ZoomInFactor, nil)
	b.Zoom(ZoomInFactor, &Point{X: graph.CanvasWidth / 2, Y: graph.CanvasHeight / 2})

	require.Equal(t, b.Scale, a.Scale)
	require.Equal(t, b.Tx, a.Tx)
	require.Equal(t, b.Ty, a.Ty)
}

func TestZoomAtPointerMapsThroughBounds(t *testing.T) {
	bounds := Bounds{Left: 100, Top: 50, Width: 540, Height: 340}

	// pointer at the middle of the on-screen canvas maps to the canvas center
	a := New()
	a.ZoomAtPointer(370, 220, bounds, ZoomInFactor)

	b := New()
	b.Zoom(ZoomInFactor, &Point{X: graph.CanvasWidth / 2, Y: graph.CanvasHeight / 2})

	require.InDelta(t, b.Tx, a.Tx, 1e-9)
	require.InDelta(t, b.Ty, a.Ty, 1e-9)
}

func TestZoomAtPointerDegenerateBounds(t *testing.T) {
	v := New()
	v.ZoomAtPointer(10, 10, Bounds{}, ZoomInFactor)
	// falls back to center zoom instead of dividing by zero
	require.InDelta(t, ZoomInFactor, v.Scale, 1e-9)
}

func TestDragPansByScaledDelta(t *testing.T) {
	bounds := Bounds{Left: 0, Top: 0, Width: 540, Height: 340}
	v := New()
	v.Tx, v.Ty = 5, 6

	require.True(t, v.StartDrag(10, 10))
	v.Drag(64, 44, bounds)

	// client delta (54, 34) doubles through the half-size bounding box
	require.InDelta(t, 5+108.0, v.Tx, 1e-9)
	require.InDelta(t, 6+68.0, v.Ty, 1e-9)

	v.EndDrag()
	require.False(t, v.Dragging())
}

func TestSecondPointerDownIgnoredWhileDragging(t *testing.T) {
	bounds := Bounds{Width: graph.CanvasWidth, Height: graph.CanvasHeight}
	v := New()

	require.True(t, v.StartDrag(0, 0))
	require.False(t, v.StartDrag(500, 500))

	// movement still tracks the first session's origin
	v.Drag(10, 0, bounds)
	require.InDelta(t, 10.0, v.Tx, 1e-9)
}

func TestDragWithoutSessionIsNoOp(t *testing.T) {
	bounds := Bounds{Width: graph.CanvasWidth, Height: graph.CanvasHeight}
	v := New()

	v.Drag(100, 100, bounds)
	require.Equal(t, 0.0, v.Tx)
	require.Equal(t, 0.0, v.Ty)

	v.EndDrag() // ending an idle viewport is harmless
	require.False(t, v.Dragging())
}

func TestResetRestoresIdentityAndCancelsDrag(t *testing.T) {
	v := New()
	v.Zoom(ZoomInFactor, &Point{X: 10, Y: 10})
	v.StartDrag(3, 3)

	v.Reset()
	require.Equal(t, 1.0, v.Scale)
	require.Equal(t, 0.0, v.Tx)
	require.Equal(t, 0.0, v.Ty)
	require.False(t, v.Dragging())
}
