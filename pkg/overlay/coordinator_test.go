package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/chassis/pkg/anchor"
	"github.com/marcus/chassis/pkg/geom"
)

type fakeFocusable struct {
	focusable bool
	focused   int
}

func (f *fakeFocusable) CanFocus() bool { return f.focusable }
func (f *fakeFocusable) Focus()         { f.focused++ }

type coordFixture struct {
	lc      *Lifecycle
	timers  *fakeTimers
	coord   *Coordinator
	anchorR geom.Rect
	overlay geom.Size
	trigger *fakeFocusable
	content *fakeFocusable
	removed int
}

func newCoordFixture(delay time.Duration, opts ...CoordinatorOption) *coordFixture {
	f := &coordFixture{
		timers:  &fakeTimers{},
		anchorR: geom.Rect{X: 100, Y: 100, Width: 100, Height: 30},
		overlay: geom.Size{Width: 150, Height: 80},
		trigger: &fakeFocusable{focusable: true},
		content: &fakeFocusable{focusable: true},
	}
	f.lc = NewLifecycle(delay, WithTimerFactory(f.timers.factory))
	all := append([]CoordinatorOption{
		WithPlacement(anchor.Below, anchor.Above),
		WithFocusTargets(f.trigger, f.content),
		WithRemovalCallback(func() { f.removed++ }),
	}, opts...)
	f.coord = NewCoordinator(f.lc,
		func() geom.Rect { return f.anchorR },
		func() geom.Size { return f.overlay },
		all...)
	f.coord.SetViewport(geom.Size{Width: 400, Height: 400})
	return f
}

func TestCoordinatorOpenMovesFocusIntoContent(t *testing.T) {
	f := newCoordFixture(0)

	f.coord.Open()
	assert.True(t, f.coord.IsOpen())
	assert.Equal(t, 1, f.content.focused, "initial focus moves into overlay content")
	assert.Equal(t, 0, f.trigger.focused)
}

func TestCoordinatorPlacementOffset(t *testing.T) {
	f := newCoordFixture(0)
	f.coord.Open()

	assert.Equal(t, geom.Point{X: 100, Y: 130}, f.coord.PlacementOffset())
	assert.Equal(t, geom.Rect{X: 100, Y: 130, Width: 150, Height: 80}, f.coord.OverlayRect())

	// Anchor moves between layout passes; the offset follows.
	f.anchorR.X = 120
	assert.Equal(t, geom.Point{X: 120, Y: 130}, f.coord.PlacementOffset())
}

func TestCoordinatorPointerAnchoredOpen(t *testing.T) {
	f := newCoordFixture(0, WithPlacement(anchor.Pair{Target: geom.AlignTopLeft, Follower: geom.AlignTopLeft}))

	f.coord.OpenAt(geom.Point{X: 50, Y: 50})
	assert.Equal(t, geom.Point{X: 50, Y: 50}, f.coord.PlacementOffset())

	// A later plain Open reverts to alignment placement.
	f.coord.Close()
	f.coord.Open()
	assert.Equal(t, geom.Point{X: 100, Y: 100}, f.coord.PlacementOffset())
}

func TestCoordinatorOutsideTapDismisses(t *testing.T) {
	f := newCoordFixture(50 * time.Millisecond)
	f.coord.Open()

	// Inside the anchor: not an outside tap
	consumed := f.coord.PointerDown(geom.Point{X: 150, Y: 110})
	assert.False(t, consumed)
	assert.True(t, f.coord.IsOpen())

	// Inside the overlay rect (100,130)-(250,210): still not outside
	consumed = f.coord.PointerDown(geom.Point{X: 200, Y: 200})
	assert.False(t, consumed)
	assert.True(t, f.coord.IsOpen())

	// Properly outside the combined region
	consumed = f.coord.PointerDown(geom.Point{X: 10, Y: 10})
	assert.False(t, consumed, "outside taps pass through by default")
	assert.Equal(t, PhasePendingRemoval, f.lc.Phase(), "dismiss uses the delayed path")
}

func TestCoordinatorOutsideTapInBoundingBoxGap(t *testing.T) {
	f := newCoordFixture(0)
	f.coord.Open()

	// Anchor spans (100,100)-(200,130), overlay (100,130)-(250,210).
	// (220,110) sits right of the anchor and above the overlay: inside
	// their bounding box but outside both rects, so it must dismiss.
	consumed := f.coord.PointerDown(geom.Point{X: 220, Y: 110})
	assert.False(t, consumed)
	assert.False(t, f.coord.IsOpen(), "tap in the gap beside the anchor dismisses")
}

func TestCoordinatorOutsideTapConsumption(t *testing.T) {
	f := newCoordFixture(0, WithOutsideDismiss(true, true))
	f.coord.Open()

	consumed := f.coord.PointerDown(geom.Point{X: 10, Y: 10})
	assert.True(t, consumed)
	assert.False(t, f.coord.IsOpen())
}

func TestCoordinatorOutsideTapDisabled(t *testing.T) {
	f := newCoordFixture(0, WithOutsideDismiss(false, false))
	f.coord.Open()

	consumed := f.coord.PointerDown(geom.Point{X: 10, Y: 10})
	assert.False(t, consumed)
	assert.True(t, f.coord.IsOpen(), "outside taps ignored when disabled")
}

func TestCoordinatorScrollClosesImmediately(t *testing.T) {
	f := newCoordFixture(time.Hour)
	f.coord.Open()

	f.coord.ScrollChanged()
	assert.Equal(t, PhaseRemoved, f.lc.Phase(), "scroll bypasses the removal delay")
	assert.Equal(t, 0, f.timers.live())
	assert.Equal(t, 1, f.removed)

	// Scroll while closed is a no-op
	f.coord.ScrollChanged()
	assert.Equal(t, 1, f.removed)
}

func TestCoordinatorResizeClosesImmediately(t *testing.T) {
	f := newCoordFixture(time.Hour)
	f.coord.Open()

	f.coord.ViewportResized(geom.Size{Width: 200, Height: 200})
	assert.Equal(t, PhaseRemoved, f.lc.Phase())
	assert.Equal(t, geom.Size{Width: 200, Height: 200}, f.coord.Viewport(),
		"new viewport size is recorded for the next open")

	// Resize while closed only records the size
	f.coord.ViewportResized(geom.Size{Width: 300, Height: 300})
	assert.Equal(t, geom.Size{Width: 300, Height: 300}, f.coord.Viewport())
	assert.Equal(t, 1, f.removed)
}

func TestCoordinatorFocusRestoreOnClose(t *testing.T) {
	f := newCoordFixture(0)
	f.coord.Open()
	f.coord.Close()

	assert.Equal(t, 1, f.trigger.focused, "focus returns to the trigger on removal")
	assert.Equal(t, 1, f.removed)
}

func TestCoordinatorFocusRestoreSkippedWhenGone(t *testing.T) {
	f := newCoordFixture(0)
	f.coord.Open()

	// Trigger became unfocusable before close; restoration is skipped
	// silently and removal still completes.
	f.trigger.focusable = false
	f.coord.Close()

	assert.Equal(t, 0, f.trigger.focused)
	assert.Equal(t, 1, f.removed)
}

func TestCoordinatorDelayedCloseThenTimer(t *testing.T) {
	f := newCoordFixture(100 * time.Millisecond)
	f.coord.Open()
	f.coord.Close()

	require.Equal(t, PhasePendingRemoval, f.lc.Phase())
	assert.Equal(t, 0, f.removed, "removal callback waits for the timer")

	f.timers.fireNext(t)
	assert.Equal(t, 1, f.removed)
	assert.Equal(t, 1, f.trigger.focused)
}

func TestCoordinatorReopenDuringPendingRemoval(t *testing.T) {
	f := newCoordFixture(100 * time.Millisecond)
	f.coord.Open()
	f.coord.Close()
	require.Equal(t, PhasePendingRemoval, f.lc.Phase())

	f.coord.Open()
	assert.True(t, f.coord.IsOpen())
	assert.Equal(t, 0, f.removed, "pending removal was discarded")
	assert.Equal(t, 0, f.timers.live())
}

func TestCoordinatorSharedLifecycle(t *testing.T) {
	// A trigger and its overlay sharing one lifecycle controller: both
	// coordinators observe the same machine.
	timers := &fakeTimers{}
	lc := NewLifecycle(0, WithTimerFactory(timers.factory))
	rect := func() geom.Rect { return geom.Rect{Width: 10, Height: 10} }
	size := func() geom.Size { return geom.Size{Width: 5, Height: 5} }

	a := NewCoordinator(lc, rect, size)
	b := NewCoordinator(lc, rect, size)
	a.SetViewport(geom.Size{Width: 100, Height: 100})
	b.SetViewport(geom.Size{Width: 100, Height: 100})

	a.Open()
	assert.True(t, b.IsOpen())
	b.Close()
	assert.False(t, a.IsOpen())
}

func TestCoordinatorDispose(t *testing.T) {
	f := newCoordFixture(0)
	f.coord.Open()
	f.coord.Dispose()

	f.lc.SetDesiredVisible(false)
	assert.Equal(t, 0, f.removed, "disposed coordinator no longer observes the lifecycle")
	assert.Equal(t, PhaseRemoved, f.lc.Phase(), "the shared lifecycle itself keeps working")
}
