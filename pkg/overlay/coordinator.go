package overlay

import (
	"go.uber.org/zap"

	"github.com/marcus/chassis/pkg/anchor"
	"github.com/marcus/chassis/pkg/geom"
)

// DismissReason names what closed an overlay, for observers and logs.
type DismissReason string

const (
	DismissOutsidePointer DismissReason = "outside_pointer"
	DismissRequest        DismissReason = "request"
	DismissScroll         DismissReason = "scroll"
	DismissResize         DismissReason = "resize"
	DismissProgrammatic   DismissReason = "programmatic"
)

// Focusable is the minimal focus surface the coordinator needs for
// moving focus into overlay content on open and back to the trigger
// on close.
type Focusable interface {
	CanFocus() bool
	Focus()
}

// Coordinator composes placement and lifecycle for one anchored
// overlay: it recomputes the follower offset per layout pass (cached
// on inputs) and turns environment signals — outside pointer
// interaction, explicit dismiss, ancestor scroll, viewport resize —
// into visibility changes on the shared lifecycle.
type Coordinator struct {
	lifecycle   *Lifecycle
	resolver    anchor.Resolver
	anchorRect  func() geom.Rect
	overlaySize func() geom.Size

	preferred anchor.Pair
	fallbacks []anchor.Pair
	pointer   *geom.Point
	viewport  geom.Size

	outsideDismiss bool
	consumeOutside bool

	trigger Focusable
	content Focusable

	logger    *zap.Logger
	onRemoved func()
	unsub     func()
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithPlacement sets the preferred alignment pair and its ordered
// fallbacks. An empty fallback list degrades to clamp-only placement.
func WithPlacement(preferred anchor.Pair, fallbacks ...anchor.Pair) CoordinatorOption {
	return func(c *Coordinator) {
		c.preferred = preferred
		c.fallbacks = fallbacks
	}
}

// WithOutsideDismiss controls whether pointer interaction outside the
// anchor+overlay region closes the overlay, and whether that
// interaction is consumed or passed through to whatever is beneath.
func WithOutsideDismiss(enabled, consume bool) CoordinatorOption {
	return func(c *Coordinator) {
		c.outsideDismiss = enabled
		c.consumeOutside = consume
	}
}

// WithFocusTargets sets the element focus returns to on close and the
// content that receives focus on open. Either may be nil.
func WithFocusTargets(trigger, content Focusable) CoordinatorOption {
	return func(c *Coordinator) {
		c.trigger = trigger
		c.content = content
	}
}

// WithLogger attaches a logger for open/dismiss transitions.
func WithLogger(logger *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRemovalCallback registers the unmount callback, invoked once per
// cycle when the lifecycle reaches PhaseRemoved.
func WithRemovalCallback(fn func()) CoordinatorOption {
	return func(c *Coordinator) {
		c.onRemoved = fn
	}
}

// NewCoordinator wires a coordinator to a lifecycle (which may be
// shared with the triggering primitive) and to live geometry queries
// for the anchor rect and the follower's measured size.
func NewCoordinator(lc *Lifecycle, anchorRect func() geom.Rect, overlaySize func() geom.Size, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		lifecycle:      lc,
		anchorRect:     anchorRect,
		overlaySize:    overlaySize,
		preferred:      anchor.Below,
		outsideDismiss: true,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.unsub = lc.Subscribe(c.onPhase)
	return c
}

// Lifecycle returns the underlying lifecycle machine.
func (c *Coordinator) Lifecycle() *Lifecycle {
	return c.lifecycle
}

// IsOpen reports whether visibility is currently desired.
func (c *Coordinator) IsOpen() bool {
	return c.lifecycle.IsOpen()
}

// Open requests visibility with alignment placement and moves initial
// keyboard focus into the overlay content.
func (c *Coordinator) Open() {
	c.pointer = nil
	c.open()
}

// OpenAt requests visibility anchored to an absolute pointer position
// (context-menu-at-click).
func (c *Coordinator) OpenAt(p geom.Point) {
	c.pointer = &p
	c.open()
}

func (c *Coordinator) open() {
	c.lifecycle.SetDesiredVisible(true)
	if c.lifecycle.Phase() == PhasePresent && c.content != nil && c.content.CanFocus() {
		c.content.Focus()
	}
	c.logger.Debug("overlay opened",
		zap.Bool("pointer_anchored", c.pointer != nil))
}

// Close withdraws visibility through the normal delayed-removal path.
func (c *Coordinator) Close() {
	c.dismiss(DismissProgrammatic, false)
}

// DismissRequested handles an explicit dismiss signal (escape mapped
// upstream).
func (c *Coordinator) DismissRequested() {
	c.dismiss(DismissRequest, false)
}

// PointerDown routes a global pointer-down through outside-tap
// detection. It reports whether the interaction was consumed; hosts
// that let outside taps pass through keep routing the event to the
// primitives beneath.
func (c *Coordinator) PointerDown(global geom.Point) (consumed bool) {
	if !c.lifecycle.Mounted() || !c.outsideDismiss {
		return false
	}
	// Inside means inside the anchor or the overlay themselves, not
	// their bounding box; the gap beside a narrow anchor still counts
	// as outside.
	if c.anchorRect().Contains(global) || c.OverlayRect().Contains(global) {
		return false
	}
	c.dismiss(DismissOutsidePointer, false)
	return c.consumeOutside
}

// ScrollChanged handles an ancestor scroll-position change. An open
// overlay closes immediately; its placement data is stale.
func (c *Coordinator) ScrollChanged() {
	c.dismiss(DismissScroll, true)
}

// ViewportResized records the new viewport size and, when the overlay
// is open, closes it immediately for the same staleness reason.
func (c *Coordinator) ViewportResized(size geom.Size) {
	c.viewport = size
	c.dismiss(DismissResize, true)
}

// SetViewport records the viewport size without triggering dismissal,
// for initial layout before anything is open.
func (c *Coordinator) SetViewport(size geom.Size) {
	c.viewport = size
}

// Viewport returns the last recorded viewport size.
func (c *Coordinator) Viewport() geom.Size {
	return c.viewport
}

// PlacementOffset computes the follower's top-left offset for the
// current layout pass. Recomputation only happens when an input
// changed; unrelated passes hit the resolver cache.
func (c *Coordinator) PlacementOffset() geom.Point {
	return c.resolver.Offset(anchor.Request{
		Anchor:    c.anchorRect(),
		Overlay:   c.overlaySize(),
		Preferred: c.preferred,
		Fallbacks: c.fallbacks,
		Pointer:   c.pointer,
		Viewport:  c.viewport,
	})
}

// OverlayRect returns the follower's rect at its current placement.
func (c *Coordinator) OverlayRect() geom.Rect {
	return geom.RectFrom(c.PlacementOffset(), c.overlaySize())
}

// Dispose detaches the coordinator from the lifecycle. The lifecycle
// itself is not owned here; a trigger primitive may share it.
func (c *Coordinator) Dispose() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

func (c *Coordinator) dismiss(reason DismissReason, immediate bool) {
	if !c.lifecycle.Mounted() {
		return
	}
	c.logger.Debug("overlay dismissed",
		zap.String("reason", string(reason)),
		zap.Bool("immediate", immediate))
	if immediate {
		c.lifecycle.CloseNow()
	} else {
		c.lifecycle.SetDesiredVisible(false)
	}
}

// onPhase restores focus and fires the removal callback when content
// unmounts. A trigger that is gone or unfocusable is skipped silently.
func (c *Coordinator) onPhase(p Phase) {
	if p != PhaseRemoved {
		return
	}
	if c.trigger != nil && c.trigger.CanFocus() {
		c.trigger.Focus()
	}
	if c.onRemoved != nil {
		c.onRemoved()
	}
}
