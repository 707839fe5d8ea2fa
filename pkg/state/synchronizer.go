package state

import "github.com/marcus/chassis/pkg/geom"

// Callbacks are the change notifications a primitive can register with
// a Synchronizer. OnStatesChange always fires first, exactly once per
// committed change; the per-flag callbacks fire after it, each only
// when its flag's membership actually flipped.
type Callbacks struct {
	OnStatesChange func(Set)
	OnHoverChange  func(bool)
	OnFocusChange  func(bool)
	OnPressChange  func(bool)
}

// Synchronizer is the per-primitive glue between raw input signals and
// a Controller. It owns its controller unless the caller supplied one;
// an externally supplied controller is never disposed here.
type Synchronizer struct {
	controller *Controller
	owned      bool
	detach     func()
	bounds     func() geom.Rect
	callbacks  Callbacks
}

// NewSynchronizer wires a synchronizer to the given controller, or to
// a fresh internally-owned one when external is nil. bounds reports
// the primitive's current layout bounds and is consulted live on every
// pointer event; a nil bounds treats every position as inside (the
// host pre-filters via hit testing).
func NewSynchronizer(external *Controller, bounds func() geom.Rect, cb Callbacks) *Synchronizer {
	s := &Synchronizer{
		bounds:    bounds,
		callbacks: cb,
	}
	if external != nil {
		s.controller = external
	} else {
		s.controller = NewController()
		s.owned = true
	}
	s.detach = s.controller.AddListener(s.dispatch)
	return s
}

// Controller returns the controller currently backing this
// synchronizer.
func (s *Synchronizer) Controller() *Controller {
	return s.controller
}

// Owned reports whether the synchronizer owns its controller.
func (s *Synchronizer) Owned() bool {
	return s.owned
}

// SwapController replaces the backing controller. The replacement is
// seeded from the old controller's current value before the old
// listener detaches, so observers see no discontinuity. Passing nil
// swaps back to a fresh internally-owned controller. The old
// controller is disposed only if it was internally owned.
func (s *Synchronizer) SwapController(external *Controller) {
	if external == s.controller {
		return
	}
	old := s.controller

	next := external
	ownNext := false
	if next == nil {
		next = NewControllerFrom(old.Value())
		ownNext = true
	} else {
		next.Replace(old.Value())
	}

	s.detach()
	if s.owned {
		old.Dispose()
	}

	s.controller = next
	s.owned = ownNext
	s.detach = s.controller.AddListener(s.dispatch)
}

// Dispose detaches from the controller and disposes it when owned.
func (s *Synchronizer) Dispose() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	if s.owned {
		s.controller.Dispose()
	}
}

// dispatch fans one controller notification out to the registered
// callbacks. Ordering contract: the unified callback runs before any
// per-flag callback derived from the same change.
func (s *Synchronizer) dispatch(before, after Set) {
	if s.callbacks.OnStatesChange != nil {
		s.callbacks.OnStatesChange(after)
	}
	s.flagDelta(before, after, Hovered, s.callbacks.OnHoverChange)
	s.flagDelta(before, after, Focused, s.callbacks.OnFocusChange)
	s.flagDelta(before, after, Pressed, s.callbacks.OnPressChange)
}

func (s *Synchronizer) flagDelta(before, after Set, f Interaction, fn func(bool)) {
	if fn == nil {
		return
	}
	now := after.Has(f)
	if before.Has(f) != now {
		fn(now)
	}
}

// PointerDown marks the primitive pressed when the position falls
// inside the current layout bounds. Disabled primitives ignore pointer
// input entirely.
func (s *Synchronizer) PointerDown(p geom.Point) {
	if s.controller.Has(Disabled) {
		return
	}
	if s.inBounds(p) {
		s.controller.Update(Pressed, true)
	}
}

// PointerMove tracks hover against the live bounds and releases the
// pressed flag as soon as the pointer leaves them.
func (s *Synchronizer) PointerMove(p geom.Point) {
	if s.controller.Has(Disabled) {
		return
	}
	inside := s.inBounds(p)
	if inside {
		s.controller.Update(Hovered, true)
		return
	}
	s.controller.Mutate(func(set Set) {
		set.Remove(Hovered)
		set.Remove(Pressed)
	})
}

// PointerUp releases the pressed flag.
func (s *Synchronizer) PointerUp() {
	s.controller.Update(Pressed, false)
}

// PointerCancel releases the pressed flag. Hover survives; the pointer
// has not necessarily left the primitive.
func (s *Synchronizer) PointerCancel() {
	s.controller.Update(Pressed, false)
}

// FocusGained marks the primitive focused unless disabled.
func (s *Synchronizer) FocusGained() {
	if s.controller.Has(Disabled) {
		return
	}
	s.controller.Update(Focused, true)
}

// FocusLost clears the focused flag.
func (s *Synchronizer) FocusLost() {
	s.controller.Update(Focused, false)
}

// SetDisabled sets the disabled flag from explicit input; it is never
// inferred. Becoming disabled synchronously clears hover, press and
// focus in the same committed change, so each "became false" callback
// fires exactly once.
func (s *Synchronizer) SetDisabled(disabled bool) {
	if disabled {
		s.controller.Mutate(func(set Set) {
			set.Add(Disabled)
			set.Remove(Hovered)
			set.Remove(Pressed)
			set.Remove(Focused)
		})
		return
	}
	s.controller.Update(Disabled, false)
}

// SetSelected sets the selected flag from explicit input.
func (s *Synchronizer) SetSelected(selected bool) {
	s.controller.Update(Selected, selected)
}

// SetDragged sets the dragged flag from explicit input.
func (s *Synchronizer) SetDragged(dragged bool) {
	s.controller.Update(Dragged, dragged)
}

// SetErrored sets the error flag from explicit input.
func (s *Synchronizer) SetErrored(errored bool) {
	s.controller.Update(Errored, errored)
}

// SetScrolledUnder sets the scrolled-under flag from explicit input.
func (s *Synchronizer) SetScrolledUnder(under bool) {
	s.controller.Update(ScrolledUnder, under)
}

func (s *Synchronizer) inBounds(p geom.Point) bool {
	if s.bounds == nil {
		return true
	}
	return s.bounds().Contains(p)
}
