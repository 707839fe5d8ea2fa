// Package overlay coordinates when floating content is mounted: a
// phase machine with a cancellable removal timer for exit animations,
// and a Coordinator that composes placement with the environment
// triggers that dismiss an open overlay.
package overlay

import "time"

// Phase is the mount state of overlay content. Desired visibility is
// the boolean driving the machine; phase is what the host should
// render. PendingRemoval means desired-hidden but still mounted while
// the removal timer runs.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhasePresent        Phase = "present"
	PhasePendingRemoval Phase = "pending_removal"
	PhaseRemoved        Phase = "removed"
)

// CancelFunc cancels a pending timer. Calling it after the timer fired
// or was already canceled is a no-op.
type CancelFunc func()

// TimerFactory schedules fn to run once after d and returns a cancel.
// The returned fire must happen on the UI event-dispatch goroutine;
// hosts with their own event loop wrap delivery accordingly (see
// teaevent.ProgramTimers for the Bubble Tea wiring).
type TimerFactory func(d time.Duration, fn func()) CancelFunc

func afterFuncTimer(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type phaseListener struct {
	id int
	fn func(Phase)
}

// Lifecycle is the open/close state machine for one overlay surface.
// Single-goroutine, like the rest of the core. The removal timer is
// owned here and canceled whenever visibility is requested again
// before it fires.
type Lifecycle struct {
	phase      Phase
	delay      time.Duration
	newTimer   TimerFactory
	cancel     CancelFunc
	generation int
	listeners  []phaseListener
	nextID     int
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithTimerFactory replaces the default time.AfterFunc-backed timers.
// Tests inject a manual clock; Bubble Tea hosts inject program-routed
// delivery.
func WithTimerFactory(tf TimerFactory) LifecycleOption {
	return func(l *Lifecycle) {
		if tf != nil {
			l.newTimer = tf
		}
	}
}

// NewLifecycle returns a machine in PhaseIdle. removalDelay is how
// long content stays mounted after visibility is withdrawn; zero
// collapses PendingRemoval and Removed into one step.
func NewLifecycle(removalDelay time.Duration, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		phase:    PhaseIdle,
		delay:    removalDelay,
		newTimer: afterFuncTimer,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	return l.phase
}

// Mounted reports whether overlay content should currently be in the
// tree (present or awaiting delayed removal).
func (l *Lifecycle) Mounted() bool {
	return l.phase == PhasePresent || l.phase == PhasePendingRemoval
}

// IsOpen reports whether visibility is currently desired.
func (l *Lifecycle) IsOpen() bool {
	return l.phase == PhasePresent
}

// RemovalDelay returns the configured delay.
func (l *Lifecycle) RemovalDelay() time.Duration {
	return l.delay
}

// SetDesiredVisible drives the machine:
//
//	idle/removed --(true)--> present
//	pendingRemoval --(true)--> present (timer canceled, content never unmounted)
//	present --(false)--> pendingRemoval (timer armed, notification immediate)
//
// Reopening while a removal timer runs cancels it; the stale removal
// never fires. Every other combination is a no-op.
func (l *Lifecycle) SetDesiredVisible(visible bool) {
	if visible {
		switch l.phase {
		case PhaseIdle, PhaseRemoved:
			l.setPhase(PhasePresent)
		case PhasePendingRemoval:
			l.stopTimer()
			l.setPhase(PhasePresent)
		}
		return
	}

	if l.phase != PhasePresent {
		return
	}
	l.stopTimer()
	l.setPhase(PhasePendingRemoval)
	// A listener may have reopened synchronously; only arm the timer
	// if we are still waiting to unmount.
	if l.phase == PhasePendingRemoval {
		l.armTimer()
	}
}

// CloseNow unmounts without honoring the removal delay. Used for
// dismissals where mounted content would be positioned with stale
// geometry (ancestor scroll, viewport resize).
func (l *Lifecycle) CloseNow() {
	switch l.phase {
	case PhasePresent:
		l.stopTimer()
		l.setPhase(PhasePendingRemoval)
		if l.phase == PhasePendingRemoval {
			l.setPhase(PhaseRemoved)
		}
	case PhasePendingRemoval:
		l.stopTimer()
		l.setPhase(PhaseRemoved)
	}
}

// Subscribe registers a phase observer and returns a removal function.
// Observers fire synchronously on every transition, in registration
// order; the list is snapshotted before iteration.
func (l *Lifecycle) Subscribe(fn func(Phase)) (remove func()) {
	id := l.nextID
	l.nextID++
	l.listeners = append(l.listeners, phaseListener{id: id, fn: fn})
	return func() {
		for i, e := range l.listeners {
			if e.id == id {
				l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

func (l *Lifecycle) armTimer() {
	if l.delay <= 0 {
		l.setPhase(PhaseRemoved)
		return
	}
	gen := l.generation
	l.cancel = l.newTimer(l.delay, func() { l.onTimer(gen) })
}

// onTimer runs when a removal timer fires. The generation guard makes
// a stale fire inert even if cancellation raced with delivery.
func (l *Lifecycle) onTimer(gen int) {
	if gen != l.generation || l.phase != PhasePendingRemoval {
		return
	}
	l.cancel = nil
	l.setPhase(PhaseRemoved)
}

// stopTimer cancels any pending removal timer. Idempotent.
func (l *Lifecycle) stopTimer() {
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Lifecycle) setPhase(p Phase) {
	l.phase = p
	snapshot := make([]phaseListener, len(l.listeners))
	copy(snapshot, l.listeners)
	for _, e := range snapshot {
		e.fn(p)
	}
}
