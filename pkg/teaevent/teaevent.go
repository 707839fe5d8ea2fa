// Package teaevent adapts Bubble Tea messages onto the core's signal
// interfaces: mouse messages become pointer events, key messages map
// to dismiss intents, window sizes become viewport sizes, and removal
// timers are delivered back through the program's update loop so all
// mutation stays on it.
package teaevent

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/chassis/pkg/geom"
	"github.com/marcus/chassis/pkg/overlay"
)

// PointerTarget receives translated pointer events in cell
// coordinates. state.Synchronizer satisfies this.
type PointerTarget interface {
	PointerDown(geom.Point)
	PointerMove(geom.Point)
	PointerUp()
	PointerCancel()
}

// RoutePointer forwards a mouse message to the target and reports
// whether it was delivered. Wheel events are not pointer interaction;
// callers check IsWheel separately and treat wheels as scroll.
func RoutePointer(msg tea.MouseMsg, target PointerTarget) bool {
	if IsWheel(msg) {
		return false
	}
	switch msg.Action {
	case tea.MouseActionPress:
		target.PointerDown(PointAt(msg))
		return true
	case tea.MouseActionMotion:
		target.PointerMove(PointAt(msg))
		return true
	case tea.MouseActionRelease:
		target.PointerUp()
		return true
	}
	return false
}

// PointAt returns the mouse position as a core point.
func PointAt(msg tea.MouseMsg) geom.Point {
	return geom.Point{X: float64(msg.X), Y: float64(msg.Y)}
}

// IsWheel reports whether the message is a scroll-wheel event.
func IsWheel(msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown,
		tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

// DismissKeys is the default binding for the overlay dismiss intent.
var DismissKeys = key.NewBinding(
	key.WithKeys("esc"),
	key.WithHelp("esc", "close"),
)

// IsDismiss reports whether the key message is a dismiss intent.
func IsDismiss(msg tea.KeyMsg) bool {
	return key.Matches(msg, DismissKeys)
}

// ViewportSize converts a window-size message to a core size.
func ViewportSize(msg tea.WindowSizeMsg) geom.Size {
	return geom.Size{Width: float64(msg.Width), Height: float64(msg.Height)}
}

// TimerFiredMsg carries a due lifecycle timer back into the update
// loop. The host's Update calls Fire to advance the machine there.
type TimerFiredMsg struct {
	Fire func()
}

// ProgramTimers returns a timer factory that delivers fires through
// send (typically tea.Program.Send), keeping lifecycle transitions on
// the update loop. A canceled timer that was already in flight is
// still delivered but inert; the lifecycle's generation guard ignores
// it.
func ProgramTimers(send func(tea.Msg)) overlay.TimerFactory {
	return func(d time.Duration, fn func()) overlay.CancelFunc {
		t := time.AfterFunc(d, func() {
			send(TimerFiredMsg{Fire: fn})
		})
		return func() { t.Stop() }
	}
}
