package teaevent

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/chassis/pkg/geom"
)

type recordingTarget struct {
	events []string
	last   geom.Point
}

func (r *recordingTarget) PointerDown(p geom.Point) { r.events = append(r.events, "down"); r.last = p }
func (r *recordingTarget) PointerMove(p geom.Point) { r.events = append(r.events, "move"); r.last = p }
func (r *recordingTarget) PointerUp()               { r.events = append(r.events, "up") }
func (r *recordingTarget) PointerCancel()           { r.events = append(r.events, "cancel") }

func TestRoutePointer(t *testing.T) {
	target := &recordingTarget{}

	handled := RoutePointer(tea.MouseMsg{
		X: 20, Y: 15,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}, target)
	if !handled {
		t.Error("press should be handled")
	}

	RoutePointer(tea.MouseMsg{X: 25, Y: 16, Action: tea.MouseActionMotion}, target)
	RoutePointer(tea.MouseMsg{X: 25, Y: 16, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, target)

	want := []string{"down", "move", "up"}
	if len(target.events) != len(want) {
		t.Fatalf("events = %v, want %v", target.events, want)
	}
	for i := range want {
		if target.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, target.events[i], want[i])
		}
	}
	if target.last != (geom.Point{X: 25, Y: 16}) {
		t.Errorf("last point = %+v, want (25, 16)", target.last)
	}
}

func TestRoutePointerIgnoresWheel(t *testing.T) {
	target := &recordingTarget{}

	msg := tea.MouseMsg{
		X: 10, Y: 10,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonWheelDown,
	}
	if RoutePointer(msg, target) {
		t.Error("wheel events must not be routed as pointer interaction")
	}
	if !IsWheel(msg) {
		t.Error("IsWheel should recognize wheel buttons")
	}
	if len(target.events) != 0 {
		t.Errorf("unexpected events: %v", target.events)
	}
}

func TestIsDismiss(t *testing.T) {
	esc := tea.KeyMsg{Type: tea.KeyEsc}
	if !IsDismiss(esc) {
		t.Error("esc should be a dismiss intent")
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	if IsDismiss(enter) {
		t.Error("enter is not a dismiss intent")
	}
}

func TestViewportSize(t *testing.T) {
	got := ViewportSize(tea.WindowSizeMsg{Width: 120, Height: 40})
	want := geom.Size{Width: 120, Height: 40}
	if got != want {
		t.Errorf("ViewportSize = %+v, want %+v", got, want)
	}
}

func TestProgramTimersDeliverThroughSend(t *testing.T) {
	delivered := make(chan tea.Msg, 1)
	factory := ProgramTimers(func(msg tea.Msg) { delivered <- msg })

	fired := false
	factory(time.Millisecond, func() { fired = true })

	select {
	case msg := <-delivered:
		tm, ok := msg.(TimerFiredMsg)
		if !ok {
			t.Fatalf("delivered message has type %T, want TimerFiredMsg", msg)
		}
		if fired {
			t.Error("callback must not run until the host calls Fire")
		}
		tm.Fire()
		if !fired {
			t.Error("Fire should invoke the scheduled callback")
		}
	case <-time.After(time.Second):
		t.Fatal("timer fire was never delivered")
	}
}

func TestProgramTimersCancel(t *testing.T) {
	delivered := make(chan tea.Msg, 1)
	factory := ProgramTimers(func(msg tea.Msg) { delivered <- msg })

	cancel := factory(50*time.Millisecond, func() {})
	cancel()
	cancel() // idempotent

	select {
	case <-delivered:
		t.Error("canceled timer should not deliver")
	case <-time.After(150 * time.Millisecond):
	}
}
