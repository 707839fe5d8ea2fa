package demo

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/marcus/chassis/pkg/geom"
	"github.com/marcus/chassis/pkg/hitmap"
	"github.com/marcus/chassis/pkg/state"
)

// button is one interactive primitive in the showcase: a label, a hit
// rect refreshed each render pass, and a synchronizer translating the
// routed pointer/focus events into interaction state.
type button struct {
	id     string
	label  string
	rect   hitmap.Rect
	sync   *state.Synchronizer
	states state.Set
}

func newButton(id, label string, logger *zap.Logger) *button {
	b := &button{
		id:     id,
		label:  label,
		states: state.NewSet(),
	}
	b.sync = state.NewSynchronizer(nil, b.bounds, state.Callbacks{
		OnStatesChange: func(s state.Set) {
			b.states = s
			logger.Debug("states changed",
				zap.String("button", b.id),
				zap.String("states", s.String()))
		},
	})
	return b
}

// bounds reports the live layout rect; the synchronizer consults it on
// every pointer event.
func (b *button) bounds() geom.Rect {
	return geom.Rect{
		X:      float64(b.rect.X),
		Y:      float64(b.rect.Y),
		Width:  float64(b.rect.W),
		Height: float64(b.rect.H),
	}
}

func (b *button) disabled() bool {
	return b.states.Has(state.Disabled)
}

// render picks the style for the current interaction set.
func (b *button) render() string {
	style := buttonStyle
	switch {
	case b.states.Has(state.Disabled):
		style = buttonDisabled
	case b.states.Has(state.Pressed):
		style = buttonPressed
	case b.states.Has(state.Hovered):
		style = buttonHover
	case b.states.Has(state.Focused):
		style = buttonFocused
	}
	return style.Render(b.label)
}

// place records the rect the button was painted at and registers it
// for hit testing.
func (b *button) place(hits *hitmap.Map, x, y int, rendered string) {
	b.rect = hitmap.Rect{
		X: x,
		Y: y,
		W: lipgloss.Width(rendered),
		H: lipgloss.Height(rendered),
	}
	hits.Add(b.id, b.rect.X, b.rect.Y, b.rect.W, b.rect.H, nil)
}

// focusTarget adapts the button to the overlay focus contract: a
// disabled button cannot take focus back when an overlay closes.
type focusTarget struct {
	can   func() bool
	focus func()
}

func (f focusTarget) CanFocus() bool {
	return f.can == nil || f.can()
}

func (f focusTarget) Focus() {
	if f.focus != nil {
		f.focus()
	}
}
