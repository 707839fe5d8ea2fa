// Package demo is a Bubble Tea showcase for the interaction core:
// buttons with full interaction-state rendering, an anchored menu
// popover with fallback placement, and a pointer-anchored context
// menu, all dismissed the way the coordinator prescribes.
package demo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/marcus/chassis/internal/config"
	"github.com/marcus/chassis/pkg/anchor"
	"github.com/marcus/chassis/pkg/geom"
	"github.com/marcus/chassis/pkg/hitmap"
	"github.com/marcus/chassis/pkg/overlay"
	"github.com/marcus/chassis/pkg/render"
	"github.com/marcus/chassis/pkg/state"
	"github.com/marcus/chassis/pkg/teaevent"
)

const (
	buttonSave   = "btn-save"
	buttonMenu   = "btn-menu"
	buttonDelete = "btn-delete"
	regionHandle = "row-handle"
)

// Model is the demo's Bubble Tea model.
type Model struct {
	width  int
	height int

	cfg    config.Demo
	logger *zap.Logger

	hits     *hitmap.Map
	buttons  []*button
	focusIdx int

	// The button row is draggable by its handle, to show live-bounds
	// press tracking surviving layout changes. The handle carries its
	// own synchronizer so the dragged flag drives its styling.
	rowY         int
	drag         hitmap.Drag
	handleRect   hitmap.Rect
	handleSync   *state.Synchronizer
	handleStates state.Set

	menu *popover
	ctx  *popover

	status string
}

// NewModel builds the demo model. timers delivers lifecycle removal
// timers back through the program's update loop.
func NewModel(cfg config.Demo, logger *zap.Logger, timers overlay.TimerFactory) *Model {
	m := &Model{
		cfg:    cfg,
		logger: logger,
		hits:   hitmap.New(),
		rowY:   2,
		status: "ready",
	}

	m.buttons = []*button{
		newButton(buttonSave, "Save", logger),
		newButton(buttonMenu, "Menu ▾", logger),
		newButton(buttonDelete, "Delete", logger),
	}
	m.buttons[m.focusIdx].sync.FocusGained()

	m.handleStates = state.NewSet()
	m.handleSync = state.NewSynchronizer(nil, func() geom.Rect {
		return geom.Rect{
			X:      float64(m.handleRect.X),
			Y:      float64(m.handleRect.Y),
			Width:  float64(m.handleRect.W),
			Height: float64(m.handleRect.H),
		}
	}, state.Callbacks{
		OnStatesChange: func(s state.Set) { m.handleStates = s },
	})

	m.menu = newPopover("Actions", []string{
		"Rename", "Duplicate", "Archive", "Share", "Export", "Move to trash",
	})
	m.ctx = newPopover("Context", []string{"Copy", "Paste", "Inspect"})

	m.menu.lc = overlay.NewLifecycle(cfg.RemovalDelay(), overlay.WithTimerFactory(timers))
	m.ctx.lc = overlay.NewLifecycle(cfg.RemovalDelay(), overlay.WithTimerFactory(timers))

	menuButton := m.buttons[1]
	m.menu.coord = overlay.NewCoordinator(
		m.menu.lc,
		menuButton.bounds,
		m.menu.measure,
		overlay.WithPlacement(anchor.Below, anchor.Above),
		overlay.WithOutsideDismiss(cfg.OutsideDismissEnabled(), cfg.ConsumeOutside),
		overlay.WithFocusTargets(
			focusTarget{
				can:   func() bool { return !menuButton.disabled() },
				focus: func() { m.focusButton(1) },
			},
			focusTarget{focus: func() { m.menu.reset() }},
		),
		overlay.WithLogger(m.logger),
		overlay.WithRemovalCallback(func() { m.status = "menu closed" }),
	)

	m.ctx.coord = overlay.NewCoordinator(
		m.ctx.lc,
		func() geom.Rect { return geom.RectFrom(m.ctx.lastOffset, geom.Size{}) },
		m.ctx.measure,
		overlay.WithPlacement(anchor.Pair{Target: geom.AlignTopLeft, Follower: geom.AlignTopLeft}),
		overlay.WithOutsideDismiss(cfg.OutsideDismissEnabled(), cfg.ConsumeOutside),
		overlay.WithFocusTargets(nil, focusTarget{focus: func() { m.ctx.reset() }}),
		overlay.WithLogger(m.logger),
	)

	return m
}

// Run starts the demo program and blocks until it exits.
func Run(cfg config.Demo, logger *zap.Logger) error {
	var s sender
	m := NewModel(cfg, logger, teaevent.ProgramTimers(s.Send))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	s.p = p
	_, err := p.Run()
	return err
}

// sender defers program wiring: the timer factory is needed to build
// the model, but the program is built from the model.
type sender struct {
	p *tea.Program
}

// Send forwards a message to the running program.
func (s *sender) Send(msg tea.Msg) {
	if s.p != nil {
		s.p.Send(msg)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		size := teaevent.ViewportSize(msg)
		m.menu.coord.ViewportResized(size)
		m.ctx.coord.ViewportResized(size)
		return m, nil

	case teaevent.TimerFiredMsg:
		msg.Fire()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if teaevent.IsDismiss(msg) {
		m.menu.coord.DismissRequested()
		m.ctx.coord.DismissRequested()
		return m, nil
	}

	// An open menu captures navigation and filter input.
	if m.menu.lc.IsOpen() {
		switch msg.String() {
		case "up", "ctrl+k":
			m.menu.moveSelection(-1)
		case "down", "ctrl+j":
			m.menu.moveSelection(1)
		case "enter":
			m.chooseMenuItem(m.menu.chosen())
		case "backspace":
			m.menu.trimQuery()
		default:
			if msg.Type == tea.KeyRunes {
				m.menu.appendQuery(msg.Runes)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)
	case "enter", " ":
		m.activate(m.buttons[m.focusIdx].id)
	case "d":
		m.toggleDeleteDisabled()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if teaevent.IsWheel(msg) {
		// Wheel input is ancestor scroll as far as open overlays are
		// concerned: their placement data just went stale.
		m.menu.coord.ScrollChanged()
		m.ctx.coord.ScrollChanged()
		return m, nil
	}

	p := teaevent.PointAt(msg)

	if msg.Action == tea.MouseActionPress {
		consumed := m.menu.coord.PointerDown(p)
		consumed = m.ctx.coord.PointerDown(p) || consumed
		if consumed {
			return m, nil
		}

		if msg.Button == tea.MouseButtonRight {
			m.ctx.coord.OpenAt(p)
			m.status = "context menu"
			return m, nil
		}
	}

	for _, b := range m.buttons {
		teaevent.RoutePointer(msg, b.sync)
	}
	teaevent.RoutePointer(msg, m.handleSync)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		if r := m.hits.Test(msg.X, msg.Y); r != nil {
			m.pressRegion(r, msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.drag.Active() {
			_, dy := m.drag.Delta(msg.X, msg.Y)
			m.rowY = clampInt(m.drag.StartValue()+dy, 1, max(1, m.height-8))
		}
	case tea.MouseActionRelease:
		if m.drag.Active() {
			m.handleSync.SetDragged(false)
		}
		m.drag.End()
	}
	return m, nil
}

// pressRegion dispatches a left press that landed on a hit region.
func (m *Model) pressRegion(r *hitmap.Region, x, y int) {
	switch {
	case r.ID == regionHandle:
		m.drag.Start(x, y, regionHandle, m.rowY)
		m.handleSync.SetDragged(true)
	case strings.HasPrefix(r.ID, m.menu.title):
		row, _ := r.Data.(int)
		m.menu.selected = row
		m.chooseMenuItem(m.menu.chosen())
	case strings.HasPrefix(r.ID, m.ctx.title):
		row, _ := r.Data.(int)
		m.ctx.selected = row
		if idx := m.ctx.chosen(); idx >= 0 {
			m.status = "context: " + m.ctx.items[idx]
		}
		m.ctx.coord.Close()
	default:
		m.focusButtonByID(r.ID)
		m.activate(r.ID)
	}
}

func (m *Model) activate(id string) {
	switch id {
	case buttonSave:
		m.status = "saved"
	case buttonMenu:
		if m.menu.lc.IsOpen() {
			m.menu.coord.Close()
		} else {
			m.menu.coord.Open()
		}
	case buttonDelete:
		if !m.buttons[2].disabled() {
			m.status = "deleted"
		}
	}
}

func (m *Model) chooseMenuItem(idx int) {
	if idx >= 0 {
		m.status = "menu: " + m.menu.items[idx]
	}
	m.menu.coord.Close()
}

func (m *Model) toggleDeleteDisabled() {
	del := m.buttons[2]
	del.sync.SetDisabled(!del.disabled())
	if del.disabled() && m.focusIdx == 2 {
		m.cycleFocus(1)
	}
}

func (m *Model) cycleFocus(delta int) {
	n := len(m.buttons)
	for step := 1; step <= n; step++ {
		idx := ((m.focusIdx+delta*step)%n + n) % n
		if !m.buttons[idx].disabled() {
			m.focusButton(idx)
			return
		}
	}
}

func (m *Model) focusButton(idx int) {
	if idx == m.focusIdx {
		m.buttons[idx].sync.FocusGained()
		return
	}
	m.buttons[m.focusIdx].sync.FocusLost()
	m.focusIdx = idx
	m.buttons[idx].sync.FocusGained()
}

func (m *Model) focusButtonByID(id string) {
	for i, b := range m.buttons {
		if b.id == id && !b.disabled() {
			m.focusButton(i)
			return
		}
	}
}

// View implements tea.Model. It rebuilds the hit map every pass so
// regions always match what is painted.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	m.hits.Clear()

	lines := make([]string, max(m.height, m.rowY+2))
	lines[0] = titleStyle.Render(" chassis demo ") +
		hintStyle.Render(" tab:focus  enter:activate  d:toggle delete  right-click:context  q:quit")

	// Button row with its drag handle.
	handle := dragHandleStyle.Render("≡")
	if m.handleStates.Has(state.Dragged) {
		handle = dragHandleActive.Render("≡")
	}
	row := handle + " "
	x := 2 + lipgloss.Width(handle) + 1
	m.handleRect = hitmap.Rect{X: 2, Y: m.rowY, W: lipgloss.Width(handle), H: 1}
	m.hits.Add(regionHandle, m.handleRect.X, m.handleRect.Y, m.handleRect.W, m.handleRect.H, nil)
	for _, b := range m.buttons {
		rendered := b.render()
		b.place(m.hits, x, m.rowY, rendered)
		row += rendered + "  "
		x += lipgloss.Width(rendered) + 2
	}
	lines[m.rowY] = "  " + row

	statusLine := len(lines) - 2
	lines[statusLine] = "  " + statusStyle.Render(m.status) +
		hintStyle.Render("  "+m.focusedStates())

	base := strings.Join(lines, "\n")
	base = m.paintPopover(base, m.menu)
	base = m.paintPopover(base, m.ctx)
	return base
}

// paintPopover composites mounted overlay content at its resolved
// placement and registers item hit regions at the painted position.
func (m *Model) paintPopover(base string, p *popover) string {
	if !p.lc.Mounted() {
		return base
	}

	content := p.renderContent()
	offset := p.coord.PlacementOffset()
	p.lastOffset = offset

	ox, oy := int(offset.X), int(offset.Y)
	if p.lc.Phase() == overlay.PhasePresent {
		// Border and padding sit around the content; row 0 inside is
		// the header, items start below it.
		innerX := ox + 2
		innerW := lipgloss.Width(content) - 4
		for row := range p.visible() {
			m.hits.Add(p.itemRegionID(row), innerX, oy+2+row, innerW, 1, row)
		}
	}

	return render.Overlay(base, content, ox, oy)
}

func (m *Model) focusedStates() string {
	b := m.buttons[m.focusIdx]
	return fmt.Sprintf("%s %s", b.label, b.states)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
