package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/chassis/pkg/geom"
	"github.com/marcus/chassis/pkg/overlay"
)

// popover is floating list content driven by a lifecycle/coordinator
// pair: a menu under its trigger, or a context menu at the click
// point. Items are fuzzy-filterable while open.
type popover struct {
	title    string
	items    []string
	query    string
	selected int

	lc    *overlay.Lifecycle
	coord *overlay.Coordinator

	// lastOffset is the placement of the most recent paint, kept so
	// item hit regions line up with what is on screen.
	lastOffset geom.Point
}

func newPopover(title string, items []string) *popover {
	return &popover{
		title: title,
		items: items,
	}
}

// visible returns the indices of items matching the current filter,
// best match first, or every index when the filter is empty.
func (p *popover) visible() []int {
	if p.query == "" {
		all := make([]int, len(p.items))
		for i := range p.items {
			all[i] = i
		}
		return all
	}
	matches := fuzzy.Find(p.query, p.items)
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.Index
	}
	return idx
}

// reset clears transient open-session state for the next cycle.
func (p *popover) reset() {
	p.query = ""
	p.selected = 0
}

// moveSelection clamps the cursor to the filtered item count.
func (p *popover) moveSelection(delta int) {
	n := len(p.visible())
	if n == 0 {
		p.selected = 0
		return
	}
	p.selected += delta
	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= n {
		p.selected = n - 1
	}
}

// appendQuery extends the filter and re-clamps the cursor.
func (p *popover) appendQuery(runes []rune) {
	p.query += string(runes)
	p.moveSelection(0)
}

// trimQuery removes the last filter rune.
func (p *popover) trimQuery() {
	if p.query == "" {
		return
	}
	r := []rune(p.query)
	p.query = string(r[:len(r)-1])
	p.moveSelection(0)
}

// chosen returns the item index under the cursor, or -1.
func (p *popover) chosen() int {
	vis := p.visible()
	if p.selected < 0 || p.selected >= len(vis) {
		return -1
	}
	return vis[p.selected]
}

// renderContent paints the box. The closing treatment is shown while
// the lifecycle sits in pending removal.
func (p *popover) renderContent() string {
	var sb strings.Builder

	header := p.title
	if p.query != "" {
		header += " " + queryStyle.Render("/"+p.query)
	}
	sb.WriteString(header)

	vis := p.visible()
	if len(vis) == 0 {
		sb.WriteString("\n" + hintStyle.Render("(no matches)"))
	}
	for row, itemIdx := range vis {
		style := itemNormalStyle
		cursor := "  "
		if row == p.selected {
			style = itemSelectedStyle
			cursor = "> "
		}
		sb.WriteString("\n" + cursor + style.Render(p.items[itemIdx]))
	}

	box := menuBoxStyle
	if p.lc.Phase() == overlay.PhasePendingRemoval {
		box = menuBoxClosingStyle
	}
	return box.Render(sb.String())
}

// measure returns the painted size for the placement engine.
func (p *popover) measure() geom.Size {
	rendered := p.renderContent()
	return geom.Size{
		Width:  float64(lipgloss.Width(rendered)),
		Height: float64(lipgloss.Height(rendered)),
	}
}

// itemRegionID names the hit region for a visible row.
func (p *popover) itemRegionID(row int) string {
	return fmt.Sprintf("%s-item-%d", p.title, row)
}
