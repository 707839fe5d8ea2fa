// Package render composites a positioned follower on top of an
// already-rendered base view. It is the painting half hosts without a
// scene graph need once the placement engine has produced an offset.
package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay paints over onto base with its top-left corner at cell
// (x, y). Both strings may contain ANSI styling; splicing is done on
// visible cell widths. Negative offsets clip the overlay at the
// viewport edge; rows below the base extend it.
func Overlay(base, over string, x, y int) string {
	if over == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(over, "\n")

	for i, overLine := range overLines {
		row := y + i
		if row < 0 {
			continue
		}
		for row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}
		baseLines[row] = spliceLine(baseLines[row], overLine, x)
	}

	return strings.Join(baseLines, "\n")
}

// spliceLine overwrites the cells [x, x+width(over)) of line with over,
// preserving whatever base content lies left and right of that span.
func spliceLine(line, over string, x int) string {
	overWidth := ansi.StringWidth(over)
	if overWidth == 0 {
		return line
	}
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		x = 0
		overWidth = ansi.StringWidth(over)
		if overWidth == 0 {
			return line
		}
	}

	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	right := ""
	if ansi.StringWidth(line) > x+overWidth {
		right = ansi.TruncateLeft(line, x+overWidth, "")
	}

	return left + over + right
}
