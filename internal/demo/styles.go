package demo

import "github.com/charmbracelet/lipgloss"

// Colors matching the usual monitor palette.
var (
	primaryColor = lipgloss.Color("212")
	errorColor   = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("241")
	cyanColor    = lipgloss.Color("45")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(cyanColor)
)

// Button styles, one per interaction treatment. Pressed wins over
// hover, hover over focus; disabled mutes everything.
var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	buttonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(primaryColor).
			Bold(true).
			Padding(0, 2)

	buttonHover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245")).
			Padding(0, 2)

	buttonPressed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(cyanColor).
			Bold(true).
			Padding(0, 2)

	buttonDisabled = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("236")).
			Padding(0, 2)
)

// Overlay styles. The closing variant is the exit treatment shown
// while content is mounted awaiting delayed removal.
var (
	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	menuBoxClosingStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(mutedColor).
				Faint(true).
				Padding(0, 1)

	itemNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	itemSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	queryStyle = lipgloss.NewStyle().
			Foreground(cyanColor)

	dragHandleStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	dragHandleActive = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)
)
