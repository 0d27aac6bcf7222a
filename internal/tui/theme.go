// Package tui provides the terminal user interface of the quoter.
// It includes consistent theming, the calculator screen, and small reusable
// components (selection menu, spinner).
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - RevendaMais brand theme (red, dark gray, white)
var (
	// Primary brand color - Red
	ColorPrimary = lipgloss.Color("160")

	// Secondary color - Light blue for selections
	ColorSecondary = lipgloss.Color("33")

	// White for high contrast text
	ColorWhite = lipgloss.Color("255")

	// Gray for borders
	ColorGray = lipgloss.Color("240")

	// Success indicator - Green (discounts, waived fees)
	ColorSuccess = lipgloss.Color("34")

	// Error indicator - Red
	ColorError = lipgloss.Color("196")

	// Warning indicator - Yellow (bonus / waiver)
	ColorWarning = lipgloss.Color("178")

	// Muted/subtle text - Gray
	ColorMuted = lipgloss.Color("245")
)

// Text styles
var (
	// TitleStyle is used for the header
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// HeaderStyle is used for section headers
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	// ActiveHeaderStyle is used for the focused section header
	ActiveHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Underline(true)

	// SelectedStyle is used for selected/active items
	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// SuccessStyle is used for discounts and free items
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// WarningStyle is used for the website waiver
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// MutedStyle is used for subtle/secondary text
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// TotalStyle is used for grand totals
	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	// HighlightTotalStyle is used for the 12-month grand total
	HighlightTotalStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	// SpinnerStyle is used for loading spinners
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Box styles
var (
	// BoxStyle is the default container style
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	// SummaryBoxStyle frames the quote summary
	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// ErrorBoxStyle is used for error message containers
	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(1, 2)
)

// Status indicators
const (
	StatusSuccess = "[OK]"
	StatusError   = "[ERR]"

	// ListCursor is the cursor character for list selection
	ListCursor = ">"

	CheckboxOn  = "[x]"
	CheckboxOff = "[ ]"
	RadioOn     = "(*)"
	RadioOff    = "( )"
)

// RenderTitle renders text with the title style
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSuccess renders a success message with status marker
func RenderSuccess(text string) string {
	return SuccessStyle.Render(StatusSuccess + " " + text)
}

// RenderError renders an error message with status marker
func RenderError(text string) string {
	return ErrorStyle.Render(StatusError + " " + text)
}

// RenderMuted renders text with the muted style
func RenderMuted(text string) string {
	return MutedStyle.Render(text)
}

// RenderErrorBox wraps content in an error styled box
func RenderErrorBox(content string) string {
	return ErrorBoxStyle.Render(content)
}
