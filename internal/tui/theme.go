package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep the list readable on light and dark
// terminal backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorAccent  = ac("#7C3AED", "#C084FC")
	colorPink    = ac("#DB2777", "#F472B6")
	colorMuted   = ac("240", "243")
	colorText    = ac("235", "252")
	colorError   = ac("#B91C1C", "#FCA5A5")
	colorButton  = ac("#7C3AED", "#9333EA")
	colorOnColor = ac("255", "255")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	countStyle  = lipgloss.NewStyle().Foreground(colorPink)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	inputBoxFocusedStyle = inputBoxStyle.BorderForeground(colorAccent)

	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorOnColor).Background(colorButton).Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	cursorStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	checkboxStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	titleStyle     = lipgloss.NewStyle().Foreground(colorText)
	completedStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	busyStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	editStyle      = lipgloss.NewStyle().Foreground(colorText).Underline(true)
	hintStyle      = lipgloss.NewStyle().Foreground(colorMuted)

	emptyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	loadingStyle    = lipgloss.NewStyle().Foreground(colorText)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)
)
