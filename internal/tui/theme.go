package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The chart must stay readable on light and dark terminals alike, so every
// color is an adaptive pair and "faint" styling is reserved for dark
// backgrounds where it does not wash out.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("27", "75")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorDirty      = ac("130", "214")
	colorError      = ac("124", "203")
	colorSaved      = ac("28", "78")
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleStatus   = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	styleDirty    = lipgloss.NewStyle().Foreground(colorDirty)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleSaved    = lipgloss.NewStyle().Foreground(colorSaved)
	styleHelp     = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
)

// taskStyle renders a row label with the decorator's color hint when one is
// present (summaries, milestones, indirects).
func taskStyle(colorHint string) lipgloss.Style {
	if colorHint == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorHint))
}
