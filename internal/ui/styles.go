package ui

import "github.com/charmbracelet/lipgloss"

// --- Palette ---

var (
	colorAccent  = lipgloss.Color("#6aa2d8") // steel blue
	colorInk     = lipgloss.Color("#10141a")
	colorText    = lipgloss.Color("#dde2e8")
	ColorMuted   = lipgloss.Color("#7d8794")
	colorSuccess = lipgloss.Color("#6cbf84")
)

// --- Styles ---

var (
	BannerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	// Tabs render as "1 Users  2 Groups"; the active one is a filled chip.
	TabActiveStyle   = lipgloss.NewStyle().Foreground(colorInk).Background(colorAccent).Bold(true).Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	NormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	SuccessStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
)
