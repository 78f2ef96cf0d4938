package components

import "github.com/charmbracelet/lipgloss"

var (
	colorBorder     = lipgloss.Color("#2f3b45")
	colorAccent     = lipgloss.Color("#d08c3c")
	colorMuted      = lipgloss.Color("#8f96a3")
	colorText       = lipgloss.Color("#e1e3e6")
	colorLabel      = lipgloss.Color("#4f8a8b")
	colorDanger     = lipgloss.Color("#c7505e")
	colorDangerSoft = lipgloss.Color("#e0b4b9")
	colorKeyCap     = lipgloss.Color("#9aa0b4")
	colorDark       = lipgloss.Color("#15171c")
	colorActiveRow  = lipgloss.Color("#222a33")
	colorRemoved    = lipgloss.Color("#ff6b7a")
	colorAdded      = lipgloss.Color("#e8c46a")
)
