package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 _               _                        _
| |__  _ __ ___ | | _____ _ __   ___  ___| | __
| '_ \| '__/ _ \| |/ / _ \ '_ \ / _ \/ __| |/ /
| |_) | | | (_) |   <  __/ | | |  __/ (__|   <
|_.__/|_|  \___/|_|\_\___|_| |_|\___|\___|_|\_\`

const bannerSubtitle = "Users & Groups Administration"

// RenderBanner returns the ASCII banner with its subtitle centered below.
func RenderBanner() string {
	lines := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")

	width := lipgloss.Width(bannerSubtitle)
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(BannerStyle.Render(line))
		b.WriteString("\n")
	}
	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(width).
		Align(lipgloss.Center).
		Render(bannerSubtitle)
	return b.String() + subtitle + "\n"
}
