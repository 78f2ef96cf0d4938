package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2).
			Width(48)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	dialogInputStyle = lipgloss.NewStyle().
				Foreground(colorLabel)
)

// ConfirmDialog renders a yes/no question. action labels the yes answer.
func ConfirmDialog(title, message, action string) string {
	if action == "" {
		action = "confirm"
	}
	hint := "y: " + strings.ToLower(action) + " | n: cancel"
	return dialogStyle.Render(
		dialogTitleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
			boxValueStyle.Render(SanitizeText(message)) + "\n\n" +
			boxMutedStyle.Render(hint),
	)
}

// InputDialog renders a single-line text prompt with a cursor.
func InputDialog(title, input string) string {
	return dialogStyle.Render(
		dialogTitleStyle.Render(SanitizeOneLine(title)) + "\n\n" +
			dialogInputStyle.Render("> "+SanitizeOneLine(input)+"█") + "\n\n" +
			boxMutedStyle.Render("enter: submit | esc: cancel"),
	)
}
