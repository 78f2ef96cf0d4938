package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
	keyCapStyle = lipgloss.NewStyle().
			Foreground(colorDark).
			Background(colorKeyCap).
			Bold(true).
			Padding(0, 1)
	busyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
	statusBarStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// KeyHint is one key and what it does.
type KeyHint struct {
	Key  string
	Desc string
}

func (h KeyHint) render() string {
	return keyCapStyle.Render(h.Key) + hintDescStyle.Render(" "+h.Desc)
}

// StatusBar renders key hints, wrapping to width. A non-empty busy text is
// shown in place of the hints.
func StatusBar(hints []KeyHint, busy string, width int) string {
	if busy != "" {
		return statusBarStyle.Render(busyStyle.Render(busy))
	}
	segments := make([]string, 0, len(hints))
	for _, h := range hints {
		segments = append(segments, h.render())
	}
	rows := wrapSegments(segments, "  ", width)
	return statusBarStyle.Render(strings.Join(rows, "\n"))
}

func wrapSegments(segments []string, sep string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(segments, sep)}
	}
	var rows []string
	current := ""
	for _, seg := range segments {
		if current == "" {
			current = seg
			continue
		}
		if lipgloss.Width(current)+lipgloss.Width(sep)+lipgloss.Width(seg) > width {
			rows = append(rows, current)
			current = seg
			continue
		}
		current += sep + seg
	}
	return append(rows, current)
}
