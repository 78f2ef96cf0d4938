package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxMutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	boxValueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(colorDangerSoft)
)

// boxWidth is about 70% of the terminal, between 40 and 84 columns.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	return min(max(width*70/100, 40), 84)
}

func safeBoxWidth(width int) int {
	w := boxWidth(width)
	if width > 0 && w > width {
		return width
	}
	return w
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(safeBoxWidth(width)).Render(content)
}

// BoxContentWidth returns the width available inside Box, without border
// and padding.
func BoxContentWidth(width int) int {
	w := safeBoxWidth(width)
	if w <= 0 {
		return 0
	}
	return max(w-6, 0)
}

// ClampTextWidth sanitizes text to one line and truncates it to width.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	body := errorBodyStyle.Render(SanitizeText(message))
	return errorBorder.Width(safeBoxWidth(width)).Render(header + body)
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	boxed := boxBorder.Width(safeBoxWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middle := lineWidth - 2
	left := 1
	label := fmt.Sprintf(" %s ", SanitizeOneLine(title))
	if lipgloss.Width(label) > middle-left {
		label = truncateRunes(label, middle-left)
	}
	right := max(middle-lipgloss.Width(label)-left, 0)

	edge := lipgloss.NewStyle().Foreground(colorBorder)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// TableRow is a single row in a key-value table.
type TableRow struct {
	Label string
	Value string
}

// Table renders aligned label/value rows inside a titled box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(SanitizeOneLine(r.Label)))
	}
	labelWidth = min(labelWidth, 24)

	contentWidth := BoxContentWidth(width)
	if contentWidth > 0 {
		labelWidth = min(labelWidth, max(contentWidth/2, 4))
	}
	valueWidth := 0
	if contentWidth > 0 {
		valueWidth = max(contentWidth-labelWidth-2, 4)
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := boxLabelStyle.Render(padRight(ClampTextWidth(r.Label, labelWidth), labelWidth))
		value := r.Value
		if value == "" {
			value = "-"
		}
		lines = append(lines, label+"  "+boxValueStyle.Render(ClampTextWidth(value, valueWidth)))
	}
	return TitledBox(title, strings.Join(lines, "\n"), width)
}

// DiffRow is one changed field.
type DiffRow struct {
	Label string
	From  string
	To    string
}

// DiffTable renders old and new values of changed fields.
func DiffTable(title string, rows []DiffRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	removed := lipgloss.NewStyle().Foreground(colorRemoved)
	added := lipgloss.NewStyle().Foreground(colorAdded)
	valueWidth := BoxContentWidth(width) - 4

	blocks := make([]string, 0, len(rows))
	for _, r := range rows {
		from, to := r.From, r.To
		if from == "" {
			from = "-"
		}
		if to == "" {
			to = "-"
		}
		blocks = append(blocks, strings.Join([]string{
			boxLabelStyle.Render(SanitizeOneLine(r.Label)),
			removed.Render("  - " + ClampTextWidth(from, valueWidth)),
			added.Render("  + " + ClampTextWidth(to, valueWidth)),
		}, "\n"))
	}
	return TitledBox(title, strings.Join(blocks, "\n\n"), width)
}

// Muted renders secondary text.
func Muted(s string) string {
	return boxMutedStyle.Render(s)
}

// Indent adds left padding to every line of a multi-line string.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// CenterLine centers a single line within the box width.
func CenterLine(s string, width int) string {
	w := safeBoxWidth(width)
	lineWidth := lipgloss.Width(s)
	if w <= 0 || lineWidth >= w {
		return s
	}
	return strings.Repeat(" ", (w-lineWidth)/2) + s
}
