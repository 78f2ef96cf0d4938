package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn is one column of a TableGrid. Width is the content width
// without separators.
type TableColumn struct {
	Header string
	Width  int
}

const gridLeftOffset = 2

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorActiveRow).
				Bold(true)
)

// TableGrid renders rows under a header with one row highlighted. Pass -1
// as activeRow to highlight nothing. The last column absorbs any width left
// over so every line is tableWidth wide.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int, activeRow int) string {
	if tableWidth <= 0 || len(columns) == 0 {
		return ""
	}
	sep := lipgloss.RoundedBorder().Left
	cols := fitGridColumns(columns, lipgloss.Width(sep), tableWidth)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}

	out := make([]string, 0, len(rows)+2)
	out = append(out, renderGridRow(cols, header, sep, tableWidth, boxLabelStyle))
	out = append(out, renderGridRule(cols, tableWidth))
	for i, row := range rows {
		style := boxValueStyle
		if i == activeRow {
			style = gridActiveRowStyle
		}
		out = append(out, renderGridRow(cols, row, sep, tableWidth, style))
	}
	return strings.Join(out, "\n")
}

func fitGridColumns(columns []TableColumn, sepWidth, tableWidth int) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	copy(fitted, columns)

	used := (len(fitted) - 1) * sepWidth
	for i := range fitted {
		fitted[i].Width = max(fitted[i].Width, 1)
		used += fitted[i].Width
	}
	available := max(tableWidth-gridLeftOffset, len(fitted))
	last := &fitted[len(fitted)-1]
	last.Width = max(last.Width+available-used, 1)
	return fitted
}

func renderGridRow(columns []TableColumn, cells []string, sep string, tableWidth int, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(gridLineStyle.Render(sep))
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		b.WriteString(style.Inline(true).Render(padRight(ClampTextWidth(text, col.Width), col.Width)))
	}
	return padRight(b.String(), tableWidth)
}

func renderGridRule(columns []TableColumn, tableWidth int) string {
	border := lipgloss.RoundedBorder()
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = strings.Repeat(border.Top, col.Width)
	}
	line := strings.Repeat(" ", gridLeftOffset) + strings.Join(parts, border.Middle)
	return gridLineStyle.Render(padRight(line, tableWidth))
}
