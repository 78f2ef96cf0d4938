package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGridLinesHaveTableWidth(t *testing.T) {
	cols := []TableColumn{{Header: "id", Width: 6}, {Header: "email", Width: 10}}
	rows := [][]string{{"u1", "u1@example.com"}, {"u2", "a-much-longer-address@example.com"}}

	out := TableGrid(cols, rows, 40, 1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
	clean := SanitizeText(out)
	assert.Contains(t, clean, "id")
	assert.Contains(t, clean, "u1@example.com")
}

func TestTableGridEmptyInputs(t *testing.T) {
	assert.Equal(t, "", TableGrid(nil, nil, 40, -1))
	assert.Equal(t, "", TableGrid([]TableColumn{{Header: "id", Width: 4}}, nil, 0, -1))
}

func TestFitGridColumnsGivesRestToLastColumn(t *testing.T) {
	cols := fitGridColumns([]TableColumn{{Width: 4}, {Width: 4}}, 1, 20)
	assert.Equal(t, 4, cols[0].Width)
	assert.Equal(t, 20-2-4-1, cols[1].Width)
}
