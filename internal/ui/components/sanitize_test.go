package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, "\t")
	assert.Equal(t, "click line more", out)
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	out := SanitizeText("safe\u202eexe.txt")
	assert.Equal(t, "safeexe.txt", out)
}

func TestSanitizeTextStripsColorCodes(t *testing.T) {
	out := SanitizeText("\x1b[31malice@example.com\x1b[0m")
	assert.Equal(t, "alice@example.com", out)
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeText("a\nb\x00"))
	assert.Equal(t, "", SanitizeText(""))
}
