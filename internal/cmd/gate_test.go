package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokeneck/brokeneck/cli/internal/entity"
)

var testPrompt = entity.Prompt{Title: "Delete user", Text: "Are you sure you want to delete this user?", Action: "Confirm"}

func TestTerminalGateAnswers(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
		{"y", true},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		gate := NewTerminalGate(strings.NewReader(tc.input), &out, false)
		ok, err := gate.Ask(context.Background(), testPrompt)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
		assert.Contains(t, out.String(), "Delete user\nAre you sure you want to delete this user? [y/N] ")
	}
}

func TestTerminalGateAssumeYesDoesNotPrompt(t *testing.T) {
	var out bytes.Buffer
	gate := NewTerminalGate(strings.NewReader(""), &out, true)
	ok, err := gate.Ask(context.Background(), testPrompt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, out.String())
}

func TestTerminalGateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gate := NewTerminalGate(strings.NewReader("y\n"), &bytes.Buffer{}, true)
	ok, err := gate.Ask(ctx, testPrompt)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestTerminalGateReadsSuccessiveAnswers(t *testing.T) {
	gate := NewTerminalGate(strings.NewReader("n\ny\n"), &bytes.Buffer{}, false)

	first, err := gate.Ask(context.Background(), testPrompt)
	require.NoError(t, err)
	second, err := gate.Ask(context.Background(), testPrompt)
	require.NoError(t, err)

	assert.False(t, first)
	assert.True(t, second)
}
