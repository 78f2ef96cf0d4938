package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brokeneck/brokeneck/cli/internal/config"
)

func TestRunTUIMissingConfigReturnsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServerURL, "")

	err := runTUI(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunTUIRequiresTerminal(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServerURL, "http://localhost:5001")

	stdin := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer func() {
		os.Stdin = stdin
		r.Close()
		w.Close()
	}()
	os.Stdin = r

	err = runTUI(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRoot()
	for _, name := range []string{"login", "users", "groups"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}

func TestRootHelp(t *testing.T) {
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "manage memberships")
}

func TestOpenLogDiscardsWithoutFile(t *testing.T) {
	log, closer, err := openLog(&config.Config{})
	require.NoError(t, err)
	require.NotNil(t, closer)
	assert.IsType(t, noopCloser{}, closer)
	require.NoError(t, closer.Close())
	log.Info("dropped")
}

func TestOpenLogWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brokeneck.log")
	log, closer, err := openLog(&config.Config{LogFile: path, LogLevel: "info"})
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
