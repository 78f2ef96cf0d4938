package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.WithField("user", "u1").Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "user=u1")
}

func TestParseLevelDefaultsToWarn(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, lvl)
}

func TestParseLevelRejectsUnknown(t *testing.T) {
	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestOpenFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brokeneck.log")
	logger, closer, err := OpenFile(path, "debug")
	require.NoError(t, err)

	logger.WithField("op", "LoadUser").Debug("query")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"LoadUser"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDiscardDropsOutput(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Error("nothing") })
}
