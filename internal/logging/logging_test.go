package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	logger, closer, err := New(path, "warn", false)
	require.NoError(t, err)

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.WithField("task", 7).Warn("delete failed")
	logger.Info("not written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "delete failed")
	assert.Contains(t, string(data), "task=7")
	assert.NotContains(t, string(data), "not written")
}

func TestNewDebugOverridesLevel(t *testing.T) {
	logger, closer, err := New("", "error", true)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New("", "chatty", false)
	assert.Error(t, err)
}
