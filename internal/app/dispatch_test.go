package app

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchLogsFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	d := NewDispatcher(logger)
	s, _ := newState(t, "Buy milk")

	require.NoError(t, d.Dispatch(s, EnterEditMode{}))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, "EnterEditMode", entry.Data["command"])

	err := d.Dispatch(s, EnterEditMode{})
	require.Error(t, err)
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "command failed", entry.Message)
	assert.Equal(t, "state", entry.Data["kind"])
	assert.Equal(t, "editing", entry.Data["mode"])
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "ToggleItemPriority", CommandName(ToggleItemPriority{}))
	assert.Equal(t, "FinishEditingExistingTask", CommandName(FinishEditingExistingTask{}))
}
