package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"taskterm/internal/storage"
	"taskterm/internal/task"
)

type staticLister struct {
	tasks []task.Task
	order storage.SortOrder
	err   error
}

func (s *staticLister) AllSorted(order storage.SortOrder) ([]task.Task, error) {
	s.order = order
	return s.tasks, s.err
}

func sample() *staticLister {
	milk := task.New("Buy milk", "semi-skimmed")
	milk.ID = 1
	milk.Priority = task.PriorityHigh
	milk.Date = storage.PlaceholderDate
	report := task.New("Write report", "")
	report.ID = 2
	report.Completed = true
	return &staticLister{tasks: []task.Task{milk, report}}
}

func TestExportJSON(t *testing.T) {
	src := sample()
	out, err := NewExporter(src).Export("JSON", storage.SortPriorityDesc)
	require.NoError(t, err)
	assert.Equal(t, storage.SortPriorityDesc, src.order)

	var records []Record
	require.NoError(t, json.Unmarshal(out, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "High", records[0].Priority)
	assert.Equal(t, "30-09-24", records[0].Date)
	assert.True(t, records[1].Completed)
	assert.Empty(t, records[1].Date)
}

func TestExportCSV(t *testing.T) {
	out, err := NewExporter(sample()).Export("csv", storage.SortNone)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, "id,title,description,completed,priority,date", string(lines[0]))
	assert.Equal(t, "1,Buy milk,semi-skimmed,false,High,30-09-24", string(lines[1]))
}

func TestExportYAML(t *testing.T) {
	out, err := NewExporter(sample()).Export("yaml", storage.SortNone)
	require.NoError(t, err)
	var records []Record
	require.NoError(t, yaml.Unmarshal(out, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Write report", records[1].Title)
}

func TestExportPDF(t *testing.T) {
	out, err := NewExporter(sample()).Export("pdf", storage.SortNone)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExportErrors(t *testing.T) {
	_, err := NewExporter(sample()).Export("xml", storage.SortNone)
	assert.Error(t, err)

	boom := errors.New("db locked")
	_, err = NewExporter(&staticLister{err: boom}).Export("json", storage.SortNone)
	assert.ErrorIs(t, err, boom)
}
