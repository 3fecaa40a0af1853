package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskterm/internal/task"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAssignsIDAndTrims(t *testing.T) {
	s := openMemory(t)

	id, err := s.Insert(task.New("  Buy milk ", " semi-skimmed  "))
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "semi-skimmed", got.Description)
	assert.False(t, got.Completed)
	assert.Equal(t, task.PriorityLow, got.Priority)
	assert.Equal(t, PlaceholderDate, got.Date)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s := openMemory(t)
	_, err := s.Get(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdatesReportRowsAffected(t *testing.T) {
	s := openMemory(t)
	id, err := s.Insert(task.New("write report", ""))
	require.NoError(t, err)

	n, err := s.SetCompleted(id, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.SetPriority(id, task.PriorityHigh)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.UpdateFields(task.Task{ID: id, Title: " final report ", Description: "q3"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, task.PriorityHigh, got.Priority)
	assert.Equal(t, "final report", got.Title)
	assert.Equal(t, "q3", got.Description)

	n, err = s.SetCompleted(id+100, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestDeleteCountClear(t *testing.T) {
	s := openMemory(t)
	a, err := s.Insert(task.New("a", ""))
	require.NoError(t, err)
	_, err = s.Insert(task.New("b", ""))
	require.NoError(t, err)
	_, err = s.Insert(task.New("c", ""))
	require.NoError(t, err)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	removed, err := s.Delete(a)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	_, err = s.Get(a)
	assert.True(t, errors.Is(err, ErrNotFound))

	removed, err = s.Clear()
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	n, err = s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAllSorted(t *testing.T) {
	s := openMemory(t)
	for _, p := range []task.Priority{task.PriorityMedium, task.PriorityHigh, task.PriorityLow} {
		tk := task.New(p.String(), "")
		tk.Priority = p
		_, err := s.Insert(tk)
		require.NoError(t, err)
	}

	titles := func(ts []task.Task) []string {
		out := make([]string, 0, len(ts))
		for _, tk := range ts {
			out = append(out, tk.Title)
		}
		return out
	}

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"Medium", "High", "Low"}, titles(all))

	desc, err := s.AllSorted(SortPriorityDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Medium", "Low"}, titles(desc))

	asc, err := s.AllSorted(SortPriorityAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Low", "Medium", "High"}, titles(asc))
}

func TestOpenFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Insert(task.New("durable", "row"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Title)
}

func TestSortOrderParseAndCycle(t *testing.T) {
	o, err := ParseSortOrder("priority_desc")
	require.NoError(t, err)
	assert.Equal(t, SortPriorityDesc, o)

	_, err = ParseSortOrder("alphabetical")
	assert.Error(t, err)

	assert.Equal(t, SortPriorityDesc, SortNone.Next())
	assert.Equal(t, SortPriorityAsc, SortPriorityDesc.Next())
	assert.Equal(t, SortNone, SortPriorityAsc.Next())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(""))
	assert.Equal(t, "file:custom.db?mode=ro", sqliteDSN("file:custom.db?mode=ro"))
	dsn := sqliteDSN("/tmp/todo.db")
	assert.Contains(t, dsn, "file:///tmp/todo.db")
	assert.Contains(t, dsn, "mode=rwc")
}
