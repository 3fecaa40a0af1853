// Package app holds the in-memory task list, the input state that the UI
// edits, and the commands that keep both in step with the store.
package app

import (
	"taskterm/internal/storage"
	"taskterm/internal/task"
)

// Store is the persistence surface the commands need. *storage.Store
// satisfies it.
type Store interface {
	Insert(t task.Task) (int, error)
	All() ([]task.Task, error)
	AllSorted(order storage.SortOrder) ([]task.Task, error)
	SetCompleted(id int, completed bool) (int64, error)
	SetPriority(id int, p task.Priority) (int64, error)
	UpdateFields(t task.Task) (int64, error)
	Delete(id int) (int64, error)
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeEditingExisting
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeEditingExisting:
		return "editing-existing"
	default:
		return "normal"
	}
}

type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldDate
)

const fieldCount = 3

func (f Field) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldDate:
		return "date"
	default:
		return "title"
	}
}

func (f Field) Next() Field {
	return (f + 1) % fieldCount
}

// State mirrors the store and carries the UI interaction state. The
// selection, when present, always indexes into Tasks.
type State struct {
	store Store

	Tasks []task.Task
	Mode  Mode
	Field Field
	Sort  storage.SortOrder

	Title       string
	Description string
	Date        string

	selected    int
	hasSelected bool
}

func NewState(store Store, order storage.SortOrder) *State {
	return &State{store: store, Sort: order}
}

// Selected returns the selected index, if any.
func (s *State) Selected() (int, bool) {
	if !s.hasSelected || s.selected < 0 || s.selected >= len(s.Tasks) {
		return 0, false
	}
	return s.selected, true
}

// SelectedTask returns a copy of the selected task.
func (s *State) SelectedTask() (task.Task, bool) {
	i, ok := s.Selected()
	if !ok {
		return task.Task{}, false
	}
	return s.Tasks[i], true
}

// Select moves the selection to i, clamped into the list. An empty list
// clears the selection.
func (s *State) Select(i int) {
	if len(s.Tasks) == 0 {
		s.selected, s.hasSelected = 0, false
		return
	}
	s.selected, s.hasSelected = clampCursor(i, len(s.Tasks)), true
}

func (s *State) selectID(id int) bool {
	for i, t := range s.Tasks {
		if t.ID == id {
			s.Select(i)
			return true
		}
	}
	return false
}

// Buffer returns the text buffer backing f.
func (s *State) Buffer(f Field) string {
	switch f {
	case FieldDescription:
		return s.Description
	case FieldDate:
		return s.Date
	default:
		return s.Title
	}
}

func (s *State) SetBuffer(f Field, v string) {
	switch f {
	case FieldDescription:
		s.Description = v
	case FieldDate:
		s.Date = v
	default:
		s.Title = v
	}
}

func (s *State) clearBuffers() {
	s.Title, s.Description, s.Date = "", "", ""
}

// Reload replaces Tasks with the store's rows in the current sort order,
// keeping the selection on the same task when it still exists.
func (s *State) Reload() error {
	prevID := 0
	if t, ok := s.SelectedTask(); ok {
		prevID = t.ID
	}
	tasks, err := s.store.AllSorted(s.Sort)
	if err != nil {
		return err
	}
	s.Tasks = tasks
	if prevID != 0 && s.selectID(prevID) {
		return nil
	}
	s.Select(s.selected)
	return nil
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
