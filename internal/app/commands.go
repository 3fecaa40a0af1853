package app

import (
	"strings"

	"taskterm/internal/task"
)

// Command is one user intent applied to the state. Commands validate
// first, write to the store second and only then touch memory, so a failed
// command leaves the state as it found it.
type Command interface {
	Execute(s *State) error
}

type EnterEditMode struct{}

func (EnterEditMode) Execute(s *State) error {
	if s.Mode != ModeNormal {
		return stateErr("enter edit mode", s.Mode)
	}
	s.Mode = ModeEditing
	s.Field = FieldTitle
	return nil
}

// AddTask inserts a task built from the buffers and reloads the list.
type AddTask struct{}

func (AddTask) Execute(s *State) error {
	const op = "add task"
	if s.Mode != ModeEditing {
		return stateErr(op, s.Mode)
	}
	t, err := taskFromBuffers(s)
	if err != nil {
		return validationErr(op, err)
	}

	id, err := s.store.Insert(t)
	if err != nil {
		return storeErr(op, 0, 0, err)
	}

	s.clearBuffers()
	s.Mode = ModeNormal
	s.Field = FieldTitle
	if err := s.Reload(); err != nil {
		return &Error{Op: "reload", Kind: KindStore, Err: err}
	}
	s.selectID(id)
	return nil
}

type ToggleTaskStatus struct{}

func (ToggleTaskStatus) Execute(s *State) error {
	i, ok := s.Selected()
	if !ok {
		return nil
	}
	t := s.Tasks[i]
	completed := !t.Completed
	n, err := s.store.SetCompleted(t.ID, completed)
	if err := storeErr("toggle status", t.ID, n, err); err != nil {
		return err
	}
	s.Tasks[i].Completed = completed
	return nil
}

type ToggleItemPriority struct{}

func (ToggleItemPriority) Execute(s *State) error {
	i, ok := s.Selected()
	if !ok {
		return nil
	}
	t := s.Tasks[i]
	next := t.Priority.Next()
	n, err := s.store.SetPriority(t.ID, next)
	if err := storeErr("change priority", t.ID, n, err); err != nil {
		return err
	}
	s.Tasks[i].Priority = next
	return nil
}

// StartEditingExistingTask stages the selected task in the buffers.
type StartEditingExistingTask struct{}

func (StartEditingExistingTask) Execute(s *State) error {
	if s.Mode != ModeNormal {
		return stateErr("start editing", s.Mode)
	}
	t, ok := s.SelectedTask()
	if !ok {
		return nil
	}
	s.Title = t.Title
	s.Description = t.Description
	s.Date = task.FormatDate(t.Date)
	s.Mode = ModeEditingExisting
	s.Field = FieldTitle
	return nil
}

type FinishEditingExistingTask struct{}

func (FinishEditingExistingTask) Execute(s *State) error {
	const op = "update task"
	if s.Mode != ModeEditingExisting {
		return stateErr(op, s.Mode)
	}
	i, ok := s.Selected()
	if !ok {
		s.clearBuffers()
		s.Mode = ModeNormal
		return nil
	}

	edited, err := taskFromBuffers(s)
	if err != nil {
		return validationErr(op, err)
	}
	updated := s.Tasks[i]
	updated.Title = edited.Title
	updated.Description = edited.Description
	updated.Date = edited.Date

	n, err := s.store.UpdateFields(updated)
	if err := storeErr(op, updated.ID, n, err); err != nil {
		return err
	}

	s.Tasks[i] = updated
	s.clearBuffers()
	s.Mode = ModeNormal
	s.Field = FieldTitle
	return nil
}

type DeleteTask struct{}

func (DeleteTask) Execute(s *State) error {
	i, ok := s.Selected()
	if !ok {
		return nil
	}
	id := s.Tasks[i].ID
	n, err := s.store.Delete(id)
	if err := storeErr("delete task", id, n, err); err != nil {
		return err
	}
	s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
	s.Select(i)
	return nil
}

// StopEditing abandons an add or edit without saving.
type StopEditing struct{}

func (StopEditing) Execute(s *State) error {
	s.clearBuffers()
	s.Mode = ModeNormal
	s.Field = FieldTitle
	return nil
}

type SelectNext struct{}

func (SelectNext) Execute(s *State) error {
	i, ok := s.Selected()
	if !ok {
		s.Select(0)
		return nil
	}
	s.Select(i + 1)
	return nil
}

type SelectPrevious struct{}

func (SelectPrevious) Execute(s *State) error {
	i, ok := s.Selected()
	if !ok {
		s.Select(0)
		return nil
	}
	s.Select(i - 1)
	return nil
}

// NextField moves input focus to the following buffer while editing.
type NextField struct{}

func (NextField) Execute(s *State) error {
	if s.Mode == ModeNormal {
		return nil
	}
	s.Field = s.Field.Next()
	return nil
}

// CycleSort switches to the next sort order and reloads the list.
type CycleSort struct{}

func (CycleSort) Execute(s *State) error {
	prev := s.Sort
	s.Sort = s.Sort.Next()
	if err := s.Reload(); err != nil {
		s.Sort = prev
		return &Error{Op: "sort tasks", Kind: KindStore, Err: err}
	}
	return nil
}

// taskFromBuffers validates the buffers without consuming them.
func taskFromBuffers(s *State) (task.Task, error) {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return task.Task{}, ErrEmptyTitle
	}
	t := task.New(title, strings.TrimSpace(s.Description))
	date, err := task.ParseDate(s.Date)
	if err != nil {
		return task.Task{}, err
	}
	t.Date = date
	return t, nil
}
