package app

import (
	"errors"
	"fmt"

	"taskterm/internal/storage"
	"taskterm/internal/task"
)

var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTransition = errors.New("invalid mode transition")
)

// Kind classifies a command failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStore
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindStore:
		return "store"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is returned by every failing command.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, inferring it from well-known sentinels
// when err is not an *Error.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	switch {
	case errors.Is(err, task.ErrInvalidDate), errors.Is(err, ErrEmptyTitle):
		return KindValidation
	case errors.Is(err, storage.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindState
	default:
		return KindStore
	}
}

func validationErr(op string, err error) error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

func stateErr(op string, from Mode) error {
	return &Error{Op: op, Kind: KindState, Err: fmt.Errorf("%w from %s mode", ErrInvalidTransition, from)}
}

// storeErr wraps a store failure. A write that touched no rows means the
// task is gone from the table.
func storeErr(op string, id int, rows int64, err error) error {
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &Error{Op: op, Kind: KindNotFound, Err: err}
		}
		return &Error{Op: op, Kind: KindStore, Err: err}
	}
	if rows == 0 {
		return &Error{Op: op, Kind: KindNotFound, Err: fmt.Errorf("task %d: %w", id, storage.ErrNotFound)}
	}
	return nil
}
