package task

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-screen date format (DD-MM-YY).
const DateLayout = "02-01-06"

var ErrInvalidDate = errors.New("invalid date")

// Task is a single todo item. ID is zero until the store assigns one.
type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	Priority    Priority
	Date        sql.NullTime
}

func New(title, description string) Task {
	return Task{
		Title:       title,
		Description: description,
		Priority:    PriorityLow,
	}
}

// Persisted reports whether the task carries a store-assigned id.
func (t Task) Persisted() bool {
	return t.ID > 0
}

func ParseDate(v string) (sql.NullTime, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return sql.NullTime{}, fmt.Errorf("%w %q: expected DD-MM-YY", ErrInvalidDate, v)
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func FormatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(DateLayout)
}

func HumanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
