package task

import "fmt"

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// Levels is the number of priority values Next cycles through.
const Levels = 3

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Next returns the cyclic successor, wrapping from High back to Low.
func (p Priority) Next() Priority {
	return Priority((int(p) + 1) % Levels)
}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func ParsePriority(v int) (Priority, error) {
	p := Priority(v)
	if !p.Valid() {
		return PriorityLow, fmt.Errorf("unknown priority %d", v)
	}
	return p, nil
}
