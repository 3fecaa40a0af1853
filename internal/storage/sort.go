package storage

import (
	"fmt"
	"strings"
)

// SortOrder selects how AllSorted orders rows.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriorityDesc
	SortPriorityAsc
)

func (o SortOrder) String() string {
	switch o {
	case SortPriorityDesc:
		return "priority-desc"
	case SortPriorityAsc:
		return "priority-asc"
	default:
		return "none"
	}
}

// Next cycles none -> priority-desc -> priority-asc -> none.
func (o SortOrder) Next() SortOrder {
	return (o + 1) % 3
}

func ParseSortOrder(v string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none", "id":
		return SortNone, nil
	case "priority-desc", "priority_desc", "highest":
		return SortPriorityDesc, nil
	case "priority-asc", "priority_asc", "lowest":
		return SortPriorityAsc, nil
	default:
		return SortNone, fmt.Errorf("unknown sort order %q", v)
	}
}
