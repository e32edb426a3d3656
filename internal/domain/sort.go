package domain

import (
	"sort"
	"time"
)

// SortField represents a field to sort by
type SortField string

const (
	SortByCreated SortField = "created"
	SortByDue     SortField = "due"
	SortByUpdated SortField = "updated"
	SortByTitle   SortField = "title"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply sorts a copy of tasks. Ties keep the input order.
func (s *Sort) Apply(tasks []Task) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)

	var less func(a, b Task) bool
	switch s.Field {
	case SortByDue:
		less = func(a, b Task) bool { return timeLess(a.DueDate, b.DueDate) }
	case SortByUpdated:
		less = func(a, b Task) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortByTitle:
		less = func(a, b Task) bool { return a.Title < b.Title }
	case SortByCreated:
		less = func(a, b Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		if s.Order == SortAsc {
			return less(result[i], result[j])
		}
		return less(result[j], result[i])
	})
	return result
}

// timeLess orders zero times last
func timeLess(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.Before(b)
}
