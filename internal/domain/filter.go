package domain

import "strings"

// Filter represents the list/kanban filtering state.
// Category and Status use FilterAll ("all") as the wildcard.
type Filter struct {
	Search   string
	Category string
	Status   string
}

// NewFilter creates a filter that matches every task
func NewFilter() *Filter {
	return &Filter{
		Category: FilterAll,
		Status:   FilterAll,
	}
}

// IsActive returns true if any criterion narrows the result
func (f *Filter) IsActive() bool {
	return f.Search != "" ||
		(f.Category != "" && f.Category != FilterAll) ||
		(f.Status != "" && f.Status != FilterAll)
}

// ForKanban returns a copy without the status criterion; the board shows
// every status as its own column.
func (f *Filter) ForKanban() *Filter {
	c := *f
	c.Status = FilterAll
	return &c
}

// Apply filters a list of tasks, preserving order
func (f *Filter) Apply(tasks []Task) []Task {
	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all criteria (AND logic)
func (f *Filter) Matches(t Task) bool {
	// Search (case-insensitive, title or description)
	if f.Search != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			return false
		}
	}

	if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
		return false
	}

	if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}

	return true
}

// Clear resets all criteria
func (f *Filter) Clear() {
	f.Search = ""
	f.Category = FilterAll
	f.Status = FilterAll
}

// SetCategory selects a category slug, or FilterAll
func (f *Filter) SetCategory(slug string) {
	if slug == "" {
		slug = FilterAll
	}
	f.Category = slug
}

// SetStatus selects a status, or FilterAll
func (f *Filter) SetStatus(s string) {
	if s == "" {
		s = FilterAll
	}
	f.Status = s
}
