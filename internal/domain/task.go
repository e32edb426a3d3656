// Package domain contains core business types for the task manager.
package domain

import (
	"fmt"
	"time"
)

// Task is a user-created unit of work
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    string    `json:"category" yaml:"category"`
	Status      Status    `json:"status" yaml:"status"`
	DueDate     time.Time `json:"dueDate" yaml:"dueDate"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// PastDue reports whether the due date has passed for a task that is not done yet
func (t Task) PastDue(now time.Time) bool {
	if t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(now) && t.Status != StatusDone
}

// TaskInput holds every task field the caller controls.
// ID and timestamps are assigned by the store.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Status      Status
	DueDate     time.Time
}

// TaskPatch is a partial update; nil fields are left untouched
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	Status      *Status
	DueDate     *time.Time
}

// StatusPatch builds a patch that only changes the status
func StatusPatch(s Status) TaskPatch {
	return TaskPatch{Status: &s}
}

// Apply merges the patch into t and returns the result
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	return t
}

// IsEmpty returns true if the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.Status == nil && p.DueDate == nil
}

// Status is the workflow status of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every status in kanban column order
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// Column returns the kanban column index for this status, or -1 if unknown
func (s Status) Column() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return s.Column() >= 0
}

// Label returns the human readable column label
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return "Status: " + string(s)
	}
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Next returns the following status, wrapping around
func (s Status) Next() Status {
	i := s.Column()
	if i < 0 {
		return StatusPending
	}
	return Statuses[(i+1)%len(Statuses)]
}

// ParseStatus converts user input into a Status.
// Accepts the persisted values plus a few spellings used on the command line.
func ParseStatus(v string) (Status, error) {
	switch v {
	case "pending", "todo", "pendente":
		return StatusPending, nil
	case "in_progress", "in-progress", "doing", "em_andamento":
		return StatusInProgress, nil
	case "done", "concluida":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
}

// ViewMode selects between the list and kanban presentations
type ViewMode string

const (
	ViewList   ViewMode = "list"
	ViewKanban ViewMode = "kanban"
)

// Valid reports whether m is a known view mode
func (m ViewMode) Valid() bool {
	return m == ViewList || m == ViewKanban
}

// Toggle returns the other view mode
func (m ViewMode) Toggle() ViewMode {
	if m == ViewKanban {
		return ViewList
	}
	return ViewKanban
}

// ParseViewMode validates a view mode string
func ParseViewMode(v string) (ViewMode, error) {
	m := ViewMode(v)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, v)
	}
	return m, nil
}
