package domain

import (
	"errors"
	"testing"
	"time"
)

func TestStatus_Column(t *testing.T) {
	tests := []struct {
		status Status
		want   int
	}{
		{StatusPending, 0},
		{StatusInProgress, 1},
		{StatusDone, 2},
		{Status("blocked"), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Column(); got != tt.want {
				t.Errorf("Status.Column() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_Label(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "Pending"},
		{StatusInProgress, "In Progress"},
		{StatusDone, "Done"},
		{Status("weird"), "Status: weird"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.Label(); got != tt.want {
				t.Errorf("Status.Label() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_Next(t *testing.T) {
	if got := StatusPending.Next(); got != StatusInProgress {
		t.Errorf("pending.Next() = %v", got)
	}
	if got := StatusDone.Next(); got != StatusPending {
		t.Errorf("done.Next() = %v", got)
	}
	if got := Status("x").Next(); got != StatusPending {
		t.Errorf("unknown.Next() = %v", got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"done", StatusDone, false},
		{"concluida", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestViewMode(t *testing.T) {
	if ViewList.Toggle() != ViewKanban || ViewKanban.Toggle() != ViewList {
		t.Error("Toggle() should flip between list and kanban")
	}
	if _, err := ParseViewMode("grid"); !errors.Is(err, ErrInvalidViewMode) {
		t.Errorf("ParseViewMode(grid) error = %v", err)
	}
	if m, err := ParseViewMode("kanban"); err != nil || m != ViewKanban {
		t.Errorf("ParseViewMode(kanban) = %v, %v", m, err)
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	base := Task{
		ID:          "t-1",
		Title:       "Buy milk",
		Description: "Two litres",
		Category:    CategoryPersonal,
		Status:      StatusPending,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	got := StatusPatch(StatusDone).Apply(base)

	want := base
	want.Status = StatusDone
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}

	if !(TaskPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if StatusPatch(StatusDone).IsEmpty() {
		t.Error("status patch should not be empty")
	}
}

func TestTask_PastDue(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"overdue pending", Task{DueDate: yesterday, Status: StatusPending}, true},
		{"overdue in progress", Task{DueDate: yesterday, Status: StatusInProgress}, true},
		{"overdue but done", Task{DueDate: yesterday, Status: StatusDone}, false},
		{"future", Task{DueDate: tomorrow, Status: StatusPending}, false},
		{"no due date", Task{Status: StatusPending}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.PastDue(now); got != tt.want {
				t.Errorf("PastDue() = %v, want %v", got, tt.want)
			}
		})
	}
}
