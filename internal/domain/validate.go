package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Form limits enforced at the input boundary. Stores trust their callers.
const (
	MinTitleLength       = 3
	MinDescriptionLength = 5
	DueDateLayout        = "2006-01-02"
)

// TaskForm is raw user input for creating or editing a task
type TaskForm struct {
	Title       string
	Description string
	Category    string
	Status      string
	DueDate     string
}

// ValidateTaskForm checks a form and converts it into a TaskInput.
// All field errors are reported together.
func ValidateTaskForm(f TaskForm) (TaskInput, error) {
	var errs ValidationErrors

	title := strings.TrimSpace(f.Title)
	if utf8.RuneCountInString(title) < MinTitleLength {
		errs = append(errs, &ValidationError{Field: "title", Message: "must be at least 3 characters"})
	}

	description := strings.TrimSpace(f.Description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		errs = append(errs, &ValidationError{Field: "description", Message: "must be at least 5 characters"})
	}

	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = CategoryOther
	}

	status := StatusPending
	if f.Status != "" {
		s, err := ParseStatus(f.Status)
		if err != nil {
			errs = append(errs, &ValidationError{Field: "status", Message: "must be pending, in_progress or done"})
		} else {
			status = s
		}
	}

	var due time.Time
	dueText := strings.TrimSpace(f.DueDate)
	if dueText == "" {
		errs = append(errs, &ValidationError{Field: "dueDate", Message: "please select a due date"})
	} else {
		d, err := time.ParseInLocation(DueDateLayout, dueText, time.UTC)
		if err != nil {
			errs = append(errs, &ValidationError{Field: "dueDate", Message: "use the YYYY-MM-DD format"})
		} else {
			due = d
		}
	}

	if len(errs) > 0 {
		return TaskInput{}, errs
	}

	return TaskInput{
		Title:       title,
		Description: description,
		Category:    category,
		Status:      status,
		DueDate:     due,
	}, nil
}

// FormFromTask pre-fills a form for editing
func FormFromTask(t Task) TaskForm {
	due := ""
	if !t.DueDate.IsZero() {
		due = t.DueDate.Format(DueDateLayout)
	}
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Status:      string(t.Status),
		DueDate:     due,
	}
}

// PatchFromInput builds a full patch that overwrites every editable field
func PatchFromInput(in TaskInput) TaskPatch {
	return TaskPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Category:    &in.Category,
		Status:      &in.Status,
		DueDate:     &in.DueDate,
	}
}
