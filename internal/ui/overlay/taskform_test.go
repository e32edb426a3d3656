package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinno/todo/internal/domain"
)

func testCategories() []CategoryOption {
	var out []CategoryOption
	for _, c := range domain.BuiltinCategories {
		out = append(out, CategoryOption{Slug: c.Slug, Label: c.Label, Color: c.Color})
	}
	return append(out, CategoryOption{Slug: "side_project", Label: "Side project", Color: "#123456"})
}

func pressKey(o Overlay, k tea.KeyMsg) (Overlay, tea.Cmd) {
	m, cmd := o.Update(k)
	return m.(Overlay), cmd
}

func TestNewTaskForm_Defaults(t *testing.T) {
	f := NewTaskForm(testCategories())

	form := f.Form()
	assert.Equal(t, domain.CategoryOther, form.Category)
	assert.Equal(t, string(domain.StatusPending), form.Status)
	assert.Empty(t, form.DueDate)
	assert.Equal(t, "New Task", f.Title())
	assert.False(t, f.IsEdit())
	assert.Contains(t, f.View(), "Create Task")
}

func TestTaskForm_SubmitValid(t *testing.T) {
	var o Overlay = NewTaskForm(testCategories())

	o = typeString(o, "Write report")
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyTab})
	o = typeString(o, "Quarterly numbers")
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyTab})
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyRight}) // outros -> side_project
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyTab})
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyRight}) // pending -> in_progress
	o, _ = pressKey(o, tea.KeyMsg{Type: tea.KeyTab})
	o = typeString(o, "2026-04-01")

	_, cmd := pressKey(o, tea.KeyMsg{Type: tea.KeyCtrlS})

	msgs := collect(cmd)
	submitted, ok := find[TaskSubmittedMsg](msgs)
	require.True(t, ok)
	assert.Empty(t, submitted.TaskID)
	assert.Equal(t, "Write report", submitted.Input.Title)
	assert.Equal(t, "Quarterly numbers", submitted.Input.Description)
	assert.Equal(t, "side_project", submitted.Input.Category)
	assert.Equal(t, domain.StatusInProgress, submitted.Input.Status)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), submitted.Input.DueDate)
}

func TestTaskForm_InvalidStaysOpen(t *testing.T) {
	f := NewTaskForm(testCategories())
	var o Overlay = f
	o = typeString(o, "ab")

	_, cmd := pressKey(o, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd, "no submit and no close")
	view := f.View()
	assert.Contains(t, view, "must be at least 3 characters")
	assert.Contains(t, view, "must be at least 5 characters")
	assert.Contains(t, view, "please select a due date")
}

func TestTaskForm_FocusCycle(t *testing.T) {
	f := NewTaskForm(testCategories())

	for i := 0; i < focusCount; i++ {
		f.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, focusTitle, f.focusIndex)

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusSubmit, f.focusIndex)
}

func TestTaskForm_EnterAdvancesAndSubmits(t *testing.T) {
	f := NewTaskForm(testCategories())

	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusDescription, f.focusIndex)

	f.setFocus(focusSubmit)
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty form does not submit")
	assert.NotEmpty(t, f.errs)
}

func TestTaskForm_TypingHInTitle(t *testing.T) {
	var o Overlay = NewTaskForm(testCategories())
	o = typeString(o, "hello")

	assert.Equal(t, "hello", o.(*TaskFormOverlay).Form().Title)
}

func TestNewEditTaskForm(t *testing.T) {
	task := domain.Task{
		ID:          "t-1",
		Title:       "Pay rent",
		Description: "Transfer to landlord",
		Category:    domain.CategoryFinances,
		Status:      domain.StatusDone,
		DueDate:     time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	f := NewEditTaskForm(task, testCategories())

	assert.True(t, f.IsEdit())
	assert.Equal(t, "Edit Task", f.Title())
	assert.Equal(t, domain.TaskForm{
		Title:       "Pay rent",
		Description: "Transfer to landlord",
		Category:    domain.CategoryFinances,
		Status:      "done",
		DueDate:     "2026-05-01",
	}, f.Form())

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	submitted, ok := find[TaskSubmittedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "t-1", submitted.TaskID)
}

func TestNewEditTaskForm_KeepsOrphanedCategory(t *testing.T) {
	task := domain.Task{ID: "t-1", Title: "x", Category: "deleted_one", Status: domain.StatusPending}

	f := NewEditTaskForm(task, testCategories())

	assert.Equal(t, "deleted_one", f.Form().Category)
}

func TestTaskForm_EscCloses(t *testing.T) {
	f := NewTaskForm(testCategories())

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, ok := find[CloseOverlayMsg](collect(cmd))
	assert.True(t, ok)
}
