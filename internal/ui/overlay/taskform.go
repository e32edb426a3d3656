package overlay

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
)

// CategoryOption is a selectable category in forms and menus
type CategoryOption struct {
	Slug  string
	Label string
	Color string
}

// TaskSubmittedMsg is emitted when the task form passes validation.
// TaskID is empty for a new task.
type TaskSubmittedMsg struct {
	TaskID string
	Input  domain.TaskInput
}

// TaskFormOverlay creates or edits a task
type TaskFormOverlay struct {
	taskID      string
	title       textinput.Model
	description textarea.Model
	categories  []CategoryOption
	category    int
	status      int
	dueDate     textinput.Model
	focusIndex  int
	errs        domain.ValidationErrors
	styles      *Styles
}

const (
	focusTitle = iota
	focusDescription
	focusCategory
	focusStatus
	focusDueDate
	focusSubmit
	focusCount
)

// NewTaskForm creates an empty form for a new task
func NewTaskForm(categories []CategoryOption) *TaskFormOverlay {
	f := newTaskForm(categories)
	f.selectCategory(domain.CategoryOther)
	return f
}

// NewEditTaskForm creates a form pre-filled from an existing task
func NewEditTaskForm(task domain.Task, categories []CategoryOption) *TaskFormOverlay {
	f := newTaskForm(categories)
	form := domain.FormFromTask(task)

	f.taskID = task.ID
	f.title.SetValue(form.Title)
	f.description.SetValue(form.Description)
	f.dueDate.SetValue(form.DueDate)
	if !f.selectCategory(form.Category) {
		// Orphaned slug: keep it selectable so saving does not change it
		f.categories = append(f.categories, CategoryOption{
			Slug:  form.Category,
			Label: domain.Humanize(form.Category),
			Color: domain.FallbackColor,
		})
		f.category = len(f.categories) - 1
	}
	if idx := task.Status.Column(); idx >= 0 {
		f.status = idx
	}
	return f
}

func newTaskForm(categories []CategoryOption) *TaskFormOverlay {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	ta := textarea.New()
	ta.Placeholder = "What needs to be done..."
	ta.CharLimit = 2000
	ta.SetWidth(50)
	ta.SetHeight(4)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = len(domain.DueDateLayout)
	due.Width = 12

	return &TaskFormOverlay{
		title:       ti,
		description: ta,
		categories:  append([]CategoryOption(nil), categories...),
		dueDate:     due,
		styles:      New(),
	}
}

func (f *TaskFormOverlay) selectCategory(slug string) bool {
	for i, c := range f.categories {
		if c.Slug == slug {
			f.category = i
			return true
		}
	}
	return false
}

// IsEdit reports whether the form edits an existing task
func (f *TaskFormOverlay) IsEdit() bool {
	return f.taskID != ""
}

// Init initializes the overlay
func (f *TaskFormOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskFormOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return f, closeCmd

		case "ctrl+s":
			return f, f.submit()

		case "tab", "down":
			f.setFocus((f.focusIndex + 1) % focusCount)
			return f, nil

		case "shift+tab", "up":
			f.setFocus((f.focusIndex - 1 + focusCount) % focusCount)
			return f, nil

		case "enter":
			// Newlines are allowed in the description
			if f.focusIndex != focusDescription {
				if f.focusIndex == focusSubmit {
					return f, f.submit()
				}
				f.setFocus(f.focusIndex + 1)
				return f, nil
			}

		case "left", "h", "right", "l":
			delta := 1
			if keyMsg.String() == "left" || keyMsg.String() == "h" {
				delta = -1
			}
			switch f.focusIndex {
			case focusCategory:
				if n := len(f.categories); n > 0 {
					f.category = (f.category + delta + n) % n
				}
				return f, nil
			case focusStatus:
				n := len(domain.Statuses)
				f.status = (f.status + delta + n) % n
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	case focusDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	}
	return f, cmd
}

func (f *TaskFormOverlay) setFocus(idx int) {
	f.focusIndex = idx
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch idx {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	case focusDueDate:
		f.dueDate.Focus()
	}
}

// Form returns the raw field values
func (f *TaskFormOverlay) Form() domain.TaskForm {
	form := domain.TaskForm{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      string(domain.Statuses[f.status]),
		DueDate:     f.dueDate.Value(),
	}
	if f.category < len(f.categories) {
		form.Category = f.categories[f.category].Slug
	}
	return form
}

// submit validates the form. Errors are shown inline and the form stays open.
func (f *TaskFormOverlay) submit() tea.Cmd {
	input, err := domain.ValidateTaskForm(f.Form())
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			f.errs = verrs
		}
		return nil
	}
	f.errs = nil
	return emit(TaskSubmittedMsg{TaskID: f.taskID, Input: input})
}

// View renders the form
func (f *TaskFormOverlay) View() string {
	var b strings.Builder

	f.writeField(&b, focusTitle, "Title:", f.title.View(), "title")
	b.WriteString(f.label(focusDescription, "Description:"))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n")
	f.writeError(&b, "description")
	b.WriteString("\n")
	f.writeField(&b, focusCategory, "Category:", f.renderCategory(), "category")
	f.writeField(&b, focusStatus, "Status:", f.renderStatus(), "status")
	f.writeField(&b, focusDueDate, "Due date:", f.dueDate.View(), "dueDate")

	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	submitStyle := f.styles.MenuItem
	if f.focusIndex == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	label := "[ Create Task ]"
	if f.IsEdit() {
		label = "[ Save Changes ]"
	}
	b.WriteString(submitStyle.Render(label))
	b.WriteString("\n")

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " Next field",
		f.styles.MenuKey.Render("←/→") + " Choose",
		f.styles.MenuKey.Render("Ctrl+S") + " Save",
		f.styles.MenuKey.Render("Esc") + " Cancel",
	}
	b.WriteString(f.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (f *TaskFormOverlay) label(idx int, text string) string {
	if f.focusIndex == idx {
		return f.styles.FieldLabelFocused.Render(text)
	}
	return f.styles.FieldLabel.Render(text)
}

func (f *TaskFormOverlay) writeField(b *strings.Builder, idx int, label, value, field string) {
	b.WriteString(f.label(idx, label))
	b.WriteString("  ")
	b.WriteString(value)
	b.WriteString("\n")
	f.writeError(b, field)
	b.WriteString("\n")
}

func (f *TaskFormOverlay) writeError(b *strings.Builder, field string) {
	if msg := f.errs.Field(field); msg != "" {
		b.WriteString(f.styles.FieldError.Render(msg))
		b.WriteString("\n")
	}
}

func (f *TaskFormOverlay) renderCategory() string {
	if len(f.categories) == 0 {
		return f.styles.MenuItemDisabled.Render("none")
	}
	c := f.categories[f.category]
	return "‹ " + f.styles.Badge(c.Label, c.Color) + " ›"
}

func (f *TaskFormOverlay) renderStatus() string {
	parts := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		style := f.styles.MenuItem
		indicator := " "
		if i == f.status {
			style = f.styles.MenuItemActive
			indicator = "●"
		}
		parts[i] = style.Render("[" + indicator + s.Label() + "]")
	}
	return strings.Join(parts, " ")
}

// Title returns the overlay title
func (f *TaskFormOverlay) Title() string {
	if f.IsEdit() {
		return "Edit Task"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (f *TaskFormOverlay) Size() (width, height int) {
	return 70, 26 + len(f.errs)
}

