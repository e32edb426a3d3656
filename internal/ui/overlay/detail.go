package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/peregrinno/todo/internal/domain"
)

const detailWrapWidth = 64

// DetailPanel displays full task details with scrollable description
type DetailPanel struct {
	task       domain.Task
	category   CategoryOption
	now        time.Time
	descLines  []string
	scrollY    int
	viewHeight int
	styles     *Styles
}

// NewDetailPanel creates a detail panel for task. category is the resolved
// label and color of the task's category; now decides the overdue marker.
func NewDetailPanel(task domain.Task, category CategoryOption, now time.Time) *DetailPanel {
	var lines []string
	if task.Description != "" {
		lines = strings.Split(ansi.Wordwrap(task.Description, detailWrapWidth, ""), "\n")
	}

	return &DetailPanel{
		task:       task,
		category:   category,
		now:        now,
		descLines:  lines,
		viewHeight: 12,
		styles:     New(),
	}
}

// Init initializes the detail panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "enter":
		return d, closeCmd

	case "e":
		return d, emit(TaskActionMsg{TaskID: d.task.ID, Action: ActionEdit})

	case "j", "down":
		if d.scrollY < d.maxScroll() {
			d.scrollY++
		}

	case "k", "up":
		if d.scrollY > 0 {
			d.scrollY--
		}

	case "g":
		d.scrollY = 0

	case "G":
		d.scrollY = d.maxScroll()
	}

	return d, nil
}

// View renders the detail panel
func (d *DetailPanel) View() string {
	var b strings.Builder

	field := func(label, value string) {
		b.WriteString(d.styles.FieldLabel.Render(label + ":"))
		b.WriteString("  ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(d.styles.MenuHeader.Render(d.task.Title))
	b.WriteString("\n\n")

	field("Category", d.styles.Badge(d.category.Label, d.category.Color))
	field("Status", d.styles.MenuItem.Render(d.task.Status.Label()))

	if d.task.DueDate.IsZero() {
		field("Due", d.styles.MenuItemDisabled.Render("none"))
	} else {
		due := d.task.DueDate.Format(domain.DueDateLayout)
		if d.task.PastDue(d.now) {
			field("Due", d.styles.FieldError.UnsetPaddingLeft().Render(due+" (overdue)"))
		} else {
			field("Due", d.styles.MenuItem.Render(due))
		}
	}

	field("Created", d.styles.MenuItem.Render(formatTime(d.task.CreatedAt)+" ("+formatAge(d.now.Sub(d.task.CreatedAt))+")"))
	field("Updated", d.styles.MenuItem.Render(formatTime(d.task.UpdatedAt)))

	b.WriteString("\n")
	b.WriteString(d.styles.MenuHeader.Render("Description"))
	b.WriteString("\n")

	if len(d.descLines) == 0 {
		b.WriteString(d.styles.MenuItemDisabled.Render("No description"))
		b.WriteString("\n")
	} else {
		end := min(d.scrollY+d.viewHeight, len(d.descLines))
		for _, line := range d.descLines[d.scrollY:end] {
			b.WriteString(d.styles.MenuItem.Render(line))
			b.WriteString("\n")
		}
	}

	footer := "e: edit • Esc: close"
	if d.maxScroll() > 0 {
		footer = fmt.Sprintf("j/k: scroll (line %d/%d) • %s", d.scrollY+1, len(d.descLines), footer)
	}
	b.WriteString(d.styles.Footer.Render(footer))

	return b.String()
}

// Title returns the overlay title
func (d *DetailPanel) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailPanel) Size() (width, height int) {
	return 70, d.viewHeight + 14
}

// TaskID returns the id of the displayed task
func (d *DetailPanel) TaskID() string {
	return d.task.ID
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// formatAge formats a duration coarsely for display
func formatAge(dur time.Duration) string {
	switch {
	case dur < time.Minute:
		return "just now"
	case dur < time.Hour:
		return fmt.Sprintf("%dm ago", int(dur.Minutes()))
	case dur < 24*time.Hour:
		return fmt.Sprintf("%dh %dm ago", int(dur.Hours()), int(dur.Minutes())%60)
	default:
		return fmt.Sprintf("%dd ago", int(dur.Hours()/24))
	}
}

func (d *DetailPanel) maxScroll() int {
	return max(0, len(d.descLines)-d.viewHeight)
}
