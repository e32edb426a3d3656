// Package list renders the table view of tasks.
package list

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// EmptyMessage is shown when no task matches
const EmptyMessage = "No tasks found"

// Categories resolves category slugs for display
type Categories interface {
	ResolveColor(slug string) string
	Label(slug string) string
}

// View is a scrollable table of tasks
type View struct {
	tasks      []domain.Task
	cursor     int
	styles     *styles.Styles
	categories Categories
	width      int
	height     int
	now        time.Time

	// Scrolling state
	scrollOffset int
}

// New creates a View with the given tasks and dimensions
func New(tasks []domain.Task, categories Categories, s *styles.Styles, width, height int) *View {
	return &View{
		tasks:      tasks,
		styles:     s,
		categories: categories,
		width:      width,
		height:     height,
		now:        time.Now(),
	}
}

// SetTasks updates the task list
func (v *View) SetTasks(tasks []domain.Task) {
	v.tasks = tasks
	// Clamp cursor to valid range
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.ensureCursorVisible()
}

// SetNow sets the reference time for past-due highlighting
func (v *View) SetNow(now time.Time) {
	v.now = now
}

// SetCursor sets the cursor position
func (v *View) SetCursor(index int) {
	switch {
	case index < 0:
		v.cursor = 0
	case index >= len(v.tasks):
		v.cursor = max(0, len(v.tasks)-1)
	default:
		v.cursor = index
	}
	v.ensureCursorVisible()
}

// Cursor returns the current cursor position
func (v *View) Cursor() int {
	return v.cursor
}

// MoveUp moves cursor up by n positions
func (v *View) MoveUp(n int) {
	v.SetCursor(v.cursor - n)
}

// MoveDown moves cursor down by n positions
func (v *View) MoveDown(n int) {
	v.SetCursor(v.cursor + n)
}

// GotoTop moves cursor to the first task
func (v *View) GotoTop() {
	v.SetCursor(0)
}

// GotoBottom moves cursor to the last task
func (v *View) GotoBottom() {
	v.SetCursor(len(v.tasks) - 1)
}

// Current returns the task at the cursor position
func (v *View) Current() (domain.Task, bool) {
	if v.cursor >= 0 && v.cursor < len(v.tasks) {
		return v.tasks[v.cursor], true
	}
	return domain.Task{}, false
}

// SetDimensions updates the view dimensions
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ensureCursorVisible()
}

// RowAt returns the task index rendered at line y, or -1
func (v *View) RowAt(y int) int {
	row := y - headerRows
	if row < 0 || row >= v.visibleRows() {
		return -1
	}
	idx := v.scrollOffset + row
	if idx >= len(v.tasks) {
		return -1
	}
	return idx
}

// header and separator
const headerRows = 2

// Render renders the full table
func (v *View) Render() string {
	if len(v.tasks) == 0 {
		return v.renderEmptyState()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.styles.Separator.Render(strings.Repeat("─", v.width)))
	b.WriteString("\n")

	// Calculate visible range
	startIdx := v.scrollOffset
	endIdx := min(startIdx+v.visibleRows(), len(v.tasks))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(v.renderRow(i, v.tasks[i]))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	// Add scroll indicator if needed
	if endIdx < len(v.tasks) {
		b.WriteString("\n")
		b.WriteString(v.styles.Separator.Render(
			fmt.Sprintf(" ↓ %d more tasks ↓ ", len(v.tasks)-endIdx),
		))
	}

	return b.String()
}

func (v *View) renderEmptyState() string {
	emptyStyle := v.styles.EmptyHint.
		Align(lipgloss.Center).
		Width(v.width).
		Height(max(1, v.height/2))

	return emptyStyle.Render(EmptyMessage + "\n\nPress 'n' to create a task or 'f' to change filters")
}

func (v *View) renderHeader() string {
	w := v.columnWidths()
	header := v.styles.ColumnHeader.UnsetMarginBottom().UnsetPadding()

	cells := []string{
		header.Width(w.number).Render("#"),
		header.Width(w.title).Render("Title"),
		header.Width(w.category).Render("Category"),
		header.Width(w.status).Render("Status"),
		header.Width(w.due).Render("Due"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (v *View) renderRow(index int, task domain.Task) string {
	isActive := index == v.cursor

	rowStyle := v.styles.Row
	if isActive {
		rowStyle = v.styles.RowActive
	}

	w := v.columnWidths()

	indicator := "  "
	if isActive {
		indicator = "▶ "
	}
	number := rowStyle.Width(w.number).Render(fmt.Sprintf("%s%2d", indicator, index+1))

	title := rowStyle.Width(w.title).Render(truncateString(task.Title, w.title-1))

	label := truncateString(v.categories.Label(task.Category), w.category-3)
	category := lipgloss.NewStyle().Width(w.category).
		Render(v.styles.Badge(label, v.categories.ResolveColor(task.Category)))

	status := lipgloss.NewStyle().Width(w.status).
		Render(v.styles.StatusBadge(task.Status).Render(task.Status.Label()))

	dueStyle := v.styles.TaskMeta
	if task.PastDue(v.now) {
		dueStyle = v.styles.PastDue
	}
	dueText := ""
	if !task.DueDate.IsZero() {
		dueText = task.DueDate.Format(domain.DueDateLayout)
	}
	due := dueStyle.Width(w.due).Render(dueText)

	return lipgloss.JoinHorizontal(lipgloss.Top, number, title, category, status, due)
}

type columnWidths struct {
	number   int
	title    int
	category int
	status   int
	due      int
}

// columnWidths calculates responsive column widths based on available space
func (v *View) columnWidths() columnWidths {
	const (
		numberWidth   = 6
		categoryWidth = 16
		statusWidth   = 15
		dueWidth      = 11
	)

	fixed := numberWidth + categoryWidth + statusWidth + dueWidth
	return columnWidths{
		number:   numberWidth,
		title:    max(12, v.width-fixed),
		category: categoryWidth,
		status:   statusWidth,
		due:      dueWidth,
	}
}

func (v *View) visibleRows() int {
	// Header and separator; the scroll hint takes the last line
	available := v.height - headerRows - 1
	if available < 1 {
		return 1
	}
	return available
}

// ensureCursorVisible adjusts scroll offset to keep cursor visible
func (v *View) ensureCursorVisible() {
	visible := v.visibleRows()

	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}

	maxOffset := max(0, len(v.tasks)-visible)
	if v.scrollOffset > maxOffset {
		v.scrollOffset = maxOffset
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// truncateString truncates a string to fit within width cells.
// If truncated, adds "…" at the end
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
