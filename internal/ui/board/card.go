package board

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/ui/styles"
)

type cardState struct {
	isCursor   bool
	isDragging bool
	now        time.Time
}

// renderCard renders a task card: title line, then category badge and due date
func renderCard(task domain.Task, state cardState, width int, categories Categories, s *styles.Styles) string {
	cardStyle := s.Card
	if state.isDragging {
		cardStyle = s.CardDragging
	} else if state.isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Account for padding (2) and border (2)
	textWidth := width - 2
	if textWidth < 1 {
		textWidth = 1
	}

	cursor := ""
	if state.isCursor {
		cursor = "▶"
	}
	titleLine := Truncate(cursor+task.Title, textWidth)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.TaskTitle.Render(titleLine),
		metaLine(task, state.now, textWidth, categories, s),
	))
}

// metaLine renders the category badge and due date, dropping the date and
// then truncating the label to stay on one line
func metaLine(task domain.Task, now time.Time, width int, categories Categories, s *styles.Styles) string {
	label := categories.Label(task.Category)
	color := categories.ResolveColor(task.Category)

	due := ""
	if !task.DueDate.IsZero() {
		due = task.DueDate.Format(domain.DueDateLayout)
	}

	// Badge padding adds 2 cells
	if due != "" && runewidth.StringWidth(label)+2+1+len(due) <= width {
		dueStyle := s.TaskMeta
		if task.PastDue(now) {
			dueStyle = s.PastDue
		}
		return s.Badge(label, color) + " " + dueStyle.Render(due)
	}

	if width-2 < 1 {
		return ""
	}
	return s.Badge(Truncate(label, width-2), color)
}

// Truncate shortens s to fit width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, width int, now time.Time, categories Categories, s *styles.Styles) string {
	return renderCard(task, cardState{isCursor: isCursor, now: now}, width, categories, s)
}
