// Package board renders the kanban view.
package board

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/kanban"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// Categories resolves category slugs for display
type Categories interface {
	ResolveColor(slug string) string
	Label(slug string) string
}

// Options controls a board render
type Options struct {
	Cursor     Cursor
	DragTaskID string        // card being dragged, if any
	DropTarget domain.Status // highlighted column while dragging
	Now        time.Time
}

// Render renders the board with one column per status
func Render(
	columns []kanban.Column,
	layout Layout,
	opts Options,
	categories Categories,
	s *styles.Styles,
) string {
	if len(columns) == 0 {
		return ""
	}

	var columnStrings []string
	for i, col := range columns {
		isActive := i == opts.Cursor.Column
		cursorTask := -1
		if isActive {
			cursorTask = opts.Cursor.Task
		}

		columnStr := renderColumn(col, columnState{
			cursorTask: cursorTask,
			isActive:   isActive,
			isDrop:     opts.DragTaskID != "" && col.Status == opts.DropTarget,
			dragTaskID: opts.DragTaskID,
			offset:     layout.offset(i),
			visible:    layout.Visible,
			now:        opts.Now,
		}, layout.ColumnWidth, layout.Height, categories, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(layout.ColumnWidth).Height(layout.Height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
