package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/kanban"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// EmptyColumnHint is shown in a column without tasks
const EmptyColumnHint = "Drag tasks here"

type columnState struct {
	cursorTask int
	isActive   bool
	isDrop     bool
	dragTaskID string
	offset     int
	visible    int
	now        time.Time
}

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col kanban.Column,
	state columnState,
	width int,
	height int,
	categories Categories,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if state.isActive || state.isDrop {
		headerStyle = s.ColumnHeaderActive
	}

	// Header with title and count (e.g., "─ Pending (3) ─────")
	headerText := fmt.Sprintf("─ %s (%d) ", col.Title(), len(col.Tasks))
	remainingWidth := width - lipgloss.Width(headerText) - 2 // Account for padding
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	innerWidth := width - 4 // column border and padding
	cardWidth := innerWidth - 2

	var cardStrings []string
	end := state.offset + state.visible
	if end > len(col.Tasks) {
		end = len(col.Tasks)
	}
	for i := state.offset; i < end; i++ {
		task := col.Tasks[i]
		cardStrings = append(cardStrings, renderCard(task, cardState{
			isCursor:   state.isActive && i == state.cursorTask,
			isDragging: task.ID == state.dragTaskID,
			now:        state.now,
		}, cardWidth, categories, s))
	}

	boxHeight := height - headerLines - 2*borderLines
	if boxHeight < 1 {
		boxHeight = 1
	}

	content := ""
	switch {
	case len(col.Tasks) == 0:
		content = s.EmptyHint.Render(EmptyColumnHint)
	default:
		content = strings.Join(cardStrings, "\n")
		hidden := len(col.Tasks) - end
		if hidden > 0 && boxHeight-len(cardStrings)*cardStride >= 1 {
			content += "\n" + s.EmptyHint.Render(fmt.Sprintf("↓ %d more", hidden))
		}
	}

	columnStyle := s.Column
	if state.isDrop {
		columnStyle = s.ColumnDropTarget
	}
	columnContent := columnStyle.Width(width - 2).Height(boxHeight).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
