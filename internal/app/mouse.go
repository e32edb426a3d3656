package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/kanban"
	"github.com/peregrinno/todo/internal/ui/board"
)

// handleMouse routes pointer events to the active view. Coordinates are
// translated so that y=0 is the first line under the header.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.overlayStack.IsEmpty() || m.switching || m.config.UI.DisableMouse {
		return m, nil
	}

	event := tea.MouseEvent(msg)
	y := event.Y - headerHeight
	if m.viewMode() == domain.ViewList {
		return m.handleListMouse(event, y)
	}
	return m.handleBoardMouse(event, y)
}

func (m Model) handleListMouse(event tea.MouseEvent, y int) (Model, tea.Cmd) {
	switch {
	case event.Button == tea.MouseButtonWheelUp:
		m.list.MoveUp(1)
	case event.Button == tea.MouseButtonWheelDown:
		m.list.MoveDown(1)
	case event.Action == tea.MouseActionPress && event.Button == tea.MouseButtonLeft:
		if row := m.list.RowAt(y); row >= 0 {
			m.list.SetCursor(row)
		}
	}
	return m, nil
}

// handleBoardMouse implements drag and drop: press on a card grabs it,
// motion updates the hovered column and release commits the drop
func (m Model) handleBoardMouse(event tea.MouseEvent, y int) (Model, tea.Cmd) {
	columns := m.boardColumns()
	layout := m.boardLayout(columns)
	target := m.hover(board.HitTest(event.X, y, columns, layout))

	switch {
	case event.Button == tea.MouseButtonWheelUp:
		if !m.drag.Dragging() {
			m.nav.MoveUp(columns)
		}

	case event.Button == tea.MouseButtonWheelDown:
		if !m.drag.Dragging() {
			m.nav.MoveDown(columns)
		}

	case event.Action == tea.MouseActionPress && event.Button == tea.MouseButtonLeft:
		if !m.editor.IsNormal() {
			return m, nil
		}
		switch target.Kind {
		case kanban.TargetCard:
			m.nav.JumpToTaskByID(columns, target.TaskID)
			if m.drag.Start(target.TaskID) {
				m.editor.SetMode(ModeDrag)
			}
		case kanban.TargetColumn:
			m.nav.GotoColumn(columns, target.Status.Column())
		}

	case event.Action == tea.MouseActionMotion:
		if m.editor.GetMode() == ModeDrag {
			m.drag.Over(target)
		}

	case event.Action == tea.MouseActionRelease:
		if m.editor.GetMode() != ModeDrag {
			return m, nil
		}
		outcome := m.drag.Drop(m.ctx, target)
		m.editor.EnterNormal()
		m.finishDrop(outcome.TaskID, outcome.Moved, outcome.Message, outcome.Err)
	}

	return m, nil
}

// hover maps the held card's own preview to its provisional column so the
// target does not flip between the card and the column beneath it
func (m Model) hover(target kanban.DropTarget) kanban.DropTarget {
	if m.drag.Dragging() && target.Kind == kanban.TargetCard && target.TaskID == m.drag.TaskID() {
		return kanban.ColumnTarget(m.drag.Provisional())
	}
	return target
}

// boardLayout computes the board geometry for the current frame
func (m Model) boardLayout(columns []kanban.Column) board.Layout {
	pos := m.nav.GetPosition(columns)
	return board.NewLayout(columns, board.Cursor{Column: pos.Column, Task: pos.Task}, m.width, m.mainHeight())
}
