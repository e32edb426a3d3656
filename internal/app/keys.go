package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/ui/overlay"
)

// Confirm dialog subjects are prefixed with what they refer to
const (
	subjectTask     = "task:"
	subjectCategory = "category:"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	if !m.overlayStack.IsEmpty() {
		return m.handleOverlayKey(msg)
	}
	if m.switching {
		return m, nil
	}

	switch m.editor.GetMode() {
	case ModeMove:
		return m.handleMoveMode(msg)
	case ModeDrag:
		if msg.String() == "esc" {
			m.drag.Cancel()
			m.editor.EnterNormal()
		}
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	kanbanView := m.viewMode() == domain.ViewKanban
	columns := m.boardColumns()

	switch msg.String() {
	case "q":
		return m, m.quit()

	// Vertical navigation
	case "j", "down":
		if kanbanView {
			m.nav.MoveDown(columns)
		} else {
			m.list.MoveDown(1)
		}
		return m, nil

	case "k", "up":
		if kanbanView {
			m.nav.MoveUp(columns)
		} else {
			m.list.MoveUp(1)
		}
		return m, nil

	// Horizontal navigation
	case "h", "left":
		if kanbanView {
			m.nav.MoveLeft(columns)
		}
		return m, nil

	case "l", "right":
		if kanbanView {
			m.nav.MoveRight(columns)
		}
		return m, nil

	case "g", "home":
		if kanbanView {
			m.nav.GotoTop(columns)
		} else {
			m.list.GotoTop()
		}
		return m, nil

	case "G", "end":
		if kanbanView {
			m.nav.GotoBottom(columns)
		} else {
			m.list.GotoBottom()
		}
		return m, nil

	// Half-page scroll (list only)
	case "ctrl+d":
		m.list.MoveDown(max(1, m.mainHeight()/2))
		return m, nil

	case "ctrl+u":
		m.list.MoveUp(max(1, m.mainHeight()/2))
		return m, nil

	case "tab":
		return m.toggleView()

	// Task operations
	case "n", "a":
		return m, m.overlayStack.Push(overlay.NewTaskForm(m.categoryOptions()))

	case "e":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(overlay.NewEditTaskForm(task, m.categoryOptions()))
		}
		return m, nil

	case "d", "x":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(confirmDeleteTask(task))
		}
		return m, nil

	case "enter":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(overlay.NewDetailPanel(task, m.categoryOption(task.Category), m.clock))
		}
		return m, nil

	case " ":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(overlay.NewActionMenu(task))
		}
		return m, nil

	case "1", "2", "3":
		if task, ok := m.currentTask(); ok {
			status := domain.Statuses[msg.String()[0]-'1']
			return m.setStatus(task.ID, status)
		}
		return m, nil

	case "m":
		if !kanbanView {
			m.addToast(ToastInfo, "Switch to the Kanban view (tab) to move cards")
			return m, nil
		}
		if task, ok := m.currentTask(); ok && m.drag.Start(task.ID) {
			m.editor.SetMode(ModeMove)
		}
		return m, nil

	// View operations
	case "/":
		m.editor.SetMode(ModeSearch)
		search := overlay.NewSearchOverlay(m.editor.GetFilter().Search)
		search.SetMatchCount(len(m.visibleTasks()))
		return m, m.overlayStack.Push(search)

	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.editor.GetFilter(), m.categoryOptions()))

	case "s":
		return m, m.overlayStack.Push(overlay.NewSortMenu(*m.editor.GetSort()))

	case "c":
		return m, m.overlayStack.Push(overlay.NewCategoryManager(m.categories().List()))

	case "t":
		return m, m.overlayStack.Push(overlay.NewJumpMode(m.visibleTasks()))

	case ",":
		return m, m.overlayStack.Push(overlay.NewSettingsOverlay(m.settingsItems()))

	case "w":
		return m.openWorkspaces()

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())

	case "esc":
		if m.editor.IsFilterActive() {
			m.editor.ClearFilters()
			m.addToast(ToastInfo, "Filters cleared")
		}
		return m, nil
	}

	return m, nil
}

// handleMoveMode drives a keyboard grab: h/l pick the column, enter drops
func (m Model) handleMoveMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		m.drag.MoveBy(-1)
	case "l", "right":
		m.drag.MoveBy(1)
	case "enter", "m", " ":
		outcome := m.drag.DropProvisional(m.ctx)
		m.editor.EnterNormal()
		m.finishDrop(outcome.TaskID, outcome.Moved, outcome.Message, outcome.Err)
	case "esc", "q":
		m.drag.Cancel()
		m.editor.EnterNormal()
	}
	return m, nil
}

// finishDrop reports a drop and keeps the cursor on the card
func (m *Model) finishDrop(taskID string, moved bool, message string, err error) {
	if moved {
		m.addToast(ToastSuccess, message)
	}
	m.reportErr(err)
	if taskID != "" {
		m.selectTask(taskID)
	}
}

// toggleView switches between list and kanban, keeping the selection
func (m Model) toggleView() (Model, tea.Cmd) {
	current, hasCurrent := m.currentTask()
	err := m.tasks().SetViewMode(m.ctx, m.viewMode().Toggle())
	m.reportErr(err)
	if hasCurrent {
		m.selectTask(current.ID)
	}
	return m, nil
}

// setStatus moves a task to status s
func (m Model) setStatus(id string, s domain.Status) (Model, tea.Cmd) {
	task, ok := m.tasks().FindByID(id)
	if !ok || task.Status == s {
		return m, nil
	}
	err := m.tasks().Update(m.ctx, id, domain.StatusPatch(s))
	if applied(err) {
		m.addToast(ToastSuccess, "Task moved to "+s.Label())
		m.selectTask(id)
	}
	m.reportErr(err)
	return m, nil
}

// shiftStatus moves a task delta columns, clamped to the board
func (m Model) shiftStatus(id string, delta int) (Model, tea.Cmd) {
	task, ok := m.tasks().FindByID(id)
	if !ok {
		return m, nil
	}
	col := task.Status.Column()
	idx := col + delta
	if col < 0 || idx < 0 || idx >= len(domain.Statuses) {
		return m, nil
	}
	return m.setStatus(id, domain.Statuses[idx])
}

func confirmDeleteTask(task domain.Task) *overlay.ConfirmDialog {
	return overlay.NewConfirmDialog(
		"Delete task",
		fmt.Sprintf("Delete %q? This cannot be undone.", task.Title),
		subjectTask+task.ID,
	)
}
