package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/ui/board"
	"github.com/peregrinno/todo/internal/ui/overlay"
	"github.com/peregrinno/todo/internal/ui/statusbar"
	"github.com/peregrinno/todo/internal/ui/toast"
)

const (
	appName         = "peregrinno"
	headerHeight    = 1
	statusBarHeight = 1
)

// View renders the application
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	mainHeight := m.mainHeight()

	var mainView string
	if modal := m.modalOverlay(); modal != nil {
		mainView = lipgloss.Place(m.width, mainHeight, lipgloss.Center, lipgloss.Center, m.renderModal(modal))
	} else if m.viewMode() == domain.ViewKanban {
		mainView = m.renderBoardView()
	} else {
		mainView = m.list.Render()
	}
	mainView = lipgloss.NewStyle().
		Width(m.width).
		Height(mainHeight).
		MaxHeight(mainHeight).
		Render(mainView)

	parts := []string{m.renderHeader(), mainView}
	if bar := m.bottomBar(); bar != "" {
		parts = append(parts, bar)
	}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// mainHeight is what is left for the board or list after the header,
// the status bar, toasts and a bottom bar overlay
func (m Model) mainHeight() int {
	h := m.height - headerHeight - statusBarHeight
	if bar := m.bottomBar(); bar != "" {
		h -= lipgloss.Height(bar)
	}
	if toasts := m.renderToasts(); toasts != "" {
		h -= lipgloss.Height(toasts)
	}
	return max(h, 1)
}

// modalOverlay returns the top overlay when it is drawn as a centered box
func (m Model) modalOverlay() overlay.Overlay {
	current := m.overlayStack.Current()
	if current == nil {
		return nil
	}
	if w, _ := current.Size(); w == 0 {
		return nil
	}
	return current
}

// bottomBar renders a full-width overlay such as the search bar
func (m Model) bottomBar() string {
	current := m.overlayStack.Current()
	if current == nil {
		return ""
	}
	if w, _ := current.Size(); w != 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(current.View())
}

func (m Model) renderModal(o overlay.Overlay) string {
	w, h := o.Size()
	content := o.View()
	if title := o.Title(); title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), content)
	}
	return m.styles.Overlay.
		Width(min(w, m.width-4)).
		MaxHeight(min(h, m.mainHeight())).
		Render(content)
}

func (m Model) renderBoardView() string {
	columns := m.boardColumns()
	layout := m.boardLayout(columns)
	pos := m.nav.GetPosition(columns)

	opts := board.Options{
		Cursor: board.Cursor{Column: pos.Column, Task: pos.Task},
		Now:    m.clock,
	}
	if m.drag.Dragging() {
		opts.DragTaskID = m.drag.TaskID()
		opts.DropTarget = m.drag.Provisional()
	}

	return board.Render(columns, layout, opts, m.categories(), m.styles)
}

// renderHeader shows the app name, the view tabs and the task count
func (m Model) renderHeader() string {
	left := m.styles.AppName.Render(appName)
	if m.version != "" {
		left += m.styles.Tab.Render(m.version)
	}

	tabs := make([]string, 0, 2)
	for _, view := range []domain.ViewMode{domain.ViewList, domain.ViewKanban} {
		label := "List"
		if view == domain.ViewKanban {
			label = "Kanban"
		}
		if view == m.viewMode() {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	left = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", strings.Join(tabs, ""))

	right := m.taskCount()
	if m.workspaces != nil {
		if ws := m.workspaces.FindByDir(m.session.DataDir); ws != nil {
			right = ws.Name + " · " + right
		}
	}

	// Header has one cell of padding on each side
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	content := left
	if gap > 0 {
		content = left + strings.Repeat(" ", gap) + right
	}
	return m.styles.Header.Width(m.width).MaxHeight(headerHeight).Render(content)
}

func (m Model) taskCount() string {
	total := len(m.tasks().List())
	visible := len(m.visibleTasks())
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	if visible != total {
		return fmt.Sprintf("%d of %d %s", visible, total, noun)
	}
	return fmt.Sprintf("%d %s", total, noun)
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 || m.width == 0 {
		return ""
	}
	view := toast.New(m.styles).Render(m.toasts, m.width)
	if view == "" {
		return ""
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, view)
}

func (m Model) renderStatusBar() string {
	sb := statusbar.New(m.editor.GetMode(), m.viewMode(), m.width, m.styles).WithInfo(m.statusInfo())
	if !m.config.UI.ShowHelpBar {
		sb = sb.WithoutHints()
	}
	return sb.Render()
}

// statusInfo describes the operation in progress or the active filters
func (m Model) statusInfo() string {
	if m.switching {
		return m.spinner.View() + " Opening workspace..."
	}
	if m.drag.Dragging() {
		return "→ " + m.drag.Provisional().Label()
	}

	var parts []string
	filter := m.editor.GetFilter()
	if filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", filter.Search))
	}
	if filter.Category != "" && filter.Category != domain.FilterAll {
		parts = append(parts, "category: "+m.categories().Label(filter.Category))
	}
	if filter.Status != "" && filter.Status != domain.FilterAll && m.viewMode() == domain.ViewList {
		parts = append(parts, "status: "+domain.Status(filter.Status).Label())
	}
	if sort := m.editor.GetSort(); sort.Field != "" {
		dir := "↑"
		if sort.Order == domain.SortDesc {
			dir = "↓"
		}
		parts = append(parts, "sort: "+string(sort.Field)+" "+dir)
	}
	return strings.Join(parts, " · ")
}
