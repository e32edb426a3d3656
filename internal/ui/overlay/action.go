package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
)

// Task action keys
const (
	ActionEdit       = "e"
	ActionDelete     = "d"
	ActionDetails    = "enter"
	ActionMoveLeft   = "h"
	ActionMoveRight  = "l"
	ActionPending    = "1"
	ActionInProgress = "2"
	ActionDone       = "3"
)

// Action represents a menu action
type Action struct {
	Key     string
	Label   string
	Enabled bool
}

// TaskActionMsg is emitted when an action is chosen for a task
type TaskActionMsg struct {
	TaskID string
	Action string
}

// Status returns the status a status-setting action targets
func (m TaskActionMsg) Status() (domain.Status, bool) {
	switch m.Action {
	case ActionPending:
		return domain.StatusPending, true
	case ActionInProgress:
		return domain.StatusInProgress, true
	case ActionDone:
		return domain.StatusDone, true
	}
	return "", false
}

const separatorLabel = "───────────────────"

// ActionMenu is a menu overlay for task actions
type ActionMenu struct {
	task    domain.Task
	actions []Action
	cursor  int
	styles  *Styles
}

// NewActionMenu creates a new action menu for the given task
func NewActionMenu(task domain.Task) *ActionMenu {
	menu := &ActionMenu{
		task:   task,
		styles: New(),
	}
	menu.actions = menu.buildActions()
	menu.cursor = -1
	menu.moveCursorDown()
	return menu
}

// buildActions creates the action list based on the task status
func (m *ActionMenu) buildActions() []Action {
	col := m.task.Status.Column()
	return []Action{
		{Key: ActionEdit, Label: "Edit task", Enabled: true},
		{Key: ActionDetails, Label: "Show details", Enabled: true},
		{Key: "", Label: separatorLabel},
		{Key: ActionMoveLeft, Label: "Move left", Enabled: col > 0},
		{Key: ActionMoveRight, Label: "Move right", Enabled: col < len(domain.Statuses)-1},
		{Key: ActionPending, Label: "Set to Pending", Enabled: m.task.Status != domain.StatusPending},
		{Key: ActionInProgress, Label: "Set to In Progress", Enabled: m.task.Status != domain.StatusInProgress},
		{Key: ActionDone, Label: "Set to Done", Enabled: m.task.Status != domain.StatusDone},
		{Key: "", Label: separatorLabel},
		{Key: ActionDelete, Label: "Delete task", Enabled: true},
	}
}

// Init initializes the menu
func (m *ActionMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ActionMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, closeCmd

	case "j", "down":
		m.moveCursorDown()
		return m, nil

	case "k", "up":
		m.moveCursorUp()
		return m, nil

	case "enter":
		return m, m.selectCurrentAction()

	default:
		return m, m.selectByKey(keyMsg.String())
	}
}

// View renders the menu
func (m *ActionMenu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render(truncate(m.task.Title, 32)))
	b.WriteString("\n\n")

	for i, action := range m.actions {
		if action.Key == "" {
			b.WriteString(m.styles.Separator.Render(action.Label))
			b.WriteString("\n")
			continue
		}

		style, keyStyle := m.styles.MenuItem, m.styles.MenuKey
		if !action.Enabled {
			style = m.styles.MenuItemDisabled
			keyStyle = m.styles.MenuKeyDisabled
		} else if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		b.WriteString(keyStyle.Render("["+action.Key+"]") + " " + style.Render(action.Label))
		b.WriteString("\n")
	}

	return b.String()
}

// Title returns the overlay title
func (m *ActionMenu) Title() string {
	return "Actions"
}

// Size returns the overlay dimensions
func (m *ActionMenu) Size() (width, height int) {
	return 38, len(m.actions) + 6
}

// moveCursorDown moves the cursor to the next enabled action
func (m *ActionMenu) moveCursorDown() {
	for i := 1; i <= len(m.actions); i++ {
		next := (m.cursor + i + len(m.actions)) % len(m.actions)
		if m.actions[next].Enabled && m.actions[next].Key != "" {
			m.cursor = next
			return
		}
	}
}

// moveCursorUp moves the cursor to the previous enabled action
func (m *ActionMenu) moveCursorUp() {
	for i := 1; i <= len(m.actions); i++ {
		prev := (m.cursor - i + len(m.actions)) % len(m.actions)
		if m.actions[prev].Enabled && m.actions[prev].Key != "" {
			m.cursor = prev
			return
		}
	}
}

// selectCurrentAction selects the action at the cursor
func (m *ActionMenu) selectCurrentAction() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.actions) {
		return nil
	}
	return m.choose(m.actions[m.cursor])
}

// selectByKey selects an action by its key binding
func (m *ActionMenu) selectByKey(key string) tea.Cmd {
	for _, action := range m.actions {
		if action.Key == key {
			return m.choose(action)
		}
	}
	return nil
}

func (m *ActionMenu) choose(action Action) tea.Cmd {
	if !action.Enabled || action.Key == "" {
		return nil
	}
	return emit(TaskActionMsg{TaskID: m.task.ID, Action: action.Key})
}

// truncate shortens s to width runes with an ellipsis
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
