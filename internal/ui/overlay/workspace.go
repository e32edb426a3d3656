package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/config"
)

// WorkspaceSelectedMsg is sent when a workspace is chosen to switch to
type WorkspaceSelectedMsg struct {
	Workspace config.Workspace
}

// WorkspaceUpdatedMsg reports the result of a registry change
type WorkspaceUpdatedMsg struct {
	Message string
	Err     error
}

// WorkspaceSelector is an overlay for switching and managing workspaces
type WorkspaceSelector struct {
	registry *config.WorkspaceRegistry
	current  string
	cursor   int
	styles   *Styles
}

// NewWorkspaceSelector creates the selector. current is the data directory
// in use so it can be marked and protected from removal.
func NewWorkspaceSelector(registry *config.WorkspaceRegistry, current string) *WorkspaceSelector {
	return &WorkspaceSelector{
		registry: registry,
		current:  current,
		styles:   New(),
	}
}

// Init initializes the overlay
func (m *WorkspaceSelector) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *WorkspaceSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, closeCmd

	case "j", "down":
		if m.cursor < len(m.registry.Workspaces)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter":
		if w, ok := m.selected(); ok {
			return m, emit(WorkspaceSelectedMsg{Workspace: w})
		}

	case "d":
		if w, ok := m.selected(); ok {
			return m, m.setAsDefault(w)
		}

	case "x":
		if w, ok := m.selected(); ok {
			return m, m.remove(w)
		}
	}

	return m, nil
}

func (m *WorkspaceSelector) selected() (config.Workspace, bool) {
	if m.cursor < 0 || m.cursor >= len(m.registry.Workspaces) {
		return config.Workspace{}, false
	}
	return m.registry.Workspaces[m.cursor], true
}

func (m *WorkspaceSelector) setAsDefault(w config.Workspace) tea.Cmd {
	if err := m.registry.SetDefault(w.Name); err != nil {
		return emit(WorkspaceUpdatedMsg{Err: err})
	}
	return saveRegistry(m.registry, w.Name+" is now the default workspace")
}

func (m *WorkspaceSelector) remove(w config.Workspace) tea.Cmd {
	if w.DataDir == m.current {
		return emit(WorkspaceUpdatedMsg{Message: "Cannot remove the workspace in use"})
	}
	if err := m.registry.Remove(w.Name); err != nil {
		return emit(WorkspaceUpdatedMsg{Err: err})
	}
	if m.cursor >= len(m.registry.Workspaces) && m.cursor > 0 {
		m.cursor--
	}
	return saveRegistry(m.registry, "Removed workspace "+w.Name)
}

func saveRegistry(reg *config.WorkspaceRegistry, message string) tea.Cmd {
	return func() tea.Msg {
		if err := config.SaveWorkspaceRegistry(reg); err != nil {
			return WorkspaceUpdatedMsg{Err: err}
		}
		return WorkspaceUpdatedMsg{Message: message}
	}
}

// View renders the selector
func (m *WorkspaceSelector) View() string {
	var b strings.Builder

	if len(m.registry.Workspaces) == 0 {
		b.WriteString(m.styles.MenuItem.Render("No workspaces registered"))
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("Add one with: peregrinno workspaces add <name> <dir>"))
		return b.String()
	}

	for i, w := range m.registry.Workspaces {
		style := m.styles.MenuItem
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		line := style.Render(w.Name)
		if w.Name == m.registry.DefaultWorkspace {
			line += " " + m.styles.MenuKey.Render("[default]")
		}
		if w.DataDir == m.current {
			line += " " + m.styles.MenuKey.Render("[in use]")
		}

		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(m.styles.MenuItemDisabled.Render("  " + w.DataDir))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("enter: switch • d: set default • x: remove • esc: close"))

	return b.String()
}

// Title returns the overlay title
func (m *WorkspaceSelector) Title() string {
	return "Workspaces"
}

// Size returns the overlay dimensions
func (m *WorkspaceSelector) Size() (width, height int) {
	return 70, max(10, len(m.registry.Workspaces)*2+6)
}
