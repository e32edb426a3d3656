package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
)

// SortChangedMsg is emitted after the sort field or direction changes
type SortChangedMsg struct {
	Sort domain.Sort
}

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Label       string
	Field       domain.SortField
	Description string
}

// SortMenu is a menu overlay for sorting configuration
type SortMenu struct {
	sort    domain.Sort
	options []SortOption
	styles  *Styles
}

// NewSortMenu creates a new sort menu starting from the given sort state
func NewSortMenu(sort domain.Sort) *SortMenu {
	return &SortMenu{
		sort:   sort,
		styles: New(),
		options: []SortOption{
			{Key: "c", Label: "Created", Field: domain.SortByCreated, Description: "creation time"},
			{Key: "d", Label: "Due", Field: domain.SortByDue, Description: "due date, undated last"},
			{Key: "u", Label: "Updated", Field: domain.SortByUpdated, Description: "last change"},
			{Key: "t", Label: "Title", Field: domain.SortByTitle, Description: "alphabetical"},
		},
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "esc", "q", "enter":
		return m, closeCmd

	case "0":
		m.sort = domain.Sort{}
		return m, emit(SortChangedMsg{Sort: m.sort})

	default:
		for _, opt := range m.options {
			if opt.Key == key {
				// Toggle handles both field change and direction toggle
				m.sort.Toggle(opt.Field)
				return m, emit(SortChangedMsg{Sort: m.sort})
			}
		}
	}

	return m, nil
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for _, opt := range m.options {
		isActive := m.sort.Field == opt.Field

		keyStyle, labelStyle := m.styles.MenuItem, m.styles.MenuItem
		if isActive {
			keyStyle, labelStyle = m.styles.MenuKey, m.styles.MenuItemActive
		}

		line := keyStyle.Render("["+opt.Key+"]") + " " +
			labelStyle.Render(opt.Label) + " " +
			m.styles.MenuItemDisabled.Render("("+opt.Description+")")

		if isActive {
			arrow := "↑"
			if m.sort.Order == domain.SortDesc {
				arrow = "↓"
			}
			line += " " + m.styles.MenuItemActive.Render("● "+arrow)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.MenuKey.Render("[0]") + " " + m.styles.MenuItem.Render("Newest first (default)"))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("Press same key to toggle direction • Esc to close"))

	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 56, len(m.options) + 6
}
