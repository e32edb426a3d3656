package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
)

// FilterChangedMsg is emitted whenever a filter criterion changes
type FilterChangedMsg struct {
	Category string
	Status   string
}

// filterMode represents the current selection mode
type filterMode string

const (
	filterModeNormal   filterMode = "normal"
	filterModeCategory filterMode = "category"
	filterModeStatus   filterMode = "status"
)

// FilterMenu is a menu overlay for category and status filtering
type FilterMenu struct {
	category   string
	status     string
	categories []CategoryOption
	cursor     int // category picker position, 0 = all
	mode       filterMode
	styles     *Styles
}

// NewFilterMenu creates a filter menu showing the current criteria
func NewFilterMenu(filter *domain.Filter, categories []CategoryOption) *FilterMenu {
	return &FilterMenu{
		category:   orAll(filter.Category),
		status:     orAll(filter.Status),
		categories: categories,
		mode:       filterModeNormal,
		styles:     New(),
	}
}

func orAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case filterModeCategory:
		return m.handleCategoryMode(keyMsg)
	case filterModeStatus:
		return m.handleStatusMode(keyMsg)
	default:
		return m.handleNormalMode(keyMsg)
	}
}

// handleNormalMode handles keys in normal mode
func (m *FilterMenu) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		return m, closeCmd

	case "c":
		m.mode = filterModeCategory
		m.cursor = 0
		for i, c := range m.categories {
			if c.Slug == m.category {
				m.cursor = i + 1
			}
		}
		return m, nil

	case "s":
		m.mode = filterModeStatus
		return m, nil

	case "x":
		m.category = domain.FilterAll
		m.status = domain.FilterAll
		return m, m.changed()
	}

	return m, nil
}

// handleCategoryMode handles keys while picking a category
func (m *FilterMenu) handleCategoryMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = filterModeNormal
		return m, nil

	case "j", "down":
		if m.cursor < len(m.categories) {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "enter", " ":
		m.category = domain.FilterAll
		if m.cursor > 0 {
			m.category = m.categories[m.cursor-1].Slug
		}
		m.mode = filterModeNormal
		return m, m.changed()
	}

	return m, nil
}

// handleStatusMode handles keys in status selection mode
func (m *FilterMenu) handleStatusMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := ""
	switch msg.String() {
	case "esc":
		m.mode = filterModeNormal
		return m, nil
	case "a":
		next = domain.FilterAll
	case "p":
		next = string(domain.StatusPending)
	case "i":
		next = string(domain.StatusInProgress)
	case "d":
		next = string(domain.StatusDone)
	default:
		return m, nil
	}

	m.status = next
	m.mode = filterModeNormal
	return m, m.changed()
}

func (m *FilterMenu) changed() tea.Cmd {
	return emit(FilterChangedMsg{Category: m.category, Status: m.status})
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeading("c", "Category", m.mode == filterModeCategory))
	b.WriteString(m.styles.MenuItemActive.Render(m.categoryLabel()))
	b.WriteString("\n")
	if m.mode == filterModeCategory {
		b.WriteString(m.renderCategoryPicker())
	}

	b.WriteString(m.renderHeading("s", "Status", m.mode == filterModeStatus))
	b.WriteString(m.renderStatusOptions())
	b.WriteString("\n")

	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(m.styles.MenuKey.Render("[x]") + " " + m.styles.MenuItem.Render("Clear filters"))
	b.WriteString("\n")

	hint := "Esc/Enter to close"
	switch m.mode {
	case filterModeCategory:
		hint = "j/k to move, Enter to pick, Esc to cancel"
	case filterModeStatus:
		hint = "a/p/i/d to pick, Esc to cancel"
	}
	b.WriteString(m.styles.Footer.Render(hint))

	return b.String()
}

func (m *FilterMenu) renderHeading(key, label string, selecting bool) string {
	keyStyle := m.styles.MenuKey
	if selecting {
		keyStyle = m.styles.MenuItemActive
	}
	return keyStyle.Render(fmt.Sprintf("[%s]", key)) + " " + m.styles.MenuItem.Render(label+": ")
}

func (m *FilterMenu) categoryLabel() string {
	if m.category == domain.FilterAll {
		return "All"
	}
	for _, c := range m.categories {
		if c.Slug == m.category {
			return c.Label
		}
	}
	return domain.Humanize(m.category)
}

func (m *FilterMenu) renderCategoryPicker() string {
	var b strings.Builder
	entries := append([]CategoryOption{{Slug: domain.FilterAll, Label: "All"}}, m.categories...)
	for i, c := range entries {
		prefix := "    "
		style := m.styles.MenuItem
		if i == m.cursor {
			prefix = "  ▶ "
			style = m.styles.MenuItemActive
		}
		label := style.Render(c.Label)
		if c.Color != "" {
			label = m.styles.Badge(c.Label, c.Color)
		}
		b.WriteString(prefix + label + "\n")
	}
	return b.String()
}

func (m *FilterMenu) renderStatusOptions() string {
	options := []struct {
		key   string
		label string
		value string
	}{
		{"a", "All", domain.FilterAll},
		{"p", domain.StatusPending.Label(), string(domain.StatusPending)},
		{"i", domain.StatusInProgress.Label(), string(domain.StatusInProgress)},
		{"d", domain.StatusDone.Label(), string(domain.StatusDone)},
	}

	parts := make([]string, len(options))
	for i, opt := range options {
		indicator := " "
		style := m.styles.MenuItem
		if opt.value == m.status {
			indicator = "●"
			style = m.styles.MenuItemActive
		}
		parts[i] = style.Render(fmt.Sprintf("[%s%s=%s]", indicator, opt.key, opt.label))
	}
	return strings.Join(parts, " ")
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	return "Filter Tasks"
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	height = 10
	if m.mode == filterModeCategory {
		height += len(m.categories) + 1
	}
	return 60, height
}
