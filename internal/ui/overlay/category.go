package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/domain"
)

// CategorySubmittedMsg is emitted when the category form passes validation.
// ID is empty for a new category.
type CategorySubmittedMsg struct {
	ID    string
	Name  string
	Color string
}

// CategoryDeleteRequestMsg asks the app to confirm deleting a category
type CategoryDeleteRequestMsg struct {
	ID   string
	Name string
}

type categoryMode int

const (
	categoryList categoryMode = iota
	categoryForm
)

// CategoryManager lists the built-in categories and edits custom ones
type CategoryManager struct {
	custom []domain.Category
	cursor int
	mode   categoryMode

	editID     string
	name       textinput.Model
	color      textinput.Model
	colorFocus bool
	errs       domain.ValidationErrors

	styles *Styles
}

// NewCategoryManager creates the manager for the given custom categories
func NewCategoryManager(custom []domain.Category) *CategoryManager {
	name := textinput.New()
	name.Placeholder = "Category name"
	name.CharLimit = 40
	name.Width = 30

	color := textinput.New()
	color.Placeholder = domain.DefaultCategoryColor
	color.CharLimit = 7
	color.Width = 10

	return &CategoryManager{
		custom: custom,
		name:   name,
		color:  color,
		styles: New(),
	}
}

// SetCategories replaces the custom list after a store change
func (m *CategoryManager) SetCategories(custom []domain.Category) {
	m.custom = custom
	if m.cursor >= len(custom) {
		m.cursor = max(0, len(custom)-1)
	}
}

// Editing reports whether the form is open
func (m *CategoryManager) Editing() bool {
	return m.mode == categoryForm
}

// Init initializes the overlay
func (m *CategoryManager) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *CategoryManager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode == categoryForm {
		return m, m.updateForm(keyMsg)
	}
	return m, m.updateList(keyMsg)
}

func (m *CategoryManager) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		return closeCmd

	case "j", "down":
		if m.cursor < len(m.custom)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "a", "n":
		return m.openForm(domain.Category{})

	case "e", "enter":
		if c, ok := m.current(); ok {
			return m.openForm(c)
		}

	case "d", "x":
		if c, ok := m.current(); ok {
			return emit(CategoryDeleteRequestMsg{ID: c.ID, Name: c.Name})
		}
	}
	return nil
}

func (m *CategoryManager) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return nil

	case "tab", "shift+tab", "up", "down":
		m.setColorFocus(!m.colorFocus)
		return nil

	case "enter":
		if !m.colorFocus {
			m.setColorFocus(true)
			return nil
		}
		return m.submit()

	case "ctrl+s":
		return m.submit()
	}

	var cmd tea.Cmd
	if m.colorFocus {
		m.color, cmd = m.color.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return cmd
}

func (m *CategoryManager) current() (domain.Category, bool) {
	if m.cursor < 0 || m.cursor >= len(m.custom) {
		return domain.Category{}, false
	}
	return m.custom[m.cursor], true
}

func (m *CategoryManager) openForm(c domain.Category) tea.Cmd {
	m.mode = categoryForm
	m.editID = c.ID
	m.errs = nil
	m.name.SetValue(c.Name)
	m.name.CursorEnd()
	m.color.SetValue(c.Color)
	m.color.CursorEnd()
	m.setColorFocus(false)
	return textinput.Blink
}

func (m *CategoryManager) closeForm() {
	m.mode = categoryList
	m.name.Blur()
	m.color.Blur()
}

func (m *CategoryManager) setColorFocus(color bool) {
	m.colorFocus = color
	if color {
		m.name.Blur()
		m.color.Focus()
	} else {
		m.color.Blur()
		m.name.Focus()
	}
}

func (m *CategoryManager) submit() tea.Cmd {
	name := strings.TrimSpace(m.name.Value())
	color := strings.ToLower(strings.TrimSpace(m.color.Value()))
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	m.errs = nil
	if domain.Slugify(name) == "" {
		m.errs = append(m.errs, &domain.ValidationError{Field: "name", Message: "name is required"})
	}
	if !domain.ValidColor(color) {
		m.errs = append(m.errs, &domain.ValidationError{Field: "color", Message: "color must be a #rrggbb hex value"})
	}
	if len(m.errs) > 0 {
		return nil
	}

	msg := CategorySubmittedMsg{ID: m.editID, Name: name, Color: color}
	m.closeForm()
	return emit(msg)
}

// View renders the overlay
func (m *CategoryManager) View() string {
	if m.mode == categoryForm {
		return m.viewForm()
	}

	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render("Built-in"))
	b.WriteString("\n")
	for _, c := range domain.BuiltinCategories {
		b.WriteString("  " + m.styles.Badge(c.Label, c.Color))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MenuHeader.Render("Custom"))
	b.WriteString("\n")
	if len(m.custom) == 0 {
		b.WriteString(m.styles.MenuItemDisabled.Render("  No custom categories"))
		b.WriteString("\n")
	}
	for i, c := range m.custom {
		marker, style := "  ", m.styles.MenuItem
		if i == m.cursor {
			marker, style = "▶ ", m.styles.MenuItemActive
		}
		b.WriteString(marker + m.styles.Badge(c.Name, c.Color) + " " + style.Render(c.Value+" "+c.Color))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("a: add • e: edit • d: delete • Esc: close"))
	return b.String()
}

func (m *CategoryManager) viewForm() string {
	var b strings.Builder

	label := func(text string, focused bool) string {
		if focused {
			return m.styles.FieldLabelFocused.Render(text)
		}
		return m.styles.FieldLabel.Render(text)
	}

	b.WriteString(label("Name", !m.colorFocus) + "  " + m.name.View())
	b.WriteString("\n")
	if e := m.errs.Field("name"); e != "" {
		b.WriteString(m.styles.FieldError.Render(e))
		b.WriteString("\n")
	}

	b.WriteString(label("Color", m.colorFocus) + "  " + m.color.View())
	if preview := m.previewColor(); preview != "" {
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			name = "preview"
		}
		b.WriteString("  " + m.styles.Badge(name, preview))
	}
	b.WriteString("\n")
	if e := m.errs.Field("color"); e != "" {
		b.WriteString(m.styles.FieldError.Render(e))
		b.WriteString("\n")
	}

	if m.editID != "" {
		b.WriteString(m.styles.MenuItemDisabled.Render("The identifier is kept when renaming"))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("Tab: switch field • Enter: save • Esc: back"))
	return b.String()
}

func (m *CategoryManager) previewColor() string {
	v := strings.TrimSpace(m.color.Value())
	if v == "" {
		return domain.DefaultCategoryColor
	}
	if domain.ValidColor(v) {
		return v
	}
	return ""
}

// Title returns the overlay title
func (m *CategoryManager) Title() string {
	switch {
	case m.mode == categoryForm && m.editID != "":
		return "Edit Category"
	case m.mode == categoryForm:
		return "New Category"
	default:
		return "Categories"
	}
}

// Size returns the overlay dimensions
func (m *CategoryManager) Size() (width, height int) {
	return 56, len(domain.BuiltinCategories) + max(1, len(m.custom)) + 10
}
