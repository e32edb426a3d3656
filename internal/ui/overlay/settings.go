package overlay

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SettingType represents the type of a setting
type SettingType int

const (
	// SettingToggle is a boolean on/off setting (Space/Enter to toggle)
	SettingToggle SettingType = iota
	// SettingChoice is a multiple-choice setting (Left/Right to cycle)
	SettingChoice
	// SettingAction is an action that triggers something (Enter to activate)
	SettingAction
	// SettingSeparator is a visual separator (not selectable)
	SettingSeparator
)

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key     string
	Label   string
	Type    SettingType
	Value   any
	Choices []string // For SettingChoice type
}

// SettingChangedMsg is emitted when a toggle or choice changes value
type SettingChangedMsg struct {
	Key   string
	Value any
}

// EditorClosedMsg is sent after the external editor exits
type EditorClosedMsg struct {
	Path string
	Err  error
}

// SettingsOverlay is a settings menu overlay
type SettingsOverlay struct {
	items  []SettingItem
	cursor int
	styles *Styles
}

// NewSettingsOverlay creates a new settings overlay with the given items
func NewSettingsOverlay(items []SettingItem) *SettingsOverlay {
	menu := &SettingsOverlay{
		items:  items,
		styles: New(),
	}
	// Position cursor on first selectable item
	menu.moveCursorToNextSelectable()
	return menu
}

// Separator returns a non-selectable divider item
func Separator() SettingItem {
	return SettingItem{Label: separatorLabel, Type: SettingSeparator}
}

// Value returns the current value of the item with key
func (m *SettingsOverlay) Value(key string) (any, bool) {
	for _, item := range m.items {
		if item.Key == key && item.Type != SettingSeparator {
			return item.Value, true
		}
	}
	return nil, false
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, closeCmd

		case "j", "down":
			m.moveCursorDown()
			return m, nil

		case "k", "up":
			m.moveCursorUp()
			return m, nil

		case "h", "left":
			return m, m.decrementChoice()

		case "l", "right":
			return m, m.incrementChoice()

		case " ", "space":
			return m, m.toggleOrActivate()

		case "enter":
			return m, m.activateCurrent()
		}
	}

	return m, nil
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	var b strings.Builder

	for i, item := range m.items {
		// Separators
		if item.Type == SettingSeparator {
			b.WriteString(m.styles.Separator.Render(item.Label))
			b.WriteString("\n")
			continue
		}

		// Determine style based on cursor position
		var style, keyStyle = m.styles.MenuItem, m.styles.MenuKey
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		// Format line based on type
		var line string
		switch item.Type {
		case SettingToggle:
			valueStr := "off"
			if v, ok := item.Value.(bool); ok && v {
				valueStr = "on"
			}
			line = fmt.Sprintf("%s %s [%s]",
				keyStyle.Render("["+item.Key+"]"),
				style.Render(item.Label),
				style.Render(valueStr),
			)

		case SettingChoice:
			valueStr := ""
			if v, ok := item.Value.(string); ok {
				valueStr = v
			}
			line = fmt.Sprintf("%s %s <%s>",
				keyStyle.Render("["+item.Key+"]"),
				style.Render(item.Label),
				style.Render(valueStr),
			)

		case SettingAction:
			line = fmt.Sprintf("%s %s",
				keyStyle.Render("["+item.Key+"]"),
				style.Render(item.Label),
			)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	// Add footer hint
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("j/k: navigate • h/l: change choice • space/enter: toggle/activate • esc: close"))

	return b.String()
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	// Width: enough for longest setting line
	// Height: number of items + footer + padding
	return 60, len(m.items) + 6
}

// moveCursorDown moves the cursor to the next selectable item
func (m *SettingsOverlay) moveCursorDown() {
	for i := 1; i <= len(m.items); i++ {
		next := (m.cursor + i) % len(m.items)
		if m.items[next].Type != SettingSeparator {
			m.cursor = next
			return
		}
	}
}

// moveCursorUp moves the cursor to the previous selectable item
func (m *SettingsOverlay) moveCursorUp() {
	for i := 1; i <= len(m.items); i++ {
		prev := (m.cursor - i + len(m.items)) % len(m.items)
		if m.items[prev].Type != SettingSeparator {
			m.cursor = prev
			return
		}
	}
}

// moveCursorToNextSelectable moves cursor to first selectable item from current position
func (m *SettingsOverlay) moveCursorToNextSelectable() {
	for i := 0; i < len(m.items); i++ {
		if m.items[i].Type != SettingSeparator {
			m.cursor = i
			return
		}
	}
}

// toggleOrActivate toggles a toggle setting or activates an action
func (m *SettingsOverlay) toggleOrActivate() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	item := &m.items[m.cursor]

	switch item.Type {
	case SettingToggle:
		// Toggle boolean value
		if v, ok := item.Value.(bool); ok {
			item.Value = !v
			return emit(SettingChangedMsg{Key: item.Key, Value: item.Value})
		}
		return nil

	case SettingAction:
		return emit(SelectionMsg{Key: item.Key})

	default:
		return nil
	}
}

// activateCurrent activates the current item (for actions or toggles)
func (m *SettingsOverlay) activateCurrent() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	item := &m.items[m.cursor]

	switch item.Type {
	case SettingToggle:
		return m.toggleOrActivate()

	case SettingAction:
		return m.toggleOrActivate()

	default:
		return nil
	}
}

// incrementChoice increments the choice value (wrapping around)
func (m *SettingsOverlay) incrementChoice() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	item := &m.items[m.cursor]

	if item.Type != SettingChoice {
		return nil
	}

	if len(item.Choices) == 0 {
		return nil
	}

	// Find current value index
	currentIdx := -1
	if v, ok := item.Value.(string); ok {
		for i, choice := range item.Choices {
			if choice == v {
				currentIdx = i
				break
			}
		}
	}

	// Move to next choice (wrap around)
	nextIdx := (currentIdx + 1) % len(item.Choices)
	item.Value = item.Choices[nextIdx]

	return emit(SettingChangedMsg{Key: item.Key, Value: item.Value})
}

// decrementChoice decrements the choice value (wrapping around)
func (m *SettingsOverlay) decrementChoice() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	item := &m.items[m.cursor]

	if item.Type != SettingChoice {
		return nil
	}

	if len(item.Choices) == 0 {
		return nil
	}

	// Find current value index
	currentIdx := -1
	if v, ok := item.Value.(string); ok {
		for i, choice := range item.Choices {
			if choice == v {
				currentIdx = i
				break
			}
		}
	}

	// Move to previous choice (wrap around)
	prevIdx := (currentIdx - 1 + len(item.Choices)) % len(item.Choices)
	item.Value = item.Choices[prevIdx]

	return emit(SettingChangedMsg{Key: item.Key, Value: item.Value})
}

// OpenInEditor suspends the program and opens path in $EDITOR
func OpenInEditor(path string) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("failed to open editor: %w", err)
		}
		return EditorClosedMsg{Path: path, Err: err}
	})
}
