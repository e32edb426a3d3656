package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		scroll:     0,
		viewHeight: 20, // Default height, will be updated based on Size()
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "?":
			return h, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if h.scroll < h.maxScroll {
				h.scroll++
			}
			return h, nil

		case "k", "up":
			if h.scroll > 0 {
				h.scroll--
			}
			return h, nil

		case "g":
			// Jump to top
			h.scroll = 0
			return h, nil

		case "G":
			// Jump to bottom
			h.scroll = h.maxScroll
			return h, nil
		}
	}

	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	categories := h.getCategories()

	// Build full content
	var content strings.Builder
	for i, cat := range categories {
		if i > 0 {
			content.WriteString("\n")
		}

		// Category header
		content.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		content.WriteString("\n")

		// Bindings in this category
		for _, binding := range cat.Bindings {
			keyStyle := h.styles.MenuKey
			descStyle := h.styles.MenuItem

			line := "  " + keyStyle.Render(binding.Key) + "  " + descStyle.Render(binding.Description)
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	// Calculate scroll limits
	lines := strings.Split(content.String(), "\n")
	totalLines := len(lines)
	h.maxScroll = max(0, totalLines-h.viewHeight)

	// Apply scroll offset
	start := h.scroll
	end := min(h.scroll+h.viewHeight, totalLines)

	visibleLines := lines[start:end]
	result := strings.Join(visibleLines, "\n")

	// Add scroll indicator if needed
	if h.maxScroll > 0 {
		scrollInfo := h.styles.Footer.Render(
			lipgloss.JoinHorizontal(
				lipgloss.Left,
				"[",
				h.styles.MenuKey.Render("j/k"),
				" to scroll, ",
				h.styles.MenuKey.Render("g/G"),
				" to jump]",
			),
		)
		result += "\n\n" + scrollInfo
	}

	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	h.viewHeight = 20
	return 52, 24
}

// getCategories returns all keybinding categories
func (h *HelpOverlay) getCategories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "h/l", Description: "Move between columns"},
				{Key: "j/k", Description: "Move up/down"},
				{Key: "g/G", Description: "Jump to top/bottom"},
				{Key: "t", Description: "Jump to a task by label"},
				{Key: "Click", Description: "Select a task"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "n", Description: "New task"},
				{Key: "e", Description: "Edit task"},
				{Key: "d", Description: "Delete task"},
				{Key: "1/2/3", Description: "Set Pending/In Progress/Done"},
				{Key: "Enter", Description: "Show task details"},
				{Key: "Space", Description: "Open action menu"},
			},
		},
		{
			Name: "Moving",
			Bindings: []KeyBinding{
				{Key: "m", Description: "Pick up task (kanban)"},
				{Key: "h/l", Description: "Carry to column"},
				{Key: "Enter", Description: "Drop"},
				{Key: "Esc", Description: "Cancel move"},
				{Key: "Drag", Description: "Drag a card with the mouse"},
			},
		},
		{
			Name: "View",
			Bindings: []KeyBinding{
				{Key: "Tab", Description: "Toggle list/kanban view"},
				{Key: "/", Description: "Search"},
				{Key: "f", Description: "Filter menu"},
				{Key: "s", Description: "Sort menu"},
				{Key: "c", Description: "Manage categories"},
				{Key: "Esc", Description: "Clear search and filters"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: ",", Description: "Settings"},
				{Key: "w", Description: "Workspaces"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}
