// Package overlay implements the modal dialogs and menus drawn over the
// board and list views.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry is selected
type SelectionMsg struct {
	Key   string
	Value any
}

func closeCmd() tea.Msg { return CloseOverlayMsg{} }

// emit wraps a message in a command
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
