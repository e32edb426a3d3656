package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/types"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode      types.Mode
	view      domain.ViewMode
	info      string
	hideHints bool
	width     int
	styles    *styles.Styles
}

// New creates a new StatusBar with the given mode, view, width, and styles
func New(mode types.Mode, view domain.ViewMode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		view:   view,
		width:  width,
		styles: styles,
	}
}

// WithInfo sets the right-aligned info text (task counts, active filters)
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// WithoutHints hides the keybinding hints, leaving the mode badge and info
func (sb StatusBar) WithoutHints() StatusBar {
	sb.hideHints = true
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	hints := ""
	if !sb.hideHints {
		hints = GetHints(sb.mode, sb.view)
	}
	hintsRendered := sb.styles.StatusHint.Render(hints)

	var content string
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hintsRendered)
	} else {
		content = modeBadge
	}

	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		gap := sb.width - lipgloss.Width(content) - lipgloss.Width(info) - 2
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), info)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}
