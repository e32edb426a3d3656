package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuItemDisabled is the disabled menu item style
	MenuItemDisabled lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// MenuKeyDisabled is the style for disabled keybinding hints
	MenuKeyDisabled lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// MenuHeader is the style for menu section headers
	MenuHeader lipgloss.Style

	// Form fields
	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldError        lipgloss.Style

	// Badge renders a category label on its color
	Badge func(label, hex string) string
}

// New creates overlay styles from the application theme
func New() *Styles {
	return FromTheme(styles.New())
}

// FromTheme derives overlay styles from s so menus and the board share colors
func FromTheme(s *styles.Styles) *Styles {
	return &Styles{
		Overlay:          s.Overlay,
		Title:            s.OverlayTitle,
		MenuItem:         s.MenuItem,
		MenuItemActive:   s.MenuItemActive,
		MenuItemDisabled: s.MenuItemDisabled,
		MenuKey:          s.MenuKey,
		MenuKeyDisabled: lipgloss.NewStyle().
			Foreground(styles.Surface2).
			Bold(true),
		Separator: s.Separator,
		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),
		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Subtext1).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(styles.Teal).
			Width(12).
			Align(lipgloss.Right),
		FieldLabelFocused: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Width(12).
			Align(lipgloss.Right).
			Bold(true),
		FieldError: lipgloss.NewStyle().
			Foreground(styles.Red).
			PaddingLeft(14),

		Badge: s.Badge,
	}
}
