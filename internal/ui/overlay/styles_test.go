package overlay

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyles(t *testing.T) {
	s := New()
	require.NotNil(t, s)

	tests := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Overlay", s.Overlay},
		{"Title", s.Title},
		{"MenuItem", s.MenuItem},
		{"MenuItemActive", s.MenuItemActive},
		{"MenuItemDisabled", s.MenuItemDisabled},
		{"MenuKey", s.MenuKey},
		{"MenuKeyDisabled", s.MenuKeyDisabled},
		{"Separator", s.Separator},
		{"Footer", s.Footer},
		{"MenuHeader", s.MenuHeader},
		{"FieldError", s.FieldError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, ansi.Strip(tt.style.Render("test")), "test")
		})
	}
}

func TestFieldLabelsAlign(t *testing.T) {
	s := New()

	plain := ansi.Strip(s.FieldLabel.Render("Title"))
	focused := ansi.Strip(s.FieldLabelFocused.Render("Title"))

	assert.Equal(t, 12, lipgloss.Width(plain))
	assert.Equal(t, lipgloss.Width(plain), lipgloss.Width(focused))
}

func TestBadge(t *testing.T) {
	s := New()
	require.NotNil(t, s.Badge)

	assert.Contains(t, ansi.Strip(s.Badge("Work", "#3b82f6")), "Work")
}
