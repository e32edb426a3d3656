package styles

import (
	"strings"
	"testing"

	"github.com/peregrinno/todo/internal/domain"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestStatusBadge(t *testing.T) {
	s := New()

	tests := []struct {
		status domain.Status
		name   string
	}{
		{domain.StatusPending, "pending"},
		{domain.StatusInProgress, "in progress"},
		{domain.StatusDone, "done"},
		{"archived", "unknown status (should use fallback color)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := s.StatusBadge(tt.status).Render(tt.status.Label())
			if !strings.Contains(rendered, tt.status.Label()) {
				t.Errorf("StatusBadge rendered %q, want it to contain %q", rendered, tt.status.Label())
			}
		})
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor(domain.StatusDone) != Green {
		t.Errorf("StatusColor(done) = %s, want %s", StatusColor(domain.StatusDone), Green)
	}
	if StatusColor("archived") != Overlay0 {
		t.Errorf("StatusColor(unknown) = %s, want %s", StatusColor("archived"), Overlay0)
	}
}

func TestBadge(t *testing.T) {
	s := New()

	for _, c := range domain.BuiltinCategories {
		t.Run(c.Slug, func(t *testing.T) {
			rendered := s.Badge(c.Label, c.Color)
			if !strings.Contains(rendered, c.Label) {
				t.Errorf("Badge rendered %q, want it to contain %q", rendered, c.Label)
			}
		})
	}
}

func TestThemeColors(t *testing.T) {
	// Verify colors are defined
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" {
				t.Errorf("%s color is empty", c.name)
			}
			// Catppuccin colors start with #
			if c.color[0] != '#' {
				t.Errorf("%s color doesn't start with #: %s", c.name, c.color)
			}
		})
	}
}
