package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/types"
	"github.com/peregrinno/todo/internal/ui/styles"
)

func TestStatusBar_RenderNormalMode(t *testing.T) {
	tests := []struct {
		name     string
		view     domain.ViewMode
		contains []string
	}{
		{name: "list", view: domain.ViewList, contains: []string{"NORMAL", "1/2/3: status", "tab: kanban"}},
		{name: "kanban", view: domain.ViewKanban, contains: []string{"NORMAL", "h/l: columns", "m: move", "tab: list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(types.ModeNormal, tt.view, 120, styles.New()).Render()

			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("Expected status bar to contain %q, got: %s", want, result)
				}
			}
		})
	}
}

func TestStatusBar_RenderMoveMode(t *testing.T) {
	result := New(types.ModeMove, domain.ViewKanban, 80, styles.New()).Render()

	if !strings.Contains(result, "MOVE") {
		t.Errorf("Expected status bar to contain 'MOVE', got: %s", result)
	}
	if !strings.Contains(result, "Enter: drop") {
		t.Errorf("Expected status bar to contain drop hint, got: %s", result)
	}
}

func TestStatusBar_RenderDragMode(t *testing.T) {
	result := New(types.ModeDrag, domain.ViewKanban, 80, styles.New()).Render()

	if !strings.Contains(result, "DRAG") {
		t.Errorf("Expected status bar to contain 'DRAG', got: %s", result)
	}
}

func TestStatusBar_RenderSearchMode(t *testing.T) {
	result := New(types.ModeSearch, domain.ViewList, 80, styles.New()).Render()

	if !strings.Contains(result, "SEARCH") {
		t.Errorf("Expected status bar to contain 'SEARCH', got: %s", result)
	}
	if !strings.Contains(result, "Type to search") {
		t.Errorf("Expected status bar to contain search hint, got: %s", result)
	}
}

func TestStatusBar_Info(t *testing.T) {
	result := New(types.ModeMove, domain.ViewKanban, 100, styles.New()).WithInfo("3 tasks").Render()

	if !strings.Contains(result, "3 tasks") {
		t.Errorf("Expected status bar to contain info, got: %s", result)
	}
}

func TestStatusBar_FillsWidth(t *testing.T) {
	width := 100
	result := New(types.ModeNormal, domain.ViewList, width, styles.New()).Render()

	if got := lipgloss.Width(result); got != width {
		t.Errorf("Expected rendered width %d, got %d", width, got)
	}
}

func TestGetHints_UnknownMode(t *testing.T) {
	if hints := GetHints(types.Mode(42), domain.ViewList); hints != "" {
		t.Errorf("Expected no hints for unknown mode, got %q", hints)
	}
}

func TestStatusBar_WithoutHints(t *testing.T) {
	result := New(types.ModeNormal, domain.ViewKanban, 100, styles.New()).WithoutHints().Render()

	if strings.Contains(result, "q: quit") {
		t.Errorf("Expected hints to be hidden, got: %s", result)
	}
	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Expected mode badge, got: %s", result)
	}
}
