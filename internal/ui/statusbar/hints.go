package statusbar

import (
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/types"
)

// GetHints returns the keybinding hints for the given mode and view
func GetHints(mode types.Mode, view domain.ViewMode) string {
	switch mode {
	case types.ModeNormal:
		if view == domain.ViewKanban {
			return "h/l: columns  j/k: tasks  m: move  n: new  tab: list  ?: help  q: quit"
		}
		return "j/k: tasks  1/2/3: status  n: new  tab: kanban  ?: help  q: quit"
	case types.ModeMove:
		return "h/l: column  Enter: drop  Esc: cancel"
	case types.ModeDrag:
		return "Release over a column to drop  Esc: cancel"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	default:
		return ""
	}
}
