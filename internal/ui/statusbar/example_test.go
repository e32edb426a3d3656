package statusbar_test

import (
	"fmt"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/types"
	"github.com/peregrinno/todo/internal/ui/statusbar"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// Example demonstrates how to use the StatusBar
func Example() {
	style := styles.New()

	// Create a status bar in normal mode on the list view
	sb := statusbar.New(types.ModeNormal, domain.ViewList, 80, style)

	// Render it (output will include ANSI codes for styling)
	rendered := sb.Render()

	fmt.Println(len(rendered) > 0)
	// Output: true
}

// ExampleGetHints shows how to get hints for different modes
func ExampleGetHints() {
	fmt.Println(statusbar.GetHints(types.ModeMove, domain.ViewKanban))
	// Output: h/l: column  Enter: drop  Esc: cancel
}
