package board

import "github.com/peregrinno/todo/internal/kanban"

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-2)
	Task   int // Task index within column
}

// Row geometry shared by Render and HitTest. Everything is relative to
// the top-left corner of the board.
const (
	headerLines = 2 // column title plus its bottom margin
	borderLines = 1 // top border of the column box
	cardLines   = 4 // card border plus title and meta lines
	cardStride  = cardLines + 1
	cardsTop    = headerLines + borderLines
)

// Layout is the geometry of one rendered frame
type Layout struct {
	Width       int
	Height      int
	ColumnWidth int
	Visible     int    // cards that fit in a column
	Offsets     [3]int // first visible card per column
}

// NewLayout computes the geometry for columns at the given size, scrolling
// the cursor column so the cursor card is visible
func NewLayout(columns []kanban.Column, cursor Cursor, width, height int) Layout {
	l := Layout{Width: width, Height: height}
	if len(columns) == 0 {
		return l
	}

	l.ColumnWidth = width / len(columns)
	inner := height - headerLines - 2*borderLines
	l.Visible = inner / cardStride
	if l.Visible < 1 {
		l.Visible = 1
	}

	if cursor.Column >= 0 && cursor.Column < len(l.Offsets) && cursor.Task >= l.Visible {
		l.Offsets[cursor.Column] = cursor.Task - l.Visible + 1
	}
	return l
}

// offset returns the scroll offset for column i
func (l Layout) offset(i int) int {
	if i < 0 || i >= len(l.Offsets) {
		return 0
	}
	return l.Offsets[i]
}
