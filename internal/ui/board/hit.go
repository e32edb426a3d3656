package board

import "github.com/peregrinno/todo/internal/kanban"

// HitTest maps a point relative to the board origin to the element under
// it. Points on a card resolve to the card, other points inside a column
// to the column, and anything else to kanban.NoTarget.
func HitTest(x, y int, columns []kanban.Column, layout Layout) kanban.DropTarget {
	if x < 0 || y < 0 || x >= layout.Width || y >= layout.Height || layout.ColumnWidth <= 0 {
		return kanban.NoTarget
	}

	col := x / layout.ColumnWidth
	if col >= len(columns) {
		return kanban.NoTarget
	}
	column := columns[col]

	row := y - cardsTop
	if row >= 0 && row%cardStride < cardLines {
		slot := row / cardStride
		idx := layout.offset(col) + slot
		if slot < layout.Visible && idx < len(column.Tasks) {
			return kanban.CardTarget(column.Tasks[idx].ID)
		}
	}

	return kanban.ColumnTarget(column.Status)
}
