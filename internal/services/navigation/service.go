// Package navigation provides cursor and navigation state management
package navigation

import (
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/kanban"
)

// Position represents a computed position in the board
type Position struct {
	Column int  // 0=Pending, 1=InProgress, 2=Done
	Task   int  // Index within the column
	Valid  bool // Whether the position is valid
}

// Cursor tracks the selected task by ID so it survives filtering and moves
type Cursor struct {
	TaskID         string // Primary state: selected task ID
	FallbackColumn int    // Column to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []kanban.Column) Position {
	if c.TaskID != "" {
		for colIdx, col := range columns {
			for taskIdx, task := range col.Tasks {
				if task.ID == c.TaskID {
					return Position{Column: colIdx, Task: taskIdx, Valid: true}
				}
			}
		}
	}

	// No task selected or it was filtered out: first task of the fallback column
	col := c.FallbackColumn
	if col < 0 || col >= len(columns) {
		col = 0
	}
	if col < len(columns) && len(columns[col].Tasks) > 0 {
		return Position{Column: col, Task: 0, Valid: true}
	}
	return Position{Column: col, Task: 0, Valid: false}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID string, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// MoveVertical moves up or down within a column, returns new task ID
func (c *Cursor) MoveVertical(columns []kanban.Column, delta int) string {
	pos := c.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return c.TaskID
	}

	col := columns[pos.Column]
	newIdx := clamp(pos.Task+delta, 0, len(col.Tasks)-1)
	c.TaskID = col.Tasks[newIdx].ID
	c.FallbackColumn = pos.Column
	return c.TaskID
}

// MoveHorizontal moves left or right to the adjacent column, keeping the row
// when the target column is long enough
func (c *Cursor) MoveHorizontal(columns []kanban.Column, delta int) string {
	pos := c.FindPosition(columns)
	return c.JumpToColumnRow(columns, pos.Column+delta, pos.Task)
}

// JumpToColumnRow moves to a column, selecting the task at row or the last one
func (c *Cursor) JumpToColumnRow(columns []kanban.Column, colIdx, row int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	colIdx = clamp(colIdx, 0, len(columns)-1)
	c.FallbackColumn = colIdx

	tasks := columns[colIdx].Tasks
	if len(tasks) == 0 {
		c.TaskID = ""
		return c.TaskID
	}
	c.TaskID = tasks[clamp(row, 0, len(tasks)-1)].ID
	return c.TaskID
}

// JumpToStart moves to first task in current column
func (c *Cursor) JumpToStart(columns []kanban.Column) string {
	pos := c.FindPosition(columns)
	return c.JumpToColumnRow(columns, pos.Column, 0)
}

// JumpToEnd moves to last task in current column
func (c *Cursor) JumpToEnd(columns []kanban.Column) string {
	pos := c.FindPosition(columns)
	if pos.Column >= len(columns) {
		return c.TaskID
	}
	return c.JumpToColumnRow(columns, pos.Column, len(columns[pos.Column].Tasks)-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []kanban.Column) Position {
	return s.cursor.FindPosition(columns)
}

// GetCurrentTask returns the currently selected task
func (s *Service) GetCurrentTask(columns []kanban.Column) (domain.Task, bool) {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return domain.Task{}, false
	}

	col := columns[pos.Column]
	if pos.Task >= len(col.Tasks) {
		return domain.Task{}, false
	}
	return col.Tasks[pos.Task], true
}

// GetCurrentStatus returns the status for the current column
func (s *Service) GetCurrentStatus(columns []kanban.Column) domain.Status {
	pos := s.cursor.FindPosition(columns)
	if pos.Column < 0 || pos.Column >= len(columns) {
		return domain.StatusPending
	}
	return columns[pos.Column].Status
}

// MoveDown moves cursor down in current column
func (s *Service) MoveDown(columns []kanban.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in current column
func (s *Service) MoveUp(columns []kanban.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to left column
func (s *Service) MoveLeft(columns []kanban.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to right column
func (s *Service) MoveRight(columns []kanban.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// GotoTop moves cursor to first task in column
func (s *Service) GotoTop(columns []kanban.Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to last task in column
func (s *Service) GotoBottom(columns []kanban.Column) {
	s.cursor.JumpToEnd(columns)
}

// GotoColumn moves cursor to the column at index
func (s *Service) GotoColumn(columns []kanban.Column, index int) {
	s.cursor.JumpToColumnRow(columns, index, 0)
}

// SelectTask directly sets the cursor to a specific task
func (s *Service) SelectTask(taskID string, column int) {
	s.cursor.SetTask(taskID, column)
}

// JumpToTaskByID finds and selects a task by ID
func (s *Service) JumpToTaskByID(columns []kanban.Column, taskID string) bool {
	for colIdx, col := range columns {
		for _, task := range col.Tasks {
			if task.ID == taskID {
				s.cursor.SetTask(task.ID, colIdx)
				return true
			}
		}
	}
	return false
}
