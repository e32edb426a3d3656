// Package kanban groups tasks into status columns and implements the
// drag-and-drop state machine that moves a task between them.
package kanban

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peregrinno/todo/internal/domain"
)

// Column is one kanban column
type Column struct {
	Status domain.Status
	Tasks  []domain.Task
}

// Title returns the column heading
func (c Column) Title() string {
	return c.Status.Label()
}

// Partition groups tasks into exactly three columns by status, keeping
// the input order inside each column. Tasks with an unknown status are
// not shown.
func Partition(tasks []domain.Task) []Column {
	columns := make([]Column, len(domain.Statuses))
	for i, s := range domain.Statuses {
		columns[i] = Column{Status: s, Tasks: []domain.Task{}}
	}
	for _, t := range tasks {
		if idx := t.Status.Column(); idx >= 0 {
			columns[idx].Tasks = append(columns[idx].Tasks, t)
		}
	}
	return columns
}

// State of the drag controller
type State int

const (
	Idle State = iota
	Dragging
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TargetKind identifies what a pointer is over
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetColumn
	TargetCard
)

// DropTarget is the element under the pointer during a drag
type DropTarget struct {
	Kind   TargetKind
	Status domain.Status // for TargetColumn
	TaskID string        // for TargetCard
}

// ColumnTarget targets a column by status
func ColumnTarget(s domain.Status) DropTarget {
	return DropTarget{Kind: TargetColumn, Status: s}
}

// CardTarget targets the card of a task
func CardTarget(taskID string) DropTarget {
	return DropTarget{Kind: TargetCard, TaskID: taskID}
}

// NoTarget is a release outside any column
var NoTarget = DropTarget{}

// TaskSource is the slice of the task store the controller needs
type TaskSource interface {
	FindByID(id string) (domain.Task, bool)
	Update(ctx context.Context, id string, patch domain.TaskPatch) error
}

// Outcome describes the result of a drop
type Outcome struct {
	Moved   bool
	TaskID  string
	From    domain.Status
	To      domain.Status
	Message string
	Err     error // persistence error; the move is applied in memory
}

// Controller tracks a single drag operation at a time
type Controller struct {
	source TaskSource
	logger *slog.Logger

	state       State
	taskID      string
	origin      domain.Status
	provisional domain.Status
}

// NewController creates an idle controller
func NewController(source TaskSource, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		source: source,
		logger: logger,
	}
}

// State returns the current state
func (c *Controller) State() State { return c.state }

// Dragging reports whether a drag is in progress
func (c *Controller) Dragging() bool { return c.state == Dragging }

// TaskID returns the id of the dragged task, or "" when idle
func (c *Controller) TaskID() string { return c.taskID }

// Provisional returns the column the dragged task would land in
func (c *Controller) Provisional() domain.Status { return c.provisional }

// Start begins dragging taskID. Returns false, staying idle, for an
// unknown task. Starting while already dragging replaces the drag.
func (c *Controller) Start(taskID string) bool {
	task, ok := c.source.FindByID(taskID)
	if !ok || !task.Status.Valid() {
		c.reset()
		return false
	}

	c.state = Dragging
	c.taskID = taskID
	c.origin = task.Status
	c.provisional = task.Status
	c.logger.Debug("drag started", "task_id", taskID, "status", task.Status)
	return true
}

// Over updates the provisional column. Targets that do not resolve to a
// column leave it unchanged.
func (c *Controller) Over(target DropTarget) {
	if c.state != Dragging {
		return
	}
	if s, ok := c.resolve(target); ok {
		c.provisional = s
	}
}

// MoveBy shifts the provisional column left (delta < 0) or right, clamped
// to the board. Used for keyboard moves.
func (c *Controller) MoveBy(delta int) {
	if c.state != Dragging {
		return
	}
	idx := c.provisional.Column() + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(domain.Statuses) {
		idx = len(domain.Statuses) - 1
	}
	c.provisional = domain.Statuses[idx]
}

// Drop ends the drag over target. The task is updated exactly once when
// the target resolves to a column other than the task's original status;
// otherwise nothing changes. The controller is idle afterwards.
func (c *Controller) Drop(ctx context.Context, target DropTarget) Outcome {
	if c.state != Dragging {
		return Outcome{}
	}
	defer c.reset()

	to, ok := c.resolve(target)
	if !ok {
		c.logger.Debug("drop outside board", "task_id", c.taskID)
		return Outcome{TaskID: c.taskID, From: c.origin, To: c.origin}
	}

	outcome := Outcome{TaskID: c.taskID, From: c.origin, To: to}
	if to == c.origin {
		return outcome
	}

	c.state = Committed
	outcome.Err = c.source.Update(ctx, c.taskID, domain.StatusPatch(to))
	outcome.Moved = true
	outcome.Message = "Task moved to " + to.Label()
	c.logger.Info("task moved", "task_id", c.taskID, "from", c.origin, "to", to)

	return outcome
}

// DropProvisional drops onto the current provisional column
func (c *Controller) DropProvisional(ctx context.Context) Outcome {
	return c.Drop(ctx, ColumnTarget(c.provisional))
}

// Cancel abandons the drag without mutating anything
func (c *Controller) Cancel() {
	if c.state == Dragging {
		c.logger.Debug("drag canceled", "task_id", c.taskID)
	}
	c.reset()
}

// Preview returns the dragged task as it would look after the drop
func (c *Controller) Preview() (domain.Task, bool) {
	if c.state != Dragging {
		return domain.Task{}, false
	}
	task, ok := c.source.FindByID(c.taskID)
	if !ok {
		return domain.Task{}, false
	}
	task.Status = c.provisional
	return task, true
}

func (c *Controller) resolve(target DropTarget) (domain.Status, bool) {
	switch target.Kind {
	case TargetColumn:
		return target.Status, target.Status.Valid()
	case TargetCard:
		task, ok := c.source.FindByID(target.TaskID)
		if !ok || !task.Status.Valid() {
			return "", false
		}
		return task.Status, true
	default:
		return "", false
	}
}

func (c *Controller) reset() {
	c.state = Idle
	c.taskID = ""
	c.origin = ""
	c.provisional = ""
}
