package kanban

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinno/todo/internal/domain"
)

type update struct {
	id    string
	patch domain.TaskPatch
}

type fakeSource struct {
	tasks   map[string]domain.Task
	updates []update
	err     error
}

func newFakeSource(tasks ...domain.Task) *fakeSource {
	f := &fakeSource{tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeSource) FindByID(id string) (domain.Task, bool) {
	t, ok := f.tasks[id]
	return t, ok
}

func (f *fakeSource) Update(_ context.Context, id string, patch domain.TaskPatch) error {
	f.updates = append(f.updates, update{id: id, patch: patch})
	if t, ok := f.tasks[id]; ok {
		f.tasks[id] = patch.Apply(t)
	}
	return f.err
}

func task(id string, s domain.Status) domain.Task {
	return domain.Task{ID: id, Title: id, Status: s}
}

func TestPartition(t *testing.T) {
	tasks := []domain.Task{
		task("a", domain.StatusDone),
		task("b", domain.StatusPending),
		task("c", domain.StatusInProgress),
		task("d", domain.StatusPending),
		task("e", "archived"),
	}

	columns := Partition(tasks)

	require.Len(t, columns, 3)
	assert.Equal(t, domain.StatusPending, columns[0].Status)
	assert.Equal(t, domain.StatusInProgress, columns[1].Status)
	assert.Equal(t, domain.StatusDone, columns[2].Status)
	assert.Equal(t, []string{"b", "d"}, taskIDs(columns[0].Tasks))
	assert.Equal(t, []string{"c"}, taskIDs(columns[1].Tasks))
	assert.Equal(t, []string{"a"}, taskIDs(columns[2].Tasks))
	assert.Equal(t, "In Progress", columns[1].Title())
}

func TestPartition_Empty(t *testing.T) {
	columns := Partition(nil)

	require.Len(t, columns, 3)
	for _, c := range columns {
		assert.NotNil(t, c.Tasks)
		assert.Empty(t, c.Tasks)
	}
}

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestController_DropCommits(t *testing.T) {
	tests := []struct {
		name        string
		target      DropTarget
		wantUpdates int
		wantStatus  domain.Status
	}{
		{name: "column to done", target: ColumnTarget(domain.StatusDone), wantUpdates: 1, wantStatus: domain.StatusDone},
		{name: "card in progress", target: CardTarget("other"), wantUpdates: 1, wantStatus: domain.StatusInProgress},
		{name: "same column", target: ColumnTarget(domain.StatusPending), wantUpdates: 0, wantStatus: domain.StatusPending},
		{name: "own card", target: CardTarget("t1"), wantUpdates: 0, wantStatus: domain.StatusPending},
		{name: "outside", target: NoTarget, wantUpdates: 0, wantStatus: domain.StatusPending},
		{name: "unknown card", target: CardTarget("ghost"), wantUpdates: 0, wantStatus: domain.StatusPending},
		{name: "invalid column", target: ColumnTarget("archived"), wantUpdates: 0, wantStatus: domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource(task("t1", domain.StatusPending), task("other", domain.StatusInProgress))
			c := NewController(src, nil)

			require.True(t, c.Start("t1"))
			outcome := c.Drop(context.Background(), tt.target)

			assert.Len(t, src.updates, tt.wantUpdates)
			assert.Equal(t, tt.wantUpdates == 1, outcome.Moved)
			assert.Equal(t, tt.wantStatus, src.tasks["t1"].Status)
			assert.Equal(t, Idle, c.State())
			if outcome.Moved {
				assert.Equal(t, "Task moved to "+tt.wantStatus.Label(), outcome.Message)
				require.NotNil(t, src.updates[0].patch.Status)
				assert.Nil(t, src.updates[0].patch.Title, "only the status changes")
			}
		})
	}
}

func TestController_StartUnknownStaysIdle(t *testing.T) {
	c := NewController(newFakeSource(), nil)

	assert.False(t, c.Start("missing"))
	assert.Equal(t, Idle, c.State())

	outcome := c.Drop(context.Background(), ColumnTarget(domain.StatusDone))
	assert.False(t, outcome.Moved)
}

func TestController_OverAndPreview(t *testing.T) {
	src := newFakeSource(task("t1", domain.StatusPending), task("t2", domain.StatusDone))
	c := NewController(src, nil)
	require.True(t, c.Start("t1"))

	preview, ok := c.Preview()
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, preview.Status)

	c.Over(ColumnTarget(domain.StatusInProgress))
	assert.Equal(t, domain.StatusInProgress, c.Provisional())

	c.Over(CardTarget("t2"))
	preview, _ = c.Preview()
	assert.Equal(t, domain.StatusDone, preview.Status)

	c.Over(NoTarget)
	assert.Equal(t, domain.StatusDone, c.Provisional(), "leaving the board keeps the last column")

	assert.Empty(t, src.updates, "hovering never mutates")
	assert.Equal(t, domain.StatusPending, src.tasks["t1"].Status)
}

func TestController_Cancel(t *testing.T) {
	src := newFakeSource(task("t1", domain.StatusPending))
	c := NewController(src, nil)
	require.True(t, c.Start("t1"))
	c.Over(ColumnTarget(domain.StatusDone))

	c.Cancel()

	assert.Equal(t, Idle, c.State())
	assert.Empty(t, src.updates)
	_, ok := c.Preview()
	assert.False(t, ok)
}

func TestController_KeyboardMove(t *testing.T) {
	src := newFakeSource(task("t1", domain.StatusPending))
	c := NewController(src, nil)
	require.True(t, c.Start("t1"))

	c.MoveBy(-1)
	assert.Equal(t, domain.StatusPending, c.Provisional(), "clamped at the first column")
	c.MoveBy(1)
	c.MoveBy(1)
	c.MoveBy(1)
	assert.Equal(t, domain.StatusDone, c.Provisional(), "clamped at the last column")

	outcome := c.DropProvisional(context.Background())

	assert.True(t, outcome.Moved)
	assert.Equal(t, "Task moved to Done", outcome.Message)
	require.Len(t, src.updates, 1)
	assert.Equal(t, domain.StatusDone, *src.updates[0].patch.Status)
}

func TestController_PersistenceErrorStillMoves(t *testing.T) {
	src := newFakeSource(task("t1", domain.StatusPending))
	src.err = errors.New("quota exceeded")
	c := NewController(src, nil)
	require.True(t, c.Start("t1"))

	outcome := c.Drop(context.Background(), ColumnTarget(domain.StatusInProgress))

	assert.True(t, outcome.Moved)
	assert.Error(t, outcome.Err)
	assert.Equal(t, Idle, c.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "committed", Committed.String())
}
