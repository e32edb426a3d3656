package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/storage"
)

// Option configures a store
type Option func(*options)

type options struct {
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the id generator
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TaskStore owns the task collection and the current view mode.
// Tasks are kept newest-first.
type TaskStore struct {
	mu        sync.RWMutex
	tasks     *storage.Value[[]domain.Task]
	viewMode  *storage.Value[domain.ViewMode]
	opts      options
	listeners listeners
}

// NewTaskStore loads tasks and the view mode from backend
func NewTaskStore(ctx context.Context, backend storage.Backend, opts ...Option) *TaskStore {
	o := buildOptions(opts)

	s := &TaskStore{
		tasks: storage.Load(ctx, backend, storage.KeyTasks, []domain.Task{}, o.logger),
		viewMode: storage.LoadValidated(ctx, backend, storage.KeyViewMode, domain.ViewList,
			domain.ViewMode.Valid, o.logger),
		opts: o,
	}

	if s.tasks.Get() == nil {
		// A stored "null" decodes to a nil slice
		s.tasks.Reset([]domain.Task{})
	}

	return s
}

func (s *TaskStore) mustBeInitialized() {
	if s.tasks == nil {
		panic("store: TaskStore used without NewTaskStore")
	}
}

// List returns a copy of all tasks, newest first
func (s *TaskStore) List() []domain.Task {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.tasks.Get()
	out := make([]domain.Task, len(current))
	copy(out, current)
	return out
}

// FindByID returns the task with the given id
func (s *TaskStore) FindByID(id string) (domain.Task, bool) {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Add creates a task from input and stores it at the front of the list.
// The returned task is valid even when the write failed.
func (s *TaskStore) Add(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	s.mustBeInitialized()

	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if !input.Status.Valid() {
		return domain.Task{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, input.Status)
	}
	if input.Category == "" {
		input.Category = domain.CategoryOther
	}

	now := s.opts.now().UTC()
	task := domain.Task{
		ID:          s.opts.newID(),
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      input.Status,
		DueDate:     input.DueDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	current := s.tasks.Get()
	next := make([]domain.Task, 0, len(current)+1)
	next = append(next, task)
	next = append(next, current...)
	err := s.tasks.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("task added", "id", task.ID, "status", task.Status)
	s.listeners.notify()

	return task, err
}

// Update merges patch into the task with the given id and bumps UpdatedAt.
// An unknown id is a no-op.
func (s *TaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	s.mustBeInitialized()

	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *patch.Status)
	}
	if patch.DueDate != nil {
		due := patch.DueDate.UTC()
		patch.DueDate = &due
	}

	s.mu.Lock()
	current := s.tasks.Get()
	idx := indexOfTask(current, id)
	if idx < 0 {
		s.mu.Unlock()
		s.opts.logger.Debug("update of unknown task ignored", "id", id)
		return nil
	}

	next := make([]domain.Task, len(current))
	copy(next, current)
	updated := patch.Apply(next[idx])
	updated.UpdatedAt = s.opts.now().UTC()
	next[idx] = updated
	err := s.tasks.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("task updated", "id", id, "status", updated.Status)
	s.listeners.notify()

	return err
}

// Remove deletes the task with the given id. An unknown id is a no-op.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	s.mustBeInitialized()

	s.mu.Lock()
	current := s.tasks.Get()
	idx := indexOfTask(current, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := make([]domain.Task, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	err := s.tasks.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("task removed", "id", id)
	s.listeners.notify()

	return err
}

// ViewMode returns the persisted presentation mode
func (s *TaskStore) ViewMode() domain.ViewMode {
	s.mustBeInitialized()
	return s.viewMode.Get()
}

// SetViewMode persists the presentation mode
func (s *TaskStore) SetViewMode(ctx context.Context, mode domain.ViewMode) error {
	s.mustBeInitialized()

	if !mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidViewMode, mode)
	}
	if s.viewMode.Get() == mode {
		return nil
	}

	err := s.viewMode.Set(ctx, mode)
	s.listeners.notify()
	return err
}

// Subscribe registers fn to run after every mutation. The returned
// function removes the subscription.
func (s *TaskStore) Subscribe(fn Listener) func() {
	s.mustBeInitialized()
	return s.listeners.add(fn)
}

func indexOfTask(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
