// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/peregrinno/todo/internal/config"
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/kanban"
	"github.com/peregrinno/todo/internal/services/editor"
	"github.com/peregrinno/todo/internal/services/navigation"
	"github.com/peregrinno/todo/internal/store"
	"github.com/peregrinno/todo/internal/types"
	"github.com/peregrinno/todo/internal/ui/list"
	"github.com/peregrinno/todo/internal/ui/overlay"
	"github.com/peregrinno/todo/internal/ui/styles"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeMove   = types.ModeMove
	ModeDrag   = types.ModeDrag
	ModeSearch = types.ModeSearch
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Session is one opened data directory: the stores and the backend behind them
type Session struct {
	Tasks      *store.TaskStore
	Categories *store.CategoryStore
	DataDir    string
	Close      func() error
}

// OpenFunc opens the stores for a data directory. Used when switching workspaces.
type OpenFunc func(ctx context.Context, dataDir string) (*Session, error)

// Options configures a Model
type Options struct {
	Config     *config.Config
	ConfigPath string // file the settings overlay writes to; empty disables saving
	Session    *Session
	Workspaces *config.WorkspaceRegistry
	Open       OpenFunc
	Logger     *slog.Logger
	Version    string
	Now        func() time.Time
}

// Model is the main application state
type Model struct {
	ctx context.Context

	// Data
	session *Session

	// Navigation (kanban cursor)
	nav *navigation.Service

	// Editor state (mode, filter, sort)
	editor *editor.Service

	// Drag-and-drop state machine shared by mouse and keyboard moves
	drag *kanban.Controller

	// List view
	list *list.View

	// UI state
	overlayStack *overlay.Stack
	toasts       []Toast

	// Terminal size
	width  int
	height int

	styles *styles.Styles

	// Workspace switching
	switching  bool
	spinner    spinner.Model
	workspaces *config.WorkspaceRegistry
	open       OpenFunc

	// Store change notifications
	changes     chan struct{}
	unsubscribe []func()

	config     *config.Config
	configPath string
	version    string
	logger     *slog.Logger
	now        func() time.Time
	clock      time.Time
}

// New creates the application model around an opened session
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	st := styles.New()
	m := Model{
		ctx:          context.Background(),
		session:      opts.Session,
		nav:          navigation.NewService(),
		editor:       editor.NewService(),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       st,
		spinner:      s,
		workspaces:   opts.Workspaces,
		open:         opts.Open,
		changes:      make(chan struct{}, 1),
		config:       cfg,
		configPath:   opts.ConfigPath,
		version:      opts.Version,
		logger:       logger,
		now:          now,
		clock:        now(),
	}
	m.drag = kanban.NewController(m.session.Tasks, logger)
	m.list = list.New(nil, m.session.Categories, st, 0, 0)
	m.subscribe()
	m.refresh()
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		tickEvery(time.Second),
	)
}

// Close drops store subscriptions and closes the current session
func (m Model) Close() error {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	if m.session != nil && m.session.Close != nil {
		return m.session.Close()
	}
	return nil
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.refresh()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.switching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.clock = time.Time(msg)
		m.toasts = types.PruneToasts(m.toasts, m.clock)
		return m, tickEvery(time.Second)

	case storeChangedMsg:
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.popOverlay()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.ConfirmResult:
		m.popOverlay()
		return m.handleConfirm(msg)

	case overlay.TaskSubmittedMsg:
		m.popOverlay()
		return m.handleTaskSubmitted(msg)

	case overlay.TaskActionMsg:
		m.popOverlay()
		return m.handleTaskAction(msg)

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(len(m.visibleTasks()))
		}
		return m, nil

	case overlay.FilterChangedMsg:
		m.editor.SetCategoryFilter(msg.Category)
		m.editor.SetStatusFilter(msg.Status)
		return m, nil

	case overlay.SortChangedMsg:
		*m.editor.GetSort() = msg.Sort
		return m, nil

	case overlay.JumpSelectedMsg:
		m.popOverlay()
		m.selectTask(msg.TaskID)
		return m, nil

	case overlay.CategorySubmittedMsg:
		return m.handleCategorySubmitted(msg)

	case overlay.CategoryDeleteRequestMsg:
		category, ok := m.categories().FindByID(msg.ID)
		if !ok {
			return m, nil
		}
		dialog := overlay.NewConfirmDialog(
			"Delete category",
			fmt.Sprintf("Delete %q? Tasks keep the identifier %q.", category.Name, category.Value),
			subjectCategory+category.ID,
		)
		return m, m.overlayStack.Push(dialog)

	case overlay.SettingChangedMsg:
		return m.handleSettingChanged(msg)

	case overlay.EditorClosedMsg:
		return m.handleEditorClosed(msg)

	case overlay.WorkspaceSelectedMsg:
		m.popOverlay()
		return m.switchWorkspace(msg.Workspace)

	case overlay.WorkspaceUpdatedMsg:
		if msg.Err != nil {
			m.addToast(ToastError, msg.Err.Error())
		} else if msg.Message != "" {
			m.addToast(ToastSuccess, msg.Message)
		}
		return m, nil

	case workspaceOpenedMsg:
		return m.handleWorkspaceOpened(msg)
	}

	// Anything else (cursor blinks, etc.) goes to the active overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// Message types

type tickMsg time.Time

type storeChangedMsg struct{}

type workspaceOpenedMsg struct {
	workspace config.Workspace
	session   *Session
	err       error
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForChange blocks until a store reports a mutation
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

// subscribe registers the change channel with the session's stores
func (m *Model) subscribe() {
	ch := m.changes
	notify := func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	m.unsubscribe = []func(){
		m.session.Tasks.Subscribe(notify),
		m.session.Categories.Subscribe(notify),
	}
}

func (m Model) tasks() *store.TaskStore          { return m.session.Tasks }
func (m Model) categories() *store.CategoryStore { return m.session.Categories }

// viewMode is the persisted presentation mode
func (m Model) viewMode() domain.ViewMode {
	return m.tasks().ViewMode()
}

// boardColumns partitions the visible tasks. While a card is held its
// preview (with the provisional status) replaces the stored task.
func (m Model) boardColumns() []kanban.Column {
	tasks := m.editor.BoardTasks(m.tasks().List())
	if preview, ok := m.drag.Preview(); ok {
		for i := range tasks {
			if tasks[i].ID == preview.ID {
				tasks[i] = preview
				break
			}
		}
	}
	return kanban.Partition(tasks)
}

// visibleTasks returns the tasks shown by the current view
func (m Model) visibleTasks() []domain.Task {
	if m.viewMode() == domain.ViewKanban {
		return m.editor.BoardTasks(m.tasks().List())
	}
	return m.editor.ListTasks(m.tasks().List())
}

// currentTask returns the task under the cursor of the current view
func (m Model) currentTask() (domain.Task, bool) {
	if m.viewMode() == domain.ViewKanban {
		return m.nav.GetCurrentTask(m.boardColumns())
	}
	return m.list.Current()
}

// selectTask moves both cursors to the task with the given id
func (m *Model) selectTask(id string) {
	m.nav.JumpToTaskByID(m.boardColumns(), id)
	for i, t := range m.editor.ListTasks(m.tasks().List()) {
		if t.ID == id {
			m.list.SetTasks(m.editor.ListTasks(m.tasks().List()))
			m.list.SetCursor(i)
			return
		}
	}
}

// refresh re-derives the list view from the stores and the current size
func (m *Model) refresh() {
	m.list.SetTasks(m.editor.ListTasks(m.tasks().List()))
	m.list.SetNow(m.clock)
	m.list.SetDimensions(m.width, m.mainHeight())
}

// categoryOptions lists built-in then custom categories for pickers
func (m Model) categoryOptions() []overlay.CategoryOption {
	custom := m.categories().List()
	options := make([]overlay.CategoryOption, 0, len(domain.BuiltinCategories)+len(custom))
	for _, b := range domain.BuiltinCategories {
		options = append(options, overlay.CategoryOption{Slug: b.Slug, Label: b.Label, Color: b.Color})
	}
	for _, c := range custom {
		options = append(options, overlay.CategoryOption{Slug: c.Value, Label: c.Name, Color: c.Color})
	}
	return options
}

// categoryOption resolves a task's category for display
func (m Model) categoryOption(slug string) overlay.CategoryOption {
	return overlay.CategoryOption{
		Slug:  slug,
		Label: m.categories().Label(slug),
		Color: m.categories().ResolveColor(slug),
	}
}

// popOverlay closes the top overlay and leaves search mode once the
// search bar is gone
func (m *Model) popOverlay() {
	m.overlayStack.Pop()
	if m.editor.GetMode() == ModeSearch {
		if _, ok := m.overlayStack.Current().(*overlay.SearchOverlay); !ok {
			m.editor.EnterNormal()
		}
	}
}

func (m *Model) toastTTL() time.Duration {
	return time.Duration(m.config.UI.ToastSeconds) * time.Second
}

// addToast shows a notification. Errors stay up twice as long.
func (m *Model) addToast(level ToastLevel, message string) {
	ttl := m.toastTTL()
	if level == ToastError || level == ToastWarning {
		ttl *= 2
	}
	m.toasts = append(m.toasts, types.NewToast(level, message, m.clock, ttl))
}

// reportErr turns a store error into a toast. Persistence failures are
// warnings since the change is kept in memory.
func (m *Model) reportErr(err error) {
	if err == nil {
		return
	}
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		m.logger.Warn("persistence failed", "error", err)
		m.addToast(ToastWarning, "Changes kept in memory, not saved: "+storageErr.Err.Error())
		return
	}
	m.logger.Debug("operation rejected", "error", err)
	m.addToast(ToastError, err.Error())
}

// applied reports whether a store mutation took effect in memory
func applied(err error) bool {
	if err == nil {
		return true
	}
	var storageErr *domain.StorageError
	return errors.As(err, &storageErr)
}

func (m Model) quit() tea.Cmd {
	m.logger.Info("quitting")
	return tea.Quit
}
