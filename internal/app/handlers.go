package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/peregrinno/todo/internal/config"
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/kanban"
	"github.com/peregrinno/todo/internal/services/navigation"
	"github.com/peregrinno/todo/internal/ui/list"
	"github.com/peregrinno/todo/internal/ui/overlay"
)

// Settings overlay keys
const (
	settingHelpBar   = "helpbar"
	settingMouse     = "mouse"
	settingToastTime = "toast"

	actionCategories = "categories"
	actionWorkspaces = "workspaces"
	actionEditConfig = "editor"
)

var toastChoices = []string{"2", "3", "5", "8"}

func (m Model) handleConfirm(msg overlay.ConfirmResult) (Model, tea.Cmd) {
	if !msg.Confirmed {
		return m, nil
	}

	switch {
	case strings.HasPrefix(msg.Subject, subjectTask):
		id := strings.TrimPrefix(msg.Subject, subjectTask)
		err := m.tasks().Remove(m.ctx, id)
		if applied(err) {
			m.addToast(ToastSuccess, "Task deleted")
		}
		m.reportErr(err)

	case strings.HasPrefix(msg.Subject, subjectCategory):
		id := strings.TrimPrefix(msg.Subject, subjectCategory)
		err := m.categories().Remove(m.ctx, id)
		if applied(err) {
			m.addToast(ToastSuccess, "Category deleted")
		}
		m.reportErr(err)
		m.refreshCategoryManager()
	}
	return m, nil
}

func (m Model) handleTaskSubmitted(msg overlay.TaskSubmittedMsg) (Model, tea.Cmd) {
	if msg.TaskID == "" {
		task, err := m.tasks().Add(m.ctx, msg.Input)
		if applied(err) {
			m.addToast(ToastSuccess, "Task created")
			m.selectTask(task.ID)
		}
		m.reportErr(err)
		return m, nil
	}

	err := m.tasks().Update(m.ctx, msg.TaskID, domain.PatchFromInput(msg.Input))
	if applied(err) {
		m.addToast(ToastSuccess, "Task updated")
		m.selectTask(msg.TaskID)
	}
	m.reportErr(err)
	return m, nil
}

func (m Model) handleTaskAction(msg overlay.TaskActionMsg) (Model, tea.Cmd) {
	task, ok := m.tasks().FindByID(msg.TaskID)
	if !ok {
		return m, nil
	}

	switch msg.Action {
	case overlay.ActionEdit:
		return m, m.overlayStack.Push(overlay.NewEditTaskForm(task, m.categoryOptions()))
	case overlay.ActionDelete:
		return m, m.overlayStack.Push(confirmDeleteTask(task))
	case overlay.ActionDetails:
		return m, m.overlayStack.Push(overlay.NewDetailPanel(task, m.categoryOption(task.Category), m.clock))
	case overlay.ActionMoveLeft:
		return m.shiftStatus(task.ID, -1)
	case overlay.ActionMoveRight:
		return m.shiftStatus(task.ID, 1)
	}

	if status, ok := msg.Status(); ok {
		return m.setStatus(task.ID, status)
	}
	return m, nil
}

func (m Model) handleCategorySubmitted(msg overlay.CategorySubmittedMsg) (Model, tea.Cmd) {
	if msg.ID == "" {
		category, err := m.categories().Add(m.ctx, msg.Name, msg.Color)
		if applied(err) {
			m.addToast(ToastSuccess, fmt.Sprintf("Category %q created", category.Name))
		}
		m.reportErr(err)
	} else {
		name, color := msg.Name, msg.Color
		err := m.categories().Update(m.ctx, msg.ID, domain.CategoryPatch{Name: &name, Color: &color})
		if applied(err) {
			m.addToast(ToastSuccess, fmt.Sprintf("Category %q updated", name))
		}
		m.reportErr(err)
	}
	m.refreshCategoryManager()
	return m, nil
}

// refreshCategoryManager reloads the manager if it is the open overlay
func (m *Model) refreshCategoryManager() {
	if manager, ok := m.overlayStack.Current().(*overlay.CategoryManager); ok {
		manager.SetCategories(m.categories().List())
	}
}

// handleSelection handles the action entries of the settings overlay
func (m Model) handleSelection(msg overlay.SelectionMsg) (Model, tea.Cmd) {
	switch msg.Key {
	case actionCategories:
		return m, m.overlayStack.Push(overlay.NewCategoryManager(m.categories().List()))

	case actionWorkspaces:
		return m.openWorkspaces()

	case actionEditConfig:
		if m.configPath == "" {
			m.addToast(ToastWarning, "No config file to edit")
			return m, nil
		}
		if _, err := os.Stat(m.configPath); errors.Is(err, os.ErrNotExist) {
			if err := config.SaveConfig(m.config, m.configPath); err != nil {
				m.addToast(ToastError, err.Error())
				return m, nil
			}
		}
		return m, overlay.OpenInEditor(m.configPath)
	}
	return m, nil
}

func (m Model) settingsItems() []overlay.SettingItem {
	items := []overlay.SettingItem{
		{Key: settingHelpBar, Label: "Show help bar", Type: overlay.SettingToggle, Value: m.config.UI.ShowHelpBar},
		{Key: settingMouse, Label: "Mouse support", Type: overlay.SettingToggle, Value: !m.config.UI.DisableMouse},
		{
			Key:     settingToastTime,
			Label:   "Toast seconds",
			Type:    overlay.SettingChoice,
			Value:   strconv.Itoa(m.config.UI.ToastSeconds),
			Choices: toastChoices,
		},
		overlay.Separator(),
		{Key: actionCategories, Label: "Manage categories", Type: overlay.SettingAction},
		{Key: actionWorkspaces, Label: "Workspaces", Type: overlay.SettingAction},
	}
	if m.configPath != "" {
		items = append(items, overlay.SettingItem{Key: actionEditConfig, Label: "Edit config file", Type: overlay.SettingAction})
	}
	return items
}

func (m Model) handleSettingChanged(msg overlay.SettingChangedMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.Key {
	case settingHelpBar:
		if v, ok := msg.Value.(bool); ok {
			m.config.UI.ShowHelpBar = v
		}
	case settingMouse:
		if v, ok := msg.Value.(bool); ok {
			m.config.UI.DisableMouse = !v
			cmd = mouseCmd(v)
		}
	case settingToastTime:
		if v, ok := msg.Value.(string); ok {
			if secs, err := strconv.Atoi(v); err == nil {
				m.config.UI.ToastSeconds = secs
			}
		}
	default:
		return m, nil
	}

	if err := m.saveUISettings(); err != nil {
		m.logger.Error("failed to save settings", "error", err)
		m.addToast(ToastError, "Settings not saved: "+err.Error())
	}
	return m, cmd
}

// saveUISettings writes the UI section into the config file, leaving the
// rest of the file as it is on disk
func (m Model) saveUISettings() error {
	if m.configPath == "" {
		return nil
	}
	onDisk, err := config.LoadFile(m.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		onDisk = config.DefaultConfig()
	}
	onDisk.UI = m.config.UI
	return config.SaveConfig(onDisk, m.configPath)
}

func mouseCmd(enabled bool) tea.Cmd {
	if enabled {
		return tea.EnableMouseCellMotion
	}
	return tea.DisableMouse
}

// handleEditorClosed reloads the config file after it was edited
func (m Model) handleEditorClosed(msg overlay.EditorClosedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.addToast(ToastError, msg.Err.Error())
		return m, nil
	}

	cfg, err := config.LoadFile(msg.Path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		m.logger.Warn("edited config rejected", "path", msg.Path, "error", err)
		m.addToast(ToastError, err.Error())
		return m, nil
	}

	mouseChanged := cfg.UI.DisableMouse != m.config.UI.DisableMouse
	storageChanged := cfg.Storage != m.config.Storage
	m.config.UI = cfg.UI
	m.config.Log = cfg.Log

	if storageChanged {
		m.addToast(ToastInfo, "Storage changes apply on restart")
	} else {
		m.addToast(ToastSuccess, "Config reloaded")
	}

	// The settings overlay shows stale values now
	if _, ok := m.overlayStack.Current().(*overlay.SettingsOverlay); ok {
		m.overlayStack.Pop()
	}

	if mouseChanged {
		return m, mouseCmd(!cfg.UI.DisableMouse)
	}
	return m, nil
}

func (m Model) openWorkspaces() (Model, tea.Cmd) {
	if m.workspaces == nil {
		m.addToast(ToastWarning, "Workspaces are unavailable")
		return m, nil
	}
	if len(m.workspaces.Workspaces) == 0 {
		m.addToast(ToastInfo, "No workspaces yet. Add one with: peregrinno workspace add <name> <dir>")
		return m, nil
	}
	return m, m.overlayStack.Push(overlay.NewWorkspaceSelector(m.workspaces, m.session.DataDir))
}

// switchWorkspace opens the workspace's stores in the background
func (m Model) switchWorkspace(ws config.Workspace) (Model, tea.Cmd) {
	if ws.DataDir == m.session.DataDir {
		m.addToast(ToastInfo, "Already in workspace "+ws.Name)
		return m, nil
	}
	if m.open == nil {
		m.addToast(ToastError, "Switching workspaces is not supported by this backend")
		return m, nil
	}

	m.switching = true
	open, ctx := m.open, m.ctx
	m.logger.Info("switching workspace", "name", ws.Name, "dir", ws.DataDir)

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		session, err := open(ctx, ws.DataDir)
		return workspaceOpenedMsg{workspace: ws, session: session, err: err}
	})
}

// handleWorkspaceOpened swaps the stores once the new session is open
func (m Model) handleWorkspaceOpened(msg workspaceOpenedMsg) (Model, tea.Cmd) {
	m.switching = false
	if msg.err != nil {
		m.logger.Error("failed to open workspace", "name", msg.workspace.Name, "error", msg.err)
		m.addToast(ToastError, fmt.Sprintf("Cannot open %s: %v", msg.workspace.Name, msg.err))
		return m, nil
	}

	if err := m.Close(); err != nil {
		m.logger.Warn("failed to close previous workspace", "error", err)
	}

	m.session = msg.session
	m.drag = kanban.NewController(m.session.Tasks, m.logger)
	m.nav = navigation.NewService()
	m.list = list.New(nil, m.session.Categories, m.styles, m.width, m.mainHeight())
	m.editor.ClearFilters()
	m.editor.EnterNormal()
	m.subscribe()

	m.addToast(ToastSuccess, "Switched to workspace "+msg.workspace.Name)
	return m, nil
}
