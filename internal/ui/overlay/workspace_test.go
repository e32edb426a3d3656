package overlay

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinno/todo/internal/config"
)

func testRegistry(t *testing.T) *config.WorkspaceRegistry {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return &config.WorkspaceRegistry{
		Workspaces: []config.Workspace{
			{Name: "home", DataDir: "/data/home"},
			{Name: "work", DataDir: "/data/work"},
		},
		DefaultWorkspace: "home",
	}
}

func TestWorkspaceSelector_View(t *testing.T) {
	m := NewWorkspaceSelector(testRegistry(t), "/data/work")

	view := ansi.Strip(m.View())

	assert.Contains(t, view, "home [default]")
	assert.Contains(t, view, "work [in use]")
	assert.Contains(t, view, "/data/home")
	assert.Equal(t, "Workspaces", m.Title())
}

func TestWorkspaceSelector_Empty(t *testing.T) {
	m := NewWorkspaceSelector(&config.WorkspaceRegistry{}, "")

	assert.Contains(t, ansi.Strip(m.View()), "No workspaces registered")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestWorkspaceSelector_Select(t *testing.T) {
	m := NewWorkspaceSelector(testRegistry(t), "")
	m.Update(runeKey('j'))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel, ok := find[WorkspaceSelectedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "work", sel.Workspace.Name)
}

func TestWorkspaceSelector_SetDefaultSaves(t *testing.T) {
	reg := testRegistry(t)
	m := NewWorkspaceSelector(reg, "")
	m.Update(runeKey('j'))

	_, cmd := m.Update(runeKey('d'))

	updated, ok := find[WorkspaceUpdatedMsg](collect(cmd))
	require.True(t, ok)
	require.NoError(t, updated.Err)
	assert.Equal(t, "work", reg.DefaultWorkspace)

	base, err := os.UserConfigDir()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(base, "peregrinno", "workspaces.json"))
}

func TestWorkspaceSelector_RemoveProtectsCurrent(t *testing.T) {
	reg := testRegistry(t)
	m := NewWorkspaceSelector(reg, "/data/home")

	_, cmd := m.Update(runeKey('x'))
	updated, _ := find[WorkspaceUpdatedMsg](collect(cmd))
	assert.Contains(t, updated.Message, "in use")
	assert.Len(t, reg.Workspaces, 2)

	m.Update(runeKey('j'))
	_, cmd = m.Update(runeKey('x'))
	updated, _ = find[WorkspaceUpdatedMsg](collect(cmd))
	require.NoError(t, updated.Err)
	assert.Len(t, reg.Workspaces, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestWorkspaceSelector_Close(t *testing.T) {
	_, cmd := NewWorkspaceSelector(testRegistry(t), "").Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, ok := find[CloseOverlayMsg](collect(cmd))
	assert.True(t, ok)
}
