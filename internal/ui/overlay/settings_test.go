package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSettings() *SettingsOverlay {
	return NewSettingsOverlay([]SettingItem{
		Separator(),
		{Key: "helpbar", Label: "Show help bar", Type: SettingToggle, Value: true},
		{Key: "toast", Label: "Toast seconds", Type: SettingChoice, Value: "3", Choices: []string{"2", "3", "5"}},
		Separator(),
		{Key: "categories", Label: "Manage categories", Type: SettingAction},
	})
}

func TestSettingsOverlay_CursorSkipsSeparators(t *testing.T) {
	m := sampleSettings()
	assert.Equal(t, 1, m.cursor, "starts on the first selectable item")

	m.Update(runeKey('j'))
	m.Update(runeKey('j'))
	assert.Equal(t, 4, m.cursor)

	m.Update(runeKey('j'))
	assert.Equal(t, 1, m.cursor, "wraps")

	m.Update(runeKey('k'))
	assert.Equal(t, 4, m.cursor)
}

func TestSettingsOverlay_Toggle(t *testing.T) {
	m := sampleSettings()

	_, cmd := m.Update(runeKey(' '))

	changed, ok := find[SettingChangedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, SettingChangedMsg{Key: "helpbar", Value: false}, changed)
	v, _ := m.Value("helpbar")
	assert.Equal(t, false, v)
	assert.Contains(t, ansi.Strip(m.View()), "Show help bar [off]")
}

func TestSettingsOverlay_Choice(t *testing.T) {
	m := sampleSettings()
	m.Update(runeKey('j'))

	_, cmd := m.Update(runeKey('l'))
	changed, ok := find[SettingChangedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "5", changed.Value)

	m.Update(runeKey('l'))
	v, _ := m.Value("toast")
	assert.Equal(t, "2", v, "wraps forward")

	m.Update(runeKey('h'))
	v, _ = m.Value("toast")
	assert.Equal(t, "5", v, "wraps backward")
}

func TestSettingsOverlay_ChoiceIgnoredOnToggle(t *testing.T) {
	m := sampleSettings()

	_, cmd := m.Update(runeKey('l'))

	assert.Nil(t, cmd)
}

func TestSettingsOverlay_Action(t *testing.T) {
	m := sampleSettings()
	m.Update(runeKey('k'))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel, ok := find[SelectionMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "categories", sel.Key)
}

func TestSettingsOverlay_Basics(t *testing.T) {
	m := sampleSettings()

	assert.Equal(t, "Settings", m.Title())
	w, h := m.Size()
	assert.Positive(t, w)
	assert.Equal(t, 5+6, h)

	_, ok := m.Value("missing")
	assert.False(t, ok)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, closed := find[CloseOverlayMsg](collect(cmd))
	assert.True(t, closed)
}

func TestOpenInEditor(t *testing.T) {
	t.Setenv("EDITOR", "true")

	assert.NotNil(t, OpenInEditor("/tmp/config.json"))
}
