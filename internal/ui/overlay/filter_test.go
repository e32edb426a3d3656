package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinno/todo/internal/domain"
)

func TestFilterMenu_Status(t *testing.T) {
	tests := []struct {
		key  rune
		want string
	}{
		{'p', "pending"},
		{'i', "in_progress"},
		{'d', "done"},
		{'a', domain.FilterAll},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewFilterMenu(domain.NewFilter(), testCategories())
			m.Update(runeKey('s'))

			_, cmd := m.Update(runeKey(tt.key))

			changed, ok := find[FilterChangedMsg](collect(cmd))
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.Status)
			assert.Equal(t, domain.FilterAll, changed.Category)
			assert.Equal(t, filterModeNormal, m.mode)
		})
	}
}

func TestFilterMenu_CategoryPicker(t *testing.T) {
	m := NewFilterMenu(domain.NewFilter(), testCategories())

	m.Update(runeKey('c'))
	assert.Equal(t, filterModeCategory, m.mode)
	assert.Equal(t, 0, m.cursor, "starts on All")
	assert.Contains(t, m.View(), "Side project")

	m.Update(runeKey('j'))
	m.Update(runeKey('j'))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	changed, ok := find[FilterChangedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, domain.CategoryPersonal, changed.Category)
	assert.Contains(t, m.View(), "Personal")
}

func TestFilterMenu_PickerStartsOnCurrent(t *testing.T) {
	f := domain.NewFilter()
	f.SetCategory("side_project")
	m := NewFilterMenu(f, testCategories())

	m.Update(runeKey('c'))

	assert.Equal(t, len(testCategories()), m.cursor)
}

func TestFilterMenu_Clear(t *testing.T) {
	f := domain.NewFilter()
	f.SetCategory("saude")
	f.SetStatus("done")
	m := NewFilterMenu(f, testCategories())

	_, cmd := m.Update(runeKey('x'))

	changed, ok := find[FilterChangedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, FilterChangedMsg{Category: domain.FilterAll, Status: domain.FilterAll}, changed)
}

func TestFilterMenu_EscClosesFromNormal(t *testing.T) {
	m := NewFilterMenu(domain.NewFilter(), nil)

	m.Update(runeKey('s'))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "first esc leaves status mode")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, ok := find[CloseOverlayMsg](collect(cmd))
	assert.True(t, ok)
}

func TestFilterMenu_UnknownCategoryLabel(t *testing.T) {
	f := domain.NewFilter()
	f.SetCategory("gone_now")

	m := NewFilterMenu(f, testCategories())

	assert.Contains(t, m.View(), "Gone now")
}
