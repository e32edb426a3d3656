package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmDialog(t *testing.T) {
	dialog := NewConfirmDialog("Delete Task", "Delete \"Pay rent\"?", "t-1")

	assert.Equal(t, "Delete Task", dialog.Title())
	assert.False(t, dialog.selected, "defaults to No")
	assert.Contains(t, dialog.View(), "Delete \"Pay rent\"?")

	width, height := dialog.Size()
	assert.Equal(t, 56, width)
	assert.GreaterOrEqual(t, height, 6)
}

func TestConfirmDialog_Keys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{name: "y", keys: []tea.KeyMsg{runeKey('y')}, want: true},
		{name: "Y", keys: []tea.KeyMsg{runeKey('Y')}, want: true},
		{name: "n", keys: []tea.KeyMsg{runeKey('n')}, want: false},
		{name: "esc", keys: []tea.KeyMsg{{Type: tea.KeyEsc}}, want: false},
		{name: "enter defaults to no", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, want: false},
		{name: "left then enter", keys: []tea.KeyMsg{runeKey('h'), {Type: tea.KeyEnter}}, want: true},
		{name: "tab twice then enter", keys: []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyEnter}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewConfirmDialog("Title", "Message", "t-9")

			var msgs []tea.Msg
			for _, k := range tt.keys {
				_, cmd := dialog.Update(k)
				msgs = append(msgs, collect(cmd)...)
			}

			require.Len(t, msgs, 1)
			result, ok := msgs[0].(ConfirmResult)
			require.True(t, ok, "got %T", msgs[0])
			assert.Equal(t, tt.want, result.Confirmed)
			assert.Equal(t, "t-9", result.Subject)
		})
	}
}

func TestConfirmDialog_IgnoresOtherMessages(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message", "")

	_, cmd := dialog.Update(tea.WindowSizeMsg{Width: 10})
	assert.Nil(t, cmd)
}
