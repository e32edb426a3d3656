package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchOverlay(t *testing.T) {
	s := NewSearchOverlay("rent")

	assert.Equal(t, "rent", s.Query())
	assert.Equal(t, "", s.Title())

	width, height := s.Size()
	assert.Equal(t, 0, width, "width should be 0 for full-width")
	assert.Equal(t, 1, height)
	assert.NotNil(t, s.Init())
}

func TestSearchOverlay_TypingEmitsQuery(t *testing.T) {
	s := NewSearchOverlay("")

	_, cmd := s.Update(runeKey('p'))

	search, ok := find[SearchMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, "p", search.Query)
}

func TestSearchOverlay_EnterKeepsQuery(t *testing.T) {
	s := NewSearchOverlay("pay")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msgs := collect(cmd)
	_, closed := find[CloseOverlayMsg](msgs)
	_, searched := find[SearchMsg](msgs)
	assert.True(t, closed)
	assert.False(t, searched)
	assert.Equal(t, "pay", s.Query())
}

func TestSearchOverlay_EscClears(t *testing.T) {
	s := NewSearchOverlay("pay")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	msgs := collect(cmd)
	search, ok := find[SearchMsg](msgs)
	require.True(t, ok)
	assert.Empty(t, search.Query)
	_, closed := find[CloseOverlayMsg](msgs)
	assert.True(t, closed)
}

func TestSearchOverlay_MatchCount(t *testing.T) {
	s := NewSearchOverlay("pay")

	s.SetMatchCount(1)
	assert.Contains(t, s.View(), "(1 match)")

	s.SetMatchCount(3)
	assert.Contains(t, s.View(), "(3 matches)")
}
