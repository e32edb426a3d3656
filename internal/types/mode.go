// Package types contains shared types used across the application.
package types

// Mode represents the current interaction mode of the board
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // keyboard grab: a card is held and moved between columns
	ModeDrag        // mouse drag in progress
	ModeSearch
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeDrag:
		return "DRAG"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}
