// Package editor provides interaction mode and view state management
package editor

import (
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/types"
)

// Re-export Mode type for convenience
type Mode = types.Mode

// Mode constants
const (
	ModeNormal = types.ModeNormal
	ModeMove   = types.ModeMove
	ModeDrag   = types.ModeDrag
	ModeSearch = types.ModeSearch
)

// Service manages editing state (mode, filter, sort)
type Service struct {
	mode   Mode
	filter *domain.Filter
	sort   *domain.Sort
}

// NewService creates a new editor service with defaults. Tasks keep store
// order (newest first) until a sort field is chosen.
func NewService() *Service {
	return &Service{
		mode:   ModeNormal,
		filter: domain.NewFilter(),
		sort:   &domain.Sort{},
	}
}

// GetMode returns the current mode
func (s *Service) GetMode() Mode {
	return s.mode
}

// SetMode sets the current mode
func (s *Service) SetMode(mode Mode) {
	s.mode = mode
}

// EnterNormal switches to normal mode
func (s *Service) EnterNormal() {
	s.mode = ModeNormal
}

// ExitMode returns to normal mode if not already normal
func (s *Service) ExitMode() bool {
	if s.mode != ModeNormal {
		s.mode = ModeNormal
		return true
	}
	return false
}

// IsNormal returns true if in normal mode
func (s *Service) IsNormal() bool {
	return s.mode == ModeNormal
}

// Filter management

// GetFilter returns the current filter
func (s *Service) GetFilter() *domain.Filter {
	return s.filter
}

// SetSearchQuery updates the search query in the filter
func (s *Service) SetSearchQuery(query string) {
	s.filter.Search = query
}

// SetCategoryFilter selects a category slug, or domain.FilterAll
func (s *Service) SetCategoryFilter(slug string) {
	s.filter.SetCategory(slug)
}

// SetStatusFilter selects a status, or domain.FilterAll
func (s *Service) SetStatusFilter(status string) {
	s.filter.SetStatus(status)
}

// ClearFilters clears all filters
func (s *Service) ClearFilters() {
	s.filter.Clear()
}

// IsFilterActive returns true if any filter is active
func (s *Service) IsFilterActive() bool {
	return s.filter.IsActive()
}

// Sort management

// GetSort returns the current sort settings
func (s *Service) GetSort() *domain.Sort {
	return s.sort
}

// ToggleSort toggles between fields or direction
func (s *Service) ToggleSort(field domain.SortField) {
	s.sort.Toggle(field)
}

// ListTasks filters and sorts tasks for the list view
func (s *Service) ListTasks(tasks []domain.Task) []domain.Task {
	return s.sort.Apply(s.filter.Apply(tasks))
}

// BoardTasks filters and sorts tasks for the kanban view. The status
// criterion is ignored because every status has its own column.
func (s *Service) BoardTasks(tasks []domain.Task) []domain.Task {
	return s.sort.Apply(s.filter.ForKanban().Apply(tasks))
}
