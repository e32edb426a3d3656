package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/storage"
)

// CategoryStore owns the user-defined categories, in creation order
type CategoryStore struct {
	mu         sync.RWMutex
	categories *storage.Value[[]domain.Category]
	opts       options
	listeners  listeners
}

// NewCategoryStore loads custom categories from backend
func NewCategoryStore(ctx context.Context, backend storage.Backend, opts ...Option) *CategoryStore {
	o := buildOptions(opts)

	s := &CategoryStore{
		categories: storage.Load(ctx, backend, storage.KeyCustomCategories, []domain.Category{}, o.logger),
		opts:       o,
	}
	if s.categories.Get() == nil {
		s.categories.Reset([]domain.Category{})
	}
	return s
}

func (s *CategoryStore) mustBeInitialized() {
	if s.categories == nil {
		panic("store: CategoryStore used without NewCategoryStore")
	}
}

// List returns a copy of the custom categories
func (s *CategoryStore) List() []domain.Category {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.categories.Get()
	out := make([]domain.Category, len(current))
	copy(out, current)
	return out
}

// FindByID returns the category with the given id
func (s *CategoryStore) FindByID(id string) (domain.Category, bool) {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// FindBySlug returns the first custom category with the given slug
func (s *CategoryStore) FindBySlug(slug string) (domain.Category, bool) {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	return findBySlug(s.categories.Get(), slug)
}

func findBySlug(categories []domain.Category, slug string) (domain.Category, bool) {
	for _, c := range categories {
		if c.Value == slug {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Add creates a custom category. The slug is derived from name once and
// never recomputed. An empty color falls back to DefaultCategoryColor.
func (s *CategoryStore) Add(ctx context.Context, name, color string) (domain.Category, error) {
	s.mustBeInitialized()

	name = strings.TrimSpace(name)
	if err := validateCategory(name, &color); err != nil {
		return domain.Category{}, err
	}
	if s.slugTaken(domain.Slugify(name)) {
		return domain.Category{}, &domain.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("category %q already exists", domain.Slugify(name)),
		}
	}

	category := domain.Category{
		ID:    s.opts.newID(),
		Name:  name,
		Value: domain.Slugify(name),
		Color: color,
	}

	s.mu.Lock()
	current := s.categories.Get()
	next := make([]domain.Category, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, category)
	err := s.categories.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("category added", "id", category.ID, "slug", category.Value)
	s.listeners.notify()

	return category, err
}

// Update changes name and/or color. The slug is kept, so tasks referencing
// the category keep resolving. An unknown id is a no-op.
func (s *CategoryStore) Update(ctx context.Context, id string, patch domain.CategoryPatch) error {
	s.mustBeInitialized()

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return &domain.ValidationError{Field: "name", Message: "name is required"}
		}
		patch.Name = &name
	}
	if patch.Color != nil && !domain.ValidColor(*patch.Color) {
		return &domain.ValidationError{Field: "color", Message: "color must be a #rrggbb hex value"}
	}

	s.mu.Lock()
	current := s.categories.Get()
	idx := -1
	for i, c := range current {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := make([]domain.Category, len(current))
	copy(next, current)
	next[idx] = patch.Apply(next[idx])
	err := s.categories.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("category updated", "id", id, "slug", next[idx].Value)
	s.listeners.notify()

	return err
}

// Remove deletes a custom category. Tasks referencing its slug are left
// alone and resolve to the fallback color afterwards.
func (s *CategoryStore) Remove(ctx context.Context, id string) error {
	s.mustBeInitialized()

	s.mu.Lock()
	current := s.categories.Get()
	next := make([]domain.Category, 0, len(current))
	for _, c := range current {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(current) {
		s.mu.Unlock()
		return nil
	}
	err := s.categories.Set(ctx, next)
	s.mu.Unlock()

	s.opts.logger.Debug("category removed", "id", id)
	s.listeners.notify()

	return err
}

// ResolveColor returns the display color for a category slug: built-in
// table first, then custom categories, then the fallback gray.
func (s *CategoryStore) ResolveColor(slug string) string {
	s.mustBeInitialized()

	if b, ok := domain.LookupBuiltin(slug); ok {
		return b.Color
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := findBySlug(s.categories.Get(), slug); ok && domain.ValidColor(c.Color) {
		return c.Color
	}
	return domain.FallbackColor
}

// AllCategoryIdentifiers returns built-in slugs in their fixed order
// followed by custom slugs in creation order
func (s *CategoryStore) AllCategoryIdentifiers() []string {
	s.mustBeInitialized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := domain.BuiltinSlugs()
	for _, c := range s.categories.Get() {
		ids = append(ids, c.Value)
	}
	return ids
}

// Label returns the display name for a slug
func (s *CategoryStore) Label(slug string) string {
	s.mustBeInitialized()

	if b, ok := domain.LookupBuiltin(slug); ok {
		return b.Label
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := findBySlug(s.categories.Get(), slug); ok {
		return c.Name
	}
	return domain.Humanize(slug)
}

// Subscribe registers fn to run after every mutation
func (s *CategoryStore) Subscribe(fn Listener) func() {
	s.mustBeInitialized()
	return s.listeners.add(fn)
}

// slugTaken reports whether slug belongs to a built-in or custom category
func (s *CategoryStore) slugTaken(slug string) bool {
	if _, ok := domain.LookupBuiltin(slug); ok {
		return true
	}
	_, ok := s.FindBySlug(slug)
	return ok
}

func validateCategory(name string, color *string) error {
	if name == "" || domain.Slugify(name) == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if *color == "" {
		*color = domain.DefaultCategoryColor
	}
	if !domain.ValidColor(*color) {
		return &domain.ValidationError{Field: "color", Message: "color must be a #rrggbb hex value"}
	}
	return nil
}
