package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/storage"
)

func newTestCategoryStore(t *testing.T, backend storage.Backend) *CategoryStore {
	t.Helper()
	return NewCategoryStore(context.Background(), backend, WithIDGenerator(sequentialIDs("cat")))
}

func TestCategoryStore_AddSlugifies(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantSlug string
	}{
		{name: "simple", input: "Garden", wantName: "Garden", wantSlug: "garden"},
		{name: "spaces", input: "  Side   Project ", wantName: "Side   Project", wantSlug: "side_project"},
		{name: "tabs", input: "Home\tOffice", wantName: "Home\tOffice", wantSlug: "home_office"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestCategoryStore(t, storage.NewMemoryBackend())

			c, err := s.Add(context.Background(), tt.input, "#123456")
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantSlug, c.Value)
			assert.Equal(t, "#123456", c.Color)
		})
	}
}

func TestCategoryStore_AddValidation(t *testing.T) {
	s := newTestCategoryStore(t, storage.NewMemoryBackend())
	ctx := context.Background()

	_, err := s.Add(ctx, "   ", "#123456")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, err = s.Add(ctx, "Garden", "green")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "color", vErr.Field)

	c, err := s.Add(ctx, "Garden", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategoryColor, c.Color)
}

func TestCategoryStore_AddRejectsTakenSlug(t *testing.T) {
	tests := []struct {
		name string
		add  string
	}{
		{name: "built-in slug", add: "Trabalho"},
		{name: "same custom slug", add: "side  project"},
		{name: "case and spacing differ", add: " SIDE Project "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestCategoryStore(t, storage.NewMemoryBackend())
			_, err := s.Add(ctx, "Side Project", "#123456")
			require.NoError(t, err)

			_, err = s.Add(ctx, tt.add, "#00ff00")

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "name", vErr.Field)
			assert.Len(t, s.List(), 1)
			assert.Equal(t, append(domain.BuiltinSlugs(), "side_project"), s.AllCategoryIdentifiers())
		})
	}
}

func TestCategoryStore_UpdateKeepsSlug(t *testing.T) {
	ctx := context.Background()
	s := newTestCategoryStore(t, storage.NewMemoryBackend())
	c, err := s.Add(ctx, "Side Project", "#123456")
	require.NoError(t, err)

	name := "Hobby"
	color := "#abcdef"
	require.NoError(t, s.Update(ctx, c.ID, domain.CategoryPatch{Name: &name, Color: &color}))

	got, ok := s.FindByID(c.ID)
	require.True(t, ok)
	assert.Equal(t, "Hobby", got.Name)
	assert.Equal(t, "#abcdef", got.Color)
	assert.Equal(t, "side_project", got.Value)

	bySlug, ok := s.FindBySlug("side_project")
	require.True(t, ok)
	assert.Equal(t, c.ID, bySlug.ID)
	assert.Equal(t, "#abcdef", s.ResolveColor("side_project"))
}

func TestCategoryStore_UpdateUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestCategoryStore(t, storage.NewMemoryBackend())
	_, _ = s.Add(ctx, "Garden", "#00ff00")
	before := s.List()

	name := "x"
	require.NoError(t, s.Update(ctx, "missing", domain.CategoryPatch{Name: &name}))

	assert.Equal(t, before, s.List())
}

func TestCategoryStore_RemoveNoCascade(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	categories := newTestCategoryStore(t, backend)
	tasks := newTestTaskStore(t, backend)

	c, err := categories.Add(ctx, "Garden", "#00ff00")
	require.NoError(t, err)
	input := sampleInput("water plants")
	input.Category = c.Value
	task, err := tasks.Add(ctx, input)
	require.NoError(t, err)

	require.NoError(t, categories.Remove(ctx, c.ID))
	require.NoError(t, categories.Remove(ctx, c.ID))

	got, ok := tasks.FindByID(task.ID)
	require.True(t, ok)
	assert.Equal(t, "garden", got.Category, "task keeps its orphaned slug")
	assert.Equal(t, domain.FallbackColor, categories.ResolveColor(got.Category))
	assert.Empty(t, categories.List())
}

func TestCategoryStore_ResolveColor(t *testing.T) {
	ctx := context.Background()
	s := newTestCategoryStore(t, storage.NewMemoryBackend())
	_, _ = s.Add(ctx, "Garden", "#00ff00")

	tests := []struct {
		slug string
		want string
	}{
		{slug: domain.CategoryWork, want: "#3b82f6"},
		{slug: domain.CategoryPersonal, want: "#8b5cf6"},
		{slug: domain.CategoryStudies, want: "#10b981"},
		{slug: domain.CategoryHealth, want: "#ef4444"},
		{slug: domain.CategoryFinances, want: "#f59e0b"},
		{slug: domain.CategoryOther, want: "#6b7280"},
		{slug: "garden", want: "#00ff00"},
		{slug: "unknown", want: "#6b7280"},
		{slug: "", want: "#6b7280"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ResolveColor(tt.slug))
		})
	}
}

func TestCategoryStore_AllCategoryIdentifiers(t *testing.T) {
	ctx := context.Background()
	s := newTestCategoryStore(t, storage.NewMemoryBackend())

	assert.Equal(t, domain.BuiltinSlugs(), s.AllCategoryIdentifiers())

	_, _ = s.Add(ctx, "Zeta", "")
	_, _ = s.Add(ctx, "Alpha", "")

	want := append(domain.BuiltinSlugs(), "zeta", "alpha")
	assert.Equal(t, want, s.AllCategoryIdentifiers())
}

func TestCategoryStore_Label(t *testing.T) {
	ctx := context.Background()
	s := newTestCategoryStore(t, storage.NewMemoryBackend())
	_, _ = s.Add(ctx, "Side Project", "")

	assert.Equal(t, "Work", s.Label(domain.CategoryWork))
	assert.Equal(t, "Side Project", s.Label("side_project"))
	assert.Equal(t, "Old stuff", s.Label("old_stuff"))
	assert.Equal(t, "Ética x", s.Label("ética_x"))
}

func TestCategoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	s := newTestCategoryStore(t, backend)
	_, err = s.Add(ctx, "Garden", "#00ff00")
	require.NoError(t, err)
	_, err = s.Add(ctx, "Side Project", "")
	require.NoError(t, err)

	reloaded := NewCategoryStore(ctx, backend)
	assert.Equal(t, s.List(), reloaded.List())
}

func TestCategoryStore_ZeroValuePanics(t *testing.T) {
	var s CategoryStore
	assert.Panics(t, func() { s.ResolveColor("x") })
}
