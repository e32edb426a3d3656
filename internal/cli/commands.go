// Package cli implements the peregrinno command line: the TUI entry point
// and scriptable subcommands over the same stores.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/peregrinno/todo/internal/app"
	"github.com/peregrinno/todo/internal/config"
	"github.com/peregrinno/todo/internal/domain"
	"github.com/peregrinno/todo/internal/store"
)

// Output formats for list commands
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Dependencies holds everything the CLI commands need
type Dependencies struct {
	Config     *config.Config
	Tasks      *store.TaskStore
	Categories *store.CategoryStore
	Logger     *slog.Logger
	Out        io.Writer
	Now        func() time.Time
}

// NewDependencies wraps an opened session for command use
func NewDependencies(cfg *config.Config, session *app.Session, logger *slog.Logger, out io.Writer) *Dependencies {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dependencies{
		Config:     cfg,
		Tasks:      session.Tasks,
		Categories: session.Categories,
		Logger:     logger,
		Out:        out,
		Now:        time.Now,
	}
}

// ListOptions selects and formats tasks for ListCommand
type ListOptions struct {
	Search   string
	Category string
	Status   string
	Output   string
}

// ListCommand prints the tasks matching opts
func ListCommand(deps *Dependencies, opts ListOptions) error {
	filter := domain.NewFilter()
	filter.Search = opts.Search
	filter.SetCategory(opts.Category)
	if opts.Status != "" && opts.Status != domain.FilterAll {
		status, err := domain.ParseStatus(opts.Status)
		if err != nil {
			return err
		}
		filter.SetStatus(string(status))
	}

	tasks := filter.Apply(deps.Tasks.List())
	deps.Logger.Debug("listing tasks", "count", len(tasks), "output", opts.Output)

	switch opts.Output {
	case "", OutputTable:
		return writeTaskTable(deps, tasks)
	case OutputJSON:
		return writeJSON(deps.Out, tasks)
	case OutputYAML:
		return writeYAML(deps.Out, tasks)
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", opts.Output)
	}
}

func writeTaskTable(deps *Dependencies, tasks []domain.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(deps.Out, "No tasks")
		return nil
	}

	now := deps.Now()
	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tDUE\tTITLE")
	for _, t := range tasks {
		due := "-"
		if !t.DueDate.IsZero() {
			due = t.DueDate.Format(domain.DueDateLayout)
			if t.PastDue(now) {
				due += " !"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID),
			t.Status.Label(),
			deps.Categories.Label(t.Category),
			due,
			runewidth.Truncate(t.Title, 50, "..."),
		)
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// shortID abbreviates uuids the way git abbreviates hashes
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTaskID accepts a full id or a unique prefix of one
func resolveTaskID(deps *Dependencies, ref string) (string, error) {
	if _, ok := deps.Tasks.FindByID(ref); ok {
		return ref, nil
	}

	var matches []string
	for _, t := range deps.Tasks.List() {
		if len(ref) > 0 && len(t.ID) >= len(ref) && t.ID[:len(ref)] == ref {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: task %q", domain.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// AddCommand validates form and creates the task
func AddCommand(ctx context.Context, deps *Dependencies, form domain.TaskForm) (domain.Task, error) {
	input, err := domain.ValidateTaskForm(form)
	if err != nil {
		return domain.Task{}, err
	}
	if !slices.Contains(deps.Categories.AllCategoryIdentifiers(), input.Category) {
		return domain.Task{}, &domain.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("unknown category %q", input.Category),
		}
	}

	task, err := deps.Tasks.Add(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}

	deps.Logger.Info("task created", "id", task.ID)
	fmt.Fprintf(deps.Out, "Created %s  %s\n", shortID(task.ID), task.Title)
	return task, nil
}

// MoveCommand changes the status of the task identified by ref
func MoveCommand(ctx context.Context, deps *Dependencies, ref, status string) error {
	id, err := resolveTaskID(deps, ref)
	if err != nil {
		return err
	}
	target, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}

	task, _ := deps.Tasks.FindByID(id)
	if task.Status == target {
		fmt.Fprintf(deps.Out, "%s is already %s\n", shortID(id), target.Label())
		return nil
	}
	if err := deps.Tasks.Update(ctx, id, domain.StatusPatch(target)); err != nil {
		return err
	}

	deps.Logger.Info("task moved", "id", id, "from", task.Status, "to", target)
	fmt.Fprintf(deps.Out, "Task moved to %s\n", target.Label())
	return nil
}

// RemoveCommand deletes the task identified by ref
func RemoveCommand(ctx context.Context, deps *Dependencies, ref string) error {
	id, err := resolveTaskID(deps, ref)
	if err != nil {
		return err
	}
	if err := deps.Tasks.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Deleted %s\n", shortID(id))
	return nil
}

// categoryRow is one line of the category listing
type categoryRow struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Value   string `json:"value" yaml:"value"`
	Name    string `json:"name" yaml:"name"`
	Color   string `json:"color" yaml:"color"`
	BuiltIn bool   `json:"builtIn" yaml:"builtIn"`
}

// CategoriesCommand prints built-in and custom categories
func CategoriesCommand(deps *Dependencies, output string) error {
	var rows []categoryRow
	for _, b := range domain.BuiltinCategories {
		rows = append(rows, categoryRow{Value: b.Slug, Name: b.Label, Color: b.Color, BuiltIn: true})
	}
	for _, c := range deps.Categories.List() {
		rows = append(rows, categoryRow{ID: c.ID, Value: c.Value, Name: c.Name, Color: c.Color})
	}

	switch output {
	case "", OutputTable:
		w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VALUE\tNAME\tCOLOR\tID")
		for _, r := range rows {
			id := "(built-in)"
			if !r.BuiltIn {
				id = shortID(r.ID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Value, r.Name, r.Color, id)
		}
		return w.Flush()
	case OutputJSON:
		return writeJSON(deps.Out, rows)
	case OutputYAML:
		return writeYAML(deps.Out, rows)
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", output)
	}
}

// CategoryAddCommand creates a custom category
func CategoryAddCommand(ctx context.Context, deps *Dependencies, name, color string) (domain.Category, error) {
	category, err := deps.Categories.Add(ctx, name, color)
	if err != nil {
		return domain.Category{}, err
	}
	fmt.Fprintf(deps.Out, "Created category %s (%s)\n", category.Name, category.Value)
	return category, nil
}

// CategoryRemoveCommand deletes a custom category by id or slug. Tasks
// keep referencing the slug.
func CategoryRemoveCommand(ctx context.Context, deps *Dependencies, ref string) error {
	category, ok := deps.Categories.FindByID(ref)
	if !ok {
		category, ok = deps.Categories.FindBySlug(ref)
	}
	if !ok {
		if _, builtin := domain.LookupBuiltin(ref); builtin {
			return fmt.Errorf("category %q is built in and cannot be removed", ref)
		}
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, ref)
	}

	if err := deps.Categories.Remove(ctx, category.ID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Deleted category %s\n", category.Name)
	return nil
}

// WorkspacesCommand prints the registered workspaces, marking the default
func WorkspacesCommand(out io.Writer, registry *config.WorkspaceRegistry) error {
	if len(registry.Workspaces) == 0 {
		fmt.Fprintln(out, "No workspaces registered")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDATA DIR\tDEFAULT")
	for _, ws := range registry.Workspaces {
		mark := ""
		if ws.Name == registry.DefaultWorkspace {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ws.Name, ws.DataDir, mark)
	}
	return w.Flush()
}

// WorkspaceAddCommand registers dataDir under name
func WorkspaceAddCommand(out io.Writer, registry *config.WorkspaceRegistry, name, dataDir string) error {
	if err := registry.Add(name, dataDir); err != nil {
		return err
	}
	ws, err := registry.Get(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Added workspace %s (%s)\n", ws.Name, ws.DataDir)
	return nil
}

// WorkspaceRemoveCommand unregisters a workspace. Its data is left on disk.
func WorkspaceRemoveCommand(out io.Writer, registry *config.WorkspaceRegistry, name string) error {
	if err := registry.Remove(name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed workspace %s\n", name)
	return nil
}

// WorkspaceDefaultCommand selects the workspace used when no directory is given
func WorkspaceDefaultCommand(out io.Writer, registry *config.WorkspaceRegistry, name string) error {
	if err := registry.SetDefault(name); err != nil {
		return err
	}
	fmt.Fprintf(out, "Default workspace is now %s\n", name)
	return nil
}
