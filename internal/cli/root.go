package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/peregrinno/todo/internal/config"
	"github.com/peregrinno/todo/internal/domain"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	configFile string
	backend    string
	dataDir    string
	workspace  string
	ephemeral  bool
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "peregrinno",
		Short: "Peregrinno - tasks in a list or on a kanban board",
		Long: `Peregrinno keeps personal tasks with categories, due dates and a
pending / in progress / done workflow.

Run without arguments to open the terminal UI, or use the subcommands
below from scripts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags, version)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "Config file (default: nearest "+config.FileName+" or the user config)")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend: file, sqlite, redis or memory")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Data directory for the file and sqlite backends")
	pf.StringVarP(&flags.workspace, "workspace", "w", "", "Use a registered workspace")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep everything in memory; nothing is saved")
	rootCmd.MarkFlagsMutuallyExclusive("data-dir", "workspace")
	rootCmd.MarkFlagsMutuallyExclusive("backend", "ephemeral")

	rootCmd.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newMoveCmd(flags),
		newRemoveCmd(flags),
		newCategoriesCmd(flags),
		newWorkspaceCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig resolves configuration in order: .env, config file, environment,
// flags, workspace. It also returns the file the settings overlay saves to.
func loadConfig(flags *globalFlags) (*config.Config, string, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return nil, "", err
	}

	var (
		cfg        *config.Config
		configPath string
		err        error
	)
	if flags.configFile != "" {
		cfg, err = config.LoadFile(flags.configFile)
		configPath = flags.configFile
	} else {
		cfg, configPath, err = loadNearestConfig()
	}
	if err != nil {
		return nil, "", err
	}

	cfg = config.ApplyEnv(cfg, os.Getenv)

	if flags.backend != "" {
		cfg.Storage.Backend = flags.backend
	}
	if flags.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if flags.dataDir != "" {
		cfg.Storage.Dir = flags.dataDir
		cfg.Storage.SQLitePath = ""
	}

	// The default workspace only applies when no directory was chosen explicitly
	if flags.workspace != "" || (flags.dataDir == "" && os.Getenv(config.EnvDataDir) == "") {
		registry, err := config.LoadWorkspaceRegistry()
		if err != nil {
			return nil, "", fmt.Errorf("failed to load workspaces: %w", err)
		}
		before := cfg.Storage.Dir
		if err := registry.ApplyWorkspace(cfg, flags.workspace); err != nil {
			return nil, "", fmt.Errorf("workspace %q: %w", flags.workspace, err)
		}
		if cfg.Storage.Dir != before {
			cfg.Storage.SQLitePath = ""
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// loadNearestConfig loads the closest project config above the working
// directory, falling back to the user config and then defaults
func loadNearestConfig() (*config.Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	dir, err := config.FindConfigDir(cwd)
	if err != nil {
		if !errors.Is(err, config.ErrNoConfigFile) {
			return nil, "", err
		}
		dir = cwd
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, "", err
	}

	local := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(local); err == nil {
		return cfg, local, nil
	}
	userPath, err := config.UserConfigPath()
	if err != nil {
		return cfg, "", nil
	}
	return cfg, userPath, nil
}

// withDependencies loads config, opens the stores and runs fn against them
func withDependencies(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, deps *Dependencies) error) error {
	cfg, _, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(cfg, cmd.ErrOrStderr())
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := openSession(ctx, cfg, cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	return fn(ctx, NewDependencies(cfg, session, logger, cmd.OutOrStdout()))
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(_ context.Context, deps *Dependencies) error {
				return ListCommand(deps, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Only tasks whose title or description contains this text")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", domain.FilterAll, "Only tasks in this category")
	cmd.Flags().StringVarP(&opts.Status, "status", "s", domain.FilterAll, "Only tasks with this status")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", OutputTable, "Output format: table, json or yaml")
	return cmd
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	var form domain.TaskForm
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Title = args[0]
			return withDependencies(cmd, flags, func(ctx context.Context, deps *Dependencies) error {
				_, err := AddCommand(ctx, deps, form)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "Description (at least 5 characters)")
	cmd.Flags().StringVarP(&form.Category, "category", "c", domain.CategoryOther, "Category slug")
	cmd.Flags().StringVarP(&form.Status, "status", "s", string(domain.StatusPending), "Initial status")
	cmd.Flags().StringVar(&form.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newMoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Change a task's status",
		Long:  "Change a task's status. The id may be abbreviated to any unique prefix.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *Dependencies) error {
				return MoveCommand(ctx, deps, args[0], args[1])
			})
		},
	}
}

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *Dependencies) error {
				return RemoveCommand(ctx, deps, args[0])
			})
		},
	}
}

func newCategoriesCmd(flags *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(_ context.Context, deps *Dependencies) error {
				return CategoriesCommand(deps, output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "Output format: table, json or yaml")

	var color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *Dependencies) error {
				_, err := CategoryAddCommand(ctx, deps, args[0], color)
				return err
			})
		},
	}
	addCmd.Flags().StringVar(&color, "color", domain.DefaultCategoryColor, "Color as #rrggbb")

	rmCmd := &cobra.Command{
		Use:   "rm <id|slug>",
		Short: "Delete a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDependencies(cmd, flags, func(ctx context.Context, deps *Dependencies) error {
				return CategoryRemoveCommand(ctx, deps, args[0])
			})
		},
	}

	cmd.AddCommand(addCmd, rmCmd)
	return cmd
}

// newWorkspaceCmd manages the registry. It never opens storage.
func newWorkspaceCmd() *cobra.Command {
	// edit loads the registry, applies fn and saves it when fn succeeds
	edit := func(fn func(*config.WorkspaceRegistry) error) error {
		registry, err := config.LoadWorkspaceRegistry()
		if err != nil {
			return err
		}
		if err := fn(registry); err != nil {
			return err
		}
		return config.SaveWorkspaceRegistry(registry)
	}

	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage named data directories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := config.LoadWorkspaceRegistry()
			if err != nil {
				return err
			}
			return WorkspacesCommand(cmd.OutOrStdout(), registry)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <data-dir>",
			Short: "Register a workspace",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(func(r *config.WorkspaceRegistry) error {
					return WorkspaceAddCommand(cmd.OutOrStdout(), r, args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Unregister a workspace (its data is kept)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(func(r *config.WorkspaceRegistry) error {
					return WorkspaceRemoveCommand(cmd.OutOrStdout(), r, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "default <name>",
			Short: "Set the workspace used when no directory is given",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return edit(func(r *config.WorkspaceRegistry) error {
					return WorkspaceDefaultCommand(cmd.OutOrStdout(), r, args[0])
				})
			},
		},
	)
	return cmd
}
