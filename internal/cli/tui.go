package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/peregrinno/todo/internal/app"
	"github.com/peregrinno/todo/internal/config"
)

// runTUI opens the configured storage and runs the terminal UI until quit
func runTUI(cmd *cobra.Command, flags *globalFlags, version string) error {
	cfg, configPath, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(cfg, cmd.ErrOrStderr())
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	registry, err := config.LoadWorkspaceRegistry()
	if err != nil {
		logger.Warn("failed to load workspaces", "error", err)
		registry = nil
	}

	session, err := openSession(ctx, cfg, cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}

	var open app.OpenFunc
	if switchable(cfg) {
		open = func(ctx context.Context, dataDir string) (*app.Session, error) {
			return openSession(ctx, cfg, dataDir, logger)
		}
	}

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Session:    session,
		Workspaces: registry,
		Open:       open,
		Logger:     logger,
		Version:    version,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !cfg.UI.DisableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("starting tui", "backend", cfg.Storage.Backend, "dir", cfg.Storage.Dir)
	final, runErr := tea.NewProgram(model, opts...).Run()

	// The final model owns whichever session was active at quit
	closer := model
	if m, ok := final.(app.Model); ok {
		closer = m
	}
	if err := closer.Close(); err != nil {
		logger.Warn("failed to close storage", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}
	return nil
}
