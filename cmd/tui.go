package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/todolist-go/internal/controller"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/store"
	"github.com/nibzard/todolist-go/internal/ui"
)

// tuiCommand launches the terminal UI. Logs go to a per-run file since the
// terminal belongs to the UI.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if !ui.IsTTY(a.stdout) {
		return fmt.Errorf("tui requires a TTY (try: todolist ls)")
	}

	runLog, err := logging.NewRunLogger(a.cfg.LogDir, a.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()
	logger := runLog.Logger(a.logOptions())
	logger.Info("Starting TUI", "store", a.cfg.Store.Kind, "key", a.cfg.Store.Key, "version", Version)

	st, err := store.Open(ctx, a.cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("opening %s store: %w", a.cfg.Store.Kind, err)
	}

	return ui.Run(ctx, st,
		ui.WithLogger(logger),
		ui.WithStatus(a.cfg.Store.Kind),
		ui.WithControllerOptions(
			controller.WithKey(a.cfg.Store.Key),
			controller.WithLogger(logger),
		),
	)
}
