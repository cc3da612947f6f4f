package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/todolist-go/internal/logging"
)

// logsCommand prints the latest TUI run log.
func (a *app) logsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todolist logs", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(a.cfg.LogDir, a.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(a.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(a.stderr, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(a.stderr, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, a.stdout, logPath, *n, *follow)
}
