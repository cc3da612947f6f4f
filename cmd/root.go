// Package cmd implements the todolist command line.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/controller"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

const logPrefix = "todolist"

// app carries what every command needs.
type app struct {
	cws    *config.ConfigWithSources
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	a := &app{
		cws:    cws,
		cfg:    cws.Config,
		stdout: stdout,
		stderr: stderr,
	}
	a.logger = logging.New(stderr, a.logOptions())

	// The first non-flag argument names the command; tui is the default.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "add":
		return a.addCommand(ctx, remainingArgs)
	case "rm", "remove":
		return a.rmCommand(ctx, remainingArgs)
	case "ls", "list":
		return a.lsCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(ctx, remainingArgs)
	case "logs", "tail":
		return a.logsCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func (a *app) logOptions() logging.Options {
	return logging.Options{
		Level:           a.cfg.LogLevel,
		Format:          a.cfg.LogFormat,
		ReportTimestamp: a.cfg.LogTimestamps,
		ReportCaller:    a.cfg.LogCaller,
		Prefix:          logPrefix,
	}
}

// openController opens the configured store and loads the list into a new
// controller rendering into surface. Callers must Close the controller.
func (a *app) openController(ctx context.Context, surface controller.Surface, logger *log.Logger) (*controller.Controller, error) {
	st, err := store.Open(ctx, a.cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", a.cfg.Store.Kind, err)
	}
	ctrl := controller.New(st, surface,
		controller.WithKey(a.cfg.Store.Key),
		controller.WithLogger(logger),
	)
	ctrl.Initialize(ctx)
	return ctrl, nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todolist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - a persistent to-do list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui            Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  add <text...>  Add a task")
	fmt.Fprintln(w, "  rm <text...>   Remove the first task with this text")
	fmt.Fprintln(w, "  ls             List tasks in order")
	fmt.Fprintln(w, "  doctor         Check config, store and stored tasks")
	fmt.Fprintln(w, "  logs           Show the latest TUI log")
	fmt.Fprintln(w, "  config         Print an example config file")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the stored JSON array")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, -follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

// joinArgs joins command arguments into one task text.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
