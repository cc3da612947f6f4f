package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/todolist-go/internal/controller"
	"github.com/nibzard/todolist-go/internal/todo"
)

// cliSurface is the surface of one-shot commands. It has no input field and
// keeps the last warning so the command can report it.
type cliSurface struct {
	warning string
}

func (s *cliSurface) InputValue() string         { return "" }
func (s *cliSurface) ClearInput()                {}
func (s *cliSurface) AppendRow(controller.Row)   {}
func (s *cliSurface) DetachRow(controller.RowID) {}
func (s *cliSurface) Warn(msg string)            { s.warning = msg }

// addCommand adds the arguments, joined by spaces, as one task.
func (a *app) addCommand(ctx context.Context, args []string) error {
	surface := &cliSurface{}
	ctrl, err := a.openController(ctx, surface, a.logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	text := joinArgs(args)
	if err := ctrl.Dispatch(ctx, controller.Submit{Text: &text}); err != nil {
		if errors.Is(err, todo.ErrEmptyTask) && surface.warning != "" {
			return errors.New(surface.warning)
		}
		return fmt.Errorf("adding task: %w", err)
	}

	tasks := ctrl.Tasks()
	fmt.Fprintf(a.stdout, "Added: %s (%d total)\n", tasks[len(tasks)-1], len(tasks))
	return nil
}

// rmCommand removes the first task whose text equals the joined arguments.
func (a *app) rmCommand(ctx context.Context, args []string) error {
	text := strings.ToValidUTF8(joinArgs(args), "\uFFFD")
	if text == "" {
		return fmt.Errorf("rm requires the task text")
	}

	ctrl, err := a.openController(ctx, &cliSurface{}, a.logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	row, ok := ctrl.FirstRow(text)
	if !ok {
		return fmt.Errorf("no task matching %q", text)
	}
	if err := ctrl.Dispatch(ctx, controller.Remove{Row: row.ID, Text: row.Text}); err != nil {
		return fmt.Errorf("removing task: %w", err)
	}
	fmt.Fprintf(a.stdout, "Removed: %s (%d left)\n", text, len(ctrl.Tasks()))
	return nil
}

// lsCommand prints the tasks in order.
func (a *app) lsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todolist ls", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asJSON := fs.Bool("json", false, "Print the stored JSON array")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	ctrl, err := a.openController(ctx, &cliSurface{}, a.logger)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	tasks := ctrl.Tasks()
	if *asJSON {
		data, err := todo.NewList(tasks...).Encode()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil
	}
	printTaskList(a.stdout, tasks)
	return nil
}

func printTaskList(w io.Writer, tasks []string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	width := len(fmt.Sprint(len(tasks)))
	for i, task := range tasks {
		fmt.Fprintf(w, "%*d. %s\n", width, i+1, task)
	}
}
