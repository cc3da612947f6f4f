// Package ui provides the interactive terminal surface for the task list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/controller"
	"github.com/nibzard/todolist-go/internal/store"
	"github.com/nibzard/todolist-go/internal/todo"
)

// Option configures the model.
type Option func(*Model)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStatus sets a short status shown in the footer, such as the store kind.
func WithStatus(status string) Option {
	return func(m *Model) {
		m.status = status
	}
}

// WithControllerOptions passes options to the controller built by Run.
func WithControllerOptions(opts ...controller.Option) Option {
	return func(m *Model) {
		m.ctrlOpts = append(m.ctrlOpts, opts...)
	}
}

// Run starts the TUI on st. It takes ownership of st and closes it on exit.
func Run(ctx context.Context, st store.Store, opts ...Option) error {
	if !IsTTY(os.Stdout) {
		st.Close()
		return fmt.Errorf("tui requires a TTY")
	}

	m := NewModel(ctx, opts...)
	ctrl := controller.New(st, m, m.ctrlOpts...)
	defer ctrl.Close()
	m.Attach(ctrl)

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Model is the bubbletea model. It implements controller.Surface: the
// controller renders into it from inside Update.
type Model struct {
	ctx      context.Context
	ctrl     *controller.Controller
	logger   *log.Logger
	input    textinput.Model
	rows     []controller.Row
	cursor   int
	warning  string
	showHelp bool
	status   string
	width    int
	ctrlOpts []controller.Option
}

var _ controller.Surface = (*Model)(nil)

// NewModel returns a focused model with no controller attached.
func NewModel(ctx context.Context, opts ...Option) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "› "
	input.CharLimit = 256
	input.Focus()

	m := &Model{
		ctx:    ctx,
		logger: log.Default(),
		input:  input,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach binds the controller that receives the model's intents.
func (m *Model) Attach(ctrl *controller.Controller) {
	m.ctrl = ctrl
}

// InputValue returns the input field's raw value.
func (m *Model) InputValue() string { return m.input.Value() }

// ClearInput empties the input field.
func (m *Model) ClearInput() { m.input.Reset() }

// AppendRow adds a row at the end of the list.
func (m *Model) AppendRow(row controller.Row) {
	m.rows = append(m.rows, row)
}

// DetachRow removes the row with id if it is displayed.
func (m *Model) DetachRow(id controller.RowID) {
	for i, row := range m.rows {
		if row.ID != id {
			continue
		}
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		if m.cursor >= len(m.rows) && m.cursor > 0 {
			m.cursor = len(m.rows) - 1
		}
		return
	}
}

// Warn shows a blocking notice until the next key press.
func (m *Model) Warn(msg string) {
	m.warning = msg
}

// Rows returns the displayed rows.
func (m *Model) Rows() []controller.Row {
	out := make([]controller.Row, len(m.rows))
	copy(out, m.rows)
	return out
}

// Init loads the stored list.
func (m *Model) Init() tea.Cmd {
	if m.ctrl != nil {
		m.ctrl.Initialize(m.ctx)
	}
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.warning != "" {
		m.warning = ""
		return m, nil
	}

	switch key {
	case "esc":
		return m, tea.Quit
	case "enter":
		m.dispatch(controller.Submit{})
		return m, nil
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil
	case "ctrl+x", "delete":
		if len(m.rows) > 0 {
			row := m.rows[m.cursor]
			m.dispatch(controller.Remove{Row: row.ID, Text: row.Text})
		}
		return m, nil
	case "?":
		if m.input.Value() == "" {
			m.showHelp = !m.showHelp
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) dispatch(intent controller.Intent) {
	if m.ctrl == nil {
		return
	}
	err := m.ctrl.Dispatch(m.ctx, intent)
	if err != nil && !errors.Is(err, todo.ErrEmptyTask) {
		m.logger.Error("Handling intent failed", "intent", intent.Intent(), "err", err)
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
