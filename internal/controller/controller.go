package controller

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/store"
	"github.com/nibzard/todolist-go/internal/todo"
)

// DefaultKey is the store key holding the task list.
const DefaultKey = "tasks"

// EmptyTaskWarning is shown when a submitted task is blank.
const EmptyTaskWarning = "Please enter a task!"

// Intent names.
const (
	IntentSubmit = "submit"
	IntentRemove = "remove"
)

// Intent is a user request routed by Dispatch.
type Intent interface {
	Intent() string
}

// Submit asks to add a task. A nil Text reads the surface's input field.
type Submit struct {
	Text *string
}

func (Submit) Intent() string { return IntentSubmit }

// Remove asks to remove the row and the first task matching Text.
type Remove struct {
	Row  RowID
	Text string
}

func (Remove) Intent() string { return IntentRemove }

// Handler handles one intent.
type Handler func(ctx context.Context, intent Intent) error

// Option configures a Controller.
type Option func(*Controller)

// WithKey overrides the store key.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the task list. It is not safe for concurrent use; callers
// deliver one intent at a time.
type Controller struct {
	store    store.Store
	surface  Surface
	key      string
	logger   *log.Logger
	tasks    *todo.List
	rows     []Row
	handlers map[string]Handler
}

// New returns a controller with an empty list and the submit and remove
// handlers registered. It takes ownership of s.
func New(s store.Store, surface Surface, opts ...Option) *Controller {
	if surface == nil {
		surface = NopSurface{}
	}
	c := &Controller{
		store:    s,
		surface:  surface,
		key:      DefaultKey,
		logger:   log.Default(),
		tasks:    todo.NewList(),
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Register(IntentSubmit, func(ctx context.Context, intent Intent) error {
		submit, ok := intent.(Submit)
		if !ok {
			return fmt.Errorf("submit handler got %T", intent)
		}
		_, err := c.AddTask(ctx, submit.Text)
		return err
	})
	c.Register(IntentRemove, func(ctx context.Context, intent Intent) error {
		remove, ok := intent.(Remove)
		if !ok {
			return fmt.Errorf("remove handler got %T", intent)
		}
		c.RemoveTask(ctx, remove.Text, remove.Row)
		return nil
	})
	return c
}

// Register binds a handler to an intent name, replacing any existing one.
func (c *Controller) Register(name string, h Handler) {
	c.handlers[name] = h
}

// Dispatch routes intent to its registered handler.
func (c *Controller) Dispatch(ctx context.Context, intent Intent) error {
	h, ok := c.handlers[intent.Intent()]
	if !ok {
		return fmt.Errorf("no handler for intent %q", intent.Intent())
	}
	return h(ctx, intent)
}

// Initialize loads the persisted list and renders it without writing the
// store. Missing, unreadable or malformed data yields an empty list.
func (c *Controller) Initialize(ctx context.Context) {
	for _, row := range c.rows {
		c.surface.DetachRow(row.ID)
	}
	c.rows = nil
	c.tasks = c.load(ctx)

	for _, task := range c.tasks.Tasks() {
		c.render(task)
	}
	c.logger.Debug("Loaded tasks", "count", c.tasks.Len(), "store", c.store.Kind())
}

func (c *Controller) load(ctx context.Context) *todo.List {
	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("Reading stored tasks failed, starting empty", "key", c.key, "err", err)
		return todo.NewList()
	}
	if !found {
		return todo.NewList()
	}

	list, err := todo.Decode(data)
	if err != nil {
		c.logger.Warn("Discarding malformed stored tasks", "key", c.key, "err", err)
		return todo.NewList()
	}
	return list
}

// AddTask adds a task. A nil text reads and, on success, clears the input
// field. Blank text warns the user and returns todo.ErrEmptyTask without
// changing anything.
func (c *Controller) AddTask(ctx context.Context, text *string) (Row, error) {
	fromInput := text == nil
	var raw string
	if fromInput {
		raw = c.surface.InputValue()
	} else {
		raw = *text
	}

	task, err := todo.Normalize(raw)
	if err != nil {
		c.surface.Warn(EmptyTaskWarning)
		return Row{}, err
	}

	row := c.render(task)
	c.tasks.Add(task)
	c.persist(ctx)

	if fromInput {
		c.surface.ClearInput()
	}
	c.logger.Debug("Added task", "task", task, "row", row.ID, "count", c.tasks.Len())
	return row, nil
}

// RemoveTask detaches the row if it is still attached and removes the first
// task equal to text. The store is written only when a task was removed.
func (c *Controller) RemoveTask(ctx context.Context, text string, id RowID) bool {
	for i, row := range c.rows {
		if row.ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			c.surface.DetachRow(id)
			break
		}
	}

	if !c.tasks.RemoveFirst(text) {
		c.logger.Debug("No task to remove", "task", text, "row", id)
		return false
	}
	c.persist(ctx)
	c.logger.Debug("Removed task", "task", text, "row", id, "count", c.tasks.Len())
	return true
}

// Tasks returns the in-memory list in order.
func (c *Controller) Tasks() []string {
	return c.tasks.Tasks()
}

// Rows returns the attached rows in display order.
func (c *Controller) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// FirstRow returns the first attached row showing text.
func (c *Controller) FirstRow(text string) (Row, bool) {
	for _, row := range c.rows {
		if row.Text == text {
			return row, true
		}
	}
	return Row{}, false
}

// Key returns the store key.
func (c *Controller) Key() string {
	return c.key
}

// Close releases the store.
func (c *Controller) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func (c *Controller) render(task string) Row {
	row := Row{ID: NewRowID(), Text: task}
	c.rows = append(c.rows, row)
	c.surface.AppendRow(row)
	return row
}

// persist writes the whole list in one Set. Write failures are logged and
// otherwise ignored; the in-memory list stays authoritative.
func (c *Controller) persist(ctx context.Context) {
	data, err := c.tasks.Encode()
	if err != nil {
		c.logger.Error("Encoding tasks failed", "err", err)
		return
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.logger.Error("Saving tasks failed", "key", c.key, "store", c.store.Kind(), "err", err)
	}
}
