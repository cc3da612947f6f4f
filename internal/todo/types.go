package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrEmptyTask is returned when task text is empty after trimming.
var ErrEmptyTask = errors.New("please enter a task")

// listSchema is the shape every persisted task list must have.
const listSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {"type": "string"}
}`

var compiledListSchema = jsonschema.MustCompileString("tasks.schema.json", listSchema)

// MalformedStoreDataError reports persisted data that is not a JSON array of
// strings.
type MalformedStoreDataError struct {
	Path string // location inside the stored value, empty for the root
	Err  error
}

func (e *MalformedStoreDataError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed task data at %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("malformed task data: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedStoreDataError) Unwrap() error {
	return e.Err
}

// Normalize replaces invalid UTF-8 with U+FFFD, trims surrounding
// whitespace and rejects empty results with ErrEmptyTask. The result survives
// Encode and Decode unchanged.
func Normalize(text string) (string, error) {
	trimmed := strings.TrimFunc(strings.ToValidUTF8(text, "\uFFFD"), isTrimSpace)
	if trimmed == "" {
		return "", ErrEmptyTask
	}
	return trimmed, nil
}

// isTrimSpace matches the whitespace and line terminators that browser
// string trimming removes: Zs, tab, vertical tab, form feed, NBSP, BOM,
// LF, CR, LS and PS. NEL (U+0085) is kept.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// List is an ordered task list. Duplicates are allowed.
type List struct {
	tasks []string
}

// NewList returns a list holding a copy of tasks.
func NewList(tasks ...string) *List {
	l := &List{tasks: make([]string, 0, len(tasks))}
	l.tasks = append(l.tasks, tasks...)
	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the tasks in insertion order.
func (l *List) Tasks() []string {
	out := make([]string, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Add appends a task.
func (l *List) Add(task string) {
	l.tasks = append(l.tasks, task)
}

// Index returns the position of the first task equal to text, or -1.
func (l *List) Index(text string) int {
	for i, t := range l.tasks {
		if t == text {
			return i
		}
	}
	return -1
}

// RemoveFirst removes the first task equal to text and reports whether one
// was removed.
func (l *List) RemoveFirst(text string) bool {
	i := l.Index(text)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// Encode serializes the list as a JSON array of strings.
func (l *List) Encode() ([]byte, error) {
	tasks := l.tasks
	if tasks == nil {
		tasks = []string{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses stored data into a list. Data that is not a JSON array of
// strings yields a *MalformedStoreDataError.
func Decode(data []byte) (*List, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedStoreDataError{Err: fmt.Errorf("parse: %w", err)}
	}

	if err := compiledListSchema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var tasks []string
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &MalformedStoreDataError{Err: fmt.Errorf("decode: %w", err)}
	}
	return NewList(tasks...), nil
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &MalformedStoreDataError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &MalformedStoreDataError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
