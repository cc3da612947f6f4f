package ui

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/controller"
	"github.com/nibzard/todolist-go/internal/store"
	"github.com/nibzard/todolist-go/internal/todo"
)

func newTestModel(t *testing.T, st store.Store) *Model {
	t.Helper()
	quiet := log.New(io.Discard)
	m := NewModel(context.Background(), WithLogger(quiet), WithStatus("memory"))
	m.Attach(controller.New(st, m, controller.WithLogger(quiet)))
	m.Init()
	return m
}

func seed(t *testing.T, st store.Store, tasks ...string) {
	t.Helper()
	data, err := todo.NewList(tasks...).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set(context.Background(), controller.DefaultKey, data); err != nil {
		t.Fatal(err)
	}
}

func texts(m *Model) []string {
	out := []string{}
	for _, row := range m.Rows() {
		out = append(out, row.Text)
	}
	return out
}

func stored(t *testing.T, st store.Store) []string {
	t.Helper()
	data, found, err := st.Get(context.Background(), controller.DefaultKey)
	if err != nil || !found {
		t.Fatalf("stored tasks: found=%v err=%v", found, err)
	}
	list, err := todo.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return list.Tasks()
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestInitRendersStoredTasks(t *testing.T) {
	st := store.NewMemoryStore()
	seed(t, st, "A", "B")
	m := newTestModel(t, st)

	if got := texts(m); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("rows: got %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "A") || !strings.Contains(view, "2 tasks") {
		t.Errorf("view missing rows or count:\n%s", view)
	}
}

func TestSubmitFromInput(t *testing.T) {
	st := store.NewMemoryStore()
	m := newTestModel(t, st)

	typeText(m, "  Buy milk ")
	if m.InputValue() != "  Buy milk " {
		t.Fatalf("input: got %q", m.InputValue())
	}
	press(m, tea.KeyEnter)

	if got := texts(m); !reflect.DeepEqual(got, []string{"Buy milk"}) {
		t.Errorf("rows: got %v", got)
	}
	if m.InputValue() != "" {
		t.Errorf("input should be cleared, got %q", m.InputValue())
	}
	if got := stored(t, st); !reflect.DeepEqual(got, []string{"Buy milk"}) {
		t.Errorf("stored: got %v", got)
	}
}

func TestEmptySubmitBlocksUntilDismissed(t *testing.T) {
	st := store.NewMemoryStore()
	m := newTestModel(t, st)

	typeText(m, "   ")
	press(m, tea.KeyEnter)

	if !strings.Contains(m.View(), controller.EmptyTaskWarning) {
		t.Fatalf("expected warning in view:\n%s", m.View())
	}
	if st.Writes() != 0 || len(m.Rows()) != 0 {
		t.Errorf("empty submit must not change state: writes=%d rows=%d", st.Writes(), len(m.Rows()))
	}
	if m.InputValue() != "   " {
		t.Errorf("input should be kept, got %q", m.InputValue())
	}

	// The dismissing key is swallowed.
	if cmd := press(m, tea.KeyEsc); isQuit(cmd) {
		t.Error("esc should only dismiss the warning")
	}
	if strings.Contains(m.View(), controller.EmptyTaskWarning) {
		t.Error("warning should be dismissed")
	}
}

func TestRemoveSelectedRow(t *testing.T) {
	st := store.NewMemoryStore()
	seed(t, st, "A", "B", "A")
	m := newTestModel(t, st)

	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	press(m, tea.KeyCtrlX)

	// The third row is detached but the first "A" is removed from the list.
	if got := texts(m); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("rows: got %v", got)
	}
	if got := stored(t, st); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("stored: got %v", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp to last row, got %d", m.cursor)
	}
}

func TestCursorBounds(t *testing.T) {
	st := store.NewMemoryStore()
	seed(t, st, "A", "B")
	m := newTestModel(t, st)

	press(m, tea.KeyUp)
	if m.cursor != 0 {
		t.Errorf("cursor went above first row: %d", m.cursor)
	}
	for i := 0; i < 5; i++ {
		press(m, tea.KeyCtrlN)
	}
	if m.cursor != 1 {
		t.Errorf("cursor went past last row: %d", m.cursor)
	}
	press(m, tea.KeyCtrlP)
	if m.cursor != 0 {
		t.Errorf("ctrl+p: got %d", m.cursor)
	}
}

func TestRemoveOnEmptyListIsNoop(t *testing.T) {
	st := store.NewMemoryStore()
	m := newTestModel(t, st)

	press(m, tea.KeyDelete)
	if st.Writes() != 0 {
		t.Errorf("writes: got %d", st.Writes())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore())

	typeText(m, "?")
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? on empty input should show help")
	}
	typeText(m, "?")
	if m.showHelp {
		t.Fatal("? should toggle help off")
	}

	typeText(m, "why")
	typeText(m, "?")
	if m.showHelp || m.InputValue() != "why?" {
		t.Errorf("? with input should be typed, got help=%v input=%q", m.showHelp, m.InputValue())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t, store.NewMemoryStore())
		if cmd := press(m, k); !isQuit(cmd) {
			t.Errorf("%v should quit", k)
		}
	}
}

func TestCtrlCQuitsDuringWarning(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore())
	press(m, tea.KeyEnter)
	if cmd := press(m, tea.KeyCtrlC); !isQuit(cmd) {
		t.Error("ctrl+c should quit even with a warning shown")
	}
}

func TestWindowSizeSetsInputWidth(t *testing.T) {
	m := newTestModel(t, store.NewMemoryStore())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.input.Width != 76 {
		t.Errorf("input width: got %d", m.input.Width)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
