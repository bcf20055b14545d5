package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmwangi/todoq/internal/model"
	"github.com/nmwangi/todoq/internal/storage"
	"github.com/nmwangi/todoq/internal/tasks"
)

var testNow = time.Date(2025, 5, 26, 16, 19, 0, 0, model.EastAfricaTime)

func newLocalModel(store *storage.MemoryStore) Model {
	m := NewModel(tasks.NewLocalBackend(store, func() time.Time { return testNow }))
	m.now = func() time.Time { return testNow }
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// run executes a command and feeds the resulting message back in,
// the way the bubbletea runtime would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, _ := apply(t, m, cmd())
	return next
}

func TestNewModelStartsLoadingTodos(t *testing.T) {
	m := newLocalModel(storage.NewMemoryStore())
	if m.Screen != ScreenTodos {
		t.Fatalf("expected todos screen, got %q", m.Screen)
	}
	if !m.Loading {
		t.Fatal("expected loading state before the first fetch")
	}
	if m.Mode != ModeIdle {
		t.Fatalf("expected idle mode, got %q", m.Mode)
	}
}

func TestInitialFetchPopulatesTasks(t *testing.T) {
	store := storage.NewMemoryStore(model.Task{ID: 1, Text: "Stored", Timestamp: "x"})
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())
	if m.Loading {
		t.Fatal("loading must clear after fetch")
	}
	if len(m.Tasks) != 1 || m.Tasks[0].Text != "Stored" {
		t.Fatalf("unexpected tasks: %#v", m.Tasks)
	}
}

func TestStaleFetchResultIsIgnored(t *testing.T) {
	m := newLocalModel(storage.NewMemoryStore())
	m.Tasks = []model.Task{{ID: 1, Text: "Current", Timestamp: "x"}}
	m.fetchSeq = 2

	next, _ := apply(t, m, tasksLoadedMsg{seq: 1, tasks: nil, err: nil})
	if len(next.Tasks) != 1 {
		t.Fatal("stale result must not replace newer state")
	}
}

func TestListFetchFailureIsUserVisible(t *testing.T) {
	store := storage.NewMemoryStore()
	store.LoadErr = errors.New("slot unreadable")
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())
	if m.LoadErr == nil {
		t.Fatal("expected visible load error")
	}
	if !strings.Contains(m.View(), "slot unreadable") {
		t.Fatal("load error must be rendered")
	}
}

func TestAddModalOpenAndCancel(t *testing.T) {
	m := newLocalModel(storage.NewMemoryStore())
	m.Loading = false

	m, _ = apply(t, m, keyRunes("n"))
	if m.Mode != ModeAdd {
		t.Fatalf("expected add modal, got %q", m.Mode)
	}
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode != ModeIdle {
		t.Fatalf("expected idle after cancel, got %q", m.Mode)
	}
}

func TestModalsAreMutuallyExclusive(t *testing.T) {
	store := storage.NewMemoryStore(model.Task{ID: 1, Text: "Task", Timestamp: "x"})
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())

	m, _ = apply(t, m, keyRunes("e"))
	if m.Mode != ModeEdit {
		t.Fatalf("expected edit modal, got %q", m.Mode)
	}
	if m.Modal.text.Value() != "Task" {
		t.Fatalf("edit modal must be prefilled, got %q", m.Modal.text.Value())
	}
	// A single mode field holds the open modal, so switching modes
	// implicitly closes the other.
	m.Mode = ModeIdle
	m, _ = apply(t, m, keyRunes("n"))
	if m.Mode != ModeAdd || m.Modal.text.Value() != "" {
		t.Fatalf("add modal must open clean, got mode %q text %q", m.Mode, m.Modal.text.Value())
	}
}

func TestEmptySubmitIsNoOp(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newLocalModel(store)
	m.Loading = false
	m, _ = apply(t, m, keyRunes("n"))
	m, _ = apply(t, m, keyRunes("   "))

	next, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("no call may be issued for empty text")
	}
	if next.Mode != ModeAdd {
		t.Fatal("modal must stay open")
	}
	if len(next.Tasks) != 0 || store.SaveCalls != 0 {
		t.Fatal("state must be unchanged")
	}
}

func TestAddFlowCreatesTaskAndClosesModal(t *testing.T) {
	store := storage.NewMemoryStore()
	m := newLocalModel(store)
	m.Loading = false

	m, _ = apply(t, m, keyRunes("n"))
	m, _ = apply(t, m, keyRunes("Buy milk"))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, keyRunes("2025-07-01T10:00"))

	next, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !next.Modal.Submitting {
		t.Fatal("submit must be marked in flight")
	}
	next = run(t, next, cmd)

	if next.Mode != ModeIdle {
		t.Fatal("modal must close on success")
	}
	if len(next.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(next.Tasks))
	}
	got := next.Tasks[0]
	if got.Text != "Buy milk" || got.Completed {
		t.Fatalf("unexpected task: %#v", got)
	}
	want := time.Date(2025, 7, 1, 10, 0, 0, 0, model.EastAfricaTime)
	if got.DueDate == nil || !got.DueDate.Equal(want) {
		t.Fatalf("unexpected due date: %v", got.DueDate)
	}
}

func TestInvalidDueDateKeepsModalOpen(t *testing.T) {
	m := newLocalModel(storage.NewMemoryStore())
	m.Loading = false
	m, _ = apply(t, m, keyRunes("n"))
	m, _ = apply(t, m, keyRunes("Task"))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, keyRunes("next tuesday"))

	next, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("no call may be issued for an unparsable due date")
	}
	if next.Mode != ModeAdd || next.Modal.Err == "" {
		t.Fatalf("expected open modal with error, got mode %q err %q", next.Mode, next.Modal.Err)
	}
}

func TestToggleFlow(t *testing.T) {
	store := storage.NewMemoryStore(model.Task{ID: 1, Text: "Task", Timestamp: "x"})
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())

	_, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = run(t, m, cmd)
	if !m.Tasks[0].Completed {
		t.Fatal("expected completed after toggle")
	}

	_, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = run(t, m, cmd)
	if m.Tasks[0].Completed {
		t.Fatal("toggling twice must restore the original value")
	}
}

func TestDeleteFlowClampsCursor(t *testing.T) {
	store := storage.NewMemoryStore(
		model.Task{ID: 1, Text: "A", Timestamp: "x"},
		model.Task{ID: 2, Text: "B", Timestamp: "y"},
	)
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())
	m.Cursor = 1

	_, cmd := apply(t, m, keyRunes("d"))
	m = run(t, m, cmd)
	if len(m.Tasks) != 1 || m.Tasks[0].ID != 1 {
		t.Fatalf("unexpected tasks after delete: %#v", m.Tasks)
	}
	if m.Cursor != 0 {
		t.Fatalf("cursor must clamp, got %d", m.Cursor)
	}
}

func TestMutationFailureSurfacesInStatusBar(t *testing.T) {
	store := storage.NewMemoryStore(model.Task{ID: 1, Text: "Task", Timestamp: "x"})
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())
	store.SaveErr = errors.New("disk full")

	_, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = run(t, m, cmd)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	if m.Tasks[0].Completed {
		t.Fatal("prior state must be untouched on failure")
	}
}

func TestLoginFlowSwitchesScreenWithoutRestart(t *testing.T) {
	store := storage.NewMemoryStore(model.Task{ID: 1, Text: "Remote task", Timestamp: "x"})
	var gotEmail, gotPassword string
	m := NewModelWithAuth(
		func(ctx context.Context, email, password string) (string, error) {
			gotEmail, gotPassword = email, password
			return "opaque-token", nil
		},
		func(token string) tasks.Backend {
			if token != "opaque-token" {
				t.Fatalf("backend dialed with wrong token %q", token)
			}
			return tasks.NewLocalBackend(store, func() time.Time { return testNow })
		},
	)
	if m.Screen != ScreenLogin {
		t.Fatalf("expected login screen, got %q", m.Screen)
	}

	m, _ = apply(t, m, keyRunes("jane@example.com"))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, keyRunes("hunter2"))

	next, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !next.Login.Submitting {
		t.Fatal("login submit must be marked in flight")
	}
	// Keys are ignored while the login call is in flight.
	mid, _ := apply(t, next, keyRunes("x"))
	if mid.Login.email.Value() != "jane@example.com" {
		t.Fatal("inputs must be frozen during login")
	}

	next, cmd2 := apply(t, next, cmd())
	if gotEmail != "jane@example.com" || gotPassword != "hunter2" {
		t.Fatalf("credentials not passed through: %q %q", gotEmail, gotPassword)
	}
	if next.Screen != ScreenTodos || !next.Authenticated {
		t.Fatalf("expected authenticated todos screen, got %q", next.Screen)
	}
	if cmd2 == nil {
		t.Fatal("expected initial fetch after login")
	}
}

func TestLoginFailureStaysOnLoginScreen(t *testing.T) {
	m := NewModelWithAuth(
		func(ctx context.Context, email, password string) (string, error) {
			return "", errors.New("bad credentials")
		},
		func(token string) tasks.Backend { return nil },
	)
	m, _ = apply(t, m, keyRunes("jane@example.com"))
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = apply(t, m, keyRunes("wrong"))
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = apply(t, m, cmd())
	if m.Screen != ScreenLogin || m.Authenticated {
		t.Fatal("failed login must stay on the login screen")
	}
	if m.Login.Submitting {
		t.Fatal("submit must re-enable after failure")
	}
	if m.Login.Err != "bad credentials" {
		t.Fatalf("unexpected login error %q", m.Login.Err)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	m := NewModelWithAuth(
		func(ctx context.Context, email, password string) (string, error) { return "t", nil },
		func(token string) tasks.Backend { return nil },
	)
	next, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("no call may be issued without credentials")
	}
	if next.Login.Err == "" {
		t.Fatal("expected validation message")
	}
}

func TestViewShowsTaskLines(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, model.EastAfricaTime)
	store := storage.NewMemoryStore(
		model.Task{ID: 1, Text: "Overdue thing", Timestamp: "5/26/2025, 4:19:00 PM", DueDate: &due},
	)
	m := newLocalModel(store)
	m = run(t, m, m.fetchTasksCmd())

	out := m.View()
	if !strings.Contains(out, "Overdue thing") {
		t.Fatalf("expected task text in view: %q", out)
	}
	if !strings.Contains(out, "Due: Jan 1, 2025, 12:00 AM EAT") {
		t.Fatalf("expected due line in view: %q", out)
	}
}

func TestQuitKey(t *testing.T) {
	m := newLocalModel(storage.NewMemoryStore())
	m.Loading = false
	next, cmd := apply(t, m, keyRunes("q"))
	if !next.Quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestParseDueInput(t *testing.T) {
	cases := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"2025-07-01T10:00", timePtr(time.Date(2025, 7, 1, 10, 0, 0, 0, model.EastAfricaTime)), false},
		{"2025-07-01", timePtr(time.Date(2025, 7, 1, 0, 0, 0, 0, model.EastAfricaTime)), false},
		{"someday", nil, true},
	}
	for _, tc := range cases {
		got, err := parseDueInput(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseDueInput(%q) err = %v", tc.in, err)
		}
		if tc.want == nil && got != nil {
			t.Fatalf("parseDueInput(%q) = %v, want nil", tc.in, got)
		}
		if tc.want != nil && (got == nil || !got.Equal(*tc.want)) {
			t.Fatalf("parseDueInput(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
