package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nmwangi/todoq/internal/model"
	"github.com/nmwangi/todoq/internal/remote"
	"github.com/nmwangi/todoq/internal/tasks"
)

type Screen string

const (
	ScreenLogin Screen = "Login"
	ScreenTodos Screen = "Todos"
)

// Mode is the controller-level UI mode. A single field holds it, so
// the two modals are mutually exclusive by construction.
type Mode string

const (
	ModeIdle Mode = "Idle"
	ModeAdd  Mode = "AddModal"
	ModeEdit Mode = "EditModal"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NewTask string
	Edit    string
	Toggle  string
	Delete  string
	Refresh string
	Help    string
	Quit    string
}

// LoginFn exchanges credentials for an opaque token.
type LoginFn func(ctx context.Context, email, password string) (string, error)

// DialFn builds the authenticated backend once a token exists.
type DialFn func(token string) tasks.Backend

type LoginState struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	Submitting bool
	Err        string
}

type ModalState struct {
	text       textinput.Model
	due        textinput.Model
	timestamp  textinput.Model
	focus      int
	TaskID     int
	Submitting bool
	Err        string
}

type Model struct {
	Screen        Screen
	Mode          Mode
	Backend       tasks.Backend
	Tasks         []model.Task
	Cursor        int
	Loading       bool
	LoadErr       error
	Authenticated bool
	Status        StatusBar
	Keys          GlobalKeyMap
	HelpVisible   bool
	Quitting      bool
	Login         LoginState
	Modal         ModalState

	login   LoginFn
	dial    DialFn
	spinner spinner.Model
	// fetchSeq guards list loads against stale in-flight results.
	fetchSeq int
	now      func() time.Time
}

type loginResultMsg struct {
	token string
	err   error
}

type tasksLoadedMsg struct {
	seq   int
	tasks []model.Task
	err   error
}

type taskListMsg struct {
	tasks  []model.Task
	action string
	err    error
}

// NewModel runs the controller against an already usable backend.
// The local variant starts here, with no login screen.
func NewModel(backend tasks.Backend) Model {
	m := newBaseModel()
	m.Screen = ScreenTodos
	m.Backend = backend
	m.Authenticated = true
	m.Loading = true
	return m
}

// NewRemoteModel starts at the login screen and dials the remote
// backend with the token the login flow hands back.
func NewRemoteModel(endpoint string) Model {
	return NewModelWithAuth(
		func(ctx context.Context, email, password string) (string, error) {
			return remote.Login(ctx, endpoint, email, password)
		},
		func(token string) tasks.Backend {
			return tasks.NewRemoteBackend(remote.NewGateway(remote.NewClient(endpoint, token)))
		},
	)
}

// NewModelWithAuth is NewRemoteModel with injectable auth functions.
func NewModelWithAuth(login LoginFn, dial DialFn) Model {
	m := newBaseModel()
	m.Screen = ScreenLogin
	m.login = login
	m.dial = dial
	return m
}

func newBaseModel() Model {
	email := textinput.New()
	email.Placeholder = "Email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword

	text := textinput.New()
	text.Placeholder = "Add a new task..."
	due := textinput.New()
	due.Placeholder = "Due date (2006-01-02T15:04, optional)"
	timestamp := textinput.New()
	timestamp.Placeholder = "Created at"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		Mode: ModeIdle,
		Keys: GlobalKeyMap{
			NewTask: "n",
			Edit:    "e",
			Toggle:  " ",
			Delete:  "d",
			Refresh: "r",
			Help:    "?",
			Quit:    "q",
		},
		Login:   LoginState{email: email, password: password},
		Modal:   ModalState{text: text, due: due, timestamp: timestamp},
		spinner: sp,
		now:     time.Now,
	}
}

func (m *Model) clampCursor() {
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
