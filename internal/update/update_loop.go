package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmwangi/todoq/internal/model"
	"github.com/nmwangi/todoq/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Screen == ScreenTodos {
		return tea.Batch(m.spinner.Tick, m.fetchTasksCmd())
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Screen == ScreenLogin {
			return m.handleLoginKey(typed)
		}
		if m.Mode != ModeIdle {
			return m.handleModalKey(typed)
		}
		return m.handleListKey(typed)

	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case loginResultMsg:
		m.Login.Submitting = false
		if typed.err != nil {
			m.Login.Err = typed.err.Error()
			return m, nil
		}
		m.Login.Err = ""
		m.Authenticated = true
		m.Backend = m.dial(typed.token)
		m.Screen = ScreenTodos
		m.Loading = true
		m.fetchSeq++
		return m, tea.Batch(m.spinner.Tick, m.fetchTasksCmd())

	case tasksLoadedMsg:
		if typed.seq != m.fetchSeq {
			// A newer fetch superseded this one.
			return m, nil
		}
		m.Loading = false
		if typed.err != nil {
			m.LoadErr = typed.err
			return m, nil
		}
		m.LoadErr = nil
		m.Tasks = typed.tasks
		m.clampCursor()
		return m, nil

	case taskListMsg:
		m.Modal.Submitting = false
		if typed.err != nil {
			if errors.Is(typed.err, model.ErrEmptyText) {
				// Validation no-op: the open modal simply stays open.
				return m, nil
			}
			m.Status = StatusBar{Text: typed.err.Error(), IsError: true}
			return m, nil
		}
		m.Tasks = typed.tasks
		m.clampCursor()
		if typed.action == "add" || typed.action == "edit" {
			m.Mode = ModeIdle
		}
		m.Status = StatusBar{Text: fmt.Sprintf("task %s ok", typed.action), IsError: false}
		return m, nil
	}

	return m, nil
}

func (m Model) fetchTasksCmd() tea.Cmd {
	seq := m.fetchSeq
	backend := m.Backend
	prior := m.Tasks
	return func() tea.Msg {
		next, err := backend.List(context.Background(), prior)
		return tasksLoadedMsg{seq: seq, tasks: next, err: err}
	}
}

func (m Model) View() string {
	var body string
	switch m.Screen {
	case ScreenLogin:
		body = views.RenderLoginPanel(views.LoginPanelData{
			EmailView:    m.Login.email.View(),
			PasswordView: m.Login.password.View(),
			Submitting:   m.Login.Submitting,
			ErrorText:    m.Login.Err,
		})
	default:
		body = views.RenderTodoPanel(m.todoPanelData())
	}

	overlay := ""
	switch {
	case m.HelpVisible:
		overlay = views.RenderHelp()
	case m.Screen == ScreenTodos && m.Mode == ModeAdd:
		overlay = views.RenderTaskModal(views.ModalData{
			Title:      "Add New Task",
			TextView:   m.Modal.text.View(),
			DueView:    m.Modal.due.View(),
			Submitting: m.Modal.Submitting,
			ErrorText:  m.Modal.Err,
		})
	case m.Screen == ScreenTodos && m.Mode == ModeEdit:
		overlay = views.RenderTaskModal(views.ModalData{
			Title:         "Edit Task",
			TextView:      m.Modal.text.View(),
			DueView:       m.Modal.due.View(),
			TimestampView: m.Modal.timestamp.View(),
			ShowTimestamp: true,
			Submitting:    m.Modal.Submitting,
			ErrorText:     m.Modal.Err,
		})
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	header := "todoq"
	if m.Backend != nil {
		header = fmt.Sprintf("todoq | store: %s", m.Backend.Name())
	}
	footer := ""
	if m.Screen == ScreenTodos {
		footer = fmt.Sprintf("keys: %s new | %s edit | space toggle | %s delete | %s refresh | %s help | %s quit",
			m.Keys.NewTask, m.Keys.Edit, m.Keys.Delete, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit)
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Body:       body,
		Overlay:    overlay,
		StatusLine: status,
		Footer:     footer,
	})
}

func (m Model) todoPanelData() views.TodoPanelData {
	now := m.now()
	data := views.TodoPanelData{
		Loading:     m.Loading,
		SpinnerView: m.spinner.View(),
		CurrentTime: model.FormatTimestamp(now),
	}
	if m.LoadErr != nil {
		data.ErrorText = m.LoadErr.Error()
		return data
	}
	for i, t := range m.Tasks {
		data.Items = append(data.Items, views.TodoItemData{
			Text:      t.Text,
			Completed: t.Completed,
			Timestamp: t.Timestamp,
			DueLine:   model.FormatDueDate(t.DueDate),
			Overdue:   model.IsOverdue(t.DueDate, now),
			Selected:  i == m.Cursor,
		})
	}
	return data
}
