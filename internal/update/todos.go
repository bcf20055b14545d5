package update

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nmwangi/todoq/internal/model"
)

const dueInputLayout = "2006-01-02T15:04"

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		return m, nil
	case m.Keys.NewTask:
		m.Mode = ModeAdd
		m.Modal.Err = ""
		m.Modal.text.SetValue("")
		m.Modal.due.SetValue("")
		m.focusModalField(0)
		return m, nil
	case m.Keys.Edit:
		if len(m.Tasks) == 0 {
			return m, nil
		}
		task := m.Tasks[m.Cursor]
		m.Mode = ModeEdit
		m.Modal.Err = ""
		m.Modal.TaskID = task.ID
		m.Modal.text.SetValue(task.Text)
		m.Modal.due.SetValue(formatDueInput(task.DueDate))
		m.Modal.timestamp.SetValue(task.Timestamp)
		m.focusModalField(0)
		return m, nil
	case m.Keys.Toggle, "enter":
		if len(m.Tasks) == 0 {
			return m, nil
		}
		return m, m.toggleCmd(m.Tasks[m.Cursor].ID)
	case m.Keys.Delete:
		if len(m.Tasks) == 0 {
			return m, nil
		}
		return m, m.deleteCmd(m.Tasks[m.Cursor].ID)
	case m.Keys.Refresh:
		m.Loading = true
		m.LoadErr = nil
		m.fetchSeq++
		return m, tea.Batch(m.spinner.Tick, m.fetchTasksCmd())
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Modal.Submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.Mode = ModeIdle
		m.Modal.Err = ""
		return m, nil
	case "tab", "down":
		m.focusModalField(m.Modal.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusModalField(m.Modal.focus - 1)
		return m, nil
	case "enter":
		return m.submitModal()
	}

	var cmd tea.Cmd
	switch m.Modal.focus {
	case 0:
		m.Modal.text, cmd = m.Modal.text.Update(msg)
	case 1:
		m.Modal.due, cmd = m.Modal.due.Update(msg)
	default:
		m.Modal.timestamp, cmd = m.Modal.timestamp.Update(msg)
	}
	return m, cmd
}

func (m Model) submitModal() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.Modal.text.Value())
	if text == "" {
		// Empty submission is a no-op: the modal stays open and no
		// call is issued.
		return m, nil
	}
	due, err := parseDueInput(m.Modal.due.Value())
	if err != nil {
		m.Modal.Err = "due date must look like " + dueInputLayout
		return m, nil
	}
	m.Modal.Err = ""
	m.Modal.Submitting = true
	if m.Mode == ModeAdd {
		return m, m.createCmd(text, due)
	}
	return m, m.editCmd(m.Modal.TaskID, text, due, strings.TrimSpace(m.Modal.timestamp.Value()))
}

func (m *Model) focusModalField(focus int) {
	fields := 2
	if m.Mode == ModeEdit {
		fields = 3
	}
	m.Modal.focus = ((focus % fields) + fields) % fields
	m.Modal.text.Blur()
	m.Modal.due.Blur()
	m.Modal.timestamp.Blur()
	switch m.Modal.focus {
	case 0:
		m.Modal.text.Focus()
	case 1:
		m.Modal.due.Focus()
	default:
		m.Modal.timestamp.Focus()
	}
}

func (m Model) createCmd(text string, due *time.Time) tea.Cmd {
	backend := m.Backend
	prior := m.Tasks
	return func() tea.Msg {
		next, err := backend.Create(context.Background(), prior, text, due)
		return taskListMsg{tasks: next, action: "add", err: err}
	}
}

func (m Model) editCmd(id int, text string, due *time.Time, timestamp string) tea.Cmd {
	backend := m.Backend
	prior := m.Tasks
	return func() tea.Msg {
		next, err := backend.Edit(context.Background(), prior, id, text, due, timestamp)
		return taskListMsg{tasks: next, action: "edit", err: err}
	}
}

func (m Model) toggleCmd(id int) tea.Cmd {
	backend := m.Backend
	prior := m.Tasks
	return func() tea.Msg {
		next, err := backend.Toggle(context.Background(), prior, id)
		return taskListMsg{tasks: next, action: "toggle", err: err}
	}
}

func (m Model) deleteCmd(id int) tea.Cmd {
	backend := m.Backend
	prior := m.Tasks
	return func() tea.Msg {
		next, err := backend.Delete(context.Background(), prior, id)
		return taskListMsg{tasks: next, action: "delete", err: err}
	}
}

// parseDueInput turns the optional due field into a point in time.
// Blank means absent, never an empty string past this boundary.
func parseDueInput(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range []string{dueInputLayout, "2006-01-02 15:04", "2006-01-02"} {
		if due, err := time.ParseInLocation(layout, trimmed, model.EastAfricaTime); err == nil {
			return &due, nil
		}
	}
	return nil, &time.ParseError{Layout: dueInputLayout, Value: trimmed}
}

func formatDueInput(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.In(model.EastAfricaTime).Format(dueInputLayout)
}
