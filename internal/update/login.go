package update

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Login.Submitting {
		// Submit stays disabled while the call is in flight.
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.Login.focus = (m.Login.focus + 1) % 2
		if m.Login.focus == 0 {
			m.Login.email.Focus()
			m.Login.password.Blur()
		} else {
			m.Login.email.Blur()
			m.Login.password.Focus()
		}
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.Login.email.Value())
		password := m.Login.password.Value()
		if email == "" || password == "" {
			m.Login.Err = "email and password are required"
			return m, nil
		}
		m.Login.Err = ""
		m.Login.Submitting = true
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.Login.focus == 0 {
		m.Login.email, cmd = m.Login.email.Update(msg)
	} else {
		m.Login.password, cmd = m.Login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	login := m.login
	return func() tea.Msg {
		token, err := login(context.Background(), email, password)
		return loginResultMsg{token: token, err: err}
	}
}
