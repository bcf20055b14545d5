package views

import (
	"fmt"
	"strings"
)

type LoginPanelData struct {
	EmailView    string
	PasswordView string
	Submitting   bool
	ErrorText    string
}

func RenderLoginPanel(data LoginPanelData) string {
	var b strings.Builder
	b.WriteString("login:\n")
	b.WriteString(data.EmailView + "\n")
	b.WriteString(data.PasswordView + "\n")
	if data.Submitting {
		b.WriteString("Logging in...\n")
	} else {
		b.WriteString("[enter] login  [tab] switch field\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("Error: "+data.ErrorText) + "\n")
	}
	return strings.TrimSpace(b.String())
}

type TodoItemData struct {
	Text      string
	Completed bool
	Timestamp string
	DueLine   string
	Overdue   bool
	Selected  bool
}

type TodoPanelData struct {
	Items       []TodoItemData
	Loading     bool
	SpinnerView string
	ErrorText   string
	CurrentTime string
}

func RenderTodoPanel(data TodoPanelData) string {
	var b strings.Builder
	b.WriteString("Todo List\n")
	if data.CurrentTime != "" {
		b.WriteString(subtleStyle.Render("Current Time: "+data.CurrentTime) + "\n")
	}
	if data.Loading {
		b.WriteString(data.SpinnerView + " Loading...\n")
		return strings.TrimSpace(b.String())
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("Error: "+data.ErrorText) + "\n")
		return strings.TrimSpace(b.String())
	}
	if len(data.Items) == 0 {
		b.WriteString("No tasks yet. Add one!\n")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := "  "
		if item.Selected {
			cursor = "> "
		}
		checkbox := "[ ]"
		text := item.Text
		if item.Completed {
			checkbox = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, checkbox, text))
		b.WriteString("     " + subtleStyle.Render(item.Timestamp) + "\n")
		due := subtleStyle.Render(item.DueLine)
		if item.Overdue {
			due = overdueStyle.Render(item.DueLine)
		}
		b.WriteString("     " + due + "\n")
	}
	return strings.TrimSpace(b.String())
}

type ModalData struct {
	Title         string
	TextView      string
	DueView       string
	TimestampView string
	ShowTimestamp bool
	Submitting    bool
	ErrorText     string
}

func RenderTaskModal(data ModalData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	b.WriteString(data.TextView + "\n")
	b.WriteString(data.DueView + "\n")
	if data.ShowTimestamp {
		b.WriteString(data.TimestampView + "\n")
	}
	if data.Submitting {
		b.WriteString("Saving...\n")
	} else {
		b.WriteString("[enter] save  [tab] next field  [esc] cancel\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render(data.ErrorText) + "\n")
	}
	return strings.TrimSpace(b.String())
}

const helpMarkdown = `# todoq

## List
- **n** new task
- **e** edit task at cursor
- **space** toggle done
- **d** delete task at cursor
- **r** refresh from the store
- **j/k** move cursor
- **?** toggle help
- **q** quit

## Modals
- **tab** next field
- **enter** submit
- **esc** cancel

Due dates use the ` + "`2006-01-02T15:04`" + ` shape and may be left blank.
`

func RenderHelp() string {
	return RenderMarkdown(helpMarkdown)
}
