package tui

import (
	"strings"

	"todo/internal/output"
	"todo/internal/service"
)

const (
	loadingText   = "Loading your tasks..."
	emptyText     = "No tasks yet!"
	emptyHintText = "Start by adding your first task above"
)

type listView struct {
	loading bool
	tasks   []service.Task
	items   map[string]*itemModel
	busy    func(id string) bool
	cursor  int
	focused bool
	spinner string
}

func (l listView) render() string {
	if l.loading {
		return loadingStyle.Render(l.spinner + " " + loadingText)
	}
	if len(l.tasks) == 0 {
		return emptyTitleStyle.Render(emptyText) + "\n" + hintStyle.Render(emptyHintText)
	}

	var b strings.Builder
	for i, task := range l.tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.row(task, i == l.cursor && l.focused))
	}
	return b.String()
}

func (l listView) row(task service.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("› ")
	}

	var body string
	if it := l.items[task.ID]; it != nil && it.editing {
		body = editStyle.Render(it.draft.View())
	} else if task.Completed {
		body = completedStyle.Render(output.NormalizeTitle(task.Title))
	} else {
		body = titleStyle.Render(output.NormalizeTitle(task.Title))
	}

	if l.busy(task.ID) {
		body += " " + busyStyle.Render(l.spinner)
	}
	return cursor + checkboxStyle.Render(output.Checkbox(task.Completed)) + " " + body
}
