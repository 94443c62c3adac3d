package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
)

type updateKind int

const (
	updateToggle updateKind = iota
	updateTitle
)

type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

type taskCreatedMsg struct {
	task service.Task
	err  error
}

type taskUpdatedMsg struct {
	id   string
	kind updateKind
	task service.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

func loadTasks(ctx context.Context, svc service.Service) tea.Cmd {
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func createTask(ctx context.Context, svc service.Service, title string) tea.Cmd {
	return func() tea.Msg {
		task, err := svc.CreateTask(ctx, title)
		return taskCreatedMsg{task: task, err: err}
	}
}

func updateTask(ctx context.Context, svc service.Service, id string, updates service.Updates, kind updateKind) tea.Cmd {
	return func() tea.Msg {
		task, err := svc.UpdateTask(ctx, id, updates)
		return taskUpdatedMsg{id: id, kind: kind, task: task, err: err}
	}
}

func deleteTask(ctx context.Context, svc service.Service, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.DeleteTask(ctx, id)
		return taskDeletedMsg{id: id, err: err}
	}
}
