package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/board"
	"todo/internal/output"
	"todo/internal/service"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// appModel is the root model. API calls run in commands; their results come
// back as messages and are applied to the board here.
type appModel struct {
	ctx    context.Context
	svc    service.Service
	board  *board.Board
	logger *log.Logger

	input   inputModel
	items   map[string]*itemModel
	editing string // id of the row in edit mode
	cursor  int
	focus   focusArea

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width int
}

func newAppModel(ctx context.Context, svc service.Service) appModel {
	b := board.New(svc)
	b.BeginLoad()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return appModel{
		ctx:     ctx,
		svc:     svc,
		board:   b,
		logger:  log.FromContext(ctx),
		input:   newInputModel(),
		items:   make(map[string]*itemModel),
		focus:   focusInput,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTasks(m.ctx, m.svc))
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.setWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tasksLoadedMsg:
		if err := m.board.ApplyLoad(msg.tasks, msg.err); err != nil {
			m.logger.Warn("load tasks", "err", err)
		} else {
			m.logger.Debug("loaded tasks", "count", len(msg.tasks))
		}
		m.syncItems()
		return m, nil

	case taskCreatedMsg:
		err := m.board.ApplyCreate(msg.task, msg.err)
		m.input.resolve(err)
		if err != nil {
			m.logger.Warn("create task", "err", err)
			return m, nil
		}
		// keep the selection on the same row
		if m.focus == focusList && m.board.Len() > 1 {
			m.cursor++
		}
		m.syncItems()
		return m, nil

	case taskUpdatedMsg:
		err := m.board.ApplyUpdate(msg.id, msg.task, msg.err)
		m.board.Release(msg.id)
		if err != nil {
			m.logger.Warn("update task", "id", msg.id, "err", err)
		}
		if msg.kind == updateTitle {
			if it := m.items[msg.id]; it != nil {
				current, _ := m.board.Task(msg.id)
				it.resolveEdit(current, err)
				if !it.editing && m.editing == msg.id {
					m.editing = ""
				}
			}
		}
		m.syncItems()
		return m, nil

	case taskDeletedMsg:
		err := m.board.ApplyDelete(msg.id, msg.err)
		m.board.Release(msg.id)
		if err != nil {
			m.logger.Warn("delete task", "id", msg.id, "err", err)
		}
		m.syncItems()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// forward hands anything else, such as cursor blinks, to the focused field.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing != "" {
		if it := m.items[m.editing]; it != nil {
			return m, it.update(msg, m.board.Busy(m.editing))
		}
		return m, nil
	}
	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.editing != "" {
		return m.handleEditKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m appModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		title, ok := m.input.submit()
		if !ok {
			return m, nil
		}
		m.logger.Debug("create task", "title", title)
		return m, createTask(m.ctx, m.svc, title)

	case key.Matches(msg, m.keys.FocusList):
		m.focus = focusList
		m.input.blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.board.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected()
	case key.Matches(msg, m.keys.Edit):
		cmd := m.editSelected()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()
	case key.Matches(msg, m.keys.Reload):
		if m.board.Loading() {
			return m, nil
		}
		m.board.BeginLoad()
		return m, loadTasks(m.ctx, m.svc)
	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		return m, m.input.focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.editing
	it := m.items[id]
	task, ok := m.board.Task(id)
	if it == nil || !ok {
		m.editing = ""
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Save), key.Matches(msg, m.keys.Blur):
		return m, m.commitEdit(task, it)
	case key.Matches(msg, m.keys.Cancel):
		if m.board.Busy(id) {
			return m, nil
		}
		it.cancel(task)
		m.editing = ""
		return m, nil
	}
	return m, it.update(msg, m.board.Busy(id))
}

func (m appModel) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= m.board.Len() {
		return service.Task{}, false
	}
	return m.board.At(m.cursor), true
}

func (m appModel) toggleSelected() tea.Cmd {
	task, ok := m.selected()
	if !ok || !m.board.Acquire(task.ID) {
		return nil
	}
	m.logger.Debug("toggle task", "id", task.ID, "completed", !task.Completed)
	return updateTask(m.ctx, m.svc, task.ID, service.SetCompleted(!task.Completed), updateToggle)
}

func (m *appModel) editSelected() tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	it := m.item(task.ID)
	cmd, ok := it.startEdit(task, m.board.Busy(task.ID))
	if !ok {
		return nil
	}
	m.editing = task.ID
	return cmd
}

func (m appModel) commitEdit(task service.Task, it *itemModel) tea.Cmd {
	id := task.ID
	title, ok := it.commit(task)
	if !ok || !m.board.Acquire(id) {
		return nil
	}
	m.logger.Debug("rename task", "id", id, "title", title)
	return updateTask(m.ctx, m.svc, id, service.SetTitle(title), updateTitle)
}

func (m appModel) deleteSelected() tea.Cmd {
	task, ok := m.selected()
	if !ok || !m.board.Acquire(task.ID) {
		return nil
	}
	m.logger.Debug("delete task", "id", task.ID)
	return deleteTask(m.ctx, m.svc, task.ID)
}

func (m appModel) item(id string) *itemModel {
	it, ok := m.items[id]
	if !ok {
		it = newItemModel()
		m.items[id] = it
	}
	return it
}

// syncItems keeps the row state in step with the board and clamps the cursor.
func (m *appModel) syncItems() {
	live := make(map[string]bool, m.board.Len())
	for _, task := range m.board.Tasks() {
		live[task.ID] = true
		m.item(task.ID)
	}
	for id := range m.items {
		if !live[id] {
			delete(m.items, id)
		}
	}
	if m.editing != "" && !live[m.editing] {
		m.editing = ""
	}
	if m.cursor >= m.board.Len() {
		m.cursor = m.board.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("My Tasks"))
	b.WriteString("\n")
	b.WriteString(countStyle.Render(output.RemainingText(m.board.Remaining())))
	b.WriteString("\n\n")

	if msg := m.board.Err(); msg != "" {
		b.WriteString(bannerStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View(m.spinner.View()))
	b.WriteString("\n\n")

	list := listView{
		loading: m.board.Loading(),
		tasks:   m.board.Tasks(),
		items:   m.items,
		busy:    m.board.Busy,
		cursor:  m.cursor,
		focused: m.focus == focusList,
		spinner: m.spinner.View(),
	}
	b.WriteString(list.render())
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.helpKeys()))
	b.WriteString("\n")
	return b.String()
}

func (m appModel) helpKeys() help.KeyMap {
	switch {
	case m.editing != "":
		return m.keys.editHelp()
	case m.focus == focusInput:
		return m.keys.inputHelp()
	default:
		return m.keys.listHelp()
	}
}
