package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/service"
)

// itemModel is the local state of one row: whether it is being edited and
// the draft title. The busy flag lives in the board.
type itemModel struct {
	editing bool
	draft   textinput.Model
	// seeded is the draft as first shown. The field rewrites newlines and
	// tabs, so an untouched draft may differ from the stored title.
	seeded string
}

func newItemModel() *itemModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = 40
	return &itemModel{draft: ti}
}

// startEdit enters edit mode seeded with the current title. Completed and
// busy tasks cannot be edited.
func (it *itemModel) startEdit(task service.Task, busy bool) (tea.Cmd, bool) {
	if it.editing || task.Completed || busy {
		return nil, false
	}
	it.editing = true
	it.seed(task.Title)
	return it.draft.Focus(), true
}

func (it *itemModel) seed(title string) {
	it.draft.SetValue(title)
	it.draft.CursorEnd()
	it.seeded = it.draft.Value()
}

// commit returns the title to send, or false if the draft is empty. An
// untouched draft sends the stored title as is.
func (it *itemModel) commit(task service.Task) (string, bool) {
	if !it.editing {
		return "", false
	}
	if it.draft.Value() == it.seeded && strings.TrimSpace(task.Title) != "" {
		return task.Title, true
	}
	title := strings.TrimSpace(it.draft.Value())
	if title == "" {
		return "", false
	}
	return title, true
}

// cancel drops the draft without touching the service.
func (it *itemModel) cancel(task service.Task) {
	it.editing = false
	it.draft.Blur()
	it.seed(task.Title)
}

// resolveEdit applies the outcome of a title update. On failure the draft
// goes back to the last known title and edit mode stays on.
func (it *itemModel) resolveEdit(task service.Task, err error) {
	it.seed(task.Title)
	if err != nil {
		return
	}
	it.editing = false
	it.draft.Blur()
}

func (it *itemModel) update(msg tea.Msg, busy bool) tea.Cmd {
	if busy {
		return nil
	}
	var cmd tea.Cmd
	it.draft, cmd = it.draft.Update(msg)
	return cmd
}
