package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// list
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	FocusInput key.Binding
	Help       key.Binding
	Quit       key.Binding

	// input
	Submit    key.Binding
	FocusList key.Binding

	// edit
	Save   key.Binding
	Blur   key.Binding
	Cancel key.Binding

	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		FocusInput: key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a/tab", "new task")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		FocusList: key.NewBinding(key.WithKeys("tab", "esc"), key.WithHelp("tab/esc", "go to list")),

		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Blur:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindings adapts a set of bindings to help.KeyMap.
type bindings struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindings) ShortHelp() []key.Binding  { return b.short }
func (b bindings) FullHelp() [][]key.Binding { return b.full }

func (k keyMap) listHelp() bindings {
	return bindings{
		short: []key.Binding{k.Toggle, k.Edit, k.Delete, k.FocusInput, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Up, k.Down},
			{k.Toggle, k.Edit, k.Delete},
			{k.FocusInput, k.Reload},
			{k.Help, k.Quit, k.ForceQuit},
		},
	}
}

func (k keyMap) inputHelp() bindings {
	short := []key.Binding{k.Submit, k.FocusList, k.ForceQuit}
	return bindings{short: short, full: [][]key.Binding{short}}
}

func (k keyMap) editHelp() bindings {
	short := []key.Binding{k.Save, k.Blur, k.Cancel}
	return bindings{short: short, full: [][]key.Binding{short}}
}
