package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taskterm/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Priority  key.Binding
	Delete    key.Binding
	Sort      key.Binding
	NextField key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:       key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Edit:      key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		Up:        key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up, "up")),
		Down:      key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down, "down")),
		Toggle:    key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(displayKey(k.Toggle), "toggle")),
		Priority:  key.NewBinding(key.WithKeys(k.Priority), key.WithHelp(k.Priority, "priority")),
		Delete:    key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Sort:      key.NewBinding(key.WithKeys(k.Sort), key.WithHelp(k.Sort, "sort")),
		NextField: key.NewBinding(key.WithKeys(k.NextField), key.WithHelp(k.NextField, "next field")),
		Confirm:   key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "save")),
		Cancel:    key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Priority, k.Delete, k.Sort, k.Quit}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Confirm, k.Cancel}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
