package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// home
	NewList, Open, DeleteList, About, Quit key.Binding
	// list
	Add, Edit, DeleteItem, DeleteCategory, Filter, Back, Up, Down key.Binding
	// form
	Save, Cancel, NextField, PrevField, PrevOption, NextOption, NewCategory, DeleteInForm key.Binding
	// modal
	Confirm, Deny key.Binding
}

var keys = keyMap{
	NewList:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
	Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	DeleteList: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	About:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "about")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

	Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:           key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	DeleteItem:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	DeleteCategory: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete category")),
	Filter:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Back:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:             key.NewBinding(key.WithKeys("up", "k")),
	Down:           key.NewBinding(key.WithKeys("down", "j")),

	Save:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextField:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:    key.NewBinding(key.WithKeys("shift+tab", "up")),
	PrevOption:   key.NewBinding(key.WithKeys("left")),
	NextOption:   key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "category")),
	NewCategory:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new category")),
	DeleteInForm: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),

	Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
	Deny:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
}

func helpLine(bindings ...key.Binding) string {
	s := ""
	for i, b := range bindings {
		if i > 0 {
			s += " • "
		}
		s += b.Help().Key + " " + b.Help().Desc
	}
	return helpStyle.Render(s)
}
