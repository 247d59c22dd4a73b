package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// modal blocks all other input. Without onConfirm it is a plain error
// box dismissed with enter or esc.
type modal struct {
	title     string
	body      string
	isErr     bool
	onConfirm func(Model) Model
}

func (d *modal) view() string {
	title := titleStyle.Render(d.title)
	if d.isErr {
		title = errorStyle.Render("✖ " + d.title)
	}
	help := helpStyle.Render("enter ok")
	if d.onConfirm != nil {
		help = helpLine(keys.Confirm, keys.Deny)
	}
	return modalString(title+"\n\n"+d.body+"\n\n"+help, d.isErr)
}

func (m Model) confirm(title, body string, onConfirm func(Model) Model) Model {
	m.modal = &modal{title: title, body: body, onConfirm: onConfirm}
	return m
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	d := m.modal
	if d.onConfirm == nil {
		if k.Type == tea.KeyEnter || k.Type == tea.KeyEsc {
			m.modal = nil
		}
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Confirm):
		m.modal = nil
		return d.onConfirm(m), nil
	case key.Matches(k, keys.Deny):
		m.modal = nil
	}
	return m, nil
}
