package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/basket/internal/shopping"
)

// listEntry adapts a ListSummary to bubbles/list.Item.
type listEntry struct {
	shopping.ListSummary
}

func (e listEntry) Title() string       { return e.ListSummary.Title }
func (e listEntry) Description() string { return countLabel(e.ItemCount) }
func (e listEntry) FilterValue() string { return e.ListSummary.Title }

func countLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// listDelegate renders one list per line.
type listDelegate struct{}

func (d listDelegate) Height() int                         { return 1 }
func (d listDelegate) Spacing() int                        { return 0 }
func (d listDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(listEntry)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s  %s", e.ListSummary.Title,
		mutedStyle.Render(countLabel(e.ItemCount)+" · "+e.CreatedAt.Local().Format("Jan 2, 2006")))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// showHome reloads the lists and switches to the home screen.
func (m Model) showHome() Model {
	m.screen = screenHome
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
	return m.reloadHome()
}

func (m Model) reloadHome() Model {
	lists, err := m.svc.Lists(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	entries := make([]list.Item, 0, len(lists))
	for _, l := range lists {
		entries = append(entries, listEntry{l})
	}
	m.home.SetItems(entries)
	if len(entries) == 0 {
		m.home.Title = "Shopping lists"
	} else {
		m.home.Title = fmt.Sprintf("Shopping lists (%d)", len(entries))
	}
	return m
}

func (m Model) selectedList() (shopping.ListSummary, bool) {
	e, ok := m.home.SelectedItem().(listEntry)
	return e.ListSummary, ok
}

func (m Model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.naming {
		return m.updateNaming(msg)
	}
	k, isKey := msg.(tea.KeyMsg)
	if isKey && m.home.FilterState() != list.Filtering {
		switch {
		case key.Matches(k, keys.Quit):
			return m, tea.Quit
		case key.Matches(k, keys.About):
			m.aboutFrom, m.screen = screenHome, screenAbout
			return m, nil
		case key.Matches(k, keys.NewList):
			m.naming = true
			m.title.SetValue("")
			cmd := m.title.Focus()
			return m, cmd
		case key.Matches(k, keys.DeleteList):
			sel, ok := m.selectedList()
			if !ok {
				return m, nil
			}
			body := fmt.Sprintf("Delete %q and its %s?", sel.Title, countLabel(sel.ItemCount))
			return m.confirm("Delete list", body, func(m Model) Model {
				if err := m.svc.DeleteList(m.ctx, sel.ID); err != nil {
					return m.fail(err)
				}
				return m.reloadHome()
			}), nil
		case key.Matches(k, keys.Open):
			sel, ok := m.selectedList()
			if !ok {
				return m, nil
			}
			return m.openList(sel.List), nil
		}
	}
	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)
	return m, cmd
}

func (m Model) updateNaming(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			l, err := m.svc.CreateList(m.ctx, m.title.Value())
			if err != nil {
				return m.fail(err), nil
			}
			m.naming = false
			m.title.Blur()
			return m.openList(l), nil
		case tea.KeyEsc:
			m.naming = false
			m.title.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, cmd
}

func (m Model) viewHome() string {
	content := m.home.View()
	if len(m.home.Items()) == 0 {
		content = titleStyle.Render(m.home.Title) + "\n\n" +
			mutedStyle.Render("No lists yet. Press n to create one.") + "\n\n" +
			helpLine(keys.NewList, keys.About, keys.Quit)
	}
	if m.naming {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(strings.Join([]string{"New list", m.title.View()}, "\n"))
	}
	return content
}
