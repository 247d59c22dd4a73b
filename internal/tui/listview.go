package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/ui"
)

func (m Model) openList(l model.List) Model {
	m.current = l
	m.cursor = 0
	m.filtering = false
	m.filter.SetValue("")
	m.filter.Blur()
	m.screen = screenList
	return m.refresh()
}

// refresh recomputes the view of the open list from the store.
func (m Model) refresh() Model {
	v, err := m.svc.View(m.ctx, m.current.ID, m.filter.Value())
	if err != nil {
		return m.fail(err)
	}
	m.view = v
	m.rows = nil
	for _, g := range v.Categories {
		m.rows = append(m.rows, g.Items...)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) selectedItem() (model.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return model.Item{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.filtering {
		switch k.Type {
		case tea.KeyEnter:
			m.filtering = false
			m.filter.Blur()
			return m, nil
		case tea.KeyEsc:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			return m.refresh(), nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m.refresh(), cmd
	}

	switch {
	case key.Matches(k, keys.Back):
		return m.showHome(), nil
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Filter):
		m.filtering = true
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(k, keys.Add):
		return m.openForm(nil)
	case key.Matches(k, keys.Edit):
		if it, ok := m.selectedItem(); ok {
			return m.openForm(&it)
		}
	case key.Matches(k, keys.DeleteItem):
		if it, ok := m.selectedItem(); ok {
			if err := m.svc.DeleteItem(m.ctx, it.ID); err != nil {
				return m.fail(err), nil
			}
			return m.refresh(), nil
		}
	case key.Matches(k, keys.DeleteCategory):
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		cat := aggregate.CategoryKey(it.Category)
		body := fmt.Sprintf("Delete every item in %q from %q?", cat, m.current.Title)
		if m.filter.Value() != "" {
			body += "\n" + mutedStyle.Render("Items hidden by the filter are deleted too.")
		}
		return m.confirm("Delete category", body, func(m Model) Model {
			if _, err := m.svc.DeleteCategory(m.ctx, m.current.ID, cat); err != nil {
				return m.fail(err)
			}
			return m.refresh()
		}), nil
	}
	return m, nil
}

func (m Model) viewList() string {
	var b strings.Builder
	v := m.view
	fmt.Fprintf(&b, "%s   %s %d   %s %s\n",
		titleStyle.Render(m.current.Title),
		accentStyle.Render("Items"), v.Count,
		accentStyle.Render("Total"), moneyStyle.Render(ui.Money(v.Total)),
	)
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}
	b.WriteString("\n")

	if len(v.Categories) == 0 {
		if m.filter.Value() != "" {
			b.WriteString(mutedStyle.Render("No items match the filter.") + "\n")
		} else {
			b.WriteString(mutedStyle.Render("No items yet. Press a to add one.") + "\n")
		}
	}

	row := 0
	for _, g := range v.Categories {
		fmt.Fprintf(&b, "%s %s  %s  %s\n", g.Icon, headerStyle.Render(g.Key),
			mutedStyle.Render(countLabel(g.Count)), moneyStyle.Render(ui.Money(g.Total)))
		for _, it := range g.Items {
			line := fmt.Sprintf("%-24s x%-4d %9s  %9s", it.Name, it.Quantity,
				ui.Money(it.UnitPrice), ui.Money(aggregate.LineTotal(it.Quantity, it.UnitPrice)))
			prefix := "   "
			if row == m.cursor {
				prefix = " " + selectedStyle.Render(">") + " "
				line = selectedStyle.Render(line)
			}
			b.WriteString(prefix + line + "\n")
			row++
		}
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(helpStyle.Render("enter keep filter • esc clear"))
	} else {
		b.WriteString(helpLine(keys.Add, keys.Edit, keys.DeleteItem, keys.DeleteCategory, keys.Filter, keys.Back))
	}
	return b.String()
}
