package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/shopping"
	"github.com/idilsaglam/basket/internal/ui"
	"github.com/idilsaglam/basket/internal/validate"
)

const (
	fieldName = iota
	fieldCategory
	fieldPrice
	fieldQuantity
	fieldCount
)

// form is the add/edit item screen.
type form struct {
	editing bool
	itemID  string

	focus    int
	name     textinput.Model
	price    textinput.Model
	quantity textinput.Model

	categories []string
	catIndex   int
	addingCat  bool
	newCat     textinput.Model
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

// openForm starts the form for a new item, or for editing it when non-nil.
func (m Model) openForm(it *model.Item) (tea.Model, tea.Cmd) {
	f := form{
		name:     newInput("Milk", 200),
		price:    newInput("0.00", 20),
		quantity: newInput("1", 6),
		newCat:   newInput("New category", 60),
	}
	f.newCat.Prompt = "+ "
	f.categories = m.reg.List()
	selected := m.def
	if it != nil {
		f.editing = true
		f.itemID = it.ID
		in := shopping.Input(*it)
		f.name.SetValue(in.Name)
		f.price.SetValue(in.Price)
		f.quantity.SetValue(in.Quantity)
		selected = aggregate.CategoryKey(it.Category)
	} else {
		f.quantity.SetValue("1")
	}
	f.catIndex = indexOf(f.categories, selected)
	if f.catIndex < 0 && selected != "" {
		// keep categories that only exist on items, e.g. added from the CLI
		f.categories = append(f.categories, selected)
		f.catIndex = len(f.categories) - 1
	}
	m.form = f
	m.screen = screenForm
	cmd := m.focusField(fieldName)
	return m, cmd
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func (m *Model) focusField(i int) tea.Cmd {
	f := &m.form
	f.focus = (i + fieldCount) % fieldCount
	f.name.Blur()
	f.price.Blur()
	f.quantity.Blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldPrice:
		return f.price.Focus()
	case fieldQuantity:
		return f.quantity.Focus()
	}
	return nil
}

func (f form) input() validate.Input {
	in := validate.Input{Name: f.name.Value(), Quantity: f.quantity.Value(), Price: f.price.Value()}
	if f.catIndex >= 0 && f.catIndex < len(f.categories) {
		c := f.categories[f.catIndex]
		in.Category = &c
	}
	return in
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form.addingCat {
		return m.updateNewCategory(msg)
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	f := &m.form
	switch {
	case key.Matches(k, keys.Cancel):
		m.screen = screenList
		return m.refresh(), nil
	case key.Matches(k, keys.Save):
		return m.saveForm(), nil
	case key.Matches(k, keys.NextField):
		cmd := m.focusField(f.focus + 1)
		return m, cmd
	case key.Matches(k, keys.PrevField):
		cmd := m.focusField(f.focus - 1)
		return m, cmd
	case key.Matches(k, keys.NewCategory):
		f.addingCat = true
		f.newCat.SetValue("")
		cmd := f.newCat.Focus()
		return m, cmd
	case key.Matches(k, keys.DeleteInForm):
		if !f.editing {
			return m, nil
		}
		if err := m.svc.DeleteItem(m.ctx, f.itemID); err != nil {
			return m.fail(err), nil
		}
		m.screen = screenList
		return m.refresh(), nil
	}

	if f.focus == fieldCategory {
		if n := len(f.categories); n > 0 {
			switch {
			case key.Matches(k, keys.PrevOption):
				f.catIndex = (f.catIndex - 1 + n) % n
			case key.Matches(k, keys.NextOption):
				f.catIndex = (f.catIndex + 1) % n
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldPrice:
		f.price, cmd = f.price.Update(msg)
	case fieldQuantity:
		f.quantity, cmd = f.quantity.Update(msg)
	}
	return m, cmd
}

func (m Model) saveForm() Model {
	f := m.form
	var err error
	if f.editing {
		_, err = m.svc.EditItem(m.ctx, f.itemID, f.input())
	} else {
		_, err = m.svc.AddItem(m.ctx, m.current.ID, f.input())
	}
	if err != nil {
		return m.fail(err)
	}
	m.screen = screenList
	return m.refresh()
}

func (m Model) updateNewCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.form
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(f.newCat.Value())
			if _, err := m.reg.Add(name); err != nil {
				return m.fail(err), nil
			}
			f.addingCat = false
			f.newCat.Blur()
			if name == "" {
				return m, nil
			}
			cur := f.categories
			f.categories = m.reg.List()
			for _, c := range cur {
				if indexOf(f.categories, c) < 0 {
					f.categories = append(f.categories, c)
				}
			}
			f.catIndex = indexOf(f.categories, name)
			cmd := m.focusField(fieldCategory)
			return m, cmd
		case tea.KeyEsc:
			f.addingCat = false
			f.newCat.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	f.newCat, cmd = f.newCat.Update(msg)
	return m, cmd
}

func (m Model) viewForm() string {
	f := m.form
	var b strings.Builder
	title := "Add item to " + m.current.Title
	if f.editing {
		title = "Edit item"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	label := func(i int, s string) string {
		if f.focus == i && !f.addingCat {
			return accentStyle.Render("› " + s)
		}
		return "  " + mutedStyle.Render(s)
	}
	fmt.Fprintf(&b, "%s\n    %s\n", label(fieldName, "Name"), f.name.View())

	cat := mutedStyle.Render("(default)")
	if f.catIndex >= 0 && f.catIndex < len(f.categories) {
		c := f.categories[f.catIndex]
		cat = aggregate.IconFor(c) + " " + c
	}
	if f.focus == fieldCategory {
		cat = "‹ " + cat + " ›"
	}
	fmt.Fprintf(&b, "%s\n    %s\n", label(fieldCategory, "Category"), cat)
	if f.addingCat {
		fmt.Fprintf(&b, "    %s\n", f.newCat.View())
	}
	fmt.Fprintf(&b, "%s\n    %s\n", label(fieldPrice, "Price"), f.price.View())
	fmt.Fprintf(&b, "%s\n    %s\n", label(fieldQuantity, "Quantity"), f.quantity.View())

	if f.editing {
		b.WriteString("\n")
		if fields, err := validate.ValidateItem(f.name.Value(), f.quantity.Value(), f.price.Value()); err == nil {
			c := aggregate.ItemCost(model.Item{Quantity: fields.Quantity, UnitPrice: fields.UnitPrice})
			fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
				mutedStyle.Render("Price w/o tax"), ui.Money(c.Subtotal),
				mutedStyle.Render("Tax"), ui.Money(c.Tax),
				mutedStyle.Render("Final cost"), moneyStyle.Render(ui.Money(c.Total)))
		} else {
			b.WriteString(mutedStyle.Render("Final cost  -") + "\n")
		}
	}

	b.WriteString("\n")
	if f.addingCat {
		b.WriteString(helpStyle.Render("enter add category • esc cancel"))
		return b.String()
	}
	bindings := []key.Binding{keys.Save, keys.Cancel, keys.NextField, keys.NextOption, keys.NewCategory}
	if f.editing {
		bindings = append(bindings, keys.DeleteInForm)
	}
	b.WriteString(helpLine(bindings...))
	return b.String()
}
