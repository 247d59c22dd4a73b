package cli

import (
	"fmt"
	"math"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/ui"
)

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

// viewLines renders a computed list view for ui.Panel.
func viewLines(l model.List, v aggregate.ListView, filter string, ids bool) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d  %s %s",
			ui.C(t.Title, l.Title),
			ui.C(t.Accent, "Items"), v.Count,
			ui.C(t.Accent, "Total"), ui.C(t.Money, ui.Money(v.Total)),
		),
	}
	if filter != "" {
		lines = append(lines, ui.C(t.Muted, fmt.Sprintf("filter: %q", filter)))
	}
	lines = append(lines, "")

	if len(v.Categories) == 0 {
		if filter != "" {
			lines = append(lines, ui.C(t.Muted, "no items match"))
		} else {
			lines = append(lines, ui.C(t.Muted, "no items"))
		}
	}

	for _, g := range v.Categories {
		head := g.Key
		if t.Icons {
			head = g.Icon + " " + head
		}
		lines = append(lines,
			fmt.Sprintf("%s  %s  %s", ui.C(t.Accent, head), ui.C(t.Muted, itemCount(g.Count)), ui.C(t.Money, ui.Money(g.Total))),
			ui.C(t.Muted, ui.ShareBar(g.Total, v.Total, 20)),
		)
		for _, it := range g.Items {
			id := ""
			if ids {
				id = ui.C(ui.Dim, shortID(it.ID)) + " "
			}
			name := it.Name
			if r := []rune(name); len(r) > 40 {
				name = string(r[:37]) + "..."
			}
			lines = append(lines, fmt.Sprintf("  %s %s%-24s x%-4d %9s %9s",
				t.Bullet, id, name, it.Quantity,
				ui.Money(it.UnitPrice), ui.Money(aggregate.LineTotal(it.Quantity, it.UnitPrice))))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		fmt.Sprintf("%-10s %s", "Subtotal", ui.Money(v.Subtotal)),
		fmt.Sprintf("%-10s %s", fmt.Sprintf("Tax %d%%", int(math.Floor(aggregate.TaxRate*100+0.5))), ui.Money(v.Tax)),
		fmt.Sprintf("%-10s %s", "Total", ui.C(t.Money, ui.Money(v.Total))),
	)
	return lines
}
