// Package aggregate turns the flat items of one list into the grouped,
// tax-inclusive view the screens render. Everything here is a pure
// function of its inputs; callers recompute after every change.
package aggregate

import (
	"sort"
	"strings"

	"github.com/idilsaglam/basket/internal/model"
)

const (
	// TaxRate is applied to every monetary total.
	TaxRate = 0.13

	// Uncategorized is the group key for items with a blank category.
	Uncategorized = "Uncategorized"
)

// CategoryGroup is one category section of a list.
type CategoryGroup struct {
	Key      string
	Icon     string
	Count    int     // sum of quantities
	Subtotal float64 // before tax
	Total    float64 // with tax
	Items    []model.Item
}

// ListView is the aggregated form of one list.
type ListView struct {
	Categories []CategoryGroup
	Count      int
	Subtotal   float64
	Tax        float64
	Total      float64
}

// Cost breaks a single line into its parts.
type Cost struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// CategoryKey normalizes a stored category into its group key.
func CategoryKey(category string) string {
	k := strings.TrimSpace(category)
	if k == "" {
		return Uncategorized
	}
	return k
}

// Matches reports whether it passes filter. An empty filter matches
// everything; otherwise filter must appear in the name or the category,
// ignoring case.
func Matches(it model.Item, filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(it.Name), f) ||
		strings.Contains(strings.ToLower(it.Category), f)
}

// LineTotal is quantity * unit price with tax.
func LineTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice * (1 + TaxRate)
}

// ItemCost is the cost breakdown shown when editing an item.
func ItemCost(it model.Item) Cost {
	sub := float64(it.Quantity) * it.UnitPrice
	return Cost{Subtotal: sub, Tax: sub * TaxRate, Total: sub * (1 + TaxRate)}
}

// CountOf sums quantities. A list's item count is this, not len(items).
func CountOf(items []model.Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// ComputeView filters items, groups them by category and totals them.
//
// Groups are ordered by the creation time of their oldest item, and items
// inside a group by creation time; both sorts are stable, so equal
// timestamps keep input order.
func ComputeView(items []model.Item, filter string) ListView {
	kept := make([]model.Item, 0, len(items))
	for _, it := range items {
		if Matches(it, filter) {
			kept = append(kept, it)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.Before(kept[j].CreatedAt)
	})

	// kept is in creation order, so first appearance of a key is also its
	// oldest member and groups come out already ordered.
	index := map[string]int{}
	var v ListView
	for _, it := range kept {
		key := CategoryKey(it.Category)
		gi, ok := index[key]
		if !ok {
			gi = len(v.Categories)
			index[key] = gi
			v.Categories = append(v.Categories, CategoryGroup{Key: key, Icon: IconFor(key)})
		}
		g := &v.Categories[gi]
		sub := float64(it.Quantity) * it.UnitPrice
		g.Items = append(g.Items, it)
		g.Count += it.Quantity
		g.Subtotal += sub

		v.Count += it.Quantity
		v.Subtotal += sub
	}
	for i := range v.Categories {
		v.Categories[i].Total = v.Categories[i].Subtotal * (1 + TaxRate)
	}
	v.Tax = v.Subtotal * TaxRate
	v.Total = v.Subtotal * (1 + TaxRate)
	return v
}

// Group returns the group with key, if present.
func (v ListView) Group(key string) (CategoryGroup, bool) {
	for _, g := range v.Categories {
		if g.Key == key {
			return g, true
		}
	}
	return CategoryGroup{}, false
}

var icons = map[string]string{
	"Food":                "🍽️",
	"Cleaning":            "🧽",
	"Fruits & Vegetables": "🍎",
	"Medication":          "💊",
	"Beverages":           "🥤",
}

// FallbackIcon is shown for categories without a dedicated glyph.
const FallbackIcon = "🛒"

// IconFor maps a category to its display glyph.
func IconFor(category string) string {
	if g, ok := icons[category]; ok {
		return g
	}
	return FallbackIcon
}
