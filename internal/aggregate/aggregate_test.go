package aggregate_test

import (
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
)

const tolerance = 1e-9

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func item(id, name, category string, qty int, price float64, minute int) model.Item {
	return model.Item{
		ID:        id,
		ListID:    "l1",
		Name:      name,
		Category:  category,
		Quantity:  qty,
		UnitPrice: price,
		CreatedAt: t0.Add(time.Duration(minute) * time.Minute),
	}
}

func near(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func keys(v aggregate.ListView) []string {
	out := []string{}
	for _, g := range v.Categories {
		out = append(out, g.Key)
	}
	return out
}

func ids(items []model.Item) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestGroceriesScenario(t *testing.T) {
	items := []model.Item{
		item("1", "Bread", "Food", 1, 8.00, 0),
		item("2", "Soap", "Cleaning", 1, 10.30, 1),
	}
	v := aggregate.ComputeView(items, "")

	if diff := cmp.Diff([]string{"Food", "Cleaning"}, keys(v)); diff != "" {
		t.Fatalf("category order (-want +got):\n%s", diff)
	}
	food, _ := v.Group("Food")
	cleaning, _ := v.Group("Cleaning")
	if !near(food.Total, 9.04) {
		t.Errorf("Food total = %v, want 9.04", food.Total)
	}
	if !near(cleaning.Total, 11.639) {
		t.Errorf("Cleaning total = %v, want 11.639", cleaning.Total)
	}
	if !near(v.Total, 20.679) {
		t.Errorf("list total = %v, want 20.679", v.Total)
	}
	if v.Count != 2 {
		t.Errorf("count = %d, want 2", v.Count)
	}
	if food.Icon != "🍽️" || cleaning.Icon != "🧽" {
		t.Errorf("icons = %q %q", food.Icon, cleaning.Icon)
	}
}

func TestCountIsSumOfQuantities(t *testing.T) {
	v := aggregate.ComputeView([]model.Item{item("1", "Eggs", "Food", 5, 0.5, 0)}, "")
	if v.Count != 5 {
		t.Errorf("count = %d, want 5", v.Count)
	}
	if got := aggregate.CountOf([]model.Item{item("1", "a", "", 5, 0, 0), item("2", "b", "", 2, 0, 0)}); got != 7 {
		t.Errorf("CountOf = %d, want 7", got)
	}
}

func TestFilter(t *testing.T) {
	items := []model.Item{
		item("1", "Bread", "Food", 1, 1, 0),
		item("2", "Seafood", "Frozen", 1, 1, 1),
		item("3", "Soap", "Cleaning", 1, 1, 2),
	}
	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"1", "2", "3"}},
		{"food", []string{"1", "2"}},
		{"FOOD", []string{"1", "2"}},
		{"clean", []string{"3"}},
		{"soap", []string{"3"}},
		{"zzz", []string{}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("filter %q", tc.filter), func(t *testing.T) {
			v := aggregate.ComputeView(items, tc.filter)
			got := []string{}
			for _, g := range v.Categories {
				got = append(got, ids(g.Items)...)
			}
			sort.Strings(got)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("filtered ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := []model.Item{
		item("2", "b", "x", 1, 1, 5),
		item("1", "a", "x", 1, 1, 1),
	}
	before := append([]model.Item(nil), items...)
	_ = aggregate.ComputeView(items, "a")
	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input changed (-before +after):\n%s", diff)
	}
}

func TestGroupOrderByOldestMember(t *testing.T) {
	items := []model.Item{
		item("a", "Milk", "Dairy", 1, 1, 10),
		item("b", "Soap", "Cleaning", 1, 1, 5),
		item("c", "Cheese", "Dairy", 1, 1, 1),
		item("d", "Pills", "Medication", 1, 1, 7),
	}
	v := aggregate.ComputeView(items, "")
	if diff := cmp.Diff([]string{"Dairy", "Cleaning", "Medication"}, keys(v)); diff != "" {
		t.Errorf("group order (-want +got):\n%s", diff)
	}
	dairy, _ := v.Group("Dairy")
	if diff := cmp.Diff([]string{"c", "a"}, ids(dairy.Items)); diff != "" {
		t.Errorf("items inside group (-want +got):\n%s", diff)
	}
}

func TestCategoryNormalization(t *testing.T) {
	items := []model.Item{
		item("1", "a", "  Food ", 1, 1, 0),
		item("2", "b", "Food", 1, 1, 1),
		item("3", "c", "", 1, 1, 2),
		item("4", "d", "   ", 1, 1, 3),
		item("5", "e", "food", 1, 1, 4),
	}
	v := aggregate.ComputeView(items, "")
	if diff := cmp.Diff([]string{"Food", aggregate.Uncategorized, "food"}, keys(v)); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	g, _ := v.Group(aggregate.Uncategorized)
	if g.Icon != aggregate.FallbackIcon {
		t.Errorf("uncategorized icon = %q", g.Icon)
	}
}

func TestIconFor(t *testing.T) {
	tests := map[string]string{
		"Food":                "🍽️",
		"Cleaning":            "🧽",
		"Fruits & Vegetables": "🍎",
		"Medication":          "💊",
		"Beverages":           "🥤",
		"Snacks":              aggregate.FallbackIcon,
		"food":                aggregate.FallbackIcon,
		"":                    aggregate.FallbackIcon,
	}
	for in, want := range tests {
		if got := aggregate.IconFor(in); got != want {
			t.Errorf("IconFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestItemCost(t *testing.T) {
	c := aggregate.ItemCost(item("1", "Milk", "Food", 2, 3.50, 0))
	if !near(c.Subtotal, 7) || !near(c.Tax, 0.91) || !near(c.Total, 7.91) {
		t.Errorf("cost = %+v", c)
	}
}

func TestLineTotalProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := rapid.IntRange(0, 32767).Draw(t, "q")
		p := rapid.Float64Range(0, 10000).Draw(t, "p")
		got := aggregate.LineTotal(q, p)
		want := float64(q) * p * 1.13
		if math.Abs(got-want) > tolerance*math.Max(1, want) {
			t.Fatalf("LineTotal(%d, %v) = %v, want %v", q, p, got, want)
		}
	})
}

func genItems(t *rapid.T) []model.Item {
	cats := []string{"Food", "Cleaning", " Food", "", "Snacks", "snacks"}
	names := []string{"Bread", "Seafood", "Soap", "Milk", "Chips"}
	n := rapid.IntRange(0, 20).Draw(t, "n")
	out := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, item(
			fmt.Sprintf("i%d", i),
			rapid.SampledFrom(names).Draw(t, "name"),
			rapid.SampledFrom(cats).Draw(t, "category"),
			rapid.IntRange(1, 50).Draw(t, "qty"),
			rapid.Float64Range(0, 100).Draw(t, "price"),
			rapid.IntRange(0, 30).Draw(t, "minute"),
		))
	}
	return out
}

func TestViewProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := genItems(t)
		filter := rapid.SampledFrom([]string{"", "food", "SOAP", "snack", "x"}).Draw(t, "filter")
		v := aggregate.ComputeView(items, filter)

		var want []string
		wantCount := 0
		for _, it := range items {
			if aggregate.Matches(it, filter) {
				want = append(want, it.ID)
				wantCount += it.Quantity
			}
		}

		// partition: every filtered item in exactly one group
		seen := map[string]int{}
		var sum float64
		for _, g := range v.Categories {
			for _, it := range g.Items {
				seen[it.ID]++
				if aggregate.CategoryKey(it.Category) != g.Key {
					t.Fatalf("item %s in group %q", it.ID, g.Key)
				}
			}
			sum += g.Total
		}
		if len(seen) != len(want) {
			t.Fatalf("grouped %d items, want %d", len(seen), len(want))
		}
		for _, id := range want {
			if seen[id] != 1 {
				t.Fatalf("item %s appears %d times", id, seen[id])
			}
		}
		if math.Abs(sum-v.Total) > 1e-6 {
			t.Fatalf("sum of category totals %v != list total %v", sum, v.Total)
		}
		if v.Count != wantCount {
			t.Fatalf("count %d, want %d", v.Count, wantCount)
		}
		// groups ordered by oldest member
		for i := 1; i < len(v.Categories); i++ {
			prev, cur := v.Categories[i-1].Items[0].CreatedAt, v.Categories[i].Items[0].CreatedAt
			if cur.Before(prev) {
				t.Fatalf("group %q before older group %q", v.Categories[i-1].Key, v.Categories[i].Key)
			}
		}
	})
}
