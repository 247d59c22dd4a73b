package validate_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/validate"
)

func strp(s string) *string { return &s }

func TestValidateItemRejects(t *testing.T) {
	tests := []struct {
		name           string
		in, qty, price string
		want           error
	}{
		{"empty name", "", "2", "3.50", validate.ErrEmptyName},
		{"blank name", "   ", "2", "3.50", validate.ErrEmptyName},
		{"zero quantity", "Milk", "0", "3.50", validate.ErrInvalidQuantity},
		{"negative quantity", "Milk", "-3", "3.50", validate.ErrInvalidQuantity},
		{"fractional quantity", "Milk", "1.5", "3.50", validate.ErrInvalidQuantity},
		{"text quantity", "Milk", "two", "3.50", validate.ErrInvalidQuantity},
		{"huge quantity", "Milk", "40000", "3.50", validate.ErrInvalidQuantity},
		{"negative price", "Milk", "2", "-1", validate.ErrInvalidPrice},
		{"text price", "Milk", "2", "cheap", validate.ErrInvalidPrice},
		{"empty price", "Milk", "2", "", validate.ErrInvalidPrice},
		{"nan price", "Milk", "2", "NaN", validate.ErrInvalidPrice},
		{"inf price", "Milk", "2", "Inf", validate.ErrInvalidPrice},
		{"name checked first", "", "0", "-1", validate.ErrEmptyName},
		{"quantity before price", "Milk", "0", "-1", validate.ErrInvalidQuantity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validate.ValidateItem(tc.in, tc.qty, tc.price)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			var verr *validate.Error
			if !errors.As(err, &verr) || verr.Message == "" {
				t.Errorf("expected a *validate.Error with a message, got %#v", err)
			}
		})
	}
}

func TestValidateItemAccepts(t *testing.T) {
	got, err := validate.ValidateItem(" Milk ", "2", "3.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.ItemFields{Name: "Milk", Category: validate.DefaultCategory, Quantity: 2, UnitPrice: 3.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	if total := aggregate.LineTotal(got.Quantity, got.UnitPrice); math.Abs(total-7.91) > 1e-9 {
		t.Errorf("line total = %v, want 7.91", total)
	}
}

func TestZeroPriceIsAllowed(t *testing.T) {
	got, err := validate.ValidateItem("Sample", "1", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UnitPrice != 0 {
		t.Errorf("price = %v", got.UnitPrice)
	}
}

func TestCategoryResolution(t *testing.T) {
	v := validate.Validator{DefaultCategory: "Groceries"}
	tests := []struct {
		name string
		cat  *string
		want string
	}{
		{"none chosen", nil, "Groceries"},
		{"blank", strp("  "), "Groceries"},
		{"chosen", strp(" Cleaning "), "Cleaning"},
		{"case kept", strp("cleaning"), "cleaning"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := v.Item(validate.Input{Name: "x", Quantity: "1", Price: "1", Category: tc.cat})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Category != tc.want {
				t.Errorf("category = %q, want %q", got.Category, tc.want)
			}
		})
	}
}

func TestListTitle(t *testing.T) {
	if _, err := validate.ListTitle("  "); !errors.Is(err, validate.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	got, err := validate.ListTitle(" Groceries ")
	if err != nil || got != "Groceries" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestValidQuantitiesAndPricesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := rapid.IntRange(1, validate.MaxQuantity).Draw(t, "q")
		p := rapid.Float64Range(0, 1e6).Draw(t, "p")
		got, err := validate.ValidateItem("Item", strconv.Itoa(q), validate.FormatPrice(p))
		if err != nil {
			t.Fatalf("rejected q=%d p=%v: %v", q, p, err)
		}
		if got.Quantity != q || got.UnitPrice != p {
			t.Fatalf("got %+v, want q=%d p=%v", got, q, p)
		}
	})
}
