package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
	"github.com/idilsaglam/basket/internal/store/sqlstore"
	"github.com/idilsaglam/basket/internal/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T, clk store.Clock) store.Store {
		s, err := sqlstore.Open(filepath.Join(t.TempDir(), "basket.db"), sqlstore.WithClock(clk))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return s
	})
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "basket.db")

	s, err := sqlstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l, err := s.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := s.CreateItem(ctx, l.ID, model.ItemFields{Name: "Milk", Category: "Food", Quantity: 2, UnitPrice: 3.5}); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := sqlstore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	lists, err := s2.Lists(ctx)
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if len(lists) != 1 || lists[0].Title != "Groceries" {
		t.Fatalf("unexpected lists after reopen: %+v", lists)
	}
	items, err := s2.ItemsByList(ctx, l.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].UnitPrice != 3.5 {
		t.Errorf("unexpected items after reopen: %+v", items)
	}
}
