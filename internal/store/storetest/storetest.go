// Package storetest holds the behaviour every store.Store must share.
// Each backend's tests call Run with a constructor.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
)

// Factory opens a fresh, empty store whose clock is clk.
type Factory func(t *testing.T, clk store.Clock) store.Store

// StepClock returns a clock that advances one second per call.
func StepClock() store.Clock {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// FrozenClock always returns the same instant.
func FrozenClock() store.Clock {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

var bread = model.ItemFields{Name: "Bread", Category: "Food", Quantity: 1, UnitPrice: 8}

// Run exercises newStore against the store.Store contract.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	open := func(t *testing.T, clk store.Clock) store.Store {
		t.Helper()
		s := newStore(t, clk)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("create and get list", func(t *testing.T) {
		s := open(t, StepClock())
		l, err := s.CreateList(ctx, "Groceries")
		if err != nil {
			t.Fatalf("create list: %v", err)
		}
		if l.ID == "" {
			t.Fatal("expected an id")
		}
		got, err := s.GetList(ctx, l.ID)
		if err != nil {
			t.Fatalf("get list: %v", err)
		}
		if got.ID != l.ID || got.Title != "Groceries" || !got.CreatedAt.Equal(l.CreatedAt) {
			t.Errorf("got %+v, want %+v", got, l)
		}
	})

	t.Run("lists newest first", func(t *testing.T) {
		s := open(t, StepClock())
		for _, title := range []string{"a", "b", "c"} {
			if _, err := s.CreateList(ctx, title); err != nil {
				t.Fatalf("create list: %v", err)
			}
		}
		lists, err := s.Lists(ctx)
		if err != nil {
			t.Fatalf("lists: %v", err)
		}
		if diff := cmp.Diff([]string{"c", "b", "a"}, titles(lists)); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("lists newest first with equal timestamps", func(t *testing.T) {
		s := open(t, FrozenClock())
		for _, title := range []string{"a", "b"} {
			if _, err := s.CreateList(ctx, title); err != nil {
				t.Fatalf("create list: %v", err)
			}
		}
		lists, err := s.Lists(ctx)
		if err != nil {
			t.Fatalf("lists: %v", err)
		}
		if diff := cmp.Diff([]string{"b", "a"}, titles(lists)); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("items oldest first and scoped to their list", func(t *testing.T) {
		s := open(t, StepClock())
		l1 := mustList(t, s, "one")
		l2 := mustList(t, s, "two")
		for _, name := range []string{"x", "y", "z"} {
			f := bread
			f.Name = name
			if _, err := s.CreateItem(ctx, l1.ID, f); err != nil {
				t.Fatalf("create item: %v", err)
			}
		}
		if _, err := s.CreateItem(ctx, l2.ID, bread); err != nil {
			t.Fatalf("create item: %v", err)
		}
		items, err := s.ItemsByList(ctx, l1.ID)
		if err != nil {
			t.Fatalf("items: %v", err)
		}
		if diff := cmp.Diff([]string{"x", "y", "z"}, names(items)); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
		for _, it := range items {
			if it.ListID != l1.ID {
				t.Errorf("item %s belongs to %s, want %s", it.Name, it.ListID, l1.ID)
			}
		}
	})

	t.Run("item fields round trip", func(t *testing.T) {
		s := open(t, StepClock())
		l := mustList(t, s, "Groceries")
		f := model.ItemFields{Name: "Soap", Category: "Cleaning", Quantity: 3, UnitPrice: 10.3}
		it, err := s.CreateItem(ctx, l.ID, f)
		if err != nil {
			t.Fatalf("create item: %v", err)
		}
		got, err := s.GetItem(ctx, it.ID)
		if err != nil {
			t.Fatalf("get item: %v", err)
		}
		if diff := cmp.Diff(f, got.Fields()); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("create item on unknown list", func(t *testing.T) {
		s := open(t, StepClock())
		_, err := s.CreateItem(ctx, "nope", bread)
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update item keeps identity", func(t *testing.T) {
		s := open(t, StepClock())
		l := mustList(t, s, "Groceries")
		it, err := s.CreateItem(ctx, l.ID, bread)
		if err != nil {
			t.Fatalf("create item: %v", err)
		}
		f := model.ItemFields{Name: "Rye", Category: "Bakery", Quantity: 2, UnitPrice: 0}
		got, err := s.UpdateItem(ctx, it.ID, f)
		if err != nil {
			t.Fatalf("update item: %v", err)
		}
		if got.ID != it.ID || got.ListID != l.ID || !got.CreatedAt.Equal(it.CreatedAt) {
			t.Errorf("identity changed: %+v vs %+v", got, it)
		}
		stored, err := s.GetItem(ctx, it.ID)
		if err != nil {
			t.Fatalf("get item: %v", err)
		}
		if diff := cmp.Diff(f, stored.Fields()); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("update unknown item", func(t *testing.T) {
		s := open(t, StepClock())
		_, err := s.UpdateItem(ctx, "nope", bread)
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete item", func(t *testing.T) {
		s := open(t, StepClock())
		l := mustList(t, s, "Groceries")
		it, err := s.CreateItem(ctx, l.ID, bread)
		if err != nil {
			t.Fatalf("create item: %v", err)
		}
		if err := s.DeleteItem(ctx, it.ID); err != nil {
			t.Fatalf("delete item: %v", err)
		}
		if _, err := s.GetItem(ctx, it.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := s.DeleteItem(ctx, it.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("bulk delete is all or nothing", func(t *testing.T) {
		s := open(t, StepClock())
		l := mustList(t, s, "Groceries")
		a, _ := s.CreateItem(ctx, l.ID, bread)
		b, _ := s.CreateItem(ctx, l.ID, bread)

		err := s.DeleteItems(ctx, []string{a.ID, "missing"})
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		items, _ := s.ItemsByList(ctx, l.ID)
		if len(items) != 2 {
			t.Fatalf("expected both items to survive, got %d", len(items))
		}

		if err := s.DeleteItems(ctx, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("delete items: %v", err)
		}
		items, _ = s.ItemsByList(ctx, l.ID)
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}
	})

	t.Run("delete list cascades", func(t *testing.T) {
		s := open(t, StepClock())
		l := mustList(t, s, "Groceries")
		other := mustList(t, s, "Hardware")
		it, _ := s.CreateItem(ctx, l.ID, bread)
		keep, _ := s.CreateItem(ctx, other.ID, bread)

		if err := s.DeleteList(ctx, l.ID); err != nil {
			t.Fatalf("delete list: %v", err)
		}
		if _, err := s.GetList(ctx, l.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("list still present: %v", err)
		}
		if _, err := s.GetItem(ctx, it.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("item of deleted list still present: %v", err)
		}
		if _, err := s.GetItem(ctx, keep.ID); err != nil {
			t.Errorf("item of other list lost: %v", err)
		}
	})

	t.Run("delete unknown list", func(t *testing.T) {
		s := open(t, StepClock())
		if err := s.DeleteList(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("items of unknown list", func(t *testing.T) {
		s := open(t, StepClock())
		if _, err := s.ItemsByList(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func mustList(t *testing.T, s store.Store, title string) model.List {
	t.Helper()
	l, err := s.CreateList(context.Background(), title)
	if err != nil {
		t.Fatalf("create list %q: %v", title, err)
	}
	return l
}

func titles(ls []model.List) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Title)
	}
	return out
}

func names(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
