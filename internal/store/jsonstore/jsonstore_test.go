package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
	"github.com/idilsaglam/basket/internal/store/jsonstore"
	"github.com/idilsaglam/basket/internal/store/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T, clk store.Clock) store.Store {
		s, err := jsonstore.Open(filepath.Join(t.TempDir(), "basket.json"), jsonstore.WithClock(clk))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return s
	})
}

func TestMissingFileIsEmpty(t *testing.T) {
	s, err := jsonstore.Open(filepath.Join(t.TempDir(), "nested", "basket.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	lists, err := s.Lists(context.Background())
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("expected no lists, got %d", len(lists))
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("reading should not create the file, stat err = %v", err)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "basket.json")

	s, err := jsonstore.Open(path)
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

	s2, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	items, err := s2.ItemsByList(ctx, l.ID)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milk" || items[0].Quantity != 2 {
		t.Errorf("unexpected items after reopen: %+v", items)
	}
}

func TestCorruptFileIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.CreateList(context.Background(), "x"); err == nil {
		t.Fatal("expected an error for a corrupt file")
	}
	b, _ := os.ReadFile(path)
	if string(b) != "{not json" {
		t.Errorf("failed write must leave the file untouched, got %q", b)
	}
}

func TestCloseKeepsLockHeldByOthers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basket.json")

	holder := flock.New(path + ".lock")
	if err := holder.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer func() { _ = holder.Close() }()

	b, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Fatalf("lock file should survive close: %v", err)
	}

	c, err := jsonstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if _, err := c.CreateList(ctx, "Groceries"); err == nil {
		t.Fatal("write succeeded while another holder had the lock")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("blocked write must not create the data file, stat err = %v", err)
	}
}
