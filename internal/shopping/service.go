// Package shopping is the application layer: every user action goes
// through a Service, which validates input, writes to the store, and
// re-derives the aggregated view on each read.
package shopping

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/logger"
	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
	"github.com/idilsaglam/basket/internal/validate"
)

// ErrPersistence matches every store failure surfaced by a Service.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError wraps a failed store call. The operation was aborted
// and nothing was changed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// ListSummary is a list with its derived item count.
type ListSummary struct {
	model.List
	ItemCount int
}

// Service runs user actions against a store.
type Service struct {
	store     store.Store
	validator validate.Validator
	log       *logger.Logger
}

func New(s store.Store, v validate.Validator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: s, validator: v, log: log.With("component", "shopping")}
}

func (s *Service) fail(op string, err error, kv ...interface{}) error {
	s.log.Error(op+" failed", append(kv, "error", err)...)
	return &PersistenceError{Op: op, Err: err}
}

// Lists returns every list, newest first, with item counts.
func (s *Service) Lists(ctx context.Context) ([]ListSummary, error) {
	lists, err := s.store.Lists(ctx)
	if err != nil {
		return nil, s.fail("load lists", err)
	}
	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		items, err := s.store.ItemsByList(ctx, l.ID)
		if err != nil {
			return nil, s.fail("load items", err, "list_id", l.ID)
		}
		out = append(out, ListSummary{List: l, ItemCount: aggregate.CountOf(items)})
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, id string) (model.List, error) {
	l, err := s.store.GetList(ctx, id)
	if err != nil {
		return model.List{}, s.fail("load list", err, "list_id", id)
	}
	return l, nil
}

func (s *Service) CreateList(ctx context.Context, title string) (model.List, error) {
	title, err := validate.ListTitle(title)
	if err != nil {
		return model.List{}, err
	}
	l, err := s.store.CreateList(ctx, title)
	if err != nil {
		return model.List{}, s.fail("create list", err, "title", title)
	}
	s.log.Info("list created", "list_id", l.ID, "title", l.Title)
	return l, nil
}

// DeleteList removes the list and all of its items.
func (s *Service) DeleteList(ctx context.Context, id string) error {
	if err := s.store.DeleteList(ctx, id); err != nil {
		return s.fail("delete list", err, "list_id", id)
	}
	s.log.Info("list deleted", "list_id", id)
	return nil
}

// Items returns a list's raw items, oldest first.
func (s *Service) Items(ctx context.Context, listID string) ([]model.Item, error) {
	items, err := s.store.ItemsByList(ctx, listID)
	if err != nil {
		return nil, s.fail("load items", err, "list_id", listID)
	}
	return items, nil
}

// View is the grouped, totalled view of a list, recomputed from the store
// on every call.
func (s *Service) View(ctx context.Context, listID, filter string) (aggregate.ListView, error) {
	items, err := s.Items(ctx, listID)
	if err != nil {
		return aggregate.ListView{}, err
	}
	return aggregate.ComputeView(items, filter), nil
}

func (s *Service) Item(ctx context.Context, id string) (model.Item, error) {
	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return model.Item{}, s.fail("load item", err, "item_id", id)
	}
	return it, nil
}

func (s *Service) AddItem(ctx context.Context, listID string, in validate.Input) (model.Item, error) {
	f, err := s.validator.Item(in)
	if err != nil {
		return model.Item{}, err
	}
	it, err := s.store.CreateItem(ctx, listID, f)
	if err != nil {
		return model.Item{}, s.fail("save item", err, "list_id", listID)
	}
	s.log.Info("item added", "list_id", listID, "item_id", it.ID, "name", it.Name, "category", it.Category)
	return it, nil
}

// EditItem replaces an item's editable fields with the validated input.
func (s *Service) EditItem(ctx context.Context, id string, in validate.Input) (model.Item, error) {
	f, err := s.validator.Item(in)
	if err != nil {
		return model.Item{}, err
	}
	it, err := s.store.UpdateItem(ctx, id, f)
	if err != nil {
		return model.Item{}, s.fail("update item", err, "item_id", id)
	}
	s.log.Info("item updated", "item_id", id, "name", it.Name)
	return it, nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return s.fail("delete item", err, "item_id", id)
	}
	s.log.Info("item deleted", "item_id", id)
	return nil
}

// DeleteCategory removes every item of listID whose normalized category is
// key, in one write. It reports how many records were removed.
func (s *Service) DeleteCategory(ctx context.Context, listID, key string) (int, error) {
	items, err := s.Items(ctx, listID)
	if err != nil {
		return 0, err
	}
	var ids []string
	for _, it := range items {
		if aggregate.CategoryKey(it.Category) == key {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.store.DeleteItems(ctx, ids); err != nil {
		return 0, s.fail("delete category", err, "list_id", listID, "category", key)
	}
	s.log.Info("category deleted", "list_id", listID, "category", key, "items", len(ids))
	return len(ids), nil
}

// Input turns an existing item back into form input, for edits that only
// change some fields.
func Input(it model.Item) validate.Input {
	cat := it.Category
	return validate.Input{
		Name:     it.Name,
		Quantity: fmt.Sprint(it.Quantity),
		Price:    validate.FormatPrice(it.UnitPrice),
		Category: &cat,
	}
}
