// Package store defines the record store the rest of basket persists
// lists and items through. Implementations live in subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/idilsaglam/basket/internal/model"
)

// ErrNotFound is returned when a list or item id is unknown.
var ErrNotFound = errors.New("not found")

// Store persists lists and items.
//
// Every write is all-or-nothing: on error the stored state is exactly what
// it was before the call. DeleteList removes the list's items too.
type Store interface {
	CreateList(ctx context.Context, title string) (model.List, error)
	GetList(ctx context.Context, id string) (model.List, error)
	// Lists returns every list, newest first.
	Lists(ctx context.Context) ([]model.List, error)
	DeleteList(ctx context.Context, id string) error

	CreateItem(ctx context.Context, listID string, f model.ItemFields) (model.Item, error)
	GetItem(ctx context.Context, id string) (model.Item, error)
	UpdateItem(ctx context.Context, id string, f model.ItemFields) (model.Item, error)
	DeleteItem(ctx context.Context, id string) error
	// DeleteItems removes all of ids or none of them.
	DeleteItems(ctx context.Context, ids []string) error
	// ItemsByList returns the items of one list, oldest first.
	ItemsByList(ctx context.Context, listID string) ([]model.Item, error)

	Close() error
}

// Clock returns the current time. Stores take one so tests can control
// creation order.
type Clock func() time.Time

// SystemClock is the default Clock, in UTC.
func SystemClock() time.Time { return time.Now().UTC() }
