package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every call loads the whole file, and writes go to a temp file that is
// renamed over the original, so a failed write never leaves half a file.
// A lock file next to the data file keeps two processes from interleaving.

const (
	formatVersion = 1
	lockTimeout   = 3 * time.Second
	lockRetry     = 50 * time.Millisecond
)

type document struct {
	Version int          `json:"version"`
	Lists   []model.List `json:"lists"`
	Items   []model.Item `json:"items"`
}

// Store is a store.Store over a single JSON file.
type Store struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
	now  store.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for creation timestamps.
func WithClock(c store.Clock) Option {
	return func(s *Store) { s.now = c }
}

// Open prepares a store at path. The file itself is created on first write.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonstore: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	s := &Store{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  store.SystemClock,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Path is the data file location.
func (s *Store) Path() string { return s.path }

func (s *Store) CreateList(ctx context.Context, title string) (model.List, error) {
	l := model.List{ID: uuid.New().String(), Title: title, CreatedAt: s.now()}
	err := s.update(ctx, func(d *document) error {
		d.Lists = append(d.Lists, l)
		return nil
	})
	if err != nil {
		return model.List{}, err
	}
	return l, nil
}

func (s *Store) GetList(ctx context.Context, id string) (model.List, error) {
	var out model.List
	err := s.view(ctx, func(d *document) error {
		i := d.listIndex(id)
		if i < 0 {
			return fmt.Errorf("list %s: %w", id, store.ErrNotFound)
		}
		out = d.Lists[i]
		return nil
	})
	return out, err
}

func (s *Store) Lists(ctx context.Context) ([]model.List, error) {
	var out []model.List
	err := s.view(ctx, func(d *document) error {
		// reversed first so equal timestamps still come out newest first
		out = make([]model.List, 0, len(d.Lists))
		for i := len(d.Lists) - 1; i >= 0; i-- {
			out = append(out, d.Lists[i])
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	return s.update(ctx, func(d *document) error {
		i := d.listIndex(id)
		if i < 0 {
			return fmt.Errorf("list %s: %w", id, store.ErrNotFound)
		}
		d.Lists = append(d.Lists[:i], d.Lists[i+1:]...)
		kept := d.Items[:0]
		for _, it := range d.Items {
			if it.ListID != id {
				kept = append(kept, it)
			}
		}
		d.Items = kept
		return nil
	})
}

func (s *Store) CreateItem(ctx context.Context, listID string, f model.ItemFields) (model.Item, error) {
	it := model.Item{ID: uuid.New().String(), ListID: listID, CreatedAt: s.now()}.Apply(f)
	err := s.update(ctx, func(d *document) error {
		if d.listIndex(listID) < 0 {
			return fmt.Errorf("list %s: %w", listID, store.ErrNotFound)
		}
		d.Items = append(d.Items, it)
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (model.Item, error) {
	var out model.Item
	err := s.view(ctx, func(d *document) error {
		i := d.itemIndex(id)
		if i < 0 {
			return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
		}
		out = d.Items[i]
		return nil
	})
	return out, err
}

func (s *Store) UpdateItem(ctx context.Context, id string, f model.ItemFields) (model.Item, error) {
	var out model.Item
	err := s.update(ctx, func(d *document) error {
		i := d.itemIndex(id)
		if i < 0 {
			return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
		}
		d.Items[i] = d.Items[i].Apply(f)
		out = d.Items[i]
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return out, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.DeleteItems(ctx, []string{id})
}

func (s *Store) DeleteItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.update(ctx, func(d *document) error {
		drop := make(map[string]bool, len(ids))
		for _, id := range ids {
			if d.itemIndex(id) < 0 {
				return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
			}
			drop[id] = true
		}
		kept := d.Items[:0]
		for _, it := range d.Items {
			if !drop[it.ID] {
				kept = append(kept, it)
			}
		}
		d.Items = kept
		return nil
	})
}

func (s *Store) ItemsByList(ctx context.Context, listID string) ([]model.Item, error) {
	var out []model.Item
	err := s.view(ctx, func(d *document) error {
		if d.listIndex(listID) < 0 {
			return fmt.Errorf("list %s: %w", listID, store.ErrNotFound)
		}
		out = []model.Item{}
		for _, it := range d.Items {
			if it.ListID == listID {
				out = append(out, it)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
		return nil
	})
	return out, err
}

// Close releases the lock. The lock file stays on disk so every process
// keeps locking the same inode.
func (s *Store) Close() error {
	if err := s.lock.Close(); err != nil {
		return fmt.Errorf("close lock: %w", err)
	}
	return nil
}

// -------------- file handling ----------------

func (d *document) listIndex(id string) int {
	for i, l := range d.Lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (d *document) itemIndex(id string) int {
	for i, it := range d.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// view runs fn against the current file contents under a shared lock.
func (s *Store) view(ctx context.Context, fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx, false)
	if err != nil {
		return err
	}
	defer unlock()

	d, err := s.load()
	if err != nil {
		return err
	}
	return fn(d)
}

// update runs fn under an exclusive lock and saves the result only if fn
// succeeds.
func (s *Store) update(ctx context.Context, fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	d, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(d); err != nil {
		return err
	}
	return s.save(d)
}

func (s *Store) acquire(ctx context.Context, exclusive bool) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = s.lock.TryLockContext(ctx, lockRetry)
	} else {
		locked, err = s.lock.TryRLockContext(ctx, lockRetry)
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, errors.New("could not acquire file lock")
	}
	return func() { _ = s.lock.Unlock() }, nil
}

func (s *Store) load() (*document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &document{Version: formatVersion}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return &document{Version: formatVersion}, nil
	}
	var d document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if d.Version > formatVersion {
		return nil, fmt.Errorf("unsupported file version %d", d.Version)
	}
	d.Version = formatVersion
	return &d, nil
}

func (s *Store) save(d *document) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

var _ store.Store = (*Store)(nil)
