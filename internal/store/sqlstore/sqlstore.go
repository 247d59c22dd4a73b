// Package sqlstore keeps lists and items in a SQLite database through gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/idilsaglam/basket/internal/model"
	"github.com/idilsaglam/basket/internal/store"
)

type listRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (listRow) TableName() string { return "lists" }

type itemRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	ListID    string    `gorm:"not null;index;size:36"`
	Name      string    `gorm:"not null"`
	Category  string    `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (itemRow) TableName() string { return "items" }

func (r listRow) model() model.List {
	return model.List{ID: r.ID, Title: r.Title, CreatedAt: r.CreatedAt}
}

func (r itemRow) model() model.Item {
	return model.Item{
		ID:        r.ID,
		ListID:    r.ListID,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		CreatedAt: r.CreatedAt,
	}
}

// Store is a store.Store over SQLite.
type Store struct {
	db  *gorm.DB
	now store.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for creation timestamps.
func WithClock(c store.Clock) Option {
	return func(s *Store) { s.now = c }
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlstore: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	// one writer; sqlite serializes anyway
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&listRow{}, &itemRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s := &Store{db: db, now: store.SystemClock}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Store) CreateList(ctx context.Context, title string) (model.List, error) {
	row := listRow{ID: uuid.New().String(), Title: title, CreatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.List{}, fmt.Errorf("insert list: %w", err)
	}
	return row.model(), nil
}

func (s *Store) GetList(ctx context.Context, id string) (model.List, error) {
	row, err := getList(s.db.WithContext(ctx), id)
	if err != nil {
		return model.List{}, err
	}
	return row.model(), nil
}

func (s *Store) Lists(ctx context.Context) ([]model.List, error) {
	var rows []listRow
	if err := s.db.WithContext(ctx).Order("created_at DESC, rowid DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	out := make([]model.List, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) DeleteList(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getList(tx, id); err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", id).Delete(&itemRow{}).Error; err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&listRow{}).Error; err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		return nil
	})
}

func (s *Store) CreateItem(ctx context.Context, listID string, f model.ItemFields) (model.Item, error) {
	row := itemRow{
		ID:        uuid.New().String(),
		ListID:    listID,
		Name:      f.Name,
		Category:  f.Category,
		Quantity:  f.Quantity,
		UnitPrice: f.UnitPrice,
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getList(tx, listID); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return row.model(), nil
}

func (s *Store) GetItem(ctx context.Context, id string) (model.Item, error) {
	row, err := getItem(s.db.WithContext(ctx), id)
	if err != nil {
		return model.Item{}, err
	}
	return row.model(), nil
}

func (s *Store) UpdateItem(ctx context.Context, id string, f model.ItemFields) (model.Item, error) {
	var out itemRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := getItem(tx, id)
		if err != nil {
			return err
		}
		row.Name, row.Category, row.Quantity, row.UnitPrice = f.Name, f.Category, f.Quantity, f.UnitPrice
		// Select("*") so zero values (price 0) are written too
		if err := tx.Model(&row).Select("*").Updates(&row).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		out = row
		return nil
	})
	if err != nil {
		return model.Item{}, err
	}
	return out.model(), nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	return s.DeleteItems(ctx, []string{id})
}

func (s *Store) DeleteItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&itemRow{})
		if res.Error != nil {
			return fmt.Errorf("delete items: %w", res.Error)
		}
		if int(res.RowsAffected) != len(unique(ids)) {
			return fmt.Errorf("delete items: %w", store.ErrNotFound)
		}
		return nil
	})
}

func (s *Store) ItemsByList(ctx context.Context, listID string) ([]model.Item, error) {
	db := s.db.WithContext(ctx)
	if _, err := getList(db, listID); err != nil {
		return nil, err
	}
	var rows []itemRow
	if err := db.Where("list_id = ?", listID).Order("created_at ASC, rowid ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	out := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func getList(db *gorm.DB, id string) (listRow, error) {
	var row listRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return listRow{}, fmt.Errorf("list %s: %w", id, store.ErrNotFound)
		}
		return listRow{}, fmt.Errorf("query list: %w", err)
	}
	return row, nil
}

func getItem(db *gorm.DB, id string) (itemRow, error) {
	var row itemRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return itemRow{}, fmt.Errorf("item %s: %w", id, store.ErrNotFound)
		}
		return itemRow{}, fmt.Errorf("query item: %w", err)
	}
	return row, nil
}

func unique(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

var _ store.Store = (*Store)(nil)
