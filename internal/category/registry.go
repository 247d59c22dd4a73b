// Package category keeps the user's ordered list of category names.
package category

import (
	"errors"
	"fmt"
	"strings"
)

// Key is the prefs key holding the comma-joined category names. Viper folds
// keys to lowercase on disk, so the constant is spelled that way too.
const Key = "categorieslist"

// Defaults is what a fresh install starts with.
var Defaults = []string{"Food", "Cleaning", "Medication", "Fruits & Vegetables", "Beverages"}

// ErrInvalidName is returned for names the stored format cannot hold.
var ErrInvalidName = errors.New("category name cannot contain a comma")

// Prefs is the small key/value store the registry persists through.
// GetString reports ok=false when the key was never written.
type Prefs interface {
	GetString(key string) (value string, ok bool)
	SetString(key, value string) error
}

// Registry is an ordered, append-only set of category names.
// Names are compared exactly; "Snacks" and "snacks" are different.
type Registry struct {
	prefs Prefs
	names []string
}

// Load reads the registry from prefs, falling back to Defaults when
// nothing has been stored yet.
func Load(prefs Prefs) *Registry {
	r := &Registry{prefs: prefs}
	raw, ok := prefs.GetString(Key)
	if !ok {
		r.names = append([]string(nil), Defaults...)
		return r
	}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name != "" && !r.Contains(name) {
			r.names = append(r.names, name)
		}
	}
	return r
}

// Add appends name unless it is blank or already present, and reports
// whether it did. The new list is written to prefs before it becomes
// visible; on a write error the registry is unchanged.
func (r *Registry) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || r.Contains(name) {
		return false, nil
	}
	if strings.Contains(name, ",") {
		return false, ErrInvalidName
	}
	next := append(append([]string(nil), r.names...), name)
	if err := r.prefs.SetString(Key, strings.Join(next, ",")); err != nil {
		return false, fmt.Errorf("save categories: %w", err)
	}
	r.names = next
	return true, nil
}

// List returns the names in insertion order.
func (r *Registry) List() []string {
	return append([]string(nil), r.names...)
}

// Contains reports whether name is registered exactly as given.
func (r *Registry) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// Index is the position of name, or -1.
func (r *Registry) Index(name string) int {
	for i, n := range r.names {
		if n == name {
			return i
		}
	}
	return -1
}
