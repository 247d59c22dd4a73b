package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Prefs is a tiny YAML key/value file, the on-disk home of settings the
// app writes itself (the category list). It satisfies category.Prefs.
type Prefs struct {
	path string
	v    *viper.Viper
}

// OpenPrefs loads path if it exists; otherwise prefs start empty and the
// file is created on the first write.
func OpenPrefs(path string) (*Prefs, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read prefs: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat prefs: %w", err)
	}
	return &Prefs{path: path, v: v}, nil
}

func (p *Prefs) GetString(key string) (string, bool) {
	if !p.v.IsSet(key) {
		return "", false
	}
	return p.v.GetString(key), true
}

// SetString writes the whole prefs file with key updated. The in-memory
// values only change once the write succeeded.
func (p *Prefs) SetString(key, value string) error {
	next := viper.New()
	next.SetConfigType("yaml")
	if err := next.MergeConfigMap(p.v.AllSettings()); err != nil {
		return fmt.Errorf("copy prefs: %w", err)
	}
	next.Set(key, value)

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := next.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	next.SetConfigFile(p.path)
	p.v = next
	return nil
}
