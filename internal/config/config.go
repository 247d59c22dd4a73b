// Package config resolves basket's settings from flags, environment,
// config file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix = "BASKET"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the resolved configuration.
type Config struct {
	DataDir         string        `mapstructure:"data_dir"`
	Store           StoreConfig   `mapstructure:"store"`
	DefaultCategory string        `mapstructure:"default_category"`
	Theme           string        `mapstructure:"theme"`
	Log             LogConfig     `mapstructure:"log"`
	SplashDelay     time.Duration `mapstructure:"splash_delay"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// New returns a viper instance with defaults and environment binding set.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.path", "")
	v.SetDefault("default_category", "Food")
	v.SetDefault("theme", "classic")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("splash_delay", 2*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (file if given, otherwise basket.yaml in the
// working directory or ~/.basket) and resolves derived paths. A missing
// default config file is fine; a missing explicit one is not.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("basket")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join("$HOME", ".basket"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c.resolve()
}

func (c Config) resolve() (Config, error) {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendJSON:
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(c.DataDir, "basket.json")
		}
	case BackendSQLite:
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(c.DataDir, "basket.db")
		}
	default:
		return Config{}, fmt.Errorf("unknown store backend %q (want %s or %s)", c.Store.Backend, BackendJSON, BackendSQLite)
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "basket.log")
	}
	if c.SplashDelay < 0 {
		c.SplashDelay = 0
	}
	return c, nil
}

// PrefsPath is where the category list and other small settings live.
func (c Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".basket"
	}
	return filepath.Join(home, ".basket")
}
