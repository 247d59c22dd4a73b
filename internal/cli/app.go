package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/basket/internal/category"
	"github.com/idilsaglam/basket/internal/config"
	"github.com/idilsaglam/basket/internal/logger"
	"github.com/idilsaglam/basket/internal/shopping"
	"github.com/idilsaglam/basket/internal/store"
	"github.com/idilsaglam/basket/internal/store/jsonstore"
	"github.com/idilsaglam/basket/internal/store/sqlstore"
	"github.com/idilsaglam/basket/internal/tui"
	"github.com/idilsaglam/basket/internal/ui"
	"github.com/idilsaglam/basket/internal/validate"
)

// app holds what every command needs. It is filled in by the root
// command's PersistentPreRunE, after flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	color   bool
	noColor bool

	cfg   config.Config
	log   *logger.Logger
	store store.Store
	svc   *shopping.Service
	reg   *category.Registry
}

func newApp() *app {
	return &app{v: config.New(), log: logger.Nop()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "basket",
		Short: "Shopping lists with category totals",
		Long: `basket keeps shopping lists on disk, groups items by category and
totals every category and list with a fixed 13% tax.

Run without a subcommand to open the interactive interface.

Examples:
  basket new-list Groceries
  basket add Groceries Bread --qty 1 --price 8 --category Food
  basket show Groceries
  basket export Groceries --format json`,
		Version:           Version,
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.open() },
		RunE:              a.runUI,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./basket.yaml or ~/.basket/basket.yaml)")
	pf.String("data-dir", "", "directory for the store, prefs and log")
	pf.String("backend", "", "store backend: json or sqlite")
	pf.String("store", "", "store file path")
	pf.String("theme", "", "output theme: classic, neon or mono")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.color, "color", false, "force colored output")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	for key, flag := range map[string]string{
		"data_dir":      "data-dir",
		"store.backend": "backend",
		"store.path":    "store",
		"theme":         "theme",
		"log.level":     "log-level",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.uiCmd(),
		a.listsCmd(),
		a.newListCmd(),
		a.rmListCmd(),
		a.showCmd(),
		a.addCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.rmCategoryCmd(),
		a.categoriesCmd(),
		a.addCategoryCmd(),
		a.exportCmd(),
		a.aboutCmd(),
	)
	return root
}

// open resolves configuration and opens the store, prefs and log.
func (a *app) open() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	if a.color || a.noColor {
		ui.SetColorForcing(a.color, a.noColor)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	a.log = log

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	a.store = st

	prefs, err := config.OpenPrefs(cfg.PrefsPath())
	if err != nil {
		return err
	}
	a.reg = category.Load(prefs)
	a.svc = shopping.New(a.store, validate.Validator{DefaultCategory: cfg.DefaultCategory}, log)
	a.log.Debug("opened", "backend", cfg.Store.Backend, "store", cfg.Store.Path)
	return nil
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Store.Backend == config.BackendSQLite {
		return sqlstore.Open(cfg.Store.Path)
	}
	return jsonstore.Open(cfg.Store.Path)
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", "error", err)
		}
	}
	a.log.Sync()
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive interface",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  a.runUI,
	}
}

func (a *app) runUI(cmd *cobra.Command, _ []string) error {
	return tui.Run(cmd.Context(), tui.Options{
		Service:     a.svc,
		Registry:    a.reg,
		Default:     a.cfg.DefaultCategory,
		SplashDelay: a.cfg.SplashDelay,
		Log:         a.log,
	})
}
