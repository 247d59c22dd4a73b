package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/ui"
)

func (a *app) aboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show version and where data is kept",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := ui.Current()
			ui.Panel(cmd.OutOrStdout(), []string{
				ui.C(t.Title, "basket") + " " + ui.C(t.Muted, Version),
				"Shopping lists grouped by category, totalled with tax.",
				"",
				fmt.Sprintf("%-10s %d%%", "Tax", int(math.Floor(aggregate.TaxRate*100+0.5))),
				fmt.Sprintf("%-10s %s", "Data", a.cfg.DataDir),
				fmt.Sprintf("%-10s %s (%s)", "Store", a.cfg.Store.Path, a.cfg.Store.Backend),
				fmt.Sprintf("%-10s %s", "Log", a.cfg.Log.File),
			})
			return nil
		},
	}
}
