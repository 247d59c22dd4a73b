package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/export"
	"github.com/idilsaglam/basket/internal/ui"
)

func (a *app) exportCmd() *cobra.Command {
	var format, filter, output string
	cmd := &cobra.Command{
		Use:   "export <list>",
		Short: "Write a list with its totals as YAML or JSON",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != export.FormatYAML && format != export.FormatJSON {
				return usage(fmt.Errorf("unknown format %q (want yaml or json)", format))
			}
			ctx := cmd.Context()
			l, err := resolveList(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			v, err := a.svc.View(ctx, l.ID, filter)
			if err != nil {
				return err
			}
			doc := export.Build(l.List, v, filter)

			if output == "" {
				return export.Write(cmd.OutOrStdout(), format, doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := export.Write(f, format, doc); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			ui.OK(cmd.ErrOrStderr(), fmt.Sprintf("exported %q to %s", l.Title, output))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", export.FormatYAML, "yaml or json")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only items whose name or category contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
