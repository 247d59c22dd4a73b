package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/ui"
)

func (a *app) listsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "lists",
		Aliases: []string{"ls"},
		Short:   "Show all lists, newest first",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lists, err := a.svc.Lists(ctx)
			if err != nil {
				return err
			}
			t := ui.Current()
			lines := []string{
				fmt.Sprintf("%s  %s %d", ui.C(t.Title, "Shopping lists"), ui.C(t.Accent, "Total"), len(lists)),
				"",
			}
			if len(lists) == 0 {
				lines = append(lines,
					ui.C(t.Muted, "no lists"),
					"",
					ui.C(t.Muted, "Tip: create one with `basket new-list Groceries`"),
				)
			}
			for i, l := range lists {
				v, err := a.svc.View(ctx, l.ID, "")
				if err != nil {
					return err
				}
				lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
					ui.C(ui.Dim, fmt.Sprintf("%2d.", i+1)),
					l.Title,
					ui.C(t.Muted, itemCount(l.ItemCount)),
					ui.C(t.Money, ui.Money(v.Total)),
				))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-list <title...>",
		Short: "Create a list",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.svc.CreateList(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("created list %q", l.Title))
			return nil
		},
	}
}

func (a *app) rmListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-list <list>",
		Short: "Delete a list and all of its items",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := resolveList(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			if err := a.svc.DeleteList(ctx, l.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed list %q and %s", l.Title, itemCount(l.ItemCount)))
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var (
		filter  string
		showIDs bool
	)
	cmd := &cobra.Command{
		Use:   "show <list>",
		Short: "Show a list grouped by category with totals",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := resolveList(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			v, err := a.svc.View(ctx, l.ID, filter)
			if err != nil {
				return err
			}
			ui.Panel(cmd.OutOrStdout(), viewLines(l.List, v, filter, showIDs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only items whose name or category contains this text")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "print item ids (for edit and rm)")
	return cmd
}
