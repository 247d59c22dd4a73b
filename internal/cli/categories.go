package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/ui"
)

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the category list offered when adding items",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := ui.Current()
			names := a.reg.List()
			lines := []string{ui.C(t.Title, "Categories"), ""}
			if len(names) == 0 {
				lines = append(lines, ui.C(t.Muted, "none"))
			}
			for _, n := range names {
				line := n
				if t.Icons {
					line = aggregate.IconFor(n) + " " + n
				}
				if n == a.cfg.DefaultCategory {
					line += " " + ui.C(t.Muted, "(default)")
				}
				lines = append(lines, line)
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func (a *app) addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-category <name...>",
		Short: "Add a category to the list offered when adding items",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usage(errors.New("category name cannot be empty"))
			}
			added, err := a.reg.Add(name)
			if err != nil {
				return err
			}
			if !added {
				ui.Hint(cmd.OutOrStdout(), fmt.Sprintf("%q is already a category", name))
				return nil
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added category %q", name))
			return nil
		},
	}
}

func (a *app) rmCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-category <list> <category...>",
		Short: "Delete every item of one category in a list",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := resolveList(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			key := aggregate.CategoryKey(strings.Join(args[1:], " "))
			n, err := a.svc.DeleteCategory(ctx, l.ID, key)
			if err != nil {
				return err
			}
			if n == 0 {
				ui.Hint(cmd.OutOrStdout(), fmt.Sprintf("no %s items in %q", key, l.Title))
				return nil
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %s from %q", itemCount(n), l.Title))
			return nil
		},
	}
}
