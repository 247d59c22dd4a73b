package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/basket/internal/aggregate"
	"github.com/idilsaglam/basket/internal/shopping"
	"github.com/idilsaglam/basket/internal/ui"
	"github.com/idilsaglam/basket/internal/validate"
)

func (a *app) addCmd() *cobra.Command {
	var qty, price, cat string
	cmd := &cobra.Command{
		Use:   "add <list> <name...>",
		Short: "Add an item to a list",
		Example: `  basket add Groceries Bread --price 8
  basket add 1 Dish soap --qty 2 --price 3.25 --category Cleaning`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := resolveList(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			in := validate.Input{Name: strings.Join(args[1:], " "), Quantity: qty, Price: price}
			if cmd.Flags().Changed("category") {
				in.Category = &cat
			}
			it, err := a.svc.AddItem(ctx, l.ID, in)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s x%d to %s (%s) %s",
				it.Name, it.Quantity, aggregate.CategoryKey(it.Category), l.Title,
				ui.Money(aggregate.LineTotal(it.Quantity, it.UnitPrice))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&qty, "qty", "q", "1", "quantity, a whole number above zero")
	cmd.Flags().StringVarP(&price, "price", "p", "", "unit price before tax")
	cmd.Flags().StringVarP(&cat, "category", "c", "", "category (default from config)")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var name, qty, price, cat string
	cmd := &cobra.Command{
		Use:   "edit <item>",
		Short: "Change an item; fields not given keep their value",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			in := shopping.Input(it)
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = name
			}
			if flags.Changed("qty") {
				in.Quantity = qty
			}
			if flags.Changed("price") {
				in.Price = price
			}
			if flags.Changed("category") {
				in.Category = &cat
			}
			updated, err := a.svc.EditItem(ctx, it.ID, in)
			if err != nil {
				return err
			}
			c := aggregate.ItemCost(updated)
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated %s x%d %s", updated.Name, updated.Quantity, ui.Money(c.Total)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "new quantity")
	cmd.Flags().StringVarP(&price, "price", "p", "", "new unit price")
	cmd.Flags().StringVarP(&cat, "category", "c", "", "new category")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item>",
		Short: "Delete an item",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			it, err := resolveItem(ctx, a.svc, args[0])
			if err != nil {
				return err
			}
			if err := a.svc.DeleteItem(ctx, it.ID); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %s", it.Name))
			return nil
		},
	}
}
