package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-go/core"
)

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartAddCmd(),
		newCartRemoveCmd(),
		newCartSetCmd(),
		newCartShowCmd(),
		newCartClearCmd(),
	)
	return cmd
}

func newCartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <meal-id>",
		Short: "Add one unit of a meal to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/cart")

			meal, err := app.API.Meals.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}
			if !meal.IsAvailable {
				return fmt.Errorf("%s is not available right now", meal.Title)
			}

			app.Cart.AddItem(ctx, *meal)
			return nil
		},
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <meal-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/cart")
			app.Cart.RemoveItem(ctx, args[0])
			return nil
		},
	}
}

func newCartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <meal-id> <quantity>",
		Short: "Set a line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/cart")

			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}

			app.Cart.UpdateQuantity(ctx, args[0], quantity)
			return nil
		},
	}
}

func newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/cart")

			lines := app.Cart.Lines()
			if len(lines) == 0 {
				fmt.Println("Cart is empty.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
			for _, line := range lines {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					line.ID, line.Title, line.Quantity,
					formatCents(line.PriceCents),
					formatCents(line.PriceCents*int64(line.Quantity)))
			}
			w.Flush()

			fmt.Printf("\n%d items, total %s\n", app.Cart.TotalItems(), formatCents(app.Cart.TotalPrice()))
			return nil
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/cart")
			app.Cart.Clear(ctx)
			fmt.Println("Cart cleared.")
			return nil
		},
	}
}
