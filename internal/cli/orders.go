package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-go/core"
)

func newCheckoutCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/checkout")

			if !app.Session.Authenticated() {
				return fmt.Errorf("sign in before checking out (foodhub login)")
			}

			var err error
			if address == "" {
				if address, err = prompt("Delivery address: "); err != nil {
					return err
				}
			}
			if address == "" {
				return fmt.Errorf("delivery address is required")
			}

			order, err := app.Checkout(ctx, address)
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}

			fmt.Printf("Order %s placed — total %s\n", order.ID, formatCents(order.TotalCents))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Delivery address (prompted if omitted)")
	return cmd
}

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Track your orders",
	}
	cmd.AddCommand(newOrdersListCmd(), newOrdersShowCmd())
	return cmd
}

func newOrdersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/orders")

			orders, err := app.API.Orders.Mine(ctx)
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
			for _, order := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					order.ID, order.Status,
					formatCents(order.TotalCents),
					order.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newOrdersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/orders")

			order, err := app.API.Orders.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}

			fmt.Printf("Order %s — %s\n", order.ID, order.Status)
			fmt.Printf("Deliver to: %s\n\n", order.Address)
			for _, item := range order.OrderItems {
				title := item.MealID
				if item.Meal != nil {
					title = item.Meal.Title
				}
				fmt.Printf("  %dx %s  %s\n", item.Quantity, title, formatCents(item.PriceCents*int64(item.Quantity)))
			}
			fmt.Printf("\nTotal: %s\n", formatCents(order.TotalCents))
			return nil
		},
	}
}
