package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-go/api"
	"github.com/foodhub/foodhub-go/core"
)

func newMealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Browse meals",
	}
	cmd.AddCommand(newMealsListCmd(), newMealsShowCmd(), newCategoriesCmd())
	return cmd
}

func newMealsListCmd() *cobra.Command {
	var category, provider, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available meals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/meals")

			meals, err := app.API.Meals.List(ctx, api.MealFilter{
				CategoryID: category,
				ProviderID: provider,
				Search:     search,
			})
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tAVAILABLE")
			for _, meal := range meals {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n",
					meal.ID, meal.Title, formatCents(meal.PriceCents), meal.IsAvailable)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category ID")
	cmd.Flags().StringVar(&provider, "provider", "", "Filter by provider ID")
	cmd.Flags().StringVar(&search, "search", "", "Search by title")
	return cmd
}

func newMealsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <meal-id>",
		Short: "Show one meal with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/meals")

			meal, err := app.API.Meals.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}

			fmt.Printf("%s — %s\n", meal.Title, formatCents(meal.PriceCents))
			if meal.Description != "" {
				fmt.Println(meal.Description)
			}
			if meal.AverageRating > 0 {
				fmt.Printf("Rating: %.1f\n", meal.AverageRating)
			}

			reviews, err := app.API.Reviews.ForMeal(ctx, meal.ID)
			if err == nil && len(reviews) > 0 {
				fmt.Println("\nReviews:")
				for _, r := range reviews {
					fmt.Printf("  %d/5  %s\n", r.Rating, r.Comment)
				}
			}
			return nil
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List meal categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bootstrap(ctx, "/meals")

			categories, err := app.API.Meals.Categories(ctx)
			if err != nil {
				return fmt.Errorf("%s", core.UserMessage(err))
			}
			for _, c := range categories {
				fmt.Printf("%s\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

// formatCents renders integer cents as a dollar amount.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
