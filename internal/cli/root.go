// Package cli implements the foodhub command-line client: the terminal
// front-end over the SDK's stores and API clients.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	foodhub "github.com/foodhub/foodhub-go"
	"github.com/foodhub/foodhub-go/core"
)

var (
	flagServer     string
	flagStorageDir string
	flagLogLevel   string
	flagLogFormat  string

	app       *foodhub.App
	navigator *core.MemoryNavigator
)

// defaultServer returns the default API URL, checking FOODHUB_API_URL first.
func defaultServer() string {
	if s := os.Getenv("FOODHUB_API_URL"); s != "" {
		return s
	}
	return "https://foodhub-backend-api.vercel.app/api"
}

// NewRootCmd creates the root cobra command for the foodhub CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foodhub",
		Short: "foodhub — order meals from the FoodHub platform",
		Long:  "foodhub browses meals, manages a persistent cart, and places orders against the FoodHub API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := []core.Option{
				foodhub.WithBaseURL(flagServer),
				foodhub.WithStorageProvider("file"),
				foodhub.WithLogLevel(flagLogLevel),
				foodhub.WithLogFormat(flagLogFormat),
			}
			if flagStorageDir != "" {
				opts = append(opts, foodhub.WithStoragePath(flagStorageDir))
			}

			cfg, err := foodhub.NewConfig(opts...)
			if err != nil {
				return err
			}

			navigator = &core.MemoryNavigator{}
			app, err = foodhub.NewApp(cfg,
				foodhub.WithNavigator(navigator),
				foodhub.WithNotifier(&terminalNotifier{}),
			)
			return err
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "FoodHub API URL (or FOODHUB_API_URL env)")
	root.PersistentFlags().StringVar(&flagStorageDir, "storage-dir", "", "State directory (default ~/.foodhub)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newMealsCmd(),
		newCartCmd(),
		newCheckoutCmd(),
		newOrdersCmd(),
	)

	return root
}

// bootstrap restores persisted session and cart state before a command that
// reads either. Surface is the logical page the command represents; the 401
// interception contract keys off it.
func bootstrap(ctx context.Context, surface string) {
	navigator.Navigate(surface)
	if err := app.Bootstrap(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", core.UserMessage(err))
	}
}

// terminalNotifier prints store feedback to the terminal.
type terminalNotifier struct{}

func (t *terminalNotifier) Success(msg string) { fmt.Println(msg) }
func (t *terminalNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }
