// Package foodhub is the client SDK for the FoodHub food-ordering API.
//
// The App is the composition root: created once at application start, torn
// down at exit. It wires configuration, logging, durable storage, the HTTP
// transport contract, the typed API clients, and the two state containers
// (session and cart). Consumers read state through the App's handles rather
// than through package-level globals, so tests construct a fresh App (or
// fresh stores) in isolation.
package foodhub

import (
	"context"
	"net/http"

	"github.com/foodhub/foodhub-go/api"
	"github.com/foodhub/foodhub-go/cart"
	"github.com/foodhub/foodhub-go/core"
	"github.com/foodhub/foodhub-go/session"
	"github.com/foodhub/foodhub-go/storage"
	"github.com/foodhub/foodhub-go/telemetry"
	"github.com/foodhub/foodhub-go/transport"
)

// App aggregates the client's long-lived components.
type App struct {
	Config    *core.Config
	Logger    core.Logger
	Storage   core.Storage
	Telemetry core.Telemetry
	HTTP      *http.Client
	API       *api.Client
	Session   *session.Store
	Cart      *cart.Store

	navigator core.Navigator
	notifier  core.Notifier
	otel      *telemetry.OTelProvider
}

// AppOption configures the App beyond what Config covers.
type AppOption func(*App)

// WithNavigator injects the surface/navigation implementation.
func WithNavigator(nav core.Navigator) AppOption {
	return func(a *App) {
		if nav != nil {
			a.navigator = nav
		}
	}
}

// WithNotifier injects the user-feedback implementation.
func WithNotifier(n core.Notifier) AppOption {
	return func(a *App) {
		if n != nil {
			a.notifier = n
		}
	}
}

// WithLogger overrides the default production logger.
func WithLogger(logger core.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.Logger = logger
		}
	}
}

// WithStorage injects a custom durable store, bypassing the configured
// provider. Tests use this with storage.NewMemoryStore().
func WithStorage(s core.Storage) AppOption {
	return func(a *App) {
		if s != nil {
			a.Storage = s
		}
	}
}

// NewApp builds the client from configuration. A nil cfg uses
// core.NewConfig() (defaults plus environment).
func NewApp(cfg *core.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		var err error
		cfg, err = core.NewConfig()
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:    cfg,
		Telemetry: &core.NoOpTelemetry{},
		navigator: &core.MemoryNavigator{},
		notifier:  &core.NoOpNotifier{},
	}

	logger := core.NewProductionLogger("foodhub")
	logger.SetLevel(cfg.Logging.Level)
	logger.SetFormat(cfg.Logging.Format)
	app.Logger = logger

	for _, opt := range opts {
		opt(app)
	}

	if app.Storage == nil {
		store, err := buildStorage(cfg, app.Logger)
		if err != nil {
			return nil, err
		}
		app.Storage = store
	}

	var metrics *transport.Metrics
	if cfg.Telemetry.Enabled {
		var provider *telemetry.OTelProvider
		var err error
		if cfg.Telemetry.Stdout {
			provider, err = telemetry.NewStdoutProvider("foodhub-client")
		} else {
			provider, err = telemetry.NewOTelProvider("foodhub-client", cfg.Telemetry.Endpoint)
		}
		if err != nil {
			return nil, err
		}
		app.Telemetry = provider
		app.otel = provider

		metrics, err = transport.NewMetrics()
		if err != nil {
			return nil, err
		}
	}

	app.HTTP = transport.NewClient(transport.Options{
		Timeout:   cfg.API.Timeout,
		Tokens:    &transport.StorageTokenSource{Storage: app.Storage},
		Storage:   app.Storage,
		Navigator: app.navigator,
		Logger:    app.Logger,
		Metrics:   metrics,
		Tracing:   cfg.Telemetry.Enabled,
	})

	app.API = api.NewClient(cfg.API.BaseURL, app.HTTP, app.Logger)

	app.Session = session.New(app.Storage, app.API.Auth,
		session.WithLogger(app.Logger),
		session.WithNavigator(app.navigator),
		session.WithNotifier(app.notifier),
	)

	app.Cart = cart.New(app.Storage,
		cart.WithLogger(app.Logger),
		cart.WithNotifier(app.notifier),
	)

	return app, nil
}

// buildStorage constructs the configured durable store.
func buildStorage(cfg *core.Config, logger core.Logger) (core.Storage, error) {
	switch cfg.Storage.Provider {
	case "memory":
		store := storage.NewMemoryStore()
		store.SetLogger(logger)
		return store, nil
	case "redis":
		return storage.NewRedisStore(storage.RedisStoreOptions{
			RedisURL:  cfg.Storage.RedisURL,
			Namespace: cfg.Storage.Namespace,
			Logger:    logger,
		})
	case "file", "":
		dir, err := cfg.StoragePath()
		if err != nil {
			return nil, err
		}
		store, err := storage.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		store.SetLogger(logger)
		return store, nil
	default:
		return nil, &core.ClientError{
			Op:      "foodhub.NewApp",
			Kind:    core.ErrorKindConfig,
			Message: "unknown storage provider: " + cfg.Storage.Provider,
			Err:     core.ErrInvalidConfiguration,
		}
	}
}

// Bootstrap restores session and cart state from the durable store and
// reconciles the session with the server. Runs once at application start;
// a non-auth reconciliation failure is returned for presentation but leaves
// the restored state intact.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.Cart.Hydrate(ctx); err != nil {
		a.Logger.Error("Cart hydration failed", map[string]interface{}{
			"operation": "app_bootstrap",
			"error":     err.Error(),
		})
	}
	return a.Session.Bootstrap(ctx)
}

// Checkout places an order from the current cart lines and clears the cart
// once the server accepts it. The cart is untouched when the order fails.
func (a *App) Checkout(ctx context.Context, address string) (*core.Order, error) {
	lines := a.Cart.Lines()
	if len(lines) == 0 {
		return nil, &core.ClientError{
			Op:      "app.Checkout",
			Kind:    core.ErrorKindValidation,
			Message: "cart is empty",
		}
	}

	items := make([]api.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, api.OrderItemInput{MealID: line.ID, Quantity: line.Quantity})
	}

	order, err := a.API.Orders.Create(ctx, api.CreateOrderRequest{
		Address: address,
		Items:   items,
	})
	if err != nil {
		return nil, err
	}

	a.Cart.Clear(ctx)
	return order, nil
}

// Close releases long-lived resources (telemetry pipeline, storage
// connections).
func (a *App) Close(ctx context.Context) error {
	if closer, ok := a.Storage.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Error("Storage close failed", map[string]interface{}{
				"operation": "app_close",
				"error":     err.Error(),
			})
		}
	}
	if a.otel != nil {
		return a.otel.Shutdown(ctx)
	}
	return nil
}
