package foodhub

import (
	"github.com/foodhub/foodhub-go/core"
)

// Re-export core types so most applications only import this package.
type (
	// Configuration types
	Config          = core.Config
	Option          = core.Option
	APIConfig       = core.APIConfig
	StorageConfig   = core.StorageConfig
	TelemetryConfig = core.TelemetryConfig
	LoggingConfig   = core.LoggingConfig

	// Interfaces
	Logger    = core.Logger
	Storage   = core.Storage
	Telemetry = core.Telemetry
	Span      = core.Span
	Navigator = core.Navigator
	Notifier  = core.Notifier

	// Domain entities
	Role            = core.Role
	User            = core.User
	ProviderProfile = core.ProviderProfile
	Category        = core.Category
	Meal            = core.Meal
	Order           = core.Order
	OrderStatus     = core.OrderStatus
	OrderItem       = core.OrderItem
	Review          = core.Review

	// Errors
	ClientError = core.ClientError
	ErrorKind   = core.ErrorKind
)

// Re-export constants
const (
	RoleCustomer = core.RoleCustomer
	RoleProvider = core.RoleProvider
	RoleAdmin    = core.RoleAdmin

	OrderPlaced    = core.OrderPlaced
	OrderPreparing = core.OrderPreparing
	OrderReady     = core.OrderReady
	OrderDelivered = core.OrderDelivered
	OrderCancelled = core.OrderCancelled

	PathHome              = core.PathHome
	PathLogin             = core.PathLogin
	PathRegister          = core.PathRegister
	PathAdminDashboard    = core.PathAdminDashboard
	PathProviderDashboard = core.PathProviderDashboard
)

// Re-export core functions
var (
	NewConfig     = core.NewConfig
	DefaultConfig = core.DefaultConfig

	// Configuration options
	WithBaseURL         = core.WithBaseURL
	WithTimeout         = core.WithTimeout
	WithStorageProvider = core.WithStorageProvider
	WithStoragePath     = core.WithStoragePath
	WithRedisURL        = core.WithRedisURL
	WithNamespace       = core.WithNamespace
	WithTelemetry       = core.WithTelemetry
	WithStdoutTelemetry = core.WithStdoutTelemetry
	WithLogLevel        = core.WithLogLevel
	WithLogFormat       = core.WithLogFormat
	WithConfigFile      = core.WithConfigFile

	// Error helpers
	IsAuthRejected = core.IsAuthRejected
	IsRateLimited  = core.IsRateLimited
	IsRetryable    = core.IsRetryable
	UserMessage    = core.UserMessage
)
