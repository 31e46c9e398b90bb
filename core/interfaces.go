package core

import (
	"context"
	"time"
)

// Logger interface - minimal logging interface
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// Telemetry interface - optional telemetry support
type Telemetry interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
	RecordMetric(name string, value float64, labels map[string]string)
}

// Span represents a telemetry span
type Span interface {
	End()
	SetAttribute(key string, value interface{})
	RecordError(err error)
}

// Storage is the scoped key-value durable store behind session and cart
// persistence. Any backend satisfies the contract: a file, Redis, or an
// in-memory map for tests. Get returns "" for an absent key, never an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Well-known storage keys. Each is cleared independently; absence of the
// cart key means an empty cart.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
	StorageKeyCart  = "cart"
)

// Navigator abstracts the surface the application is currently showing and
// how to move to another one. The stores trigger navigation as a side effect
// (role-based landing after login, the login surface after logout) without
// knowing what a "page" is.
type Navigator interface {
	Navigate(path string)
	Path() string
}

// Notifier delivers user-facing feedback for store side effects.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Application surfaces the stores navigate to.
const (
	PathHome              = "/"
	PathLogin             = "/login"
	PathRegister          = "/register"
	PathAdminDashboard    = "/admin/dashboard"
	PathProviderDashboard = "/provider/dashboard"
)

// PublicPaths are the surfaces where an unauthenticated 401 must not trigger
// a redirect to login (avoids redirect loops on the login surface itself).
var PublicPaths = []string{PathHome, PathLogin, PathRegister}

// IsPublicPath reports whether path is one of the public surfaces.
func IsPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if p == path {
			return true
		}
	}
	return false
}

// Default no-op implementations

// NoOpLogger provides a no-op logger implementation
type NoOpLogger struct{}

func (n *NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (n *NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (n *NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// NoOpTelemetry provides a no-op telemetry implementation
type NoOpTelemetry struct{}

func (n *NoOpTelemetry) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return ctx, &NoOpSpan{}
}

func (n *NoOpTelemetry) RecordMetric(name string, value float64, labels map[string]string) {}

// NoOpSpan provides a no-op span implementation
type NoOpSpan struct{}

func (n *NoOpSpan) End()                                       {}
func (n *NoOpSpan) SetAttribute(key string, value interface{}) {}
func (n *NoOpSpan) RecordError(err error)                      {}

// NoOpNavigator ignores navigation and reports the home surface
type NoOpNavigator struct{}

func (n *NoOpNavigator) Navigate(path string) {}
func (n *NoOpNavigator) Path() string         { return PathHome }

// MemoryNavigator tracks the last navigated path in memory. It doubles as
// the test navigator: construct one, drive a store, assert on Path().
type MemoryNavigator struct {
	current string
}

func (m *MemoryNavigator) Navigate(path string) { m.current = path }

func (m *MemoryNavigator) Path() string {
	if m.current == "" {
		return PathHome
	}
	return m.current
}

// NoOpNotifier discards all notifications
type NoOpNotifier struct{}

func (n *NoOpNotifier) Success(msg string) {}
func (n *NoOpNotifier) Error(msg string)   {}
