package transport

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request-level counters through the global OpenTelemetry
// meter provider. A nil *Metrics is valid and records nothing, so the
// transport works unchanged when telemetry is disabled.
type Metrics struct {
	requests    metric.Int64Counter
	rateLimited metric.Int64Counter
}

// NewMetrics creates the transport counters.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/foodhub/foodhub-go/transport")

	requests, err := meter.Int64Counter("foodhub.client.requests",
		metric.WithDescription("Outgoing API requests by method and status"))
	if err != nil {
		return nil, err
	}

	rateLimited, err := meter.Int64Counter("foodhub.client.rate_limited",
		metric.WithDescription("Responses with HTTP 429"))
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, rateLimited: rateLimited}, nil
}

// RecordRequest counts one request. status 0 means the request never
// produced a response (network failure).
func (m *Metrics) RecordRequest(ctx context.Context, method string, status int) {
	if m == nil {
		return
	}
	m.requests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("status", strconv.Itoa(status)),
		))
}

// RecordRateLimited counts one 429 observation.
func (m *Metrics) RecordRateLimited(ctx context.Context) {
	if m == nil {
		return
	}
	m.rateLimited.Add(ctx, 1)
}
