// Package transport implements the client's HTTP contract with the FoodHub
// API: bearer-token injection, request-ID stamping, interception of 401 and
// 429 responses, and classification of network failures into the error kinds
// the rest of the client understands.
//
// The contract it enforces:
//   - Every outgoing request carries "Authorization: Bearer <token>" when a
//     token is present; the token is read per-request, never cached, so a
//     logged-out client cannot attach a stale credential.
//   - A 401 on a non-public surface clears the persisted session and
//     navigates to the login surface with an explanatory message. On a
//     public surface nothing happens (no redirect loops).
//   - A 429 is logged and counted, never acted on.
//   - Connection failures and timeouts surface as distinct error kinds.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/foodhub/foodhub-go/core"
)

// AuthTransport is an http.RoundTripper that injects the bearer credential
// and intercepts authentication and rate-limit responses.
type AuthTransport struct {
	Base      http.RoundTripper
	Tokens    TokenSource
	Storage   core.Storage
	Navigator core.Navigator
	Logger    core.Logger
	Metrics   *Metrics
}

// RoundTrip implements http.RoundTripper
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// Clone before mutating; RoundTrippers must not modify the caller's request.
	out := req.Clone(ctx)
	if token := t.Tokens.Token(ctx); token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", uuid.New().String())
	}
	if out.Header.Get("Content-Type") == "" && out.Body != nil {
		out.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		t.Metrics.RecordRequest(ctx, out.Method, 0)
		return nil, err
	}

	t.Metrics.RecordRequest(ctx, out.Method, resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		t.handleUnauthorized(ctx, out)
	case http.StatusTooManyRequests:
		t.Metrics.RecordRateLimited(ctx)
		t.logger().Warn("Rate limited by API", map[string]interface{}{
			"operation": "http_request",
			"method":    out.Method,
			"path":      out.URL.Path,
		})
	}

	return resp, nil
}

// handleUnauthorized clears the persisted session and redirects to the login
// surface, unless the application is already on a public surface.
func (t *AuthTransport) handleUnauthorized(ctx context.Context, req *http.Request) {
	current := core.PathHome
	if t.Navigator != nil {
		current = t.Navigator.Path()
	}

	if core.IsPublicPath(current) {
		t.logger().Debug("401 on public surface, ignoring", map[string]interface{}{
			"operation": "auth_intercept",
			"path":      current,
		})
		return
	}

	t.logger().Warn("Session rejected by API, clearing credentials", map[string]interface{}{
		"operation": "auth_intercept",
		"method":    req.Method,
		"path":      req.URL.Path,
	})

	if t.Storage != nil {
		if err := t.Storage.Delete(ctx, core.StorageKeyToken); err != nil {
			t.logger().Error("Failed to clear persisted token", map[string]interface{}{
				"operation": "auth_intercept",
				"error":     err.Error(),
			})
		}
		if err := t.Storage.Delete(ctx, core.StorageKeyUser); err != nil {
			t.logger().Error("Failed to clear persisted user", map[string]interface{}{
				"operation": "auth_intercept",
				"error":     err.Error(),
			})
		}
	}

	if t.Navigator != nil {
		t.Navigator.Navigate(core.PathLogin + "?message=" + url.QueryEscape("Session expired. Please login again."))
	}
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) logger() core.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return &core.NoOpLogger{}
}

// ClassifyError converts a low-level request error into a ClientError with
// a distinguishable kind: timeout vs connectivity. Callers pass the errors
// returned by http.Client.Do.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var urlErr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		timedOut = true
	}

	if timedOut {
		return &core.ClientError{
			Op:      op,
			Kind:    core.ErrorKindTimeout,
			Message: "request timed out",
			Err:     fmt.Errorf("%w: %v", core.ErrTimeout, err),
		}
	}

	if errors.Is(err, context.Canceled) {
		return &core.ClientError{
			Op:   op,
			Kind: core.ErrorKindInternal,
			Err:  err,
		}
	}

	return &core.ClientError{
		Op:      op,
		Kind:    core.ErrorKindConnectivity,
		Message: "could not reach the server",
		Err:     fmt.Errorf("%w: %v", core.ErrConnectionFailed, err),
	}
}
