// Package api provides typed clients for the FoodHub REST API. All pricing,
// inventory, order-state, and authorization decisions live server-side; this
// layer only shapes requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/foodhub/foodhub-go/core"
	"github.com/foodhub/foodhub-go/transport"
)

// Client is the typed API surface. Service groups mirror the remote routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     core.Logger

	Auth      *AuthService
	Meals     *MealService
	Orders    *OrderService
	Providers *ProviderService
	Reviews   *ReviewService
	Admin     *AdminService
}

// NewClient creates an API client over the given HTTP client (normally one
// built by transport.NewClient, so the bearer/interception contract holds).
func NewClient(baseURL string, httpClient *http.Client, logger core.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: transport.DefaultTimeout}
	}
	if logger == nil {
		logger = &core.NoOpLogger{}
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
	c.Auth = &AuthService{client: c}
	c.Meals = &MealService{client: c}
	c.Orders = &OrderService{client: c}
	c.Providers = &ProviderService{client: c}
	c.Reviews = &ReviewService{client: c}
	c.Admin = &AdminService{client: c}
	return c
}

// envelope is the response wrapper the API uses for success and failure.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// serverMessage returns the human-readable message, preferring "message"
// over "error", matching what the API populates on failures.
func (e *envelope) serverMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do performs a request and decodes the envelope's data field into out.
// Network failures come back classified (timeout vs connectivity); API
// failures come back as ClientErrors carrying the verbatim server message.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return core.NewClientError(op, core.ErrorKindInternal, fmt.Errorf("marshal request: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return core.NewClientError(op, core.ErrorKindInternal, fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("API request", map[string]interface{}{
		"operation": op,
		"method":    method,
		"path":      path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transport.ClassifyError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.NewClientError(op, core.ErrorKindInternal, fmt.Errorf("read response: %w", err))
	}

	var env envelope
	if len(respBody) > 0 {
		// Tolerate non-JSON bodies on errors; the status code still decides.
		_ = json.Unmarshal(respBody, &env)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(op, resp.StatusCode, &env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return core.NewClientError(op, core.ErrorKindInternal, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// statusError maps an API failure status to the client error taxonomy.
func (c *Client) statusError(op string, status int, env *envelope) error {
	msg := env.serverMessage()

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "authentication rejected"
		}
		return &core.ClientError{
			Op:      op,
			Kind:    core.ErrorKindAuth,
			Status:  status,
			Message: msg,
			Err:     core.ErrAuthRejected,
		}
	case http.StatusTooManyRequests:
		if msg == "" {
			msg = "rate limited"
		}
		return &core.ClientError{
			Op:      op,
			Kind:    core.ErrorKindRateLimit,
			Status:  status,
			Message: msg,
			Err:     core.ErrRateLimited,
		}
	}

	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	// Everything else is a validation/business error surfaced verbatim.
	return &core.ClientError{
		Op:      op,
		Kind:    core.ErrorKindValidation,
		Status:  status,
		Message: msg,
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, op, path string, body, out interface{}) error {
	return c.do(ctx, op, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, nil)
}
