package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodhub/foodhub-go/core"
)

// OrderService covers checkout and order tracking for customers, and order
// management for providers.
type OrderService struct {
	client *Client
}

// OrderItemInput is one cart line submitted at checkout.
type OrderItemInput struct {
	MealID   string `json:"mealId"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the checkout payload. IdempotencyKey guards against
// double submission; callers may leave it empty and Create fills one in.
type CreateOrderRequest struct {
	Address        string           `json:"address"`
	Items          []OrderItemInput `json:"items"`
	IdempotencyKey string           `json:"idempotencyKey,omitempty"`
}

// Create places an order.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*core.Order, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.New().String()
	}
	var order core.Order
	if err := s.client.post(ctx, "api.orders.Create", "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Mine lists the authenticated customer's orders.
func (s *OrderService) Mine(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := s.client.get(ctx, "api.orders.Mine", "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns one order with its items.
func (s *OrderService) Get(ctx context.Context, id string) (*core.Order, error) {
	var order core.Order
	if err := s.client.get(ctx, "api.orders.Get", "/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ProviderOrders lists orders routed to the authenticated provider.
func (s *OrderService) ProviderOrders(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := s.client.get(ctx, "api.orders.ProviderOrders", "/provider/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus advances an order through the server-owned lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status core.OrderStatus) (*core.Order, error) {
	body := map[string]core.OrderStatus{"status": status}
	var order core.Order
	if err := s.client.patch(ctx, "api.orders.UpdateStatus", "/provider/orders/"+id, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
