package api

import (
	"context"

	"github.com/foodhub/foodhub-go/core"
)

// AdminService covers the moderation surface: platform stats, user
// activation, order oversight, category management, and review removal.
type AdminService struct {
	client *Client
}

// AdminStats is the platform-wide dashboard summary.
type AdminStats struct {
	TotalUsers     int   `json:"totalUsers"`
	TotalProviders int   `json:"totalProviders"`
	TotalOrders    int   `json:"totalOrders"`
	RevenueCents   int64 `json:"revenue"`
}

// Stats returns platform-wide totals.
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := s.client.get(ctx, "api.admin.Stats", "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Users lists all registered users.
func (s *AdminService) Users(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := s.client.get(ctx, "api.admin.Users", "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserActive activates or deactivates a user account.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"isActive": active}
	return s.client.patch(ctx, "api.admin.SetUserActive", "/admin/users/"+id, body, nil)
}

// Orders lists every order on the platform.
func (s *AdminService) Orders(ctx context.Context) ([]core.Order, error) {
	var orders []core.Order
	if err := s.client.get(ctx, "api.admin.Orders", "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateCategory adds a meal category. Duplicate names come back as
// validation errors with the server's message intact.
func (s *AdminService) CreateCategory(ctx context.Context, name string) (*core.Category, error) {
	body := map[string]string{"name": name}
	var category core.Category
	if err := s.client.post(ctx, "api.admin.CreateCategory", "/admin/categories", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id, name string) (*core.Category, error) {
	body := map[string]string{"name": name}
	var category core.Category
	if err := s.client.put(ctx, "api.admin.UpdateCategory", "/admin/categories/"+id, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	return s.client.delete(ctx, "api.admin.DeleteCategory", "/admin/categories/"+id)
}

// Reviews lists all reviews for moderation.
func (s *AdminService) Reviews(ctx context.Context) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.client.get(ctx, "api.admin.Reviews", "/admin/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteReview removes a review.
func (s *AdminService) DeleteReview(ctx context.Context, id string) error {
	return s.client.delete(ctx, "api.admin.DeleteReview", "/admin/reviews/"+id)
}
