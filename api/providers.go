package api

import (
	"context"

	"github.com/foodhub/foodhub-go/core"
)

// ProviderService covers the public provider directory and the
// authenticated provider's dashboard stats.
type ProviderService struct {
	client *Client
}

// ProviderStats is the dashboard summary for a provider.
type ProviderStats struct {
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	RevenueCents  int64   `json:"revenue"`
	AverageRating float64 `json:"averageRating"`
	MealCount     int     `json:"mealCount"`
}

// List returns all providers.
func (s *ProviderService) List(ctx context.Context) ([]core.ProviderProfile, error) {
	var providers []core.ProviderProfile
	if err := s.client.get(ctx, "api.providers.List", "/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Get returns one provider with its menu.
func (s *ProviderService) Get(ctx context.Context, id string) (*core.ProviderProfile, error) {
	var provider core.ProviderProfile
	if err := s.client.get(ctx, "api.providers.Get", "/providers/"+id, nil, &provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// Stats returns the authenticated provider's dashboard summary.
func (s *ProviderService) Stats(ctx context.Context) (*ProviderStats, error) {
	var stats ProviderStats
	if err := s.client.get(ctx, "api.providers.Stats", "/provider/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
