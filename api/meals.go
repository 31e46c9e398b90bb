package api

import (
	"context"
	"net/url"

	"github.com/foodhub/foodhub-go/core"
)

// MealService covers the public browse surfaces and the provider-scoped
// menu management routes.
type MealService struct {
	client *Client
}

// MealFilter narrows the meal listing. Zero values mean "no filter".
type MealFilter struct {
	CategoryID string
	ProviderID string
	Search     string
}

func (f MealFilter) query() url.Values {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.ProviderID != "" {
		q.Set("providerId", f.ProviderID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// MealInput is the create/update payload for a provider's meal.
type MealInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PriceCents  int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	CategoryID  string `json:"categoryId"`
	IsAvailable bool   `json:"isAvailable"`
}

// Categories lists all meal categories.
func (s *MealService) Categories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	if err := s.client.get(ctx, "api.meals.Categories", "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// List returns meals matching the filter.
func (s *MealService) List(ctx context.Context, filter MealFilter) ([]core.Meal, error) {
	var meals []core.Meal
	if err := s.client.get(ctx, "api.meals.List", "/meals", filter.query(), &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// Get returns a single meal by ID.
func (s *MealService) Get(ctx context.Context, id string) (*core.Meal, error) {
	var meal core.Meal
	if err := s.client.get(ctx, "api.meals.Get", "/meals/"+id, nil, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// ProviderMeals lists the authenticated provider's own menu.
func (s *MealService) ProviderMeals(ctx context.Context) ([]core.Meal, error) {
	var meals []core.Meal
	if err := s.client.get(ctx, "api.meals.ProviderMeals", "/provider/meals", nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// Create adds a meal to the authenticated provider's menu.
func (s *MealService) Create(ctx context.Context, input MealInput) (*core.Meal, error) {
	var meal core.Meal
	if err := s.client.post(ctx, "api.meals.Create", "/provider/meals", input, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// Update replaces a meal's details.
func (s *MealService) Update(ctx context.Context, id string, input MealInput) (*core.Meal, error) {
	var meal core.Meal
	if err := s.client.put(ctx, "api.meals.Update", "/provider/meals/"+id, input, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// Delete removes a meal from the menu.
func (s *MealService) Delete(ctx context.Context, id string) error {
	return s.client.delete(ctx, "api.meals.Delete", "/provider/meals/"+id)
}
