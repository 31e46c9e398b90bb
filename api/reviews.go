package api

import (
	"context"

	"github.com/foodhub/foodhub-go/core"
)

// ReviewService covers meal reviews.
type ReviewService struct {
	client *Client
}

// CreateReviewRequest attaches a rating to a delivered order's meal.
type CreateReviewRequest struct {
	MealID  string `json:"mealId"`
	OrderID string `json:"orderId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// ForMeal lists reviews for a meal.
func (s *ReviewService) ForMeal(ctx context.Context, mealID string) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.client.get(ctx, "api.reviews.ForMeal", "/reviews/meal/"+mealID, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create submits a review.
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*core.Review, error) {
	var review core.Review
	if err := s.client.post(ctx, "api.reviews.Create", "/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Mine lists the authenticated customer's own reviews.
func (s *ReviewService) Mine(ctx context.Context) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.client.get(ctx, "api.reviews.Mine", "/reviews/my", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
