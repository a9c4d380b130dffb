package services

import (
	"context"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/types"
)

// RecommendationService wraps the recommendation-engine endpoints.
type RecommendationService struct {
	api *api.Client
}

func NewRecommendationService(client *api.Client) *RecommendationService {
	return &RecommendationService{api: client}
}

// CategoryRecommendations returns the category probability distribution
// derived from the user's browsing behavior.
func (s *RecommendationService) CategoryRecommendations(ctx context.Context) (types.CategoryRecommendation, error) {
	var rec types.CategoryRecommendation
	if _, err := s.api.Get(ctx, "/recommendations/categories", nil, &rec); err != nil {
		return types.CategoryRecommendation{}, err
	}
	return rec, nil
}

// UserViewCount returns the total number of item views recorded for the
// current user.
func (s *RecommendationService) UserViewCount(ctx context.Context) (int64, error) {
	var resp struct {
		TotalViews int64 `json:"totalViews"`
	}
	if _, err := s.api.Get(ctx, "/recommendations/views/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.TotalViews, nil
}
