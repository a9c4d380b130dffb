package services

import (
	"context"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/internal/logger"
	"go.uber.org/zap"
)

// FavoriteService wraps the favorite bookmark endpoints.
type FavoriteService struct {
	api *api.Client
}

func NewFavoriteService(client *api.Client) *FavoriteService {
	return &FavoriteService{api: client}
}

// Add bookmarks an item for the authenticated user.
func (s *FavoriteService) Add(ctx context.Context, itemID string) error {
	_, err := s.api.Post(ctx, "/favorite/"+itemID, nil, nil, nil)
	return err
}

// Remove deletes the bookmark for an item.
func (s *FavoriteService) Remove(ctx context.Context, itemID string) error {
	_, err := s.api.Delete(ctx, "/favorite/"+itemID, nil)
	return err
}

// IsFavorite reports whether the item is bookmarked by the current user.
// It never fails the caller: a missing id, a 404 (item deleted), or any
// other error all read as "not a favorite".
func (s *FavoriteService) IsFavorite(ctx context.Context, itemID string) bool {
	if itemID == "" {
		return false
	}
	var favorited bool
	if _, err := s.api.Get(ctx, "/favorite/status/"+itemID, nil, &favorited); err != nil {
		if !api.IsStatus(err, 404) {
			logger.Debug("favorite status check failed", zap.String("itemId", itemID), zap.Error(err))
		}
		return false
	}
	return favorited
}
