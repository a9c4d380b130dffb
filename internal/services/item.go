package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/types"
)

// defaultRecommendedLimit caps recommended-item fetches when the caller
// does not ask for a specific count.
const defaultRecommendedLimit = 6

// ItemService translates listing and search operations into backend
// calls.
type ItemService struct {
	api *api.Client
}

func NewItemService(client *api.Client) *ItemService {
	return &ItemService{api: client}
}

// Search queries /items/search with the given filters. Unset filters are
// stripped from the query so the server treats absence as "no
// constraint". Page indices are 0-based.
func (s *ItemService) Search(ctx context.Context, params types.ItemSearchParams) (types.Page[types.ItemPreview], error) {
	values := url.Values{}
	if params.SearchTerm != "" {
		values.Set("searchTerm", params.SearchTerm)
	}
	if params.MinPrice != nil {
		values.Set("minPrice", formatFloat(*params.MinPrice))
	}
	if params.MaxPrice != nil {
		values.Set("maxPrice", formatFloat(*params.MaxPrice))
	}
	if params.Status != "" {
		values.Set("status", string(params.Status))
	}
	if params.CategoryName != "" {
		values.Set("categoryName", params.CategoryName)
	}
	if params.UserLatitude != nil {
		values.Set("userLatitude", formatFloat(*params.UserLatitude))
	}
	if params.UserLongitude != nil {
		values.Set("userLongitude", formatFloat(*params.UserLongitude))
	}
	if params.MaxDistance != nil {
		values.Set("maxDistance", formatFloat(*params.MaxDistance))
	}
	values.Set("page", strconv.Itoa(params.Page))
	if params.Size > 0 {
		values.Set("size", strconv.Itoa(params.Size))
	}
	if params.Sort != "" {
		values.Set("sort", params.Sort)
	}

	var page types.Page[types.ItemPreview]
	if _, err := s.api.Get(ctx, "/items/search", values, &page); err != nil {
		return types.Page[types.ItemPreview]{}, err
	}
	return page, nil
}

// FetchPreviewItems returns the default first page of item previews.
func (s *ItemService) FetchPreviewItems(ctx context.Context) (types.Page[types.ItemPreview], error) {
	var page types.Page[types.ItemPreview]
	if _, err := s.api.Get(ctx, "/items/all", nil, &page); err != nil {
		return types.Page[types.ItemPreview]{}, err
	}
	return page, nil
}

// FetchItem returns the full details for a single item.
func (s *ItemService) FetchItem(ctx context.Context, itemID string) (types.ItemDetails, error) {
	var details types.ItemDetails
	if _, err := s.api.Get(ctx, "/items/details/"+itemID, nil, &details); err != nil {
		return types.ItemDetails{}, err
	}
	return details, nil
}

// FetchMyPagedItems returns the authenticated user's own listings.
func (s *ItemService) FetchMyPagedItems(ctx context.Context, p types.Pageable) (types.Page[types.ItemPreview], error) {
	var page types.Page[types.ItemPreview]
	if _, err := s.api.Get(ctx, "/items/my", pageQuery(p), &page); err != nil {
		return types.Page[types.ItemPreview]{}, err
	}
	return page, nil
}

// FetchPagedFavoriteItems returns the authenticated user's favorited
// items.
func (s *ItemService) FetchPagedFavoriteItems(ctx context.Context, p types.Pageable) (types.Page[types.ItemPreview], error) {
	var page types.Page[types.ItemPreview]
	if _, err := s.api.Get(ctx, "/favorite", pageQuery(p), &page); err != nil {
		return types.Page[types.ItemPreview]{}, err
	}
	return page, nil
}

// Create posts a new listing and returns its server-assigned id.
func (s *ItemService) Create(ctx context.Context, item types.ItemCreate) (int64, error) {
	var id int64
	if _, err := s.api.Post(ctx, "/items", nil, item, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update modifies an existing listing owned by the caller.
func (s *ItemService) Update(ctx context.Context, itemID string, item types.ItemCreate) (types.ItemCreate, error) {
	var updated types.ItemCreate
	if _, err := s.api.Put(ctx, "/items/"+itemID, nil, item, &updated); err != nil {
		return types.ItemCreate{}, err
	}
	return updated, nil
}

// Delete removes a listing owned by the caller.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	_, err := s.api.Delete(ctx, "/items/"+itemID, nil)
	return err
}

// AdminDelete removes any listing. Requires an admin session.
func (s *ItemService) AdminDelete(ctx context.Context, itemID string) error {
	_, err := s.api.Delete(ctx, "/admin/item/"+itemID, nil)
	return err
}

// RecordView reports that the current user viewed an item. View tracking
// must never fail the caller, so only the status is returned.
func (s *ItemService) RecordView(ctx context.Context, itemID string) int {
	status, err := s.api.Post(ctx, "/items/view/post/"+itemID, nil, nil, nil)
	if err != nil {
		if status == 0 {
			return http.StatusInternalServerError
		}
		return status
	}
	return status
}

// FetchByDistribution returns items drawn according to a category
// probability distribution.
func (s *ItemService) FetchByDistribution(ctx context.Context, rec types.CategoryRecommendation, limit int) (types.Page[types.ItemPreview], error) {
	if limit <= 0 {
		limit = defaultRecommendedLimit
	}
	body := types.RecommendedItemsRequest{Distribution: rec.Distribution, Limit: limit}
	var page types.Page[types.ItemPreview]
	if _, err := s.api.Post(ctx, "/items/view/recommended_items", nil, body, &page); err != nil {
		return types.Page[types.ItemPreview]{}, err
	}
	return page, nil
}
