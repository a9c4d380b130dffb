package services

import (
	"context"
	"errors"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/types"
)

// ErrCategoryID is returned when updating a category without an id.
var ErrCategoryID = errors.New("category id is required for updating")

// CategoryService wraps the public and admin category endpoints.
type CategoryService struct {
	api *api.Client
}

func NewCategoryService(client *api.Client) *CategoryService {
	return &CategoryService{api: client}
}

// FetchAll returns every category. Publicly accessible.
func (s *CategoryService) FetchAll(ctx context.Context) ([]types.Category, error) {
	var categories []types.Category
	if _, err := s.api.Get(ctx, "/category/all", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Add creates a category. Requires an admin session.
func (s *CategoryService) Add(ctx context.Context, req types.CategoryRequest) (types.Category, error) {
	var created types.Category
	if _, err := s.api.Post(ctx, "/admin/category", nil, req, &created); err != nil {
		return types.Category{}, err
	}
	return created, nil
}

// Update modifies a category by id. Requires an admin session.
func (s *CategoryService) Update(ctx context.Context, id string, req types.CategoryRequest) (types.Category, error) {
	if id == "" {
		return types.Category{}, ErrCategoryID
	}
	var updated types.Category
	if _, err := s.api.Put(ctx, "/admin/category/"+id, nil, req, &updated); err != nil {
		return types.Category{}, err
	}
	return updated, nil
}

// Delete removes a category. May fail while items still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	_, err := s.api.Delete(ctx, "/admin/category/"+id, nil)
	return err
}
