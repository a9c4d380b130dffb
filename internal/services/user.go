package services

import (
	"context"
	"strconv"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/types"
)

// UserService wraps the user endpoints, including the admin management
// surface.
type UserService struct {
	api *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{api: client}
}

// CurrentUserID asks the backend for the id behind the session token.
func (s *UserService) CurrentUserID(ctx context.Context) (int64, error) {
	var id int64
	if _, err := s.api.Get(ctx, "/users/id", nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Register creates a new account. It does not authenticate the session;
// see session.Store.Register for the chained flow.
func (s *UserService) Register(ctx context.Context, data types.UserCreate) error {
	_, err := s.api.Post(ctx, "/auth/register", nil, data, nil)
	return err
}

// FetchUsers lists accounts for the admin panel.
func (s *UserService) FetchUsers(ctx context.Context, p types.Pageable) (types.Page[types.User], error) {
	var page types.Page[types.User]
	if _, err := s.api.Get(ctx, "/admin/users", pageQuery(p), &page); err != nil {
		return types.Page[types.User]{}, err
	}
	return page, nil
}

// FetchUser returns one account by id for the admin panel.
func (s *UserService) FetchUser(ctx context.Context, id int64) (types.User, error) {
	var user types.User
	if _, err := s.api.Get(ctx, "/admin/users/"+strconv.FormatInt(id, 10), nil, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// UpdateUser modifies an account through the admin endpoint.
func (s *UserService) UpdateUser(ctx context.Context, id int64, data types.AdminUserUpdate) (types.User, error) {
	var user types.User
	if _, err := s.api.Put(ctx, "/admin/users/"+strconv.FormatInt(id, 10), nil, data, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// DeleteUser removes an account through the admin endpoint.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, "/admin/users/"+strconv.FormatInt(id, 10), nil)
	return err
}
