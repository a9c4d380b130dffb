// Package session holds the single source of truth for who is logged in.
// It owns the bearer token, the role and user id derived from it, and the
// current user's profile, persisting the identity fields through the
// credential store.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/fant-market/client/internal/api"
	"github.com/fant-market/client/internal/logger"
	"github.com/fant-market/client/internal/store"
	"github.com/fant-market/client/types"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrLoginInfo is returned for any authentication attempt that does not
// produce a 200 response with a token.
var ErrLoginInfo = errors.New("login info error")

// Store manages the authenticated session.
type Store struct {
	mu      sync.RWMutex
	creds   store.Credentials
	profile types.Profile

	persist *store.CredentialStore
	client  *api.Client
}

// NewStore constructs a session store and loads any persisted
// credentials. A persisted token whose payload can no longer be decoded
// destroys the stale session. A token persisted without its derived role
// (written by an older client) is repaired by decoding it again.
func NewStore(persist *store.CredentialStore) *Store {
	s := &Store{persist: persist}

	creds, err := persist.Load()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("failed to load credentials", zap.Error(err))
		}
		return s
	}

	if creds.Token != "" && creds.Role == "" {
		role, userID, decodeErr := decodeClaims(creds.Token)
		if decodeErr != nil {
			logger.Warn("discarding undecodable session token", zap.Error(decodeErr))
			_ = persist.Clear()
			return s
		}
		creds.Role = role
		creds.UserID = userID
		_ = persist.Save(creds)
	}

	s.creds = creds
	return s
}

// UseClient attaches the HTTP client used for the auth and profile
// endpoints. The client in turn reads this store as its token source.
func (s *Store) UseClient(client *api.Client) {
	s.client = client
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Username returns the name the user logged in with.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Role returns the role decoded from the session token.
func (s *Store) Role() types.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Role(s.creds.Role)
}

// UserID returns the user id decoded from the session token.
func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.UserID
}

// LoggedIn reports whether a session token is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the decoded role grants admin access. This is
// UX gating only; the backend still authorizes every call.
func (s *Store) IsAdmin() bool {
	return s.Role() == types.RoleAdmin
}

// Profile returns the last successfully fetched profile.
func (s *Store) Profile() types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Login records a successful authentication. It fails with ErrLoginInfo
// unless status is exactly 200, decodes the role and user id claims from
// the token payload, and persists the identity fields.
func (s *Store) Login(status int, token, username string) error {
	if status != http.StatusOK {
		return ErrLoginInfo
	}

	role, userID, err := decodeClaims(token)
	if err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	creds := store.Credentials{
		Token:    token,
		Username: username,
		Role:     role,
		UserID:   userID,
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	if err := s.persist.Save(creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	return nil
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

// VerifyLogin authenticates against the backend and establishes the
// session. The call must return 200 with a non-empty token.
func (s *Store) VerifyLogin(ctx context.Context, email, password string) error {
	var resp authResponse
	status, err := s.client.Post(ctx, "/auth/login", nil, authRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if api.StatusCode(err) != 0 {
			return ErrLoginInfo
		}
		return err
	}
	if status != http.StatusOK || resp.Token == "" {
		return ErrLoginInfo
	}
	return s.Login(status, resp.Token, email)
}

// Register creates an account and then logs in with the same credentials.
// Registration does not authenticate server-side; the client chains the
// two calls.
func (s *Store) Register(ctx context.Context, data types.UserCreate) error {
	if _, err := s.client.Post(ctx, "/auth/register", nil, data, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.VerifyLogin(ctx, data.Email, data.Password)
}

// FetchProfile loads the current user's profile. The in-memory profile is
// replaced only after a successful response.
func (s *Store) FetchProfile(ctx context.Context) (types.Profile, error) {
	var profile types.Profile
	if _, err := s.client.Get(ctx, "/users/profile", nil, &profile); err != nil {
		return types.Profile{}, err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// UpdateProfile writes profile changes to the backend. A failed update
// leaves the in-memory profile untouched.
func (s *Store) UpdateProfile(ctx context.Context, updated types.Profile) (types.Profile, error) {
	var profile types.Profile
	if _, err := s.client.Put(ctx, "/users/profile", nil, updated, &profile); err != nil {
		return types.Profile{}, err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// Logout clears all in-memory and persisted identity state. Logging out
// twice is harmless.
func (s *Store) Logout() {
	s.mu.Lock()
	s.creds = store.Credentials{}
	s.profile = types.Profile{}
	s.mu.Unlock()

	if err := s.persist.Clear(); err != nil {
		logger.Warn("failed to clear credentials", zap.Error(err))
	}
}

// decodeClaims reads the role and userId claims from the token payload.
// The signature is deliberately not verified: the client uses the claims
// for UI gating only and the backend validates the token on every call.
func decodeClaims(token string) (role, userID string, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", "", err
	}
	if v, ok := claims["role"]; ok {
		role = fmt.Sprintf("%v", v)
	}
	if v, ok := claims["userId"]; ok {
		switch id := v.(type) {
		case float64:
			userID = fmt.Sprintf("%.0f", id)
		default:
			userID = fmt.Sprintf("%v", id)
		}
	}
	return role, userID, nil
}
