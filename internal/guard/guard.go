// Package guard gates commands on the client-side session state, the way
// the web client's router guards gate navigation. The checks read the
// role decoded from the unverified token payload, so they are a UX
// convenience only; the backend authorizes every request regardless.
package guard

import "errors"

var (
	// ErrLoginRequired means the action needs an authenticated session.
	ErrLoginRequired = errors.New("login required: run `fant login` first")

	// ErrAdminOnly means the session's role does not grant admin access.
	ErrAdminOnly = errors.New("admin access required")
)

// Session is the slice of session state the guards read.
type Session interface {
	LoggedIn() bool
	IsAdmin() bool
}

// RequireAuth fails when no session token is present.
func RequireAuth(s Session) error {
	if !s.LoggedIn() {
		return ErrLoginRequired
	}
	return nil
}

// RequireAdmin fails when the session is missing or not an admin.
func RequireAdmin(s Session) error {
	if err := RequireAuth(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
