package store

import "errors"

// ErrNotFound indicates no persisted credentials exist.
var ErrNotFound = errors.New("not found")
