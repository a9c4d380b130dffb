package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fant-market/client/internal/api"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// newTestAPI spins up a fake backend and returns a client pointed at it.
func newTestAPI(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, staticToken("test-token"))
}

// newTestAPIUnreachable returns a client pointed at a port nothing listens
// on, for exercising transport-level failures.
func newTestAPIUnreachable() *api.Client {
	return api.NewClient("http://127.0.0.1:1", 500*time.Millisecond, staticToken(""))
}
