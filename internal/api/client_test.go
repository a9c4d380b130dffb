package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, staticToken(token))
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/users/id", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`7`))
	})

	c := newTestClient(t, r, "abc123")
	var id int64
	status, err := c.Get(context.Background(), "/users/id", nil, &id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}
	if id != 7 {
		t.Fatalf("decoded %d, want 7", id)
	}
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/items/all", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, r, "")
	if _, err := c.Get(context.Background(), "/items/all", nil, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	r := chi.NewRouter()
	r.Get("/items/search", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		w.Write([]byte(`{}`))
	})

	c := newTestClient(t, r, "tok")
	query := url.Values{}
	query.Set("searchTerm", "ski boots")
	query.Set("page", "0")
	if _, err := c.Get(context.Background(), "/items/search", query, nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotQuery.Get("searchTerm") != "ski boots" || gotQuery.Get("page") != "0" {
		t.Fatalf("query = %v", gotQuery)
	}
}

func TestClientErrorMapping(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	})
	r.Get("/plain", func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "something broke", http.StatusInternalServerError)
	})

	c := newTestClient(t, r, "")

	status, err := c.Post(context.Background(), "/auth/login", nil, map[string]string{"email": "a"}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d", status)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *Error", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "bad credentials" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatal("IsStatus(401) = false")
	}
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("StatusCode = %d", StatusCode(err))
	}

	_, err = c.Get(context.Background(), "/plain", nil, nil)
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *Error", err)
	}
	if !strings.Contains(apiErr.Message, "something broke") {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestClientStatusCodeZeroForTransportErrors(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond, staticToken(""))
	_, err := c.Get(context.Background(), "/anything", nil, nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if StatusCode(err) != 0 {
		t.Fatalf("StatusCode = %d, want 0", StatusCode(err))
	}
}

func TestClientMultipart(t *testing.T) {
	var gotItemID, gotFile, gotContents string
	r := chi.NewRouter()
	r.Post("/images/add", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotItemID = req.FormValue("itemId")
		file, header, err := req.FormFile("files")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFile = header.Filename
		buf := make([]byte, header.Size)
		n, _ := file.Read(buf)
		gotContents = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	})

	c := newTestClient(t, r, "tok")
	files := []File{{Field: "files", Name: "photo.jpg", Contents: strings.NewReader("jpegdata")}}
	status, err := c.PostMultipart(context.Background(), "/images/add", map[string]string{"itemId": "42"}, files, nil)
	if err != nil {
		t.Fatalf("post multipart: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotItemID != "42" || gotFile != "photo.jpg" || gotContents != "jpegdata" {
		t.Fatalf("server saw itemId=%q file=%q contents=%q", gotItemID, gotFile, gotContents)
	}
}

func TestErrorMessageFormats(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error":"nope"}`, "nope"},
		{`{"message":"denied"}`, "denied"},
		{`plain text`, "plain text"},
		{``, ""},
	}
	for _, tc := range cases {
		if got := errorMessage([]byte(tc.body)); got != tc.want {
			t.Errorf("errorMessage(%q) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
