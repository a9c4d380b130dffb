package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestUploadImages(t *testing.T) {
	var gotItemID string
	var gotNames []string
	r := chi.NewRouter()
	r.Post("/images/add", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotItemID = req.FormValue("itemId")
		for _, header := range req.MultipartForm.File["files"] {
			gotNames = append(gotNames, header.Filename)
		}
		w.WriteHeader(http.StatusOK)
	})
	s := NewImageService(newTestAPI(t, r))

	uploads := []Upload{
		{Name: "front.jpg", Contents: strings.NewReader("aa")},
		{Name: "back.jpg", Contents: strings.NewReader("bb")},
	}
	if err := s.UploadImages(context.Background(), "42", uploads); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if gotItemID != "42" {
		t.Errorf("itemId = %q", gotItemID)
	}
	if len(gotNames) != 2 || gotNames[0] != "front.jpg" || gotNames[1] != "back.jpg" {
		t.Errorf("files = %v", gotNames)
	}
}

func TestDeleteImage(t *testing.T) {
	var gotQuery url.Values
	r := chi.NewRouter()
	r.Delete("/images/delete", func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.Query()
		w.WriteHeader(http.StatusOK)
	})
	s := NewImageService(newTestAPI(t, r))

	if err := s.DeleteImage(context.Background(), "42", "https://cdn.example.com/a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotQuery.Get("itemId") != "42" || gotQuery.Get("imageUrl") != "https://cdn.example.com/a.jpg" {
		t.Fatalf("query = %v", gotQuery)
	}
}
