package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fant-market/client/internal/api"
)

// ImageService uploads and deletes item images. Storage itself lives
// behind the backend; the client only moves bytes.
type ImageService struct {
	api *api.Client
}

func NewImageService(client *api.Client) *ImageService {
	return &ImageService{api: client}
}

// Upload is one named image file for Upload.
type Upload struct {
	Name     string
	Contents io.Reader
}

// UploadImages sends image files for an item as multipart form data.
func (s *ImageService) UploadImages(ctx context.Context, itemID string, uploads []Upload) error {
	files := make([]api.File, 0, len(uploads))
	for _, upload := range uploads {
		files = append(files, api.File{Field: "files", Name: upload.Name, Contents: upload.Contents})
	}
	fields := map[string]string{"itemId": itemID}

	status, err := s.api.PostMultipart(ctx, "/images/add", fields, files, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected response status: %d", status)
	}
	return nil
}

// DeleteImage removes a single image from an item.
func (s *ImageService) DeleteImage(ctx context.Context, itemID, imageURL string) error {
	query := url.Values{}
	query.Set("itemId", itemID)
	query.Set("imageUrl", imageURL)

	status, err := s.api.Delete(ctx, "/images/delete", query)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected response status: %d", status)
	}
	return nil
}
