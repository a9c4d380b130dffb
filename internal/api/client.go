// Package api provides the single configured HTTP client the services
// share. Every request carries the bearer token from the session, mirrors
// the backend's JSON conventions, and reports non-2xx responses as *Error
// values the services can inspect by status.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fant-market/client/internal/logger"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer credential attached to outgoing
// requests. An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the configured request client shared by all services.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient constructs a Client for the given API root.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Get issues a GET request and decodes the JSON response into out when
// out is non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) (int, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) (int, error) {
	return c.doJSON(ctx, http.MethodPost, path, query, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body, out any) (int, error) {
	return c.doJSON(ctx, http.MethodPut, path, query, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (int, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

// File is one part of a multipart upload.
type File struct {
	Field    string
	Name     string
	Contents io.Reader
}

// PostMultipart issues a multipart/form-data POST with the given fields
// and file parts.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) (int, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return 0, err
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return 0, err
		}
		if _, err := io.Copy(part, file.Contents); err != nil {
			return 0, err
		}
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.doWith(ctx, method, path, query, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) (int, error) {
	return c.doWith(ctx, method, path, query, body, "", out)
}

func (c *Client) doWith(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) (int, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) (int, error) {
	logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// errorMessage pulls a human-readable message out of an error response
// body. The backend answers either {"error": "..."}, {"message": "..."}
// or plain text.
func errorMessage(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	const maxLen = 200
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}
