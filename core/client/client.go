package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"melodex/model"
)

// APIError is a failure reported by the song catalog service.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client is a typed HTTP client for the song catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a catalog client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope mirrors the service's response shape on the wire.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Error   *APIError       `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload from %s: %w", path, err)
		}
	}
	return nil
}

// List fetches all songs, most recently created first.
func (c *Client) List(ctx context.Context) ([]*model.Song, error) {
	var songs []*model.Song
	if err := c.do(ctx, http.MethodGet, "/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// FilterByGenre fetches songs matching the given genre.
func (c *Client) FilterByGenre(ctx context.Context, genre string) ([]*model.Song, error) {
	var songs []*model.Song
	path := "/songs/filter?genre=" + url.QueryEscape(genre)
	if err := c.do(ctx, http.MethodGet, path, nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// Create submits a new song and returns the stored record.
func (c *Client) Create(ctx context.Context, input model.SongInput) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPost, "/songs", input, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Update replaces a song's fields and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, input model.SongInput) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPut, "/songs/"+id, input, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Delete removes a song and returns the deleted record.
func (c *Client) Delete(ctx context.Context, id string) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodDelete, "/songs/"+id, nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// Statistics fetches the current catalog statistics.
func (c *Client) Statistics(ctx context.Context) (*model.Statistics, error) {
	var statistics model.Statistics
	if err := c.do(ctx, http.MethodGet, "/statistics", nil, &statistics); err != nil {
		return nil, err
	}
	return &statistics, nil
}
