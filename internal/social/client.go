package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pixlshare/pixl-viewer/internal/model"
)

const (
	// ViewerHeader carries the acting account id on every API request
	ViewerHeader = "X-Viewer"

	requestTimeout = 8 * time.Second
)

// HTTPClient is the JSON-over-HTTP implementation of Client
type HTTPClient struct {
	baseURL  string
	viewerID string
	client   *http.Client
}

// NewHTTPClient creates a client for the backend at baseURL acting as the
// given viewer account
func NewHTTPClient(baseURL, viewerID string) *HTTPClient {
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		viewerID: viewerID,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// ListItems fetches the feed as an ordered list with stable identity
func (c *HTTPClient) ListItems(ctx context.Context) ([]model.ArtItem, error) {
	var items []model.ArtItem
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchReactionState fetches per-emoji totals and the viewer's own set
func (c *HTTPClient) FetchReactionState(ctx context.Context, itemID string) (model.ReactionState, error) {
	var state model.ReactionState
	path := fmt.Sprintf("/api/items/%s/reactions", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &state); err != nil {
		return model.ReactionState{}, err
	}
	return state, nil
}

// ToggleReaction adds or removes one of the viewer's reactions
func (c *HTTPClient) ToggleReaction(ctx context.Context, itemID, emoji string, add bool) error {
	path := fmt.Sprintf("/api/items/%s/reactions", itemID)
	body := map[string]any{"emoji": emoji, "add": add}
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// FetchCommentCount fetches the number of comments on an item
func (c *HTTPClient) FetchCommentCount(ctx context.Context, itemID string) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	path := fmt.Sprintf("/api/items/%s/comments/count", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// FetchViewCount fetches the number of registered views of an item
func (c *HTTPClient) FetchViewCount(ctx context.Context, itemID string) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	path := fmt.Sprintf("/api/items/%s/views/count", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// RegisterView records one view of an item
func (c *HTTPClient) RegisterView(ctx context.Context, itemID string) error {
	path := fmt.Sprintf("/api/items/%s/views", itemID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do runs one JSON request against the backend and decodes the response
// into out when out is non-nil
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.viewerID != "" {
		req.Header.Set(ViewerHeader, c.viewerID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s returned status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
