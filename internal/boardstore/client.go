package boardstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// Client implements API against the board HTTP endpoints. The cookie
// jar holds the session cookie between calls, so one SignIn is enough
// for the lifetime of the client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}, nil
}

// SignIn authenticates with email and password and stores the session
// cookie in the jar.
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/sign-in", body, nil)
}

// List fetches a project's board.
func (c *Client) List(ctx context.Context, projectID string) ([]models.TrackingItem, error) {
	var resp struct {
		Items []models.TrackingItem `json:"items"`
	}
	path := "/api/board?projectId=" + url.QueryEscape(projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Add puts a platform on a project's board.
func (c *Client) Add(ctx context.Context, projectID string, platformID int64) (*models.TrackingItem, error) {
	body := map[string]any{"platformId": platformID, "projectId": projectID}
	var resp struct {
		Item models.TrackingItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/board", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Update patches a tracking item.
func (c *Client) Update(ctx context.Context, trackingID string, patch models.TrackingPatch) (*models.TrackingItem, error) {
	var resp struct {
		Item models.TrackingItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/board/"+url.PathEscape(trackingID), patch, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

// Remove deletes a tracking item.
func (c *Client) Remove(ctx context.Context, trackingID string) error {
	return c.do(ctx, http.MethodDelete, "/api/board/"+url.PathEscape(trackingID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
