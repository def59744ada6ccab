package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
)

// ErrNotFound is returned when the data store reports 404 for an item.
var ErrNotFound = errors.New("item not found")

// StatusError is a non-2xx response from the data store.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("datastore: unexpected status %d: %s", e.Code, e.Body)
}

// Client talks to the headless CMS items/files API. All business data of
// the application lives behind this client; there is no local database.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New creates a Client for the data store at baseURL authenticating with
// the given static token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Query describes an item listing: a nested filter tree (serialized as the
// JSON "filter" parameter), selected fields, sort order and limit. Zero
// values are omitted from the request.
type Query struct {
	Filter map[string]any
	Fields []string
	Sort   []string
	Limit  int
}

// Eq builds an equality filter leaf.
func Eq(v any) map[string]any { return map[string]any{"_eq": v} }

// In builds a membership filter leaf.
func In(vs ...any) map[string]any { return map[string]any{"_in": vs} }

func (q Query) values() (url.Values, error) {
	v := url.Values{}
	if len(q.Filter) > 0 {
		raw, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		v.Set("filter", string(raw))
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Sort) > 0 {
		v.Set("sort", strings.Join(q.Sort, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v, nil
}

// Items lists records of a collection matching the query into out,
// which must be a pointer to a slice.
func (c *Client) Items(ctx context.Context, collection string, q Query, out any) error {
	values, err := q.values()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, "/items/"+collection, values, nil, out)
}

// Item reads a single record by primary key.
func (c *Client) Item(ctx context.Context, collection, id string, out any) error {
	return c.do(ctx, http.MethodGet, "/items/"+collection+"/"+url.PathEscape(id), nil, nil, out)
}

// CreateItem inserts a record and decodes the created record into out
// when out is non-nil.
func (c *Client) CreateItem(ctx context.Context, collection string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPost, "/items/"+collection, payload, out)
}

// UpdateItem applies a partial update to a record and decodes the result
// into out when out is non-nil.
func (c *Client) UpdateItem(ctx context.Context, collection, id string, payload, out any) error {
	return c.doJSON(ctx, http.MethodPatch, "/items/"+collection+"/"+url.PathEscape(id), payload, out)
}

// DeleteItem removes a record by primary key.
func (c *Client) DeleteItem(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, "/items/"+collection+"/"+url.PathEscape(id), nil, nil, nil)
}

// UploadFile stores a file in the data store's file storage and returns
// its file id.
func (c *Client) UploadFile(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
	header["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var file struct {
		ID string `json:"id"`
	}
	if err := c.send(req, &file); err != nil {
		return "", err
	}
	return file.ID, nil
}

// FileURL returns the public asset URL for a stored file id.
func (c *Client) FileURL(id string) string {
	return c.baseURL + "/assets/" + id
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes the request and unwraps the {"data": ...} envelope into out.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Log.Errorw("datastore request failed",
			"method", req.Method, "url", req.URL.String(), "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}
