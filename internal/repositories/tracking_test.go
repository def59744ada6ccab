package repositories

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCMS serves canned item responses keyed by collection path and
// records the filters it was queried with.
type fakeCMS struct {
	responses map[string]string
	filters   []map[string]any
}

func (f *fakeCMS) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("filter"); raw != "" {
			var filter map[string]any
			json.Unmarshal([]byte(raw), &filter)
			f.filters = append(f.filters, filter)
		}
		if body, ok := f.responses[r.Method+" "+r.URL.Path]; ok {
			io.WriteString(w, body)
			return
		}
		io.WriteString(w, `{"data":[]}`)
	}
}

func TestListByProject_DenormalizesPlatforms(t *testing.T) {
	cms := &fakeCMS{responses: map[string]string{
		"GET /items/project_tracking": `{"data":[
			{"id":"t1","project_id":"p1","platform_id":5,"status":"todo"},
			{"id":"t2","project_id":"p1","platform_id":7,"status":"live"}
		]}`,
		"GET /items/platforms": `{"data":[
			{"id":5,"name":"Product Hunt","slug":"product-hunt","cost_type":"free"},
			{"id":7,"name":"BetaList","slug":"betalist","cost_type":"paid"}
		]}`,
	}}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	repo := NewTrackingRepository(datastore.New(srv.URL, "t"))

	items, err := repo.ListByProject(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Platform)
	assert.Equal(t, "Product Hunt", items[0].Platform.Name)
	require.NotNil(t, items[1].Platform)
	assert.Equal(t, "BetaList", items[1].Platform.Name)
}

func TestGetOwned_JoinedOwnerFilter(t *testing.T) {
	cms := &fakeCMS{responses: map[string]string{
		"GET /items/project_tracking": `{"data":[{"id":"t1","project_id":"p1","platform_id":5,"status":"todo"}]}`,
	}}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	repo := NewTrackingRepository(datastore.New(srv.URL, "t"))

	item, err := repo.GetOwned(context.Background(), "t1", "u1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "t1", item.ID)

	// The owner must be checked through the parent project in the same query.
	require.Len(t, cms.filters, 1)
	assert.Equal(t, map[string]any{
		"id":         map[string]any{"_eq": "t1"},
		"project_id": map[string]any{"user_id": map[string]any{"_eq": "u1"}},
	}, cms.filters[0])
}

func TestGetOwned_AbsentOrForeign(t *testing.T) {
	cms := &fakeCMS{responses: map[string]string{}}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	repo := NewTrackingRepository(datastore.New(srv.URL, "t"))

	item, err := repo.GetOwned(context.Background(), "t1", "someone-else")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestExists(t *testing.T) {
	cms := &fakeCMS{responses: map[string]string{
		"GET /items/project_tracking": `{"data":[{"id":"t1"}]}`,
	}}
	srv := httptest.NewServer(cms.handler())
	defer srv.Close()

	repo := NewTrackingRepository(datastore.New(srv.URL, "t"))

	exists, err := repo.Exists(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.True(t, exists)

	require.Len(t, cms.filters, 1)
	assert.Equal(t, map[string]any{
		"project_id":  map[string]any{"_eq": "p1"},
		"platform_id": map[string]any{"_eq": float64(5)},
	}, cms.filters[0])
}

func TestCreate_DefaultsToTodo(t *testing.T) {
	var created map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/items/project_tracking":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			io.WriteString(w, `{"data":{"id":"t9","project_id":"p1","platform_id":5,"status":"todo"}}`)
		case r.URL.Path == "/items/platforms":
			io.WriteString(w, `{"data":[{"id":5,"name":"Product Hunt","slug":"product-hunt","cost_type":"free"}]}`)
		default:
			io.WriteString(w, `{"data":[]}`)
		}
	}))
	defer srv.Close()

	repo := NewTrackingRepository(datastore.New(srv.URL, "t"))

	item, err := repo.Create(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, "todo", created["status"])
	assert.Equal(t, models.StatusTodo, item.Status)
	require.NotNil(t, item.Platform)
	assert.Equal(t, "Product Hunt", item.Platform.Name)
}
