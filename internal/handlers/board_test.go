package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck-dev/linkdeck/internal/jwt"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

type fakeBoard struct {
	items []models.TrackingItem
	item  *models.TrackingItem
	err   error

	gotUserID    string
	gotProjectID string
	gotTracking  string
	gotPatch     models.TrackingPatch
}

func (f *fakeBoard) List(_ context.Context, userID, projectID string) ([]models.TrackingItem, error) {
	f.gotUserID, f.gotProjectID = userID, projectID
	return f.items, f.err
}

func (f *fakeBoard) Add(_ context.Context, userID, projectID string, platformID int64) (*models.TrackingItem, error) {
	f.gotUserID, f.gotProjectID = userID, projectID
	return f.item, f.err
}

func (f *fakeBoard) Update(_ context.Context, userID, trackingID string, patch models.TrackingPatch) (*models.TrackingItem, error) {
	f.gotUserID, f.gotTracking, f.gotPatch = userID, trackingID, patch
	return f.item, f.err
}

func (f *fakeBoard) Remove(_ context.Context, userID, trackingID string) error {
	f.gotUserID, f.gotTracking = userID, trackingID
	return f.err
}

func authed(req *http.Request, userID string) *http.Request {
	ctx := middlewares.WithUser(req.Context(), &jwt.Claims{UserID: userID, Email: userID + "@example.com"})
	return req.WithContext(ctx)
}

func TestBoardListHandler(t *testing.T) {
	t.Run("missing projectId", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/board", nil), "u1")
		NewBoardListHandler(&fakeBoard{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"projectId required"}`, rec.Body.String())
	})

	t.Run("foreign project", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/board?projectId=p2", nil), "u1")
		NewBoardListHandler(&fakeBoard{err: services.ErrNotFound})(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
	})

	t.Run("empty board is a JSON array", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := authed(httptest.NewRequest(http.MethodGet, "/api/board?projectId=p1", nil), "u1")
		svc := &fakeBoard{}
		NewBoardListHandler(svc)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
		assert.Equal(t, "u1", svc.gotUserID)
		assert.Equal(t, "p1", svc.gotProjectID)
	})

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/board?projectId=p1", nil)
		NewBoardListHandler(&fakeBoard{})(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBoardAddHandler(t *testing.T) {
	item := &models.TrackingItem{ID: "t1", ProjectID: "p1", PlatformID: 7, Status: models.StatusTodo}

	tests := []struct {
		name         string
		body         string
		svc          *fakeBoard
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "success",
			body:         `{"platformId":7,"projectId":"p1"}`,
			svc:          &fakeBoard{item: item},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing platformId",
			body:         `{"projectId":"p1"}`,
			svc:          &fakeBoard{},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "platformId and projectId required",
		},
		{
			name:         "duplicate",
			body:         `{"platformId":7,"projectId":"p1"}`,
			svc:          &fakeBoard{err: services.ErrDuplicateTracking},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Already added to board",
		},
		{
			name:         "foreign project",
			body:         `{"platformId":7,"projectId":"p9"}`,
			svc:          &fakeBoard{err: services.ErrNotFound},
			expectedCode: http.StatusNotFound,
			expectedErr:  "Project not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := authed(httptest.NewRequest(http.MethodPost, "/api/board", bytes.NewBufferString(tt.body)), "u1")
			NewBoardAddHandler(tt.svc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedErr != "" {
				var errResp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, tt.expectedErr, errResp.Error)
				return
			}

			var resp TrackingItemResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "t1", resp.Item.ID)
			assert.Equal(t, models.StatusTodo, resp.Item.Status)
		})
	}
}

func patchRequest(t *testing.T, id, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/board/"+id, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return authed(req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx)), "u1")
}

func TestBoardUpdateHandler(t *testing.T) {
	live := models.StatusLive
	item := &models.TrackingItem{ID: "t1", ProjectID: "p1", PlatformID: 7, Status: live}

	t.Run("status change", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc := &fakeBoard{item: item}
		NewBoardUpdateHandler(svc)(rec, patchRequest(t, "t1", `{"status":"live"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.gotPatch.Status)
		assert.Equal(t, live, *svc.gotPatch.Status)
		assert.Equal(t, "t1", svc.gotTracking)
	})

	t.Run("invalid status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewBoardUpdateHandler(&fakeBoard{})(rec, patchRequest(t, "t1", `{"status":"done"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid status"}`, rec.Body.String())
	})

	t.Run("empty patch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewBoardUpdateHandler(&fakeBoard{})(rec, patchRequest(t, "t1", `{}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Nothing to update"}`, rec.Body.String())
	})

	t.Run("foreign item", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewBoardUpdateHandler(&fakeBoard{err: services.ErrNotFound})(rec, patchRequest(t, "t9", `{"notes":"hi"}`))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	})
}

func TestBoardRemoveHandler(t *testing.T) {
	deleteRequest := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodDelete, "/api/board/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return authed(req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx)), "u1")
	}

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc := &fakeBoard{}
		NewBoardRemoveHandler(svc)(rec, deleteRequest("t1"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Equal(t, "t1", svc.gotTracking)
	})

	t.Run("foreign item", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewBoardRemoveHandler(&fakeBoard{err: services.ErrNotFound})(rec, deleteRequest("t9"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
