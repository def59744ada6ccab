package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// BoardAdder defines the interface the board add handler needs.
type BoardAdder interface {
	Add(ctx context.Context, userID, projectID string, platformID int64) (*models.TrackingItem, error)
}

// BoardAddRequest represents the JSON body for adding a platform to a board
// swagger:model BoardAddRequest
type BoardAddRequest struct {
	// Platform to add
	// required: true
	PlatformID int64 `json:"platformId" validate:"required"`

	// Board to add it to
	// required: true
	ProjectID string `json:"projectId" validate:"required"`
}

// TrackingItemResponse wraps a single tracking item
// swagger:model TrackingItemResponse
type TrackingItemResponse struct {
	Item models.TrackingItem `json:"item"`
}

// NewBoardAddHandler returns an HTTP handler for adding a platform to a board.
// @Summary Add a platform to a project board
// @Tags board
// @Accept json
// @Produce json
// @Param boardAddRequest body handlers.BoardAddRequest true "Platform and project"
// @Success 200 {object} handlers.TrackingItemResponse "Created tracking item"
// @Failure 400 {object} handlers.ErrorResponse "Missing fields or duplicate platform"
// @Failure 404 {object} handlers.ErrorResponse "Project not found"
// @Security SessionCookie
// @Router /api/board [post]
func NewBoardAddHandler(svc BoardAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req BoardAddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "platformId and projectId required")
			return
		}

		item, err := svc.Add(r.Context(), claims.UserID, req.ProjectID, req.PlatformID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrDuplicateTracking):
				writeError(w, http.StatusBadRequest, "Already added to board")
			case errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusNotFound, "Project not found")
			default:
				logger.Log.Errorw("failed to add to board", "project_id", req.ProjectID, "platform_id", req.PlatformID, "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to add to board")
			}
			return
		}

		writeJSON(w, http.StatusOK, TrackingItemResponse{Item: *item})
	}
}
