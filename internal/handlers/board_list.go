package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// BoardLister defines the interface the board list handler needs.
type BoardLister interface {
	List(ctx context.Context, userID, projectID string) ([]models.TrackingItem, error)
}

// BoardListResponse wraps the tracking items of one project board
// swagger:model BoardListResponse
type BoardListResponse struct {
	Items []models.TrackingItem `json:"items"`
}

// NewBoardListHandler returns an HTTP handler listing a project's board.
// @Summary List the tracking items of a project
// @Tags board
// @Produce json
// @Param projectId query string true "Project ID"
// @Success 200 {object} handlers.BoardListResponse "Board items with platforms attached"
// @Failure 400 {object} handlers.ErrorResponse "Missing projectId"
// @Failure 404 {object} handlers.ErrorResponse "Project not found"
// @Security SessionCookie
// @Router /api/board [get]
func NewBoardListHandler(svc BoardLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		projectID := r.URL.Query().Get("projectId")
		if projectID == "" {
			writeError(w, http.StatusBadRequest, "projectId required")
			return
		}

		items, err := svc.List(r.Context(), claims.UserID, projectID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Project not found")
				return
			}
			logger.Log.Errorw("failed to list board", "project_id", projectID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to load board")
			return
		}

		if items == nil {
			items = []models.TrackingItem{}
		}
		writeJSON(w, http.StatusOK, BoardListResponse{Items: items})
	}
}
