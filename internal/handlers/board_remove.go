package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// BoardRemover defines the interface the board remove handler needs.
type BoardRemover interface {
	Remove(ctx context.Context, userID, trackingID string) error
}

// NewBoardRemoveHandler returns an HTTP handler deleting a tracking item.
// @Summary Remove a platform from a project board
// @Tags board
// @Produce json
// @Param id path string true "Tracking item ID"
// @Success 200 {object} handlers.SuccessResponse
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Security SessionCookie
// @Router /api/board/{id} [delete]
func NewBoardRemoveHandler(svc BoardRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		trackingID := chi.URLParam(r, "id")
		if err := svc.Remove(r.Context(), claims.UserID, trackingID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			logger.Log.Errorw("failed to remove board item", "tracking_id", trackingID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to remove")
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
