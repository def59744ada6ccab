package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// BoardUpdater defines the interface the board update handler needs.
type BoardUpdater interface {
	Update(ctx context.Context, userID, trackingID string, patch models.TrackingPatch) (*models.TrackingItem, error)
}

// NewBoardUpdateHandler returns an HTTP handler patching a tracking item.
// @Summary Update a tracking item's status, notes or live backlink URL
// @Tags board
// @Accept json
// @Produce json
// @Param id path string true "Tracking item ID"
// @Param patch body models.TrackingPatch true "Fields to change"
// @Success 200 {object} handlers.TrackingItemResponse "Updated tracking item"
// @Failure 400 {object} handlers.ErrorResponse "Empty patch or invalid status"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Security SessionCookie
// @Router /api/board/{id} [patch]
func NewBoardUpdateHandler(svc BoardUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var patch models.TrackingPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if patch.Status == nil && patch.Notes == nil && patch.LiveBacklinkURL == nil {
			writeError(w, http.StatusBadRequest, "Nothing to update")
			return
		}
		if patch.Status != nil && !patch.Status.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}

		trackingID := chi.URLParam(r, "id")
		item, err := svc.Update(r.Context(), claims.UserID, trackingID, patch)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			logger.Log.Errorw("failed to update board item", "tracking_id", trackingID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to update")
			return
		}

		writeJSON(w, http.StatusOK, TrackingItemResponse{Item: *item})
	}
}
