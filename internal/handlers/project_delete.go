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

// ProjectDeleter defines the interface the project delete handler needs.
type ProjectDeleter interface {
	Delete(ctx context.Context, userID, projectID string) error
}

// NewProjectDeleteHandler returns an HTTP handler deleting a project.
// @Summary Delete a project and its board
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} handlers.SuccessResponse
// @Failure 404 {object} handlers.ErrorResponse "Project not found"
// @Security SessionCookie
// @Router /api/projects/{id} [delete]
func NewProjectDeleteHandler(svc ProjectDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		projectID := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), claims.UserID, projectID); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Project not found")
				return
			}
			logger.Log.Errorw("failed to delete project", "project_id", projectID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete project")
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
