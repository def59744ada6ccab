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

// ProjectUpdater defines the interface the project update handler needs.
type ProjectUpdater interface {
	Update(ctx context.Context, userID, projectID string, patch map[string]any) (*models.Project, error)
}

// ProjectPatchRequest represents the JSON body for a partial project update
// swagger:model ProjectPatchRequest
type ProjectPatchRequest struct {
	Name       *string `json:"name,omitempty"`
	WebsiteURL *string `json:"website_url,omitempty" validate:"omitempty,url"`
}

// NewProjectUpdateHandler returns an HTTP handler renaming or repointing a project.
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param patch body handlers.ProjectPatchRequest true "Fields to change"
// @Success 200 {object} handlers.ProjectResponse "Updated project"
// @Failure 400 {object} handlers.ErrorResponse "Empty patch"
// @Failure 404 {object} handlers.ErrorResponse "Project not found"
// @Security SessionCookie
// @Router /api/projects/{id} [patch]
func NewProjectUpdateHandler(svc ProjectUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req ProjectPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid website URL")
			return
		}

		patch := map[string]any{}
		if req.Name != nil {
			patch["name"] = *req.Name
		}
		if req.WebsiteURL != nil {
			patch["website_url"] = *req.WebsiteURL
		}
		if len(patch) == 0 {
			writeError(w, http.StatusBadRequest, "Nothing to update")
			return
		}

		projectID := chi.URLParam(r, "id")
		project, err := svc.Update(r.Context(), claims.UserID, projectID, patch)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Project not found")
				return
			}
			logger.Log.Errorw("failed to update project", "project_id", projectID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to update project")
			return
		}

		writeJSON(w, http.StatusOK, ProjectResponse{Project: *project})
	}
}
