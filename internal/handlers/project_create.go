package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// ProjectCreator defines the interface the project create handler needs.
type ProjectCreator interface {
	Create(ctx context.Context, userID, name, websiteURL string) (*models.Project, error)
}

// ProjectRequest represents the JSON body for creating or renaming a project
// swagger:model ProjectRequest
type ProjectRequest struct {
	// Project name
	// required: true
	Name string `json:"name" validate:"required"`

	// Site the backlinks point at
	WebsiteURL string `json:"website_url" validate:"omitempty,url"`
}

// ProjectResponse wraps a single project
// swagger:model ProjectResponse
type ProjectResponse struct {
	Project models.Project `json:"project"`
}

// NewProjectCreateHandler returns an HTTP handler creating a project.
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectRequest body handlers.ProjectRequest true "New project"
// @Success 201 {object} handlers.ProjectResponse "Created project"
// @Failure 400 {object} handlers.ErrorResponse "Missing name or invalid URL"
// @Security SessionCookie
// @Router /api/projects [post]
func NewProjectCreateHandler(svc ProjectCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req ProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "Project name required")
			return
		}

		project, err := svc.Create(r.Context(), claims.UserID, req.Name, req.WebsiteURL)
		if err != nil {
			logger.Log.Errorw("failed to create project", "user_id", claims.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to create project")
			return
		}

		writeJSON(w, http.StatusCreated, ProjectResponse{Project: *project})
	}
}
