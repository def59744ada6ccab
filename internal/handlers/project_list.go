package handlers

import (
	"context"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/middlewares"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// ProjectLister defines the interface the project list handler needs.
type ProjectLister interface {
	List(ctx context.Context, userID string) ([]models.Project, error)
}

// ProjectsResponse wraps the acting user's projects
// swagger:model ProjectsResponse
type ProjectsResponse struct {
	Projects []models.Project `json:"projects"`
}

// NewProjectListHandler returns an HTTP handler listing the user's projects.
// @Summary List the authenticated user's projects
// @Tags projects
// @Produce json
// @Success 200 {object} handlers.ProjectsResponse "Owned projects"
// @Security SessionCookie
// @Router /api/projects [get]
func NewProjectListHandler(svc ProjectLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		projects, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list projects", "user_id", claims.UserID, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to load projects")
			return
		}

		if projects == nil {
			projects = []models.Project{}
		}
		writeJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
	}
}
