package handlers

import (
	"context"
	"net/http"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// CategoryLister defines the interface the categories handler needs.
type CategoryLister interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// CategoriesResponse wraps the category listing
// swagger:model CategoriesResponse
type CategoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

// NewCategoriesHandler returns an HTTP handler for the category list.
// @Summary List platform categories
// @Tags catalog
// @Produce json
// @Success 200 {object} handlers.CategoriesResponse "All categories"
// @Router /api/categories [get]
func NewCategoriesHandler(svc CategoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to list categories", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to load categories")
			return
		}

		if categories == nil {
			categories = []models.Category{}
		}
		writeJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
	}
}
