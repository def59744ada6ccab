package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// PlatformLister defines the interface the platform directory handler needs.
type PlatformLister interface {
	Platforms(ctx context.Context, filter services.PlatformFilter) ([]models.Platform, error)
}

// PlatformsResponse wraps the directory listing
// swagger:model PlatformsResponse
type PlatformsResponse struct {
	Platforms []models.Platform `json:"platforms"`
}

// NewPlatformsHandler returns an HTTP handler for the platform directory.
// @Summary List backlink platforms
// @Description Browse the directory, optionally filtered by search text, cost type and categories
// @Tags catalog
// @Produce json
// @Param search query string false "Substring match on name or description"
// @Param cost query string false "Cost type (free, paid or freemium)"
// @Param category query string false "Comma-separated category IDs"
// @Success 200 {object} handlers.PlatformsResponse "Matching platforms"
// @Router /api/platforms [get]
func NewPlatformsHandler(svc PlatformLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := services.PlatformFilter{
			Search: q.Get("search"),
			Cost:   models.CostType(q.Get("cost")),
		}
		for _, raw := range strings.Split(q.Get("category"), ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				continue
			}
			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}

		platforms, err := svc.Platforms(r.Context(), filter)
		if err != nil {
			logger.Log.Errorw("failed to list platforms", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to load platforms")
			return
		}

		if platforms == nil {
			platforms = []models.Platform{}
		}
		writeJSON(w, http.StatusOK, PlatformsResponse{Platforms: platforms})
	}
}
