package services

import (
	"context"
	"strings"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// CatalogSource reads the platform/category reference data from the data
// store.
type CatalogSource interface {
	Platforms(ctx context.Context) ([]models.Platform, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// CatalogCache caches the raw catalog. Misses and cache errors are both
// soft: the service falls through to the source.
type CatalogCache interface {
	GetPlatforms(ctx context.Context) ([]models.Platform, bool, error)
	SetPlatforms(ctx context.Context, platforms []models.Platform) error
	GetCategories(ctx context.Context) ([]models.Category, bool, error)
	SetCategories(ctx context.Context, categories []models.Category) error
}

// PlatformFilter narrows the directory listing. Zero values match all.
type PlatformFilter struct {
	Search      string
	Cost        models.CostType
	CategoryIDs []int64
}

// CatalogService serves the read-heavy platform directory through a
// read-through cache, applying filters in memory over the cached set.
type CatalogService struct {
	source CatalogSource
	cache  CatalogCache
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(source CatalogSource, cache CatalogCache) *CatalogService {
	return &CatalogService{source: source, cache: cache}
}

// Platforms returns the directory entries matching the filter.
func (svc *CatalogService) Platforms(ctx context.Context, filter PlatformFilter) ([]models.Platform, error) {
	platforms, hit, err := svc.cache.GetPlatforms(ctx)
	if err != nil {
		logger.Log.Warnw("platform cache read failed", "err", err)
	}
	if !hit {
		platforms, err = svc.source.Platforms(ctx)
		if err != nil {
			logger.Log.Errorw("failed to fetch platforms", "err", err)
			return nil, err
		}
		if err := svc.cache.SetPlatforms(ctx, platforms); err != nil {
			logger.Log.Warnw("platform cache write failed", "err", err)
		}
	}

	filtered := make([]models.Platform, 0, len(platforms))
	for _, p := range platforms {
		if matchesFilter(p, filter) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Categories returns all categories.
func (svc *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, hit, err := svc.cache.GetCategories(ctx)
	if err != nil {
		logger.Log.Warnw("category cache read failed", "err", err)
	}
	if hit {
		return categories, nil
	}

	categories, err = svc.source.Categories(ctx)
	if err != nil {
		logger.Log.Errorw("failed to fetch categories", "err", err)
		return nil, err
	}
	if err := svc.cache.SetCategories(ctx, categories); err != nil {
		logger.Log.Warnw("category cache write failed", "err", err)
	}
	return categories, nil
}

func matchesFilter(p models.Platform, f PlatformFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Cost != "" && p.CostType != f.Cost {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		member := make(map[int64]bool, len(p.Categories))
		for _, id := range p.Categories {
			member[id] = true
		}
		found := false
		for _, id := range f.CategoryIDs {
			if member[id] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
