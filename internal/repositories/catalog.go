package repositories

import (
	"context"

	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

const (
	collectionPlatforms  = "platforms"
	collectionCategories = "categories"
)

// CatalogRepository reads the directory reference data: platforms and
// their categories. Both collections are read-only for the application.
type CatalogRepository struct {
	ds *datastore.Client
}

func NewCatalogRepository(ds *datastore.Client) *CatalogRepository {
	return &CatalogRepository{ds: ds}
}

// Platforms returns the full platform catalog sorted by name.
func (r *CatalogRepository) Platforms(ctx context.Context) ([]models.Platform, error) {
	var platforms []models.Platform
	err := r.ds.Items(ctx, collectionPlatforms, datastore.Query{
		Sort: []string{"name"},
	}, &platforms)
	if err != nil {
		return nil, err
	}
	return platforms, nil
}

// Categories returns all categories sorted by name.
func (r *CatalogRepository) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.ds.Items(ctx, collectionCategories, datastore.Query{
		Fields: []string{"id", "name", "slug"},
		Sort:   []string{"name"},
	}, &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
