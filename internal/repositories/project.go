package repositories

import (
	"context"

	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

const collectionProjects = "projects"

// NewProject is the payload for creating a project record.
type NewProject struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	WebsiteURL string `json:"website_url"`
}

// ProjectRepository reads and writes the "projects" collection.
type ProjectRepository struct {
	ds *datastore.Client
}

func NewProjectRepository(ds *datastore.Client) *ProjectRepository {
	return &ProjectRepository{ds: ds}
}

// ListByOwner returns all projects owned by the user.
func (r *ProjectRepository) ListByOwner(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.ds.Items(ctx, collectionProjects, datastore.Query{
		Filter: map[string]any{"user_id": datastore.Eq(userID)},
		Sort:   []string{"name"},
	}, &projects)
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// GetOwned returns the project only when it exists and belongs to the
// user; nil otherwise. Absence and foreign ownership are indistinguishable.
func (r *ProjectRepository) GetOwned(ctx context.Context, projectID, userID string) (*models.Project, error) {
	var projects []models.Project
	err := r.ds.Items(ctx, collectionProjects, datastore.Query{
		Filter: map[string]any{
			"id":      datastore.Eq(projectID),
			"user_id": datastore.Eq(userID),
		},
		Limit: 1,
	}, &projects)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// Create inserts a new project record and returns it.
func (r *ProjectRepository) Create(ctx context.Context, p NewProject) (*models.Project, error) {
	var created models.Project
	if err := r.ds.CreateItem(ctx, collectionProjects, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update and returns the updated record.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch map[string]any) (*models.Project, error) {
	var updated models.Project
	if err := r.ds.UpdateItem(ctx, collectionProjects, id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the project record. Child tracking rows cascade in the
// data store's relation config.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.ds.DeleteItem(ctx, collectionProjects, id)
}
