package services

import (
	"context"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/repositories"
)

// ProjectStore defines persistence for projects.
type ProjectStore interface {
	ListByOwner(ctx context.Context, userID string) ([]models.Project, error)
	GetOwned(ctx context.Context, projectID, userID string) (*models.Project, error)
	Create(ctx context.Context, p repositories.NewProject) (*models.Project, error)
	Update(ctx context.Context, id string, patch map[string]any) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectService implements ownership-gated project CRUD.
type ProjectService struct {
	projects ProjectStore
}

// NewProjectService creates a new ProjectService instance.
func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns the user's projects.
func (svc *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := svc.projects.ListByOwner(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list projects", "user_id", userID, "err", err)
		return nil, err
	}
	return projects, nil
}

// Create creates a project owned by the user.
func (svc *ProjectService) Create(ctx context.Context, userID, name, websiteURL string) (*models.Project, error) {
	project, err := svc.projects.Create(ctx, repositories.NewProject{
		UserID:     userID,
		Name:       name,
		WebsiteURL: websiteURL,
	})
	if err != nil {
		logger.Log.Errorw("failed to create project", "user_id", userID, "err", err)
		return nil, err
	}
	return project, nil
}

// Update renames or repoints a project the user owns.
func (svc *ProjectService) Update(ctx context.Context, userID, projectID string, patch map[string]any) (*models.Project, error) {
	existing, err := svc.projects.GetOwned(ctx, projectID, userID)
	if err != nil {
		logger.Log.Errorw("ownership check failed", "project_id", projectID, "err", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	project, err := svc.projects.Update(ctx, projectID, patch)
	if err != nil {
		logger.Log.Errorw("failed to update project", "project_id", projectID, "err", err)
		return nil, err
	}
	return project, nil
}

// Delete removes a project the user owns.
func (svc *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	existing, err := svc.projects.GetOwned(ctx, projectID, userID)
	if err != nil {
		logger.Log.Errorw("ownership check failed", "project_id", projectID, "err", err)
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := svc.projects.Delete(ctx, projectID); err != nil {
		logger.Log.Errorw("failed to delete project", "project_id", projectID, "err", err)
		return err
	}
	return nil
}
