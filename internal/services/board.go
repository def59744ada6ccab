package services

import (
	"context"
	"errors"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// Error variables
var (
	// ErrNotFound covers both true absence and foreign ownership. The two
	// are deliberately indistinguishable so requests cannot probe for
	// resources they do not own.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateTracking = errors.New("platform already on board")
)

// ProjectOwnershipStore resolves a project only when the given user owns it.
type ProjectOwnershipStore interface {
	GetOwned(ctx context.Context, projectID, userID string) (*models.Project, error)
}

// TrackingStore defines persistence for board items.
type TrackingStore interface {
	ListByProject(ctx context.Context, projectID string) ([]models.TrackingItem, error)
	GetOwned(ctx context.Context, trackingID, userID string) (*models.TrackingItem, error)
	Exists(ctx context.Context, projectID string, platformID int64) (bool, error)
	Create(ctx context.Context, projectID string, platformID int64) (*models.TrackingItem, error)
	Update(ctx context.Context, id string, patch models.TrackingPatch) (*models.TrackingItem, error)
	Delete(ctx context.Context, id string) error
}

// BoardService implements the ownership-gated board operations. Every
// mutation passes the ownership gate before any write happens.
type BoardService struct {
	projects ProjectOwnershipStore
	tracking TrackingStore
}

// NewBoardService creates a new BoardService instance.
func NewBoardService(projects ProjectOwnershipStore, tracking TrackingStore) *BoardService {
	return &BoardService{projects: projects, tracking: tracking}
}

// List returns the tracking items of a project the user owns.
func (svc *BoardService) List(ctx context.Context, userID, projectID string) ([]models.TrackingItem, error) {
	if err := svc.assertProjectOwnership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	items, err := svc.tracking.ListByProject(ctx, projectID)
	if err != nil {
		logger.Log.Errorw("failed to list board", "project_id", projectID, "err", err)
		return nil, err
	}
	return items, nil
}

// Add creates a tracking item for (project, platform). A second add of the
// same pair is rejected before any write.
func (svc *BoardService) Add(ctx context.Context, userID, projectID string, platformID int64) (*models.TrackingItem, error) {
	if err := svc.assertProjectOwnership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	exists, err := svc.tracking.Exists(ctx, projectID, platformID)
	if err != nil {
		logger.Log.Errorw("failed to check duplicate tracking", "project_id", projectID, "platform_id", platformID, "err", err)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTracking
	}

	item, err := svc.tracking.Create(ctx, projectID, platformID)
	if err != nil {
		logger.Log.Errorw("failed to add to board", "project_id", projectID, "platform_id", platformID, "err", err)
		return nil, err
	}
	return item, nil
}

// Update patches a tracking item the user owns through its parent project.
func (svc *BoardService) Update(ctx context.Context, userID, trackingID string, patch models.TrackingPatch) (*models.TrackingItem, error) {
	if err := svc.assertTrackingOwnership(ctx, trackingID, userID); err != nil {
		return nil, err
	}

	item, err := svc.tracking.Update(ctx, trackingID, patch)
	if err != nil {
		logger.Log.Errorw("failed to update board item", "tracking_id", trackingID, "err", err)
		return nil, err
	}
	return item, nil
}

// Remove deletes a tracking item the user owns through its parent project.
func (svc *BoardService) Remove(ctx context.Context, userID, trackingID string) error {
	if err := svc.assertTrackingOwnership(ctx, trackingID, userID); err != nil {
		return err
	}

	if err := svc.tracking.Delete(ctx, trackingID); err != nil {
		logger.Log.Errorw("failed to delete board item", "tracking_id", trackingID, "err", err)
		return err
	}
	return nil
}

func (svc *BoardService) assertProjectOwnership(ctx context.Context, projectID, userID string) error {
	project, err := svc.projects.GetOwned(ctx, projectID, userID)
	if err != nil {
		logger.Log.Errorw("ownership check failed", "project_id", projectID, "err", err)
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	return nil
}

func (svc *BoardService) assertTrackingOwnership(ctx context.Context, trackingID, userID string) error {
	item, err := svc.tracking.GetOwned(ctx, trackingID, userID)
	if err != nil {
		logger.Log.Errorw("ownership check failed", "tracking_id", trackingID, "err", err)
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	return nil
}
