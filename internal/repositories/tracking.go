package repositories

import (
	"context"

	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

const collectionTracking = "project_tracking"

// TrackingRepository reads and writes the "project_tracking" collection:
// the board items joining projects to platforms.
type TrackingRepository struct {
	ds *datastore.Client
}

func NewTrackingRepository(ds *datastore.Client) *TrackingRepository {
	return &TrackingRepository{ds: ds}
}

// ListByProject returns the project's tracking items with their platform
// records denormalized.
func (r *TrackingRepository) ListByProject(ctx context.Context, projectID string) ([]models.TrackingItem, error) {
	var items []models.TrackingItem
	err := r.ds.Items(ctx, collectionTracking, datastore.Query{
		Filter: map[string]any{"project_id": datastore.Eq(projectID)},
	}, &items)
	if err != nil {
		return nil, err
	}
	if err := r.attachPlatforms(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetOwned returns the tracking item only when its parent project belongs
// to the user, resolved via a joined lookup; nil otherwise.
func (r *TrackingRepository) GetOwned(ctx context.Context, trackingID, userID string) (*models.TrackingItem, error) {
	var items []models.TrackingItem
	err := r.ds.Items(ctx, collectionTracking, datastore.Query{
		Filter: map[string]any{
			"id":         datastore.Eq(trackingID),
			"project_id": map[string]any{"user_id": datastore.Eq(userID)},
		},
		Limit: 1,
	}, &items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Exists reports whether a tracking row already joins the project to the
// platform.
func (r *TrackingRepository) Exists(ctx context.Context, projectID string, platformID int64) (bool, error) {
	var items []models.TrackingItem
	err := r.ds.Items(ctx, collectionTracking, datastore.Query{
		Filter: map[string]any{
			"project_id":  datastore.Eq(projectID),
			"platform_id": datastore.Eq(platformID),
		},
		Fields: []string{"id"},
		Limit:  1,
	}, &items)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// Create inserts a tracking row with the default "todo" status and returns
// it with the platform denormalized.
func (r *TrackingRepository) Create(ctx context.Context, projectID string, platformID int64) (*models.TrackingItem, error) {
	payload := map[string]any{
		"project_id":  projectID,
		"platform_id": platformID,
		"status":      models.StatusTodo,
	}

	var created models.TrackingItem
	if err := r.ds.CreateItem(ctx, collectionTracking, payload, &created); err != nil {
		return nil, err
	}

	items := []models.TrackingItem{created}
	if err := r.attachPlatforms(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Update applies a partial update and returns the updated item with the
// platform denormalized.
func (r *TrackingRepository) Update(ctx context.Context, id string, patch models.TrackingPatch) (*models.TrackingItem, error) {
	var updated models.TrackingItem
	if err := r.ds.UpdateItem(ctx, collectionTracking, id, patch, &updated); err != nil {
		return nil, err
	}

	items := []models.TrackingItem{updated}
	if err := r.attachPlatforms(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Delete removes the tracking row.
func (r *TrackingRepository) Delete(ctx context.Context, id string) error {
	return r.ds.DeleteItem(ctx, collectionTracking, id)
}

// attachPlatforms resolves the platform records referenced by the items
// in one listing call and joins them in place.
func (r *TrackingRepository) attachPlatforms(ctx context.Context, items []models.TrackingItem) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[int64]bool, len(items))
	ids := make([]any, 0, len(items))
	for _, item := range items {
		if !seen[item.PlatformID] {
			seen[item.PlatformID] = true
			ids = append(ids, item.PlatformID)
		}
	}

	var platforms []models.Platform
	err := r.ds.Items(ctx, collectionPlatforms, datastore.Query{
		Filter: map[string]any{"id": datastore.In(ids...)},
	}, &platforms)
	if err != nil {
		return err
	}

	byID := make(map[int64]*models.Platform, len(platforms))
	for i := range platforms {
		byID[platforms[i].ID] = &platforms[i]
	}
	for i := range items {
		items[i].Platform = byID[items[i].PlatformID]
	}
	return nil
}
