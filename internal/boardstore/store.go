// Package boardstore is a client-side cache of one project board. It
// applies optimistic updates for the actions a user expects to feel
// instant (adding, removing, dragging between columns) and rolls the
// local state back when the server rejects them. Text edits (notes and
// the live backlink URL) wait for the server instead, so a failed save
// never shows text that was silently lost.
package boardstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/linkdeck-dev/linkdeck/internal/models"
)

// API is the board endpoint surface the store talks to.
type API interface {
	List(ctx context.Context, projectID string) ([]models.TrackingItem, error)
	Add(ctx context.Context, projectID string, platformID int64) (*models.TrackingItem, error)
	Update(ctx context.Context, trackingID string, patch models.TrackingPatch) (*models.TrackingItem, error)
	Remove(ctx context.Context, trackingID string) error
}

// Store holds the cached board. The mutex guards only local state;
// it is never held across a network call, so concurrent mutations
// race with last-write-wins semantics, same as two browser tabs.
type Store struct {
	api API

	mu      sync.Mutex
	items   []models.TrackingItem
	loading bool
}

// New creates a Store over the given API client.
func New(api API) *Store {
	return &Store{api: api}
}

// Items returns a snapshot of the cached board.
func (s *Store) Items() []models.TrackingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TrackingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Loading reports whether a Fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fetch replaces the cached board with the server's copy.
func (s *Store) Fetch(ctx context.Context, projectID string) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	items, err := s.api.List(ctx, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.items = items
	return nil
}

// Add optimistically appends a placeholder item, then swaps in the
// server's item. On failure the placeholder is removed.
func (s *Store) Add(ctx context.Context, projectID string, platformID int64, platform *models.Platform) error {
	tempID := "temp-" + uuid.NewString()

	s.mu.Lock()
	s.items = append(s.items, models.TrackingItem{
		ID:         tempID,
		ProjectID:  projectID,
		PlatformID: platformID,
		Status:     models.StatusTodo,
		Platform:   platform,
	})
	s.mu.Unlock()

	item, err := s.api.Add(ctx, projectID, platformID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.deleteLocked(tempID)
		return err
	}
	if item.Platform == nil {
		item.Platform = platform
	}
	s.replaceLocked(tempID, *item)
	return nil
}

// Remove optimistically deletes the item, restoring it on failure.
func (s *Store) Remove(ctx context.Context, trackingID string) error {
	s.mu.Lock()
	removed, ok := s.takeLocked(trackingID)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	if err := s.api.Remove(ctx, trackingID); err != nil {
		s.mu.Lock()
		s.items = append(s.items, removed)
		s.mu.Unlock()
		return err
	}
	return nil
}

// UpdateStatus optimistically moves the item to a new column. On
// failure the exact prior item is restored, including any fields a
// concurrent edit may have touched in between.
func (s *Store) UpdateStatus(ctx context.Context, trackingID string, status models.TrackingStatus) error {
	s.mu.Lock()
	prior, ok := s.getLocked(trackingID)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	next := prior
	next.Status = status
	s.replaceLocked(trackingID, next)
	s.mu.Unlock()

	patch := models.TrackingPatch{Status: &status}
	item, err := s.api.Update(ctx, trackingID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.replaceLocked(trackingID, prior)
		return err
	}
	s.mergeLocked(trackingID, *item)
	return nil
}

// UpdateNotes saves the notes and applies them locally only after the
// server confirms.
func (s *Store) UpdateNotes(ctx context.Context, trackingID, notes string) error {
	return s.confirmFirst(ctx, trackingID, models.TrackingPatch{Notes: &notes})
}

// SetBacklinkURL saves the live backlink URL, confirm-first like notes.
func (s *Store) SetBacklinkURL(ctx context.Context, trackingID, url string) error {
	return s.confirmFirst(ctx, trackingID, models.TrackingPatch{LiveBacklinkURL: &url})
}

func (s *Store) confirmFirst(ctx context.Context, trackingID string, patch models.TrackingPatch) error {
	item, err := s.api.Update(ctx, trackingID, patch)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(trackingID, *item)
	return nil
}

func (s *Store) getLocked(id string) (models.TrackingItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.TrackingItem{}, false
}

func (s *Store) replaceLocked(id string, item models.TrackingItem) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = item
			return
		}
	}
}

// mergeLocked overwrites the cached item but keeps a denormalized
// platform the server response may have omitted.
func (s *Store) mergeLocked(id string, item models.TrackingItem) {
	for i := range s.items {
		if s.items[i].ID == id {
			if item.Platform == nil {
				item.Platform = s.items[i].Platform
			}
			s.items[i] = item
			return
		}
	}
}

func (s *Store) deleteLocked(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) takeLocked(id string) (models.TrackingItem, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return item, true
		}
	}
	return models.TrackingItem{}, false
}
