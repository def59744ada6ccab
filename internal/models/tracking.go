package models

// TrackingStatus is the submission workflow state of a board item.
type TrackingStatus string

const (
	StatusTodo       TrackingStatus = "todo"
	StatusInProgress TrackingStatus = "in_progress"
	StatusSubmitted  TrackingStatus = "submitted"
	StatusLive       TrackingStatus = "live"
	StatusRejected   TrackingStatus = "rejected"
)

// Valid reports whether s is one of the known workflow states.
func (s TrackingStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusSubmitted, StatusLive, StatusRejected:
		return true
	}
	return false
}

// TrackingItem represents a record in the "project_tracking" collection:
// the join between a project and a platform, carrying submission state.
// At most one tracking item exists per (project, platform) pair.
type TrackingItem struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	PlatformID      int64          `json:"platform_id"`
	Status          TrackingStatus `json:"status"`
	Notes           *string        `json:"notes"`
	LiveBacklinkURL *string        `json:"live_backlink_url"`

	// Platform is denormalized onto reads so clients can render the
	// board without a second request. Never written back.
	Platform *Platform `json:"platform,omitempty"`
}

// TrackingPatch is a partial update of a tracking item. Nil fields
// are left untouched.
type TrackingPatch struct {
	Status          *TrackingStatus `json:"status,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	LiveBacklinkURL *string         `json:"live_backlink_url,omitempty"`
}
