package models

// Project represents a record in the "projects" collection.
// Every tracking item belongs to exactly one project, and a project
// is only ever visible to its owning user.
type Project struct {
	ID         string `json:"id"`         // Primary key
	UserID     string `json:"user_id"`    // Owning user
	Name       string `json:"name"`       // Display name
	WebsiteURL string `json:"website_url"`
}
