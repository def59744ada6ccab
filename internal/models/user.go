package models

import "time"

// AuthProvider identifies how a user account was created.
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
	AuthProviderGitHub   AuthProvider = "github"
	AuthProviderGoogle   AuthProvider = "google"
)

// User represents a record in the "users" collection.
type User struct {
	ID           string       `json:"id"`            // Primary key
	Email        string       `json:"email"`         // Unique email
	Name         string       `json:"name"`          // Display name
	AvatarURL    *string      `json:"avatar_url"`    // Mirrored provider avatar, if any
	AuthProvider AuthProvider `json:"auth_provider"` // password | github | google
	ProviderID   *string      `json:"provider_id"`   // OAuth provider account id
	PasswordHash *string      `json:"password_hash,omitempty"`
	LastLogin    *time.Time   `json:"last_login"`
}

// Sanitized returns a copy of the user safe for API responses,
// with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = nil
	return u
}
