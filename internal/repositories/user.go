package repositories

import (
	"context"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/datastore"
	"github.com/linkdeck-dev/linkdeck/internal/models"
)

const collectionUsers = "users"

// NewUser is the payload for creating a user record.
type NewUser struct {
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	AvatarURL    *string             `json:"avatar_url,omitempty"`
	AuthProvider models.AuthProvider `json:"auth_provider"`
	ProviderID   *string             `json:"provider_id,omitempty"`
	PasswordHash *string             `json:"password_hash,omitempty"`
}

// UserRepository reads and writes the "users" collection.
type UserRepository struct {
	ds *datastore.Client
}

func NewUserRepository(ds *datastore.Client) *UserRepository {
	return &UserRepository{ds: ds}
}

// GetByEmail returns the user with the exact email, or nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	err := r.ds.Items(ctx, collectionUsers, datastore.Query{
		Filter: map[string]any{"email": datastore.Eq(email)},
		Limit:  1,
	}, &users)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// Get returns the user by primary key.
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.ds.Item(ctx, collectionUsers, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record and returns it.
func (r *UserRepository) Create(ctx context.Context, u NewUser) (*models.User, error) {
	var created models.User
	if err := r.ds.CreateItem(ctx, collectionUsers, u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	payload := map[string]any{"last_login": time.Now().UTC().Format(time.RFC3339)}
	return r.ds.UpdateItem(ctx, collectionUsers, id, payload, nil)
}
