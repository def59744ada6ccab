package services

import (
	"context"
	"errors"
	"strings"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore defines the user persistence operations the auth flows need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, u repositories.NewUser) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

// AuthService handles password sign-up and sign-in.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// SignUp registers a new password-based user.
func (svc *AuthService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check existing user", "err", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}
	passwordHash := string(hash)

	user, err := svc.users.Create(ctx, repositories.NewUser{
		Email:        email,
		Name:         name,
		AuthProvider: models.AuthProviderPassword,
		PasswordHash: &passwordHash,
	})
	if err != nil {
		logger.Log.Errorw("failed to create user", "email", email, "err", err)
		return nil, err
	}

	if err := svc.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update last_login", "user_id", user.ID, "err", err)
	}
	return user, nil
}

// SignIn authenticates a password-based user. Unknown email, missing
// password hash (OAuth-only account) and wrong password all collapse to
// ErrInvalidCredentials.
func (svc *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := svc.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update last_login", "user_id", user.ID, "err", err)
	}
	return user, nil
}

// CurrentUser loads the user record behind a verified session.
func (svc *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return svc.users.Get(ctx, userID)
}
