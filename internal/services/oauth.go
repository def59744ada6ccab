package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/facades"
	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/repositories"
)

// Step errors of the OAuth callback flow. Each maps to the error tag the
// sign-in page shows; anything else surfaces as a generic auth failure.
var (
	ErrTokenExchange = errors.New("token exchange failed")
	ErrUserInfo      = errors.New("user info fetch failed")
	ErrNoEmail       = errors.New("no email resolvable")
	ErrUserCreation  = errors.New("user creation failed")
)

// Provider is one OAuth identity provider (GitHub, Google).
type Provider interface {
	Name() string
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*facades.Profile, error)
}

// FileStore stores mirrored avatar images.
type FileStore interface {
	UploadFile(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
	FileURL(id string) string
}

// OAuthService drives the provider callback: exchange the code, fetch the
// profile, resolve or create the local user, refresh last_login.
type OAuthService struct {
	users UserStore
	files FileStore
	httpc *http.Client
}

// NewOAuthService creates a new OAuthService instance.
func NewOAuthService(users UserStore, files FileStore) *OAuthService {
	return &OAuthService{
		users: users,
		files: files,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete runs the callback state machine for one provider and returns
// the resolved user. Step failures come back as the sentinel errors above.
func (svc *OAuthService) Complete(ctx context.Context, provider Provider, code string) (*models.User, error) {
	accessToken, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTokenExchange, err)
	}

	profile, err := provider.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserInfo, err)
	}
	if profile.Email == "" {
		return nil, ErrNoEmail
	}

	user, err := svc.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user, err = svc.createUser(ctx, provider.Name(), profile)
		if err != nil {
			logger.Log.Errorw("oauth user creation failed",
				"provider", provider.Name(), "email", profile.Email, "err", err)
			return nil, fmt.Errorf("%w: %s", ErrUserCreation, err)
		}
	}

	if err := svc.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update last_login", "user_id", user.ID, "err", err)
	}
	return user, nil
}

func (svc *OAuthService) createUser(ctx context.Context, providerName string, profile *facades.Profile) (*models.User, error) {
	var avatarURL *string
	if profile.AvatarURL != "" {
		fileName := fmt.Sprintf("avatar-%s-%s", providerName, profile.ProviderID)
		fileID, err := svc.mirrorAvatar(ctx, profile.AvatarURL, fileName)
		if err != nil {
			// Best effort: a user without an avatar beats no user at all.
			logger.Log.Warnw("avatar mirror failed",
				"provider", providerName, "url", profile.AvatarURL, "err", err)
		} else {
			u := svc.files.FileURL(fileID)
			avatarURL = &u
		}
	}

	providerID := profile.ProviderID
	return svc.users.Create(ctx, repositories.NewUser{
		Email:        profile.Email,
		Name:         profile.Name,
		AvatarURL:    avatarURL,
		AuthProvider: models.AuthProvider(providerName),
		ProviderID:   &providerID,
	})
}

// mirrorAvatar downloads the provider avatar and re-uploads it to the data
// store's file storage, returning the stored file id.
func (svc *OAuthService) mirrorAvatar(ctx context.Context, imageURL, baseName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := svc.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("avatar download: unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext := extensionFor(contentType)

	return svc.files.UploadFile(ctx, baseName+"."+ext, contentType, resp.Body)
}

func extensionFor(contentType string) string {
	sub := contentType
	if i := strings.Index(sub, "/"); i >= 0 {
		sub = sub[i+1:]
	}
	if i := strings.Index(sub, ";"); i >= 0 {
		sub = sub[:i]
	}
	if sub == "" {
		return "jpg"
	}
	return sub
}
