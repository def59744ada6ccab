package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
)

// GoogleOAuth implements the Google side of the OAuth code flow.
type GoogleOAuth struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoints are overridable in tests.
	AuthorizeEndpoint string
	TokenEndpoint     string
	UserInfoEndpoint  string

	httpc *http.Client
}

// NewGoogleOAuth creates a facade pointed at the public Google endpoints.
func NewGoogleOAuth(clientID, clientSecret, redirectURI string) *GoogleOAuth {
	return &GoogleOAuth{
		ClientID:          clientID,
		ClientSecret:      clientSecret,
		RedirectURI:       redirectURI,
		AuthorizeEndpoint: "https://accounts.google.com/o/oauth2/v2/auth",
		TokenEndpoint:     "https://oauth2.googleapis.com/token",
		UserInfoEndpoint:  "https://www.googleapis.com/oauth2/v1/userinfo",
		httpc:             &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the provider identifier used in the auth_provider field.
func (g *GoogleOAuth) Name() string { return "google" }

// AuthorizeURL returns the provider authorize URL carrying the post-login
// redirect target in the state parameter.
func (g *GoogleOAuth) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", g.ClientID)
	q.Set("redirect_uri", g.RedirectURI)
	q.Set("access_type", "offline")
	q.Set("response_type", "code")
	q.Set("prompt", "consent")
	q.Set("scope", strings.Join([]string{
		"https://www.googleapis.com/auth/userinfo.profile",
		"https://www.googleapis.com/auth/userinfo.email",
	}, " "))
	q.Set("state", state)
	return g.AuthorizeEndpoint + "?" + q.Encode()
}

// ExchangeCode trades the authorization code for an access token.
func (g *GoogleOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.ClientID)
	form.Set("client_secret", g.ClientSecret)
	form.Set("redirect_uri", g.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tokens struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK || tokens.AccessToken == "" {
		logger.Log.Errorw("google token exchange failed",
			"status", resp.StatusCode, "provider_error", tokens.Error)
		return "", fmt.Errorf("google token exchange failed: %s", tokens.Error)
	}
	return tokens.AccessToken, nil
}

// FetchProfile fetches the account profile. Google always discloses the
// email for the requested scopes.
func (g *GoogleOAuth) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserInfoEndpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo: unexpected status %d", resp.StatusCode)
	}

	var account struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, err
	}

	name := account.Name
	if name == "" && account.Email != "" {
		name = strings.SplitN(account.Email, "@", 2)[0]
	}

	return &Profile{
		ProviderID: account.ID,
		Email:      account.Email,
		Name:       name,
		AvatarURL:  account.Picture,
	}, nil
}
