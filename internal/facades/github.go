package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
)

// GitHubOAuth implements the GitHub side of the OAuth code flow: building
// the authorize URL, exchanging the code for an access token and fetching
// the account profile.
type GitHubOAuth struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoints are overridable in tests.
	AuthorizeEndpoint string
	TokenEndpoint     string
	APIBase           string

	httpc *http.Client
}

// NewGitHubOAuth creates a facade pointed at the public GitHub endpoints.
func NewGitHubOAuth(clientID, clientSecret, redirectURI string) *GitHubOAuth {
	return &GitHubOAuth{
		ClientID:          clientID,
		ClientSecret:      clientSecret,
		RedirectURI:       redirectURI,
		AuthorizeEndpoint: "https://github.com/login/oauth/authorize",
		TokenEndpoint:     "https://github.com/login/oauth/access_token",
		APIBase:           "https://api.github.com",
		httpc:             &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the provider identifier used in the auth_provider field.
func (g *GitHubOAuth) Name() string { return "github" }

// AuthorizeURL returns the provider authorize URL. The post-login redirect
// target travels in the opaque state parameter.
func (g *GitHubOAuth) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", g.ClientID)
	q.Set("redirect_uri", g.RedirectURI)
	q.Set("scope", "read:user user:email")
	q.Set("state", state)
	return g.AuthorizeEndpoint + "?" + q.Encode()
}

// ExchangeCode trades the authorization code for an access token.
func (g *GitHubOAuth) ExchangeCode(ctx context.Context, code string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     g.ClientID,
		"client_secret": g.ClientSecret,
		"code":          code,
		"redirect_uri":  g.RedirectURI,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

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
	if resp.StatusCode != http.StatusOK || tokens.Error != "" || tokens.AccessToken == "" {
		logger.Log.Errorw("github token exchange failed",
			"status", resp.StatusCode, "provider_error", tokens.Error)
		return "", fmt.Errorf("github token exchange failed: %s", tokens.Error)
	}
	return tokens.AccessToken, nil
}

// FetchProfile fetches the account profile. When the profile omits the
// email (a privacy setting) the account's email list is consulted,
// preferring the primary verified address and falling back to the first
// listed one. An empty Email means no address was resolvable.
func (g *GitHubOAuth) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var account struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := g.getJSON(ctx, accessToken, "/user", &account); err != nil {
		return nil, err
	}

	email := account.Email
	if email == "" {
		email = g.resolveEmail(ctx, accessToken)
	}

	name := account.Name
	if name == "" {
		name = account.Login
	}

	return &Profile{
		ProviderID: strconv.FormatInt(account.ID, 10),
		Email:      email,
		Name:       name,
		AvatarURL:  account.AvatarURL,
	}, nil
}

func (g *GitHubOAuth) resolveEmail(ctx context.Context, accessToken string) string {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := g.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		logger.Log.Errorw("github email listing failed", "err", err)
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	if len(emails) > 0 {
		return emails[0].Email
	}
	return ""
}

func (g *GitHubOAuth) getJSON(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.APIBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
