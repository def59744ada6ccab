package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck-dev/linkdeck/internal/logger"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

// OAuthCompleter defines the interface the OAuth callback handler needs.
type OAuthCompleter interface {
	Complete(ctx context.Context, provider services.Provider, code string) (*models.User, error)
}

// defaultPostLoginPath is where successful logins land when the client
// never asked for a specific destination.
const defaultPostLoginPath = "/dashboard"

// NewOAuthRedirectHandler returns an HTTP handler that starts the OAuth
// flow by redirecting the browser to the provider's consent page. The
// optional "redirect" query parameter is threaded through as the state
// so the callback can send the user back where they started.
// @Summary Start an OAuth sign-in
// @Tags auth
// @Param provider path string true "Provider name (github or google)"
// @Param redirect query string false "Post-login destination path"
// @Success 302 "Redirect to the provider consent page"
// @Failure 404 {object} handlers.ErrorResponse "Unknown provider"
// @Router /api/auth/{provider} [get]
func NewOAuthRedirectHandler(providers map[string]services.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providers[chi.URLParam(r, "provider")]
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown provider")
			return
		}

		state := r.URL.Query().Get("redirect")
		if state == "" {
			state = defaultPostLoginPath
		}

		http.Redirect(w, r, provider.AuthorizeURL(state), http.StatusFound)
	}
}

// NewOAuthCallbackHandler returns an HTTP handler for the provider's
// redirect back to us. Failures never surface JSON to the browser:
// every outcome is a redirect, with errors tagged on the sign-in page.
// @Summary Complete an OAuth sign-in
// @Tags auth
// @Param provider path string true "Provider name (github or google)"
// @Param code query string false "Authorization code"
// @Param state query string false "Post-login destination"
// @Success 302 "Redirect to the requested destination or the sign-in page"
// @Router /api/auth/callback/{provider} [get]
func NewOAuthCallbackHandler(providers map[string]services.Provider, svc OAuthCompleter, sessions SessionMinter, appURL string, secureCookies bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, ok := providers[chi.URLParam(r, "provider")]
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown provider")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			redirectWithError(w, r, appURL, "no_code")
			return
		}

		user, err := svc.Complete(r.Context(), provider, code)
		if err != nil {
			logger.Log.Errorw("oauth sign-in failed", "provider", provider.Name(), "err", err)
			redirectWithError(w, r, appURL, errorTag(err))
			return
		}

		token, err := sessions.Generate(r.Context(), user.ID, user.Email)
		if err != nil {
			logger.Log.Errorw("failed to mint session", "user_id", user.ID, "err", err)
			redirectWithError(w, r, appURL, "auth_failed")
			return
		}
		setSessionCookie(w, token, secureCookies)

		http.Redirect(w, r, resolveDestination(appURL, r.URL.Query().Get("state")), http.StatusFound)
	}
}

// errorTag maps a sign-in failure to the tag the sign-in page renders.
func errorTag(err error) string {
	switch {
	case errors.Is(err, services.ErrTokenExchange):
		return "token_exchange_failed"
	case errors.Is(err, services.ErrUserInfo):
		return "user_info_failed"
	case errors.Is(err, services.ErrNoEmail):
		return "no_email"
	case errors.Is(err, services.ErrUserCreation):
		return "user_creation_failed"
	}
	return "auth_failed"
}

func redirectWithError(w http.ResponseWriter, r *http.Request, appURL, tag string) {
	http.Redirect(w, r, strings.TrimSuffix(appURL, "/")+"/sign-in?error="+tag, http.StatusFound)
}

// resolveDestination turns the round-tripped state back into a redirect
// target. Absolute URLs pass through untouched; anything else is
// treated as a path on the app.
func resolveDestination(appURL, state string) string {
	if state == "" {
		state = defaultPostLoginPath
	}
	if strings.HasPrefix(state, "http://") || strings.HasPrefix(state, "https://") {
		return state
	}
	if !strings.HasPrefix(state, "/") {
		state = "/" + state
	}
	return strings.TrimSuffix(appURL, "/") + state
}
