package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdeck-dev/linkdeck/internal/facades"
	"github.com/linkdeck-dev/linkdeck/internal/models"
	"github.com/linkdeck-dev/linkdeck/internal/services"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) AuthorizeURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (p *stubProvider) ExchangeCode(context.Context, string) (string, error) {
	return "access-token", nil
}

func (p *stubProvider) FetchProfile(context.Context, string) (*facades.Profile, error) {
	return &facades.Profile{ProviderID: "42", Email: "oauth@example.com"}, nil
}

type fakeCompleter struct {
	user    *models.User
	err     error
	gotCode string
}

func (f *fakeCompleter) Complete(_ context.Context, _ services.Provider, code string) (*models.User, error) {
	f.gotCode = code
	return f.user, f.err
}

// routed mounts the handler under chi so URL parameters resolve.
func routed(pattern string, h http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Get(pattern, h)
	return r
}

func TestOAuthRedirectHandler(t *testing.T) {
	providers := map[string]services.Provider{"github": &stubProvider{name: "github"}}
	router := routed("/api/auth/{provider}", NewOAuthRedirectHandler(providers))

	t.Run("redirects to consent page with state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/github?redirect=/projects/p1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://provider.example/authorize?state=/projects/p1", rec.Header().Get("Location"))
	})

	t.Run("defaults the destination", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/github", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://provider.example/authorize?state=/dashboard", rec.Header().Get("Location"))
	})

	t.Run("unknown provider", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/gitlab", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOAuthCallbackHandler(t *testing.T) {
	const appURL = "https://linkdeck.example"
	providers := map[string]services.Provider{"github": &stubProvider{name: "github"}}
	user := &models.User{ID: "u5", Email: "oauth@example.com"}

	newRouter := func(svc *fakeCompleter, minter *fakeMinter) http.Handler {
		return routed("/api/auth/callback/{provider}", NewOAuthCallbackHandler(providers, svc, minter, appURL, false))
	}

	t.Run("success sets cookie and redirects to state", func(t *testing.T) {
		svc := &fakeCompleter{user: user}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/callback/github?code=abc&state=/projects/p1", nil)
		newRouter(svc, &fakeMinter{token: "TOKEN"}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, appURL+"/projects/p1", rec.Header().Get("Location"))
		assert.Equal(t, "abc", svc.gotCode)
		assert.Equal(t, "TOKEN", sessionCookieFrom(t, rec).Value)
	})

	t.Run("absolute state passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/callback/github?code=abc&state=https://other.example/home", nil)
		newRouter(&fakeCompleter{user: user}, &fakeMinter{token: "TOKEN"}).ServeHTTP(rec, req)

		assert.Equal(t, "https://other.example/home", rec.Header().Get("Location"))
	})

	t.Run("missing code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/callback/github", nil)
		newRouter(&fakeCompleter{}, &fakeMinter{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, appURL+"/sign-in?error=no_code", rec.Header().Get("Location"))
	})

	t.Run("maps service failures to error tags", func(t *testing.T) {
		tests := []struct {
			err error
			tag string
		}{
			{services.ErrTokenExchange, "token_exchange_failed"},
			{services.ErrUserInfo, "user_info_failed"},
			{services.ErrNoEmail, "no_email"},
			{services.ErrUserCreation, "user_creation_failed"},
			{errors.New("boom"), "auth_failed"},
		}

		for _, tt := range tests {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/callback/github?code=rejected", nil)
			newRouter(&fakeCompleter{err: tt.err}, &fakeMinter{}).ServeHTTP(rec, req)

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, appURL+"/sign-in?error="+tt.tag, rec.Header().Get("Location"))
			assert.Empty(t, rec.Result().Cookies())
		}
	})
}
