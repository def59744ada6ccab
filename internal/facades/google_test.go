package facades

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleAuthorizeURL(t *testing.T) {
	g := NewGoogleOAuth("cid", "csecret", "https://app.example.com/api/auth/callback/google")
	raw := g.AuthorizeURL("/boards")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "offline", u.Query().Get("access_type"))
	assert.Contains(t, u.Query().Get("scope"), "userinfo.email")
	assert.Equal(t, "/boards", u.Query().Get("state"))
}

func TestGoogleExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "the-code", r.PostForm.Get("code"))
			io.WriteString(w, `{"access_token":"ya29.abc"}`)
		}))
		defer srv.Close()

		g := NewGoogleOAuth("cid", "csecret", "https://app/cb")
		g.TokenEndpoint = srv.URL

		token, err := g.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "ya29.abc", token)
	})

	t.Run("rejected code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"invalid_grant"}`)
		}))
		defer srv.Close()

		g := NewGoogleOAuth("cid", "csecret", "https://app/cb")
		g.TokenEndpoint = srv.URL

		_, err := g.ExchangeCode(context.Background(), "bad")
		assert.Error(t, err)
	})
}

func TestGoogleFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ya29.abc", r.Header.Get("Authorization"))
		io.WriteString(w, `{"id":"108","email":"ada@gmail.com","name":"Ada","picture":"https://pics/x"}`)
	}))
	defer srv.Close()

	g := NewGoogleOAuth("cid", "csecret", "https://app/cb")
	g.UserInfoEndpoint = srv.URL

	p, err := g.FetchProfile(context.Background(), "ya29.abc")
	require.NoError(t, err)
	assert.Equal(t, "108", p.ProviderID)
	assert.Equal(t, "ada@gmail.com", p.Email)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "https://pics/x", p.AvatarURL)
}

func TestGoogleFetchProfile_NameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"108","email":"ada@gmail.com"}`)
	}))
	defer srv.Close()

	g := NewGoogleOAuth("cid", "csecret", "https://app/cb")
	g.UserInfoEndpoint = srv.URL

	p, err := g.FetchProfile(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "ada", p.Name)
}
