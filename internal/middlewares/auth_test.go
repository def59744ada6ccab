package middlewares

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linkdeck-dev/linkdeck/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	sessions := jwt.New("test-secret", time.Hour)

	var gotClaims *jwt.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := UserFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims
		io.WriteString(w, "ok")
	})
	handler := AuthMiddleware(sessions)(inner)

	t.Run("valid session cookie passes user through", func(t *testing.T) {
		token, err := sessions.Generate(context.Background(), "u1", "a@b.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		r.AddCookie(&http.Cookie{Name: jwt.SessionCookie, Value: token})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "u1", gotClaims.UserID)
		assert.Equal(t, "a@b.com", gotClaims.Email)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Authentication required", body["error"])
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := sessions.Generate(context.Background(), "u1", "a@b.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		r.AddCookie(&http.Cookie{Name: jwt.SessionCookie, Value: token + "x"})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.New("test-secret", -time.Minute)
		token, err := expired.Generate(context.Background(), "u1", "a@b.com")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		r.AddCookie(&http.Cookie{Name: jwt.SessionCookie, Value: token})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
