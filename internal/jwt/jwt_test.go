package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	j := New("test-secret", 7*24*time.Hour)
	ctx := context.Background()

	token, err := j.Generate(ctx, "user-123", "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.Parse(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestParse_Failures(t *testing.T) {
	ctx := context.Background()
	j := New("test-secret", time.Hour)

	valid, err := j.Generate(ctx, "user-123", "a@b.com")
	require.NoError(t, err)

	expiredSigner := New("test-secret", -time.Minute)
	expired, err := expiredSigner.Generate(ctx, "user-123", "a@b.com")
	require.NoError(t, err)

	otherSecret := New("another-secret", time.Hour)
	foreign, err := otherSecret.Generate(ctx, "user-123", "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"malformed", "not.a.token"},
		{"tampered", valid + "x"},
		{"expired", expired},
		{"signed with different secret", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := j.Parse(ctx, tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestGetTokenFromRequest(t *testing.T) {
	j := New("test-secret", time.Hour)
	ctx := context.Background()

	t.Run("cookie present", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})

		token, err := j.GetTokenFromRequest(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	})

	t.Run("cookie missing", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)

		_, err := j.GetTokenFromRequest(ctx, r)
		assert.Error(t, err)
	})

	t.Run("cookie empty", func(t *testing.T) {
		r, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: ""})

		_, err := j.GetTokenFromRequest(ctx, r)
		assert.Error(t, err)
	})
}
